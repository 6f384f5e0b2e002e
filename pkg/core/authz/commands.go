// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/core/cerr"
)

// OwnershipReader is the single read which commands may perform
// against the ownership relation. It is satisfied by the cars
// repository queryers.
type OwnershipReader interface {
	OwnerExists(ctx context.Context, userID, carID uuid.UUID) (bool, error)
}

// UsersReader is the single read which commands may perform against
// the users table. It is satisfied by the users repository queryers.
type UsersReader interface {
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}

type userHasCar struct {
	ownership     OwnershipReader
	userID, carID uuid.UUID
}

// NewUserHasCar creates a command which authorizes only if the
// (userID, carID) pair is present in the ownership relation.
func NewUserHasCar(r OwnershipReader, userID, carID uuid.UUID) Command {
	return userHasCar{ownership: r, userID: userID, carID: carID}
}

func (c userHasCar) Authorize(ctx context.Context) error {
	ok, err := c.ownership.OwnerExists(ctx, c.userID, c.carID)
	if err != nil {
		return fmt.Errorf("reading ownership: %w", err)
	}
	if !ok {
		return cerr.Authorization(
			errors.New("user does not own this car"),
		)
	}
	return nil
}

type userExists struct {
	users  UsersReader
	userID uuid.UUID
}

// NewUserExists creates a command which authorizes only if a user
// with the userID id exists.
func NewUserExists(r UsersReader, userID uuid.UUID) Command {
	return userExists{users: r, userID: userID}
}

func (c userExists) Authorize(ctx context.Context) error {
	ok, err := c.users.Exists(ctx, c.userID)
	if err != nil {
		return fmt.Errorf("reading user: %w", err)
	}
	if !ok {
		return cerr.Authorization(errors.New("user does not exist"))
	}
	return nil
}

type userNotAlreadyAddedToCar struct {
	ownership     OwnershipReader
	userID, carID uuid.UUID
}

// NewUserNotAlreadyAddedToCar creates a command which authorizes only
// if the (userID, carID) pair is absent from the ownership relation.
// This check is advisory; the unique constraint of the relation is
// the authoritative guard against concurrent double-insertion.
func NewUserNotAlreadyAddedToCar(r OwnershipReader, userID, carID uuid.UUID) Command {
	return userNotAlreadyAddedToCar{
		ownership: r, userID: userID, carID: carID,
	}
}

func (c userNotAlreadyAddedToCar) Authorize(ctx context.Context) error {
	ok, err := c.ownership.OwnerExists(ctx, c.userID, c.carID)
	if err != nil {
		return fmt.Errorf("reading ownership: %w", err)
	}
	if ok {
		return cerr.Authorization(
			errors.New("user already added to car"),
		)
	}
	return nil
}

type userNotTargetingItself struct {
	requesterID, targetID uuid.UUID
}

// NewUserNotTargetingItself creates a command which authorizes only
// if the requester and target are different users. Self-targeting is
// an authorization rule, not a malformed-input rule, because it
// depends on the relationship between two identities rather than on
// the input shape alone.
func NewUserNotTargetingItself(requesterID, targetID uuid.UUID) Command {
	return userNotTargetingItself{
		requesterID: requesterID, targetID: targetID,
	}
}

func (c userNotTargetingItself) Authorize(context.Context) error {
	if c.requesterID == c.targetID {
		return cerr.Authorization(errors.New(
			"user can not target itself for this operation",
		))
	}
	return nil
}

type userTargetsItself struct {
	requesterID, targetID uuid.UUID
}

// NewUserTargetsItself creates a command which authorizes only if the
// requester and target are the same user, gating self-scoped
// operations such as a username modification.
func NewUserTargetsItself(requesterID, targetID uuid.UUID) Command {
	return userTargetsItself{
		requesterID: requesterID, targetID: targetID,
	}
}

func (c userTargetsItself) Authorize(context.Context) error {
	if c.requesterID != c.targetID {
		return cerr.Authorization(errors.New(
			"user can not target another user for this operation",
		))
	}
	return nil
}
