// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/core/authz"
	"github.com/momeni/parking-backend/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyCommand records whether it was run and returns a fixed error.
type spyCommand struct {
	err error
	ran bool
}

func (s *spyCommand) Authorize(context.Context) error {
	s.ran = true
	return s.err
}

func TestValidateRunsAllOnSuccess(t *testing.T) {
	v := authz.NewValidator()
	c1 := &spyCommand{}
	c2 := &spyCommand{}
	err := v.Validate(context.Background(), c1, c2)
	assert.NoError(t, err)
	assert.True(t, c1.ran, "first command must run")
	assert.True(t, c2.ran, "second command must run")
}

func TestValidateShortCircuits(t *testing.T) {
	v := authz.NewValidator()
	denied := cerr.Authorization(errors.New("denied"))
	c1 := &spyCommand{err: denied}
	c2 := &spyCommand{}
	err := v.Validate(context.Background(), c1, c2)
	assert.ErrorIs(t, err, denied)
	assert.True(t, c1.ran, "failing command must run")
	assert.False(t, c2.ran, "commands after a failure may not run")
}

func TestValidateWithoutCommands(t *testing.T) {
	v := authz.NewValidator()
	assert.NoError(t, v.Validate(context.Background()))
}

type ownership map[uuid.UUID]map[uuid.UUID]bool // userID -> carID set

func (o ownership) OwnerExists(_ context.Context, userID, carID uuid.UUID) (bool, error) {
	return o[userID][carID], nil
}

type users map[uuid.UUID]bool

func (u users) Exists(_ context.Context, userID uuid.UUID) (bool, error) {
	return u[userID], nil
}

func TestCommands(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	car := uuid.New()
	o := ownership{owner: {car: true}}
	u := users{owner: true, stranger: true}
	v := authz.NewValidator()
	ctx := context.Background()

	for _, tc := range []struct {
		name   string
		cmd    authz.Command
		detail string // empty for an expected pass
	}{
		{
			name: "owner has car",
			cmd:  authz.NewUserHasCar(o, owner, car),
		},
		{
			name:   "stranger has no car",
			cmd:    authz.NewUserHasCar(o, stranger, car),
			detail: "user does not own this car",
		},
		{
			name: "user exists",
			cmd:  authz.NewUserExists(u, stranger),
		},
		{
			name:   "unknown user",
			cmd:    authz.NewUserExists(u, uuid.New()),
			detail: "user does not exist",
		},
		{
			name: "distinct users may be targeted",
			cmd:  authz.NewUserNotTargetingItself(owner, stranger),
		},
		{
			name:   "self-targeting is rejected",
			cmd:    authz.NewUserNotTargetingItself(owner, owner),
			detail: "user can not target itself for this operation",
		},
		{
			name: "self-targeting is required",
			cmd:  authz.NewUserTargetsItself(owner, owner),
		},
		{
			name:   "targeting another user is rejected",
			cmd:    authz.NewUserTargetsItself(owner, stranger),
			detail: "user can not target another user for this operation",
		},
		{
			name: "stranger is not added yet",
			cmd:  authz.NewUserNotAlreadyAddedToCar(o, stranger, car),
		},
		{
			name:   "owner is already added",
			cmd:    authz.NewUserNotAlreadyAddedToCar(o, owner, car),
			detail: "user already added to car",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(ctx, tc.cmd)
			if tc.detail == "" {
				assert.NoError(t, err)
				return
			}
			var ce *cerr.Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, 403, ce.HTTPStatusCode)
			assert.EqualError(t, ce.Err, tc.detail)
		})
	}
}
