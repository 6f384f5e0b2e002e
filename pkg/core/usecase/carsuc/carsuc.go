// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsuc contains the cars UseCase which supports the car
// lifecycle use cases: creating a car for its initial owner, fetching
// and renaming a car, and adding/removing owning users. Every
// mutation is gated by the authorization validator before it
// executes, and the owner-removal path maintains the no-orphan-car
// invariant by cascading in the same transaction.
package carsuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/core/authz"
	"github.com/momeni/parking-backend/pkg/core/cerr"
	"github.com/momeni/parking-backend/pkg/core/log"
	"github.com/momeni/parking-backend/pkg/core/model"
	"github.com/momeni/parking-backend/pkg/core/repo"
)

// UseCase represents a cars use case. It holds a database connection
// pool, the cars, users, and parks repository instances (to be guided
// with the DB pool), and the authorization validator which gates the
// mutating operations.
// The cars repository is the exclusive writer of the users-cars
// ownership relation; the parks repository is consulted read-only in
// order to enrich a fetched car with its current parking location.
type UseCase struct {
	pool      repo.Pool
	carsrp    repo.Cars
	usersrp   repo.Users
	parksrp   repo.Parks
	validator authz.Validator
}

// New instantiates a cars use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
func New(p repo.Pool, c repo.Cars, u repo.Users, pk repo.Parks) *UseCase {
	return &UseCase{
		pool:      p,
		carsrp:    c,
		usersrp:   u,
		parksrp:   pk,
		validator: authz.NewValidator(),
	}
}

// CreateCarForUser creates a name car owned by the userID user.
// The car and its single initial ownership row are inserted in one
// serializable transaction, so a car without an owner is never
// observable. An unknown user is a NotFound error and an empty name
// is an illegal argument.
func (cars *UseCase) CreateCarForUser(ctx context.Context, name string, userID uuid.UUID) (car *model.Car, err error) {
	if name == "" {
		return nil, cerr.BadRequest(
			errors.New("car name can not be blank"),
		)
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		uq := cars.usersrp.Conn(c)
		ok, err := uq.Exists(ctx, userID)
		if err != nil {
			return fmt.Errorf("reading user: %w", err)
		}
		if !ok {
			return cerr.NotFound(errors.New("user does not exist"))
		}
		return c.SerializableTx(ctx, func(ctx context.Context, tx repo.Tx) error {
			tq := cars.carsrp.Tx(tx)
			car = &model.Car{ID: uuid.New(), Name: name}
			return tq.CreateCar(ctx, car, userID)
		})
	})
	if err != nil {
		car = nil
	}
	return
}

// GetCar fetches the carID car on behalf of the requesterID user,
// enriched with its current owner list and current parking location
// (a read-side join, never stored denormalized). The requester must
// own the car; an absent car is a NotFound error.
func (cars *UseCase) GetCar(ctx context.Context, requesterID, carID uuid.UUID) (info *model.CarInfo, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		cq := cars.carsrp.Conn(c)
		err := cars.validator.Validate(ctx,
			authz.NewUserHasCar(cq, requesterID, carID),
		)
		if err != nil {
			return err
		}
		car, err := cq.GetCar(ctx, carID)
		if err != nil {
			return err
		}
		owners, err := cq.GetCarUsers(ctx, carID)
		if err != nil {
			return fmt.Errorf("reading owners: %w", err)
		}
		parking, err := cars.parksrp.Conn(c).GetCurrent(ctx, carID)
		if err != nil {
			return fmt.Errorf("reading current parking: %w", err)
		}
		info = &model.CarInfo{
			Car:     *car,
			Owners:  owners,
			Parking: parking,
		}
		return nil
	})
	if err != nil {
		info = nil
	}
	return
}

// GetCarUsers returns the set of users currently owning the carID
// car. While the car exists, this set is never empty (the no-orphan
// invariant); it may be empty only for an id which refers to no car.
func (cars *UseCase) GetCarUsers(ctx context.Context, carID uuid.UUID) (owners []model.User, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		owners, err = cars.carsrp.Conn(c).GetCarUsers(ctx, carID)
		return err
	})
	if err != nil {
		owners = nil
	}
	return
}

// GetUserCars returns the cars currently owned by the targetID user.
// Car lists are self-scoped, so the operation is gated by the
// targets-itself authorization command.
func (cars *UseCase) GetUserCars(ctx context.Context, requesterID, targetID uuid.UUID) (owned []model.Car, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		err := cars.validator.Validate(ctx,
			authz.NewUserTargetsItself(requesterID, targetID),
		)
		if err != nil {
			return err
		}
		owned, err = cars.carsrp.Conn(c).GetUserCars(ctx, targetID)
		return err
	})
	if err != nil {
		owned = nil
	}
	return
}

// UpdateCar renames the carID car on behalf of the requesterID user.
// Ownership is always re-checked here, before the mutation, instead
// of trusting callers to have done so. An empty name is an illegal
// argument and an absent car is a NotFound error.
func (cars *UseCase) UpdateCar(ctx context.Context, requesterID, carID uuid.UUID, name string) error {
	if name == "" {
		return cerr.BadRequest(
			errors.New("car name can not be blank"),
		)
	}
	return cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		cq := cars.carsrp.Conn(c)
		err := cars.validator.Validate(ctx,
			authz.NewUserHasCar(cq, requesterID, carID),
		)
		if err != nil {
			return err
		}
		return cq.UpdateCar(ctx, carID, name)
	})
}

// AddUserOnCar associates the addedID user with the carID car on
// behalf of the creatorID user. An unknown added user is a NotFound
// error. The creator must own the car, the added user must not
// already own it, and the creator may not add itself; each of these
// violations is an Authorization error, surfaced in this order.
// The duplicate-pair command is advisory: the unique constraint of
// the ownership relation remains the authoritative guard under
// concurrent additions.
func (cars *UseCase) AddUserOnCar(ctx context.Context, addedID, carID, creatorID uuid.UUID) error {
	return cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		uq := cars.usersrp.Conn(c)
		ok, err := uq.Exists(ctx, addedID)
		if err != nil {
			return fmt.Errorf("reading user: %w", err)
		}
		if !ok {
			return cerr.NotFound(errors.New("user does not exist"))
		}
		cq := cars.carsrp.Conn(c)
		err = cars.validator.Validate(ctx,
			authz.NewUserHasCar(cq, creatorID, carID),
			authz.NewUserNotTargetingItself(creatorID, addedID),
			authz.NewUserNotAlreadyAddedToCar(cq, addedID, carID),
		)
		if err != nil {
			return err
		}
		return cq.AddUserOnCar(ctx, addedID, carID)
	})
}

// DeleteUserForCar removes the userID user from the carID car owners
// on behalf of the updaterID user. Both the updater and the removed
// user must currently own the car. The ownership row removal and the
// orphan-cascade (deleting the car when its owner set empties) run in
// one serializable transaction, so two concurrent removals may not
// both observe a non-empty owner set and leave an orphan car behind.
func (cars *UseCase) DeleteUserForCar(ctx context.Context, userID, carID, updaterID uuid.UUID) error {
	return cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		cq := cars.carsrp.Conn(c)
		err := cars.validator.Validate(ctx,
			authz.NewUserHasCar(cq, updaterID, carID),
			authz.NewUserHasCar(cq, userID, carID),
		)
		if err != nil {
			return err
		}
		return c.SerializableTx(ctx, func(ctx context.Context, tx repo.Tx) error {
			tq := cars.carsrp.Tx(tx)
			deleted, err := tq.RemoveOwnerAndCascade(ctx, userID, carID)
			if err != nil {
				return err
			}
			if deleted {
				log.Info(ctx, "deleted orphan car",
					log.UUID("car", carID),
				)
			}
			return nil
		})
	})
}
