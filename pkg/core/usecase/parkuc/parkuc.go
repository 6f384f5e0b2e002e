// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package parkuc contains the parking locations UseCase. It keeps an
// append-only parking history per car, where the current parking
// location is the record with the latest start time, and enforces
// that both the record creator (or updater) and the designated parker
// own the car at the time of each write.
package parkuc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/core/authz"
	"github.com/momeni/parking-backend/pkg/core/cerr"
	"github.com/momeni/parking-backend/pkg/core/model"
	"github.com/momeni/parking-backend/pkg/core/repo"
)

// Form carries the caller-provided fields of a parking record
// creation or update. Times are expected to be parsed already by the
// adapter layer; zero times are rejected as illegal arguments here.
type Form struct {
	ParkerID uuid.UUID // user who parks the car; must own it
	Begin    time.Time // when the parking interval begins
	End      time.Time // parking time limit
	Location string    // free-form description of the location
	Reminder bool      // whether the parker asks for a reminder
}

// UseCase represents a parking locations use case. It holds a
// database connection pool, the parks and cars repository instances
// (to be guided with the DB pool), and the authorization validator.
// The cars repository is consulted read-only; this use case never
// writes the ownership relation.
type UseCase struct {
	pool      repo.Pool
	parksrp   repo.Parks
	carsrp    repo.Cars
	validator authz.Validator
}

// New instantiates a parking locations use case.
func New(p repo.Pool, pk repo.Parks, c repo.Cars) *UseCase {
	return &UseCase{
		pool:      p,
		parksrp:   pk,
		carsrp:    c,
		validator: authz.NewValidator(),
	}
}

// CreateParkLocation appends a new parking record for the carID car
// on behalf of the creatorID user. All fields are validated first;
// a blank location, missing times, an interval which ends before it
// begins, and a creator or parker who does not currently own the car
// are illegal arguments (ownership is checked at write time and is
// not retroactively enforced if revoked later). Prior records are
// never touched; history is append-only.
func (parks *UseCase) CreateParkLocation(ctx context.Context, carID, creatorID uuid.UUID, f Form) (p *model.ParkLocation, err error) {
	err = parks.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		rec := &model.ParkLocation{
			ID:        uuid.New(),
			CarID:     carID,
			ParkerID:  f.ParkerID,
			CreatorID: creatorID,
			StartTime: f.Begin,
			EndTime:   f.End,
			Location:  f.Location,
			Reminder:  f.Reminder,
		}
		if err := parks.validateWrite(ctx, c, rec); err != nil {
			return err
		}
		if err := parks.parksrp.Conn(c).Create(ctx, rec); err != nil {
			return err
		}
		p = rec
		return nil
	})
	if err != nil {
		p = nil
	}
	return
}

// UpdateParkLocation overwrites the mutable fields of the parkID
// record of the carID car on behalf of the updaterID user, after
// re-applying the same field and ownership validations as a creation
// (the updater takes the creator role). The record identity and its
// car are immutable post-creation; a parkID which does not exist, or
// belongs to another car, is a NotFound error.
func (parks *UseCase) UpdateParkLocation(ctx context.Context, carID, parkID, updaterID uuid.UUID, f Form) (p *model.ParkLocation, err error) {
	err = parks.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		pq := parks.parksrp.Conn(c)
		rec, err := pq.GetByID(ctx, parkID)
		if err != nil {
			return err
		}
		if rec.CarID != carID {
			return cerr.NotFound(errors.New(
				"parking location does not belong to this car",
			))
		}
		rec.ParkerID = f.ParkerID
		rec.CreatorID = updaterID
		rec.StartTime = f.Begin
		rec.EndTime = f.End
		rec.Location = f.Location
		rec.Reminder = f.Reminder
		if err := parks.validateWrite(ctx, c, rec); err != nil {
			return err
		}
		if err := pq.Update(ctx, rec); err != nil {
			return err
		}
		p = rec
		return nil
	})
	if err != nil {
		p = nil
	}
	return
}

// GetCurrentParkLocation returns the parking record of the carID car
// with the maximal start time, on behalf of the requesterID user who
// must own the car. It returns nil without an error for a car which
// has never been parked.
func (parks *UseCase) GetCurrentParkLocation(ctx context.Context, requesterID, carID uuid.UUID) (p *model.ParkLocation, err error) {
	err = parks.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		err := parks.validator.Validate(ctx,
			authz.NewUserHasCar(
				parks.carsrp.Conn(c), requesterID, carID,
			),
		)
		if err != nil {
			return err
		}
		p, err = parks.parksrp.Conn(c).GetCurrent(ctx, carID)
		return err
	})
	if err != nil {
		p = nil
	}
	return
}

// validateWrite applies the field and ownership validations which are
// shared by the creation and update paths. Ownership violations are
// illegal arguments on these paths (they describe an inconsistent
// request body, not a missing permission of the caller).
func (parks *UseCase) validateWrite(ctx context.Context, c repo.Conn, rec *model.ParkLocation) error {
	if err := rec.Validate(); err != nil {
		return cerr.BadRequest(err)
	}
	cq := parks.carsrp.Conn(c)
	ok, err := cq.OwnerExists(ctx, rec.CreatorID, rec.CarID)
	if err != nil {
		return err
	}
	if !ok {
		return cerr.BadRequest(
			errors.New("user does not own the car"),
		)
	}
	ok, err = cq.OwnerExists(ctx, rec.ParkerID, rec.CarID)
	if err != nil {
		return err
	}
	if !ok {
		return cerr.BadRequest(
			errors.New("user who parks does not own the car"),
		)
	}
	return nil
}
