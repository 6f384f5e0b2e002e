// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrParkingTimeOrder indicates that a parking interval ends before it
// begins. This error encodes a descriptive string and does not
// communicate the invalid time values themselves because the caller of
// Validate already knows about them.
// An error should be devised with this assumption that caller is aware
// of the function which is returning that error in addition to its
// arguments and other relevant system states which may be known before
// calling the function which is returning the error.
var ErrParkingTimeOrder = errors.New(
	"parking beginning can not be later than end time",
)

// ParkLocation models one historical parking record of a car.
// A car may have many such records; its current parking location is
// defined as the record with the latest StartTime. Records are
// append-only: creating a new record never touches or invalidates the
// prior ones. The ID and CarID fields are immutable post-creation,
// while the remaining fields may be overwritten in place by an update.
type ParkLocation struct {
	ID        uuid.UUID // record identity
	CarID     uuid.UUID // the parked car
	ParkerID  uuid.UUID // user who parks the car
	CreatorID uuid.UUID // user who created/updated this record
	StartTime time.Time // when the parking interval begins
	EndTime   time.Time // parking time limit
	Location  string    // free-form description of the location
	Reminder  bool      // whether the parker asked for a reminder
}

// Validate returns nil if the parking record fields are consistent.
// The start time of a record must not be later than its end time.
// Missing times or a blank location are reported too, so callers can
// rely on a validated record being complete.
func (p *ParkLocation) Validate() error {
	switch {
	case p.Location == "":
		return errors.New("location can not be blank")
	case p.StartTime.IsZero() || p.EndTime.IsZero():
		return errors.New("parking time is invalid")
	case p.EndTime.Before(p.StartTime):
		return ErrParkingTimeOrder
	default:
		return nil
	}
}
