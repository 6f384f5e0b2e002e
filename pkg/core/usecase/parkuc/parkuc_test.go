// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package parkuc_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/internal/test/fakerp"
	"github.com/momeni/parking-backend/pkg/core/cerr"
	"github.com/momeni/parking-backend/pkg/core/model"
	"github.com/momeni/parking-backend/pkg/core/usecase/parkuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *fakerp.DB
	parks *parkuc.UseCase

	alice, bob, mallory uuid.UUID
	car                 uuid.UUID
}

// newFixture seeds one car owned by alice and bob, plus the mallory
// user who owns nothing.
func newFixture() *fixture {
	db := fakerp.New()
	f := &fixture{
		db:      db,
		alice:   uuid.New(),
		bob:     uuid.New(),
		mallory: uuid.New(),
		car:     uuid.New(),
	}
	for id, login := range map[uuid.UUID]string{
		f.alice:   "alice",
		f.bob:     "bob",
		f.mallory: "mallory",
	} {
		db.AddUser(model.User{
			ID:       id,
			Login:    login,
			Username: login,
		}, model.Credentials{})
	}
	db.AddCar(model.Car{ID: f.car, Name: "Civic"}, f.alice, f.bob)
	f.parks = parkuc.New(db.Pool(), db.Parks(), db.Cars())
	return f
}

func form(parkerID uuid.UUID, begin time.Time) parkuc.Form {
	return parkuc.Form{
		ParkerID: parkerID,
		Begin:    begin,
		End:      begin.Add(2 * time.Hour),
		Location: "3rd and Main",
		Reminder: true,
	}
}

func assertStatus(t *testing.T, err error, status int, detail string) {
	t.Helper()
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, status, ce.HTTPStatusCode)
	assert.EqualError(t, ce.Err, detail)
}

func TestCreateParkLocation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	now := time.Now()

	p, err := f.parks.CreateParkLocation(
		ctx, f.car, f.alice, form(f.bob, now),
	)
	require.NoError(t, err)
	assert.Equal(t, f.car, p.CarID)
	assert.Equal(t, f.bob, p.ParkerID)
	assert.Equal(t, f.alice, p.CreatorID)

	cur, err := f.parks.GetCurrentParkLocation(ctx, f.alice, f.car)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, p.ID, cur.ID)
}

func TestCreateParkLocationRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	now := time.Now()

	// a reversed interval writes nothing
	bad := form(f.bob, now)
	bad.Begin, bad.End = bad.End, bad.Begin
	_, err := f.parks.CreateParkLocation(ctx, f.car, f.alice, bad)
	assertStatus(t, err, http.StatusBadRequest,
		"parking beginning can not be later than end time")
	assert.Zero(t, f.db.ParkCount())

	bad = form(f.bob, now)
	bad.Location = ""
	_, err = f.parks.CreateParkLocation(ctx, f.car, f.alice, bad)
	assertStatus(t, err, http.StatusBadRequest,
		"location can not be blank")

	// a creator who does not own the car is an inconsistent request
	_, err = f.parks.CreateParkLocation(
		ctx, f.car, f.mallory, form(f.bob, now),
	)
	assertStatus(t, err, http.StatusBadRequest,
		"user does not own the car")

	// so is a designated parker who does not own it
	_, err = f.parks.CreateParkLocation(
		ctx, f.car, f.alice, form(f.mallory, now),
	)
	assertStatus(t, err, http.StatusBadRequest,
		"user who parks does not own the car")

	assert.Zero(t, f.db.ParkCount())
}

func TestCurrentParkLocationHasMaximalStartTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	now := time.Now()

	older, err := f.parks.CreateParkLocation(
		ctx, f.car, f.alice, form(f.alice, now.Add(-time.Hour)),
	)
	require.NoError(t, err)
	newer, err := f.parks.CreateParkLocation(
		ctx, f.car, f.bob, form(f.bob, now),
	)
	require.NoError(t, err)

	cur, err := f.parks.GetCurrentParkLocation(ctx, f.alice, f.car)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, newer.ID, cur.ID)
	assert.NotEqual(t, older.ID, cur.ID)
	// history is append-only; both records remain
	assert.Equal(t, 2, f.db.ParkCount())
}

func TestGetCurrentParkLocation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	// a never parked car yields no record and no error
	cur, err := f.parks.GetCurrentParkLocation(ctx, f.alice, f.car)
	require.NoError(t, err)
	assert.Nil(t, cur)

	// reading is gated by ownership
	_, err = f.parks.GetCurrentParkLocation(ctx, f.mallory, f.car)
	assertStatus(t, err, http.StatusForbidden,
		"user does not own this car")
}

func TestUpdateParkLocation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	now := time.Now()

	p, err := f.parks.CreateParkLocation(
		ctx, f.car, f.alice, form(f.alice, now),
	)
	require.NoError(t, err)

	// the updater takes the creator role
	upd := form(f.alice, now.Add(time.Hour))
	upd.Location = "garage level 2"
	got, err := f.parks.UpdateParkLocation(
		ctx, f.car, p.ID, f.bob, upd,
	)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, f.bob, got.CreatorID)
	assert.Equal(t, "garage level 2", got.Location)
	assert.Equal(t, 1, f.db.ParkCount(), "update overwrites in place")

	_, err = f.parks.UpdateParkLocation(
		ctx, f.car, uuid.New(), f.bob, upd,
	)
	assertStatus(t, err, http.StatusNotFound,
		"parking location does not exist")

	// a record may not be reached through another car
	otherCar := uuid.New()
	f.db.AddCar(model.Car{ID: otherCar, Name: "Beetle"}, f.alice)
	_, err = f.parks.UpdateParkLocation(
		ctx, otherCar, p.ID, f.alice, form(f.alice, now),
	)
	assertStatus(t, err, http.StatusNotFound,
		"parking location does not belong to this car")

	// field validations apply to updates too
	bad := form(f.alice, now)
	bad.Begin, bad.End = bad.End, bad.Begin
	_, err = f.parks.UpdateParkLocation(ctx, f.car, p.ID, f.alice, bad)
	assertStatus(t, err, http.StatusBadRequest,
		"parking beginning can not be later than end time")
}
