// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/internal/test/fakerp"
	"github.com/momeni/parking-backend/pkg/core/cerr"
	"github.com/momeni/parking-backend/pkg/core/model"
	"github.com/momeni/parking-backend/pkg/core/usecase/carsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(db *fakerp.DB) *carsuc.UseCase {
	return carsuc.New(db.Pool(), db.Cars(), db.Users(), db.Parks())
}

func addUser(db *fakerp.DB, login string) uuid.UUID {
	id := uuid.New()
	db.AddUser(model.User{
		ID:       id,
		Login:    login,
		Username: login,
	}, model.Credentials{})
	return id
}

func assertStatus(t *testing.T, err error, status int, detail string) {
	t.Helper()
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, status, ce.HTTPStatusCode)
	assert.EqualError(t, ce.Err, detail)
}

func TestCreateCarForUser(t *testing.T) {
	ctx := context.Background()
	db := fakerp.New()
	alice := addUser(db, "alice")
	cars := newUseCase(db)

	car, err := cars.CreateCarForUser(ctx, "Civic", alice)
	require.NoError(t, err)
	require.NotNil(t, car)
	assert.Equal(t, "Civic", car.Name)

	owned, err := cars.GetUserCars(ctx, alice, alice)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, car.ID, owned[0].ID)
}

func TestCreateCarForUserRejections(t *testing.T) {
	ctx := context.Background()
	db := fakerp.New()
	alice := addUser(db, "alice")
	cars := newUseCase(db)

	_, err := cars.CreateCarForUser(ctx, "", alice)
	assertStatus(t, err, http.StatusBadRequest,
		"car name can not be blank")

	_, err = cars.CreateCarForUser(ctx, "Civic", uuid.New())
	assertStatus(t, err, http.StatusNotFound, "user does not exist")
}

func TestGetCarRequiresOwnership(t *testing.T) {
	ctx := context.Background()
	db := fakerp.New()
	alice := addUser(db, "alice")
	bob := addUser(db, "bob")
	cars := newUseCase(db)

	car, err := cars.CreateCarForUser(ctx, "Civic", alice)
	require.NoError(t, err)

	_, err = cars.GetCar(ctx, bob, car.ID)
	assertStatus(t, err, http.StatusForbidden,
		"user does not own this car")

	info, err := cars.GetCar(ctx, alice, car.ID)
	require.NoError(t, err)
	assert.Equal(t, car.ID, info.ID)
	require.Len(t, info.Owners, 1)
	assert.Equal(t, alice, info.Owners[0].ID)
	assert.Nil(t, info.Parking, "a fresh car has no parking location")
}

func TestUpdateCar(t *testing.T) {
	ctx := context.Background()
	db := fakerp.New()
	alice := addUser(db, "alice")
	bob := addUser(db, "bob")
	cars := newUseCase(db)

	car, err := cars.CreateCarForUser(ctx, "Civic", alice)
	require.NoError(t, err)

	err = cars.UpdateCar(ctx, bob, car.ID, "Accord")
	assertStatus(t, err, http.StatusForbidden,
		"user does not own this car")

	err = cars.UpdateCar(ctx, alice, car.ID, "")
	assertStatus(t, err, http.StatusBadRequest,
		"car name can not be blank")

	err = cars.UpdateCar(ctx, alice, car.ID, "Accord")
	require.NoError(t, err)
	info, err := cars.GetCar(ctx, alice, car.ID)
	require.NoError(t, err)
	assert.Equal(t, "Accord", info.Name)
}

func TestAddUserOnCar(t *testing.T) {
	ctx := context.Background()
	db := fakerp.New()
	alice := addUser(db, "alice")
	bob := addUser(db, "bob")
	carol := addUser(db, "carol")
	cars := newUseCase(db)

	car, err := cars.CreateCarForUser(ctx, "Civic", alice)
	require.NoError(t, err)

	// unknown added user takes precedence over any authorization check
	err = cars.AddUserOnCar(ctx, uuid.New(), car.ID, alice)
	assertStatus(t, err, http.StatusNotFound, "user does not exist")

	// the creator must own the car
	err = cars.AddUserOnCar(ctx, carol, car.ID, bob)
	assertStatus(t, err, http.StatusForbidden,
		"user does not own this car")

	// the creator may not add itself
	err = cars.AddUserOnCar(ctx, alice, car.ID, alice)
	assertStatus(t, err, http.StatusForbidden,
		"user can not target itself for this operation")

	err = cars.AddUserOnCar(ctx, bob, car.ID, alice)
	require.NoError(t, err)

	// a second addition of the same pair is rejected
	err = cars.AddUserOnCar(ctx, bob, car.ID, alice)
	assertStatus(t, err, http.StatusForbidden,
		"user already added to car")

	owners, err := cars.GetCarUsers(ctx, car.ID)
	require.NoError(t, err)
	require.Len(t, owners, 2)
	assert.Equal(t, "alice", owners[0].Login)
	assert.Equal(t, "bob", owners[1].Login)
}

func TestDeleteUserForCar(t *testing.T) {
	ctx := context.Background()
	db := fakerp.New()
	alice := addUser(db, "alice")
	bob := addUser(db, "bob")
	cars := newUseCase(db)

	car, err := cars.CreateCarForUser(ctx, "Civic", alice)
	require.NoError(t, err)
	err = cars.AddUserOnCar(ctx, bob, car.ID, alice)
	require.NoError(t, err)

	// bob removes alice; the car keeps its remaining owner
	err = cars.DeleteUserForCar(ctx, alice, car.ID, bob)
	require.NoError(t, err)
	assert.True(t, db.CarExists(car.ID))
	owners, err := cars.GetCarUsers(ctx, car.ID)
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, bob, owners[0].ID)

	// a removed user may no longer act on the car
	err = cars.DeleteUserForCar(ctx, bob, car.ID, alice)
	assertStatus(t, err, http.StatusForbidden,
		"user does not own this car")

	// bob removes itself; the orphaned car is cascaded away
	err = cars.DeleteUserForCar(ctx, bob, car.ID, bob)
	require.NoError(t, err)
	assert.False(t, db.CarExists(car.ID))

	err = cars.DeleteUserForCar(ctx, bob, car.ID, bob)
	assertStatus(t, err, http.StatusForbidden,
		"user does not own this car")
}

func TestGetUserCarsIsSelfScoped(t *testing.T) {
	ctx := context.Background()
	db := fakerp.New()
	alice := addUser(db, "alice")
	bob := addUser(db, "bob")
	cars := newUseCase(db)

	_, err := cars.CreateCarForUser(ctx, "Beetle", alice)
	require.NoError(t, err)
	_, err = cars.CreateCarForUser(ctx, "Accord", alice)
	require.NoError(t, err)

	_, err = cars.GetUserCars(ctx, bob, alice)
	assertStatus(t, err, http.StatusForbidden,
		"user can not target another user for this operation")

	owned, err := cars.GetUserCars(ctx, alice, alice)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "Accord", owned[0].Name)
	assert.Equal(t, "Beetle", owned[1].Name)
}
