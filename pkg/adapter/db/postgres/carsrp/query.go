// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrp is the PostgreSQL repository of cars and of the
// users-cars ownership relation. This package is the exclusive writer
// of that relation; the composite primary key of the users_cars table
// is the authoritative guard against a double-inserted ownership pair
// and the RemoveOwnerAndCascade operation keeps the no-orphan-car
// invariant in one transaction.
package carsrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres"
	"github.com/momeni/parking-backend/pkg/core/cerr"
	"github.com/momeni/parking-backend/pkg/core/model"
	"gorm.io/gorm"
)

type gCar struct {
	ID   uuid.UUID `gorm:"primaryKey;type:uuid;column:id"`
	Name string
}

func (gc *gCar) TableName() string {
	return "cars"
}

func (gc *gCar) Model() *model.Car {
	return &model.Car{
		ID:   gc.ID,
		Name: gc.Name,
	}
}

type gUserCar struct {
	UserID uuid.UUID `gorm:"primaryKey;type:uuid;column:user_id"`
	CarID  uuid.UUID `gorm:"primaryKey;type:uuid;column:car_id"`
}

func (guc *gUserCar) TableName() string {
	return "users_cars"
}

// gOwner carries the users columns which are selected by the
// ownership joins; credentials columns are never joined out.
type gOwner struct {
	ID       uuid.UUID `gorm:"column:id"`
	Login    string
	Username string
}

func GetCar[Q postgres.Queryer](ctx context.Context, q Q, carID uuid.UUID) (*model.Car, error) {
	gdb := q.GORM(ctx)
	gc := &gCar{}
	res := gdb.Where("id=?", carID).Take(gc)
	if err := res.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cerr.NotFound(errors.New("car not found"))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gc.Model(), nil
}

func GetCarUsers[Q postgres.Queryer](ctx context.Context, q Q, carID uuid.UUID) ([]model.User, error) {
	gdb := q.GORM(ctx)
	var gos []gOwner
	res := gdb.Table("users").
		Select("users.id", "users.login", "users.username").
		Joins("join users_cars on users_cars.user_id = users.id").
		Where("users_cars.car_id = ?", carID).
		Order("users.login").
		Scan(&gos)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	users := make([]model.User, 0, len(gos))
	for _, g := range gos {
		users = append(users, model.User{
			ID:       g.ID,
			Login:    g.Login,
			Username: g.Username,
		})
	}
	return users, nil
}

func GetUserCars[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID) ([]model.Car, error) {
	gdb := q.GORM(ctx)
	var gcs []gCar
	res := gdb.Table("cars").
		Select("cars.id", "cars.name").
		Joins("join users_cars on users_cars.car_id = cars.id").
		Where("users_cars.user_id = ?", userID).
		Order("cars.name").
		Scan(&gcs)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	cars := make([]model.Car, 0, len(gcs))
	for _, gc := range gcs {
		cars = append(cars, *gc.Model())
	}
	return cars, nil
}

func OwnerExists[Q postgres.Queryer](ctx context.Context, q Q, userID, carID uuid.UUID) (bool, error) {
	gdb := q.GORM(ctx)
	var count int64
	res := gdb.Model(&gUserCar{}).
		Where("user_id=? and car_id=?", userID, carID).
		Count(&count)
	if err := res.Error; err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return count == 1, nil
}

func UpdateCar[Q postgres.Queryer](ctx context.Context, q Q, carID uuid.UUID, name string) error {
	gdb := q.GORM(ctx)
	res := gdb.Model(&gCar{}).Where("id=?", carID).Update("name", name)
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if n := res.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return nil
}

func AddUserOnCar[Q postgres.Queryer](ctx context.Context, q Q, userID, carID uuid.UUID) error {
	gdb := q.GORM(ctx)
	res := gdb.Create(&gUserCar{UserID: userID, CarID: carID})
	switch err := res.Error; {
	case err == nil:
		return nil
	case postgres.IsUniqueViolation(err):
		// the advisory pre-check lost a race; same outcome
		return cerr.Authorization(
			errors.New("user already added to car"),
		)
	case postgres.IsForeignKeyViolation(err):
		return cerr.NotFound(errors.New("user or car does not exist"))
	default:
		return fmt.Errorf("query: %w", err)
	}
}

// CreateCar inserts the car and its initial ownership row. Callers
// must wrap it in a (serializable) transaction, so the intermediate
// owner-less car is never observable.
func CreateCar(ctx context.Context, tx *postgres.Tx, car *model.Car, ownerID uuid.UUID) error {
	gdb := tx.GORM(ctx)
	res := gdb.Create(&gCar{ID: car.ID, Name: car.Name})
	if err := res.Error; err != nil {
		return fmt.Errorf("inserting car: %w", err)
	}
	res = gdb.Create(&gUserCar{UserID: ownerID, CarID: car.ID})
	switch err := res.Error; {
	case err == nil:
		return nil
	case postgres.IsForeignKeyViolation(err):
		return cerr.NotFound(errors.New("user does not exist"))
	default:
		return fmt.Errorf("inserting ownership: %w", err)
	}
}

// RemoveOwnerAndCascade removes one ownership row and deletes the car
// itself if no other owner remains. Both steps observe the wrapping
// transaction, closing the window in which a car exists with zero
// owners. Parking records of a cascaded car are removed by the
// ON DELETE CASCADE clause of the schema.
func RemoveOwnerAndCascade(ctx context.Context, tx *postgres.Tx, userID, carID uuid.UUID) (bool, error) {
	gdb := tx.GORM(ctx)
	res := gdb.Where("user_id=? and car_id=?", userID, carID).
		Delete(&gUserCar{})
	if err := res.Error; err != nil {
		return false, fmt.Errorf("deleting ownership: %w", err)
	}
	if n := res.RowsAffected; n != 1 {
		return false, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	var count int64
	res = gdb.Model(&gUserCar{}).Where("car_id=?", carID).Count(&count)
	if err := res.Error; err != nil {
		return false, fmt.Errorf("counting owners: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	res = gdb.Where("id=?", carID).Delete(&gCar{})
	if err := res.Error; err != nil {
		return false, fmt.Errorf("deleting orphan car: %w", err)
	}
	return true, nil
}
