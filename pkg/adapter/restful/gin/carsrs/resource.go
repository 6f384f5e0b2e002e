// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrs realizes the cars resource, allowing the car
// lifecycle and ownership REST APIs to be accepted and delegated to
// the cars use cases respectively. All operations act on behalf of
// the authenticated user which is resolved by the authn middleware.
package carsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/authn"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parking-backend/pkg/core/usecase/carsuc"
)

type resource struct {
	cars *carsuc.UseCase
}

// Register instantiates a resource adapting the cars use case instance
// with the relevant REST APIs including:
//  1. POST request to /api/parkweb/v1/cars
//     in order to create a car owned by the caller,
//  2. GET request to /api/parkweb/v1/cars/:cid
//     in order to fetch a car with its owners and current parking,
//  3. PUT request to /api/parkweb/v1/cars/:cid
//     in order to rename a car,
//  4. POST request to /api/parkweb/v1/cars/:cid/users
//     in order to add another owning user on a car, and
//  5. DELETE request to /api/parkweb/v1/cars/:cid/users/:uid
//     in order to remove an owning user from a car.
func Register(r *gin.RouterGroup, cars *carsuc.UseCase) {
	rs := &resource{cars: cars}
	r.POST("cars", rs.CreateCar)
	r.GET("cars/:cid", rs.GetCar)
	r.PUT("cars/:cid", rs.UpdateCar)
	r.POST("cars/:cid/users", rs.AddUserOnCar)
	r.DELETE("cars/:cid/users/:uid", rs.DeleteUserForCar)
}

func (rs *resource) CreateCar(c *gin.Context) {
	req := rs.DserCreateCarReq(c)
	if req == nil {
		return
	}
	caller := authn.MustUser(c)
	car, err := rs.cars.CreateCarForUser(c, req.Name, caller.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

func (rs *resource) GetCar(c *gin.Context) {
	carID, ok := rs.DserCarID(c)
	if !ok {
		return
	}
	caller := authn.MustUser(c)
	info, err := rs.cars.GetCar(c, caller.ID, carID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (rs *resource) UpdateCar(c *gin.Context) {
	req := rs.DserUpdateCarReq(c)
	if req == nil {
		return
	}
	caller := authn.MustUser(c)
	err := rs.cars.UpdateCar(c, caller.ID, req.CarID, req.Name)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) AddUserOnCar(c *gin.Context) {
	req := rs.DserAddUserReq(c)
	if req == nil {
		return
	}
	caller := authn.MustUser(c)
	err := rs.cars.AddUserOnCar(c, req.UserID, req.CarID, caller.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (rs *resource) DeleteUserForCar(c *gin.Context) {
	req := rs.DserDelUserReq(c)
	if req == nil {
		return
	}
	caller := authn.MustUser(c)
	err := rs.cars.DeleteUserForCar(c, req.UserID, req.CarID, caller.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
