// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package parksrs realizes the parking locations resource, allowing
// the parking location REST APIs to be accepted and delegated to the
// parking use cases respectively.
package parksrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/authn"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parking-backend/pkg/core/usecase/parkuc"
)

type resource struct {
	parks *parkuc.UseCase
}

// Register instantiates a resource adapting the parking use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/parkweb/v1/cars/:cid/park-location
//     in order to fetch the current parking location of a car,
//  2. POST request to /api/parkweb/v1/cars/:cid/park-location
//     in order to record a new parking location, and
//  3. PUT request to /api/parkweb/v1/cars/:cid/park-location/:pid
//     in order to update an existing parking location record.
func Register(r *gin.RouterGroup, parks *parkuc.UseCase) {
	rs := &resource{parks: parks}
	r.GET("cars/:cid/park-location", rs.GetCurrentParkLocation)
	r.POST("cars/:cid/park-location", rs.CreateParkLocation)
	r.PUT("cars/:cid/park-location/:pid", rs.UpdateParkLocation)
}

func (rs *resource) GetCurrentParkLocation(c *gin.Context) {
	carID, ok := rs.DserCarID(c)
	if !ok {
		return
	}
	caller := authn.MustUser(c)
	p, err := rs.parks.GetCurrentParkLocation(c, caller.ID, carID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	// p is nil (serialized as null) for a never parked car
	c.JSON(http.StatusOK, p)
}

func (rs *resource) CreateParkLocation(c *gin.Context) {
	req := rs.DserCreateParkReq(c)
	if req == nil {
		return
	}
	caller := authn.MustUser(c)
	p, err := rs.parks.CreateParkLocation(
		c, req.CarID, caller.ID, req.Form,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (rs *resource) UpdateParkLocation(c *gin.Context) {
	req := rs.DserUpdateParkReq(c)
	if req == nil {
		return
	}
	caller := authn.MustUser(c)
	p, err := rs.parks.UpdateParkLocation(
		c, req.CarID, req.ParkID, caller.ID, req.Form,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
