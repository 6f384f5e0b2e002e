// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrs realizes the users resource. The exposed operations
// are self-scoped; a user may only rename itself and list its own
// cars, as enforced by the underlying use cases.
package usersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/authn"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parking-backend/pkg/core/usecase/carsuc"
	"github.com/momeni/parking-backend/pkg/core/usecase/usersuc"
)

type resource struct {
	users *usersuc.UseCase
	cars  *carsuc.UseCase
}

// Register instantiates a resource adapting the users and cars use
// case instances with the relevant REST APIs including:
//  1. PUT request to /api/parkweb/v1/users/:uid/username
//     in order to modify the username of a user, and
//  2. GET request to /api/parkweb/v1/users/:uid/cars
//     in order to list the cars which are owned by a user.
func Register(r *gin.RouterGroup, users *usersuc.UseCase, cars *carsuc.UseCase) {
	rs := &resource{users: users, cars: cars}
	r.PUT("users/:uid/username", rs.ModifyUsername)
	r.GET("users/:uid/cars", rs.GetUserCars)
}

func (rs *resource) ModifyUsername(c *gin.Context) {
	req := rs.DserModifyUsernameReq(c)
	if req == nil {
		return
	}
	caller := authn.MustUser(c)
	err := rs.users.ModifyUsername(
		c, caller.ID, req.UserID, req.Username,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) GetUserCars(c *gin.Context) {
	userID, ok := rs.DserUserID(c)
	if !ok {
		return
	}
	caller := authn.MustUser(c)
	cars, err := rs.cars.GetUserCars(c, caller.ID, userID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}
