// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authn realizes the HTTP Basic authentication middleware.
// Every API request must carry valid credentials; the authenticated
// user identity is stored in the request context, so the resource
// packages can act on behalf of that user.
package authn

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parking-backend/pkg/core/model"
	"github.com/momeni/parking-backend/pkg/core/usecase/usersuc"
)

// userKey is the gin context key of the authenticated user identity.
const userKey = "parkweb-user"

// Middleware returns a gin middleware which authenticates requests
// using the HTTP Basic scheme and the users use case. Requests with
// missing or invalid credentials are aborted with a 401 status code
// and a Basic challenge.
func Middleware(users *usersuc.UseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		login, pass, ok := c.Request.BasicAuth()
		if !ok {
			challenge(c)
			return
		}
		u, err := users.Authenticate(c, login, pass)
		if err != nil {
			c.Header("WWW-Authenticate", `Basic realm="parkweb"`)
			serdser.SerErr(c, err)
			c.Abort()
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

func challenge(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="parkweb"`)
	c.JSON(http.StatusUnauthorized, gin.H{
		"detail": "authentication required",
	})
	c.Abort()
}

// MustUser returns the authenticated user identity which was stored
// by the Middleware. It panics if no user is stored, since routes are
// expected to be registered behind the Middleware unconditionally.
func MustUser(c *gin.Context) *model.User {
	return c.MustGet(userKey).(*model.User)
}
