// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/authn"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/carsrs"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/parksrs"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/usersrs"
	"github.com/momeni/parking-backend/pkg/core/auth"
	"github.com/momeni/parking-backend/pkg/core/repo"
	"github.com/momeni/parking-backend/pkg/core/usecase/carsuc"
	"github.com/momeni/parking-backend/pkg/core/usecase/parkuc"
	"github.com/momeni/parking-backend/pkg/core/usecase/usersuc"
)

// Register instantiates the use cases and registers the resource
// packages as request handlers using the e gin-gonic engine instance.
// The p connections pool is passed to the use case instances, so they
// may acquire/release connections and transactions on demand. These
// connections/transactions will be passed to the given repositories
// later in order to run relevant queries on them and accomplish those
// use cases. Each use case package is named like carsuc and each
// repository package is named like carsrp; the repository instances
// are taken as interfaces, so tests may register the routes over
// in-memory repositories.
// All routes live under the /api/parkweb/v1 group and behind the
// Basic authentication middleware of the authn package.
func Register(
	e *gin.Engine, p repo.Pool,
	usersRepo repo.Users, carsRepo repo.Cars, parksRepo repo.Parks,
	v auth.Verifier,
) {
	usersUseCase := usersuc.New(p, usersRepo, v)
	carsUseCase := carsuc.New(p, carsRepo, usersRepo, parksRepo)
	parksUseCase := parkuc.New(p, parksRepo, carsRepo)

	r := e.Group("/api/parkweb/v1")
	r.Use(authn.Middleware(usersUseCase))
	carsrs.Register(r, carsUseCase)
	parksrs.Register(r, parksUseCase)
	usersrs.Register(r, usersUseCase, carsUseCase)
}
