// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersuc contains the users UseCase which resolves verified
// logins to durable user identities and supports the self-scoped
// username modification use case.
package usersuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/core/auth"
	"github.com/momeni/parking-backend/pkg/core/authz"
	"github.com/momeni/parking-backend/pkg/core/cerr"
	"github.com/momeni/parking-backend/pkg/core/model"
	"github.com/momeni/parking-backend/pkg/core/repo"
)

// UseCase represents a users use case. It holds a database connection
// pool, the users repository instance (to be guided with the DB pool),
// the password verifier of the adapter layer, and the authorization
// validator which gates the mutating operations.
type UseCase struct {
	pool      repo.Pool
	usersrp   repo.Users
	verifier  auth.Verifier
	validator authz.Validator
}

// New instantiates a users use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
func New(p repo.Pool, u repo.Users, v auth.Verifier) *UseCase {
	return &UseCase{
		pool:      p,
		usersrp:   u,
		verifier:  v,
		validator: authz.NewValidator(),
	}
}

// ResolveLogin maps a verified login to its durable user identity.
// The login is assumed to be verified already (by Authenticate or an
// equivalent collaborator); this method performs the identity lookup
// alone. An unknown login is a NotFound error.
func (users *UseCase) ResolveLogin(ctx context.Context, login string) (u *model.User, err error) {
	if login == "" {
		return nil, cerr.BadRequest(
			errors.New("user login can not be null"),
		)
	}
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		u, err = q.GetByLogin(ctx, login)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// Authenticate verifies the login and pass credentials and returns
// the authenticated user identity. Both an unknown login and a
// mismatching password are reported uniformly as an Authentication
// categorized error, so callers can not distinguish them.
func (users *UseCase) Authenticate(ctx context.Context, login, pass string) (u *model.User, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		creds, err := q.Credentials(ctx, login)
		if cerr.IsNotFound(err) {
			return badCredentials()
		} else if err != nil {
			return fmt.Errorf("fetching credentials: %w", err)
		}
		ok, err := users.verifier.Verify(
			pass, creds.Salt, creds.StoredKey,
		)
		if err != nil {
			return fmt.Errorf("verifying password: %w", err)
		}
		if !ok {
			return badCredentials()
		}
		u, err = q.GetByLogin(ctx, login)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

func badCredentials() error {
	return cerr.Authentication(errors.New("invalid credentials"))
}

// ModifyUsername overwrites the username of the targetID user on
// behalf of the requesterID user. Usernames are mutable by the user
// itself only, so the operation is gated by the targets-itself and
// user-exists authorization commands. A blank username is an
// illegal argument.
func (users *UseCase) ModifyUsername(ctx context.Context, requesterID, targetID uuid.UUID, username string) error {
	if username == "" {
		return cerr.BadRequest(
			errors.New("username can not be null or blank"),
		)
	}
	return users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		err := users.validator.Validate(ctx,
			authz.NewUserTargetsItself(requesterID, targetID),
			authz.NewUserExists(q, targetID),
		)
		if err != nil {
			return err
		}
		return q.UpdateUsername(ctx, targetID, username)
	})
}
