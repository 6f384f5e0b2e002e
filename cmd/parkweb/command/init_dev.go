// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/adapter/config"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres/schema"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/parking-backend/pkg/adapter/hash/scram"
	"github.com/momeni/parking-backend/pkg/core/cerr"
	"github.com/momeni/parking-backend/pkg/core/model"
	"github.com/momeni/parking-backend/pkg/core/repo"
	"github.com/spf13/cobra"
)

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development data",
	Long: `Initialize database contents with development suitable data.
The database connection information are read from the config file.
All tables and indices are created if they are missing and a set of
sample users are seeded, each having its login name as its password,
so the REST APIs can be exercised right away. Sample users which
exist already are left intact. The initialization runs in one
transaction, so a half-initialized schema is never persisted.`,
	RunE: initDev,
	Args: cobra.NoArgs,
}

// sample user logins; each is seeded with its login as its password
var sampleLogins = []string{"alice", "bob", "carol"}

func initDev(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	mech, err := c.Auth.NewMechanism()
	if err != nil {
		return fmt.Errorf("creating password mechanism: %w", err)
	}
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if err := schema.Init(ctx, tx.(*postgres.Tx)); err != nil {
				return err
			}
			return seedUsers(ctx, usersrp.New().Tx(tx), mech)
		})
	})
	if err != nil {
		return fmt.Errorf("initializing DB with dev data: %w", err)
	}
	return nil
}

func seedUsers(ctx context.Context, q repo.UsersTxQueryer, mech *scram.Mechanism) error {
	for _, login := range sampleLogins {
		salt, err := mech.NewSalt()
		if err != nil {
			return fmt.Errorf("creating salt for %q: %w", login, err)
		}
		key, err := mech.StoredKey(login, salt)
		if err != nil {
			return fmt.Errorf("hashing password of %q: %w", login, err)
		}
		u := &model.User{
			ID:       uuid.New(),
			Login:    login,
			Username: login,
		}
		creds := &model.Credentials{Salt: salt, StoredKey: key}
		err = q.Create(ctx, u, creds)
		if cerr.IsConflict(err) {
			continue // seeded by a previous run
		}
		if err != nil {
			return fmt.Errorf("creating user %q: %w", login, err)
		}
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initDevCmd)
}
