// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema creates the database tables and can seed them with
// development suitable data rows. All statements run in a caller
// provided transaction, so a half-initialized schema is never
// persisted.
package schema

import (
	"context"
	"fmt"

	"github.com/momeni/parking-backend/pkg/adapter/db/postgres"
)

// The users_cars composite primary key is the authoritative guard
// against a duplicated ownership pair and the ON DELETE CASCADE
// clauses remove the dependent ownership and parking rows whenever
// a car or user row goes away.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id uuid PRIMARY KEY,
	login varchar(100) NOT NULL UNIQUE,
	username varchar(100) NOT NULL,
	password_salt bytea NOT NULL,
	password_hash bytea NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS cars (
	id uuid PRIMARY KEY,
	name varchar(100) NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS users_cars (
	user_id uuid NOT NULL
		REFERENCES users (id) ON DELETE CASCADE,
	car_id uuid NOT NULL
		REFERENCES cars (id) ON DELETE CASCADE,
	PRIMARY KEY (user_id, car_id)
)`,
	`CREATE TABLE IF NOT EXISTS park_location (
	id uuid PRIMARY KEY,
	car_id uuid NOT NULL
		REFERENCES cars (id) ON DELETE CASCADE,
	user_who_park_id uuid NOT NULL,
	creator_user_id uuid NOT NULL,
	park_start_time timestamptz NOT NULL,
	park_end_time timestamptz NOT NULL,
	location varchar(400) NOT NULL,
	reminder boolean NOT NULL DEFAULT false
)`,
	`CREATE INDEX IF NOT EXISTS park_location_car_id_start_time_idx
	ON park_location (car_id, park_start_time DESC)`,
}

// Init creates all tables and indices, if they are missing, within
// the tx transaction.
func Init(ctx context.Context, tx *postgres.Tx) error {
	for _, stmt := range ddl {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt, err)
		}
	}
	return nil
}
