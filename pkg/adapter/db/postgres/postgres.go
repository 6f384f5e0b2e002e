// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres provides the PostgreSQL implementation of the
// core repo connection pool, connection, and transaction interfaces,
// using the GORM framework over the pgx driver. Repository packages
// (usersrp, carsrp, and parksrp) build their queries on top of the
// Conn and Tx types of this package.
// The schema sub-package owns the DDL which this implementation
// expects, including the composite primary key of the users_cars
// relation which authoritatively guards against double-insertion of
// an ownership pair.
package postgres
