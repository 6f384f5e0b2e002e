// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/google/uuid"
	"github.com/momeni/parking-backend/internal/test/dbcontainer"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres/carsrp"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres/parksrp"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres/schema"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/parking-backend/pkg/core/cerr"
	"github.com/momeni/parking-backend/pkg/core/model"
	"github.com/momeni/parking-backend/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type IntegrationReposTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool

	users repo.Users
	cars  repo.Cars
	parks repo.Parks
}

func TestIntegrationReposTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationReposTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (irts *IntegrationReposTestSuite) SetupSuite() {
	err := irts.Pool.Conn(
		irts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				return schema.Init(ctx, tx.(*postgres.Tx))
			})
		},
	)
	irts.Require().NoError(err, "failed to create schema contents")
	irts.users = usersrp.New()
	irts.cars = carsrp.New()
	irts.parks = parksrp.New()
}

func (irts *IntegrationReposTestSuite) conn(
	f func(ctx context.Context, c repo.Conn) error,
) {
	irts.T().Helper()
	err := irts.Pool.Conn(irts.Ctx, f)
	irts.Require().NoError(err, "connection handler failed")
}

func (irts *IntegrationReposTestSuite) createUser(login string) uuid.UUID {
	u := &model.User{ID: uuid.New(), Login: login, Username: login}
	creds := &model.Credentials{
		Salt:      []byte("salt"),
		StoredKey: []byte("key"),
	}
	irts.conn(func(ctx context.Context, c repo.Conn) error {
		return irts.users.Conn(c).Create(ctx, u, creds)
	})
	return u.ID
}

func (irts *IntegrationReposTestSuite) createCar(
	name string, ownerID uuid.UUID,
) uuid.UUID {
	car := &model.Car{ID: uuid.New(), Name: name}
	irts.conn(func(ctx context.Context, c repo.Conn) error {
		return c.SerializableTx(
			ctx, func(ctx context.Context, tx repo.Tx) error {
				return irts.cars.Tx(tx).CreateCar(ctx, car, ownerID)
			},
		)
	})
	return car.ID
}

func (irts *IntegrationReposTestSuite) TestUsersRepo() {
	aliceID := irts.createUser("it-alice")
	irts.conn(func(ctx context.Context, c repo.Conn) error {
		q := irts.users.Conn(c)

		u, err := q.GetByID(ctx, aliceID)
		irts.Require().NoError(err)
		irts.Equal("it-alice", u.Login)

		u, err = q.GetByLogin(ctx, "it-alice")
		irts.Require().NoError(err)
		irts.Equal(aliceID, u.ID)

		creds, err := q.Credentials(ctx, "it-alice")
		irts.Require().NoError(err)
		irts.Equal([]byte("salt"), creds.Salt)
		irts.Equal([]byte("key"), creds.StoredKey)

		ok, err := q.Exists(ctx, aliceID)
		irts.Require().NoError(err)
		irts.True(ok)
		ok, err = q.Exists(ctx, uuid.New())
		irts.Require().NoError(err)
		irts.False(ok)

		err = q.UpdateUsername(ctx, aliceID, "Alice Liddell")
		irts.Require().NoError(err)
		u, err = q.GetByID(ctx, aliceID)
		irts.Require().NoError(err)
		irts.Equal("Alice Liddell", u.Username)

		_, err = q.GetByLogin(ctx, "it-nobody")
		irts.True(cerr.IsNotFound(err))

		// the login unique constraint is mapped to a conflict
		err = q.Create(ctx, &model.User{
			ID:       uuid.New(),
			Login:    "it-alice",
			Username: "imposter",
		}, &model.Credentials{
			Salt:      []byte("s"),
			StoredKey: []byte("k"),
		})
		irts.True(cerr.IsConflict(err), "got: %v", err)
		return nil
	})
}

func (irts *IntegrationReposTestSuite) TestOwnershipLifecycle() {
	aliceID := irts.createUser("it-own-alice")
	bobID := irts.createUser("it-own-bob")
	carID := irts.createCar("it-civic", aliceID)

	irts.conn(func(ctx context.Context, c repo.Conn) error {
		q := irts.cars.Conn(c)

		ok, err := q.OwnerExists(ctx, aliceID, carID)
		irts.Require().NoError(err)
		irts.True(ok)
		ok, err = q.OwnerExists(ctx, bobID, carID)
		irts.Require().NoError(err)
		irts.False(ok)

		err = q.AddUserOnCar(ctx, bobID, carID)
		irts.Require().NoError(err)

		// the composite primary key guards the duplicate pair
		err = q.AddUserOnCar(ctx, bobID, carID)
		var ce *cerr.Error
		irts.Require().ErrorAs(err, &ce)
		irts.Equal(403, ce.HTTPStatusCode)

		// unknown references are mapped to not-found
		err = q.AddUserOnCar(ctx, uuid.New(), carID)
		irts.True(cerr.IsNotFound(err), "got: %v", err)

		owners, err := q.GetCarUsers(ctx, carID)
		irts.Require().NoError(err)
		irts.Require().Len(owners, 2)
		irts.Equal("it-own-alice", owners[0].Login)
		irts.Equal("it-own-bob", owners[1].Login)
		return nil
	})

	// removing the first owner keeps the car
	irts.conn(func(ctx context.Context, c repo.Conn) error {
		return c.SerializableTx(
			ctx, func(ctx context.Context, tx repo.Tx) error {
				deleted, err := irts.cars.Tx(tx).
					RemoveOwnerAndCascade(ctx, aliceID, carID)
				irts.Require().NoError(err)
				irts.False(deleted)
				return nil
			},
		)
	})

	// removing the last owner cascades the car away
	irts.conn(func(ctx context.Context, c repo.Conn) error {
		return c.SerializableTx(
			ctx, func(ctx context.Context, tx repo.Tx) error {
				deleted, err := irts.cars.Tx(tx).
					RemoveOwnerAndCascade(ctx, bobID, carID)
				irts.Require().NoError(err)
				irts.True(deleted)
				return nil
			},
		)
	})
	irts.conn(func(ctx context.Context, c repo.Conn) error {
		_, err := irts.cars.Conn(c).GetCar(ctx, carID)
		irts.True(cerr.IsNotFound(err), "got: %v", err)
		return nil
	})
}

func (irts *IntegrationReposTestSuite) TestParksRepo() {
	aliceID := irts.createUser("it-park-alice")
	carID := irts.createCar("it-beetle", aliceID)
	now := time.Now().UTC().Truncate(time.Second)

	mkPark := func(begin time.Time) *model.ParkLocation {
		return &model.ParkLocation{
			ID:        uuid.New(),
			CarID:     carID,
			ParkerID:  aliceID,
			CreatorID: aliceID,
			StartTime: begin,
			EndTime:   begin.Add(time.Hour),
			Location:  "3rd and Main",
			Reminder:  true,
		}
	}
	older := mkPark(now.Add(-time.Hour))
	newer := mkPark(now)

	irts.conn(func(ctx context.Context, c repo.Conn) error {
		q := irts.parks.Conn(c)

		cur, err := q.GetCurrent(ctx, carID)
		irts.Require().NoError(err)
		irts.Nil(cur, "a never parked car has no current record")

		irts.Require().NoError(q.Create(ctx, older))
		irts.Require().NoError(q.Create(ctx, newer))

		cur, err = q.GetCurrent(ctx, carID)
		irts.Require().NoError(err)
		irts.Require().NotNil(cur)
		irts.Equal(newer.ID, cur.ID)

		newer.Location = "garage level 2"
		irts.Require().NoError(q.Update(ctx, newer))
		got, err := q.GetByID(ctx, newer.ID)
		irts.Require().NoError(err)
		irts.Equal("garage level 2", got.Location)
		irts.Equal(carID, got.CarID)

		_, err = q.GetByID(ctx, uuid.New())
		irts.True(cerr.IsNotFound(err))

		// parking an unknown car violates the foreign key
		orphan := mkPark(now)
		orphan.CarID = uuid.New()
		err = q.Create(ctx, orphan)
		irts.True(cerr.IsNotFound(err), "got: %v", err)
		return nil
	})

	// cascading the car removes its parking history too
	irts.conn(func(ctx context.Context, c repo.Conn) error {
		return c.SerializableTx(
			ctx, func(ctx context.Context, tx repo.Tx) error {
				deleted, err := irts.cars.Tx(tx).
					RemoveOwnerAndCascade(ctx, aliceID, carID)
				irts.Require().NoError(err)
				irts.True(deleted)
				return nil
			},
		)
	})
	irts.conn(func(ctx context.Context, c repo.Conn) error {
		_, err := irts.parks.Conn(c).GetByID(ctx, newer.ID)
		irts.True(cerr.IsNotFound(err), "got: %v", err)
		return nil
	})
}
