// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fakerp is an internal helper for the test packages.
// It provides an in-memory realization of the repo.Pool, repo.Conn,
// and repo.Tx interfaces together with the users, cars, and parks
// repositories, mirroring the error categories and the result
// ordering of the PostgreSQL repositories. It allows the use cases
// and the REST resources to be unit tested without a DBMS server.
// The fake is not transactional; a failed handler leaves its partial
// writes behind, which is acceptable for the single-threaded tests.
package fakerp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/core/cerr"
	"github.com/momeni/parking-backend/pkg/core/model"
	"github.com/momeni/parking-backend/pkg/core/repo"
)

// DB is an in-memory database. The zero value is not usable; see New.
type DB struct {
	mu sync.Mutex

	users     map[uuid.UUID]model.User
	creds     map[string]model.Credentials // by login
	cars      map[uuid.UUID]model.Car
	ownership map[uuid.UUID]map[uuid.UUID]bool // carID -> userID set
	parks     map[uuid.UUID]model.ParkLocation
}

// New instantiates an empty in-memory database.
func New() *DB {
	return &DB{
		users:     make(map[uuid.UUID]model.User),
		creds:     make(map[string]model.Credentials),
		cars:      make(map[uuid.UUID]model.Car),
		ownership: make(map[uuid.UUID]map[uuid.UUID]bool),
		parks:     make(map[uuid.UUID]model.ParkLocation),
	}
}

// Pool returns a repo.Pool which hands out connections over the `db`
// database.
func (db *DB) Pool() repo.Pool {
	return pool{db: db}
}

type pool struct {
	db *DB
}

func (p pool) Conn(ctx context.Context, f repo.ConnHandler) error {
	return f(ctx, conn{db: p.db})
}

func (p pool) Close() error {
	return nil
}

type conn struct {
	db *DB
}

func (c conn) Tx(ctx context.Context, f repo.TxHandler) error {
	return f(ctx, tx{db: c.db})
}

func (c conn) SerializableTx(ctx context.Context, f repo.TxHandler) error {
	return f(ctx, tx{db: c.db})
}

func (c conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("fakerp: raw statements are not supported")
}

func (c conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, errors.New("fakerp: raw statements are not supported")
}

func (c conn) IsConn() {
}

type tx struct {
	db *DB
}

func (t tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("fakerp: raw statements are not supported")
}

func (t tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, errors.New("fakerp: raw statements are not supported")
}

func (t tx) IsTx() {
}

// AddUser stores a user with its credentials, overwriting any previous
// user with the same id or login. It is a test fixture setup helper.
func (db *DB) AddUser(u model.User, c model.Credentials) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users[u.ID] = u
	db.creds[u.Login] = c
}

// AddCar stores a car owned by the given users. It is a test fixture
// setup helper.
func (db *DB) AddCar(car model.Car, ownerIDs ...uuid.UUID) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.cars[car.ID] = car
	owners := make(map[uuid.UUID]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = true
	}
	db.ownership[car.ID] = owners
}

// CarExists reports whether the carID car is present.
func (db *DB) CarExists(carID uuid.UUID) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.cars[carID]
	return ok
}

// ParkCount returns the number of stored parking records.
func (db *DB) ParkCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.parks)
}

// Users returns a repo.Users implementation over the `db` database.
func (db *DB) Users() repo.Users {
	return usersRepo{db: db}
}

type usersRepo struct {
	db *DB
}

type usersQueryer struct {
	db *DB
}

func (users usersRepo) Conn(repo.Conn) repo.UsersConnQueryer {
	return usersQueryer{db: users.db}
}

func (users usersRepo) Tx(repo.Tx) repo.UsersTxQueryer {
	return usersQueryer{db: users.db}
}

func (q usersQueryer) GetByID(_ context.Context, userID uuid.UUID) (*model.User, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	u, ok := q.db.users[userID]
	if !ok {
		return nil, cerr.NotFound(errors.New("user does not exist"))
	}
	return &u, nil
}

func (q usersQueryer) GetByLogin(_ context.Context, login string) (*model.User, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	for _, u := range q.db.users {
		if u.Login == login {
			return &u, nil
		}
	}
	return nil, cerr.NotFound(errors.New("user does not exist"))
}

func (q usersQueryer) Credentials(_ context.Context, login string) (*model.Credentials, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	c, ok := q.db.creds[login]
	if !ok {
		return nil, cerr.NotFound(errors.New("user does not exist"))
	}
	return &c, nil
}

func (q usersQueryer) Exists(_ context.Context, userID uuid.UUID) (bool, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	_, ok := q.db.users[userID]
	return ok, nil
}

func (q usersQueryer) UpdateUsername(_ context.Context, userID uuid.UUID, username string) error {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	u, ok := q.db.users[userID]
	if !ok {
		return cerr.NotFound(errors.New("expected one row, but got 0"))
	}
	u.Username = username
	q.db.users[userID] = u
	return nil
}

func (q usersQueryer) Create(_ context.Context, u *model.User, c *model.Credentials) error {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	if _, ok := q.db.creds[u.Login]; ok {
		return cerr.Conflict(errors.New("login is already taken"))
	}
	q.db.users[u.ID] = *u
	q.db.creds[u.Login] = *c
	return nil
}

// Cars returns a repo.Cars implementation over the `db` database.
func (db *DB) Cars() repo.Cars {
	return carsRepo{db: db}
}

type carsRepo struct {
	db *DB
}

type carsQueryer struct {
	db *DB
}

func (cars carsRepo) Conn(repo.Conn) repo.CarsConnQueryer {
	return carsQueryer{db: cars.db}
}

func (cars carsRepo) Tx(repo.Tx) repo.CarsTxQueryer {
	return carsQueryer{db: cars.db}
}

func (q carsQueryer) GetCar(_ context.Context, carID uuid.UUID) (*model.Car, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	car, ok := q.db.cars[carID]
	if !ok {
		return nil, cerr.NotFound(errors.New("car not found"))
	}
	return &car, nil
}

func (q carsQueryer) GetCarUsers(_ context.Context, carID uuid.UUID) ([]model.User, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	owners := make([]model.User, 0)
	for userID := range q.db.ownership[carID] {
		owners = append(owners, q.db.users[userID])
	}
	sort.Slice(owners, func(i, j int) bool {
		return owners[i].Login < owners[j].Login
	})
	return owners, nil
}

func (q carsQueryer) GetUserCars(_ context.Context, userID uuid.UUID) ([]model.Car, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	owned := make([]model.Car, 0)
	for carID, owners := range q.db.ownership {
		if owners[userID] {
			owned = append(owned, q.db.cars[carID])
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].Name < owned[j].Name
	})
	return owned, nil
}

func (q carsQueryer) OwnerExists(_ context.Context, userID, carID uuid.UUID) (bool, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	return q.db.ownership[carID][userID], nil
}

func (q carsQueryer) UpdateCar(_ context.Context, carID uuid.UUID, name string) error {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	car, ok := q.db.cars[carID]
	if !ok {
		return cerr.NotFound(errors.New("expected one row, but got 0"))
	}
	car.Name = name
	q.db.cars[carID] = car
	return nil
}

func (q carsQueryer) AddUserOnCar(_ context.Context, userID, carID uuid.UUID) error {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	if _, ok := q.db.users[userID]; !ok {
		return cerr.NotFound(errors.New("user or car does not exist"))
	}
	owners, ok := q.db.ownership[carID]
	if !ok {
		return cerr.NotFound(errors.New("user or car does not exist"))
	}
	if owners[userID] {
		return cerr.Authorization(
			errors.New("user already added to car"),
		)
	}
	owners[userID] = true
	return nil
}

func (q carsQueryer) CreateCar(_ context.Context, car *model.Car, ownerID uuid.UUID) error {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	if _, ok := q.db.users[ownerID]; !ok {
		return cerr.NotFound(errors.New("user does not exist"))
	}
	q.db.cars[car.ID] = *car
	q.db.ownership[car.ID] = map[uuid.UUID]bool{ownerID: true}
	return nil
}

func (q carsQueryer) RemoveOwnerAndCascade(_ context.Context, userID, carID uuid.UUID) (bool, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	owners := q.db.ownership[carID]
	if !owners[userID] {
		return false, cerr.NotFound(
			errors.New("expected one row, but got 0"),
		)
	}
	delete(owners, userID)
	if len(owners) > 0 {
		return false, nil
	}
	delete(q.db.ownership, carID)
	delete(q.db.cars, carID)
	for parkID, p := range q.db.parks {
		if p.CarID == carID {
			delete(q.db.parks, parkID)
		}
	}
	return true, nil
}

// Parks returns a repo.Parks implementation over the `db` database.
func (db *DB) Parks() repo.Parks {
	return parksRepo{db: db}
}

type parksRepo struct {
	db *DB
}

type parksQueryer struct {
	db *DB
}

func (parks parksRepo) Conn(repo.Conn) repo.ParksConnQueryer {
	return parksQueryer{db: parks.db}
}

func (parks parksRepo) Tx(repo.Tx) repo.ParksTxQueryer {
	return parksQueryer{db: parks.db}
}

func (q parksQueryer) Create(_ context.Context, p *model.ParkLocation) error {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	if _, ok := q.db.cars[p.CarID]; !ok {
		return cerr.NotFound(errors.New("car does not exist"))
	}
	q.db.parks[p.ID] = *p
	return nil
}

func (q parksQueryer) Update(_ context.Context, p *model.ParkLocation) error {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	if _, ok := q.db.parks[p.ID]; !ok {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", 0),
		)
	}
	q.db.parks[p.ID] = *p
	return nil
}

func (q parksQueryer) GetByID(_ context.Context, parkID uuid.UUID) (*model.ParkLocation, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	p, ok := q.db.parks[parkID]
	if !ok {
		return nil, cerr.NotFound(
			errors.New("parking location does not exist"),
		)
	}
	return &p, nil
}

func (q parksQueryer) GetCurrent(_ context.Context, carID uuid.UUID) (*model.ParkLocation, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	var cur *model.ParkLocation
	for _, p := range q.db.parks {
		if p.CarID != carID {
			continue
		}
		p := p
		if cur == nil || p.StartTime.After(cur.StartTime) {
			cur = &p
		}
	}
	return cur, nil
}
