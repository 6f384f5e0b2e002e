package carsrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres"
	"github.com/momeni/parking-backend/pkg/core/model"
	"github.com/momeni/parking-backend/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (cars *Repo) Conn(c repo.Conn) repo.CarsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) GetCar(ctx context.Context, carID uuid.UUID) (*model.Car, error) {
	return GetCar(ctx, cq.Conn, carID)
}

func (cq connQueryer) GetCarUsers(ctx context.Context, carID uuid.UUID) ([]model.User, error) {
	return GetCarUsers(ctx, cq.Conn, carID)
}

func (cq connQueryer) GetUserCars(ctx context.Context, userID uuid.UUID) ([]model.Car, error) {
	return GetUserCars(ctx, cq.Conn, userID)
}

func (cq connQueryer) OwnerExists(ctx context.Context, userID, carID uuid.UUID) (bool, error) {
	return OwnerExists(ctx, cq.Conn, userID, carID)
}

func (cq connQueryer) UpdateCar(ctx context.Context, carID uuid.UUID, name string) error {
	return UpdateCar(ctx, cq.Conn, carID, name)
}

func (cq connQueryer) AddUserOnCar(ctx context.Context, userID, carID uuid.UUID) error {
	return AddUserOnCar(ctx, cq.Conn, userID, carID)
}

type txQueryer struct {
	*postgres.Tx
}

func (cars *Repo) Tx(tx repo.Tx) repo.CarsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) GetCar(ctx context.Context, carID uuid.UUID) (*model.Car, error) {
	return GetCar(ctx, tq.Tx, carID)
}

func (tq txQueryer) GetCarUsers(ctx context.Context, carID uuid.UUID) ([]model.User, error) {
	return GetCarUsers(ctx, tq.Tx, carID)
}

func (tq txQueryer) GetUserCars(ctx context.Context, userID uuid.UUID) ([]model.Car, error) {
	return GetUserCars(ctx, tq.Tx, userID)
}

func (tq txQueryer) OwnerExists(ctx context.Context, userID, carID uuid.UUID) (bool, error) {
	return OwnerExists(ctx, tq.Tx, userID, carID)
}

func (tq txQueryer) UpdateCar(ctx context.Context, carID uuid.UUID, name string) error {
	return UpdateCar(ctx, tq.Tx, carID, name)
}

func (tq txQueryer) AddUserOnCar(ctx context.Context, userID, carID uuid.UUID) error {
	return AddUserOnCar(ctx, tq.Tx, userID, carID)
}

func (tq txQueryer) CreateCar(ctx context.Context, car *model.Car, ownerID uuid.UUID) error {
	return CreateCar(ctx, tq.Tx, car, ownerID)
}

func (tq txQueryer) RemoveOwnerAndCascade(ctx context.Context, userID, carID uuid.UUID) (bool, error) {
	return RemoveOwnerAndCascade(ctx, tq.Tx, userID, carID)
}
