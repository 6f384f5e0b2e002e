package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/core/model"
)

type CarsConnQueryer interface {
	CarsQueryer
}

// CarsTxQueryer extends the common cars queryer with the mutations
// which must run inside a single (serializable) transaction, so no
// partial state such as an owner-less car may be observed.
type CarsTxQueryer interface {
	CarsQueryer

	// CreateCar inserts the car together with its single initial
	// ownership row, atomically with respect to the wrapping
	// transaction.
	CreateCar(ctx context.Context, car *model.Car, ownerID uuid.UUID) error

	// RemoveOwnerAndCascade removes the (userID, carID) ownership row
	// and, when that empties the owner set of the car, deletes the car
	// itself in the same transaction. It reports whether the cascade
	// fired. An absent ownership row is a NotFound error.
	RemoveOwnerAndCascade(ctx context.Context, userID, carID uuid.UUID) (carDeleted bool, err error)
}

// CarsQueryer lists the cars and ownership related operations which
// may be executed over a connection or transaction. This repository
// exclusively owns the users-cars relation; no other repository may
// write it.
type CarsQueryer interface {
	// GetCar fetches a car by its id, without its owner list.
	GetCar(ctx context.Context, carID uuid.UUID) (*model.Car, error)
	// GetCarUsers returns the users currently owning the carID car.
	GetCarUsers(ctx context.Context, carID uuid.UUID) ([]model.User, error)
	// GetUserCars returns the cars currently owned by the userID user.
	GetUserCars(ctx context.Context, userID uuid.UUID) ([]model.Car, error)
	// OwnerExists reports whether the (userID, carID) pair is present
	// in the ownership relation.
	OwnerExists(ctx context.Context, userID, carID uuid.UUID) (bool, error)
	// UpdateCar overwrites the name of the carID car.
	UpdateCar(ctx context.Context, carID uuid.UUID, name string) error
	// AddUserOnCar inserts one (userID, carID) ownership row. The
	// unique constraint of the relation is the authoritative guard
	// against double-insertion; its violation is reported as an
	// Authorization categorized error.
	AddUserOnCar(ctx context.Context, userID, carID uuid.UUID) error
}

type Cars interface {
	Conn(Conn) CarsConnQueryer
	Tx(Tx) CarsTxQueryer
}
