package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/core/model"
)

type ParksConnQueryer interface {
	ParksQueryer
}

type ParksTxQueryer interface {
	ParksQueryer
}

// ParksQueryer lists the parking location operations which may be
// executed over a connection or transaction. Parking history is
// append-only; an update overwrites the mutable fields of one record
// in place and never touches the other records.
type ParksQueryer interface {
	// Create inserts a new parking record.
	Create(ctx context.Context, p *model.ParkLocation) error
	// Update overwrites the mutable fields of the p.ID record. The
	// record id and car id are immutable post-creation. An absent
	// record is a NotFound error.
	Update(ctx context.Context, p *model.ParkLocation) error
	// GetByID fetches a parking record by its id.
	GetByID(ctx context.Context, parkID uuid.UUID) (*model.ParkLocation, error)
	// GetCurrent returns the parking record of the carID car with the
	// maximal start time, or nil if the car has never been parked.
	GetCurrent(ctx context.Context, carID uuid.UUID) (*model.ParkLocation, error)
}

type Parks interface {
	Conn(Conn) ParksConnQueryer
	Tx(Tx) ParksTxQueryer
}
