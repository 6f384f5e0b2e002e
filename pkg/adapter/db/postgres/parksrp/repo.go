// Package parksrp is the PostgreSQL repository of parking location
// records.
package parksrp

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

func (parks *Repo) Conn(c repo.Conn) repo.ParksConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, p *model.ParkLocation) error {
	return Create(ctx, cq.Conn, p)
}

func (cq connQueryer) Update(ctx context.Context, p *model.ParkLocation) error {
	return Update(ctx, cq.Conn, p)
}

func (cq connQueryer) GetByID(ctx context.Context, parkID uuid.UUID) (*model.ParkLocation, error) {
	return GetByID(ctx, cq.Conn, parkID)
}

func (cq connQueryer) GetCurrent(ctx context.Context, carID uuid.UUID) (*model.ParkLocation, error) {
	return GetCurrent(ctx, cq.Conn, carID)
}

type txQueryer struct {
	*postgres.Tx
}

func (parks *Repo) Tx(tx repo.Tx) repo.ParksTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, p *model.ParkLocation) error {
	return Create(ctx, tq.Tx, p)
}

func (tq txQueryer) Update(ctx context.Context, p *model.ParkLocation) error {
	return Update(ctx, tq.Tx, p)
}

func (tq txQueryer) GetByID(ctx context.Context, parkID uuid.UUID) (*model.ParkLocation, error) {
	return GetByID(ctx, tq.Tx, parkID)
}

func (tq txQueryer) GetCurrent(ctx context.Context, carID uuid.UUID) (*model.ParkLocation, error) {
	return GetCurrent(ctx, tq.Tx, carID)
}
