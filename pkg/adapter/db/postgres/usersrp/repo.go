package usersrp

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

func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) GetByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return GetByID(ctx, cq.Conn, userID)
}

func (cq connQueryer) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return GetByLogin(ctx, cq.Conn, login)
}

func (cq connQueryer) Credentials(ctx context.Context, login string) (*model.Credentials, error) {
	return Credentials(ctx, cq.Conn, login)
}

func (cq connQueryer) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return Exists(ctx, cq.Conn, userID)
}

func (cq connQueryer) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error {
	return UpdateUsername(ctx, cq.Conn, userID, username)
}

func (cq connQueryer) Create(ctx context.Context, u *model.User, c *model.Credentials) error {
	return Create(ctx, cq.Conn, u, c)
}

type txQueryer struct {
	*postgres.Tx
}

func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) GetByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return GetByID(ctx, tq.Tx, userID)
}

func (tq txQueryer) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return GetByLogin(ctx, tq.Tx, login)
}

func (tq txQueryer) Credentials(ctx context.Context, login string) (*model.Credentials, error) {
	return Credentials(ctx, tq.Tx, login)
}

func (tq txQueryer) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return Exists(ctx, tq.Tx, userID)
}

func (tq txQueryer) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error {
	return UpdateUsername(ctx, tq.Tx, userID, username)
}

func (tq txQueryer) Create(ctx context.Context, u *model.User, c *model.Credentials) error {
	return Create(ctx, tq.Tx, u, c)
}
