package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/core/model"
)

type UsersConnQueryer interface {
	UsersQueryer
}

type UsersTxQueryer interface {
	UsersQueryer
}

// UsersQueryer lists the user related operations which may be executed
// over a connection or transaction. Lookup methods return a NotFound
// categorized error for an absent user.
type UsersQueryer interface {
	// GetByID fetches a user by its id.
	GetByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	// GetByLogin fetches a user by its unique login name.
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	// Credentials fetches the password verification material which
	// belongs to the login user.
	Credentials(ctx context.Context, login string) (*model.Credentials, error)
	// Exists reports whether a user with the userID id exists.
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
	// UpdateUsername overwrites the username of the userID user.
	UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error
	// Create persists a new user with its credentials.
	Create(ctx context.Context, u *model.User, c *model.Credentials) error
}

type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}
