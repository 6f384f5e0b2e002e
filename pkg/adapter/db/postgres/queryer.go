package postgres

import (
	"context"

	"github.com/momeni/parking-backend/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer constrains the generic repository query functions to the
// *Conn and *Tx types. The GORM method is declared explicitly so it
// may be called on values of the type parameter.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	GORM(ctx context.Context) *gorm.DB
}
