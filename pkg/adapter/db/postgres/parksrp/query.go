package parksrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres"
	"github.com/momeni/parking-backend/pkg/core/cerr"
	"github.com/momeni/parking-backend/pkg/core/model"
	"gorm.io/gorm"
)

type gPark struct {
	ID            uuid.UUID `gorm:"primaryKey;type:uuid;column:id"`
	CarID         uuid.UUID `gorm:"type:uuid;column:car_id"`
	UserWhoParkID uuid.UUID `gorm:"type:uuid;column:user_who_park_id"`
	CreatorUserID uuid.UUID `gorm:"type:uuid;column:creator_user_id"`
	ParkStartTime time.Time `gorm:"column:park_start_time"`
	ParkEndTime   time.Time `gorm:"column:park_end_time"`
	Location      string
	Reminder      bool
}

func (gp *gPark) TableName() string {
	return "park_location"
}

func (gp *gPark) Model() *model.ParkLocation {
	return &model.ParkLocation{
		ID:        gp.ID,
		CarID:     gp.CarID,
		ParkerID:  gp.UserWhoParkID,
		CreatorID: gp.CreatorUserID,
		StartTime: gp.ParkStartTime,
		EndTime:   gp.ParkEndTime,
		Location:  gp.Location,
		Reminder:  gp.Reminder,
	}
}

func fromModel(p *model.ParkLocation) *gPark {
	return &gPark{
		ID:            p.ID,
		CarID:         p.CarID,
		UserWhoParkID: p.ParkerID,
		CreatorUserID: p.CreatorID,
		ParkStartTime: p.StartTime,
		ParkEndTime:   p.EndTime,
		Location:      p.Location,
		Reminder:      p.Reminder,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, p *model.ParkLocation) error {
	gdb := q.GORM(ctx)
	res := gdb.Create(fromModel(p))
	switch err := res.Error; {
	case err == nil:
		return nil
	case postgres.IsForeignKeyViolation(err):
		return cerr.NotFound(errors.New("car does not exist"))
	default:
		return fmt.Errorf("query: %w", err)
	}
}

func Update[Q postgres.Queryer](ctx context.Context, q Q, p *model.ParkLocation) error {
	gdb := q.GORM(ctx)
	res := gdb.Model(&gPark{}).
		Where("id=?", p.ID).
		Select(
			"user_who_park_id", "creator_user_id",
			"park_start_time", "park_end_time",
			"location", "reminder",
		).
		Updates(fromModel(p))
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if n := res.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return nil
}

func GetByID[Q postgres.Queryer](ctx context.Context, q Q, parkID uuid.UUID) (*model.ParkLocation, error) {
	gdb := q.GORM(ctx)
	gp := &gPark{}
	res := gdb.Where("id=?", parkID).Take(gp)
	if err := res.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cerr.NotFound(
				errors.New("parking location does not exist"),
			)
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gp.Model(), nil
}

func GetCurrent[Q postgres.Queryer](ctx context.Context, q Q, carID uuid.UUID) (*model.ParkLocation, error) {
	gdb := q.GORM(ctx)
	var gps []gPark
	res := gdb.Where("car_id=?", carID).
		Order("park_start_time desc").
		Limit(1).
		Find(&gps)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gps) == 0 {
		return nil, nil // the car has never been parked
	}
	return gps[0].Model(), nil
}
