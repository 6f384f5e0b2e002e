package usersrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres"
	"github.com/momeni/parking-backend/pkg/core/cerr"
	"github.com/momeni/parking-backend/pkg/core/model"
	"gorm.io/gorm"
)

type gUser struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid;column:id"`
	Login        string
	Username     string
	PasswordSalt []byte
	PasswordHash []byte
}

func (gu *gUser) TableName() string {
	return "users"
}

func (gu *gUser) Model() *model.User {
	return &model.User{
		ID:       gu.ID,
		Login:    gu.Login,
		Username: gu.Username,
	}
}

func GetByID[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID) (*model.User, error) {
	gdb := q.GORM(ctx)
	gu := &gUser{}
	res := gdb.Select("id", "login", "username").
		Where("id=?", userID).
		Take(gu)
	if err := res.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cerr.NotFound(
				errors.New("user does not exist"),
			)
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model(), nil
}

func GetByLogin[Q postgres.Queryer](ctx context.Context, q Q, login string) (*model.User, error) {
	gdb := q.GORM(ctx)
	gu := &gUser{}
	res := gdb.Select("id", "login", "username").
		Where("login=?", login).
		Take(gu)
	if err := res.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cerr.NotFound(
				errors.New("user does not exist"),
			)
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model(), nil
}

func Credentials[Q postgres.Queryer](ctx context.Context, q Q, login string) (*model.Credentials, error) {
	gdb := q.GORM(ctx)
	gu := &gUser{}
	res := gdb.Select("password_salt", "password_hash").
		Where("login=?", login).
		Take(gu)
	if err := res.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cerr.NotFound(
				errors.New("user does not exist"),
			)
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return &model.Credentials{
		Salt:      gu.PasswordSalt,
		StoredKey: gu.PasswordHash,
	}, nil
}

func Exists[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID) (bool, error) {
	gdb := q.GORM(ctx)
	var count int64
	res := gdb.Model(&gUser{}).Where("id=?", userID).Count(&count)
	if err := res.Error; err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return count == 1, nil
}

func UpdateUsername[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID, username string) error {
	gdb := q.GORM(ctx)
	res := gdb.Model(&gUser{}).
		Where("id=?", userID).
		Update("username", username)
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

func Create[Q postgres.Queryer](ctx context.Context, q Q, u *model.User, c *model.Credentials) error {
	gdb := q.GORM(ctx)
	res := gdb.Create(&gUser{
		ID:           u.ID,
		Login:        u.Login,
		Username:     u.Username,
		PasswordSalt: c.Salt,
		PasswordHash: c.StoredKey,
	})
	if err := res.Error; err != nil {
		if postgres.IsUniqueViolation(err) {
			return cerr.Conflict(
				errors.New("login is already taken"),
			)
		}
		return fmt.Errorf("query: %w", err)
	}
	return nil
}
