package repository

import (
	"context"
	"time"

	"github.com/polkiloo/couponhub/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user model.NewUser) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// CompleteProfile sets credentials of a pending user. It returns
	// ErrProfileCompleted when the user already has a password.
	CompleteProfile(ctx context.Context, id int64, passwordHash string, isStore bool, birthDate *time.Time) (*model.User, error)
}
