package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)
	SetResetToken(ctx context.Context, id, token string) error
	// ResetPassword stores hash and clears the reset token only while the
	// stored token still equals token. ErrNotFound otherwise.
	ResetPassword(ctx context.Context, id, token, hash string) error
	SetFavorites(ctx context.Context, id string, favorites []string) error
	SetRole(ctx context.Context, id string, role entity.Role) error
}
