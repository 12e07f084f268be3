package repository

import (
	"context"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
)

type MovieRepository interface {
	Create(ctx context.Context, m *entity.Movie) error
	GetByID(ctx context.Context, id string) (*entity.Movie, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Movie, error)
	List(ctx context.Context) ([]entity.Movie, error)
	Search(ctx context.Context, q string, limit int) ([]entity.Movie, error)
	SetThumbnail(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) (*entity.Movie, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	ListByMovie(ctx context.Context, movieID string) ([]entity.Comment, error)
	Delete(ctx context.Context, id string) (*entity.Comment, error)
}
