package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	"github.com/oksasatya/go-movie-catalog/internal/domain/repository"
)

const commentColumns = `id::text, movie_id::text, user_id::text, content, created_at`

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func scanComment(row rowScanner) (*entity.Comment, error) {
	c := &entity.Comment{}
	if err := row.Scan(&c.ID, &c.MovieID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	if !validID(c.MovieID) || !validID(c.UserID) {
		return repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (movie_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id::text, created_at
	`, c.MovieID, c.UserID, c.Content)
	return mapErr(row.Scan(&c.ID, &c.CreatedAt))
}

func (r *CommentRepository) ListByMovie(ctx context.Context, movieID string) ([]entity.Comment, error) {
	out := make([]entity.Comment, 0)
	if !validID(movieID) {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+commentColumns+` FROM comments WHERE movie_id = $1 ORDER BY created_at
	`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, id string) (*entity.Comment, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanComment(r.pool.QueryRow(ctx, `DELETE FROM comments WHERE id = $1 RETURNING `+commentColumns, id))
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
