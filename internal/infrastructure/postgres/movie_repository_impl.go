package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	"github.com/oksasatya/go-movie-catalog/internal/domain/repository"
)

const movieColumns = `id::text, name, description, running_time, thumbnail, rating, duration, created_at`

type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

func scanMovie(row rowScanner) (*entity.Movie, error) {
	m := &entity.Movie{}
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.RunningTime, &m.Thumbnail,
		&m.Rating, &m.Duration, &m.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return m, nil
}

func collectMovies(rows pgx.Rows, err error) ([]entity.Movie, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]entity.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *MovieRepository) Create(ctx context.Context, m *entity.Movie) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO movies (name, description, running_time, thumbnail, rating, duration)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, created_at
	`, m.Name, m.Description, m.RunningTime, m.Thumbnail, m.Rating, m.Duration)
	return mapErr(row.Scan(&m.ID, &m.CreatedAt))
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*entity.Movie, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanMovie(r.pool.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
}

func (r *MovieRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Movie, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []entity.Movie{}, nil
	}
	return collectMovies(r.pool.Query(ctx, `
		SELECT `+movieColumns+` FROM movies WHERE id = ANY($1::uuid[]) ORDER BY created_at
	`, valid))
}

func (r *MovieRepository) List(ctx context.Context) ([]entity.Movie, error) {
	return collectMovies(r.pool.Query(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY created_at`))
}

func (r *MovieRepository) Search(ctx context.Context, q string, limit int) ([]entity.Movie, error) {
	return collectMovies(r.pool.Query(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2
	`, q, limit))
}

func (r *MovieRepository) SetThumbnail(ctx context.Context, id, url string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `UPDATE movies SET thumbnail = $2 WHERE id = $1`, id, url)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) (*entity.Movie, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanMovie(r.pool.QueryRow(ctx, `DELETE FROM movies WHERE id = $1 RETURNING `+movieColumns, id))
}

var _ repository.MovieRepository = (*MovieRepository)(nil)
