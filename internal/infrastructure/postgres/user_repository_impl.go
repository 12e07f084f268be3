package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	"github.com/oksasatya/go-movie-catalog/internal/domain/repository"
)

const userColumns = `id::text, username, email, password_hash, role, reset_password_link, favorites, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &role,
		&u.ResetPasswordLink, &u.Favorites, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	u.Role = entity.Role(role)
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at, updated_at
	`, u.Username, u.Email, u.Password, string(u.Role))

	return mapErr(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1 OR username = $2
		LIMIT 1
	`, email, username))
}

func (r *UserRepository) exec(ctx context.Context, sql string, args ...any) error {
	res, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, token string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	return r.exec(ctx, `
		UPDATE users SET reset_password_link = $2, updated_at = now()
		WHERE id = $1
	`, id, token)
}

func (r *UserRepository) ResetPassword(ctx context.Context, id, token, hash string) error {
	if !validID(id) || token == "" {
		return repository.ErrNotFound
	}
	return r.exec(ctx, `
		UPDATE users SET password_hash = $3, reset_password_link = '', updated_at = now()
		WHERE id = $1 AND reset_password_link = $2
	`, id, token, hash)
}

func (r *UserRepository) SetFavorites(ctx context.Context, id string, favorites []string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	if favorites == nil {
		favorites = []string{}
	}
	return r.exec(ctx, `
		UPDATE users SET favorites = $2, updated_at = now()
		WHERE id = $1
	`, id, favorites)
}

func (r *UserRepository) SetRole(ctx context.Context, id string, role entity.Role) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	return r.exec(ctx, `
		UPDATE users SET role = $2, updated_at = now()
		WHERE id = $1
	`, id, string(role))
}

var _ repository.UserRepository = (*UserRepository)(nil)
