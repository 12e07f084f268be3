// Package memory holds map-backed repositories for local runs without
// Postgres and for tests. They mirror the Postgres semantics, including the
// compare-and-swap on password reset.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	"github.com/oksasatya/go-movie-catalog/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Favorites = slices.Clone(u.Favorites)
	if c.Favorites == nil {
		c.Favorites = []string{}
	}
	return &c
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepository) find(match func(*entity.User) bool) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByEmailOrUsername(_ context.Context, email, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email || u.Username == username })
}

func (r *UserRepository) update(id string, fn func(*entity.User) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || !fn(u) {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) SetResetToken(_ context.Context, id, token string) error {
	return r.update(id, func(u *entity.User) bool {
		u.ResetPasswordLink = token
		return true
	})
}

func (r *UserRepository) ResetPassword(_ context.Context, id, token, hash string) error {
	return r.update(id, func(u *entity.User) bool {
		if token == "" || u.ResetPasswordLink != token {
			return false
		}
		u.Password = hash
		u.ResetPasswordLink = ""
		return true
	})
}

func (r *UserRepository) SetFavorites(_ context.Context, id string, favorites []string) error {
	return r.update(id, func(u *entity.User) bool {
		u.Favorites = slices.Clone(favorites)
		return true
	})
}

func (r *UserRepository) SetRole(_ context.Context, id string, role entity.Role) error {
	return r.update(id, func(u *entity.User) bool {
		u.Role = role
		return true
	})
}

var _ repository.UserRepository = (*UserRepository)(nil)
