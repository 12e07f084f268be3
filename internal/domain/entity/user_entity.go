package entity

import (
	"slices"
	"time"
)

// Role is the authorization level carried in session tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash and is never serialized. ResetPasswordLink
// holds the last issued reset token, or "" when no reset is pending.
type User struct {
	ID                string    `json:"_id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Password          string    `json:"-"`
	Role              Role      `json:"role"`
	ResetPasswordLink string    `json:"-"`
	Favorites         []string  `json:"favorites"`
	CreatedAt         time.Time `json:"date"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (u *User) HasFavorite(movieID string) bool {
	return slices.Contains(u.Favorites, movieID)
}

// AddFavorite appends movieID and reports whether the set changed.
func (u *User) AddFavorite(movieID string) bool {
	if u.HasFavorite(movieID) {
		return false
	}
	u.Favorites = append(u.Favorites, movieID)
	return true
}

// RemoveFavorite drops movieID and reports whether the set changed.
func (u *User) RemoveFavorite(movieID string) bool {
	i := slices.Index(u.Favorites, movieID)
	if i < 0 {
		return false
	}
	u.Favorites = slices.Delete(u.Favorites, i, i+1)
	return true
}
