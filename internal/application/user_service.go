package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	repo "github.com/oksasatya/go-movie-catalog/internal/domain/repository"
	"github.com/oksasatya/go-movie-catalog/pkg/apperr"
)

// UserService covers the signed-in user's own record and favorites.
type UserService struct {
	Repo   repo.UserRepository
	Movies repo.MovieRepository
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, movies repo.MovieRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: users, Movies: movies, Logger: logger}
}

func (s *UserService) load(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Internal(err)
	}
	return u, nil
}

func (s *UserService) AddFavorite(ctx context.Context, userID, movieID string) error {
	u, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if !u.AddFavorite(movieID) {
		return ErrFavoriteExists
	}
	return s.saveFavorites(ctx, u)
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID, movieID string) error {
	u, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if !u.RemoveFavorite(movieID) {
		return ErrFavoriteMissing
	}
	return s.saveFavorites(ctx, u)
}

func (s *UserService) saveFavorites(ctx context.Context, u *entity.User) error {
	if err := s.Repo.SetFavorites(ctx, u.ID, u.Favorites); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return apperr.Internal(err)
	}
	return nil
}

// ListFavorites returns the favorite movies that still exist.
func (s *UserService) ListFavorites(ctx context.Context, userID string) ([]entity.Movie, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	movies, err := s.Movies.GetByIDs(ctx, u.Favorites)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return movies, nil
}

// Me looks the caller up by the email carried in the session token.
func (s *UserService) Me(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Internal(err)
	}
	return u, nil
}
