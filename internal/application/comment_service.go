package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	repo "github.com/oksasatya/go-movie-catalog/internal/domain/repository"
	"github.com/oksasatya/go-movie-catalog/pkg/apperr"
)

type CommentService struct {
	Repo   repo.CommentRepository
	Movies repo.MovieRepository
	Logger *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, movies repo.MovieRepository, logger *logrus.Logger) *CommentService {
	return &CommentService{Repo: comments, Movies: movies, Logger: logger}
}

func (s *CommentService) Create(ctx context.Context, movieID, userID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if _, err := s.Movies.GetByID(ctx, movieID); err != nil {
		return nil, movieErr(err)
	}
	c := &entity.Comment{MovieID: movieID, UserID: userID, Content: content}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, apperr.Internal(err)
	}
	return c, nil
}

func (s *CommentService) ListByMovie(ctx context.Context, movieID string) ([]entity.Comment, error) {
	if _, err := s.Movies.GetByID(ctx, movieID); err != nil {
		return nil, movieErr(err)
	}
	comments, err := s.Repo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return comments, nil
}

func (s *CommentService) Delete(ctx context.Context, id string) (*entity.Comment, error) {
	c, err := s.Repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, apperr.Internal(err)
	}
	s.Logger.WithField("comment_id", id).Info("comment deleted")
	return c, nil
}
