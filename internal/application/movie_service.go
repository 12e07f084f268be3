package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	repo "github.com/oksasatya/go-movie-catalog/internal/domain/repository"
	"github.com/oksasatya/go-movie-catalog/pkg/apperr"
	"github.com/oksasatya/go-movie-catalog/pkg/helpers"
)

const (
	movieListCacheKey  = "movies:all"
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

// MovieIndex is a full-text index over movies.
type MovieIndex interface {
	IndexMovie(ctx context.Context, m *entity.Movie) error
	DeleteMovie(ctx context.Context, id string) error
	SearchMovieIDs(ctx context.Context, q string, limit int) ([]string, error)
}

// ObjectUploader stores a blob and returns its public URL.
type ObjectUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// MovieService serves the catalog. Redis, the search index and the uploader
// are optional; nil disables the feature they back.
type MovieService struct {
	Repo     repo.MovieRepository
	Redis    redis.Cmdable
	CacheTTL time.Duration
	Index    MovieIndex
	Uploader ObjectUploader
	Logger   *logrus.Logger
}

func NewMovieService(movies repo.MovieRepository, rdb redis.Cmdable, cacheTTL time.Duration, index MovieIndex, uploader ObjectUploader, logger *logrus.Logger) *MovieService {
	return &MovieService{
		Repo:     movies,
		Redis:    rdb,
		CacheTTL: cacheTTL,
		Index:    index,
		Uploader: uploader,
		Logger:   logger,
	}
}

type CreateMovieInput struct {
	Name        string
	Description string
	RunningTime int
	Thumbnail   string
	Rating      float64
	Duration    int
}

func (s *MovieService) List(ctx context.Context) ([]entity.Movie, error) {
	if s.Redis != nil {
		var cached []entity.Movie
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, movieListCacheKey, &cached)
		if err != nil {
			s.Logger.WithError(err).Warn("movie cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	movies, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, movieListCacheKey, movies, s.CacheTTL); err != nil {
			s.Logger.WithError(err).Warn("movie cache write failed")
		}
	}
	return movies, nil
}

func (s *MovieService) Get(ctx context.Context, id string) (*entity.Movie, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, movieErr(err)
	}
	return m, nil
}

func (s *MovieService) Create(ctx context.Context, in CreateMovieInput) (*entity.Movie, error) {
	m := &entity.Movie{
		Name:        in.Name,
		Description: in.Description,
		RunningTime: in.RunningTime,
		Thumbnail:   in.Thumbnail,
		Rating:      in.Rating,
		Duration:    in.Duration,
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, apperr.Internal(err)
	}
	s.changed(ctx, m)
	return m, nil
}

func (s *MovieService) Delete(ctx context.Context, id string) (*entity.Movie, error) {
	m, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return nil, movieErr(err)
	}
	s.invalidate(ctx)
	if s.Index != nil {
		if err := s.Index.DeleteMovie(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("movie_id", id).Warn("movie unindex failed")
		}
	}
	return m, nil
}

// Search queries the index when configured and falls back to the repository
// when the index is absent or failing.
func (s *MovieService) Search(ctx context.Context, q string, limit int) ([]entity.Movie, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrSearchQueryRequired
	}
	if limit <= 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}

	if s.Index != nil {
		ids, err := s.Index.SearchMovieIDs(ctx, q, limit)
		if err == nil {
			return s.byRank(ctx, ids)
		}
		s.Logger.WithError(err).Warn("movie search index failed; using database")
	}

	movies, err := s.Repo.Search(ctx, q, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return movies, nil
}

// byRank loads ids and keeps the index's ordering. Ids the database no
// longer has are dropped.
func (s *MovieService) byRank(ctx context.Context, ids []string) ([]entity.Movie, error) {
	found, err := s.Repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	byID := make(map[string]entity.Movie, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}
	out := make([]entity.Movie, 0, len(found))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// UploadThumbnail stores an image for the movie and points its thumbnail at it.
func (s *MovieService) UploadThumbnail(ctx context.Context, id, filename, contentType string, r io.Reader) (*entity.Movie, error) {
	if s.Uploader == nil {
		return nil, apperr.Internal(errors.New("thumbnail storage not configured"))
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrThumbnailNotImage
	}
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, movieErr(err)
	}

	url, err := s.Uploader.Upload(ctx, helpers.ObjectPath("thumbnails", m.ID, filename), contentType, r)
	if err != nil {
		s.Logger.WithError(err).WithField("movie_id", m.ID).Error("thumbnail upload failed")
		return nil, apperr.Internal(err)
	}
	if err := s.Repo.SetThumbnail(ctx, m.ID, url); err != nil {
		return nil, movieErr(err)
	}
	m.Thumbnail = url
	s.changed(ctx, m)
	return m, nil
}

func (s *MovieService) changed(ctx context.Context, m *entity.Movie) {
	s.invalidate(ctx)
	if s.Index != nil {
		if err := s.Index.IndexMovie(ctx, m); err != nil {
			s.Logger.WithError(err).WithField("movie_id", m.ID).Warn("movie index failed")
		}
	}
}

func (s *MovieService) invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, movieListCacheKey); err != nil {
		s.Logger.WithError(err).Warn("movie cache invalidate failed")
	}
}

func movieErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrMovieNotFound
	}
	return apperr.Internal(err)
}
