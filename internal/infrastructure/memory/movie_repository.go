package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	"github.com/oksasatya/go-movie-catalog/internal/domain/repository"
)

type MovieRepository struct {
	mu     sync.RWMutex
	movies map[string]entity.Movie
	seq    time.Time
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{movies: make(map[string]entity.Movie)}
}

// nextTime keeps creation order stable even when the clock does not move.
func (r *MovieRepository) nextTime() time.Time {
	now := time.Now().UTC()
	if !now.After(r.seq) {
		now = r.seq.Add(time.Microsecond)
	}
	r.seq = now
	return now
}

func (r *MovieRepository) sorted(match func(entity.Movie) bool) []entity.Movie {
	out := make([]entity.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		if match == nil || match(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *MovieRepository) Create(_ context.Context, m *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.NewString()
	m.CreatedAt = r.nextTime()
	r.movies[m.ID] = *m
	return nil
}

func (r *MovieRepository) GetByID(_ context.Context, id string) (*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *MovieRepository) GetByIDs(_ context.Context, ids []string) ([]entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return r.sorted(func(m entity.Movie) bool {
		_, ok := want[m.ID]
		return ok
	}), nil
}

func (r *MovieRepository) List(_ context.Context) ([]entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(nil), nil
}

func (r *MovieRepository) Search(_ context.Context, q string, limit int) ([]entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q = strings.ToLower(q)
	out := r.sorted(func(m entity.Movie) bool {
		return strings.Contains(strings.ToLower(m.Name), q) || strings.Contains(strings.ToLower(m.Description), q)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MovieRepository) SetThumbnail(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.Thumbnail = url
	r.movies[id] = m
	return nil
}

func (r *MovieRepository) Delete(_ context.Context, id string) (*entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.movies, id)
	return &m, nil
}

var _ repository.MovieRepository = (*MovieRepository)(nil)

type CommentRepository struct {
	mu       sync.RWMutex
	comments []entity.Comment
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

func (r *CommentRepository) Create(_ context.Context, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	r.comments = append(r.comments, *c)
	return nil
}

func (r *CommentRepository) ListByMovie(_ context.Context, movieID string) ([]entity.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Comment, 0)
	for _, c := range r.comments {
		if c.MovieID == movieID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CommentRepository) Delete(_ context.Context, id string) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.comments {
		if c.ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
