// Package search keeps the Elasticsearch movie index.
package search

import (
	"context"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	"github.com/oksasatya/go-movie-catalog/pkg/helpers"
)

const requestTimeout = 3 * time.Second

type MovieIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewMovieIndex(es *elasticsearch.Client, index string) *MovieIndex {
	return &MovieIndex{ES: es, Index: index}
}

type movieDoc struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	CreatedAt   string  `json:"created_at"`
}

func (i *MovieIndex) IndexMovie(ctx context.Context, m *entity.Movie) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return helpers.ESIndexJSON(c, i.ES, i.Index, m.ID, movieDoc{
		Name:        m.Name,
		Description: m.Description,
		Rating:      m.Rating,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339Nano),
	})
}

func (i *MovieIndex) DeleteMovie(ctx context.Context, id string) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return helpers.ESDelete(c, i.ES, i.Index, id)
}

// SearchMovieIDs matches q against name (boosted) and description.
func (i *MovieIndex) SearchMovieIDs(ctx context.Context, q string, limit int) ([]string, error) {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return helpers.ESSearchIDs(c, i.ES, i.Index, map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"size": limit,
	})
}
