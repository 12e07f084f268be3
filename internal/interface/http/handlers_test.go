package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-movie-catalog/internal/application"
	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	"github.com/oksasatya/go-movie-catalog/internal/infrastructure/memory"
	"github.com/oksasatya/go-movie-catalog/pkg/apperr"
	"github.com/oksasatya/go-movie-catalog/pkg/helpers"
	"github.com/oksasatya/go-movie-catalog/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type memUploader struct {
	path, contentType string
	body              []byte
}

func (u *memUploader) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	u.path, u.contentType, u.body = objectPath, contentType, b
	return "https://storage.googleapis.com/bucket/" + objectPath, nil
}

func newMovieEngine(t *testing.T, uploader application.ObjectUploader) (*gin.Engine, *memory.MovieRepository) {
	t.Helper()
	movies := memory.NewMovieRepository()
	svc := application.NewMovieService(movies, nil, 0, nil, uploader, helpers.NewDiscardLogger())
	h := NewMovieHandler(svc, helpers.NewDiscardLogger())

	r := gin.New()
	r.GET("/movies/search", h.Search)
	r.POST("/movies", h.Create)
	r.POST("/movies/:id/thumbnail", h.UploadThumbnail)
	return r, movies
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func multipartFile(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestMovieHandler_CreateFromForm(t *testing.T) {
	r, _ := newMovieEngine(t, nil)

	form := url.Values{
		"name":        {"Heat"},
		"description": {"LA crime"},
		"runningTime": {"170"},
		"thumbnail":   {"http://img/heat.png"},
		"rating":      {"8.3"},
		"duration":    {"170"},
	}
	req := httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "Heat", data["name"])
	assert.EqualValues(t, 170, data["runningTime"])
}

func TestMovieHandler_CreateZeroValuesAccepted(t *testing.T) {
	r, _ := newMovieEngine(t, nil)

	body := `{"name":"Short","description":"d","runningTime":0,"thumbnail":"t","rating":0,"duration":0}`
	req := httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestMovieHandler_SearchRequiresQuery(t *testing.T) {
	r, _ := newMovieEngine(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/movies/search", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Search query is required", decode(t, w)["error"])
}

func TestMovieHandler_UploadThumbnail(t *testing.T) {
	up := &memUploader{}
	r, movies := newMovieEngine(t, up)
	m := &entity.Movie{Name: "Heat", Description: "LA", Thumbnail: "old"}
	require.NoError(t, movies.Create(context.Background(), m))

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

	t.Run("sniffs image and stores it", func(t *testing.T) {
		body, ct := multipartFile(t, "file", "Poster.PNG", png)
		req := httptest.NewRequest(http.MethodPost, "/movies/"+m.ID+"/thumbnail", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "image/png", up.contentType)
		assert.Equal(t, png, up.body)
		assert.True(t, strings.HasPrefix(up.path, "thumbnails/"+m.ID+"/"))
		assert.True(t, strings.HasSuffix(up.path, ".png"))

		got, err := movies.GetByID(context.Background(), m.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://storage.googleapis.com/bucket/"+up.path, got.Thumbnail)
	})

	t.Run("rejects non images", func(t *testing.T) {
		body, ct := multipartFile(t, "file", "notes.txt", []byte("just some text"))
		req := httptest.NewRequest(http.MethodPost, "/movies/"+m.ID+"/thumbnail", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Thumbnail must be an image", decode(t, w)["error"])
	})

	t.Run("missing file", func(t *testing.T) {
		body, ct := multipartFile(t, "other", "a.png", png)
		req := httptest.NewRequest(http.MethodPost, "/movies/"+m.ID+"/thumbnail", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "file is required", decode(t, w)["error"])
	})

	t.Run("unknown movie", func(t *testing.T) {
		body, ct := multipartFile(t, "file", "a.png", png)
		req := httptest.NewRequest(http.MethodPost, "/movies/nope/thumbnail", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Movie not found", decode(t, w)["error"])
	})
}

func TestMovieHandler_UploadWithoutStorage(t *testing.T) {
	r, movies := newMovieEngine(t, nil)
	m := &entity.Movie{Name: "Heat"}
	require.NoError(t, movies.Create(context.Background(), m))

	body, ct := multipartFile(t, "file", "a.png", []byte("\x89PNG\r\n\x1a\n"))
	req := httptest.NewRequest(http.MethodPost, "/movies/"+m.ID+"/thumbnail", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperr.MsgServerError, decode(t, w)["error"])
}
