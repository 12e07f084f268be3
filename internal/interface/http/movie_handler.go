package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-movie-catalog/internal/application"
	"github.com/oksasatya/go-movie-catalog/pkg/response"
)

// MaxThumbnailBytes caps a thumbnail upload.
const MaxThumbnailBytes = 5 << 20

type MovieHandler struct {
	Svc    *application.MovieService
	Logger *logrus.Logger
}

func NewMovieHandler(svc *application.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{Svc: svc, Logger: logger}
}

// Accepts JSON or form bodies.
type createMovieRequest struct {
	Name        string   `json:"name" form:"name" binding:"required" msg:"Name is required"`
	Description string   `json:"description" form:"description" binding:"required" msg:"Description is required"`
	RunningTime *int     `json:"runningTime" form:"runningTime" binding:"required,gte=0" msg:"Running time must be a number"`
	Thumbnail   string   `json:"thumbnail" form:"thumbnail" binding:"required" msg:"Thumbnail URL is required"`
	Rating      *float64 `json:"rating" form:"rating" binding:"required" msg:"Rating is required"`
	Duration    *int     `json:"duration" form:"duration" binding:"required" msg:"Duration is required"`
}

type searchQuery struct {
	Q     string `form:"q" binding:"required" msg:"Search query is required"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

// List GET /api/movies
func (h *MovieHandler) List(c *gin.Context) {
	movies, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, movies, "movies", nil)
}

// Get GET /api/movies/:id
func (h *MovieHandler) Get(c *gin.Context) {
	m, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, m, "movie", nil)
}

// Search GET /api/movies/search?q=
func (h *MovieHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, &q)
		return
	}
	movies, err := h.Svc.Search(c.Request.Context(), q.Q, q.Limit)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, movies, "movies", gin.H{"count": len(movies)})
}

// Create POST /api/movies (admin)
func (h *MovieHandler) Create(c *gin.Context) {
	var req createMovieRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err, &req)
		return
	}
	m, err := h.Svc.Create(c.Request.Context(), application.CreateMovieInput{
		Name:        req.Name,
		Description: req.Description,
		RunningTime: *req.RunningTime,
		Thumbnail:   req.Thumbnail,
		Rating:      *req.Rating,
		Duration:    *req.Duration,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, m, "movie created", nil)
}

// Delete DELETE /api/movies/:id (admin)
func (h *MovieHandler) Delete(c *gin.Context) {
	m, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, m, "movie deleted", nil)
}

// UploadThumbnail POST /api/movies/:id/thumbnail (admin, multipart field "file")
func (h *MovieHandler) UploadThumbnail(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxThumbnailBytes+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if fh.Size > MaxThumbnailBytes {
		response.Error[any](c, http.StatusBadRequest, "Thumbnail must be at most 5MB", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		head := make([]byte, 512)
		n, _ := f.Read(head)
		contentType = http.DetectContentType(head[:n])
		if _, err := f.Seek(0, 0); err != nil {
			respondError(c, h.Logger, err)
			return
		}
	}

	m, err := h.Svc.UploadThumbnail(c.Request.Context(), c.Param("id"), fh.Filename, contentType, f)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, m, "thumbnail uploaded", gin.H{"url": m.Thumbnail})
}
