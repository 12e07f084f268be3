package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-movie-catalog/internal/application"
	"github.com/oksasatya/go-movie-catalog/internal/interface/middleware"
	"github.com/oksasatya/go-movie-catalog/pkg/response"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

// The router shares one wildcard name per segment, so the movie id on
// create and list arrives as :id.

type createCommentRequest struct {
	Content string `json:"content" form:"content" binding:"required" msg:"Content is required"`
}

// Create POST /api/comments/:movieId/create-comment
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err, &req)
		return
	}
	comment, err := h.Svc.Create(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID), req.Content)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, comment, "comment created", nil)
}

// List GET /api/comments/:movieId
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.Svc.ListByMovie(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, comments, "comments", nil)
}

// Delete DELETE /api/comments/:id (admin)
func (h *CommentHandler) Delete(c *gin.Context) {
	comment, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, comment, "comment deleted", nil)
}
