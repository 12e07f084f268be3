package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	handlers "github.com/oksasatya/go-movie-catalog/internal/interface/http"
	"github.com/oksasatya/go-movie-catalog/internal/interface/middleware"
)

type CommentModule struct {
	Handler *handlers.CommentHandler
	Auth    gin.HandlerFunc
}

func NewCommentModule(h *handlers.CommentHandler, auth gin.HandlerFunc) *CommentModule {
	return &CommentModule{Handler: h, Auth: auth}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	comments := rg.Group("/comments", m.Auth)
	comments.POST("/:id/create-comment", m.Handler.Create)
	comments.GET("/:id", m.Handler.List)
	comments.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), m.Handler.Delete)
}
