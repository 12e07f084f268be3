package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	handlers "github.com/oksasatya/go-movie-catalog/internal/interface/http"
	"github.com/oksasatya/go-movie-catalog/internal/interface/middleware"
)

// MovieModule: every route needs a session; writes need the admin role.
type MovieModule struct {
	Handler *handlers.MovieHandler
	Auth    gin.HandlerFunc
}

func NewMovieModule(h *handlers.MovieHandler, auth gin.HandlerFunc) *MovieModule {
	return &MovieModule{Handler: h, Auth: auth}
}

func (m *MovieModule) Register(rg *gin.RouterGroup) {
	movies := rg.Group("/movies", m.Auth)
	movies.GET("", m.Handler.List)
	movies.GET("/search", m.Handler.Search)
	movies.GET("/:id", m.Handler.Get)

	admin := movies.Group("", middleware.RequireRole(entity.RoleAdmin))
	{
		admin.POST("", m.Handler.Create)
		admin.DELETE("/:id", m.Handler.Delete)
		admin.POST("/:id/thumbnail", m.Handler.UploadThumbnail)
	}
}
