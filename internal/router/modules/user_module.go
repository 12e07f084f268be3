package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-movie-catalog/internal/interface/http"
)

// UserModule wires account and favorites routes.
// Public: POST /user/createUser, POST /user/login, PUT /user/forgot-password, PUT /user/password/reset
// Protected: POST|DELETE /user/favorites/:movieId, GET /user/favorites, GET /user/me
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	u := rg.Group("/user")
	u.POST("/createUser", m.Handler.CreateUser)
	u.POST("/login", m.Handler.Login)
	u.PUT("/forgot-password", m.Handler.ForgotPassword)
	u.PUT("/password/reset", m.Handler.ResetPassword)

	auth := u.Group("", m.Auth)
	{
		auth.POST("/favorites/:movieId", m.Handler.AddFavorite)
		auth.DELETE("/favorites/:movieId", m.Handler.RemoveFavorite)
		auth.GET("/favorites", m.Handler.Favorites)
		auth.GET("/me", m.Handler.Me)
	}
}
