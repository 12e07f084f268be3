package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	"github.com/oksasatya/go-movie-catalog/internal/interface/middleware"
)

// DebugModule exposes expvar counters (auth outcomes, memstats) to admins.
type DebugModule struct {
	Auth gin.HandlerFunc
}

func NewDebugModule(auth gin.HandlerFunc) *DebugModule { return &DebugModule{Auth: auth} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", m.Auth, middleware.RequireRole(entity.RoleAdmin), gin.WrapH(expvar.Handler()))
}
