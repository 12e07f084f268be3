package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	"github.com/oksasatya/go-movie-catalog/pkg/response"
)

const msgNotAuthorized = "You are not authorized to access this route!"

// RequireRole must run after Auth. It trusts the claims Auth resolved and
// does not parse the token again.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}
		if entity.Role(claims.User.Role) != role {
			response.Abort(c, http.StatusUnauthorized, msgNotAuthorized)
			return
		}
		c.Next()
	}
}
