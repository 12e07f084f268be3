package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-movie-catalog/pkg/helpers"
	"github.com/oksasatya/go-movie-catalog/pkg/response"
)

// TokenHeader carries the session token on every authenticated request.
const TokenHeader = "x-auth-token"

// Context keys set by Auth.
const (
	CtxClaims    = "claims"
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
	CtxUserRole  = "userRole"
)

const (
	msgNoToken      = "No token found!"
	msgInvalidToken = "The token is not valid!"
)

// Auth verifies the session token and stores its claims in the Gin context.
// Every verification failure gets the same response; the reason is only
// logged at debug level.
func Auth(jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, msgNoToken)
			return
		}
		claims, err := jwt.ParseSessionToken(token)
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("request_id", c.GetString("request_id")).Debug("session token rejected")
			}
			response.Abort(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		c.Set(CtxClaims, claims)
		c.Set(CtxUserID, claims.User.ID)
		c.Set(CtxUserEmail, claims.User.Email)
		c.Set(CtxUserRole, claims.User.Role)
		c.Next()
	}
}

// Claims returns the session claims resolved by Auth, if any.
func Claims(c *gin.Context) (*helpers.SessionClaims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*helpers.SessionClaims)
	return claims, ok && claims != nil
}
