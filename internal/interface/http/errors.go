package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-movie-catalog/pkg/apperr"
	"github.com/oksasatya/go-movie-catalog/pkg/helpers"
	"github.com/oksasatya/go-movie-catalog/pkg/response"
	"github.com/oksasatya/go-movie-catalog/pkg/validation"
)

// respondError writes exactly one error response for err. Only internal
// errors are logged, with their cause; the client sees the generic message.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	ae := apperr.From(err)
	if ae.Code == apperr.CodeInternal && logger != nil {
		helpers.RequestEntry(logger, c).WithError(ae.Cause).Error("request failed")
	}
	response.Error[any](c, ae.HTTPStatus(), ae.Message, nil)
}

func respondBindError(c *gin.Context, err error, req any) {
	response.Error[any](c, http.StatusBadRequest, validation.FirstMessage(err, req), validation.ToDetails(err))
}
