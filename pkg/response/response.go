package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every handler writes. On failure Error holds
// the human-readable message clients match on.
type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Error     string    `json:"error,omitempty"`
	Details   any       `json:"details,omitempty"`
}

func build[T any](ctx *gin.Context, status int, ok bool, message string) APIResponse[T] {
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   ok,
		Message:   message,
	}
}

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta any) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := build[T](ctx, status, true, message)
	resp.Data = data
	resp.Meta = meta
	ctx.JSON(status, resp)
	return resp
}

// Error writes a failure envelope with message in both message and error.
func Error[T any](ctx *gin.Context, status int, message string, details any) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := build[T](ctx, status, false, message)
	resp.Error = message
	resp.Details = details
	ctx.JSON(status, resp)
	return resp
}

// Abort is Error for middleware: it also stops the handler chain.
func Abort(ctx *gin.Context, status int, message string) {
	resp := build[any](ctx, status, false, message)
	resp.Error = message
	ctx.AbortWithStatusJSON(status, resp)
}
