package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"exportbridge/internal/domain"
	"exportbridge/internal/middleware"
)

// ExportResponse is the envelope for every /export response.
type ExportResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RespondSuccess sends a 200 success envelope.
func RespondSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, ExportResponse{Success: true})
}

// RespondError sends an error envelope with the given status code.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ExportResponse{Success: false, Error: msg})
}

// MapExportError translates export pipeline errors to HTTP status codes and
// client-facing messages.
func MapExportError(err error) (status int, msg string) {
	var fwdErr *domain.ForwardingError
	switch {
	case errors.Is(err, domain.ErrMissingParams):
		return http.StatusBadRequest, domain.MsgMissingParams
	case errors.Is(err, domain.ErrSchemaMismatch):
		return http.StatusInternalServerError, domain.MsgSchemaMismatch
	case errors.As(err, &fwdErr):
		return http.StatusInternalServerError, fmt.Sprintf(domain.MsgForwardingFmt, fwdErr.StatusCode)
	default:
		return http.StatusInternalServerError, domain.MsgExportFailed
	}
}

// HandleError maps an export error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, msg := MapExportError(err)
	if status >= 500 {
		slog.Error("export request failed",
			"request_id", middleware.GetRequestID(c),
			"status", status,
			"error", err,
		)
	}
	RespondError(c, status, msg)
}
