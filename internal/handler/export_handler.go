package handler

import (
	"github.com/gin-gonic/gin"

	"exportbridge/internal/domain"
	"exportbridge/internal/middleware"
	"exportbridge/internal/service"
)

// ExportHandler handles the annotation export endpoint.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export handles GET /export?annotationId=...&queueId=...
// Fetches the annotation export from Rossum, converts it and forwards it to
// Postbin.
func (h *ExportHandler) Export(c *gin.Context) {
	annotationID := c.Query("annotationId")
	queueID := c.Query("queueId")
	if annotationID == "" || queueID == "" {
		HandleError(c, domain.ErrMissingParams)
		return
	}

	_, err := h.exportService.Export(c.Request.Context(), domain.ExportInput{
		AnnotationID: annotationID,
		QueueID:      queueID,
		RequestID:    middleware.GetRequestID(c),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondSuccess(c)
}
