package noop

import (
	"context"
	"log/slog"

	"exportbridge/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a FailureNotifier that only logs.
func NewNoopNotifier() port.FailureNotifier {
	return noopNotifier{}
}

func (noopNotifier) NotifyExportFailure(_ context.Context, f port.ExportFailure) error {
	slog.Warn("export failure (notification disabled)",
		"annotation_id", f.AnnotationID,
		"queue_id", f.QueueID,
		"stage", f.Stage,
		"reason", f.Reason,
		"request_id", f.RequestID,
	)
	return nil
}
