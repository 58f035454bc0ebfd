package port

import "context"

// ExportFailure describes a failed export for operator notification.
type ExportFailure struct {
	AnnotationID string
	QueueID      string
	RequestID    string
	Stage        string
	Reason       string
}

// FailureNotifier alerts operators about failed exports.
type FailureNotifier interface {
	NotifyExportFailure(ctx context.Context, failure ExportFailure) error
}
