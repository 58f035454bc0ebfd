package port

import (
	"context"

	"exportbridge/internal/domain"
)

// ExportRequest selects one annotation export from a queue.
type ExportRequest struct {
	QueueID      string
	AnnotationID string
	Format       domain.ExportFormat
}

// ChunkStream is a finite, non-restartable sequence of byte chunks.
// Next returns io.EOF once the stream is exhausted. Close must be called on
// every exit path.
type ChunkStream interface {
	Next() ([]byte, error)
	Close() error
}

// ExportSource opens document exports from the upstream extraction API.
type ExportSource interface {
	Export(ctx context.Context, req ExportRequest) (ChunkStream, error)
}
