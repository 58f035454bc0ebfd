package port

import "context"

// DeliverInput carries a converted document to the downstream sink.
type DeliverInput struct {
	AnnotationID string
	Content      []byte
}

// DocumentSink forwards converted documents. It returns the sink's HTTP status
// on success and a *domain.ForwardingError when the status is not accepted.
type DocumentSink interface {
	Deliver(ctx context.Context, input DeliverInput) (int, error)
}
