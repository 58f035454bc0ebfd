package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrMissingParams    = errors.New("missing annotationId or queueId")
	ErrSchemaMismatch   = errors.New("incorrect annotation schema")
	ErrForwardingFailed = errors.New("forwarding to sink failed")
	ErrUpstreamAuth     = errors.New("upstream authentication failed")
)

// ForwardingError reports a sink response outside the accepted status set.
type ForwardingError struct {
	StatusCode int
}

func (e *ForwardingError) Error() string {
	return fmt.Sprintf("sink responded with status %d", e.StatusCode)
}

// Is lets errors.Is match ErrForwardingFailed.
func (e *ForwardingError) Is(target error) bool {
	return target == ErrForwardingFailed
}

// StageError tags a pipeline failure with the last stage that completed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("export failed after stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Client-facing error messages. Detail of the underlying failure is logged but
// never returned to the caller.
const (
	MsgMissingParams  = "Missing annotationId or queueId"
	MsgSchemaMismatch = "Incorrect annotation schema"
	MsgForwardingFmt  = "Failed to post to Postbin: %d"
	MsgExportFailed   = "An error occurred during the export process"
)
