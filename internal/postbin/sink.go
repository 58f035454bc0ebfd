package postbin

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"exportbridge/internal/config"
	"exportbridge/internal/domain"
	"exportbridge/internal/port"
)

const defaultTimeout = 30 * time.Second

// envelope is the JSON body posted to the sink.
type envelope struct {
	AnnotationID string `json:"annotationId"`
	Content      string `json:"content"`
}

// Sink implements port.DocumentSink with a single JSON POST per document.
type Sink struct {
	url    string
	client *http.Client
}

// NewSink creates a Sink posting to the configured URL.
func NewSink(cfg *config.PostbinConfig) *Sink {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Sink{url: cfg.URL, client: &http.Client{Timeout: timeout}}
}

// Deliver base64-encodes the content into the envelope and posts it once.
// 200 and 201 are accepted; any other status is a *domain.ForwardingError.
func (s *Sink) Deliver(ctx context.Context, input port.DeliverInput) (int, error) {
	body, err := json.Marshal(envelope{
		AnnotationID: input.AnnotationID,
		Content:      base64.StdEncoding.EncodeToString(input.Content),
	})
	if err != nil {
		return 0, fmt.Errorf("marshaling sink envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating sink request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("posting to sink: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return resp.StatusCode, nil
	default:
		return resp.StatusCode, &domain.ForwardingError{StatusCode: resp.StatusCode}
	}
}
