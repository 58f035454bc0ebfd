package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"exportbridge/internal/domain"
	"exportbridge/internal/port"
)

// ExportFetcher drains an upstream export stream into a single buffer.
type ExportFetcher struct {
	source port.ExportSource
}

// NewExportFetcher creates a new ExportFetcher.
func NewExportFetcher(source port.ExportSource) *ExportFetcher {
	return &ExportFetcher{source: source}
}

// Fetch returns the full export content. Chunks are concatenated in arrival
// order; text formats must decode as UTF-8. The stream is closed on every path.
func (f *ExportFetcher) Fetch(ctx context.Context, req port.ExportRequest) ([]byte, error) {
	stream, err := f.source.Export(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("opening export stream: %w", err)
	}
	defer func() { _ = stream.Close() }()

	var buf bytes.Buffer
	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading export stream: %w", err)
		}
		buf.Write(chunk)
	}

	if req.Format != domain.ExportFormatXLSX && !utf8.Valid(buf.Bytes()) {
		return nil, errors.New("export content is not valid UTF-8")
	}
	return buf.Bytes(), nil
}
