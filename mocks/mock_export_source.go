package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"exportbridge/internal/port"
)

// MockExportSource is a mock implementation of port.ExportSource.
type MockExportSource struct {
	mock.Mock
}

func (m *MockExportSource) Export(ctx context.Context, req port.ExportRequest) (port.ChunkStream, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.ChunkStream), args.Error(1)
}

// ChunkStream is an in-memory port.ChunkStream. Err, if set, is returned after
// all chunks have been consumed instead of io.EOF.
type ChunkStream struct {
	Chunks [][]byte
	Err    error
	Closed bool
	pos    int
}

// NewChunkStream creates a stream yielding the given chunks in order.
func NewChunkStream(chunks ...string) *ChunkStream {
	s := &ChunkStream{}
	for _, c := range chunks {
		s.Chunks = append(s.Chunks, []byte(c))
	}
	return s
}

func (s *ChunkStream) Next() ([]byte, error) {
	if s.pos < len(s.Chunks) {
		chunk := s.Chunks[s.pos]
		s.pos++
		return chunk, nil
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return nil, io.EOF
}

func (s *ChunkStream) Close() error {
	s.Closed = true
	return nil
}
