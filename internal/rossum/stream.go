package rossum

import (
	"errors"
	"io"
)

// bodyStream exposes an HTTP response body as a port.ChunkStream.
type bodyStream struct {
	body io.ReadCloser
	buf  []byte
	err  error
}

func newBodyStream(body io.ReadCloser, size int) *bodyStream {
	return &bodyStream{body: body, buf: make([]byte, size)}
}

// Next returns the next chunk, or io.EOF once the body is exhausted.
func (s *bodyStream) Next() ([]byte, error) {
	for s.err == nil {
		n, err := s.body.Read(s.buf)
		if err != nil {
			s.err = err
		}
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, s.buf[:n])
			return chunk, nil
		}
	}
	if errors.Is(s.err, io.EOF) {
		return nil, io.EOF
	}
	return nil, s.err
}

func (s *bodyStream) Close() error {
	return s.body.Close()
}
