package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"exportbridge/internal/port"
)

// MockDocumentSink is a mock implementation of port.DocumentSink.
type MockDocumentSink struct {
	mock.Mock
}

func (m *MockDocumentSink) Deliver(ctx context.Context, input port.DeliverInput) (int, error) {
	args := m.Called(ctx, input)
	return args.Int(0), args.Error(1)
}
