package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"exportbridge/internal/port"
)

// MockFailureNotifier is a mock implementation of port.FailureNotifier.
type MockFailureNotifier struct {
	mock.Mock
}

func (m *MockFailureNotifier) NotifyExportFailure(ctx context.Context, failure port.ExportFailure) error {
	args := m.Called(ctx, failure)
	return args.Error(0)
}
