package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"exportbridge/internal/domain"
	"exportbridge/internal/port"
	"exportbridge/internal/service"
	"exportbridge/mocks"
)

func TestExportFetcher_ConcatenatesChunksInOrder(t *testing.T) {
	source := new(mocks.MockExportSource)
	stream := mocks.NewChunkStream("<export>", "<results/>", "</export>")
	req := port.ExportRequest{QueueID: "12345", AnnotationID: "2451971", Format: "xml"}
	source.On("Export", mock.Anything, req).Return(stream, nil)

	data, err := service.NewExportFetcher(source).Fetch(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "<export><results/></export>", string(data))
	assert.True(t, stream.Closed)
	source.AssertExpectations(t)
}

func TestExportFetcher_EmptyStream(t *testing.T) {
	source := new(mocks.MockExportSource)
	stream := mocks.NewChunkStream()
	source.On("Export", mock.Anything, mock.Anything).Return(stream, nil)

	data, err := service.NewExportFetcher(source).Fetch(context.Background(), port.ExportRequest{})

	require.NoError(t, err)
	assert.Empty(t, data)
	assert.True(t, stream.Closed)
}

func TestExportFetcher_OpenError(t *testing.T) {
	source := new(mocks.MockExportSource)
	boom := errors.New("dial tcp: connection refused")
	source.On("Export", mock.Anything, mock.Anything).Return(nil, boom)

	_, err := service.NewExportFetcher(source).Fetch(context.Background(), port.ExportRequest{})

	assert.ErrorIs(t, err, boom)
}

func TestExportFetcher_ReadErrorClosesStream(t *testing.T) {
	source := new(mocks.MockExportSource)
	boom := errors.New("unexpected EOF")
	stream := mocks.NewChunkStream("<export>")
	stream.Err = boom
	source.On("Export", mock.Anything, mock.Anything).Return(stream, nil)

	_, err := service.NewExportFetcher(source).Fetch(context.Background(), port.ExportRequest{})

	assert.ErrorIs(t, err, boom)
	assert.True(t, stream.Closed)
}

func TestExportFetcher_RejectsInvalidUTF8(t *testing.T) {
	source := new(mocks.MockExportSource)
	stream := &mocks.ChunkStream{Chunks: [][]byte{{0xff, 0xfe, 0xfd}}}
	source.On("Export", mock.Anything, mock.Anything).Return(stream, nil)

	_, err := service.NewExportFetcher(source).Fetch(context.Background(), port.ExportRequest{})

	assert.Error(t, err)
	assert.True(t, stream.Closed)
}

func TestExportFetcher_BinaryFormatSkipsUTF8Check(t *testing.T) {
	source := new(mocks.MockExportSource)
	stream := &mocks.ChunkStream{Chunks: [][]byte{{0x50, 0x4b, 0x03, 0x04, 0xff}}}
	source.On("Export", mock.Anything, mock.Anything).Return(stream, nil)

	got, err := service.NewExportFetcher(source).Fetch(context.Background(), port.ExportRequest{
		Format: domain.ExportFormatXLSX,
	})

	require.NoError(t, err)
	assert.Equal(t, []byte{0x50, 0x4b, 0x03, 0x04, 0xff}, got)
}
