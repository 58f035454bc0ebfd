package s3_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exportbridge/internal/config"
	"exportbridge/internal/port"
	s3storage "exportbridge/internal/storage/s3"
)

// fakeBucket is a path-style S3 endpoint that keeps objects in memory.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		b.objects[r.URL.Path] = data
		b.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag-1"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := b.objects[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
			return
		}
		_, _ = w.Write(data)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newStorage(t *testing.T) (port.ObjectStorage, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	storage, err := s3storage.NewS3Client(&config.ArchiveConfig{
		Region:    "us-east-1",
		Bucket:    "archive",
		Endpoint:  srv.URL,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)
	return storage, bucket
}

func TestS3Client_UploadAndDownload(t *testing.T) {
	storage, bucket := newStorage(t)
	ctx := context.Background()

	out, err := storage.Upload(ctx, port.UploadInput{
		Key:         "exports/12345/2451971/converted.xml",
		Body:        strings.NewReader("<InvoiceRegisters/>"),
		ContentType: "application/xml",
	})
	require.NoError(t, err)
	assert.Equal(t, `"etag-1"`, out.ETag)
	assert.Contains(t, out.Location, "/archive/exports/12345/2451971/converted.xml")
	assert.Equal(t, "application/xml", bucket.types["/archive/exports/12345/2451971/converted.xml"])

	data, err := storage.Download(ctx, "exports/12345/2451971/converted.xml")
	require.NoError(t, err)
	assert.Equal(t, "<InvoiceRegisters/>", string(data))
}

func TestS3Client_DownloadMissing(t *testing.T) {
	storage, _ := newStorage(t)

	_, err := storage.Download(context.Background(), "exports/nope.xml")
	assert.Error(t, err)
}
