package postbin_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exportbridge/internal/config"
	"exportbridge/internal/domain"
	"exportbridge/internal/port"
	"exportbridge/internal/postbin"
)

func newSink(url string) *postbin.Sink {
	return postbin.NewSink(&config.PostbinConfig{URL: url, Timeout: 5 * time.Second})
}

func TestSink_Deliver_Envelope(t *testing.T) {
	content := []byte(`<?xml version="1.0" encoding="utf-8"?>` + "\n<InvoiceRegisters/>")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2451971", body["annotationId"])

		decoded, err := base64.StdEncoding.DecodeString(body["content"])
		assert.NoError(t, err)
		assert.Equal(t, string(content), string(decoded))

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	status, err := newSink(srv.URL).Deliver(context.Background(), port.DeliverInput{
		AnnotationID: "2451971",
		Content:      content,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
}

func TestSink_Deliver_AcceptedStatuses(t *testing.T) {
	for _, code := range []int{http.StatusOK, http.StatusCreated} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
		}))

		status, err := newSink(srv.URL).Deliver(context.Background(), port.DeliverInput{AnnotationID: "1"})
		assert.NoError(t, err)
		assert.Equal(t, code, status)
		srv.Close()
	}
}

func TestSink_Deliver_RejectedStatuses(t *testing.T) {
	for _, code := range []int{http.StatusAccepted, http.StatusNoContent, http.StatusBadRequest, http.StatusServiceUnavailable} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
		}))

		status, err := newSink(srv.URL).Deliver(context.Background(), port.DeliverInput{AnnotationID: "1"})
		require.Error(t, err)
		assert.Equal(t, code, status)
		assert.ErrorIs(t, err, domain.ErrForwardingFailed)

		var fwdErr *domain.ForwardingError
		require.ErrorAs(t, err, &fwdErr)
		assert.Equal(t, code, fwdErr.StatusCode)
		srv.Close()
	}
}

func TestSink_Deliver_SingleAttempt(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newSink(srv.URL).Deliver(context.Background(), port.DeliverInput{AnnotationID: "1"})
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSink_Deliver_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	_, err := newSink(srv.URL).Deliver(context.Background(), port.DeliverInput{AnnotationID: "1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrForwardingFailed)
}
