package ses_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exportbridge/internal/config"
	"exportbridge/internal/notify/ses"
	"exportbridge/internal/port"
)

func TestSESNotifier_SendsFailureEmail(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/email/outbound-emails", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"MessageId":"msg-1"}`))
	}))
	defer srv.Close()

	n, err := ses.NewSESNotifier(&config.NotifyConfig{
		Region:      "us-east-1",
		FromAddress: "bridge@example.com",
		FromName:    "Export Bridge",
		Recipients:  []string{"ops@example.com"},
	}, func(o *sesv2.Options) {
		o.BaseEndpoint = aws.String(srv.URL)
		o.Credentials = credentials.NewStaticCredentialsProvider("test", "test", "")
	})
	require.NoError(t, err)

	err = n.NotifyExportFailure(context.Background(), port.ExportFailure{
		AnnotationID: "2451971",
		QueueID:      "12345",
		Stage:        "mapped",
		Reason:       "sink responded with status 503",
		RequestID:    "req-1",
	})
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "Export Bridge <bridge@example.com>", captured["FromEmailAddress"])
	dest := captured["Destination"].(map[string]any)
	assert.Equal(t, []any{"ops@example.com"}, dest["ToAddresses"])
	content := captured["Content"].(map[string]any)["Simple"].(map[string]any)
	subject := content["Subject"].(map[string]any)
	assert.Equal(t, "Export failed for annotation 2451971", subject["Data"])
	text := content["Body"].(map[string]any)["Text"].(map[string]any)["Data"].(string)
	assert.Contains(t, text, "Stage reached: mapped")
	assert.Contains(t, text, "Request ID: req-1")
}

func TestSESNotifier_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Amzn-ErrorType", "MessageRejected")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Email address is not verified."}`))
	}))
	defer srv.Close()

	n, err := ses.NewSESNotifier(&config.NotifyConfig{
		Region:      "us-east-1",
		FromAddress: "bridge@example.com",
		Recipients:  []string{"ops@example.com"},
	}, func(o *sesv2.Options) {
		o.BaseEndpoint = aws.String(srv.URL)
		o.Credentials = credentials.NewStaticCredentialsProvider("test", "test", "")
		o.RetryMaxAttempts = 1
	})
	require.NoError(t, err)

	err = n.NotifyExportFailure(context.Background(), port.ExportFailure{AnnotationID: "1"})
	assert.Error(t, err)
}
