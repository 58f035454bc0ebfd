package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"exportbridge/internal/config"
	"exportbridge/internal/domain"
	"exportbridge/internal/handler"
	"exportbridge/internal/router"
	"exportbridge/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testAuth = config.AuthConfig{Username: "bridge", Password: "s3cret"}

func setupEngine(svc *mocks.MockExportService) *gin.Engine {
	return router.Setup(testAuth, handler.NewExportHandler(svc), handler.NewHealthHandler())
}

func TestRouter_ExportRequiresAuth(t *testing.T) {
	svc := new(mocks.MockExportService)
	r := setupEngine(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export?annotationId=1&queueId=2", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="Login Required"`, w.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "Auth failed!", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
}

func TestRouter_ExportAuthenticated(t *testing.T) {
	svc := new(mocks.MockExportService)
	r := setupEngine(svc)

	svc.On("Export", mock.Anything, mock.MatchedBy(func(in domain.ExportInput) bool {
		return in.AnnotationID == "1" && in.QueueID == "2" && in.RequestID == "req-7"
	})).Return(&domain.ExportResult{SinkStatus: 200}, nil)

	req := httptest.NewRequest(http.MethodGet, "/export?annotationId=1&queueId=2", nil)
	req.SetBasicAuth("bridge", "s3cret")
	req.Header.Set("X-Request-ID", "req-7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestRouter_ExportMissingParamsAfterAuth(t *testing.T) {
	svc := new(mocks.MockExportService)
	r := setupEngine(svc)

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	req.SetBasicAuth("bridge", "s3cret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Missing annotationId or queueId"}`, w.Body.String())
}

func TestRouter_PanicBecomesGenericError(t *testing.T) {
	svc := new(mocks.MockExportService)
	r := setupEngine(svc)

	svc.On("Export", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("unexpected")
	})

	req := httptest.NewRequest(http.MethodGet, "/export?annotationId=1&queueId=2", nil)
	req.SetBasicAuth("bridge", "s3cret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"An error occurred during the export process"}`, w.Body.String())
}

func TestRouter_HealthzIsPublic(t *testing.T) {
	r := setupEngine(new(mocks.MockExportService))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
