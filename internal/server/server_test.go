package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

func TestNewRequiresListenAddress(t *testing.T) {
	_, err := New(http.NewServeMux(), config.Control{}, logger.Nop())
	assert.ErrorIs(t, err, ErrNoListenAddress)
}

func TestNewWrapsHandlerWithRequestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	srv, err := New(slow, config.Control{
		HTTPAddress:    "127.0.0.1:0",
		RequestTimeout: 20 * time.Millisecond,
	}, logger.Nop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.(*controlServer).server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sync/now", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
