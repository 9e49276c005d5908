package mcp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil processor returns error", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Processor = nil
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingProcessor)
	})

	t.Run("nil workflow engine returns error", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Workflows = nil
		_, err := NewServer(ports)
		assert.ErrorIs(t, err, ErrMissingWorkflows)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(newTestPorts(t))
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("optional ports may be nil", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Categorizer = nil
		ports.Records = nil
		assert.NoError(t, ports.Validate())
	})

	t.Run("empty ports", func(t *testing.T) {
		assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingProcessor)
	})
}

func TestServer_HandlerServesMetrics(t *testing.T) {
	server := newTestServer(t, newTestPorts(t))

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
