package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerrk000/teamify/internal/api"
	"github.com/jerrk000/teamify/internal/testutil"
)

func TestServer_StartAndShutdown(t *testing.T) {
	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})
	server := api.NewServer(handler, cfg, testutil.NopLogger())

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	require.Eventually(t, func() bool {
		return !strings.HasSuffix(server.Addr(), ":0")
	}, time.Second, 5*time.Millisecond)

	resp, err := http.Get("http://" + server.Addr() + "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, server.Shutdown(context.Background()))
	assert.NoError(t, <-errCh)
}

func TestServer_AddrBeforeStart(t *testing.T) {
	cfg := api.DefaultServerConfig()
	cfg.Port = 9090
	server := api.NewServer(http.NotFoundHandler(), cfg, testutil.NopLogger())
	assert.Equal(t, ":9090", server.Addr())
}
