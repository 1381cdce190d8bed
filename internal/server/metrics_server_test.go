package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimangel/mcp-kube-agent/internal/instrumentation"
)

// createTestProvider creates an enabled instrumentation provider for testing.
func createTestProvider(t *testing.T) *instrumentation.Provider {
	t.Helper()

	provider, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{
		ServiceName:     "mcp-kube-agent-test",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return provider
}

func TestNewMetricsServer(t *testing.T) {
	t.Run("nil instrumentation provider", func(t *testing.T) {
		_, err := NewMetricsServer(MetricsServerConfig{Addr: ":9090"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "instrumentation provider is required")
	})

	t.Run("empty addr uses default", func(t *testing.T) {
		srv, err := NewMetricsServer(MetricsServerConfig{
			InstrumentationProvider: createTestProvider(t),
		})
		require.NoError(t, err)
		assert.Equal(t, DefaultMetricsAddr, srv.Addr())
	})

	t.Run("custom addr", func(t *testing.T) {
		srv, err := NewMetricsServer(MetricsServerConfig{
			Addr:                    ":9191",
			InstrumentationProvider: createTestProvider(t),
		})
		require.NoError(t, err)
		assert.Equal(t, ":9191", srv.Addr())
	})
}

func TestMetricsServerShutdownWithoutStart(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		Addr:                    ":9192",
		InstrumentationProvider: createTestProvider(t),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}
