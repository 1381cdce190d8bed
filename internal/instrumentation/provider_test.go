package instrumentation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	assert.NotNil(t, provider.Metrics())
	assert.Nil(t, provider.PrometheusHandler())
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProviderPrometheus(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{
		ServiceName:     "mcp-kube-agent-test",
		ServiceVersion:  "0.0.1",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	assert.True(t, provider.Enabled())
	assert.NotNil(t, provider.Metrics())
	assert.NotNil(t, provider.PrometheusHandler())
}

func TestNewProviderUnsupportedExporters(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{
		Enabled:         true,
		MetricsExporter: "graphite",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported metrics exporter")

	_, err = NewProvider(context.Background(), Config{
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "zipkin",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported tracing exporter")
}

func TestDisabledMetricsAreNoOps(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	// Recording on a disabled provider must not panic.
	m := provider.Metrics()
	m.RecordHTTPRequest(context.Background(), "POST", "/mcp", 200, 0)
	m.RecordQuery(context.Background(), OperationList, "pods", "default", StatusSuccess, 0)
	m.RecordLogRead(context.Background(), "default", StatusError, 0)
}
