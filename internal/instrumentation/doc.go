// Package instrumentation provides OpenTelemetry instrumentation for the
// mcp-kube-agent server.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for HTTP requests and Kubernetes queries
//   - Distributed tracing for tool invocations and Kubernetes API calls
//   - Prometheus metrics export via /metrics endpoint
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// Server/HTTP metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Kubernetes query metrics:
//   - kubernetes_queries_total: Counter of queries by operation and status
//   - kubernetes_query_duration_seconds: Histogram of query durations
//   - kubernetes_log_reads_total: Counter of container log reads
//   - kubernetes_log_read_duration_seconds: Histogram of log read durations
//
// # Cardinality Considerations
//
// Query metrics include namespace and resource_type labels only when
// detailed labels are enabled, since those labels can create high
// cardinality in large clusters. In environments with >1000 namespaces,
// keep detailed labels disabled and use tracing for per-resource
// debugging instead.
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: mcp-kube-agent)
//   - METRICS_DETAILED_LABELS: Include namespace/resource_type labels (default: false)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "mcp-kube-agent",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordHTTPRequest(ctx, "POST", "/mcp", 200, time.Since(start))
//	recorder.RecordQuery(ctx, "list", "pods", "default", "success", time.Since(start))
package instrumentation
