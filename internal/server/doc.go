// Package server provides the ServerContext pattern and related
// infrastructure for the mcp-kube-agent server.
//
// This package implements the core server architecture patterns including:
//
//   - ServerContext: Encapsulates all server dependencies and lifecycle management
//   - Functional Options: Clean dependency injection and configuration
//   - HealthChecker: Liveness and readiness endpoints for Kubernetes probes
//   - MetricsServer: Dedicated Prometheus metrics listener
//
// The ServerContext struct follows the context pattern commonly used in Go
// applications to encapsulate dependencies and provide clean separation of
// concerns. It includes:
//
//   - Kubernetes inspector interface
//   - Structured logger
//   - Configuration settings
//   - Context for cancellation and timeouts
//   - Lifecycle management (shutdown, cleanup)
//
// All dependencies are injected using functional options, making the code
// highly testable and modular.
//
// Example usage:
//
//	ctx := context.Background()
//	serverCtx, err := NewServerContext(ctx,
//		WithInspector(inspector),
//		WithLogger(logger),
//		WithDefaultNamespace("production"),
//	)
//	if err != nil {
//		return err
//	}
//	defer serverCtx.Shutdown()
//
//	inspector := serverCtx.Inspector()
//	config := serverCtx.Config()
//
//	if serverCtx.IsShutdown() {
//		return ErrServerShutdown
//	}
package server
