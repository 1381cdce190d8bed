package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jimangel/mcp-kube-agent/internal/instrumentation"
	"github.com/jimangel/mcp-kube-agent/internal/k8s"
)

// DefaultShutdownTimeout bounds graceful shutdown of the HTTP transports.
const DefaultShutdownTimeout = 30 * time.Second

// ServerContext encapsulates all dependencies needed by the MCP server
// and provides a clean abstraction for dependency injection and lifecycle
// management.
type ServerContext struct {
	// Core dependencies
	inspector k8s.Inspector
	logger    *slog.Logger
	config    *Config

	// clientCache reuses Kubernetes clients per resolved credential
	// source. Optional: nil when the server holds a single inspector.
	clientCache *k8s.ClientCache

	// instrumentationProvider owns metrics and tracing. Optional.
	instrumentationProvider *instrumentation.Provider

	// Context management
	ctx    context.Context
	cancel context.CancelFunc

	// Lifecycle management
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new ServerContext with default values.
// Use the provided functional options to customize the context.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
		config: NewDefaultConfig(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	return sc, nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ctx
}

// Inspector returns the Kubernetes query interface.
func (sc *ServerContext) Inspector() k8s.Inspector {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.inspector
}

// Logger returns the structured logger.
func (sc *ServerContext) Logger() *slog.Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// ClientCache returns the client cache, or nil if none was configured.
func (sc *ServerContext) ClientCache() *k8s.ClientCache {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.clientCache
}

// InstrumentationProvider returns the instrumentation provider, or nil.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.instrumentationProvider
}

// RecordQuery records a Kubernetes query metric. Safe to call when
// instrumentation is disabled or absent.
func (sc *ServerContext) RecordQuery(ctx context.Context, operation, resourceType, namespace, status string, duration time.Duration) {
	provider := sc.InstrumentationProvider()
	if provider == nil || !provider.Enabled() {
		return
	}
	provider.Metrics().RecordQuery(ctx, operation, resourceType, namespace, status, duration)
}

// RecordLogRead records a container log read metric. Safe to call when
// instrumentation is disabled or absent.
func (sc *ServerContext) RecordLogRead(ctx context.Context, namespace, status string, duration time.Duration) {
	provider := sc.InstrumentationProvider()
	if provider == nil || !provider.Enabled() {
		return
	}
	provider.Metrics().RecordLogRead(ctx, namespace, status, duration)
}

// Shutdown gracefully shuts down the server context.
// This cancels the context and releases any resources.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.logger.Info("shutting down server context")

	if sc.cancel != nil {
		sc.cancel()
	}
	sc.shutdown = true

	sc.logger.Info("server context shutdown complete")
	return nil
}

// IsShutdown returns true if the server context has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// validate ensures all required dependencies are set.
func (sc *ServerContext) validate() error {
	if sc.inspector == nil {
		return ErrMissingInspector
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	return nil
}

// Config holds the server configuration.
type Config struct {
	// Server settings
	ServerName string `json:"serverName"`
	Version    string `json:"version"`

	// Kubernetes settings
	DefaultNamespace string `json:"defaultNamespace"`
	KubeConfigPath   string `json:"kubeConfigPath"`

	// Logging settings
	LogLevel string `json:"logLevel"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName:       "mcp-kube-agent",
		Version:          "0.1.0",
		DefaultNamespace: "default",
		LogLevel:         "info",
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
