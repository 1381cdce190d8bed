package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jimangel/mcp-kube-agent/internal/instrumentation"
	"github.com/jimangel/mcp-kube-agent/internal/k8s"
	"github.com/jimangel/mcp-kube-agent/internal/logging"
	"github.com/jimangel/mcp-kube-agent/internal/server"
	"github.com/jimangel/mcp-kube-agent/internal/tools/inspect"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	var (
		kubeConfigPath string
		namespace      string
		qpsLimit       float32
		burstLimit     int
		timeoutSeconds int
		debugMode      bool

		// Transport options
		transport       string
		httpAddr        string
		sseEndpoint     string
		messageEndpoint string
		httpEndpoint    string

		// Metrics options
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP Kubernetes inspection server",
		Long: `Start the MCP server to provide read-only Kubernetes inspection
tools via the Model Context Protocol.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

Cluster credentials are resolved once at startup, trying in order: the
--kubeconfig flag, the KUBECONFIG environment variable, in-cluster
service account credentials, and finally ~/.kube/config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Env vars only apply when the flag was not explicitly set
			if !cmd.Flags().Changed("kubeconfig") {
				loadEnvIfEmpty(&kubeConfigPath, "KUBECONFIG_PATH")
			}
			if !cmd.Flags().Changed("metrics-addr") {
				loadEnvIfEmpty(&metricsAddr, "METRICS_ADDR")
			}

			config := ServeConfig{
				Transport:       transport,
				HTTPAddr:        httpAddr,
				SSEEndpoint:     sseEndpoint,
				MessageEndpoint: messageEndpoint,
				HTTPEndpoint:    httpEndpoint,
				KubeConfigPath:  kubeConfigPath,
				Namespace:       namespace,
				QPSLimit:        qpsLimit,
				BurstLimit:      burstLimit,
				TimeoutSeconds:  timeoutSeconds,
				DebugMode:       debugMode,
				Metrics: MetricsServeConfig{
					Enabled: metricsEnabled,
					Addr:    metricsAddr,
				},
			}
			return runServe(config)
		},
	}

	// Kubernetes client flags
	cmd.Flags().StringVar(&kubeConfigPath, "kubeconfig", "", "Path to a kubeconfig file (overrides KUBECONFIG and the default location)")
	cmd.Flags().StringVar(&namespace, "namespace", "default", "Default namespace for single-pod operations")
	cmd.Flags().Float32Var(&qpsLimit, "qps-limit", k8s.DefaultQPSLimit, "QPS limit for Kubernetes API calls (default: 20.0)")
	cmd.Flags().IntVar(&burstLimit, "burst-limit", k8s.DefaultBurstLimit, "Burst limit for Kubernetes API calls (default: 30)")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", k8s.DefaultTimeout, "Request timeout in seconds for Kubernetes API calls")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging (default: false)")

	// Transport flags
	cmd.Flags().StringVar(&transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&sseEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&messageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&httpEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// Metrics flags
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", false, "Serve Prometheus metrics on a dedicated listener")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Address for the dedicated metrics server")

	return cmd
}

// newLogger builds the process logger. Output goes to stderr so the stdio
// transport's stdout stream stays clean.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// runServe contains the main server logic with support for multiple transports
func runServe(config ServeConfig) error {
	logger := newLogger(config.DebugMode)
	slog.SetDefault(logger)

	// Resolve cluster credentials once, before any transport starts. A
	// resolution failure is fatal here rather than surfacing later on
	// every query.
	resolverCfg := k8s.DefaultResolverConfig(config.KubeConfigPath)
	restCfg, source, err := k8s.NewResolver().Resolve(resolverCfg)
	if err != nil {
		return fmt.Errorf("failed to resolve Kubernetes credentials: %w", err)
	}

	inspectorCfg := k8s.InspectorConfig{
		QPSLimit:   config.QPSLimit,
		BurstLimit: config.BurstLimit,
		Timeout:    time.Duration(config.TimeoutSeconds) * time.Second,
		Logger:     logger,
	}

	clientCache := k8s.NewClientCache(inspectorCfg)
	inspector, err := clientCache.Get(restCfg, source)
	if err != nil {
		return fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	logger.Info("kubernetes credentials resolved", logging.Source(source.Describe()))

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry instrumentation provider
	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	instrumentationProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if shutdownErr := instrumentationProvider.Shutdown(context.Background()); shutdownErr != nil {
			logger.Error("error during instrumentation shutdown", logging.Err(shutdownErr))
		}
	}()

	if instrumentationProvider.Enabled() {
		logger.Info("instrumentation enabled",
			"metrics_exporter", instrumentationConfig.MetricsExporter,
			"tracing_exporter", instrumentationConfig.TracingExporter)
	}

	serverConfig := server.NewDefaultConfig()
	serverConfig.Version = rootCmd.Version
	serverConfig.DefaultNamespace = config.Namespace
	serverConfig.KubeConfigPath = config.KubeConfigPath
	if config.DebugMode {
		serverConfig.LogLevel = "debug"
	}

	serverContext, err := server.NewServerContext(shutdownCtx,
		server.WithInspector(inspector),
		server.WithLogger(logger),
		server.WithConfig(serverConfig),
		server.WithClientCache(clientCache),
		server.WithInstrumentationProvider(instrumentationProvider),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("error during server context shutdown", logging.Err(err))
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("mcp-kube-agent", rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := inspect.RegisterInspectionTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register inspection tools: %w", err)
	}

	// Start the appropriate server based on transport type
	switch config.Transport {
	case transportStdio:
		// Don't print startup messages for stdio mode as stdout carries
		// the MCP stream
		return runStdioServer(mcpSrv)
	case transportSSE:
		return runSSEServer(mcpSrv, config, shutdownCtx, serverContext, instrumentationProvider)
	case transportStreamableHTTP:
		return runStreamableHTTPServer(mcpSrv, config, shutdownCtx, serverContext, instrumentationProvider)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", config.Transport)
	}
}
