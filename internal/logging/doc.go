// Package logging provides structured logging utilities for the
// mcp-kube-agent application.
//
// This package centralizes logging patterns so that the same attribute
// names appear throughout the codebase, built on the standard library's
// slog package.
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "k8s_get_pods")
//	logger.Info("listing resources",
//	    logging.Namespace("default"),
//	    logging.ResourceType("pods"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("connected", logging.Host(apiServer))
//
// API server URLs have IP addresses redacted before they are logged to
// prevent topology leakage.
package logging
