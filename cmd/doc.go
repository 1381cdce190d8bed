// Package cmd provides the command-line interface for mcp-kube-agent.
//
// This package implements a Cobra-based CLI with multiple subcommands:
//   - serve: Starts the MCP server (default behavior when no subcommand is provided)
//   - version: Displays the application version
//   - self-update: Updates the binary to the latest version from GitHub releases
//
// The CLI maintains backwards compatibility by running the serve command when
// no subcommand is specified.
//
// Command Structure:
//
//	mcp-kube-agent [flags]                 # Starts the MCP server (default)
//	mcp-kube-agent serve [flags]           # Explicitly starts the MCP server
//	mcp-kube-agent version                 # Shows version information
//	mcp-kube-agent self-update             # Updates to latest release
//	mcp-kube-agent help [command]          # Shows help information
//
// The serve command supports multiple transport options:
//   - stdio: Standard input/output (default) - for command-line integration
//   - sse: Server-Sent Events over HTTP - for web-based clients
//   - streamable-http: Streamable HTTP transport - for HTTP-based integration
//
// Transport Configuration Examples:
//
//	mcp-kube-agent serve --transport stdio           # Default STDIO transport
//	mcp-kube-agent serve --transport sse --http-addr :8080 --sse-endpoint /sse
//	mcp-kube-agent serve --transport streamable-http --http-addr :9000 --http-endpoint /mcp
//
// The serve command also supports flags for selecting the kubeconfig source,
// the default namespace, Kubernetes API rate limits and timeouts, and an
// optional dedicated Prometheus metrics listener.
package cmd
