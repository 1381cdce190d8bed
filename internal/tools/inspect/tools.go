package inspect

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jimangel/mcp-kube-agent/internal/server"
)

// RegisterInspectionTools registers all read-only cluster inspection tools
// with the MCP server
func RegisterInspectionTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// k8s_get_pods tool
	podsTool := mcp.NewTool("k8s_get_pods",
		mcp.WithDescription("List pods in the Kubernetes cluster"),
		mcp.WithString("namespace",
			mcp.Description("Namespace to list pods from. Use 'all' for all namespaces (default: 'all')"),
		),
		mcp.WithString("labelSelector",
			mcp.Description("Label selector to filter pods (e.g., 'app=nginx')"),
		),
	)

	s.AddTool(podsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetPods(ctx, request, sc)
	})

	// k8s_get_nodes tool
	nodesTool := mcp.NewTool("k8s_get_nodes",
		mcp.WithDescription("List nodes in the Kubernetes cluster with capacity and readiness"),
	)

	s.AddTool(nodesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetNodes(ctx, request, sc)
	})

	// k8s_get_namespaces tool
	namespacesTool := mcp.NewTool("k8s_get_namespaces",
		mcp.WithDescription("List namespaces in the Kubernetes cluster"),
	)

	s.AddTool(namespacesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetNamespaces(ctx, request, sc)
	})

	// k8s_get_services tool
	servicesTool := mcp.NewTool("k8s_get_services",
		mcp.WithDescription("List services in the Kubernetes cluster"),
		mcp.WithString("namespace",
			mcp.Description("Namespace to list services from. Use 'all' for all namespaces (default: 'all')"),
		),
	)

	s.AddTool(servicesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetServices(ctx, request, sc)
	})

	// k8s_get_deployments tool
	deploymentsTool := mcp.NewTool("k8s_get_deployments",
		mcp.WithDescription("List deployments in the Kubernetes cluster"),
		mcp.WithString("namespace",
			mcp.Description("Namespace to list deployments from. Use 'all' for all namespaces (default: 'all')"),
		),
	)

	s.AddTool(deploymentsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetDeployments(ctx, request, sc)
	})

	// k8s_describe_pod tool
	describePodTool := mcp.NewTool("k8s_describe_pod",
		mcp.WithDescription("Get detailed information about a specific pod"),
		mcp.WithString("podName",
			mcp.Required(),
			mcp.Description("Name of the pod to describe"),
		),
		mcp.WithString("namespace",
			mcp.Description("Namespace of the pod (default: 'default')"),
		),
	)

	s.AddTool(describePodTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDescribePod(ctx, request, sc)
	})

	// k8s_get_logs tool
	logsTool := mcp.NewTool("k8s_get_logs",
		mcp.WithDescription("Get logs from a pod container"),
		mcp.WithString("podName",
			mcp.Required(),
			mcp.Description("Name of the pod to get logs from"),
		),
		mcp.WithString("namespace",
			mcp.Description("Namespace of the pod (default: 'default')"),
		),
		mcp.WithString("container",
			mcp.Description("Container name (required if the pod has multiple containers)"),
		),
		mcp.WithBoolean("previous",
			mcp.Description("Get logs from the previous terminated container instance (default: false)"),
		),
		mcp.WithBoolean("timestamps",
			mcp.Description("Include timestamps in log output (default: false)"),
		),
		mcp.WithNumber("tailLines",
			mcp.Description("Number of lines from the end of the logs to return (optional)"),
		),
		mcp.WithNumber("sinceSeconds",
			mcp.Description("Only return logs newer than this many seconds (optional)"),
		),
	)

	s.AddTool(logsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetLogs(ctx, request, sc)
	})

	return nil
}
