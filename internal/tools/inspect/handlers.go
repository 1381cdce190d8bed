package inspect

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jimangel/mcp-kube-agent/internal/instrumentation"
	"github.com/jimangel/mcp-kube-agent/internal/k8s"
	"github.com/jimangel/mcp-kube-agent/internal/server"
)

// handleGetPods handles pod list queries
func handleGetPods(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	namespace, _ := args["namespace"].(string)
	if namespace == "" {
		namespace = k8s.NamespaceAll
	}
	labelSelector, _ := args["labelSelector"].(string)

	ctx, span := instrumentation.StartToolSpan(ctx, "k8s_get_pods",
		instrumentation.NewSpanAttributeBuilder().
			WithOperation(instrumentation.OperationList).
			WithNamespace(namespace).
			WithResource("pod", "").
			Build()...,
	)
	defer span.End()

	start := time.Now()
	pods, err := sc.Inspector().ListPods(ctx, namespace, labelSelector)
	if err != nil {
		sc.RecordQuery(ctx, instrumentation.OperationList, "pod", namespace, instrumentation.StatusError, time.Since(start))
		instrumentation.SetSpanError(span, err)
		return errorResult(err)
	}
	sc.RecordQuery(ctx, instrumentation.OperationList, "pod", namespace, instrumentation.StatusSuccess, time.Since(start))
	instrumentation.SetSpanSuccess(span)

	return successResult(podListResult{
		Status:     statusSuccess,
		ConfigInfo: sc.Inspector().Source().Describe(),
		PodCount:   len(pods),
		Pods:       pods,
	})
}

// handleGetNodes handles node list queries
func handleGetNodes(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	ctx, span := instrumentation.StartToolSpan(ctx, "k8s_get_nodes",
		instrumentation.NewSpanAttributeBuilder().
			WithOperation(instrumentation.OperationList).
			WithResource("node", "").
			Build()...,
	)
	defer span.End()

	start := time.Now()
	nodes, err := sc.Inspector().ListNodes(ctx)
	if err != nil {
		sc.RecordQuery(ctx, instrumentation.OperationList, "node", "", instrumentation.StatusError, time.Since(start))
		instrumentation.SetSpanError(span, err)
		return errorResult(err)
	}
	sc.RecordQuery(ctx, instrumentation.OperationList, "node", "", instrumentation.StatusSuccess, time.Since(start))
	instrumentation.SetSpanSuccess(span)

	return successResult(nodeListResult{
		Status:     statusSuccess,
		ConfigInfo: sc.Inspector().Source().Describe(),
		NodeCount:  len(nodes),
		Nodes:      nodes,
	})
}

// handleGetNamespaces handles namespace list queries
func handleGetNamespaces(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	ctx, span := instrumentation.StartToolSpan(ctx, "k8s_get_namespaces",
		instrumentation.NewSpanAttributeBuilder().
			WithOperation(instrumentation.OperationList).
			WithResource("namespace", "").
			Build()...,
	)
	defer span.End()

	start := time.Now()
	namespaces, err := sc.Inspector().ListNamespaces(ctx)
	if err != nil {
		sc.RecordQuery(ctx, instrumentation.OperationList, "namespace", "", instrumentation.StatusError, time.Since(start))
		instrumentation.SetSpanError(span, err)
		return errorResult(err)
	}
	sc.RecordQuery(ctx, instrumentation.OperationList, "namespace", "", instrumentation.StatusSuccess, time.Since(start))
	instrumentation.SetSpanSuccess(span)

	return successResult(namespaceListResult{
		Status:         statusSuccess,
		ConfigInfo:     sc.Inspector().Source().Describe(),
		NamespaceCount: len(namespaces),
		Namespaces:     namespaces,
	})
}

// handleGetServices handles service list queries
func handleGetServices(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	namespace, _ := args["namespace"].(string)
	if namespace == "" {
		namespace = k8s.NamespaceAll
	}

	ctx, span := instrumentation.StartToolSpan(ctx, "k8s_get_services",
		instrumentation.NewSpanAttributeBuilder().
			WithOperation(instrumentation.OperationList).
			WithNamespace(namespace).
			WithResource("service", "").
			Build()...,
	)
	defer span.End()

	start := time.Now()
	services, err := sc.Inspector().ListServices(ctx, namespace)
	if err != nil {
		sc.RecordQuery(ctx, instrumentation.OperationList, "service", namespace, instrumentation.StatusError, time.Since(start))
		instrumentation.SetSpanError(span, err)
		return errorResult(err)
	}
	sc.RecordQuery(ctx, instrumentation.OperationList, "service", namespace, instrumentation.StatusSuccess, time.Since(start))
	instrumentation.SetSpanSuccess(span)

	return successResult(serviceListResult{
		Status:       statusSuccess,
		ConfigInfo:   sc.Inspector().Source().Describe(),
		ServiceCount: len(services),
		Services:     services,
	})
}

// handleGetDeployments handles deployment list queries
func handleGetDeployments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	namespace, _ := args["namespace"].(string)
	if namespace == "" {
		namespace = k8s.NamespaceAll
	}

	ctx, span := instrumentation.StartToolSpan(ctx, "k8s_get_deployments",
		instrumentation.NewSpanAttributeBuilder().
			WithOperation(instrumentation.OperationList).
			WithNamespace(namespace).
			WithResource("deployment", "").
			Build()...,
	)
	defer span.End()

	start := time.Now()
	deployments, err := sc.Inspector().ListDeployments(ctx, namespace)
	if err != nil {
		sc.RecordQuery(ctx, instrumentation.OperationList, "deployment", namespace, instrumentation.StatusError, time.Since(start))
		instrumentation.SetSpanError(span, err)
		return errorResult(err)
	}
	sc.RecordQuery(ctx, instrumentation.OperationList, "deployment", namespace, instrumentation.StatusSuccess, time.Since(start))
	instrumentation.SetSpanSuccess(span)

	return successResult(deploymentListResult{
		Status:          statusSuccess,
		ConfigInfo:      sc.Inspector().Source().Describe(),
		DeploymentCount: len(deployments),
		Deployments:     deployments,
	})
}

// handleDescribePod handles single-pod detail reads
func handleDescribePod(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	podName, ok := args["podName"].(string)
	if !ok || podName == "" {
		return mcp.NewToolResultError("podName is required"), nil
	}

	namespace, _ := args["namespace"].(string)
	if namespace == "" {
		namespace = sc.Config().DefaultNamespace
	}

	ctx, span := instrumentation.StartToolSpan(ctx, "k8s_describe_pod",
		instrumentation.NewSpanAttributeBuilder().
			WithOperation(instrumentation.OperationGet).
			WithNamespace(namespace).
			WithResource("pod", podName).
			Build()...,
	)
	defer span.End()

	start := time.Now()
	detail, err := sc.Inspector().GetPodDetail(ctx, namespace, podName)
	if err != nil {
		sc.RecordQuery(ctx, instrumentation.OperationGet, "pod", namespace, instrumentation.StatusError, time.Since(start))
		instrumentation.SetSpanError(span, err)
		return errorResult(err)
	}
	sc.RecordQuery(ctx, instrumentation.OperationGet, "pod", namespace, instrumentation.StatusSuccess, time.Since(start))
	instrumentation.SetSpanSuccess(span)

	return successResult(podDetailResult{
		Status:     statusSuccess,
		ConfigInfo: sc.Inspector().Source().Describe(),
		Pod:        detail,
	})
}

// handleGetLogs handles container log reads
func handleGetLogs(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	podName, ok := args["podName"].(string)
	if !ok || podName == "" {
		return mcp.NewToolResultError("podName is required"), nil
	}

	namespace, _ := args["namespace"].(string)
	if namespace == "" {
		namespace = sc.Config().DefaultNamespace
	}

	container, _ := args["container"].(string)
	previous, _ := args["previous"].(bool)
	timestamps, _ := args["timestamps"].(bool)

	var tailLines *int64
	if tailLinesFloat, ok := args["tailLines"].(float64); ok {
		tailLinesInt := int64(tailLinesFloat)
		tailLines = &tailLinesInt
	}

	var sinceSeconds *int64
	if sinceSecondsFloat, ok := args["sinceSeconds"].(float64); ok {
		sinceSecondsInt := int64(sinceSecondsFloat)
		sinceSeconds = &sinceSecondsInt
	}

	ctx, span := instrumentation.StartToolSpan(ctx, "k8s_get_logs",
		instrumentation.NewSpanAttributeBuilder().
			WithOperation(instrumentation.OperationLogs).
			WithNamespace(namespace).
			WithResource("pod", podName).
			Build()...,
	)
	defer span.End()

	query := k8s.LogQuery{
		Pod:          podName,
		Namespace:    namespace,
		Container:    container,
		Previous:     previous,
		Timestamps:   timestamps,
		TailLines:    tailLines,
		SinceSeconds: sinceSeconds,
	}

	start := time.Now()
	result, err := sc.Inspector().GetLogs(ctx, query)
	if err != nil {
		sc.RecordLogRead(ctx, namespace, instrumentation.StatusError, time.Since(start))
		instrumentation.SetSpanError(span, err)
		return errorResult(err)
	}
	sc.RecordLogRead(ctx, namespace, instrumentation.StatusSuccess, time.Since(start))
	instrumentation.SetSpanSuccess(span)

	return successResult(logReadResult{
		Status:     statusSuccess,
		ConfigInfo: sc.Inspector().Source().Describe(),
		LogResult:  *result,
	})
}
