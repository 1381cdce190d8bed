package inspect

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/jimangel/mcp-kube-agent/internal/k8s"
	"github.com/jimangel/mcp-kube-agent/internal/server"
)

func newTestServerContext(t *testing.T, objects ...runtime.Object) *server.ServerContext {
	t.Helper()

	clientset := fake.NewSimpleClientset(objects...)
	source := k8s.Source{Kind: k8s.SourceExplicitPath, Path: "/tmp/kubeconfig"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	inspector := k8s.NewInspectorForClientset(clientset, source, logger)

	sc, err := server.NewServerContext(context.Background(),
		server.WithInspector(inspector),
		server.WithLogger(logger),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	return sc
}

func newRequest(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

// resultJSON extracts the text payload of a tool result and unmarshals it.
func resultJSON(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent in result, got %T", result.Content[0])

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &record))
	return record
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent in result, got %T", result.Content[0])
	return textContent.Text
}

func testPod(name, namespace string, containers ...string) *corev1.Pod {
	specs := make([]corev1.Container, 0, len(containers))
	for _, c := range containers {
		specs = append(specs, corev1.Container{Name: c, Image: "nginx:1.27"})
	}
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    map[string]string{"app": name},
		},
		Spec:   corev1.PodSpec{Containers: specs},
		Status: corev1.PodStatus{Phase: corev1.PodRunning},
	}
}

func TestHandleGetPods_AllNamespaces(t *testing.T) {
	sc := newTestServerContext(t,
		testPod("web-1", "default", "app"),
		testPod("web-2", "kube-system", "app"),
	)

	result, err := handleGetPods(context.Background(), newRequest(nil), sc)
	require.NoError(t, err)

	record := resultJSON(t, result)
	assert.Equal(t, "success", record["status"])
	assert.Equal(t, "Loaded kubeconfig from: /tmp/kubeconfig", record["config_info"])
	assert.Equal(t, float64(2), record["pod_count"])
	assert.Len(t, record["pods"], 2)
}

func TestHandleGetPods_ScopedNamespace(t *testing.T) {
	sc := newTestServerContext(t,
		testPod("web-1", "default", "app"),
		testPod("web-2", "kube-system", "app"),
	)

	result, err := handleGetPods(context.Background(), newRequest(map[string]interface{}{
		"namespace": "default",
	}), sc)
	require.NoError(t, err)

	record := resultJSON(t, result)
	assert.Equal(t, "success", record["status"])
	assert.Equal(t, float64(1), record["pod_count"])
}

func TestHandleGetPods_LabelSelector(t *testing.T) {
	sc := newTestServerContext(t,
		testPod("web-1", "default", "app"),
		testPod("web-2", "default", "app"),
	)

	result, err := handleGetPods(context.Background(), newRequest(map[string]interface{}{
		"namespace":     "default",
		"labelSelector": "app=web-1",
	}), sc)
	require.NoError(t, err)

	record := resultJSON(t, result)
	assert.Equal(t, float64(1), record["pod_count"])
}

func TestListHandlers_CountFieldNames(t *testing.T) {
	sc := newTestServerContext(t,
		testPod("web-1", "default", "app"),
		&corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "node-1"}},
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "default"}},
		&corev1.Service{ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"}},
		&appsv1.Deployment{ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"}},
	)

	tests := []struct {
		name     string
		handler  func(context.Context, mcp.CallToolRequest, *server.ServerContext) (*mcp.CallToolResult, error)
		countKey string
		itemsKey string
	}{
		{"pods", handleGetPods, "pod_count", "pods"},
		{"nodes", handleGetNodes, "node_count", "nodes"},
		{"namespaces", handleGetNamespaces, "namespace_count", "namespaces"},
		{"services", handleGetServices, "service_count", "services"},
		{"deployments", handleGetDeployments, "deployment_count", "deployments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.handler(context.Background(), newRequest(nil), sc)
			require.NoError(t, err)

			record := resultJSON(t, result)
			assert.Equal(t, "success", record["status"])
			assert.NotEmpty(t, record["config_info"])
			assert.Equal(t, float64(1), record[tt.countKey])
			assert.Len(t, record[tt.itemsKey], 1)
		})
	}
}

func TestHandleDescribePod(t *testing.T) {
	sc := newTestServerContext(t, testPod("web-1", "default", "app"))

	result, err := handleDescribePod(context.Background(), newRequest(map[string]interface{}{
		"podName": "web-1",
	}), sc)
	require.NoError(t, err)

	record := resultJSON(t, result)
	assert.Equal(t, "success", record["status"])

	pod, ok := record["pod"].(map[string]interface{})
	require.True(t, ok, "expected nested pod object")
	assert.Equal(t, "web-1", pod["name"])
	assert.Equal(t, "default", pod["namespace"])
}

func TestHandleDescribePod_MissingPodName(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleDescribePod(context.Background(), newRequest(nil), sc)
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "podName is required")
}

func TestHandleDescribePod_NotFound(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleDescribePod(context.Background(), newRequest(map[string]interface{}{
		"podName": "missing",
	}), sc)
	require.NoError(t, err)

	record := resultJSON(t, result)
	assert.Equal(t, "error", record["status"])
	assert.Contains(t, record["error_message"], "not found")
	assert.Equal(t, float64(404), record["error_code"])
}

func TestHandleGetLogs_SingleContainer(t *testing.T) {
	sc := newTestServerContext(t, testPod("web-1", "default", "app"))

	result, err := handleGetLogs(context.Background(), newRequest(map[string]interface{}{
		"podName": "web-1",
	}), sc)
	require.NoError(t, err)

	record := resultJSON(t, result)
	assert.Equal(t, "success", record["status"])
	assert.Equal(t, "web-1", record["pod"])
	assert.Equal(t, "default", record["namespace"])
	assert.Equal(t, "app", record["container"])
	assert.NotEmpty(t, record["logs"])
	assert.NotZero(t, record["log_lines_count"])
}

func TestHandleGetLogs_MultiContainerWithoutName(t *testing.T) {
	sc := newTestServerContext(t, testPod("web-1", "default", "app", "sidecar"))

	result, err := handleGetLogs(context.Background(), newRequest(map[string]interface{}{
		"podName": "web-1",
	}), sc)
	require.NoError(t, err)

	record := resultJSON(t, result)
	assert.Equal(t, "error", record["status"])
	assert.Contains(t, record["error_message"], "app")
	assert.Contains(t, record["error_message"], "sidecar")
	assert.Equal(t, []interface{}{"app", "sidecar"}, record["containers"])
}

func TestHandleGetLogs_PodNotFound(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleGetLogs(context.Background(), newRequest(map[string]interface{}{
		"podName":   "missing",
		"namespace": "default",
	}), sc)
	require.NoError(t, err)

	record := resultJSON(t, result)
	assert.Equal(t, "error", record["status"])
	assert.Contains(t, record["error_message"], "not found")
}

func TestHandleGetLogs_OptionEcho(t *testing.T) {
	sc := newTestServerContext(t, testPod("web-1", "default", "app"))

	result, err := handleGetLogs(context.Background(), newRequest(map[string]interface{}{
		"podName":    "web-1",
		"previous":   false,
		"timestamps": true,
		"tailLines":  float64(100),
	}), sc)
	require.NoError(t, err)

	record := resultJSON(t, result)
	assert.Equal(t, "success", record["status"])
	assert.Equal(t, true, record["timestamps_included"])
	assert.Equal(t, float64(100), record["tail_lines_requested"])
	assert.NotContains(t, record, "from_previous_container")
}

func TestHandleGetLogs_MissingPodName(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleGetLogs(context.Background(), newRequest(nil), sc)
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "podName is required")
}
