package inspect

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jimangel/mcp-kube-agent/internal/k8s"
)

// Every tool answers with a JSON record carrying a "status" field of
// "success" or "error". The field names below are the wire contract the
// agent consumes; changing them breaks downstream prompts.

const (
	statusSuccess = "success"
	statusError   = "error"
)

type podListResult struct {
	Status     string          `json:"status"`
	ConfigInfo string          `json:"config_info"`
	PodCount   int             `json:"pod_count"`
	Pods       []k8s.PodRecord `json:"pods"`
}

type nodeListResult struct {
	Status     string           `json:"status"`
	ConfigInfo string           `json:"config_info"`
	NodeCount  int              `json:"node_count"`
	Nodes      []k8s.NodeRecord `json:"nodes"`
}

type namespaceListResult struct {
	Status         string                `json:"status"`
	ConfigInfo     string                `json:"config_info"`
	NamespaceCount int                   `json:"namespace_count"`
	Namespaces     []k8s.NamespaceRecord `json:"namespaces"`
}

type serviceListResult struct {
	Status       string              `json:"status"`
	ConfigInfo   string              `json:"config_info"`
	ServiceCount int                 `json:"service_count"`
	Services     []k8s.ServiceRecord `json:"services"`
}

type deploymentListResult struct {
	Status          string                 `json:"status"`
	ConfigInfo      string                 `json:"config_info"`
	DeploymentCount int                    `json:"deployment_count"`
	Deployments     []k8s.DeploymentRecord `json:"deployments"`
}

type podDetailResult struct {
	Status     string         `json:"status"`
	ConfigInfo string         `json:"config_info"`
	Pod        *k8s.PodDetail `json:"pod"`
}

// logReadResult inlines the LogResult fields after status/config_info.
type logReadResult struct {
	Status     string `json:"status"`
	ConfigInfo string `json:"config_info"`
	k8s.LogResult
}

type errorRecord struct {
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message"`
	ErrorCode    *int     `json:"error_code,omitempty"`
	Containers   []string `json:"containers,omitempty"`
}

// successResult marshals a success record into a tool result.
func successResult(record any) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// errorResult classifies err into the uniform error record. Config and
// remote failures keep their message verbatim; a remote status code
// populates error_code, and an ambiguous-container failure lists the
// available names. The record is returned as the tool payload so the
// transport never sees a Go error for a domain failure.
func errorResult(err error) (*mcp.CallToolResult, error) {
	record := errorRecord{
		Status:       statusError,
		ErrorMessage: err.Error(),
	}

	var remoteErr *k8s.RemoteError
	var ambiguousErr *k8s.AmbiguousContainerError
	switch {
	case errors.As(err, &remoteErr):
		if remoteErr.Code != 0 {
			code := remoteErr.Code
			record.ErrorCode = &code
		}
	case errors.As(err, &ambiguousErr):
		record.Containers = ambiguousErr.Containers
	}

	payload, marshalErr := json.MarshalIndent(record, "", "  ")
	if marshalErr != nil {
		return mcp.NewToolResultError(record.ErrorMessage), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
