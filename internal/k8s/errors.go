package k8s

import (
	"errors"
	"fmt"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// ConfigError reports that no credential source could be resolved. It keeps
// the primary failure (whichever leg of the chain was selected) and the
// default-file fallback failure separate so both show up in diagnostics.
type ConfigError struct {
	Primary  error
	Fallback error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("failed to load any Kubernetes config: %v, %v", e.Primary, e.Fallback)
}

// RemoteError reports a rejected or failed Kubernetes API call. Code is the
// server-reported HTTP status when available, 0 otherwise.
type RemoteError struct {
	Message string
	Code    int
}

func (e *RemoteError) Error() string {
	return e.Message
}

// AmbiguousContainerError is returned by GetLogs when a pod has multiple
// containers and the caller did not name one. The available names are
// carried so the error record can list them.
type AmbiguousContainerError struct {
	Pod        string
	Containers []string
}

func (e *AmbiguousContainerError) Error() string {
	return fmt.Sprintf("pod %q has multiple containers, please specify one: [%s]",
		e.Pod, strings.Join(e.Containers, ", "))
}

// statusCode extracts the HTTP status code from a client-go API error,
// or 0 when the error carries none.
func statusCode(err error) int {
	var status apierrors.APIStatus
	if errors.As(err, &status) {
		return int(status.Status().Code)
	}
	return 0
}

// remoteError normalizes a client-go error into a *RemoteError with the
// server-reported message and status code.
func remoteError(err error) *RemoteError {
	code := statusCode(err)
	var status apierrors.APIStatus
	if errors.As(err, &status) {
		if msg := status.Status().Message; msg != "" {
			return &RemoteError{Message: fmt.Sprintf("Kubernetes API error: %s", msg), Code: code}
		}
	}
	return &RemoteError{Message: fmt.Sprintf("Kubernetes API error: %v", err), Code: code}
}
