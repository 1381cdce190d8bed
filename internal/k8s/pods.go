package k8s

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// noLogsMessage explains an empty log body without treating it as an error.
const noLogsMessage = "No logs found. The container might be starting up or not producing any output."

// GetPodDetail reads one pod and produces the nested detail record.
func (i *inspector) GetPodDetail(ctx context.Context, namespace, name string) (*PodDetail, error) {
	i.logOperation("get-pod-detail", namespace, name)

	pod, err := i.clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, remoteError(err)
	}
	return podDetail(pod), nil
}

func podDetail(pod *corev1.Pod) *PodDetail {
	detail := &PodDetail{
		Name:        pod.Name,
		Namespace:   pod.Namespace,
		UID:         string(pod.UID),
		Created:     pod.CreationTimestamp.String(),
		Labels:      labelsOrEmpty(pod.Labels),
		Annotations: labelsOrEmpty(pod.Annotations),
		Status: PodStatusRecord{
			Phase:   string(pod.Status.Phase),
			Message: pod.Status.Message,
			Reason:  pod.Status.Reason,
			PodIP:   pod.Status.PodIP,
			HostIP:  pod.Status.HostIP,
		},
		Spec: PodSpecRecord{
			NodeName:       pod.Spec.NodeName,
			RestartPolicy:  string(pod.Spec.RestartPolicy),
			ServiceAccount: pod.Spec.ServiceAccountName,
			Containers:     make([]ContainerSpecRecord, 0, len(pod.Spec.Containers)),
		},
		Conditions: make([]ConditionRecord, 0, len(pod.Status.Conditions)),
	}

	if pod.Status.StartTime != nil {
		started := pod.Status.StartTime.String()
		detail.Status.StartTime = &started
	}

	for _, container := range pod.Spec.Containers {
		detail.Spec.Containers = append(detail.Spec.Containers, containerSpecRecord(&container))
	}

	for _, cs := range pod.Status.ContainerStatuses {
		detail.ContainerStatuses = append(detail.ContainerStatuses, containerStateRecord(&cs))
	}

	for _, condition := range pod.Status.Conditions {
		detail.Conditions = append(detail.Conditions, ConditionRecord{
			Type:               string(condition.Type),
			Status:             string(condition.Status),
			Reason:             condition.Reason,
			Message:            condition.Message,
			LastTransitionTime: condition.LastTransitionTime.String(),
		})
	}
	return detail
}

func containerSpecRecord(container *corev1.Container) ContainerSpecRecord {
	record := ContainerSpecRecord{
		Name:  container.Name,
		Image: container.Image,
		Ports: make([]ContainerPortRecord, 0, len(container.Ports)),
		Env:   make([]EnvVarRecord, 0, len(container.Env)),
	}

	for _, port := range container.Ports {
		record.Ports = append(record.Ports, ContainerPortRecord{
			ContainerPort: port.ContainerPort,
			Protocol:      string(port.Protocol),
		})
	}

	// Variables sourced from secrets or config maps carry no direct value
	// and are left out of the record.
	for _, env := range container.Env {
		if env.Value != "" {
			record.Env = append(record.Env, EnvVarRecord{Name: env.Name, Value: env.Value})
		}
	}

	if len(container.Resources.Requests) > 0 {
		record.Resources.Requests = quantityMap(container.Resources.Requests)
	}
	if len(container.Resources.Limits) > 0 {
		record.Resources.Limits = quantityMap(container.Resources.Limits)
	}
	return record
}

func quantityMap(list corev1.ResourceList) map[string]string {
	out := make(map[string]string, len(list))
	for name, quantity := range list {
		out[string(name)] = quantity.String()
	}
	return out
}

// containerStateRecord maps a container status to a record with exactly one
// state variant populated.
func containerStateRecord(cs *corev1.ContainerStatus) ContainerStateRecord {
	record := ContainerStateRecord{
		Name:         cs.Name,
		Ready:        cs.Ready,
		RestartCount: cs.RestartCount,
		Image:        cs.Image,
		ImageID:      cs.ImageID,
		ContainerID:  cs.ContainerID,
	}

	switch {
	case cs.State.Running != nil:
		record.State = &ContainerState{Running: &RunningState{
			StartedAt: cs.State.Running.StartedAt.String(),
		}}
	case cs.State.Terminated != nil:
		record.State = &ContainerState{Terminated: &TerminatedState{
			ExitCode: cs.State.Terminated.ExitCode,
			Reason:   cs.State.Terminated.Reason,
			Message:  cs.State.Terminated.Message,
		}}
	case cs.State.Waiting != nil:
		record.State = &ContainerState{Waiting: &WaitingState{
			Reason:  cs.State.Waiting.Reason,
			Message: cs.State.Waiting.Message,
		}}
	}
	return record
}

// GetLogs retrieves logs from one container of a pod. The pod is read first
// to resolve container names: a multi-container pod with no container named
// in the query is an error listing the candidates, a single-container pod
// defaults to its only container.
func (i *inspector) GetLogs(ctx context.Context, q LogQuery) (*LogResult, error) {
	i.logOperation("get-logs", q.Namespace, q.Pod)

	pod, err := i.clientset.CoreV1().Pods(q.Namespace).Get(ctx, q.Pod, metav1.GetOptions{})
	if err != nil {
		return nil, &RemoteError{
			Message: fmt.Sprintf("Pod %q not found in namespace %q", q.Pod, q.Namespace),
			Code:    statusCode(err),
		}
	}

	containers := make([]string, 0, len(pod.Spec.Containers))
	for _, container := range pod.Spec.Containers {
		containers = append(containers, container.Name)
	}

	container := q.Container
	if container == "" {
		if len(containers) > 1 {
			return nil, &AmbiguousContainerError{Pod: q.Pod, Containers: containers}
		}
		if len(containers) == 1 {
			container = containers[0]
		}
	}

	opts := &corev1.PodLogOptions{
		Container:  container,
		Previous:   q.Previous,
		Timestamps: q.Timestamps,
	}
	// Pass-through only: never default tail or window sizes on the
	// caller's behalf.
	if q.TailLines != nil {
		opts.TailLines = q.TailLines
	}
	if q.SinceSeconds != nil {
		opts.SinceSeconds = q.SinceSeconds
	}

	logs, err := i.fetchLogs(ctx, q.Namespace, q.Pod, opts)
	if err != nil {
		return nil, logError(err, q, container, containers)
	}

	result := &LogResult{
		Pod:        q.Pod,
		Namespace:  q.Namespace,
		Container:  container,
		Logs:       logs,
		Previous:   q.Previous,
		Timestamps: q.Timestamps,
	}
	// Echo tail and window options only when they carry a value; an
	// explicit zero reads the same as absent.
	if q.TailLines != nil && *q.TailLines > 0 {
		result.TailLines = q.TailLines
	}
	if q.SinceSeconds != nil && *q.SinceSeconds > 0 {
		result.SinceSeconds = q.SinceSeconds
	}
	if logs != "" {
		result.LineCount = len(strings.Split(logs, "\n"))
	}
	if strings.TrimSpace(logs) == "" {
		result.Message = noLogsMessage
	}
	return result, nil
}

// logError remaps known log-read failures to actionable messages.
func logError(err error, q LogQuery, container string, containers []string) *RemoteError {
	code := statusCode(err)
	body := strings.ToLower(err.Error())

	switch {
	case code == http.StatusBadRequest && strings.Contains(body, "previous terminated container"):
		return &RemoteError{
			Message: "No previous terminated container found for this pod",
			Code:    code,
		}
	case code == http.StatusBadRequest && strings.Contains(body, "container"):
		return &RemoteError{
			Message: fmt.Sprintf("Container %q not found in pod. Available containers: [%s]",
				container, strings.Join(containers, ", ")),
			Code: code,
		}
	case code == http.StatusNotFound:
		return &RemoteError{
			Message: fmt.Sprintf("Pod %q not found in namespace %q", q.Pod, q.Namespace),
			Code:    code,
		}
	}
	return &RemoteError{Message: fmt.Sprintf("Failed to get logs: %v", err), Code: code}
}
