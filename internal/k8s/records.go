package k8s

// Record types are fully materialized snapshots of the API response at call
// time. They hold no live object references, and their JSON field names are
// the stable wire contract consumed by the agent.

// PodRecord is one row of a pod list.
type PodRecord struct {
	Name              string                  `json:"name"`
	Namespace         string                  `json:"namespace"`
	Status            string                  `json:"status"`
	PodIP             string                  `json:"pod_ip,omitempty"`
	Node              string                  `json:"node,omitempty"`
	Containers        int                     `json:"containers"`
	Labels            map[string]string       `json:"labels"`
	ContainerStatuses []ContainerStatusRecord `json:"container_statuses,omitempty"`
}

// ContainerStatusRecord is the per-container readiness summary on pod list
// rows.
type ContainerStatusRecord struct {
	Name         string `json:"name"`
	Ready        bool   `json:"ready"`
	RestartCount int32  `json:"restart_count"`
}

// NodeRecord is one row of a node list.
type NodeRecord struct {
	Name         string            `json:"name"`
	Status       string            `json:"status"`
	Roles        []string          `json:"roles"`
	Version      string            `json:"version"`
	OS           string            `json:"os"`
	Architecture string            `json:"architecture"`
	Capacity     ResourceSummary   `json:"capacity"`
	Allocatable  ResourceSummary   `json:"allocatable"`
	Conditions   map[string]string `json:"conditions"`
}

// ResourceSummary carries the cpu/memory/pods quantities of a node's
// capacity or allocatable block, stringified with "Unknown" placeholders
// for absent values.
type ResourceSummary struct {
	CPU    string `json:"cpu"`
	Memory string `json:"memory"`
	Pods   string `json:"pods"`
}

// NamespaceRecord is one row of a namespace list.
type NamespaceRecord struct {
	Name    string            `json:"name"`
	Status  string            `json:"status"`
	Created string            `json:"created"`
	Labels  map[string]string `json:"labels"`
}

// ServiceRecord is one row of a service list.
type ServiceRecord struct {
	Name           string              `json:"name"`
	Namespace      string              `json:"namespace"`
	Type           string              `json:"type"`
	ClusterIP      string              `json:"cluster_ip"`
	ExternalIP     []string            `json:"external_ip"`
	Ports          []ServicePortRecord `json:"ports"`
	LoadBalancerIP []string            `json:"load_balancer_ip,omitempty"`
}

// ServicePortRecord is one exposed port of a service.
type ServicePortRecord struct {
	Name       string `json:"name,omitempty"`
	Protocol   string `json:"protocol"`
	Port       int32  `json:"port"`
	TargetPort string `json:"target_port,omitempty"`
	NodePort   int32  `json:"node_port,omitempty"`
}

// DeploymentRecord is one row of a deployment list.
type DeploymentRecord struct {
	Name              string            `json:"name"`
	Namespace         string            `json:"namespace"`
	Replicas          int32             `json:"replicas"`
	ReadyReplicas     int32             `json:"ready_replicas"`
	AvailableReplicas int32             `json:"available_replicas"`
	UpdatedReplicas   int32             `json:"updated_replicas"`
	Labels            map[string]string `json:"labels"`
	Conditions        []ConditionRecord `json:"conditions"`
}

// ConditionRecord is a normalized resource condition.
type ConditionRecord struct {
	Type               string `json:"type"`
	Status             string `json:"status"`
	Reason             string `json:"reason,omitempty"`
	Message            string `json:"message,omitempty"`
	LastTransitionTime string `json:"last_transition_time,omitempty"`
}

// PodDetail is the nested record produced by GetPodDetail.
type PodDetail struct {
	Name              string                 `json:"name"`
	Namespace         string                 `json:"namespace"`
	UID               string                 `json:"uid"`
	Created           string                 `json:"created"`
	Labels            map[string]string      `json:"labels"`
	Annotations       map[string]string      `json:"annotations"`
	Status            PodStatusRecord        `json:"status"`
	Spec              PodSpecRecord          `json:"spec"`
	ContainerStatuses []ContainerStateRecord `json:"container_statuses,omitempty"`
	Conditions        []ConditionRecord      `json:"conditions"`
}

// PodStatusRecord is the status block of a PodDetail.
type PodStatusRecord struct {
	Phase     string  `json:"phase"`
	Message   string  `json:"message,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	PodIP     string  `json:"pod_ip,omitempty"`
	HostIP    string  `json:"host_ip,omitempty"`
	StartTime *string `json:"start_time"`
}

// PodSpecRecord is the spec block of a PodDetail.
type PodSpecRecord struct {
	NodeName       string                `json:"node_name,omitempty"`
	RestartPolicy  string                `json:"restart_policy"`
	ServiceAccount string                `json:"service_account,omitempty"`
	Containers     []ContainerSpecRecord `json:"containers"`
}

// ContainerSpecRecord describes one declared container of a pod. Env holds
// only variables with a direct literal value; variables sourced from
// secrets or config maps are omitted on purpose so credentials never reach
// the agent.
type ContainerSpecRecord struct {
	Name      string                `json:"name"`
	Image     string                `json:"image"`
	Ports     []ContainerPortRecord `json:"ports"`
	Env       []EnvVarRecord        `json:"env"`
	Resources ResourceRequirements  `json:"resources"`
}

// ContainerPortRecord is one declared container port.
type ContainerPortRecord struct {
	ContainerPort int32  `json:"container_port"`
	Protocol      string `json:"protocol"`
}

// EnvVarRecord is an environment variable with a direct literal value.
type EnvVarRecord struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ResourceRequirements holds stringified resource requests and limits.
type ResourceRequirements struct {
	Requests map[string]string `json:"requests,omitempty"`
	Limits   map[string]string `json:"limits,omitempty"`
}

// ContainerStateRecord is the runtime status of one container, with exactly
// one of the three state variants populated.
type ContainerStateRecord struct {
	Name         string          `json:"name"`
	Ready        bool            `json:"ready"`
	RestartCount int32           `json:"restart_count"`
	Image        string          `json:"image"`
	ImageID      string          `json:"image_id,omitempty"`
	ContainerID  string          `json:"container_id,omitempty"`
	State        *ContainerState `json:"state,omitempty"`
}

// ContainerState is a tagged union: exactly one field is non-nil.
type ContainerState struct {
	Running    *RunningState    `json:"running,omitempty"`
	Terminated *TerminatedState `json:"terminated,omitempty"`
	Waiting    *WaitingState    `json:"waiting,omitempty"`
}

// RunningState reports when the container started.
type RunningState struct {
	StartedAt string `json:"started_at"`
}

// TerminatedState reports how the container exited.
type TerminatedState struct {
	ExitCode int32  `json:"exit_code"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message,omitempty"`
}

// WaitingState reports why the container has not started.
type WaitingState struct {
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// LogQuery names the pod and tuning knobs for a log read. TailLines and
// SinceSeconds are pass-through: nil means the server default, never a
// synthesized value.
type LogQuery struct {
	Pod          string
	Namespace    string
	Container    string
	Previous     bool
	Timestamps   bool
	TailLines    *int64
	SinceSeconds *int64
}

// LogResult is the payload of a successful log read. Logs is the raw text;
// LineCount is informational. Message explains an empty result.
type LogResult struct {
	Pod        string `json:"pod"`
	Namespace  string `json:"namespace"`
	Container  string `json:"container"`
	LineCount  int    `json:"log_lines_count"`
	Logs       string `json:"logs"`
	Message    string `json:"message,omitempty"`
	Previous   bool   `json:"from_previous_container,omitempty"`
	Timestamps bool   `json:"timestamps_included,omitempty"`

	TailLines    *int64 `json:"tail_lines_requested,omitempty"`
	SinceSeconds *int64 `json:"since_seconds,omitempty"`
}
