package k8s

import (
	"context"
	"io"
	"log/slog"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/jimangel/mcp-kube-agent/internal/logging"
)

// Inspector is the read-only query surface over one cluster. Every method
// issues exactly one list/read call (GetLogs issues a detail read first to
// resolve container names) and returns fully materialized records.
type Inspector interface {
	ListPods(ctx context.Context, namespace, labelSelector string) ([]PodRecord, error)
	ListNodes(ctx context.Context) ([]NodeRecord, error)
	ListNamespaces(ctx context.Context) ([]NamespaceRecord, error)
	ListServices(ctx context.Context, namespace string) ([]ServiceRecord, error)
	ListDeployments(ctx context.Context, namespace string) ([]DeploymentRecord, error)
	GetPodDetail(ctx context.Context, namespace, name string) (*PodDetail, error)
	GetLogs(ctx context.Context, q LogQuery) (*LogResult, error)

	// Source reports which credential source the underlying client was
	// built from.
	Source() Source
}

// InspectorConfig tunes the underlying client.
type InspectorConfig struct {
	QPSLimit   float32
	BurstLimit int
	Timeout    time.Duration
	Logger     *slog.Logger
}

// inspector implements Inspector on a typed clientset.
type inspector struct {
	clientset kubernetes.Interface
	source    Source
	logger    *slog.Logger

	// fetchLogs is replaceable in tests; the fake clientset always
	// returns a fixed body, so the empty-log path needs a seam.
	fetchLogs func(ctx context.Context, namespace, pod string, opts *corev1.PodLogOptions) (string, error)
}

// NewInspector builds an Inspector from a resolved rest.Config.
func NewInspector(restCfg *rest.Config, source Source, cfg InspectorConfig) (Inspector, error) {
	if cfg.QPSLimit == 0 {
		cfg.QPSLimit = DefaultQPSLimit
	}
	if cfg.BurstLimit == 0 {
		cfg.BurstLimit = DefaultBurstLimit
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout * time.Second
	}
	restCfg.QPS = cfg.QPSLimit
	restCfg.Burst = cfg.BurstLimit
	restCfg.Timeout = cfg.Timeout

	clientset, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, remoteError(err)
	}
	return NewInspectorForClientset(clientset, source, cfg.Logger), nil
}

// NewInspectorForClientset wraps an existing clientset. Used by tests with
// a fake clientset and by the client cache.
func NewInspectorForClientset(clientset kubernetes.Interface, source Source, logger *slog.Logger) Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	i := &inspector{
		clientset: clientset,
		source:    source,
		logger:    logger,
	}
	i.fetchLogs = i.streamLogs
	return i
}

func (i *inspector) Source() Source {
	return i.source
}

// streamLogs reads the full log body for one container.
func (i *inspector) streamLogs(ctx context.Context, namespace, pod string, opts *corev1.PodLogOptions) (string, error) {
	stream, err := i.clientset.CoreV1().Pods(namespace).GetLogs(pod, opts).Stream(ctx)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	body, err := io.ReadAll(stream)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// logOperation emits the per-call debug line shared by all query methods.
func (i *inspector) logOperation(operation, namespace, name string) {
	i.logger.Debug("kubernetes query",
		logging.Operation(operation),
		logging.Namespace(namespace),
		logging.ResourceName(name),
	)
}
