package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/client-go/kubernetes/fake"
)

func newTestInspector(objects ...runtime.Object) Inspector {
	clientset := fake.NewSimpleClientset(objects...)
	return NewInspectorForClientset(clientset, Source{Kind: SourceDefaultFile, Path: "/home/user/.kube/config"}, nil)
}

func testPod(name, namespace string, phase corev1.PodPhase, labels map[string]string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    labels,
		},
		Spec: corev1.PodSpec{
			NodeName: "node-1",
			Containers: []corev1.Container{
				{Name: "app", Image: "registry.example.com/app:v1"},
			},
		},
		Status: corev1.PodStatus{
			Phase: phase,
			PodIP: "10.0.0.5",
			ContainerStatuses: []corev1.ContainerStatus{
				{Name: "app", Ready: true, RestartCount: 2},
			},
		},
	}
}

func TestListPods(t *testing.T) {
	insp := newTestInspector(
		testPod("web-1", "default", corev1.PodRunning, map[string]string{"app": "web"}),
		testPod("web-2", "default", corev1.PodPending, map[string]string{"app": "web"}),
		testPod("db-1", "data", corev1.PodRunning, nil),
	)

	t.Run("scoped to a namespace", func(t *testing.T) {
		pods, err := insp.ListPods(context.Background(), "default", "")
		require.NoError(t, err)
		require.Len(t, pods, 2)
		assert.Equal(t, "web-1", pods[0].Name)
		assert.Equal(t, "Running", pods[0].Status)
		assert.Equal(t, "10.0.0.5", pods[0].PodIP)
		assert.Equal(t, "node-1", pods[0].Node)
		assert.Equal(t, 1, pods[0].Containers)
		require.Len(t, pods[0].ContainerStatuses, 1)
		assert.True(t, pods[0].ContainerStatuses[0].Ready)
		assert.Equal(t, int32(2), pods[0].ContainerStatuses[0].RestartCount)
	})

	t.Run("all namespaces is case-insensitive", func(t *testing.T) {
		for _, ns := range []string{"all", "All", "ALL"} {
			pods, err := insp.ListPods(context.Background(), ns, "")
			require.NoError(t, err)
			assert.Len(t, pods, 3, "namespace %q", ns)
		}
	})

	t.Run("label selector filters", func(t *testing.T) {
		pods, err := insp.ListPods(context.Background(), "all", "app=web")
		require.NoError(t, err)
		assert.Len(t, pods, 2)
	})

	t.Run("pods without labels report an empty map", func(t *testing.T) {
		pods, err := insp.ListPods(context.Background(), "data", "")
		require.NoError(t, err)
		require.Len(t, pods, 1)
		assert.NotNil(t, pods[0].Labels)
		assert.Empty(t, pods[0].Labels)
	})

	t.Run("empty namespace yields no pods", func(t *testing.T) {
		pods, err := insp.ListPods(context.Background(), "missing", "")
		require.NoError(t, err)
		assert.Empty(t, pods)
	})
}

func TestListNodes(t *testing.T) {
	controlPlane := &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{
			Name: "cp-1",
			Labels: map[string]string{
				"node-role.kubernetes.io/control-plane": "",
				"node-role.kubernetes.io/etcd":          "",
			},
		},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: corev1.ConditionTrue},
			},
			NodeInfo: corev1.NodeSystemInfo{
				KubeletVersion:  "v1.31.2",
				OperatingSystem: "linux",
				Architecture:    "arm64",
			},
			Capacity: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse("4"),
				corev1.ResourceMemory: resource.MustParse("16Gi"),
				corev1.ResourcePods:   resource.MustParse("110"),
			},
			Allocatable: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse("3900m"),
				corev1.ResourceMemory: resource.MustParse("15Gi"),
				corev1.ResourcePods:   resource.MustParse("110"),
			},
		},
	}
	worker := &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "w-1"},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: corev1.ConditionFalse},
			},
		},
	}
	insp := newTestInspector(controlPlane, worker)

	nodes, err := insp.ListNodes(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	byName := map[string]NodeRecord{}
	for _, n := range nodes {
		byName[n.Name] = n
	}

	cp := byName["cp-1"]
	assert.Equal(t, "Ready", cp.Status)
	assert.Equal(t, []string{"control-plane", "etcd"}, cp.Roles)
	assert.Equal(t, "v1.31.2", cp.Version)
	assert.Equal(t, "linux", cp.OS)
	assert.Equal(t, "arm64", cp.Architecture)
	assert.Equal(t, "4", cp.Capacity.CPU)
	assert.Equal(t, "16Gi", cp.Capacity.Memory)
	assert.Equal(t, "3900m", cp.Allocatable.CPU)

	w := byName["w-1"]
	assert.Equal(t, "NotReady", w.Status)
	assert.Equal(t, []string{"worker"}, w.Roles)
	assert.Equal(t, "Unknown", w.Version)
	assert.Equal(t, "Unknown", w.OS)
	assert.Equal(t, "Unknown", w.Capacity.CPU)
	assert.Equal(t, "Unknown", w.Allocatable.Memory)
}

func TestListNamespaces(t *testing.T) {
	insp := newTestInspector(
		&corev1.Namespace{
			ObjectMeta: metav1.ObjectMeta{
				Name:   "default",
				Labels: map[string]string{"kubernetes.io/metadata.name": "default"},
			},
			Status: corev1.NamespaceStatus{Phase: corev1.NamespaceActive},
		},
		&corev1.Namespace{
			ObjectMeta: metav1.ObjectMeta{Name: "doomed"},
			Status:     corev1.NamespaceStatus{Phase: corev1.NamespaceTerminating},
		},
	)

	namespaces, err := insp.ListNamespaces(context.Background())
	require.NoError(t, err)
	require.Len(t, namespaces, 2)

	byName := map[string]NamespaceRecord{}
	for _, ns := range namespaces {
		byName[ns.Name] = ns
	}
	assert.Equal(t, "Active", byName["default"].Status)
	assert.Equal(t, map[string]string{"kubernetes.io/metadata.name": "default"}, byName["default"].Labels)
	assert.Equal(t, "Terminating", byName["doomed"].Status)
	assert.NotNil(t, byName["doomed"].Labels)
}

func TestListServices(t *testing.T) {
	insp := newTestInspector(
		&corev1.Service{
			ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"},
			Spec: corev1.ServiceSpec{
				Type:        corev1.ServiceTypeLoadBalancer,
				ClusterIP:   "10.96.0.10",
				ExternalIPs: []string{"203.0.113.7"},
				Ports: []corev1.ServicePort{
					{
						Name:       "http",
						Protocol:   corev1.ProtocolTCP,
						Port:       80,
						TargetPort: intstr.FromInt32(8080),
						NodePort:   30080,
					},
				},
			},
			Status: corev1.ServiceStatus{
				LoadBalancer: corev1.LoadBalancerStatus{
					Ingress: []corev1.LoadBalancerIngress{
						{IP: "198.51.100.4"},
						{Hostname: "lb.example.com"},
					},
				},
			},
		},
		&corev1.Service{
			ObjectMeta: metav1.ObjectMeta{Name: "headless", Namespace: "data"},
			Spec: corev1.ServiceSpec{
				Type:      corev1.ServiceTypeClusterIP,
				ClusterIP: corev1.ClusterIPNone,
				Ports: []corev1.ServicePort{
					{Protocol: corev1.ProtocolTCP, Port: 5432},
				},
			},
		},
	)

	t.Run("load balancer details", func(t *testing.T) {
		services, err := insp.ListServices(context.Background(), "default")
		require.NoError(t, err)
		require.Len(t, services, 1)

		svc := services[0]
		assert.Equal(t, "LoadBalancer", svc.Type)
		assert.Equal(t, "10.96.0.10", svc.ClusterIP)
		assert.Equal(t, []string{"203.0.113.7"}, svc.ExternalIP)
		assert.Equal(t, []string{"198.51.100.4"}, svc.LoadBalancerIP)
		require.Len(t, svc.Ports, 1)
		assert.Equal(t, "http", svc.Ports[0].Name)
		assert.Equal(t, int32(80), svc.Ports[0].Port)
		assert.Equal(t, "8080", svc.Ports[0].TargetPort)
		assert.Equal(t, int32(30080), svc.Ports[0].NodePort)
	})

	t.Run("headless service omits optional fields", func(t *testing.T) {
		services, err := insp.ListServices(context.Background(), "all")
		require.NoError(t, err)
		require.Len(t, services, 2)

		var headless ServiceRecord
		for _, svc := range services {
			if svc.Name == "headless" {
				headless = svc
			}
		}
		assert.Equal(t, "ClusterIP", headless.Type)
		assert.NotNil(t, headless.ExternalIP)
		assert.Empty(t, headless.ExternalIP)
		assert.Empty(t, headless.LoadBalancerIP)
		require.Len(t, headless.Ports, 1)
		assert.Empty(t, headless.Ports[0].TargetPort)
	})
}

func TestListDeployments(t *testing.T) {
	replicas := int32(3)
	insp := newTestInspector(
		&appsv1.Deployment{
			ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"},
			Spec:       appsv1.DeploymentSpec{Replicas: &replicas},
			Status: appsv1.DeploymentStatus{
				ReadyReplicas:     2,
				AvailableReplicas: 2,
				UpdatedReplicas:   3,
			},
		},
		&appsv1.Deployment{
			ObjectMeta: metav1.ObjectMeta{Name: "batch", Namespace: "jobs"},
		},
	)

	t.Run("scoped", func(t *testing.T) {
		deployments, err := insp.ListDeployments(context.Background(), "default")
		require.NoError(t, err)
		require.Len(t, deployments, 1)
		assert.Equal(t, int32(3), deployments[0].Replicas)
		assert.Equal(t, int32(2), deployments[0].ReadyReplicas)
		assert.Equal(t, int32(2), deployments[0].AvailableReplicas)
		assert.Equal(t, int32(3), deployments[0].UpdatedReplicas)
	})

	t.Run("nil replica spec reads as zero", func(t *testing.T) {
		deployments, err := insp.ListDeployments(context.Background(), "jobs")
		require.NoError(t, err)
		require.Len(t, deployments, 1)
		assert.Equal(t, int32(0), deployments[0].Replicas)
	})
}
