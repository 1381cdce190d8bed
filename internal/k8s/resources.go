package k8s

import (
	"context"
	"sort"
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// targetNamespace maps the caller-facing namespace argument to the
// client-go scope: "all" (any case) selects the cluster-wide aggregate.
func targetNamespace(namespace string) string {
	if strings.EqualFold(namespace, NamespaceAll) {
		return metav1.NamespaceAll
	}
	return namespace
}

// ListPods lists pods in one namespace, or cluster-wide for "all", with an
// optional label selector.
func (i *inspector) ListPods(ctx context.Context, namespace, labelSelector string) ([]PodRecord, error) {
	i.logOperation("list-pods", namespace, "")

	pods, err := i.clientset.CoreV1().Pods(targetNamespace(namespace)).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return nil, remoteError(err)
	}

	records := make([]PodRecord, 0, len(pods.Items))
	for _, pod := range pods.Items {
		records = append(records, podRecord(&pod))
	}
	return records, nil
}

func podRecord(pod *corev1.Pod) PodRecord {
	record := PodRecord{
		Name:       pod.Name,
		Namespace:  pod.Namespace,
		Status:     string(pod.Status.Phase),
		PodIP:      pod.Status.PodIP,
		Node:       pod.Spec.NodeName,
		Containers: len(pod.Spec.Containers),
		Labels:     labelsOrEmpty(pod.Labels),
	}

	for _, cs := range pod.Status.ContainerStatuses {
		record.ContainerStatuses = append(record.ContainerStatuses, ContainerStatusRecord{
			Name:         cs.Name,
			Ready:        cs.Ready,
			RestartCount: cs.RestartCount,
		})
	}
	return record
}

// ListNodes lists all nodes in the cluster.
func (i *inspector) ListNodes(ctx context.Context) ([]NodeRecord, error) {
	i.logOperation("list-nodes", "", "")

	nodes, err := i.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, remoteError(err)
	}

	records := make([]NodeRecord, 0, len(nodes.Items))
	for _, node := range nodes.Items {
		records = append(records, nodeRecord(&node))
	}
	return records, nil
}

func nodeRecord(node *corev1.Node) NodeRecord {
	conditions := make(map[string]string, len(node.Status.Conditions))
	for _, condition := range node.Status.Conditions {
		conditions[string(condition.Type)] = string(condition.Status)
	}

	status := "NotReady"
	if conditions[string(corev1.NodeReady)] == string(corev1.ConditionTrue) {
		status = "Ready"
	}

	record := NodeRecord{
		Name:         node.Name,
		Status:       status,
		Roles:        nodeRoles(node.Labels),
		Version:      node.Status.NodeInfo.KubeletVersion,
		OS:           node.Status.NodeInfo.OperatingSystem,
		Architecture: node.Status.NodeInfo.Architecture,
		Capacity:     resourceSummary(node.Status.Capacity),
		Allocatable:  resourceSummary(node.Status.Allocatable),
		Conditions:   conditions,
	}
	if record.Version == "" {
		record.Version = unknownValue
	}
	if record.OS == "" {
		record.OS = unknownValue
	}
	if record.Architecture == "" {
		record.Architecture = unknownValue
	}
	return record
}

// nodeRoles derives role names from node-role.kubernetes.io/ label keys,
// sorted for a deterministic output order. Nodes with no role label are
// reported as workers.
func nodeRoles(labels map[string]string) []string {
	var roles []string
	for key := range labels {
		if role, ok := strings.CutPrefix(key, nodeRoleLabelPrefix); ok && role != "" {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		return []string{defaultNodeRole}
	}
	sort.Strings(roles)
	return roles
}

func resourceSummary(list corev1.ResourceList) ResourceSummary {
	return ResourceSummary{
		CPU:    quantityOrUnknown(list, corev1.ResourceCPU),
		Memory: quantityOrUnknown(list, corev1.ResourceMemory),
		Pods:   quantityOrUnknown(list, corev1.ResourcePods),
	}
}

func quantityOrUnknown(list corev1.ResourceList, name corev1.ResourceName) string {
	if quantity, ok := list[name]; ok {
		return quantity.String()
	}
	return unknownValue
}

// ListNamespaces lists all namespaces in the cluster.
func (i *inspector) ListNamespaces(ctx context.Context) ([]NamespaceRecord, error) {
	i.logOperation("list-namespaces", "", "")

	namespaces, err := i.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, remoteError(err)
	}

	records := make([]NamespaceRecord, 0, len(namespaces.Items))
	for _, ns := range namespaces.Items {
		records = append(records, NamespaceRecord{
			Name:    ns.Name,
			Status:  string(ns.Status.Phase),
			Created: ns.CreationTimestamp.String(),
			Labels:  labelsOrEmpty(ns.Labels),
		})
	}
	return records, nil
}

// ListServices lists services in one namespace, or cluster-wide for "all".
func (i *inspector) ListServices(ctx context.Context, namespace string) ([]ServiceRecord, error) {
	i.logOperation("list-services", namespace, "")

	services, err := i.clientset.CoreV1().Services(targetNamespace(namespace)).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, remoteError(err)
	}

	records := make([]ServiceRecord, 0, len(services.Items))
	for _, svc := range services.Items {
		records = append(records, serviceRecord(&svc))
	}
	return records, nil
}

func serviceRecord(svc *corev1.Service) ServiceRecord {
	record := ServiceRecord{
		Name:       svc.Name,
		Namespace:  svc.Namespace,
		Type:       string(svc.Spec.Type),
		ClusterIP:  svc.Spec.ClusterIP,
		ExternalIP: svc.Spec.ExternalIPs,
		Ports:      make([]ServicePortRecord, 0, len(svc.Spec.Ports)),
	}
	if record.ExternalIP == nil {
		record.ExternalIP = []string{}
	}

	for _, port := range svc.Spec.Ports {
		portRecord := ServicePortRecord{
			Name:     port.Name,
			Protocol: string(port.Protocol),
			Port:     port.Port,
			NodePort: port.NodePort,
		}
		if s := port.TargetPort.String(); s != "" && s != "0" {
			portRecord.TargetPort = s
		}
		record.Ports = append(record.Ports, portRecord)
	}

	if svc.Spec.Type == corev1.ServiceTypeLoadBalancer {
		for _, ingress := range svc.Status.LoadBalancer.Ingress {
			if ingress.IP != "" {
				record.LoadBalancerIP = append(record.LoadBalancerIP, ingress.IP)
			}
		}
	}
	return record
}

// ListDeployments lists deployments in one namespace, or cluster-wide for
// "all".
func (i *inspector) ListDeployments(ctx context.Context, namespace string) ([]DeploymentRecord, error) {
	i.logOperation("list-deployments", namespace, "")

	deployments, err := i.clientset.AppsV1().Deployments(targetNamespace(namespace)).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, remoteError(err)
	}

	records := make([]DeploymentRecord, 0, len(deployments.Items))
	for _, dep := range deployments.Items {
		records = append(records, deploymentRecord(&dep))
	}
	return records, nil
}

func deploymentRecord(dep *appsv1.Deployment) DeploymentRecord {
	record := DeploymentRecord{
		Name:              dep.Name,
		Namespace:         dep.Namespace,
		ReadyReplicas:     dep.Status.ReadyReplicas,
		AvailableReplicas: dep.Status.AvailableReplicas,
		UpdatedReplicas:   dep.Status.UpdatedReplicas,
		Labels:            labelsOrEmpty(dep.Labels),
		Conditions:        make([]ConditionRecord, 0, len(dep.Status.Conditions)),
	}
	if dep.Spec.Replicas != nil {
		record.Replicas = *dep.Spec.Replicas
	}

	for _, condition := range dep.Status.Conditions {
		record.Conditions = append(record.Conditions, ConditionRecord{
			Type:    string(condition.Type),
			Status:  string(condition.Status),
			Reason:  condition.Reason,
			Message: condition.Message,
		})
	}
	return record
}

// labelsOrEmpty guarantees the labels field marshals as {} instead of null.
func labelsOrEmpty(labels map[string]string) map[string]string {
	if labels == nil {
		return map[string]string{}
	}
	return labels
}
