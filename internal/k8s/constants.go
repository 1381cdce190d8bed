package k8s

const (
	// Service account paths - default Kubernetes in-cluster locations
	DefaultServiceAccountPath = "/var/run/secrets/kubernetes.io/serviceaccount"
	DefaultTokenPath          = DefaultServiceAccountPath + "/token"
	DefaultNamespacePath      = DefaultServiceAccountPath + "/namespace"

	// Default performance settings
	DefaultQPSLimit   = 20.0
	DefaultBurstLimit = 30
	DefaultTimeout    = 30 // seconds

	// NamespaceAll is the caller-facing sentinel for cluster-wide list
	// operations. Matched case-insensitively.
	NamespaceAll = "all"

	// nodeRoleLabelPrefix marks the label keys node roles are derived from.
	nodeRoleLabelPrefix = "node-role.kubernetes.io/"

	// defaultNodeRole is assigned when a node carries no role label.
	defaultNodeRole = "worker"

	// unknownValue is the placeholder for absent node info and capacity
	// fields. Kept as a literal string for output compatibility with
	// existing consumers.
	unknownValue = "Unknown"
)
