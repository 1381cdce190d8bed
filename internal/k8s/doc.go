// Package k8s implements the read-only cluster inspection layer.
//
// It has two halves: a config resolver that walks the kubeconfig fallback
// chain (explicit path, KUBECONFIG, in-cluster service account, default
// file) and reports which source won, and an Inspector that issues one
// typed list/read call per operation and normalizes the response into
// flat, JSON-serializable records for the tool layer.
//
// All operations are read-only. Failures surface as *ConfigError or
// *RemoteError so the tool layer can build well-formed error records
// without inspecting client-go internals.
package k8s
