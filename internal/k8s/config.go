package k8s

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// SourceKind identifies which credential source the resolver settled on.
type SourceKind string

const (
	SourceExplicitPath SourceKind = "explicit-path"
	SourceEnvVariable  SourceKind = "env-variable"
	SourceInCluster    SourceKind = "in-cluster"
	SourceDefaultFile  SourceKind = "default-file"
)

// Source records the credential source a client was built from. It is
// attached to every successful query result as the config_info field.
type Source struct {
	Kind SourceKind
	Path string
}

// Describe returns the human-readable source description exposed to the
// agent via config_info.
func (s Source) Describe() string {
	switch s.Kind {
	case SourceExplicitPath:
		return fmt.Sprintf("Loaded kubeconfig from: %s", s.Path)
	case SourceEnvVariable:
		return fmt.Sprintf("Loaded kubeconfig from KUBECONFIG env var: %s", s.Path)
	case SourceInCluster:
		return "Loaded in-cluster config (running inside Kubernetes)"
	case SourceDefaultFile:
		return "Loaded kubeconfig from default location (~/.kube/config)"
	default:
		return "Unknown config source"
	}
}

// ResolverConfig is the resolver's complete view of the environment. It is
// built once at process entry (see cmd/serve.go); the resolver itself never
// reads environment variables.
type ResolverConfig struct {
	// ExplicitPath is an operator-supplied kubeconfig path. Wins when the
	// file exists.
	ExplicitPath string

	// EnvPath is the value of KUBECONFIG captured at startup.
	EnvPath string

	// DefaultPath is the well-known fallback location, normally
	// ~/.kube/config.
	DefaultPath string
}

// DefaultResolverConfig snapshots the process environment into a
// ResolverConfig. This is the only place the resolver's inputs touch
// ambient state.
func DefaultResolverConfig(explicitPath string) ResolverConfig {
	home, _ := os.UserHomeDir()
	return ResolverConfig{
		ExplicitPath: explicitPath,
		EnvPath:      os.Getenv("KUBECONFIG"),
		DefaultPath:  filepath.Join(home, ".kube", "config"),
	}
}

// Resolver materializes a rest.Config from the first usable credential
// source. The loader functions are fields so tests can pin each leg of the
// chain without touching the filesystem or a real cluster.
type Resolver struct {
	loadFile      func(path string) (*rest.Config, error)
	loadInCluster func() (*rest.Config, error)
	fileExists    func(path string) bool
}

// NewResolver returns a Resolver backed by clientcmd and rest.InClusterConfig.
func NewResolver() *Resolver {
	return &Resolver{
		loadFile: func(path string) (*rest.Config, error) {
			return clientcmd.BuildConfigFromFlags("", path)
		},
		loadInCluster: rest.InClusterConfig,
		fileExists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// Resolve walks the fallback chain: explicit path (only when the file
// exists), then KUBECONFIG, then in-cluster service account credentials,
// then the default kubeconfig location. A failure of the selected primary
// leg drops through to the default file; when that also fails, the
// returned *ConfigError carries both failure messages so callers can
// diagnose both paths.
func (r *Resolver) Resolve(cfg ResolverConfig) (*rest.Config, Source, error) {
	var primaryErr error

	switch {
	case cfg.ExplicitPath != "" && r.fileExists(cfg.ExplicitPath):
		restCfg, err := r.loadFile(cfg.ExplicitPath)
		if err == nil {
			return restCfg, Source{Kind: SourceExplicitPath, Path: cfg.ExplicitPath}, nil
		}
		primaryErr = fmt.Errorf("kubeconfig %s: %w", cfg.ExplicitPath, err)

	case cfg.EnvPath != "":
		restCfg, err := r.loadFile(cfg.EnvPath)
		if err == nil {
			return restCfg, Source{Kind: SourceEnvVariable, Path: cfg.EnvPath}, nil
		}
		primaryErr = fmt.Errorf("KUBECONFIG %s: %w", cfg.EnvPath, err)

	default:
		restCfg, err := r.loadInCluster()
		if err == nil {
			return restCfg, Source{Kind: SourceInCluster}, nil
		}
		primaryErr = fmt.Errorf("in-cluster config: %w", err)
	}

	restCfg, fallbackErr := r.loadFile(cfg.DefaultPath)
	if fallbackErr == nil {
		return restCfg, Source{Kind: SourceDefaultFile, Path: cfg.DefaultPath}, nil
	}

	return nil, Source{}, &ConfigError{
		Primary:  primaryErr,
		Fallback: fmt.Errorf("default kubeconfig %s: %w", cfg.DefaultPath, fallbackErr),
	}
}
