package k8s

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
	"k8s.io/client-go/rest"
)

// ClientCache reuses one Inspector per resolved credential source for the
// lifetime of the process. Resolution-order semantics are unchanged: the
// cache only deduplicates client construction, it never short-circuits the
// resolver. Concurrent first calls for the same source collapse into a
// single construction via singleflight.
type ClientCache struct {
	cfg InspectorConfig

	mu         sync.RWMutex
	inspectors map[string]Inspector
	group      singleflight.Group
}

// NewClientCache creates an empty cache; every Inspector it builds shares
// the given config.
func NewClientCache(cfg InspectorConfig) *ClientCache {
	return &ClientCache{
		cfg:        cfg,
		inspectors: make(map[string]Inspector),
	}
}

// cacheKey identifies a client by its source and server URL.
func cacheKey(restCfg *rest.Config, source Source) string {
	return fmt.Sprintf("%s|%s|%s", source.Kind, source.Path, restCfg.Host)
}

// Get returns the cached Inspector for the source, building it on first
// use.
func (c *ClientCache) Get(restCfg *rest.Config, source Source) (Inspector, error) {
	key := cacheKey(restCfg, source)

	c.mu.RLock()
	if inspector, ok := c.inspectors[key]; ok {
		c.mu.RUnlock()
		return inspector, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		if inspector, ok := c.inspectors[key]; ok {
			c.mu.RUnlock()
			return inspector, nil
		}
		c.mu.RUnlock()

		inspector, err := NewInspector(restCfg, source, c.cfg)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.inspectors[key] = inspector
		c.mu.Unlock()
		return inspector, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Inspector), nil
}

// Len reports the number of cached clients, for health reporting.
func (c *ClientCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.inspectors)
}
