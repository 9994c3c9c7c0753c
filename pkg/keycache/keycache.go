// Package keycache holds setup key pairs keyed by guest circuit. A cache is
// an explicitly passed handle, never a package-level singleton; entries are
// immutable once inserted and safe to share across concurrent provers.
package keycache

import (
	"sync"

	"github.com/yourorg/chesszk/pkg/backend"
)

type entry struct {
	once sync.Once
	pk   backend.ProvingKey
	vk   backend.VerifyingKey
	err  error
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// GetOrCreate returns the key pair for the named guest circuit, running the
// backend's setup at most once per name. Setup is deterministic per guest
// binary, so callers must not reuse a name across different circuit builds.
func (c *Cache) GetOrCreate(name string, b backend.Backend) (backend.ProvingKey, backend.VerifyingKey, error) {
	c.mu.Lock()
	e, ok := c.entries[name]
	if !ok {
		e = &entry{}
		c.entries[name] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.pk, e.vk, e.err = b.Setup()
	})
	return e.pk, e.vk, e.err
}
