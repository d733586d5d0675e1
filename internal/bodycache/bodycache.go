// Package bodycache provides the process-wide store that deduplicates
// sampled wildcard bodies across machine instances.
package bodycache

import (
	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/siftlang/sift/internal/prog"
)

// Cache deduplicates wildcard bodies by their canonical text form.
// Entries are never evicted and never mutated, the cache only grows for
// the lifetime of the owning process. Interning an identical body saves
// memory only, never behavior.
//
// A Cache is safe for concurrent use: inserts are atomic insert-if-absent,
// so parallel search workers can share a single instance.
type Cache struct {
	bodies cmap.ConcurrentMap[string, prog.Program]
}

func New() *Cache {
	return &Cache{
		bodies: cmap.New[prog.Program](),
	}
}

// Intern returns the canonical stored body equal to body, inserting body
// if no equal entry exists yet.
func (c *Cache) Intern(body prog.Program) prog.Program {
	key := body.String()
	c.bodies.SetIfAbsent(key, body)

	canonical, _ := c.bodies.Get(key)
	return canonical
}

// Len returns the number of distinct bodies stored.
func (c *Cache) Len() int {
	return c.bodies.Count()
}
