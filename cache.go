package rigging

import (
	"path/filepath"

	"github.com/charmbracelet/log"
)

// LoadFunc loads a definition from an absolute path. LoadDefinition is the
// production implementation; tests inject their own.
type LoadFunc func(path string) (*Definition, error)

// Cache resolves reference names to loaded definitions and memoizes them by
// absolute path. It is scoped to one open project: create it when the project
// opens, Clear it on project switch. Single-threaded, like the rest of the
// package.
type Cache struct {
	index  *Index
	load   LoadFunc
	defs   map[string]*Definition
	warned map[string]bool // names/paths already reported as broken
}

// NewCache creates a cache over the given index. A nil loader means
// LoadDefinition.
func NewCache(index *Index, loader LoadFunc) *Cache {
	if loader == nil {
		loader = LoadDefinition
	}
	return &Cache{
		index:  index,
		load:   loader,
		defs:   make(map[string]*Definition),
		warned: make(map[string]bool),
	}
}

// Get returns the definition for a reference name. A failed resolution or
// load is not an error: it reports ok == false and the caller renders a
// placeholder. Each broken name is logged once until the cache is cleared.
func (c *Cache) Get(name string) (*Definition, bool) {
	if name == "" {
		return nil, false
	}

	path, ok := c.index.Resolve(name)
	if !ok {
		// The file may have been created after the last scan.
		c.index.Rescan()
		path, ok = c.index.Resolve(name)
	}
	if !ok {
		if !c.warned[name] {
			c.warned[name] = true
			log.Warn("could not resolve entity reference", "name", name)
		}
		return nil, false
	}

	if def, hit := c.defs[path]; hit {
		return def, true
	}

	def, err := c.load(path)
	if err != nil {
		if !c.warned[path] {
			c.warned[path] = true
			log.Warn("failed to load referenced entity", "path", path, "err", err)
		}
		return nil, false
	}
	c.defs[path] = def
	return def, true
}

// Invalidate evicts the entry for path, if present, and reports whether an
// eviction occurred. The path is compared in cleaned form so save events with
// unnormalized separators still match.
func (c *Cache) Invalidate(path string) bool {
	clean := filepath.Clean(path)
	if _, ok := c.defs[clean]; ok {
		delete(c.defs, clean)
		return true
	}
	// Fall back to a cleaned comparison against every key.
	for key := range c.defs {
		if filepath.Clean(key) == clean {
			delete(c.defs, key)
			return true
		}
	}
	return false
}

// Clear drops every cached definition and resets the warn-once state. Used on
// project switch.
func (c *Cache) Clear() {
	c.defs = make(map[string]*Definition)
	c.warned = make(map[string]bool)
}

// Index returns the reference index this cache resolves through.
func (c *Cache) Index() *Index {
	return c.index
}
