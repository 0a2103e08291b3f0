package rigging

// DependenciesOf returns the set of reference names transitively reachable
// from name's definition. visited guards against re-expansion and is mutated
// in place as names are discovered; pass nil to start fresh.
//
// A definition that cannot be loaded contributes nothing; a broken reference
// is the caller's concern, not the resolver's.
func (c *Cache) DependenciesOf(name string, visited map[string]bool) map[string]bool {
	if visited == nil {
		visited = make(map[string]bool)
	}

	deps := make(map[string]bool)
	def, ok := c.Get(name)
	if !ok {
		return deps
	}

	for _, p := range def.Parts {
		if p.Kind != PartReference || p.EntityRef == "" {
			continue
		}
		ref := p.EntityRef
		if visited[ref] {
			continue
		}
		deps[ref] = true
		visited[ref] = true
		for sub := range c.DependenciesOf(ref, visited) {
			deps[sub] = true
		}
	}
	return deps
}

// AssignableTargets returns the indexed names that may be assigned as a
// reference inside current, sorted. The current name itself is excluded, as
// is every candidate whose dependency set contains current, since assigning
// such a candidate would close a cycle. Filtering here, before the user can choose,
// is the primary cycle-prevention mechanism.
func (c *Cache) AssignableTargets(current string) []string {
	names := c.index.Names()
	out := names[:0]
	for _, candidate := range names {
		if candidate == current {
			continue
		}
		if current != "" && c.DependenciesOf(candidate, nil)[current] {
			continue
		}
		out = append(out, candidate)
	}
	return out
}
