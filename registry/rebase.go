package registry

// Rebase rewrites root definitions as extensions of the largest other
// definition they structurally extend. A parent must have strictly fewer
// properties, or as many properties and fewer required names, and at least
// the configured minimum number of properties (one by default). Seeds are
// neither rewritten nor used as parents.
//
// Flattened shapes do not change, so every existing reference stays valid.
// Rebase returns the names of the rewritten definitions in registration order.
func (r *Registry) Rebase() []string {
	var changed []string
	for _, name := range r.order {
		d := r.defs[name]
		if d.Parent != "" || r.seeds[name] {
			continue
		}
		ds := r.flatten(name)
		parent, ps, ok := r.smallerParent(name, ds)
		if !ok {
			continue
		}
		r.defs[name] = extend(name, d.Description, parent, ps, ds)
		changed = append(changed, name)
	}
	return changed
}

func (r *Registry) smallerParent(self string, ds shape) (string, shape, bool) {
	var (
		best      string
		bestShape shape
		found     bool
	)
	for _, name := range r.order {
		if name == self || r.seeds[name] {
			continue
		}
		ps := r.flatten(name)
		if len(ps.props) < r.minParent || !smaller(ps, ds) || !ps.within(ds) {
			continue
		}
		if found && !smaller(bestShape, ps) {
			continue
		}
		best, bestShape, found = name, ps, true
	}
	return best, bestShape, found
}

// smaller orders shapes by property count, then required count.
func smaller(a, b shape) bool {
	if len(a.props) != len(b.props) {
		return len(a.props) < len(b.props)
	}
	return len(a.required) < len(b.required)
}
