package registry

import (
	"slices"

	"github.com/Isilon/isilon-sdk/swagger"
)

// DefaultMinParentProperties is the smallest parent a definition may extend.
// Any non-empty definition whose properties are all carried over qualifies.
const DefaultMinParentProperties = 1

// Options configures a Registry.
type Options struct {
	// MinParentProperties is the minimum number of properties a definition
	// needs before others may extend it, unless both share the proposed
	// name. Zero selects the default. Raising it keeps tiny fragments such
	// as a lone id from becoming parents.
	MinParentProperties int
}

// Registry holds the definitions of one compilation run.
type Registry struct {
	defs      map[string]*Definition
	order     []string
	index     map[uint64][]string
	seeds     map[string]bool
	minParent int
}

// New creates an empty registry.
func New(opts Options) *Registry {
	minParent := opts.MinParentProperties
	if minParent <= 0 {
		minParent = DefaultMinParentProperties
	}
	return &Registry{
		defs:      make(map[string]*Definition),
		index:     make(map[uint64][]string),
		seeds:     make(map[string]bool),
		minParent: minParent,
	}
}

// Seed registers fixed definitions under their own names, replacing any
// previous definition of the same name. Seeds take part in exact matching
// but are never chosen as parents: they are envelope types shared by every
// endpoint, and an extension of one would tie unrelated resources together.
func (r *Registry) Seed(defs ...*Definition) {
	for _, d := range defs {
		c := d.Clone()
		c.Required = sortedUnique(c.Required)
		if _, exists := r.defs[c.Name]; exists {
			r.remove(c.Name)
		}
		r.add(c)
		r.seeds[c.Name] = true
	}
}

// IsSeed reports whether name was registered with Seed.
func (r *Registry) IsSeed(name string) bool {
	return r.seeds[name]
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns the definition names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Lookup returns the named definition. The returned value must not be modified.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Flatten returns all properties and the sorted required names of a
// definition, including everything inherited from its parents.
func (r *Registry) Flatten(name string) (map[string]Type, []string, bool) {
	if _, ok := r.defs[name]; !ok {
		return nil, nil, false
	}
	s := r.flatten(name)
	return s.props, s.required, true
}

func (r *Registry) flatten(name string) shape {
	s := shape{props: make(map[string]Type)}
	seen := make(map[string]bool)
	for d := r.defs[name]; d != nil && !seen[d.Name]; d = r.defs[d.Parent] {
		seen[d.Name] = true
		for prop, t := range d.Properties {
			if _, overridden := s.props[prop]; !overridden {
				s.props[prop] = t
			}
		}
		s.required = append(s.required, d.Required...)
		if d.Parent == "" {
			break
		}
	}
	s.required = sortedUnique(s.required)
	return s
}

// InternOrExtend registers cand, or finds an existing definition it
// duplicates, and returns the name to reference. suffix is appended to
// cand.Name until the name is free when a new definition must be added.
// cand is not retained.
func (r *Registry) InternOrExtend(cand *Definition, suffix string) string {
	cs := shape{props: cand.Properties, required: sortedUnique(cand.Required)}
	if cs.props == nil {
		cs.props = map[string]Type{}
	}

	if name, ok := r.findEqual(cs); ok {
		return name
	}

	name := r.freeName(cand.Name, suffix)
	if parent, ps, ok := r.findParent(cand.Name, cs); ok {
		r.add(extend(name, cand.Description, parent, ps, cs))
		return name
	}

	d := cand.Clone()
	d.Name = name
	d.Parent = ""
	d.Required = cs.required
	if d.Properties == nil {
		d.Properties = map[string]Type{}
	}
	r.add(d)
	return name
}

func (r *Registry) findEqual(cs shape) (string, bool) {
	for _, name := range r.index[hashShape(cs)] {
		if r.flatten(name).equal(cs) {
			return name, true
		}
	}
	return "", false
}

// findParent picks the existing definition that cand may extend. A parent
// with the same proposed name wins, then the one with the most properties,
// then the earliest registered.
func (r *Registry) findParent(proposed string, cs shape) (string, shape, bool) {
	var (
		best      string
		bestShape shape
		found     bool
	)
	for _, name := range r.order {
		if r.seeds[name] {
			continue
		}
		ps := r.flatten(name)
		if len(ps.props) == 0 || (len(ps.props) < r.minParent && name != proposed) {
			continue
		}
		if !ps.within(cs) {
			continue
		}
		better := !found || name == proposed ||
			(best != proposed && len(ps.props) > len(bestShape.props))
		if !better {
			continue
		}
		best, bestShape, found = name, ps, true
	}
	return best, bestShape, found
}

func (r *Registry) freeName(name, suffix string) string {
	if suffix == "" {
		suffix = "Extended"
	}
	for {
		if _, taken := r.defs[name]; !taken {
			return name
		}
		name += suffix
	}
}

func (r *Registry) add(d *Definition) {
	r.defs[d.Name] = d
	r.order = append(r.order, d.Name)
	h := hashShape(r.flatten(d.Name))
	r.index[h] = append(r.index[h], d.Name)
}

func (r *Registry) remove(name string) {
	d, ok := r.defs[name]
	if !ok {
		return
	}
	h := hashShape(r.flatten(name))
	r.index[h] = slices.DeleteFunc(r.index[h], func(n string) bool { return n == d.Name })
	if len(r.index[h]) == 0 {
		delete(r.index, h)
	}
	delete(r.defs, name)
	delete(r.seeds, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })
}

// Mark returns a point that Rollback can return to.
func (r *Registry) Mark() int {
	return len(r.order)
}

// Rollback removes every definition registered after mark. It is used to
// discard the definitions of an endpoint that failed part way through.
func (r *Registry) Rollback(mark int) {
	for len(r.order) > mark {
		r.remove(r.order[len(r.order)-1])
	}
}

// Schemas renders every definition, keyed by name.
func (r *Registry) Schemas() map[string]*swagger.Schema {
	out := make(map[string]*swagger.Schema, len(r.order))
	for _, name := range r.order {
		out[name] = r.defs[name].Schema()
	}
	return out
}

// Dangling returns references to names that are not registered, as
// "Definition -> Missing" strings in registration order.
func (r *Registry) Dangling() []string {
	var out []string
	for _, name := range r.order {
		d := r.defs[name]
		if d.Parent != "" {
			if _, ok := r.defs[d.Parent]; !ok {
				out = append(out, name+" -> "+d.Parent)
			}
		}
		for _, prop := range d.PropertyNames() {
			for _, ref := range d.Properties[prop].Refs() {
				if _, ok := r.defs[ref]; !ok {
					out = append(out, name+" -> "+ref)
				}
			}
		}
	}
	return out
}
