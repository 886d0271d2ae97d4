package registry

import (
	"maps"
	"slices"

	"github.com/Isilon/isilon-sdk/swagger"
)

// Definition is a named object definition. When Parent is set, Properties
// and Required hold only what the definition adds to its parent.
type Definition struct {
	Name        string
	Description string
	Properties  map[string]Type
	Required    []string
	Parent      string
}

// PropertyNames returns the property names in sorted order.
func (d *Definition) PropertyNames() []string {
	return slices.Sorted(maps.Keys(d.Properties))
}

// IsRequired reports whether name is in the definition's own required list.
func (d *Definition) IsRequired(name string) bool {
	return slices.Contains(d.Required, name)
}

// Clone returns a copy that shares no maps or slices with d. Types are
// treated as immutable values.
func (d *Definition) Clone() *Definition {
	c := *d
	c.Properties = maps.Clone(d.Properties)
	c.Required = slices.Clone(d.Required)
	return &c
}

// Schema renders the definition. Root definitions become plain objects;
// extensions become an allOf of the parent reference and the added shape.
func (d *Definition) Schema() *swagger.Schema {
	own := &swagger.Schema{
		Type:     "object",
		Required: slices.Clone(d.Required),
	}
	if len(d.Properties) > 0 {
		own.Properties = make(map[string]*swagger.Schema, len(d.Properties))
		for name, t := range d.Properties {
			own.Properties[name] = t.Schema()
		}
	}
	if d.Parent == "" {
		own.Description = d.Description
		return own
	}
	return &swagger.Schema{
		Description: d.Description,
		AllOf:       []*swagger.Schema{{Ref: swagger.RefTo(d.Parent)}, own},
	}
}

// FromSchema converts a Swagger object schema into a definition. An allOf
// whose first element is a local reference becomes an extension of it.
func FromSchema(name string, s *swagger.Schema) *Definition {
	d := &Definition{Name: name}
	if s == nil {
		return d
	}
	d.Description = s.Description
	shape := s
	if len(s.AllOf) > 0 {
		if parent := swagger.RefName(s.AllOf[0].Ref); parent != "" {
			d.Parent = parent
		}
		shape = s.AllOf[len(s.AllOf)-1]
	}
	if len(shape.Properties) > 0 {
		d.Properties = make(map[string]Type, len(shape.Properties))
		for prop, ps := range shape.Properties {
			d.Properties[prop] = TypeFromSchema(ps)
		}
	}
	d.Required = sortedUnique(shape.Required)
	return d
}

// shape is a flattened definition: all inherited properties and required names.
type shape struct {
	props    map[string]Type
	required []string
}

func (s shape) equal(o shape) bool {
	if len(s.props) != len(o.props) || !slices.Equal(s.required, o.required) {
		return false
	}
	for name, t := range s.props {
		ot, ok := o.props[name]
		if !ok || !t.Equal(ot) {
			return false
		}
	}
	return true
}

// within reports whether every property of s appears in o with an identical
// type and every name s requires is still required by o.
func (s shape) within(o shape) bool {
	for name, t := range s.props {
		ot, ok := o.props[name]
		if !ok || !t.Equal(ot) {
			return false
		}
	}
	for _, name := range s.required {
		if !slices.Contains(o.required, name) {
			return false
		}
	}
	return true
}

// extend builds the definition that adds cand to parent: properties not in
// the parent or newly required, and the required names the parent lacks.
func extend(name, description, parentName string, parent, cand shape) *Definition {
	d := &Definition{
		Name:        name,
		Description: description,
		Parent:      parentName,
		Properties:  make(map[string]Type),
	}
	for _, req := range cand.required {
		if !slices.Contains(parent.required, req) {
			d.Required = append(d.Required, req)
		}
	}
	for prop, t := range cand.props {
		if _, shared := parent.props[prop]; !shared || slices.Contains(d.Required, prop) {
			d.Properties[prop] = t
		}
	}
	return d
}

func sortedUnique(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := slices.Clone(names)
	slices.Sort(out)
	return slices.Compact(out)
}

func sortedNames[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
