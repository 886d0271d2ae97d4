package papi

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/Isilon/isilon-sdk/oaserrors"
)

// Kind identifies the variant of a schema Fragment.
type Kind int

const (
	// KindScalar is a string, integer, boolean, number or a misspelled scalar type.
	KindScalar Kind = iota
	// KindObject is an object with properties, including fragments that omit "type".
	KindObject
	// KindArray is an array with an items schema.
	KindArray
	// KindUnion is a fragment whose "type" is a list of alternatives.
	KindUnion
	// KindRef is a bare $ref.
	KindRef
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	case KindRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Fragment is a parsed describe schema node. It is one of *ScalarSchema,
// *ObjectSchema, *ArraySchema, *UnionSchema or *RefSchema.
//
// Fragments are never mutated by the compiler. Code that needs to correct a
// fragment works on a Clone.
type Fragment interface {
	Kind() Kind
	Common() *Base
	Clone() Fragment
}

// Base holds the keywords every fragment variant may carry.
type Base struct {
	Description string
	// Required is the draft-3 style per-property flag ("required": true).
	Required    bool
	Enum        []any
	Default     any
	Pattern     string
	Format      string
	Minimum     *float64
	Maximum     *float64
	MinLength   *int64
	MaxLength   *int64
	MinItems    *int64
	MaxItems    *int64
	UniqueItems bool
	// Extra holds every key the parser did not recognize, including
	// misspelled keywords such as "descriprion".
	Extra map[string]any
}

// Common returns the shared keywords.
func (b *Base) Common() *Base { return b }

func (b Base) clone() Base {
	c := b
	c.Enum = slices.Clone(b.Enum)
	c.Extra = maps.Clone(b.Extra)
	return c
}

// ScalarSchema is a fragment whose type is a single non-container name.
// Type keeps the spelling found upstream ("int", "bool", "time", "any",
// "integer 0 - 10"); the normalizer corrects it.
type ScalarSchema struct {
	Base
	Type string
	// Inferred is set when the fragment had no "type" and was read as a string enum.
	Inferred bool
	// Bare is set when the fragment was a type name rather than a schema,
	// as in a union's type list.
	Bare bool
}

// Kind implements Fragment.
func (*ScalarSchema) Kind() Kind { return KindScalar }

// Clone implements Fragment.
func (s *ScalarSchema) Clone() Fragment {
	c := *s
	c.Base = s.Base.clone()
	return &c
}

// ObjectSchema is an object fragment.
type ObjectSchema struct {
	Base
	// Properties is nil when the fragment carried no "properties" key.
	Properties map[string]Fragment
	// Invalid holds property values that are not schema objects.
	Invalid map[string]any
	// RequiredNames is a draft-4 style "required" list, if present.
	RequiredNames []string
	// Settings is the "settings" key some endpoints use instead of "properties".
	Settings Fragment
	// Untyped is set when the fragment had no "type" key.
	Untyped bool
	// Loose is set when Properties were lifted from the fragment's own keys.
	Loose bool
}

// Kind implements Fragment.
func (*ObjectSchema) Kind() Kind { return KindObject }

// Clone implements Fragment.
func (o *ObjectSchema) Clone() Fragment {
	c := *o
	c.Base = o.Base.clone()
	if o.Properties != nil {
		c.Properties = make(map[string]Fragment, len(o.Properties))
		for k, v := range o.Properties {
			c.Properties[k] = v.Clone()
		}
	}
	c.Invalid = maps.Clone(o.Invalid)
	c.RequiredNames = slices.Clone(o.RequiredNames)
	if o.Settings != nil {
		c.Settings = o.Settings.Clone()
	}
	return &c
}

// PropertyNames returns the property names in sorted order.
func (o *ObjectSchema) PropertyNames() []string {
	return slices.Sorted(maps.Keys(o.Properties))
}

// ArraySchema is an array fragment.
type ArraySchema struct {
	Base
	// Items is nil when the fragment had neither "items" nor "item".
	Items Fragment
	// ItemMisspelled is set when the items schema was found under "item".
	ItemMisspelled bool
	// BareItems is set when items was a type name rather than a schema.
	BareItems bool
	// InvalidItems holds an items value that is neither a schema nor a type name.
	InvalidItems any
}

// Kind implements Fragment.
func (*ArraySchema) Kind() Kind { return KindArray }

// Clone implements Fragment.
func (a *ArraySchema) Clone() Fragment {
	c := *a
	c.Base = a.Base.clone()
	if a.Items != nil {
		c.Items = a.Items.Clone()
	}
	return &c
}

// UnionSchema is a fragment whose "type" lists several alternatives.
// Variants keeps source order; JSON null entries are dropped and counted.
type UnionSchema struct {
	Base
	Variants    []Fragment
	NullEntries int
}

// Kind implements Fragment.
func (*UnionSchema) Kind() Kind { return KindUnion }

// Clone implements Fragment.
func (u *UnionSchema) Clone() Fragment {
	c := *u
	c.Base = u.Base.clone()
	c.Variants = make([]Fragment, len(u.Variants))
	for i, v := range u.Variants {
		c.Variants[i] = v.Clone()
	}
	return &c
}

// RefSchema is a fragment that only points at another definition.
type RefSchema struct {
	Base
	Ref string
}

// Kind implements Fragment.
func (*RefSchema) Kind() Kind { return KindRef }

// Clone implements Fragment.
func (r *RefSchema) Clone() Fragment {
	c := *r
	c.Base = r.Base.clone()
	return &c
}

// IsNull reports whether f is the "null" alternative of a union.
func IsNull(f Fragment) bool {
	s, ok := f.(*ScalarSchema)
	return ok && s.Type == "null"
}

// keys consumed by parseBase; everything else lands in Base.Extra.
var baseKeys = map[string]bool{
	"type": true, "description": true, "required": true, "enum": true,
	"default": true, "pattern": true, "format": true, "minimum": true,
	"maximum": true, "minLength": true, "maxLength": true, "minItems": true,
	"maxItems": true, "uniqueItems": true, "$ref": true,
}

var objectKeys = map[string]bool{"properties": true, "settings": true}

var arrayKeys = map[string]bool{"items": true, "item": true}

// ParseFragment converts a decoded JSON or YAML value into a Fragment.
// A bare string is read as a scalar type name.
func ParseFragment(raw any) (Fragment, error) {
	if s, ok := raw.(string); ok {
		return &ScalarSchema{Type: s, Bare: true}, nil
	}
	m, ok := asMap(raw)
	if !ok {
		return nil, &oaserrors.ParseError{Message: fmt.Sprintf("schema fragment must be an object, got %T", raw)}
	}
	return parseMap(m)
}

func parseMap(m map[string]any) (Fragment, error) {
	base := parseBase(m)
	typ, hasType := m["type"]

	if ref, ok := m["$ref"].(string); ok && (!hasType || typ == nil) {
		return &RefSchema{Base: withExtra(base, m, nil), Ref: ref}, nil
	}

	switch tv := typ.(type) {
	case nil:
		if _, hasEnum := m["enum"]; hasEnum {
			return &ScalarSchema{Base: withExtra(base, m, nil), Type: "string", Inferred: true}, nil
		}
		return parseObject(m, base, true)
	case string:
		switch tv {
		case "object":
			return parseObject(m, base, false)
		case "array":
			return parseArray(m, base)
		default:
			return &ScalarSchema{Base: withExtra(base, m, nil), Type: tv}, nil
		}
	case []any:
		u := &UnionSchema{Base: withExtra(base, m, nil)}
		for i, v := range tv {
			if v == nil {
				u.NullEntries++
				continue
			}
			f, err := ParseFragment(v)
			if err != nil {
				return nil, fmt.Errorf("papi: type alternative %d: %w", i, err)
			}
			u.Variants = append(u.Variants, f)
		}
		return u, nil
	default:
		nm, ok := asMap(tv)
		if !ok {
			return nil, &oaserrors.ParseError{Message: fmt.Sprintf("unsupported type value %v", tv)}
		}
		nested, err := parseMap(nm)
		if err != nil {
			return nil, err
		}
		// The outer node only contributes its annotations.
		c := nested.Common()
		if c.Description == "" {
			c.Description = base.Description
		}
		c.Required = c.Required || base.Required
		return nested, nil
	}
}

func parseObject(m map[string]any, base Base, untyped bool) (Fragment, error) {
	o := &ObjectSchema{Base: withExtra(base, m, objectKeys), Untyped: untyped}

	if rawProps, ok := m["properties"]; ok {
		pm, ok := asMap(rawProps)
		if !ok {
			o.Extra = setExtra(o.Extra, "properties", rawProps)
		} else {
			props, invalid, err := parseProperties(pm)
			if err != nil {
				return nil, err
			}
			o.Properties, o.Invalid = props, invalid
		}
	}
	if list, ok := m["required"].([]any); ok {
		for _, v := range list {
			if s, ok := v.(string); ok {
				o.RequiredNames = append(o.RequiredNames, s)
			}
		}
	}
	if rawSettings, ok := m["settings"]; ok {
		if _, ok := asMap(rawSettings); ok {
			s, err := ParseFragment(rawSettings)
			if err != nil {
				return nil, fmt.Errorf("papi: settings: %w", err)
			}
			o.Settings = s
		} else {
			o.Extra = setExtra(o.Extra, "settings", rawSettings)
		}
	}

	// A schema with neither type nor properties is a bag of properties.
	if untyped && o.Properties == nil && o.Settings == nil {
		lifted := make(map[string]any)
		for k, v := range o.Extra {
			if _, ok := asMap(v); ok {
				lifted[k] = v
				delete(o.Extra, k)
			}
		}
		props, _, err := parseProperties(lifted)
		if err != nil {
			return nil, err
		}
		o.Properties = props
		o.Loose = true
	}
	return o, nil
}

func parseProperties(pm map[string]any) (map[string]Fragment, map[string]any, error) {
	props := make(map[string]Fragment, len(pm))
	var invalid map[string]any
	for name, v := range pm {
		if _, ok := asMap(v); !ok {
			if invalid == nil {
				invalid = make(map[string]any)
			}
			invalid[name] = v
			continue
		}
		f, err := ParseFragment(v)
		if err != nil {
			return nil, nil, fmt.Errorf("papi: property %q: %w", name, err)
		}
		props[name] = f
	}
	return props, invalid, nil
}

func parseArray(m map[string]any, base Base) (Fragment, error) {
	a := &ArraySchema{Base: withExtra(base, m, arrayKeys)}
	raw, ok := m["items"]
	if !ok {
		if raw, ok = m["item"]; ok {
			a.ItemMisspelled = true
		}
	}
	if !ok {
		return a, nil
	}
	switch v := raw.(type) {
	case string:
		a.Items = &ScalarSchema{Type: v, Bare: true}
		a.BareItems = true
	default:
		if _, isMap := asMap(v); !isMap {
			a.InvalidItems = raw
			return a, nil
		}
		items, err := ParseFragment(v)
		if err != nil {
			return nil, fmt.Errorf("papi: items: %w", err)
		}
		a.Items = items
	}
	return a, nil
}

func parseBase(m map[string]any) Base {
	var b Base
	b.Description, _ = m["description"].(string)
	b.Required, _ = m["required"].(bool)
	if e, ok := m["enum"].([]any); ok {
		b.Enum = slices.Clone(e)
		if b.Enum == nil {
			b.Enum = []any{}
		}
	}
	b.Default = m["default"]
	b.Pattern, _ = m["pattern"].(string)
	b.Format, _ = m["format"].(string)
	b.Minimum = floatPtr(m["minimum"])
	b.Maximum = floatPtr(m["maximum"])
	b.MinLength = intPtr(m["minLength"])
	b.MaxLength = intPtr(m["maxLength"])
	b.MinItems = intPtr(m["minItems"])
	b.MaxItems = intPtr(m["maxItems"])
	b.UniqueItems, _ = m["uniqueItems"].(bool)
	return b
}

// withExtra copies every key that is neither a base keyword nor one of the
// variant's own keys into b.Extra.
func withExtra(b Base, m map[string]any, own map[string]bool) Base {
	for k, v := range m {
		if baseKeys[k] || own[k] {
			continue
		}
		b.Extra = setExtra(b.Extra, k, v)
	}
	// A draft-4 style list is not a per-property flag.
	if _, isList := m["required"].([]any); isList && !own["properties"] {
		b.Extra = setExtra(b.Extra, "required", m["required"])
	}
	return b
}

func setExtra(extra map[string]any, k string, v any) map[string]any {
	if extra == nil {
		extra = make(map[string]any)
	}
	extra[k] = v
	return extra
}

// asMap accepts both JSON-decoded and YAML-decoded mappings.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// ToFloat converts a decoded JSON or YAML number.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func floatPtr(v any) *float64 {
	f, ok := ToFloat(v)
	if !ok {
		return nil
	}
	return &f
}

func intPtr(v any) *int64 {
	f, ok := ToFloat(v)
	if !ok {
		return nil
	}
	n := int64(f)
	return &n
}
