package registry

import (
	"slices"

	"github.com/Isilon/isilon-sdk/internal/equalutil"
	"github.com/Isilon/isilon-sdk/swagger"
)

// Kind identifies the variant of a normalized [Type].
type Kind int

const (
	// KindEmpty is an object with no usable shape; it refers to the Empty definition.
	KindEmpty Kind = iota
	// KindScalar is a string, integer, number or boolean.
	KindScalar
	// KindArray is an array of Items.
	KindArray
	// KindRef refers to a registered definition.
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindRef:
		return "ref"
	}
	return "unknown"
}

// EmptyDefinition is the name of the seed definition for shapeless objects.
const EmptyDefinition = "Empty"

// Type is a normalized property type.
type Type struct {
	Kind Kind
	// Scalar is the Swagger type name for KindScalar.
	Scalar string
	// Ref is the definition name for KindRef.
	Ref string
	// Items is the element type for KindArray.
	Items *Type

	Description string
	Format      string
	Enum        []any
	Default     any
	Pattern     string
	Minimum     *float64
	Maximum     *float64
	MinLength   *int64
	MaxLength   *int64
	MinItems    *int64
	MaxItems    *int64
	UniqueItems bool
}

// Scalar returns a scalar type.
func Scalar(name string) Type {
	return Type{Kind: KindScalar, Scalar: name}
}

// Ref returns a reference to the named definition.
func Ref(name string) Type {
	return Type{Kind: KindRef, Ref: name}
}

// Array returns an array of items.
func Array(items Type) Type {
	return Type{Kind: KindArray, Items: &items}
}

// Empty returns the shapeless object type.
func Empty() Type {
	return Type{Kind: KindEmpty}
}

// Equal reports whether t and o are structurally identical, including
// descriptions and constraints.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Scalar != o.Scalar || t.Ref != o.Ref ||
		t.Description != o.Description || t.Format != o.Format || t.Pattern != o.Pattern ||
		t.UniqueItems != o.UniqueItems {
		return false
	}
	if !equalutil.EqualPtr(t.Minimum, o.Minimum) || !equalutil.EqualPtr(t.Maximum, o.Maximum) ||
		!equalutil.EqualPtr(t.MinLength, o.MinLength) || !equalutil.EqualPtr(t.MaxLength, o.MaxLength) ||
		!equalutil.EqualPtr(t.MinItems, o.MinItems) || !equalutil.EqualPtr(t.MaxItems, o.MaxItems) {
		return false
	}
	if !equalutil.EqualValues(t.Enum, o.Enum) || !equalutil.EqualValue(t.Default, o.Default) {
		return false
	}
	if (t.Items == nil) != (o.Items == nil) {
		return false
	}
	return t.Items == nil || t.Items.Equal(*o.Items)
}

// Refs returns the definition names t refers to, directly or through items.
func (t Type) Refs() []string {
	switch t.Kind {
	case KindRef:
		return []string{t.Ref}
	case KindEmpty:
		return []string{EmptyDefinition}
	case KindArray:
		if t.Items != nil {
			return t.Items.Refs()
		}
	}
	return nil
}

// Schema renders t as a Swagger schema.
func (t Type) Schema() *swagger.Schema {
	switch t.Kind {
	case KindEmpty:
		return &swagger.Schema{Description: t.Description, Ref: swagger.RefTo(EmptyDefinition)}
	case KindRef:
		return &swagger.Schema{Description: t.Description, Ref: swagger.RefTo(t.Ref)}
	case KindArray:
		s := &swagger.Schema{
			Type:        "array",
			Description: t.Description,
			MinItems:    t.MinItems,
			MaxItems:    t.MaxItems,
			UniqueItems: t.UniqueItems,
		}
		if t.Items != nil {
			s.Items = t.Items.Schema()
		}
		return s
	}
	return &swagger.Schema{
		Type:        t.Scalar,
		Description: t.Description,
		Format:      t.Format,
		Enum:        slices.Clone(t.Enum),
		Default:     t.Default,
		Pattern:     t.Pattern,
		Minimum:     t.Minimum,
		Maximum:     t.Maximum,
		MinLength:   t.MinLength,
		MaxLength:   t.MaxLength,
	}
}

// TypeFromSchema converts a Swagger property schema back to a Type. It is
// used for seed definitions supplied as Swagger.
func TypeFromSchema(s *swagger.Schema) Type {
	if s == nil {
		return Empty()
	}
	if s.Ref != "" {
		name := swagger.RefName(s.Ref)
		if name == EmptyDefinition {
			return Type{Kind: KindEmpty, Description: s.Description}
		}
		return Type{Kind: KindRef, Ref: name, Description: s.Description}
	}
	if s.Type == "array" {
		t := Type{
			Kind:        KindArray,
			Description: s.Description,
			MinItems:    s.MinItems,
			MaxItems:    s.MaxItems,
			UniqueItems: s.UniqueItems,
		}
		items := TypeFromSchema(s.Items)
		if s.Items == nil {
			items = Scalar("string")
		}
		t.Items = &items
		return t
	}
	typ := s.Type
	if typ == "" || typ == "object" {
		// inline objects are not representable; treat them as shapeless
		return Type{Kind: KindEmpty, Description: s.Description}
	}
	return Type{
		Kind:        KindScalar,
		Scalar:      typ,
		Description: s.Description,
		Format:      s.Format,
		Enum:        slices.Clone(s.Enum),
		Default:     s.Default,
		Pattern:     s.Pattern,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
		MinLength:   s.MinLength,
		MaxLength:   s.MaxLength,
	}
}
