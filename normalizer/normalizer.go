package normalizer

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/Isilon/isilon-sdk/internal/issues"
	"github.com/Isilon/isilon-sdk/internal/naming"
	"github.com/Isilon/isilon-sdk/oaserrors"
	"github.com/Isilon/isilon-sdk/papi"
	"github.com/Isilon/isilon-sdk/registry"
	"github.com/Isilon/isilon-sdk/swagger"
)

// maxArrayItems is the largest maxItems kept; larger values overflow
// generated Java clients.
const maxArrayItems = 2147483642

// Fixups corrects known upstream schema bugs. Fix receives a private copy of
// the object about to be registered as definition and may modify it in place.
// It returns the object to use and one note per correction made.
type Fixups interface {
	Fix(definition string, obj *papi.ObjectSchema) (*papi.ObjectSchema, []string)
}

// NopFixups applies no corrections.
type NopFixups struct{}

// Fix implements Fixups.
func (NopFixups) Fix(_ string, obj *papi.ObjectSchema) (*papi.ObjectSchema, []string) {
	return obj, nil
}

// Context carries per-call settings through the recursion.
type Context struct {
	// Endpoint is the URI being compiled; it is attached to issues and errors.
	Endpoint string
	// Response is set while normalizing a response body.
	Response bool
	// Suffix is appended to colliding definition names.
	Suffix string
}

// Options configures a Normalizer.
type Options struct {
	Logger papi.Logger
	Fixups Fixups
	// NonRequired lists, per definition name, properties whose required flag
	// is ignored in responses because the server may return null for them.
	NonRequired map[string][]string
}

// DefaultNonRequiredProps returns the properties known to be returned as null
// despite being declared required.
func DefaultNonRequiredProps() map[string][]string {
	return map[string][]string{
		"StatisticsCurrentStat":       {"value"},
		"SummaryClientClientItem":     {"node"},
		"SummaryHeatHeatItem":         {"event_type", "lin", "node"},
		"SummaryProtocolProtocolItem": {"node"},
		"SummarySystemSystemItem":     {"iscsi"},
	}
}

// Normalizer converts fragments for one compilation run.
type Normalizer struct {
	reg         *registry.Registry
	fixups      Fixups
	nonRequired map[string][]string
	logger      papi.Logger
	issues      issues.List
}

// New creates a Normalizer that registers definitions in reg.
func New(reg *registry.Registry, opts Options) *Normalizer {
	n := &Normalizer{
		reg:         reg,
		fixups:      opts.Fixups,
		nonRequired: opts.NonRequired,
		logger:      opts.Logger,
	}
	if n.fixups == nil {
		n.fixups = NopFixups{}
	}
	if n.logger == nil {
		n.logger = papi.NopLogger{}
	}
	return n
}

// Registry returns the registry definitions are added to.
func (n *Normalizer) Registry() *registry.Registry {
	return n.reg
}

// Issues returns every correction recorded so far.
func (n *Normalizer) Issues() issues.List {
	return n.issues
}

func (n *Normalizer) warn(ctx Context, path, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	n.issues.Warnf(ctx.Endpoint, path, "%s", msg)
	n.logger.Warn(msg, "endpoint", ctx.Endpoint, "path", path)
}

func schemaError(ctx Context, definition, format string, args ...any) error {
	return &oaserrors.SchemaError{
		Endpoint:   ctx.Endpoint,
		Definition: definition,
		Message:    fmt.Sprintf(format, args...),
	}
}

func defPath(definition string) string {
	return "definitions." + definition
}

func propPath(definition, prop string) string {
	return "definitions." + definition + ".properties." + prop
}

// Object normalizes frag as an object named namespace+name and returns a
// reference to the registered (or reused) definition.
//
// A union selects its first object alternative, or Empty when there is none
// or when an alternative has no type. A $ref is returned as is. Any other
// non-object is a *oaserrors.SchemaError.
func (n *Normalizer) Object(namespace, name string, frag papi.Fragment, ctx Context) (registry.Type, error) {
	defName := namespace + name
	switch f := frag.(type) {
	case *papi.ObjectSchema:
		return n.object(namespace, name, f, ctx)
	case *papi.UnionSchema:
		if f.NullEntries > 0 {
			n.warn(ctx, defPath(defName), "found null object in JSON schema list")
		}
		obj, ok := firstObject(f)
		if !ok {
			return registry.Empty(), nil
		}
		return n.object(namespace, name, obj, ctx)
	case *papi.RefSchema:
		return refType(f), nil
	case nil:
		return registry.Type{}, schemaError(ctx, defName, "missing schema")
	default:
		return registry.Type{}, schemaError(ctx, defName, "schema is not type 'object': %s", frag.Kind())
	}
}

// firstObject returns the first typed object alternative of u, descending
// into nested unions. An untyped alternative ends the search with no result.
func firstObject(u *papi.UnionSchema) (*papi.ObjectSchema, bool) {
	for _, v := range u.Variants {
		switch f := v.(type) {
		case *papi.ObjectSchema:
			if f.Untyped {
				return nil, false
			}
			return f, true
		case *papi.UnionSchema:
			if obj, ok := firstObject(f); ok {
				return obj, true
			}
		}
	}
	return nil, false
}

func refType(r *papi.RefSchema) registry.Type {
	name := swagger.RefName(r.Ref)
	if name == "" {
		name = r.Ref
	}
	t := registry.Ref(name)
	if name == registry.EmptyDefinition {
		t = registry.Empty()
	}
	t.Description = r.Description
	return t
}

func (n *Normalizer) object(namespace, name string, src *papi.ObjectSchema, ctx Context) (registry.Type, error) {
	defName := namespace + name
	obj, notes := n.fixups.Fix(defName, src.Clone().(*papi.ObjectSchema))
	for _, note := range notes {
		n.warn(ctx, defPath(defName), "%s", note)
	}

	if obj.Untyped {
		if obj.Loose {
			n.warn(ctx, defPath(defName), "invalid empty schema for object %s, adding 'properties' and 'type'", defName)
		} else {
			n.warn(ctx, defPath(defName), "invalid schema for object %s, no 'type' specified", defName)
		}
	}

	props := obj.Properties
	if props == nil {
		n.warn(ctx, defPath(defName), "missing 'properties' object")
		props = map[string]papi.Fragment{}
		if obj.Settings != nil {
			props["settings"] = obj.Settings
		}
	}
	for _, bad := range sortedKeys(obj.Invalid) {
		n.warn(ctx, propPath(defName, bad), "dropping property %q with non-schema value %v", bad, obj.Invalid[bad])
	}

	cand := &registry.Definition{
		Name:        defName,
		Description: obj.Description,
		Properties:  make(map[string]registry.Type, len(props)),
	}
	nonRequired := n.nonRequired[defName]
	for _, prop := range sortedKeys(props) {
		frag := props[prop]
		if frag.Common().Required {
			skip := slices.Contains(nonRequired, prop)
			if !ctx.Response || (frag.Kind() != papi.KindUnion && !skip) {
				cand.Required = append(cand.Required, prop)
			}
			if skip {
				n.warn(ctx, propPath(defName, prop), "required property %q may be null", prop)
			}
		}

		t, err := n.Property(namespace, name, prop, frag, ctx)
		if err != nil {
			return registry.Type{}, err
		}
		cand.Properties[prop] = t
	}
	for _, req := range obj.RequiredNames {
		if _, ok := cand.Properties[req]; ok && !slices.Contains(cand.Required, req) {
			cand.Required = append(cand.Required, req)
		}
	}

	return registry.Ref(n.reg.InternOrExtend(cand, ctx.Suffix)), nil
}

// Property normalizes frag as property prop of the object namespace+object.
func (n *Normalizer) Property(namespace, object, prop string, frag papi.Fragment, ctx Context) (registry.Type, error) {
	defName := namespace + object
	switch f := frag.(type) {
	case *papi.RefSchema:
		return refType(f), nil
	case *papi.UnionSchema:
		return n.Property(namespace, object, prop, resolveUnion(f), ctx)
	case *papi.ObjectSchema:
		subName := naming.Title(prop)
		subNamespace := defName
		if sameObject(subName, object) {
			subNamespace = namespace
		}
		return n.nested(subNamespace, subName, f, ctx)
	case *papi.ArraySchema:
		return n.array(namespace, object, prop, f, ctx)
	case *papi.ScalarSchema:
		return n.scalar(propPath(defName, prop), f, ctx), nil
	}
	return registry.Type{}, schemaError(ctx, defName, "property %q has no schema", prop)
}

// sameObject reports whether a nested name repeats its parent's name.
func sameObject(sub, parent string) bool {
	if sub == parent {
		return true
	}
	a, _ := naming.Singular(sub, "")
	b, _ := naming.Singular(parent, "")
	return a == b
}

// nested registers a nested object. Its description moves onto the reference.
func (n *Normalizer) nested(namespace, name string, f *papi.ObjectSchema, ctx Context) (registry.Type, error) {
	child := f.Clone().(*papi.ObjectSchema)
	desc := child.Description
	child.Description = ""
	t, err := n.object(namespace, name, child, ctx)
	if err != nil {
		return registry.Type{}, err
	}
	t.Description = desc
	return t, nil
}

// resolveUnion picks one alternative of a multi-type property: the first
// object alternative, else the first non-string one, else the first one,
// else a string. Nested unions are resolved first. The outer description
// carries over when the choice has none; the outer enum does not.
func resolveUnion(u *papi.UnionSchema) papi.Fragment {
	var object, nonString, first papi.Fragment
	for _, v := range u.Variants {
		if nested, ok := v.(*papi.UnionSchema); ok {
			v = resolveUnion(nested)
		}
		if papi.IsNull(v) {
			continue
		}
		if first == nil {
			first = v
		}
		if v.Kind() == papi.KindObject && object == nil {
			object = v
		}
		if s, ok := v.(*papi.ScalarSchema); nonString == nil && (!ok || s.Type != "string") {
			nonString = v
		}
	}

	chosen := first
	switch {
	case object != nil:
		chosen = object
	case nonString != nil:
		chosen = nonString
	case chosen == nil:
		chosen = &papi.ScalarSchema{Type: "string", Bare: true}
	}

	out := chosen.Clone()
	c := out.Common()
	if s, ok := out.(*papi.ScalarSchema); ok && s.Bare {
		// A bare type name takes the union's annotations.
		*c = u.Base
		c.Required = false
		c.Enum = nil
		c.Extra = nil
		s.Bare = false
		return out
	}
	if c.Description == "" {
		c.Description = u.Description
	}
	return out
}

func (n *Normalizer) array(namespace, object, prop string, a *papi.ArraySchema, ctx Context) (registry.Type, error) {
	defName := namespace + object
	path := propPath(defName, prop)
	if a.InvalidItems != nil {
		return registry.Type{}, schemaError(ctx, defName, "array with no type or $ref in property %q: %v", prop, a.InvalidItems)
	}

	t := registry.Type{
		Kind:        registry.KindArray,
		Description: a.Description,
		MinItems:    a.MinItems,
		MaxItems:    a.MaxItems,
		UniqueItems: a.UniqueItems,
	}
	if t.MaxItems != nil && *t.MaxItems > maxArrayItems {
		t.MaxItems = nil
	}

	items := a.Items
	switch {
	case items == nil:
		n.warn(ctx, path, "missing 'items' field in %q property", prop)
		items = &papi.ScalarSchema{Type: "string"}
	case a.ItemMisspelled:
		n.warn(ctx, path, "missing 'items' field in %q property, using 'item'", prop)
	}
	if a.BareItems {
		n.warn(ctx, path, "found %q as 'items' object value", items.(*papi.ScalarSchema).Type)
	}

	it, err := n.items(namespace, object, prop, items, ctx)
	if err != nil {
		return registry.Type{}, err
	}
	t.Items = &it
	return t, nil
}

func (n *Normalizer) items(namespace, object, prop string, f papi.Fragment, ctx Context) (registry.Type, error) {
	switch v := f.(type) {
	case *papi.ObjectSchema:
		name, _ := naming.Singular(naming.Title(prop), "Item")
		itemNamespace := namespace + object
		if one, _ := naming.Singular(object, ""); name == object || name == one {
			itemNamespace = namespace
		}
		if v.Untyped {
			n.warn(ctx, propPath(namespace+object, prop), "missing 'object' type in %q items", prop)
		}
		return n.nested(itemNamespace, name, v, ctx)
	case *papi.UnionSchema:
		return n.items(namespace, object, prop, resolveUnion(v), ctx)
	case *papi.ArraySchema:
		return n.array(namespace, object, "items", v, ctx)
	case *papi.RefSchema:
		return refType(v), nil
	case *papi.ScalarSchema:
		return n.scalar(propPath(namespace+object, prop)+".items", v, ctx), nil
	}
	return registry.Type{}, schemaError(ctx, namespace+object, "array with no type or $ref in property %q", prop)
}

// rangeSpelling matches free-text range types such as "integer 0 - 10".
var rangeSpelling = regexp.MustCompile(`^\s*(integer|number)\s+(-?\d+(?:\.\d+)?)\s*-\s*(-?\d+(?:\.\d+)?)\s*$`)

func (n *Normalizer) scalar(path string, s *papi.ScalarSchema, ctx Context) registry.Type {
	t := registry.Type{
		Kind:        registry.KindScalar,
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
	if s.Inferred {
		n.warn(ctx, path, "invalid enum prop with no type, using 'string'")
	}

	switch s.Type {
	case "string", "integer", "number", "boolean":
		t.Scalar = s.Type
	case "any":
		t.Scalar = "string"
	case "int":
		n.warn(ctx, path, "invalid prop type %q, using 'integer'", s.Type)
		t.Scalar = "integer"
	case "bool":
		n.warn(ctx, path, "invalid prop type %q, using 'boolean'", s.Type)
		t.Scalar = "boolean"
	case "time":
		n.warn(ctx, path, "invalid prop type %q, using 'integer'", s.Type)
		t.Scalar = "integer"
	default:
		if m := rangeSpelling.FindStringSubmatch(s.Type); m != nil {
			n.warn(ctx, path, "invalid prop type %q, using %q with a range", s.Type, m[1])
			lo, _ := strconv.ParseFloat(m[2], 64)
			hi, _ := strconv.ParseFloat(m[3], 64)
			t.Scalar = m[1]
			t.Minimum, t.Maximum = &lo, &hi
			break
		}
		n.warn(ctx, path, "unknown prop type %q, using 'string'", s.Type)
		t.Scalar = "string"
	}

	if t.Enum != nil {
		t.Enum = n.sanitizeEnum(path, t.Scalar, t.Enum, ctx)
	}
	return t
}

// sanitizeEnum drops null members from an enum of any scalar type and
// returns nil when nothing is left. String enums also lose "@" sentinels,
// and a non-string member drops the whole enum.
func (n *Normalizer) sanitizeEnum(path, scalar string, enum []any, ctx Context) []any {
	var out []any
	for _, v := range enum {
		if v == nil {
			continue
		}
		if scalar == "string" {
			s, ok := v.(string)
			if !ok {
				n.warn(ctx, path, "invalid multi-type enum %v, dropping enum", enum)
				return nil
			}
			if strings.HasPrefix(s, "@") {
				continue
			}
		}
		out = append(out, v)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
