package normalizer

import (
	"github.com/Isilon/isilon-sdk/papi"
	"github.com/Isilon/isilon-sdk/swagger"
)

// queryKeys are the describe argument keys that become query parameter fields.
var queryKeys = map[string]bool{
	"description": true, "required": true, "type": true, "default": true,
	"maximum": true, "minimum": true, "enum": true, "items": true,
	"maxLength": true, "minLength": true, "pattern": true,
}

// Params converts the query arguments of one verb into query parameters,
// sorted by name. Unknown keys are dropped with a warning.
func (n *Normalizer) Params(args papi.Args, ctx Context) []*swagger.Parameter {
	out := make([]*swagger.Parameter, 0, len(args.Properties))
	for _, name := range args.PropertyNames() {
		raw := args.Properties[name]
		path := "parameters." + name
		p := &swagger.Parameter{Name: name, In: "query"}

		for _, key := range sortedKeys(raw) {
			if !queryKeys[key] {
				n.warn(ctx, path, "dropping unsupported query arg key %q", key)
			}
		}

		p.Description, _ = raw["description"].(string)
		p.Required, _ = raw["required"].(bool)
		p.Type = n.queryType(path, raw["type"], ctx)
		p.Default = raw["default"]
		p.Pattern, _ = raw["pattern"].(string)
		if v, ok := papi.ToFloat(raw["maximum"]); ok {
			p.Maximum = &v
		}
		if v, ok := papi.ToFloat(raw["minimum"]); ok {
			p.Minimum = &v
		}
		if v, ok := papi.ToFloat(raw["maxLength"]); ok {
			i := int64(v)
			p.MaxLength = &i
		}
		if v, ok := papi.ToFloat(raw["minLength"]); ok {
			i := int64(v)
			p.MinLength = &i
		}
		if enum, ok := raw["enum"].([]any); ok {
			p.Enum = n.sanitizeEnum(path, p.Type, enum, ctx)
		}
		if p.Type == "array" {
			p.Items = n.queryItems(path+".items", raw["items"], ctx)
		}
		out = append(out, p)
	}
	return out
}

func (n *Normalizer) queryItems(path string, raw any, ctx Context) *swagger.Items {
	var m map[string]any
	switch v := raw.(type) {
	case map[string]any:
		m = v
	case string:
		m = map[string]any{"type": v}
	default:
		n.warn(ctx, path, "missing 'items' in array query arg, using 'string'")
		return &swagger.Items{Type: "string"}
	}
	it := &swagger.Items{Type: n.queryType(path, m["type"], ctx)}
	it.Format, _ = m["format"].(string)
	if enum, ok := m["enum"].([]any); ok {
		it.Enum = n.sanitizeEnum(path, it.Type, enum, ctx)
	}
	if it.Type == "array" {
		it.Items = n.queryItems(path+".items", m["items"], ctx)
	}
	return it
}

// queryType corrects a query argument type. Lists pick their first non-null
// entry; objects are not allowed in query parameters and become strings.
func (n *Normalizer) queryType(path string, raw any, ctx Context) string {
	var typ string
	switch v := raw.(type) {
	case string:
		typ = v
	case []any:
		for _, alt := range v {
			if s, ok := alt.(string); ok && s != "null" {
				typ = s
				break
			}
		}
		n.warn(ctx, path, "multi-type query arg %v, using %q", v, typ)
	}

	switch typ {
	case "string", "integer", "number", "boolean", "array":
		return typ
	case "int":
		n.warn(ctx, path, "invalid query arg type %q, using 'integer'", typ)
		return "integer"
	case "bool":
		n.warn(ctx, path, "invalid query arg type %q, using 'boolean'", typ)
		return "boolean"
	case "any":
		return "string"
	case "":
		n.warn(ctx, path, "query arg has no type, using 'string'")
		return "string"
	}
	n.warn(ctx, path, "unsupported query arg type %q, using 'string'", typ)
	return "string"
}
