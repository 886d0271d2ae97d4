package papi

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Isilon/isilon-sdk/oaserrors"
)

// Method is an HTTP verb as it appears in describe keys ("GET_args").
type Method string

// Methods understood by the compiler.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodHead   Method = "HEAD"
)

var knownMethods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete, MethodHead}

// Args is the query argument description of one verb. Properties stay raw
// because they are copied almost verbatim into query parameters.
type Args struct {
	Description string
	Properties  map[string]map[string]any
}

// PropertyNames returns the argument names in sorted order.
func (a Args) PropertyNames() []string {
	return slices.Sorted(maps.Keys(a.Properties))
}

// MethodDescriptor bundles what describe reports for one verb.
type MethodDescriptor struct {
	Args Args
	// Input is the request body schema, nil when the verb takes no body.
	Input Fragment
	// Output is the response body schema, nil when the verb returns nothing.
	Output Fragment
}

// EndpointDescriptor is the parsed describe document of one endpoint URI.
type EndpointDescriptor struct {
	URI     string
	Methods map[Method]*MethodDescriptor
}

// Method returns the descriptor for m, or nil when the endpoint does not support it.
func (d *EndpointDescriptor) Method(m Method) *MethodDescriptor {
	if d == nil {
		return nil
	}
	return d.Methods[m]
}

// Has reports whether the endpoint supports m.
func (d *EndpointDescriptor) Has(m Method) bool {
	return d.Method(m) != nil
}

// ParseDescriptor parses the describe document of uri. A verb is present when
// its "<VERB>_args" key is; its input and output schemas are optional.
func ParseDescriptor(uri string, raw any) (*EndpointDescriptor, error) {
	m, ok := asMap(raw)
	if !ok {
		return nil, &oaserrors.ParseError{Path: uri, Message: fmt.Sprintf("describe document must be an object, got %T", raw)}
	}
	d := &EndpointDescriptor{URI: uri, Methods: make(map[Method]*MethodDescriptor)}
	for _, verb := range knownMethods {
		rawArgs, ok := m[string(verb)+"_args"]
		if !ok {
			continue
		}
		md := &MethodDescriptor{Args: parseArgs(rawArgs)}
		var err error
		if md.Input, err = optionalFragment(m, string(verb)+"_input_schema"); err != nil {
			return nil, &oaserrors.ParseError{Path: uri, Message: strings.ToLower(string(verb)) + " input schema", Cause: err}
		}
		if md.Output, err = optionalFragment(m, string(verb)+"_output_schema"); err != nil {
			return nil, &oaserrors.ParseError{Path: uri, Message: strings.ToLower(string(verb)) + " output schema", Cause: err}
		}
		d.Methods[verb] = md
	}
	return d, nil
}

func optionalFragment(m map[string]any, key string) (Fragment, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	return ParseFragment(raw)
}

func parseArgs(raw any) Args {
	var a Args
	m, ok := asMap(raw)
	if !ok {
		return a
	}
	a.Description, _ = m["description"].(string)
	props, ok := asMap(m["properties"])
	if !ok {
		return a
	}
	a.Properties = make(map[string]map[string]any, len(props))
	for name, v := range props {
		if pm, ok := asMap(v); ok {
			a.Properties[name] = pm
		}
	}
	return a
}
