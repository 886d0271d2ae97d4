package swagger

import "strings"

// Version is the value of the top-level "swagger" field.
const Version = "2.0"

// DefinitionsPrefix starts every local definition reference.
const DefinitionsPrefix = "#/definitions/"

// URLEncodeExtension marks path parameters that clients must URL-encode.
const URLEncodeExtension = "x-isi-url-encode-path-param"

// Document is a Swagger 2.0 document.
type Document struct {
	Swagger             string                     `yaml:"swagger" json:"swagger"`
	Info                *Info                      `yaml:"info" json:"info"`
	Schemes             []string                   `yaml:"schemes,omitempty" json:"schemes,omitempty"`
	Consumes            []string                   `yaml:"consumes,omitempty" json:"consumes,omitempty"`
	Produces            []string                   `yaml:"produces,omitempty" json:"produces,omitempty"`
	SecurityDefinitions map[string]*SecurityScheme `yaml:"securityDefinitions,omitempty" json:"securityDefinitions,omitempty"`
	Security            []map[string][]string      `yaml:"security,omitempty" json:"security,omitempty"`
	Paths               map[string]*PathItem       `yaml:"paths" json:"paths"`
	Definitions         map[string]*Schema         `yaml:"definitions" json:"definitions"`
}

// Info is the document metadata.
type Info struct {
	Title          string   `yaml:"title" json:"title"`
	Description    string   `yaml:"description,omitempty" json:"description,omitempty"`
	TermsOfService string   `yaml:"termsOfService,omitempty" json:"termsOfService,omitempty"`
	Contact        *Contact `yaml:"contact,omitempty" json:"contact,omitempty"`
	License        *License `yaml:"license,omitempty" json:"license,omitempty"`
	Version        string   `yaml:"version" json:"version"`
}

// Contact information for the API.
type Contact struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	URL   string `yaml:"url,omitempty" json:"url,omitempty"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
}

// License information for the API.
type License struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
}

// SecurityScheme defines a security scheme (only "basic" is emitted).
type SecurityScheme struct {
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// PathItem holds the operations available on a single path.
type PathItem struct {
	Get    *Operation `yaml:"get,omitempty" json:"get,omitempty"`
	Put    *Operation `yaml:"put,omitempty" json:"put,omitempty"`
	Post   *Operation `yaml:"post,omitempty" json:"post,omitempty"`
	Delete *Operation `yaml:"delete,omitempty" json:"delete,omitempty"`
}

// Operations returns the non-nil operations keyed by lower-case method.
func (p *PathItem) Operations() map[string]*Operation {
	ops := make(map[string]*Operation, 4)
	if p == nil {
		return ops
	}
	for method, op := range map[string]*Operation{"get": p.Get, "put": p.Put, "post": p.Post, "delete": p.Delete} {
		if op != nil {
			ops[method] = op
		}
	}
	return ops
}

// Set stores op under the given method. Unknown methods are ignored.
func (p *PathItem) Set(method string, op *Operation) {
	switch strings.ToLower(method) {
	case "get":
		p.Get = op
	case "put":
		p.Put = op
	case "post":
		p.Post = op
	case "delete":
		p.Delete = op
	}
}

// Operation describes a single API operation on a path.
type Operation struct {
	Tags        []string             `yaml:"tags,omitempty" json:"tags,omitempty"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	OperationID string               `yaml:"operationId" json:"operationId"`
	Parameters  []*Parameter         `yaml:"parameters" json:"parameters"`
	Responses   map[string]*Response `yaml:"responses" json:"responses"`
}

// Parameter describes a query, path or body parameter.
type Parameter struct {
	Name        string   `yaml:"name" json:"name"`
	In          string   `yaml:"in" json:"in"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool     `yaml:"required,omitempty" json:"required,omitempty"`
	Schema      *Schema  `yaml:"schema,omitempty" json:"schema,omitempty"`
	Type        string   `yaml:"type,omitempty" json:"type,omitempty"`
	Format      string   `yaml:"format,omitempty" json:"format,omitempty"`
	Items       *Items   `yaml:"items,omitempty" json:"items,omitempty"`
	Default     any      `yaml:"default,omitempty" json:"default,omitempty"`
	Maximum     *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	Minimum     *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	MaxLength   *int64   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength   *int64   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern     string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Enum        []any    `yaml:"enum,omitempty" json:"enum,omitempty"`

	// Extra holds vendor extensions such as x-isi-url-encode-path-param.
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Items describes the element type of an array query parameter.
type Items struct {
	Type   string `yaml:"type" json:"type"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	Items  *Items `yaml:"items,omitempty" json:"items,omitempty"`
	Enum   []any  `yaml:"enum,omitempty" json:"enum,omitempty"`
}

// Response describes a single response of an operation.
type Response struct {
	Description string  `yaml:"description" json:"description"`
	Schema      *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Schema is a Swagger 2.0 schema object.
type Schema struct {
	Ref         string             `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	Type        string             `yaml:"type,omitempty" json:"type,omitempty"`
	Format      string             `yaml:"format,omitempty" json:"format,omitempty"`
	Enum        []any              `yaml:"enum,omitempty" json:"enum,omitempty"`
	Default     any                `yaml:"default,omitempty" json:"default,omitempty"`
	Pattern     string             `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Maximum     *float64           `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	Minimum     *float64           `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	MaxLength   *int64             `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength   *int64             `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxItems    *int64             `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems    *int64             `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems bool               `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`
	Items       *Schema            `yaml:"items,omitempty" json:"items,omitempty"`
	AllOf       []*Schema          `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	Properties  map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required    []string           `yaml:"required,omitempty" json:"required,omitempty"`
}

// RefTo builds a reference to a named definition.
func RefTo(name string) string {
	return DefinitionsPrefix + name
}

// RefName returns the definition name of a local reference, or "" when ref
// does not point into definitions.
func RefName(ref string) string {
	name, ok := strings.CutPrefix(ref, DefinitionsPrefix)
	if !ok {
		return ""
	}
	return name
}

// Refs returns every $ref reachable from s, in traversal order.
func (s *Schema) Refs() []string {
	var refs []string
	var walk func(*Schema)
	walk = func(s *Schema) {
		if s == nil {
			return
		}
		if s.Ref != "" {
			refs = append(refs, s.Ref)
		}
		walk(s.Items)
		for _, sub := range s.AllOf {
			walk(sub)
		}
		for _, name := range sortedKeys(s.Properties) {
			walk(s.Properties[name])
		}
	}
	walk(s)
	return refs
}

// New returns an empty document with the fixed envelope fields set.
func New(info *Info) *Document {
	return &Document{
		Swagger:  Version,
		Info:     info,
		Schemes:  []string{"https"},
		Consumes: []string{"application/json"},
		Produces: []string{"application/json"},
		SecurityDefinitions: map[string]*SecurityScheme{
			"basic_auth": {Type: "basic"},
		},
		Security:    []map[string][]string{{"basic_auth": {}}},
		Paths:       make(map[string]*PathItem),
		Definitions: make(map[string]*Schema),
	}
}
