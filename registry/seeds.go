package registry

import "github.com/Isilon/isilon-sdk/swagger"

// Names of the seed definitions every document carries.
const (
	ErrorDefinition          = "Error"
	CreateResponseDefinition = "CreateResponse"
)

const createResponseIDDescription = "ID of created item that can be used to refer to item in the collection-item resource path."

// DefaultSeeds returns the Error, Empty and CreateResponse definitions.
// limitIDLength keeps the 0..255 length limits on CreateResponse.id; older
// PAPI generations do not declare them.
func DefaultSeeds(limitIDLength bool) []*Definition {
	id := Type{Kind: KindScalar, Scalar: "string", Description: createResponseIDDescription}
	if limitIDLength {
		minLen, maxLen := int64(0), int64(255)
		id.MinLength = &minLen
		id.MaxLength = &maxLen
	}
	code := Scalar("integer")
	code.Format = "int32"

	return []*Definition{
		{
			Name:       ErrorDefinition,
			Properties: map[string]Type{"code": code, "message": Scalar("string")},
			Required:   []string{"code", "message"},
		},
		{Name: EmptyDefinition, Properties: map[string]Type{}},
		{
			Name:       CreateResponseDefinition,
			Properties: map[string]Type{"id": id},
			Required:   []string{"id"},
		},
	}
}

// SeedsFromSchemas converts Swagger definitions into seeds, sorted by name.
func SeedsFromSchemas(schemas map[string]*swagger.Schema) []*Definition {
	out := make([]*Definition, 0, len(schemas))
	for _, name := range sortedNames(schemas) {
		out = append(out, FromSchema(name, schemas[name]))
	}
	return out
}
