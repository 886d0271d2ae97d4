// Package swagger models the Swagger 2.0 document produced by the compiler.
//
// Only the parts of Swagger 2.0 the compiler emits are modeled: paths with
// get/put/post/delete operations, query, path and body parameters, responses
// and object definitions that may extend one another through allOf.
//
// Documents serialize to JSON or YAML with [Marshal]:
//
//	data, err := swagger.Marshal(doc, swagger.FormatYAML)
//
// [Validate] checks internal consistency (every $ref resolves, every path
// template has a matching path parameter, operation IDs are unique) and then
// converts the document to OpenAPI 3 with kin-openapi and runs its validator.
package swagger
