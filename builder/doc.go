// Package builder turns resolved endpoint pairs into Swagger path items.
//
// A pair is a collection endpoint, its item endpoint, or both. The collection
// becomes the path /<basePath>/<version>/<segments> and the item becomes the
// same path plus "/{<ItemId>}". Operations are built in a fixed order so that
// creation schemas are registered before the item schemas that extend them:
//
//	base POST (create), base GET (list, or get for singletons), base PUT (update),
//	base DELETE (delete), item PUT, item DELETE, item GET, item POST
//
// Every operation is tagged with the API name, carries the verb's query
// arguments, a body parameter when the verb takes one, path parameters for
// every placeholder in the URI, a 200 response (or 204 when the verb returns
// nothing) and a default Error response.
//
// Each endpoint is built inside an error boundary: a schema that cannot be
// normalized fails only that endpoint, whose definitions are rolled back.
// Two pairs mapping to the same (api, namespace, object) identity abort the
// run with *oaserrors.DuplicateOperationError.
package builder
