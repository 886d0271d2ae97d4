// Package isilonsdk compiles the OneFS PAPI "describe" metadata of a cluster into a
// Swagger 2.0 API description.
//
// The compiler reads a catalog: the endpoint directory reported by
// /platform/?describe&list&json together with the describe document of every endpoint.
// It selects the highest version of every logical resource, pairs collection endpoints
// with their item endpoints, and turns each pair into Swagger path items. Every schema
// fragment it meets is normalized into a named object definition that is deduplicated
// against what was already emitted, or declared as an allOf extension of it.
//
// # Packages
//
//   - papi: catalog loading, endpoint descriptors and the schema fragment model
//   - resolver: version selection, collection/item pairing and processing order
//   - normalizer: fragment to definition normalization
//   - registry: definition interning, extension synthesis and the rebase pass
//   - quirks: corrections for known upstream schema bugs
//   - builder: HTTP operations for a resolved endpoint pair
//   - compiler: a single compilation run and the output document envelope
//   - swagger: the output document model, marshaling and validation
//   - oaserrors: structured error types
//
// # Quick Start
//
//	cat, err := papi.LoadCatalog("describe.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	c, err := compiler.New(compiler.WithLogger(papi.NewSlogAdapter(nil)))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := c.Compile(cat)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, err := swagger.Marshal(result.Document, swagger.FormatJSON)
//
// # Command Line
//
// The papi2oas command wraps the library:
//
//	papi2oas compile -o swagger.json describe.json
//	papi2oas resolve describe.json
//	papi2oas mcp
//
// A compilation run is single threaded. Definitions are interned in the order the
// endpoints are processed, so the compiler always processes a resource's creation
// schema before its item schemas. Separate runs share no state and may execute
// concurrently.
package isilonsdk
