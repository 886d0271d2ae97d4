// Package compiler turns a PAPI describe catalog into a Swagger 2.0 document.
//
// A compilation selects one URI per endpoint from the catalog directory,
// pairs collections with their items, and builds the path items and object
// definitions of every pair in order. Each run owns its definition registry;
// nothing is shared between runs, so separate Compilers (or separate calls to
// Compile) may run concurrently.
//
// # Quick Start
//
//	cat, err := papi.LoadCatalog("describe.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	c, err := compiler.New(compiler.WithLogger(papi.NewSlogAdapter(slog.Default())))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := c.Compile(cat)
//	if err != nil {
//		log.Fatal(err) // duplicate operation identity
//	}
//	data, _ := swagger.Marshal(result.Document, swagger.FormatJSON)
//
// # Errors
//
// Irregular schemas are corrected and reported in Result.Issues. An endpoint
// that cannot be compiled is left out of the document and listed in
// Result.Failed; the run continues. Two endpoints that map to the same
// operation identity abort the run with an error matching
// oaserrors.ErrDuplicateOperation.
//
// # Definition order
//
// Definitions are deduplicated and extended in the order endpoints are
// processed. Unless disabled with WithRebase(false), a second pass over the
// finished registry rewrites every definition that extends another one as an
// allOf extension, so the result does not depend on that order.
package compiler
