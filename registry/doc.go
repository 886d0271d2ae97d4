// Package registry interns normalized object definitions for one compilation
// run.
//
// Every object schema the normalizer discovers is offered to
// [Registry.InternOrExtend] as a candidate [Definition]. The registry then
//
//  1. returns the name of an existing definition with the same flattened
//     properties and required set,
//  2. or, when an existing definition's properties are a structural subset of
//     the candidate's, registers the candidate as an extension of it (an
//     allOf in the output) carrying only the extra properties,
//  3. or registers the candidate as-is.
//
// Proposed names that are already taken get a disambiguation suffix appended
// until they are free.
//
// Because step 2 only sees definitions registered earlier, the outcome depends
// on processing order. [Registry.Rebase] removes that dependency: run after
// every endpoint has been processed, it rewrites each root definition that
// structurally extends another root definition as an extension of the largest
// such definition.
//
// A Registry is not safe for concurrent use. Create one per run.
package registry
