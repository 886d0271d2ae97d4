// Package quirks corrects known bugs in the schemas OneFS reports through
// describe.
//
// Each rule matches definitions by name and rewrites one malformed shape:
// misspelled description keys, properties placed next to "properties"
// instead of inside it, arrays that declare "properties" instead of "items",
// draft-3 required flags on array items, duplicate enum members. The rules
// run on a private copy of the object about to be registered, before it is
// normalized.
//
// Use [Default] for the full catalog, or build a [Catalog] from selected
// rules.
package quirks
