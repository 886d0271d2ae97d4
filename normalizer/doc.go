// Package normalizer rewrites parsed describe fragments into normalized types
// and registers the object definitions it discovers.
//
// The describe dialect is loose: types may be lists, objects may lack a type
// or properties, scalars use spellings such as "int" or "integer 0 - 10", and
// enums carry nulls and "@DEFAULT" sentinels. The normalizer corrects these
// in the output, records a warning for each correction, and fails the
// endpoint only when a schema cannot be interpreted at all (an array whose
// items are neither a schema nor a type name, or a non-object where an object
// is required).
//
// Object definitions are named by concatenating a namespace and an object
// name. Nested objects use the enclosing definition name as namespace unless
// their title-cased property name matches the enclosing object's name (in
// singular or plural form), in which case the enclosing namespace is reused to
// avoid names like NfsExportsExport.
//
// Known upstream schema bugs are corrected by a [Fixups] collaborator before
// an object is normalized; see package quirks for the default catalog.
package normalizer
