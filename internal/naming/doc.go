// Package naming derives API, namespace, object, parameter and path names from
// PAPI endpoint URIs.
//
// All functions are pure. Segments are the URI path elements after the leading
// version, with parameter placeholders written as "<NAME>" or "<NAME*>":
//
//	api, ns, obj := naming.Names([]string{"protocols", "nfs", "exports"})
//	// "Protocols", "Nfs", "Exports"
//
//	one, used := naming.Singular("Exports", "Item")
//	// "Export", false
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
