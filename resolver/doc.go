// Package resolver turns a PAPI directory listing into an ordered list of
// collection/item endpoint pairs.
//
// The directory lists every URI the cluster serves, once per protocol
// version, with all versions of the same logical resource adjacent:
//
//	/1/protocols/nfs/exports
//	/3/protocols/nfs/exports
//	/3/protocols/nfs/exports/<EID>
//
// Resolve keeps the highest integer version of each resource, drops
// excluded URIs, pairs each item URI (one ending in a parameter placeholder)
// with its collection and sorts the result so that a collection precedes its
// sub-resources:
//
//	res := resolver.Resolve(catalog.Directory, resolver.DefaultExclusions(catalog.Version))
//	for _, p := range res.Pairs {
//		fmt.Println(p.Base, p.Item)
//	}
//
// Version segments that are floats ("2.1") are skipped with an informational
// issue. Segments that are neither integers nor floats produce a
// [oaserrors.VersionError] in Result.Errors and are skipped; resolution of the
// remaining URIs continues.
package resolver
