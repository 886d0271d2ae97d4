package registry

import (
	"fmt"
	"hash"
	"hash/fnv"
	"maps"
	"slices"
	"strconv"
)

// hashShape computes a structural hash of a flattened definition. Equal
// shapes hash equally; collisions are resolved by a full comparison.
func hashShape(s shape) uint64 {
	h := fnv.New64a()
	writeString(h, "required:")
	for _, name := range s.required {
		writeString(h, name)
	}
	writeString(h, "properties:")
	for _, name := range slices.Sorted(maps.Keys(s.props)) {
		writeString(h, name)
		hashType(h, s.props[name])
	}
	return h.Sum64()
}

func hashType(h hash.Hash64, t Type) {
	writeString(h, "kind:"+strconv.Itoa(int(t.Kind)))
	writeString(h, t.Scalar)
	writeString(h, t.Ref)
	writeString(h, t.Description)
	writeString(h, t.Format)
	writeString(h, t.Pattern)
	for _, v := range t.Enum {
		writeString(h, fmt.Sprintf("%v", v))
	}
	if t.Items != nil {
		writeString(h, "items:")
		hashType(h, *t.Items)
	}
}

func writeString(h hash.Hash64, s string) {
	_, _ = h.Write([]byte(s))
	_, _ = h.Write([]byte{0})
}
