package swagger

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// MarshalJSON flattens Extra into the parameter object, since encoding/json
// has no equivalent of yaml:",inline".
func (p *Parameter) MarshalJSON() ([]byte, error) {
	type alias Parameter
	if len(p.Extra) == 0 {
		return json.Marshal((*alias)(p))
	}

	data, err := json.Marshal((*alias)(p))
	if err != nil {
		return nil, err
	}
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	for k, v := range p.Extra {
		if _, known := m[k]; !known {
			m[k] = v
		}
	}
	return json.Marshal(m)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
