package codec

import "encoding/json"

// HeaderField is one optional-or-required member of a protected header,
// in the exact position it must appear at in the encoded octets.
type HeaderField struct {
	Name    string
	Value   interface{}
	Present bool
}

// EncodeOrderedObject emits a JSON object with members in exactly the order
// given, omitting any field marked !Present, with no inserted whitespace.
// This is the header encoder spec.md requires: callers must never run a
// header through json.Marshal on a struct or map, since neither guarantees
// field order across encoder versions.
func EncodeOrderedObject(fields []HeaderField) ([]byte, error) {
	buf := []byte{'{'}
	first := true
	for _, f := range fields {
		if !f.Present {
			continue
		}
		keyBytes, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		valBytes, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf = append(buf, keyBytes...)
		buf = append(buf, ':')
		buf = append(buf, valBytes...)
	}
	buf = append(buf, '}')
	return buf, nil
}
