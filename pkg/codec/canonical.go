package codec

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/certen/jwp/internal/jwperr"
)

// ParseJSON decodes raw JSON into a generic value, using json.Number so
// numeric claim values survive a canonicalize round-trip without drifting
// through float64.
func ParseJSON(raw []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindSerialization, "parse json value")
	}
	return v, nil
}

// CanonicalizeJSON re-encodes raw JSON with object keys sorted at every
// level; array order is preserved. This is the byte sequence the BBS
// primitive hashes for a disclosed payload value.
func CanonicalizeJSON(raw []byte) ([]byte, error) {
	v, err := ParseJSON(raw)
	if err != nil {
		return nil, err
	}
	return MarshalCanonical(v)
}

// MarshalCanonical encodes v (typically produced by ParseJSON) with object
// keys sorted at every level.
func MarshalCanonical(v interface{}) ([]byte, error) {
	out, err := json.Marshal(canonicalizeValue(v))
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindSerialization, "marshal canonical json")
	}
	return out, nil
}

func canonicalizeValue(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ordered := make(orderedObject, 0, len(vv))
		for _, k := range keys {
			ordered = append(ordered, orderedField{key: k, value: canonicalizeValue(vv[k])})
		}
		return ordered
	case []interface{}:
		out := make([]interface{}, len(vv))
		for i, e := range vv {
			out[i] = canonicalizeValue(e)
		}
		return out
	default:
		return vv
	}
}

// orderedField and orderedObject implement json.Marshaler so a sorted key
// set can be emitted without round-tripping through a Go map (which would
// re-randomize iteration order).
type orderedField struct {
	key   string
	value interface{}
}

type orderedObject []orderedField

func (o orderedObject) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, f := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		keyBytes, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		valBytes, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, keyBytes...)
		buf = append(buf, ':')
		buf = append(buf, valBytes...)
	}
	buf = append(buf, '}')
	return buf, nil
}
