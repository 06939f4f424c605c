// Package flatten converts hierarchical JSON claim sets into an ordered
// sequence of dotted-path leaves and back, the bijection the proof engine's
// message vector is built from. Iteration order must match the depth-first
// order leaves appear in the source document, which rules out Go's plain
// map[string]interface{} (randomized key order on range): this package
// parses JSON directly off json.Decoder tokens into an order-preserving
// tree instead of unmarshaling into maps.
package flatten

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/certen/jwp/internal/jwperr"
)

// Kind distinguishes the three shapes a parsed JSON value can take.
type Kind int

const (
	KindLeaf Kind = iota
	KindObject
	KindArray
)

// Field is one member of an ordered object, in source order.
type Field struct {
	Key   string
	Value Value
}

// Value is a parsed JSON value that remembers object member order.
type Value struct {
	Kind   Kind
	Leaf   interface{} // string, json.Number, bool, nil for KindLeaf
	Object []Field     // for KindObject, in source order
	Array  []Value     // for KindArray
}

// Parse decodes raw JSON into an order-preserving Value tree.
func Parse(raw []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return Value{}, jwperr.Wrap(err, jwperr.KindFlattening, "parse json claims")
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return parseFromToken(dec, tok)
}

func parseFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return Value{}, jwperr.Newf(jwperr.KindFlattening, "unexpected json delimiter %q", t)
		}
	default:
		return Value{Kind: KindLeaf, Leaf: tok}, nil
	}
}

func parseObject(dec *json.Decoder) (Value, error) {
	var fields []Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, jwperr.New(jwperr.KindFlattening, "object key is not a string")
		}
		val, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		fields = append(fields, Field{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil && err != io.EOF { // consume closing '}'
		return Value{}, err
	}
	return Value{Kind: KindObject, Object: fields}, nil
}

func parseArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, val)
	}
	if _, err := dec.Token(); err != nil && err != io.EOF { // consume closing ']'
		return Value{}, err
	}
	return Value{Kind: KindArray, Array: items}, nil
}

// ToInterface converts a Value back into plain Go values suitable for
// json.Marshal (map[string]interface{}, []interface{}, or a scalar). Object
// key order is not preserved here; downstream canonicalization re-sorts
// keys anyway.
func (v Value) ToInterface() interface{} {
	switch v.Kind {
	case KindObject:
		m := make(map[string]interface{}, len(v.Object))
		for _, f := range v.Object {
			m[f.Key] = f.Value.ToInterface()
		}
		return m
	case KindArray:
		out := make([]interface{}, len(v.Array))
		for i, e := range v.Array {
			out[i] = e.ToInterface()
		}
		return out
	default:
		return v.Leaf
	}
}
