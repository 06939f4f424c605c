package flatten

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/certen/jwp/internal/jwperr"
)

// Entry is one leaf of a flattened claim set: a dotted path paired with its
// JSON leaf value.
type Entry struct {
	Path  string
	Value interface{}
}

// Flatten walks v depth-first and returns its leaves in encounter order.
// Empty objects and empty arrays are dropped entirely, matching the
// round-trip contract with Unflatten.
func Flatten(v Value) []Entry {
	var out []Entry
	flattenInto(v, "", &out)
	return out
}

func flattenInto(v Value, prefix string, out *[]Entry) {
	switch v.Kind {
	case KindObject:
		for _, f := range v.Object {
			childPath := f.Key
			if prefix != "" {
				childPath = prefix + "." + f.Key
			}
			flattenInto(f.Value, childPath, out)
		}
	case KindArray:
		for i, e := range v.Array {
			childPath := fmt.Sprintf("%s[%d]", prefix, i)
			flattenInto(e, childPath, out)
		}
	default:
		if prefix == "" {
			return
		}
		*out = append(*out, Entry{Path: prefix, Value: v.Leaf})
	}
}

// pathSegment is one step of a dotted path: a plain object key, or an array
// index carried alongside the key it follows.
type pathSegment struct {
	key      string
	index    int
	hasIndex bool
}

func splitPath(path string) ([]pathSegment, error) {
	var segs []pathSegment
	for _, rawSeg := range strings.Split(path, ".") {
		key := rawSeg
		var indices []int
		for {
			open := strings.IndexByte(key, '[')
			if open < 0 {
				break
			}
			closeIdx := strings.IndexByte(key[open:], ']')
			if closeIdx < 0 {
				return nil, jwperr.Newf(jwperr.KindFlattening, "malformed path segment %q", rawSeg)
			}
			closeIdx += open
			idx, err := strconv.Atoi(key[open+1 : closeIdx])
			if err != nil {
				return nil, jwperr.Wrapf(err, jwperr.KindFlattening, "malformed array index in %q", rawSeg)
			}
			indices = append(indices, idx)
			key = key[:open] + key[closeIdx+1:]
		}
		segs = append(segs, pathSegment{key: key})
		for _, idx := range indices {
			segs = append(segs, pathSegment{index: idx, hasIndex: true})
		}
	}
	return segs, nil
}

// Unflatten reconstructs a nested JSON-compatible value (map[string]any,
// []any, and scalars) from an ordered entry list produced by Flatten.
func Unflatten(entries []Entry) (interface{}, error) {
	var root interface{}
	for _, e := range entries {
		segs, err := splitPath(e.Path)
		if err != nil {
			return nil, err
		}
		root, err = setPath(root, segs, e.Value)
		if err != nil {
			return nil, jwperr.Wrapf(err, jwperr.KindFlattening, "unflatten path %q", e.Path)
		}
	}
	if root == nil {
		root = map[string]interface{}{}
	}
	return root, nil
}

func setPath(node interface{}, segs []pathSegment, leaf interface{}) (interface{}, error) {
	if len(segs) == 0 {
		return leaf, nil
	}
	seg := segs[0]
	rest := segs[1:]

	if seg.hasIndex {
		arr, ok := node.([]interface{})
		if node == nil {
			arr = nil
		} else if !ok {
			return nil, jwperr.New(jwperr.KindFlattening, "path conflict: expected array")
		}
		for len(arr) <= seg.index {
			arr = append(arr, nil)
		}
		child, err := setPath(arr[seg.index], rest, leaf)
		if err != nil {
			return nil, err
		}
		arr[seg.index] = child
		return arr, nil
	}

	obj, ok := node.(map[string]interface{})
	if node == nil {
		obj = map[string]interface{}{}
	} else if !ok {
		return nil, jwperr.New(jwperr.KindFlattening, "path conflict: expected object")
	}
	child, err := setPath(obj[seg.key], rest, leaf)
	if err != nil {
		return nil, err
	}
	obj[seg.key] = child
	return obj, nil
}
