// Package jpt holds the Claims/Payloads data model shared by the Issued
// and Presented JWP forms: an ordered claim-name vector and a parallel
// payload vector carrying each entry's disclosure tag.
package jpt

import (
	"github.com/certen/jwp/internal/jwperr"
	"github.com/certen/jwp/pkg/flatten"
)

// Claims is the ordered sequence of claim names produced by flattening; the
// position of a name in this slice is its message index for the proof
// algorithm.
type Claims []string

// IndexOf returns the position of name in c, or -1 if absent.
func (c Claims) IndexOf(name string) int {
	for i, n := range c {
		if n == name {
			return i
		}
	}
	return -1
}

// Equal reports whether two Claims vectors hold the same names in the same
// order.
func (c Claims) Equal(other Claims) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// FromJSON flattens raw hierarchical JSON claims into an ordered Claims
// vector and a matching Payloads vector, every entry starting Disclosed.
func FromJSON(raw []byte) (Claims, Payloads, error) {
	v, err := flatten.Parse(raw)
	if err != nil {
		return nil, nil, jwperr.Wrap(err, jwperr.KindFlattening, "parse claim set")
	}
	entries := flatten.Flatten(v)

	claims := make(Claims, len(entries))
	payloads := make(Payloads, len(entries))
	for i, e := range entries {
		claims[i] = e.Path
		payloads[i] = PayloadEntry{Value: e.Value, Disclosure: Disclosed}
	}
	return claims, payloads, nil
}

// ToJSON reconstructs the original hierarchical claim structure from claims
// and the values carried by payloads, for round-trip and equality checks.
func ToJSON(claims Claims, values []interface{}) (interface{}, error) {
	if len(claims) != len(values) {
		return nil, jwperr.Newf(jwperr.KindFlattening, "claims/values length mismatch: %d vs %d", len(claims), len(values))
	}
	entries := make([]flatten.Entry, len(claims))
	for i := range claims {
		entries[i] = flatten.Entry{Path: claims[i], Value: values[i]}
	}
	return flatten.Unflatten(entries)
}
