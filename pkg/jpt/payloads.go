package jpt

import (
	"sort"

	"github.com/certen/jwp/internal/jwperr"
	"github.com/certen/jwp/pkg/codec"
)

// Disclosure tags one payload entry's visibility in a presented JWP.
type Disclosure int

const (
	Disclosed Disclosure = iota
	Undisclosed
	// ProofMethods is reserved per spec and never produced by this core.
	// ToMessageBytes returns KindNotImplemented for an entry carrying it,
	// so the engine's Sign, Verify and ProofGen reject it; ProofVerify
	// hashes only Disclosed entries and counts it as a hidden one.
	ProofMethods
)

// PayloadEntry pairs one claim's JSON value with its disclosure tag.
type PayloadEntry struct {
	Value      interface{}
	Disclosure Disclosure
}

// Payloads is the ordered sequence of payload entries aligned one-to-one
// with a Claims vector by position.
type Payloads []PayloadEntry

// Values returns the JSON values in order, ignoring disclosure tags.
func (p Payloads) Values() []interface{} {
	out := make([]interface{}, len(p))
	for i, e := range p {
		out[i] = e.Value
	}
	return out
}

// DisclosedIndexes returns the sorted ascending positions of Disclosed
// entries.
func (p Payloads) DisclosedIndexes() []int {
	var out []int
	for i, e := range p {
		if e.Disclosure == Disclosed {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// UndisclosedIndexes returns the sorted ascending positions of entries not
// tagged Disclosed.
func (p Payloads) UndisclosedIndexes() []int {
	var out []int
	for i, e := range p {
		if e.Disclosure != Disclosed {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// DisclosedPayloads returns the subsequence of Disclosed entries,
// preserving order.
func (p Payloads) DisclosedPayloads() Payloads {
	var out Payloads
	for _, e := range p {
		if e.Disclosure == Disclosed {
			out = append(out, e)
		}
	}
	return out
}

// SetUndisclosed marks the entry at i Undisclosed in place.
func (p Payloads) SetUndisclosed(i int) error {
	if i < 0 || i >= len(p) {
		return jwperr.Newf(jwperr.KindIndexOutOfBounds, "payload index %d out of bounds for %d entries", i, len(p))
	}
	p[i].Disclosure = Undisclosed
	return nil
}

// ToMessageBytes returns, for each entry, the canonical JSON byte-encoding
// of its value — the byte vector the proof algorithm hashes to a scalar
// per message.
func (p Payloads) ToMessageBytes() ([][]byte, error) {
	out := make([][]byte, len(p))
	for i, e := range p {
		if e.Disclosure == ProofMethods {
			return nil, jwperr.Newf(jwperr.KindNotImplemented, "payload %d uses the reserved ProofMethods tag", i)
		}
		b, err := codec.MarshalCanonical(e.Value)
		if err != nil {
			return nil, jwperr.Wrapf(err, jwperr.KindSerialization, "canonicalize payload %d", i)
		}
		out[i] = b
	}
	return out, nil
}
