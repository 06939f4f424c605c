// Package jwp implements the Issued/Presented JWP state machine: the
// protected headers, the algorithm dispatcher, and the builders/decoders
// that turn claims and a key into a compact token and back.
package jwp

import (
	"github.com/certen/jwp/pkg/codec"
	"github.com/certen/jwp/pkg/jwa"
	"github.com/certen/jwp/pkg/jwk"
)

// IssuerProtectedHeader carries the fields an issuer binds into an Issued
// JWP. Only Alg is required; every other field is optional.
type IssuerProtectedHeader struct {
	Typ      string
	Alg      jwa.IssuanceAlg
	Kid      string
	Cid      string
	Claims   []string
	Crit     []string
	Iss      string
	ProofKey *jwk.Jwk
}

// Encode produces the header's canonical octets in declared field order:
// typ, alg, kid, cid, claims, crit, iss, proof_key. Any deviation between
// the bytes the issuer signs and the bytes the verifier recomputes breaks
// verification, so this must be the only path that serializes a header.
func (h *IssuerProtectedHeader) Encode() ([]byte, error) {
	fields := []codec.HeaderField{
		{Name: "typ", Value: h.Typ, Present: h.Typ != ""},
		{Name: "alg", Value: h.Alg, Present: true},
		{Name: "kid", Value: h.Kid, Present: h.Kid != ""},
		{Name: "cid", Value: h.Cid, Present: h.Cid != ""},
		{Name: "claims", Value: h.Claims, Present: h.Claims != nil},
		{Name: "crit", Value: h.Crit, Present: len(h.Crit) > 0},
		{Name: "iss", Value: h.Iss, Present: h.Iss != ""},
		{Name: "proof_key", Value: h.ProofKey, Present: h.ProofKey != nil},
	}
	return codec.EncodeOrderedObject(fields)
}

// issuerHeaderJSON mirrors IssuerProtectedHeader's field set for decode,
// where json.Unmarshal's field-order independence is exactly what is
// wanted: decode does not need to reproduce any particular byte order,
// only Encode does.
type issuerHeaderJSON struct {
	Typ      string          `json:"typ,omitempty"`
	Alg      jwa.IssuanceAlg `json:"alg"`
	Kid      string          `json:"kid,omitempty"`
	Cid      string          `json:"cid,omitempty"`
	Claims   []string        `json:"claims,omitempty"`
	Crit     []string        `json:"crit,omitempty"`
	Iss      string          `json:"iss,omitempty"`
	ProofKey *jwk.Jwk        `json:"proof_key,omitempty"`
}

// PresentationProtectedHeader carries the fields a holder binds into a
// Presented JWP.
type PresentationProtectedHeader struct {
	Alg             jwa.PresentationAlg
	Kid             string
	Aud             string
	Nonce           string
	Typ             string
	Crit            []string
	Iss             string
	PresentationKey *jwk.Jwk
}

// Encode produces the header's canonical octets in declared field order:
// alg, kid, aud, nonce, typ, crit, iss, presentation_key.
func (h *PresentationProtectedHeader) Encode() ([]byte, error) {
	fields := []codec.HeaderField{
		{Name: "alg", Value: h.Alg, Present: true},
		{Name: "kid", Value: h.Kid, Present: h.Kid != ""},
		{Name: "aud", Value: h.Aud, Present: h.Aud != ""},
		{Name: "nonce", Value: h.Nonce, Present: h.Nonce != ""},
		{Name: "typ", Value: h.Typ, Present: h.Typ != ""},
		{Name: "crit", Value: h.Crit, Present: len(h.Crit) > 0},
		{Name: "iss", Value: h.Iss, Present: h.Iss != ""},
		{Name: "presentation_key", Value: h.PresentationKey, Present: h.PresentationKey != nil},
	}
	return codec.EncodeOrderedObject(fields)
}

type presentationHeaderJSON struct {
	Alg             jwa.PresentationAlg `json:"alg"`
	Kid             string              `json:"kid,omitempty"`
	Aud             string              `json:"aud,omitempty"`
	Nonce           string              `json:"nonce,omitempty"`
	Typ             string              `json:"typ,omitempty"`
	Crit            []string            `json:"crit,omitempty"`
	Iss             string              `json:"iss,omitempty"`
	PresentationKey *jwk.Jwk            `json:"presentation_key,omitempty"`
}
