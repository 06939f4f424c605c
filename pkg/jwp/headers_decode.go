package jwp

import (
	"encoding/json"

	"github.com/certen/jwp/internal/jwperr"
)

// DecodeIssuerHeader parses header octets into an IssuerProtectedHeader.
// Field order in raw is irrelevant here; only Encode's output order
// matters for signature verification.
func DecodeIssuerHeader(raw []byte) (*IssuerProtectedHeader, error) {
	var j issuerHeaderJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindSerialization, "decode issuer protected header")
	}
	return &IssuerProtectedHeader{
		Typ:      j.Typ,
		Alg:      j.Alg,
		Kid:      j.Kid,
		Cid:      j.Cid,
		Claims:   j.Claims,
		Crit:     j.Crit,
		Iss:      j.Iss,
		ProofKey: j.ProofKey,
	}, nil
}

// DecodePresentationHeader parses header octets into a
// PresentationProtectedHeader.
func DecodePresentationHeader(raw []byte) (*PresentationProtectedHeader, error) {
	var j presentationHeaderJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindSerialization, "decode presentation protected header")
	}
	return &PresentationProtectedHeader{
		Alg:             j.Alg,
		Kid:             j.Kid,
		Aud:             j.Aud,
		Nonce:           j.Nonce,
		Typ:             j.Typ,
		Crit:            j.Crit,
		Iss:             j.Iss,
		PresentationKey: j.PresentationKey,
	}, nil
}
