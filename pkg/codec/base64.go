// Package codec implements the two byte-encodings the JWP/JPT compact form
// depends on: URL-safe unpadded base64, and a stable JSON byte-encoder used
// both for general claim values and, via EncodeOrderedObject, for protected
// headers whose exact octets the proof algorithm signs.
package codec

import (
	"encoding/base64"

	"github.com/certen/jwp/internal/jwperr"
)

// B64URLEncode encodes data using the URL-safe alphabet with no padding.
func B64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// B64URLDecode decodes a base64url-nopad string, rejecting non-alphabet
// characters and non-canonical trailing bits (the latter through the
// encoding's Strict mode).
func B64URLDecode(s string) ([]byte, error) {
	out, err := base64.RawURLEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindSerialization, "base64url decode")
	}
	return out, nil
}
