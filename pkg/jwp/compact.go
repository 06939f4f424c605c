package jwp

import (
	"strings"

	"github.com/certen/jwp/internal/jwperr"
	"github.com/certen/jwp/pkg/codec"
	"github.com/certen/jwp/pkg/jpt"
)

// encodePayloadSegment builds the '~'-joined payload segment of a compact
// token: each Disclosed entry contributes b64u(canonical_json(value)),
// each Undisclosed entry contributes an empty token.
func encodePayloadSegment(payloads jpt.Payloads) (string, error) {
	tokens := make([]string, len(payloads))
	for i, p := range payloads {
		if p.Disclosure != jpt.Disclosed {
			tokens[i] = ""
			continue
		}
		raw, err := codec.MarshalCanonical(p.Value)
		if err != nil {
			return "", jwperr.Wrapf(err, jwperr.KindSerialization, "encode payload %d", i)
		}
		tokens[i] = codec.B64URLEncode(raw)
	}
	return strings.Join(tokens, "~"), nil
}

// decodePayloadSegment parses a '~'-joined payload segment into exactly
// expectedCount entries. An empty token decodes to (null, Undisclosed); a
// non-empty token decodes to (parsed JSON value, Disclosed).
func decodePayloadSegment(segment string, expectedCount int) (jpt.Payloads, error) {
	tokens := strings.Split(segment, "~")
	if len(tokens) != expectedCount {
		return nil, jwperr.Newf(jwperr.KindInvalidIssuedJwp, "payload segment has %d entries, want %d", len(tokens), expectedCount)
	}
	out := make(jpt.Payloads, expectedCount)
	for i, tok := range tokens {
		if tok == "" {
			out[i] = jpt.PayloadEntry{Value: nil, Disclosure: jpt.Undisclosed}
			continue
		}
		raw, err := codec.B64URLDecode(tok)
		if err != nil {
			return nil, jwperr.Wrapf(err, jwperr.KindInvalidIssuedJwp, "decode payload token %d", i)
		}
		v, err := codec.ParseJSON(raw)
		if err != nil {
			return nil, jwperr.Wrapf(err, jwperr.KindInvalidIssuedJwp, "parse payload token %d", i)
		}
		out[i] = jpt.PayloadEntry{Value: v, Disclosure: jpt.Disclosed}
	}
	return out, nil
}
