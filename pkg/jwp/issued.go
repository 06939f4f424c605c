package jwp

import (
	"strings"

	"github.com/google/uuid"

	"github.com/certen/jwp/internal/jwperr"
	"github.com/certen/jwp/pkg/codec"
	"github.com/certen/jwp/pkg/jpt"
	"github.com/certen/jwp/pkg/jwk"
)

// IssuedJwp is a validated issued-form JWP: all payloads Disclosed, proof
// bytes verified against some public key for header.Alg. Only this type
// may seed a PresentedJwpBuilder; an IssuedJwpPending cannot.
type IssuedJwp struct {
	Header   *IssuerProtectedHeader
	Payloads jpt.Payloads
	Proof    []byte
}

// IssuedJwpPending is a decoded-but-unverified issued JWP. Call Verify to
// obtain an IssuedJwp; there is no other way to construct one from decoded
// bytes, which prevents a caller from skipping verification by mistake.
type IssuedJwpPending struct {
	header   *IssuerProtectedHeader
	payloads jpt.Payloads
	proof    []byte
}

// IssuedJwpBuilder assembles an IssuedJwp from a header, hierarchical JSON
// claims, and a private key. Each field is consumed once at Build time.
type IssuedJwpBuilder struct {
	header     *IssuerProtectedHeader
	claimsJSON []byte
	key        *jwk.Jwk
}

// NewIssuedJwpBuilder returns an empty builder.
func NewIssuedJwpBuilder() *IssuedJwpBuilder {
	return &IssuedJwpBuilder{}
}

// WithHeader sets the issuer protected header (minus its claims field,
// which Build stamps in).
func (b *IssuedJwpBuilder) WithHeader(h *IssuerProtectedHeader) *IssuedJwpBuilder {
	b.header = h
	return b
}

// WithClaims sets the hierarchical JSON claim set to flatten and sign.
func (b *IssuedJwpBuilder) WithClaims(raw []byte) *IssuedJwpBuilder {
	b.claimsJSON = raw
	return b
}

// WithJwk sets the private key to sign with.
func (b *IssuedJwpBuilder) WithJwk(j *jwk.Jwk) *IssuedJwpBuilder {
	b.key = j
	return b
}

// Build flattens the claim set, stamps it into the header, signs, and
// returns a fully built IssuedJwp. The issuer is trusted to have supplied
// a matching key, so the result does not need a separate verify step.
func (b *IssuedJwpBuilder) Build(engine *Engine) (*IssuedJwp, error) {
	if b.header == nil {
		return nil, jwperr.Incomplete(jwperr.ReasonNoIssuerHeader)
	}
	if b.claimsJSON == nil {
		return nil, jwperr.Incomplete(jwperr.ReasonNoClaimsAndPayloads)
	}
	if b.key == nil {
		return nil, jwperr.Incomplete(jwperr.ReasonNoJwk)
	}

	claims, payloads, err := jpt.FromJSON(b.claimsJSON)
	if err != nil {
		return nil, err
	}

	header := *b.header
	header.Claims = claims
	if header.Kid == "" {
		header.Kid = uuid.NewString()
	}
	if header.Cid == "" {
		header.Cid = uuid.NewString()
	}

	headerOctets, err := header.Encode()
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindSerialization, "encode issuer header")
	}

	proof, err := engine.Sign(header.Alg, b.key, headerOctets, payloads)
	if err != nil {
		return nil, err
	}

	return &IssuedJwp{Header: &header, Payloads: payloads, Proof: proof}, nil
}

// Encode produces the compact issued token H.P.S.
func (j *IssuedJwp) Encode() (string, error) {
	headerOctets, err := j.Header.Encode()
	if err != nil {
		return "", jwperr.Wrap(err, jwperr.KindSerialization, "encode issuer header")
	}
	payloadSegment, err := encodePayloadSegment(j.Payloads)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{
		codec.B64URLEncode(headerOctets),
		payloadSegment,
		codec.B64URLEncode(j.Proof),
	}, "."), nil
}

// DecodeIssuedJwp splits a compact issued token into a pending, unverified
// form. Call Verify to validate the proof and obtain an IssuedJwp.
func DecodeIssuedJwp(compact string) (*IssuedJwpPending, error) {
	parts := strings.Split(compact, ".")
	if len(parts) != 3 {
		return nil, jwperr.Newf(jwperr.KindInvalidIssuedJwp, "compact issued token has %d segments, want 3", len(parts))
	}

	headerOctets, err := codec.B64URLDecode(parts[0])
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindInvalidIssuedJwp, "decode header segment")
	}
	header, err := DecodeIssuerHeader(headerOctets)
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindInvalidIssuedJwp, "parse issuer header")
	}

	payloads, err := decodePayloadSegment(parts[1], len(header.Claims))
	if err != nil {
		return nil, err
	}

	proof, err := codec.B64URLDecode(parts[2])
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindInvalidIssuedJwp, "decode proof segment")
	}

	return &IssuedJwpPending{header: header, payloads: payloads, proof: proof}, nil
}

// Verify recomputes the header octets canonically and checks the proof
// against pkJwk, returning a validated IssuedJwp on success.
func (p *IssuedJwpPending) Verify(engine *Engine, pkJwk *jwk.Jwk) (*IssuedJwp, error) {
	headerOctets, err := p.header.Encode()
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindSerialization, "encode issuer header")
	}
	if err := engine.Verify(p.header.Alg, pkJwk, p.proof, headerOctets, p.payloads); err != nil {
		return nil, err
	}
	return &IssuedJwp{Header: p.header, Payloads: p.payloads, Proof: p.proof}, nil
}
