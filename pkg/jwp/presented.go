package jwp

import (
	"strings"

	"github.com/certen/jwp/internal/jwperr"
	"github.com/certen/jwp/pkg/codec"
	"github.com/certen/jwp/pkg/jpt"
	"github.com/certen/jwp/pkg/jwk"
)

// PresentedJwp is a validated presented-form JWP: some payloads hidden,
// proof bytes verified as a selective-disclosure proof over the disclosed
// subset.
type PresentedJwp struct {
	IssuerHeader       *IssuerProtectedHeader
	PresentationHeader *PresentationProtectedHeader
	Payloads           jpt.Payloads
	Proof              []byte
}

// PresentedJwpPending is a decoded-but-unverified presented JWP.
type PresentedJwpPending struct {
	issuerHeader       *IssuerProtectedHeader
	presentationHeader *PresentationProtectedHeader
	payloads           jpt.Payloads
	proof              []byte
}

// PresentedJwpBuilder derives a presentation from a verified IssuedJwp. A
// verified IssuedJwp is the only legal seed; there is no constructor that
// accepts an IssuedJwpPending.
type PresentedJwpBuilder struct {
	issuerHeader *IssuerProtectedHeader
	issuerProof  []byte
	payloads     jpt.Payloads
	presHeader   *PresentationProtectedHeader
}

// NewPresentedJwpBuilder starts a presentation from a verified issued JWP,
// copying its payloads so selective disclosure here does not mutate the
// issued form.
func NewPresentedJwpBuilder(issued *IssuedJwp) *PresentedJwpBuilder {
	payloads := make(jpt.Payloads, len(issued.Payloads))
	copy(payloads, issued.Payloads)
	return &PresentedJwpBuilder{
		issuerHeader: issued.Header,
		issuerProof:  issued.Proof,
		payloads:     payloads,
	}
}

// WithPresentationHeader sets the presentation protected header.
func (b *PresentedJwpBuilder) WithPresentationHeader(h *PresentationProtectedHeader) *PresentedJwpBuilder {
	b.presHeader = h
	return b
}

// SetUndisclosed marks claimName's payload Undisclosed, looking up its
// index by name in the issuer header's sealed claims vector.
func (b *PresentedJwpBuilder) SetUndisclosed(claimName string) error {
	idx := jpt.Claims(b.issuerHeader.Claims).IndexOf(claimName)
	if idx < 0 {
		return jwperr.Newf(jwperr.KindSelectiveDisclosure, "claim %q not found", claimName)
	}
	return b.payloads.SetUndisclosed(idx)
}

// Build derives the selective-disclosure proof and returns the presented
// JWP. pkJwk must be the public key matching the issuer who built the
// seed IssuedJwp.
func (b *PresentedJwpBuilder) Build(engine *Engine, pkJwk *jwk.Jwk) (*PresentedJwp, error) {
	if b.issuerHeader == nil {
		return nil, jwperr.Incomplete(jwperr.ReasonNoIssuerHeader)
	}
	if b.presHeader == nil {
		return nil, jwperr.Incomplete(jwperr.ReasonNoPresentationHeader)
	}
	if pkJwk == nil {
		return nil, jwperr.Incomplete(jwperr.ReasonNoJwk)
	}

	issuerHeaderOctets, err := b.issuerHeader.Encode()
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindSerialization, "encode issuer header")
	}
	presHeaderOctets, err := b.presHeader.Encode()
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindSerialization, "encode presentation header")
	}

	proof, err := engine.ProofGen(b.presHeader.Alg, pkJwk, b.issuerProof, issuerHeaderOctets, presHeaderOctets, b.payloads)
	if err != nil {
		return nil, err
	}

	return &PresentedJwp{
		IssuerHeader:       b.issuerHeader,
		PresentationHeader: b.presHeader,
		Payloads:           b.payloads,
		Proof:              proof,
	}, nil
}

// Encode produces the compact presented token H_i.H_p.P.S.
func (j *PresentedJwp) Encode() (string, error) {
	issuerHeaderOctets, err := j.IssuerHeader.Encode()
	if err != nil {
		return "", jwperr.Wrap(err, jwperr.KindSerialization, "encode issuer header")
	}
	presHeaderOctets, err := j.PresentationHeader.Encode()
	if err != nil {
		return "", jwperr.Wrap(err, jwperr.KindSerialization, "encode presentation header")
	}
	payloadSegment, err := encodePayloadSegment(j.Payloads)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{
		codec.B64URLEncode(issuerHeaderOctets),
		codec.B64URLEncode(presHeaderOctets),
		payloadSegment,
		codec.B64URLEncode(j.Proof),
	}, "."), nil
}

// DecodePresentedJwp splits a compact presented token into a pending,
// unverified form.
func DecodePresentedJwp(compact string) (*PresentedJwpPending, error) {
	parts := strings.Split(compact, ".")
	if len(parts) != 4 {
		return nil, jwperr.Newf(jwperr.KindInvalidPresentedJwp, "compact presented token has %d segments, want 4", len(parts))
	}

	issuerHeaderOctets, err := codec.B64URLDecode(parts[0])
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindInvalidPresentedJwp, "decode issuer header segment")
	}
	issuerHeader, err := DecodeIssuerHeader(issuerHeaderOctets)
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindInvalidPresentedJwp, "parse issuer header")
	}

	presHeaderOctets, err := codec.B64URLDecode(parts[1])
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindInvalidPresentedJwp, "decode presentation header segment")
	}
	presHeader, err := DecodePresentationHeader(presHeaderOctets)
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindInvalidPresentedJwp, "parse presentation header")
	}

	payloads, err := decodePayloadSegment(parts[2], len(issuerHeader.Claims))
	if err != nil {
		return nil, err
	}

	proof, err := codec.B64URLDecode(parts[3])
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindInvalidPresentedJwp, "decode proof segment")
	}

	return &PresentedJwpPending{
		issuerHeader:       issuerHeader,
		presentationHeader: presHeader,
		payloads:           payloads,
		proof:              proof,
	}, nil
}

// Verify recomputes both header octets canonically and checks the
// selective-disclosure proof against pkJwk.
func (p *PresentedJwpPending) Verify(engine *Engine, pkJwk *jwk.Jwk) (*PresentedJwp, error) {
	issuerHeaderOctets, err := p.issuerHeader.Encode()
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindSerialization, "encode issuer header")
	}
	presHeaderOctets, err := p.presentationHeader.Encode()
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindSerialization, "encode presentation header")
	}
	if err := engine.ProofVerify(p.presentationHeader.Alg, pkJwk, p.proof, issuerHeaderOctets, presHeaderOctets, p.payloads); err != nil {
		return nil, err
	}
	return &PresentedJwp{
		IssuerHeader:       p.issuerHeader,
		PresentationHeader: p.presentationHeader,
		Payloads:           p.payloads,
		Proof:              p.proof,
	}, nil
}
