// Package jwa enumerates the issuance and presentation proof algorithms and
// the curves they are compatible with, dispatched by tagged token rather
// than virtual dispatch so that calling an unimplemented variant fails
// loudly instead of silently picking the wrong primitive.
package jwa

import "github.com/certen/jwp/internal/jwperr"

// IssuanceAlg identifies the algorithm an issuer signs a JWP with.
type IssuanceAlg string

// PresentationAlg identifies the algorithm a holder derives a presentation
// proof with.
type PresentationAlg string

// Curve identifies the key's underlying curve/group.
type Curve string

const (
	BBS         IssuanceAlg = "BBS"
	BBSSHAKE256 IssuanceAlg = "BBS-SHAKE256"
	SUES256     IssuanceAlg = "SU-ES256"
	SUES384     IssuanceAlg = "SU-ES384"
	SUES512     IssuanceAlg = "SU-ES512"
	MACH256     IssuanceAlg = "MAC-H256"
	MACH384     IssuanceAlg = "MAC-H384"
	MACH512     IssuanceAlg = "MAC-H512"
	MACK25519   IssuanceAlg = "MAC-K25519"
	MACK448     IssuanceAlg = "MAC-K448"
	MACH256K    IssuanceAlg = "MAC-H256K"
)

const (
	PresBBS         PresentationAlg = PresentationAlg(BBS)
	PresBBSSHAKE256 PresentationAlg = PresentationAlg(BBSSHAKE256)
	PresSUES256     PresentationAlg = PresentationAlg(SUES256)
	PresSUES384     PresentationAlg = PresentationAlg(SUES384)
	PresSUES512     PresentationAlg = PresentationAlg(SUES512)
	PresMACH256     PresentationAlg = PresentationAlg(MACH256)
	PresMACH384     PresentationAlg = PresentationAlg(MACH384)
	PresMACH512     PresentationAlg = PresentationAlg(MACH512)
	PresMACK25519   PresentationAlg = PresentationAlg(MACK25519)
	PresMACK448     PresentationAlg = PresentationAlg(MACK448)
	PresMACH256K    PresentationAlg = PresentationAlg(MACH256K)
)

// BLS12381G2 is the only curve token the registry currently accepts.
const BLS12381G2 Curve = "BLS12381G2"

var validIssuance = map[IssuanceAlg]bool{
	BBS: true, BBSSHAKE256: true, SUES256: true, SUES384: true, SUES512: true,
	MACH256: true, MACH384: true, MACH512: true, MACK25519: true, MACK448: true, MACH256K: true,
}

var validCurves = map[Curve]bool{BLS12381G2: true}

// ToPresentation maps an issuance algorithm to the presentation algorithm
// used to derive a proof from it. Every family in this registry maps to
// itself.
func (a IssuanceAlg) ToPresentation() PresentationAlg {
	return PresentationAlg(a)
}

// Implemented reports whether the engine has a concrete signer/verifier for
// alg. Only the BBS family is implemented; everything else parses and
// serializes but is reserved.
func (a IssuanceAlg) Implemented() bool {
	return a == BBS || a == BBSSHAKE256
}

// Implemented reports whether the engine has a concrete prover/verifier for
// alg.
func (a PresentationAlg) Implemented() bool {
	return a == PresBBS || a == PresBBSSHAKE256
}

// Valid reports whether a is a recognized issuance algorithm token.
func (a IssuanceAlg) Valid() bool { return validIssuance[a] }

// Valid reports whether a is a recognized presentation algorithm token.
func (a PresentationAlg) Valid() bool { return validIssuance[IssuanceAlg(a)] }

// Check reports whether alg is compatible with curve. Only (BBS,
// BLS12381G2) and (BBS-SHAKE256, BLS12381G2) are compatible; every other
// pairing fails, including algorithms and curves this registry has never
// heard of.
func Check(alg IssuanceAlg, curve Curve) bool {
	if !validCurves[curve] {
		return false
	}
	switch alg {
	case BBS, BBSSHAKE256:
		return curve == BLS12381G2
	default:
		return false
	}
}

// CheckPresentation is Check's counterpart for a presentation algorithm.
func CheckPresentation(alg PresentationAlg, curve Curve) bool {
	return Check(IssuanceAlg(alg), curve)
}

// ParseCurve validates a curve token, returning CurveNotSupported for
// anything unrecognized.
func ParseCurve(tok string) (Curve, error) {
	c := Curve(tok)
	if !validCurves[c] {
		return "", jwperr.Newf(jwperr.KindCurveNotSupported, "unsupported curve %q", tok)
	}
	return c, nil
}
