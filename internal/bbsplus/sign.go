package bbsplus

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/certen/jwp/internal/jwperr"
)

// commitment folds header and messages into the single G1 accumulator
// point B = P1 + H0*domain + Σ Hi*mi that both Sign and Verify (and the
// proof-gen/verify split of it) are built around.
func commitment(variant HashVariant, header []byte, messages [][]byte) bls12381.G1Affine {
	domain := domainScalar(variant, header)
	acc := addG1(&baseP1, scalarMulG1Ptr(&baseH0, &domain))
	for i, m := range messages {
		s := messageScalar(variant, i, m)
		gen := messageGenerator(i)
		term := scalarMulG1(&gen, &s)
		acc = addG1(&acc, &term)
	}
	return acc
}

func scalarMulG1Ptr(p *bls12381.G1Affine, s *fr.Element) *bls12381.G1Affine {
	out := scalarMulG1(p, s)
	return &out
}

// Sign produces a fixed-length BBS+ signature over header and the ordered
// message vector, using sk/pk encoded as returned by KeyGen.
func Sign(variant HashVariant, sk, pk []byte, header []byte, messages [][]byte) ([]byte, error) {
	if err := Initialize(); err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "initialize bbs+ generators")
	}
	skScalar, err := decodeSecretKey(sk)
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "decode secret key")
	}

	b := commitment(variant, header, messages)

	e, err := randomNonzeroScalar()
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "draw random signature scalar")
	}

	var denom fr.Element
	denom.Add(&e, &skScalar)
	if denom.IsZero() {
		return nil, jwperr.New(jwperr.KindProofGeneration, "degenerate signature scalar, retry")
	}
	var inv fr.Element
	inv.Inverse(&denom)

	a := scalarMulG1(&b, &inv)

	out := make([]byte, 0, SignatureSize)
	aBytes := a.Bytes()
	out = append(out, aBytes[:]...)
	eBytes := e.Bytes()
	out = append(out, eBytes[:]...)
	return out, nil
}

// Verify checks a BBS+ signature over header and messages against pk.
func Verify(variant HashVariant, pk []byte, signature []byte, header []byte, messages [][]byte) (bool, error) {
	if err := Initialize(); err != nil {
		return false, jwperr.Wrap(err, jwperr.KindProofVerification, "initialize bbs+ generators")
	}
	if len(signature) != SignatureSize {
		return false, jwperr.Newf(jwperr.KindProofVerification, "signature must be %d bytes, got %d", SignatureSize, len(signature))
	}
	pkPoint, err := decodePublicKey(pk)
	if err != nil {
		return false, jwperr.Wrap(err, jwperr.KindProofVerification, "decode public key")
	}

	var a bls12381.G1Affine
	if _, err := a.SetBytes(signature[:g1PointSize]); err != nil {
		return false, jwperr.Wrap(err, jwperr.KindProofVerification, "decode signature point A")
	}
	var e fr.Element
	e.SetBytes(signature[g1PointSize:])

	b := commitment(variant, header, messages)

	// e(A, e*G2+pk) == e(B, G2)  <=>  e(A, e*G2+pk) * e(-B, G2) == 1
	var eBig big.Int
	e.BigInt(&eBig)
	var eG2 bls12381.G2Affine
	eG2.ScalarMultiplication(&g2Gen, &eBig)

	var eG2PlusPkJac, pkJac bls12381.G2Jac
	eG2PlusPkJac.FromAffine(&eG2)
	pkJac.FromAffine(&pkPoint)
	eG2PlusPkJac.AddAssign(&pkJac)
	var eG2PlusPk bls12381.G2Affine
	eG2PlusPk.FromJacobian(&eG2PlusPkJac)

	var negB bls12381.G1Affine
	negB.Neg(&b)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{a, negB},
		[]bls12381.G2Affine{eG2PlusPk, g2Gen},
	)
	if err != nil {
		return false, jwperr.Wrap(err, jwperr.KindProofVerification, "pairing check")
	}
	return ok, nil
}
