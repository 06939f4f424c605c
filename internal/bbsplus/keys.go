package bbsplus

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/certen/jwp/internal/jwperr"
)

// KeyGen derives a fresh secret/public key pair. variant is recorded only
// to keep the call site symmetric with Sign/Verify; key material itself
// does not depend on the hash variant.
func KeyGen(variant HashVariant) (sk [PrivateKeySize]byte, pk [PublicKeySize]byte, err error) {
	if err = Initialize(); err != nil {
		return sk, pk, jwperr.Wrap(err, jwperr.KindJwkGeneration, "initialize bbs+ generators")
	}

	var skScalar fr.Element
	if _, err = skScalar.SetRandom(); err != nil {
		return sk, pk, jwperr.Wrap(err, jwperr.KindJwkGeneration, "draw random secret scalar")
	}

	skBytes := skScalar.Bytes()
	copy(sk[:], skBytes[:])

	pkPoint := publicKeyFromSecret(&skScalar)
	pkBytes := pkPoint.Bytes()
	copy(pk[:], pkBytes[:])

	return sk, pk, nil
}

func publicKeyFromSecret(sk *fr.Element) bls12381.G2Affine {
	var skBig big.Int
	sk.BigInt(&skBig)
	var pk bls12381.G2Affine
	pk.ScalarMultiplication(&g2Gen, &skBig)
	return pk
}

// PublicKeyFromSecretBytes derives the public key bytes for an already
// encoded secret key, for callers that only have sk on hand (e.g. a JWK
// that was stored with only its "d" member populated).
func PublicKeyFromSecretBytes(variant HashVariant, sk []byte) ([]byte, error) {
	if err := Initialize(); err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindJwkGeneration, "initialize bbs+ generators")
	}
	skScalar, err := decodeSecretKey(sk)
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindJwkGeneration, "decode secret key")
	}
	pkPoint := publicKeyFromSecret(&skScalar)
	pkBytes := pkPoint.Bytes()
	return pkBytes[:], nil
}

func decodeSecretKey(sk []byte) (fr.Element, error) {
	var s fr.Element
	if len(sk) != PrivateKeySize {
		return s, jwperr.Newf(jwperr.KindJwkGeneration, "secret key must be %d bytes, got %d", PrivateKeySize, len(sk))
	}
	s.SetBytes(sk)
	return s, nil
}

// decodePublicKey parses a G2 public key and rejects anything outside the
// correct prime-order subgroup, guarding against rogue-key attacks the same
// way the teacher's ValidateBLSPublicKeySubgroup does for its single-message
// BLS keys.
func decodePublicKey(pk []byte) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	if len(pk) != PublicKeySize {
		return p, jwperr.Newf(jwperr.KindJwkGeneration, "public key must be %d bytes, got %d", PublicKeySize, len(pk))
	}
	if _, err := p.SetBytes(pk); err != nil {
		return p, jwperr.Wrap(err, jwperr.KindJwkGeneration, "decode public key point")
	}
	if p.IsInfinity() {
		return p, jwperr.New(jwperr.KindJwkGeneration, "public key is identity point")
	}
	if !p.IsInSubGroup() {
		return p, jwperr.New(jwperr.KindJwkGeneration, "public key not in correct G2 subgroup")
	}
	return p, nil
}

// randomNonzeroScalar draws a uniformly random nonzero element of Fr,
// passing crypto/rand.Reader straight through to fr.Element.SetRandom
// without caching or reseeding, per the package's randomness contract.
func randomNonzeroScalar() (fr.Element, error) {
	for {
		var s fr.Element
		if _, err := s.SetRandom(); err != nil {
			return s, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}
