// Package jwk implements the restricted JSON Web Key shape this core
// accepts: an Octet-Key-Pair or EC key over BLS12-381-G2, generated from
// the bbsplus primitive and carrying the key_ops inverse table a public
// projection needs.
package jwk

import (
	"github.com/google/uuid"

	"github.com/certen/jwp/internal/bbsplus"
	"github.com/certen/jwp/internal/jwperr"
	"github.com/certen/jwp/pkg/codec"
	"github.com/certen/jwp/pkg/jwa"
)

// Use is the JWK "use" member.
type Use string

const (
	UseSignature  Use = "sig"
	UseEncryption Use = "enc"
	UseProof      Use = "proof"
)

// KeyOp is one token of the JWK "key_ops" member.
type KeyOp string

const (
	OpSign              KeyOp = "sign"
	OpVerify            KeyOp = "verify"
	OpEncrypt           KeyOp = "encrypt"
	OpDecrypt           KeyOp = "decrypt"
	OpWrapKey           KeyOp = "wrapKey"
	OpUnwrapKey         KeyOp = "unwrapKey"
	OpDeriveKey         KeyOp = "deriveKey"
	OpDeriveBits        KeyOp = "deriveBits"
	OpProofGeneration   KeyOp = "proofGeneration"
	OpProofVerification KeyOp = "proofVerification"
)

// inverseOp maps a signing-side key_ops token to its verifying-side
// counterpart, per the table in §4.4.
var inverseOp = map[KeyOp]KeyOp{
	OpSign:              OpVerify,
	OpVerify:            OpVerify,
	OpEncrypt:           OpDecrypt,
	OpDecrypt:           OpDecrypt,
	OpWrapKey:           OpUnwrapKey,
	OpUnwrapKey:         OpUnwrapKey,
	OpDeriveKey:         OpDeriveKey,
	OpDeriveBits:        OpDeriveBits,
	OpProofGeneration:   OpProofVerification,
	OpProofVerification: OpProofVerification,
}

// Inverse returns op's counterpart for a public-key projection.
func (op KeyOp) Inverse() KeyOp {
	if inv, ok := inverseOp[op]; ok {
		return inv
	}
	return op
}

// Kty is the JWK "kty" member.
type Kty string

const (
	KtyOKP Kty = "OKP"
	KtyEC  Kty = "EC"
	KtyRSA Kty = "RSA"
	KtyOct Kty = "oct"
)

// Subtype selects which BBS hash variant a generated key pair is for.
type Subtype string

const (
	SubtypeBLS12381G2SHA256    Subtype = "BLS12381G2-SHA256"
	SubtypeBLS12381G2SHAKE256  Subtype = "BLS12381G2-SHAKE256"
)

// Jwk is the JWK shape this core restricts itself to: either an Octet Key
// Pair or an EC key, always over the BLS12-381-G2 curve in this
// implementation.
type Jwk struct {
	Kid     string   `json:"kid,omitempty"`
	Use     Use      `json:"use,omitempty"`
	KeyOps  []KeyOp  `json:"key_ops,omitempty"`
	Alg     string   `json:"alg,omitempty"`
	X5u     string   `json:"x5u,omitempty"`
	X5c     []string `json:"x5c,omitempty"`
	X5t     string   `json:"x5t,omitempty"`
	Kty     Kty      `json:"kty"`
	Crv     jwa.Curve `json:"crv"`
	X       string   `json:"x"`
	Y       string   `json:"y,omitempty"`
	D       string   `json:"d,omitempty"`
}

// Generate derives a fresh BBS+ key pair for subtype and wraps it as an
// Octet Key Pair JWK with both public and secret material present. When kid
// is empty, a uuid.NewString()-derived kid is stamped instead.
func Generate(subtype Subtype, kid string) (*Jwk, error) {
	variant, err := hashVariantFor(subtype)
	if err != nil {
		return nil, err
	}
	sk, pk, err := bbsplus.KeyGen(variant)
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindJwkGeneration, "generate bbs+ key pair")
	}
	if kid == "" {
		kid = uuid.NewString()
	}
	return &Jwk{
		Kid: kid,
		Kty: KtyOKP,
		Crv: jwa.BLS12381G2,
		X:   codec.B64URLEncode(pk[:]),
		D:   codec.B64URLEncode(sk[:]),
	}, nil
}

func hashVariantFor(subtype Subtype) (bbsplus.HashVariant, error) {
	switch subtype {
	case SubtypeBLS12381G2SHA256:
		return bbsplus.HashSHA256, nil
	case SubtypeBLS12381G2SHAKE256:
		return bbsplus.HashSHAKE256, nil
	default:
		return 0, jwperr.Newf(jwperr.KindJwkGeneration, "unknown key subtype %q", subtype)
	}
}

// IsPrivate reports whether the key carries secret material.
func (j *Jwk) IsPrivate() bool { return j.D != "" }

// ToPublic returns a copy of j with its secret material removed and its
// key_ops entries replaced by their verifying-side inverses.
func (j *Jwk) ToPublic() *Jwk {
	pub := *j
	pub.D = ""
	if j.KeyOps != nil {
		ops := make([]KeyOp, len(j.KeyOps))
		for i, op := range j.KeyOps {
			ops[i] = op.Inverse()
		}
		pub.KeyOps = ops
	}
	return &pub
}

// SecretKeyBytes decodes the JWK's "d" member as BBS+ secret key bytes.
func (j *Jwk) SecretKeyBytes() ([]byte, error) {
	if j.D == "" {
		return nil, jwperr.New(jwperr.KindJwkGeneration, "jwk has no secret key material")
	}
	b, err := codec.B64URLDecode(j.D)
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindJwkGeneration, "decode secret key")
	}
	if len(b) != bbsplus.PrivateKeySize {
		return nil, jwperr.Newf(jwperr.KindJwkGeneration, "secret key must be %d bytes, got %d", bbsplus.PrivateKeySize, len(b))
	}
	return b, nil
}

// PublicKeyBytes decodes the JWK's "x" member as BBS+ public key bytes.
func (j *Jwk) PublicKeyBytes() ([]byte, error) {
	b, err := codec.B64URLDecode(j.X)
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindJwkGeneration, "decode public key")
	}
	if len(b) != bbsplus.PublicKeySize {
		return nil, jwperr.Newf(jwperr.KindJwkGeneration, "public key must be %d bytes, got %d", bbsplus.PublicKeySize, len(b))
	}
	return b, nil
}
