package jwp

import (
	"time"

	"github.com/certen/jwp/internal/bbsplus"
	"github.com/certen/jwp/internal/jwperr"
	"github.com/certen/jwp/internal/logging"
	"github.com/certen/jwp/internal/metrics"
	"github.com/certen/jwp/pkg/jpt"
	"github.com/certen/jwp/pkg/jwa"
	"github.com/certen/jwp/pkg/jwk"
)

// Engine is a tagged-variant dispatcher over the proof algorithms this core
// supports: it never dispatches virtually on an interface, so an
// unimplemented algorithm token fails with KindNotImplemented instead of
// silently running the wrong primitive. A nil Recorder/Logger disables
// instrumentation; both are optional.
type Engine struct {
	Recorder *metrics.Recorder
	Logger   *logging.Logger
}

func (e *Engine) logger() *logging.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return nil
}

func (e *Engine) observe(alg, op string, start time.Time, err error) {
	kind := ""
	if je, ok := jwperr.As(err); ok {
		kind = string(je.Kind)
	}
	e.Recorder.Observe(alg, op, start, kind)
	if l := e.logger(); l != nil {
		lg := l.WithComponent("proof_engine").WithOperation(op).Elapsed(start)
		if err != nil {
			lg.WithError(err).Error("proof engine operation failed")
		} else {
			lg.Debug("proof engine operation succeeded")
		}
	}
}

func hashVariant(alg jwa.IssuanceAlg) (bbsplus.HashVariant, error) {
	switch alg {
	case jwa.BBS:
		return bbsplus.HashSHA256, nil
	case jwa.BBSSHAKE256:
		return bbsplus.HashSHAKE256, nil
	default:
		return 0, jwperr.Newf(jwperr.KindNotImplemented, "algorithm %q not implemented", alg)
	}
}

// Sign produces an issuer proof over headerOctets and payloads using skJwk.
func (e *Engine) Sign(alg jwa.IssuanceAlg, skJwk *jwk.Jwk, headerOctets []byte, payloads jpt.Payloads) ([]byte, error) {
	start := time.Now()
	proof, err := e.sign(alg, skJwk, headerOctets, payloads)
	e.observe(string(alg), "sign", start, err)
	return proof, err
}

func (e *Engine) sign(alg jwa.IssuanceAlg, skJwk *jwk.Jwk, headerOctets []byte, payloads jpt.Payloads) ([]byte, error) {
	variant, err := hashVariant(alg)
	if err != nil {
		return nil, err
	}
	if !jwa.Check(alg, skJwk.Crv) {
		return nil, jwperr.New(jwperr.KindProofGeneration, "key is not compatible")
	}
	sk, err := skJwk.SecretKeyBytes()
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "decode secret key")
	}
	pk, err := derivePublicKey(skJwk, variant)
	if err != nil {
		return nil, err
	}
	messages, err := payloads.ToMessageBytes()
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "encode payloads")
	}
	sig, err := bbsplus.Sign(variant, sk, pk, headerOctets, messages)
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "bbs+ sign")
	}
	return sig, nil
}

// derivePublicKey returns the JWK's public key bytes, deriving them from
// the secret key when the JWK only carries d (jwk.Generate itself always
// fills in both x and d).
func derivePublicKey(j *jwk.Jwk, variant bbsplus.HashVariant) ([]byte, error) {
	if j.X != "" {
		return j.PublicKeyBytes()
	}
	sk, err := j.SecretKeyBytes()
	if err != nil {
		return nil, err
	}
	return bbsplus.PublicKeyFromSecretBytes(variant, sk)
}

// Verify checks an issuer proof. A nil return means the proof is valid.
func (e *Engine) Verify(alg jwa.IssuanceAlg, pkJwk *jwk.Jwk, proof, headerOctets []byte, payloads jpt.Payloads) error {
	start := time.Now()
	err := e.verify(alg, pkJwk, proof, headerOctets, payloads)
	e.observe(string(alg), "verify", start, err)
	return err
}

func (e *Engine) verify(alg jwa.IssuanceAlg, pkJwk *jwk.Jwk, proof, headerOctets []byte, payloads jpt.Payloads) error {
	variant, err := hashVariant(alg)
	if err != nil {
		return err
	}
	if !jwa.Check(alg, pkJwk.Crv) {
		return jwperr.New(jwperr.KindProofVerification, "key is not compatible")
	}
	pk, err := pkJwk.PublicKeyBytes()
	if err != nil {
		return jwperr.Wrap(err, jwperr.KindProofVerification, "decode public key")
	}
	messages, err := payloads.ToMessageBytes()
	if err != nil {
		return jwperr.Wrap(err, jwperr.KindProofVerification, "encode payloads")
	}
	ok, err := bbsplus.Verify(variant, pk, proof, headerOctets, messages)
	if err != nil {
		return jwperr.Wrap(err, jwperr.KindProofVerification, "bbs+ verify")
	}
	if !ok {
		return jwperr.New(jwperr.KindInvalidIssuedProof, "issued proof failed verification")
	}
	return nil
}

// ProofGen derives a selective-disclosure presentation proof from an
// issuer proof, revealing only payloads.DisclosedIndexes().
func (e *Engine) ProofGen(alg jwa.PresentationAlg, pkJwk *jwk.Jwk, issuerProof, issuerHeaderOctets, presentationHeaderOctets []byte, payloads jpt.Payloads) ([]byte, error) {
	start := time.Now()
	proof, err := e.proofGen(alg, pkJwk, issuerProof, issuerHeaderOctets, presentationHeaderOctets, payloads)
	e.observe(string(alg), "proof_gen", start, err)
	return proof, err
}

func (e *Engine) proofGen(alg jwa.PresentationAlg, pkJwk *jwk.Jwk, issuerProof, issuerHeaderOctets, presentationHeaderOctets []byte, payloads jpt.Payloads) ([]byte, error) {
	variant, err := hashVariant(jwa.IssuanceAlg(alg))
	if err != nil {
		return nil, err
	}
	if !jwa.CheckPresentation(alg, pkJwk.Crv) {
		return nil, jwperr.New(jwperr.KindProofGeneration, "key is not compatible")
	}
	pk, err := pkJwk.PublicKeyBytes()
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "decode public key")
	}
	messages, err := payloads.ToMessageBytes()
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "encode payloads")
	}
	proof, err := bbsplus.ProofGen(variant, pk, issuerProof, issuerHeaderOctets, presentationHeaderOctets, messages, payloads.DisclosedIndexes())
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "bbs+ proof-gen")
	}
	return proof, nil
}

// ProofVerify checks a selective-disclosure presentation proof.
func (e *Engine) ProofVerify(alg jwa.PresentationAlg, pkJwk *jwk.Jwk, proof, issuerHeaderOctets, presentationHeaderOctets []byte, payloads jpt.Payloads) error {
	start := time.Now()
	err := e.proofVerify(alg, pkJwk, proof, issuerHeaderOctets, presentationHeaderOctets, payloads)
	e.observe(string(alg), "proof_verify", start, err)
	return err
}

func (e *Engine) proofVerify(alg jwa.PresentationAlg, pkJwk *jwk.Jwk, proof, issuerHeaderOctets, presentationHeaderOctets []byte, payloads jpt.Payloads) error {
	variant, err := hashVariant(jwa.IssuanceAlg(alg))
	if err != nil {
		return err
	}
	if !jwa.CheckPresentation(alg, pkJwk.Crv) {
		return jwperr.New(jwperr.KindProofVerification, "key is not compatible")
	}
	pk, err := pkJwk.PublicKeyBytes()
	if err != nil {
		return jwperr.Wrap(err, jwperr.KindProofVerification, "decode public key")
	}
	disclosed := payloads.DisclosedPayloads()
	disclosedMessages, err := disclosed.ToMessageBytes()
	if err != nil {
		return jwperr.Wrap(err, jwperr.KindProofVerification, "encode disclosed payloads")
	}
	disclosedIdx := payloads.DisclosedIndexes()
	byIndex := make(map[int][]byte, len(disclosedIdx))
	for n, idx := range disclosedIdx {
		byIndex[idx] = disclosedMessages[n]
	}
	ok, err := bbsplus.ProofVerify(variant, pk, proof, issuerHeaderOctets, presentationHeaderOctets, byIndex, len(payloads))
	if err != nil {
		return jwperr.Wrap(err, jwperr.KindProofVerification, "bbs+ proof-verify")
	}
	if !ok {
		return jwperr.New(jwperr.KindInvalidPresentedProof, "presented proof failed verification")
	}
	return nil
}
