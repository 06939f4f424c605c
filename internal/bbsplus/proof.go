package bbsplus

import (
	"encoding/binary"
	"sort"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/certen/jwp/internal/jwperr"
)

// partialCommitment folds header and only the messages at the given indices
// into P1 + H0*domain + Σ Hi*mi, the shape the verifier can reconstruct from
// disclosed claims alone.
func partialCommitment(variant HashVariant, header []byte, indices []int, messages map[int][]byte) bls12381.G1Affine {
	domain := domainScalar(variant, header)
	acc := addG1(&baseP1, scalarMulG1Ptr(&baseH0, &domain))
	for _, i := range indices {
		s := messageScalar(variant, i, messages[i])
		gen := messageGenerator(i)
		term := scalarMulG1(&gen, &s)
		acc = addG1(&acc, &term)
	}
	return acc
}

func sortedIndices(in map[int][]byte, n int, want bool) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		_, present := in[i]
		if present == want {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// fiatShamirChallenge binds the proof's fixed points, the presentation
// header, and the disclosed message set into a single scalar, so that
// neither the holder nor a man-in-the-middle can alter which claims are
// disclosed, their values, or the presentation header (aud, nonce) without
// recomputing a proof that no longer verifies.
func fiatShamirChallenge(variant HashVariant, aPrime, abar, w, t bls12381.G1Affine, pk []byte, header, ph []byte, disclosedIdx []int, disclosed map[int][]byte) fr.Element {
	aPrimeB := aPrime.Bytes()
	abarB := abar.Bytes()
	wB := w.Bytes()
	tB := t.Bytes()

	parts := [][]byte{aPrimeB[:], abarB[:], wB[:], tB[:], pk, header, ph}
	for _, i := range disclosedIdx {
		var idx [8]byte
		binary.BigEndian.PutUint64(idx[:], uint64(i))
		parts = append(parts, idx[:], disclosed[i])
	}
	return hashToScalar(variant, "JWP_BBS_CHALLENGE_", parts...)
}

// ProofGen derives a selective-disclosure proof over signature, revealing
// only the messages at disclosedIdx and hiding the rest. messages holds the
// full ordered message vector the signature was issued over. ph is the
// presentation header octets, bound into the proof so that altering them
// (e.g. the nonce or audience) after generation invalidates verification.
func ProofGen(variant HashVariant, pk []byte, signature []byte, header, ph []byte, messages [][]byte, disclosedIdx []int) ([]byte, error) {
	if err := Initialize(); err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "initialize bbs+ generators")
	}
	if len(signature) != SignatureSize {
		return nil, jwperr.Newf(jwperr.KindProofGeneration, "signature must be %d bytes, got %d", SignatureSize, len(signature))
	}

	var a bls12381.G1Affine
	if _, err := a.SetBytes(signature[:g1PointSize]); err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "decode signature point A")
	}
	var e fr.Element
	e.SetBytes(signature[g1PointSize:])

	disclosedSet := make(map[int][]byte, len(disclosedIdx))
	for _, i := range disclosedIdx {
		if i < 0 || i >= len(messages) {
			return nil, jwperr.Newf(jwperr.KindIndexOutOfBounds, "disclosed index %d out of bounds for %d messages", i, len(messages))
		}
		disclosedSet[i] = messages[i]
	}
	dIdx := sortedIndices(disclosedSet, len(messages), true)
	uIdx := sortedIndices(disclosedSet, len(messages), false)

	b := commitment(variant, header, messages)
	bd := partialCommitment(variant, header, dIdx, disclosedSet)
	bu := subG1(&b, &bd)

	r, err := randomNonzeroScalar()
	if err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "draw blinding scalar")
	}

	aPrime := scalarMulG1(&a, &r)
	rb := scalarMulG1(&b, &r)
	eAPrime := scalarMulG1(&aPrime, &e)
	abar := subG1(&rb, &eAPrime)
	w := scalarMulG1(&bu, &r)

	undisclosedGens := make([]bls12381.G1Affine, len(uIdx))
	nonces := make([]fr.Element, len(uIdx))
	for n, j := range uIdx {
		undisclosedGens[n] = messageGenerator(j)
		if _, err := nonces[n].SetRandom(); err != nil {
			return nil, jwperr.Wrap(err, jwperr.KindProofGeneration, "draw schnorr nonce")
		}
	}
	t := sumScaledG1(undisclosedGens, nonces)

	c := fiatShamirChallenge(variant, aPrime, abar, w, t, pk, header, ph, dIdx, disclosedSet)

	z := make([]fr.Element, len(uIdx))
	for n, j := range uIdx {
		mj := messageScalar(variant, j, messages[j])
		var rmj fr.Element
		rmj.Mul(&r, &mj)
		var cTerm fr.Element
		cTerm.Mul(&c, &rmj)
		z[n].Add(&nonces[n], &cTerm)
	}

	out := make([]byte, 0, proofFixedSize(len(uIdx)))
	appendPoint := func(p bls12381.G1Affine) {
		pb := p.Bytes()
		out = append(out, pb[:]...)
	}
	appendScalar := func(s fr.Element) {
		sb := s.Bytes()
		out = append(out, sb[:]...)
	}
	appendPoint(aPrime)
	appendPoint(abar)
	appendScalar(e)
	appendScalar(r)
	appendPoint(w)
	appendPoint(t)
	for _, zi := range z {
		appendScalar(zi)
	}
	return out, nil
}

func proofFixedSize(undisclosedCount int) int {
	return g1PointSize*4 + scalarSize*2 + scalarSize*undisclosedCount
}

type parsedProof struct {
	aPrime bls12381.G1Affine
	abar   bls12381.G1Affine
	e      fr.Element
	r      fr.Element
	w      bls12381.G1Affine
	t      bls12381.G1Affine
	z      []fr.Element
}

func parseProof(proof []byte, undisclosedCount int) (*parsedProof, error) {
	want := proofFixedSize(undisclosedCount)
	if len(proof) != want {
		return nil, jwperr.Newf(jwperr.KindProofVerification, "proof must be %d bytes for %d undisclosed messages, got %d", want, undisclosedCount, len(proof))
	}
	p := &parsedProof{z: make([]fr.Element, undisclosedCount)}
	off := 0
	readPoint := func() (bls12381.G1Affine, error) {
		var pt bls12381.G1Affine
		_, err := pt.SetBytes(proof[off : off+g1PointSize])
		off += g1PointSize
		return pt, err
	}
	readScalar := func() fr.Element {
		var s fr.Element
		s.SetBytes(proof[off : off+scalarSize])
		off += scalarSize
		return s
	}

	var err error
	if p.aPrime, err = readPoint(); err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofVerification, "decode A'")
	}
	if p.abar, err = readPoint(); err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofVerification, "decode Abar")
	}
	p.e = readScalar()
	p.r = readScalar()
	if p.w, err = readPoint(); err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofVerification, "decode W")
	}
	if p.t, err = readPoint(); err != nil {
		return nil, jwperr.Wrap(err, jwperr.KindProofVerification, "decode T")
	}
	for i := range p.z {
		p.z[i] = readScalar()
	}
	return p, nil
}

// ProofVerify checks a selective-disclosure proof produced by ProofGen.
// disclosed holds only the messages the holder chose to reveal, keyed by
// their original signing index; totalMessageCount is the full message
// vector length the original signature was issued over; ph is the
// presentation header octets the proof was bound to.
func ProofVerify(variant HashVariant, pk []byte, proof []byte, header, ph []byte, disclosed map[int][]byte, totalMessageCount int) (bool, error) {
	if err := Initialize(); err != nil {
		return false, jwperr.Wrap(err, jwperr.KindProofVerification, "initialize bbs+ generators")
	}
	pkPoint, err := decodePublicKey(pk)
	if err != nil {
		return false, jwperr.Wrap(err, jwperr.KindProofVerification, "decode public key")
	}

	dIdx := sortedIndices(disclosed, totalMessageCount, true)
	uIdx := sortedIndices(disclosed, totalMessageCount, false)

	p, err := parseProof(proof, len(uIdx))
	if err != nil {
		return false, err
	}

	// Check 1: e(A', pk) == e(Abar, G2)
	var negAbar bls12381.G1Affine
	negAbar.Neg(&p.abar)
	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{p.aPrime, negAbar},
		[]bls12381.G2Affine{pkPoint, g2Gen},
	)
	if err != nil {
		return false, jwperr.Wrap(err, jwperr.KindProofVerification, "pairing check")
	}
	if !ok {
		return false, nil
	}

	// Check 2: Abar + e*A' == r*BD + W
	bd := partialCommitment(variant, header, dIdx, disclosed)
	lhs := addG1(&p.abar, scalarMulG1Ptr(&p.aPrime, &p.e))
	rhs := addG1(scalarMulG1Ptr(&bd, &p.r), &p.w)
	if !lhs.Equal(&rhs) {
		return false, nil
	}

	// Check 3: Schnorr proof of knowledge of W's representation over the
	// undisclosed message generators only. Tampering with a disclosed
	// value shifts check 2's BD term along a generator (H_i) outside this
	// span, which this equation cannot be satisfied for.
	c := fiatShamirChallenge(variant, p.aPrime, p.abar, p.w, p.t, pk, header, ph, dIdx, disclosed)
	undisclosedGens := make([]bls12381.G1Affine, len(uIdx))
	for n, j := range uIdx {
		undisclosedGens[n] = messageGenerator(j)
	}
	schnorrLHS := sumScaledG1(undisclosedGens, p.z)
	schnorrRHS := addG1(&p.t, scalarMulG1Ptr(&p.w, &c))
	if !schnorrLHS.Equal(&schnorrRHS) {
		return false, nil
	}

	return true, nil
}
