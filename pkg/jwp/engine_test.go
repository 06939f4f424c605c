package jwp

import (
	"testing"

	"github.com/certen/jwp/internal/jwperr"
	"github.com/certen/jwp/pkg/jpt"
	"github.com/certen/jwp/pkg/jwa"
	"github.com/certen/jwp/pkg/jwk"
)

func testPayloads(t *testing.T) jpt.Payloads {
	t.Helper()
	_, payloads, err := jpt.FromJSON([]byte(`{"iss":"https://issuer.example","sub":"user123"}`))
	if err != nil {
		t.Fatalf("jpt.FromJSON: %v", err)
	}
	return payloads
}

func TestEngineSignVerifyRoundtrip(t *testing.T) {
	engine := &Engine{}
	skJwk, err := jwk.Generate(jwk.SubtypeBLS12381G2SHA256, "")
	if err != nil {
		t.Fatalf("jwk.Generate: %v", err)
	}
	payloads := testPayloads(t)
	header := []byte(`{"alg":"BBS"}`)

	proof, err := engine.Sign(jwa.BBS, skJwk, header, payloads)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	pubJwk := skJwk.ToPublic()
	if err := engine.Verify(jwa.BBS, pubJwk, proof, header, payloads); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestEngineSignRejectsIncompatibleCurve(t *testing.T) {
	engine := &Engine{}
	skJwk, err := jwk.Generate(jwk.SubtypeBLS12381G2SHA256, "")
	if err != nil {
		t.Fatalf("jwk.Generate: %v", err)
	}
	skJwk.Crv = jwa.Curve("P-256")

	_, err = engine.Sign(jwa.BBS, skJwk, []byte(`{"alg":"BBS"}`), testPayloads(t))
	if err == nil {
		t.Fatal("expected compatibility error signing with a non-BLS12381G2 key")
	}
	je, ok := jwperr.As(err)
	if !ok || je.Kind != jwperr.KindProofGeneration {
		t.Fatalf("got %v, want a KindProofGeneration error", err)
	}
}

func TestEngineRejectsUnimplementedAlgorithm(t *testing.T) {
	engine := &Engine{}
	skJwk, err := jwk.Generate(jwk.SubtypeBLS12381G2SHA256, "")
	if err != nil {
		t.Fatalf("jwk.Generate: %v", err)
	}
	_, err = engine.Sign(jwa.SUES256, skJwk, []byte(`{}`), testPayloads(t))
	if !jwperr.Is(err, jwperr.KindNotImplemented) {
		t.Fatalf("got %v, want KindNotImplemented", err)
	}
}

func TestEngineProofGenVerifySelectiveDisclosure(t *testing.T) {
	engine := &Engine{}
	skJwk, err := jwk.Generate(jwk.SubtypeBLS12381G2SHA256, "")
	if err != nil {
		t.Fatalf("jwk.Generate: %v", err)
	}
	payloads := testPayloads(t)
	header := []byte(`{"alg":"BBS"}`)

	issuerProof, err := engine.Sign(jwa.BBS, skJwk, header, payloads)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	presented := make(jpt.Payloads, len(payloads))
	copy(presented, payloads)
	if err := presented.SetUndisclosed(1); err != nil {
		t.Fatalf("SetUndisclosed: %v", err)
	}

	pubJwk := skJwk.ToPublic()
	ph := []byte(`{"alg":"BBS","nonce":"n-1"}`)
	proof, err := engine.ProofGen(jwa.PresBBS, pubJwk, issuerProof, header, ph, presented)
	if err != nil {
		t.Fatalf("ProofGen: %v", err)
	}
	if err := engine.ProofVerify(jwa.PresBBS, pubJwk, proof, header, ph, presented); err != nil {
		t.Fatalf("ProofVerify: %v", err)
	}
}
