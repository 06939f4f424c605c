package jwp

import (
	"strings"
	"testing"

	"github.com/certen/jwp/internal/jwperr"
	"github.com/certen/jwp/pkg/jwa"
	"github.com/certen/jwp/pkg/jwk"
)

func buildTestIssuerKey(t *testing.T) *jwk.Jwk {
	t.Helper()
	j, err := jwk.Generate(jwk.SubtypeBLS12381G2SHA256, "")
	if err != nil {
		t.Fatalf("jwk.Generate: %v", err)
	}
	return j
}

// TestMinimalIssuanceScenario exercises spec.md scenario 1: a minimal
// {iss, sub} claim set issued with alg=BBS should produce a compact H.P.S
// string whose P segment has exactly two non-empty tokens, decode-verifying
// successfully.
func TestMinimalIssuanceScenario(t *testing.T) {
	engine := &Engine{}
	skJwk := buildTestIssuerKey(t)

	issued, err := NewIssuedJwpBuilder().
		WithHeader(&IssuerProtectedHeader{Typ: "JPT", Alg: jwa.BBS}).
		WithClaims([]byte(`{"iss":"https://issuer.example","sub":"user123"}`)).
		WithJwk(skJwk).
		Build(engine)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	compact, err := issued.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	parts := strings.Split(compact, ".")
	if len(parts) != 3 {
		t.Fatalf("compact issued token has %d segments, want 3", len(parts))
	}
	groups := strings.Split(parts[1], "~")
	if len(groups) != 2 {
		t.Fatalf("payload segment has %d groups, want 2: %q", len(groups), parts[1])
	}
	for i, g := range groups {
		if g == "" {
			t.Errorf("group %d should be non-empty in a fully-disclosed issued token", i)
		}
	}

	pending, err := DecodeIssuedJwp(compact)
	if err != nil {
		t.Fatalf("DecodeIssuedJwp: %v", err)
	}
	verified, err := pending.Verify(engine, skJwk.ToPublic())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(verified.Payloads) != 2 {
		t.Fatalf("got %d payloads, want 2", len(verified.Payloads))
	}
}

func TestIssuedJwpRoundtrip(t *testing.T) {
	engine := &Engine{}
	skJwk := buildTestIssuerKey(t)

	issued, err := NewIssuedJwpBuilder().
		WithHeader(&IssuerProtectedHeader{Alg: jwa.BBS, Kid: "issuer-1"}).
		WithClaims([]byte(`{"name":"John Doe"}`)).
		WithJwk(skJwk).
		Build(engine)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	compact, err := issued.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	pending, err := DecodeIssuedJwp(compact)
	if err != nil {
		t.Fatalf("DecodeIssuedJwp: %v", err)
	}
	verified, err := pending.Verify(engine, skJwk.ToPublic())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if len(verified.Header.Claims) != 1 || verified.Header.Claims[0] != "name" {
		t.Fatalf("got claims %v, want [name]", verified.Header.Claims)
	}
	if verified.Payloads[0].Value != "John Doe" {
		t.Fatalf("got payload value %v, want John Doe", verified.Payloads[0].Value)
	}
}

func TestIssuedJwpBuilderIncomplete(t *testing.T) {
	engine := &Engine{}
	_, err := NewIssuedJwpBuilder().Build(engine)
	if !jwperr.Is(err, jwperr.KindIncompleteJwpBuild) {
		t.Fatalf("got %v, want KindIncompleteJwpBuild", err)
	}
}

func TestDecodeIssuedJwpWrongSegmentCount(t *testing.T) {
	if _, err := DecodeIssuedJwp("a.b"); !jwperr.Is(err, jwperr.KindInvalidIssuedJwp) {
		t.Fatalf("got %v, want KindInvalidIssuedJwp", err)
	}
}

func TestIssuedJwpVerifyRejectsWrongKey(t *testing.T) {
	engine := &Engine{}
	skJwk := buildTestIssuerKey(t)
	otherJwk := buildTestIssuerKey(t)

	issued, err := NewIssuedJwpBuilder().
		WithHeader(&IssuerProtectedHeader{Alg: jwa.BBS}).
		WithClaims([]byte(`{"sub":"user123"}`)).
		WithJwk(skJwk).
		Build(engine)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	compact, err := issued.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	pending, err := DecodeIssuedJwp(compact)
	if err != nil {
		t.Fatalf("DecodeIssuedJwp: %v", err)
	}
	if _, err := pending.Verify(engine, otherJwk.ToPublic()); err == nil {
		t.Fatal("expected verification failure against an unrelated public key")
	}
}
