package jwp

import (
	"testing"

	"github.com/certen/jwp/pkg/jwa"
)

func TestIssuerHeaderEncodeFieldOrder(t *testing.T) {
	h := &IssuerProtectedHeader{
		Typ:    "JPT",
		Alg:    jwa.BBS,
		Kid:    "issuer-1",
		Claims: []string{"iss", "sub"},
	}
	got, err := h.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"typ":"JPT","alg":"BBS","kid":"issuer-1","claims":["iss","sub"]}`
	if string(got) != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestIssuerHeaderEncodeDecodeRoundtrip(t *testing.T) {
	h := &IssuerProtectedHeader{
		Alg:    jwa.BBS,
		Kid:    "issuer-1",
		Cid:    "claim-set-1",
		Claims: []string{"iss", "sub"},
		Iss:    "https://issuer.example",
	}
	raw, err := h.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeIssuerHeader(raw)
	if err != nil {
		t.Fatalf("DecodeIssuerHeader: %v", err)
	}
	if got.Alg != h.Alg || got.Kid != h.Kid || got.Cid != h.Cid || got.Iss != h.Iss {
		t.Fatalf("got %+v, want %+v", got, h)
	}
	if len(got.Claims) != 2 || got.Claims[0] != "iss" || got.Claims[1] != "sub" {
		t.Fatalf("claims mismatch: %+v", got.Claims)
	}
}

func TestPresentationHeaderEncodeFieldOrder(t *testing.T) {
	h := &PresentationProtectedHeader{
		Alg:   jwa.PresBBS,
		Kid:   "issuer-1",
		Aud:   "https://recipient.example.com",
		Nonce: "wrmBRkKtXjQ",
	}
	got, err := h.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"alg":"BBS","kid":"issuer-1","aud":"https://recipient.example.com","nonce":"wrmBRkKtXjQ"}`
	if string(got) != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestPresentationHeaderNonceChangesOctets(t *testing.T) {
	a := &PresentationProtectedHeader{Alg: jwa.PresBBS, Aud: "https://recipient.example.com", Nonce: "wrmBRkKtXjQ"}
	b := &PresentationProtectedHeader{Alg: jwa.PresBBS, Aud: "https://recipient.example.com", Nonce: "different"}
	aBytes, err := a.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	bBytes, err := b.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(aBytes) == string(bBytes) {
		t.Fatal("changing nonce should change the encoded header octets")
	}
}
