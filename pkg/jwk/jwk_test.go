package jwk

import "testing"

func TestGenerateProducesPrivateOKPKey(t *testing.T) {
	j, err := Generate(SubtypeBLS12381G2SHA256, "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if j.Kty != KtyOKP {
		t.Errorf("kty = %q, want %q", j.Kty, KtyOKP)
	}
	if !j.IsPrivate() {
		t.Error("generated key should carry secret material")
	}
	if _, err := j.SecretKeyBytes(); err != nil {
		t.Errorf("SecretKeyBytes: %v", err)
	}
	if _, err := j.PublicKeyBytes(); err != nil {
		t.Errorf("PublicKeyBytes: %v", err)
	}
}

func TestToPublicStripsSecretMaterial(t *testing.T) {
	j, err := Generate(SubtypeBLS12381G2SHA256, "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	j.KeyOps = []KeyOp{OpProofGeneration}
	pub := j.ToPublic()

	if pub.IsPrivate() {
		t.Error("public projection still carries secret material")
	}
	if pub.X != j.X {
		t.Error("public projection should keep the public key material")
	}
	if len(pub.KeyOps) != 1 || pub.KeyOps[0] != OpProofVerification {
		t.Errorf("key_ops = %v, want [proofVerification]", pub.KeyOps)
	}
	// ToPublic must not mutate the receiver.
	if j.IsPrivate() != true {
		t.Error("ToPublic mutated the original private jwk")
	}
}

func TestKeyOpInverseTable(t *testing.T) {
	cases := []struct {
		op   KeyOp
		want KeyOp
	}{
		{OpSign, OpVerify},
		{OpVerify, OpVerify},
		{OpEncrypt, OpDecrypt},
		{OpDecrypt, OpDecrypt},
		{OpWrapKey, OpUnwrapKey},
		{OpUnwrapKey, OpUnwrapKey},
		{OpDeriveKey, OpDeriveKey},
		{OpDeriveBits, OpDeriveBits},
		{OpProofGeneration, OpProofVerification},
		{OpProofVerification, OpProofVerification},
	}
	for _, c := range cases {
		if got := c.op.Inverse(); got != c.want {
			t.Errorf("%q.Inverse() = %q, want %q", c.op, got, c.want)
		}
	}
}

func TestSecretKeyBytesMissing(t *testing.T) {
	j := &Jwk{Kty: KtyOKP}
	if _, err := j.SecretKeyBytes(); err == nil {
		t.Fatal("expected error reading secret key from a public-only jwk")
	}
}

func TestGenerateUnknownSubtype(t *testing.T) {
	if _, err := Generate(Subtype("unknown"), ""); err == nil {
		t.Fatal("expected error for unknown key subtype")
	}
}

func TestGenerateStampsRandomKidWhenOmitted(t *testing.T) {
	a, err := Generate(SubtypeBLS12381G2SHA256, "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a.Kid == "" {
		t.Fatal("expected a generated kid when none was supplied")
	}
	b, err := Generate(SubtypeBLS12381G2SHA256, "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a.Kid == b.Kid {
		t.Fatal("expected distinct generated kids across calls")
	}
}

func TestGenerateUsesSuppliedKid(t *testing.T) {
	j, err := Generate(SubtypeBLS12381G2SHA256, "issuer-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if j.Kid != "issuer-1" {
		t.Fatalf("kid = %q, want %q", j.Kid, "issuer-1")
	}
}
