package bbsplus

import (
	"bytes"
	"testing"
)

func testMessages() [][]byte {
	return [][]byte{
		[]byte(`"https://issuer.example"`),
		[]byte(`"user123"`),
		[]byte(`"extra"`),
	}
}

func TestSignAndVerify(t *testing.T) {
	sk, pk, err := KeyGen(HashSHA256)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	header := []byte(`{"alg":"BBS"}`)
	messages := testMessages()

	sig, err := Sign(HashSHA256, sk[:], pk[:], header, messages)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) != SignatureSize {
		t.Fatalf("signature size = %d, want %d", len(sig), SignatureSize)
	}

	ok, err := Verify(HashSHA256, pk[:], sig, header, messages)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("valid signature failed to verify")
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	sk, pk, err := KeyGen(HashSHA256)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	header := []byte(`{"alg":"BBS"}`)
	messages := testMessages()

	sig, err := Sign(HashSHA256, sk[:], pk[:], header, messages)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := make([][]byte, len(messages))
	copy(tampered, messages)
	tampered[1] = []byte(`"attacker"`)

	ok, err := Verify(HashSHA256, pk[:], sig, header, tampered)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("verification succeeded over tampered message")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	sk, pk, err := KeyGen(HashSHA256)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	_, otherPk, err := KeyGen(HashSHA256)
	if err != nil {
		t.Fatalf("KeyGen (second): %v", err)
	}
	if bytes.Equal(pk[:], otherPk[:]) {
		t.Fatal("two independent KeyGen calls produced the same public key")
	}

	header := []byte(`{"alg":"BBS"}`)
	messages := testMessages()
	sig, err := Sign(HashSHA256, sk[:], pk[:], header, messages)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	ok, err := Verify(HashSHA256, otherPk[:], sig, header, messages)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("verification succeeded against an unrelated public key")
	}
}

func TestVerifyRejectsTamperedHeader(t *testing.T) {
	sk, pk, err := KeyGen(HashSHA256)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	header := []byte(`{"alg":"BBS"}`)
	messages := testMessages()
	sig, err := Sign(HashSHA256, sk[:], pk[:], header, messages)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	ok, err := Verify(HashSHA256, pk[:], sig, []byte(`{"alg":"BBS-SHAKE256"}`), messages)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("verification succeeded over a tampered header")
	}
}

func TestPublicKeyFromSecretBytesMatchesKeyGen(t *testing.T) {
	sk, pk, err := KeyGen(HashSHA256)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	derived, err := PublicKeyFromSecretBytes(HashSHA256, sk[:])
	if err != nil {
		t.Fatalf("PublicKeyFromSecretBytes: %v", err)
	}
	if !bytes.Equal(derived, pk[:]) {
		t.Fatal("derived public key does not match KeyGen's public key")
	}
}

func TestSHAKE256Variant(t *testing.T) {
	sk, pk, err := KeyGen(HashSHAKE256)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	header := []byte(`{"alg":"BBS-SHAKE256"}`)
	messages := testMessages()

	sig, err := Sign(HashSHAKE256, sk[:], pk[:], header, messages)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	ok, err := Verify(HashSHAKE256, pk[:], sig, header, messages)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("valid SHAKE-256 signature failed to verify")
	}
}
