package jwa

import "testing"

func TestCheckAcceptsOnlyBBSFamilyOnBLS12381G2(t *testing.T) {
	cases := []struct {
		alg   IssuanceAlg
		curve Curve
		want  bool
	}{
		{BBS, BLS12381G2, true},
		{BBSSHAKE256, BLS12381G2, true},
		{BBS, Curve("P-256"), false},
		{SUES256, BLS12381G2, false},
		{IssuanceAlg("not-a-real-alg"), BLS12381G2, false},
	}
	for _, c := range cases {
		if got := Check(c.alg, c.curve); got != c.want {
			t.Errorf("Check(%q, %q) = %v, want %v", c.alg, c.curve, got, c.want)
		}
	}
}

func TestImplementedOnlyBBSFamily(t *testing.T) {
	if !BBS.Implemented() {
		t.Error("BBS should be implemented")
	}
	if !BBSSHAKE256.Implemented() {
		t.Error("BBS-SHAKE256 should be implemented")
	}
	if SUES256.Implemented() {
		t.Error("SU-ES256 should not be implemented")
	}
}

func TestToPresentationRoundtrip(t *testing.T) {
	if BBS.ToPresentation() != PresBBS {
		t.Errorf("BBS.ToPresentation() = %q, want %q", BBS.ToPresentation(), PresBBS)
	}
	if !CheckPresentation(PresBBS, BLS12381G2) {
		t.Error("CheckPresentation(PresBBS, BLS12381G2) should be true")
	}
}

func TestParseCurveRejectsUnknown(t *testing.T) {
	if _, err := ParseCurve("P-256"); err == nil {
		t.Fatal("expected error parsing unsupported curve")
	}
	c, err := ParseCurve("BLS12381G2")
	if err != nil {
		t.Fatalf("ParseCurve: %v", err)
	}
	if c != BLS12381G2 {
		t.Errorf("got %q, want %q", c, BLS12381G2)
	}
}
