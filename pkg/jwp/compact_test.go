package jwp

import (
	"strings"
	"testing"

	"github.com/certen/jwp/pkg/jpt"
)

func TestEncodeDecodePayloadSegment(t *testing.T) {
	payloads := jpt.Payloads{
		{Value: "a", Disclosure: jpt.Disclosed},
		{Value: "b", Disclosure: jpt.Undisclosed},
		{Value: "c", Disclosure: jpt.Disclosed},
	}
	segment, err := encodePayloadSegment(payloads)
	if err != nil {
		t.Fatalf("encodePayloadSegment: %v", err)
	}
	groups := strings.Split(segment, "~")
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3: %q", len(groups), segment)
	}
	if groups[1] != "" {
		t.Fatalf("undisclosed entry should encode to an empty token, got %q", groups[1])
	}

	decoded, err := decodePayloadSegment(segment, 3)
	if err != nil {
		t.Fatalf("decodePayloadSegment: %v", err)
	}
	if decoded[0].Disclosure != jpt.Disclosed || decoded[0].Value != "a" {
		t.Errorf("entry 0 = %+v", decoded[0])
	}
	if decoded[1].Disclosure != jpt.Undisclosed {
		t.Errorf("entry 1 should be undisclosed, got %+v", decoded[1])
	}
	if decoded[2].Disclosure != jpt.Disclosed || decoded[2].Value != "c" {
		t.Errorf("entry 2 = %+v", decoded[2])
	}
}

func TestDecodePayloadSegmentWrongCount(t *testing.T) {
	segment, err := encodePayloadSegment(jpt.Payloads{{Value: "a", Disclosure: jpt.Disclosed}})
	if err != nil {
		t.Fatalf("encodePayloadSegment: %v", err)
	}
	if _, err := decodePayloadSegment(segment, 2); err == nil {
		t.Fatal("expected error when payload group count does not match expected count")
	}
}
