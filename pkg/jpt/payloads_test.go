package jpt

import (
	"reflect"
	"testing"
)

func TestDisclosedUndisclosedIndexes(t *testing.T) {
	p := Payloads{
		{Value: "a", Disclosure: Disclosed},
		{Value: "b", Disclosure: Undisclosed},
		{Value: "c", Disclosure: Disclosed},
	}
	if got := p.DisclosedIndexes(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("DisclosedIndexes() = %v, want [0 2]", got)
	}
	if got := p.UndisclosedIndexes(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("UndisclosedIndexes() = %v, want [1]", got)
	}
}

func TestSetUndisclosed(t *testing.T) {
	p := Payloads{{Value: "a", Disclosure: Disclosed}}
	if err := p.SetUndisclosed(0); err != nil {
		t.Fatalf("SetUndisclosed: %v", err)
	}
	if p[0].Disclosure != Undisclosed {
		t.Errorf("entry 0 disclosure = %v, want Undisclosed", p[0].Disclosure)
	}
	if err := p.SetUndisclosed(5); err == nil {
		t.Fatal("expected out-of-bounds error")
	}
}

func TestDisclosedPayloadsPreservesOrder(t *testing.T) {
	p := Payloads{
		{Value: 1, Disclosure: Disclosed},
		{Value: 2, Disclosure: Undisclosed},
		{Value: 3, Disclosure: Disclosed},
	}
	d := p.DisclosedPayloads()
	if len(d) != 2 || d[0].Value != 1 || d[1].Value != 3 {
		t.Fatalf("got %+v, want [1 3]", d)
	}
}

func TestToMessageBytesCanonicalizesEachEntry(t *testing.T) {
	p := Payloads{
		{Value: map[string]interface{}{"b": 1, "a": 2}, Disclosure: Disclosed},
	}
	msgs, err := p.ToMessageBytes()
	if err != nil {
		t.Fatalf("ToMessageBytes: %v", err)
	}
	if string(msgs[0]) != `{"a":2,"b":1}` {
		t.Fatalf("got %s, want canonical key order", msgs[0])
	}
}
