package main

import "testing"

func TestSynthesizeDecisionsOrder(t *testing.T) {
	got := SynthesizeDecisions([]string{SubCamNoResp, SubCamFrozen})
	want := append(append([]string{}, actionMap[SubCamNoResp]...), actionMap[SubCamFrozen]...)
	if len(got) != len(want) {
		t.Fatalf("got %d actions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("action %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSynthesizeDecisionsDedup(t *testing.T) {
	got := SynthesizeDecisions([]string{SubCamNoResp, SubCamNoResp})
	if len(got) != len(actionMap[SubCamNoResp]) {
		t.Fatalf("expected %d unique actions, got %d", len(actionMap[SubCamNoResp]), len(got))
	}
	seen := make(map[string]bool)
	for _, a := range got {
		if seen[a] {
			t.Fatalf("duplicate action %q", a)
		}
		seen[a] = true
	}
}

func TestSynthesizeDecisionsUnknownSubtype(t *testing.T) {
	if got := SynthesizeDecisions([]string{"not_a_subtype"}); len(got) != 0 {
		t.Fatalf("expected no actions for unknown subtype, got %v", got)
	}
	if got := SynthesizeDecisions(nil); len(got) != 0 {
		t.Fatalf("expected no actions for nil input, got %v", got)
	}
}
