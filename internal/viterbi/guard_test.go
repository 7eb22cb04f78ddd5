package viterbi

import "testing"

func TestSpansForwardStop(t *testing.T) {
	seq := []byte("TTTAAGCC")
	// k=2 is 'T', t=3 is 'A', t+1=4 is 'A' -> pair "AA" spans a stop at M2.
	if !spansForwardStop(seq, M2State, 2, 3) {
		t.Error("expected M2State to report a spanned forward stop")
	}
	if spansForwardStop(seq, M1State, 2, 3) {
		t.Error("M1State is not guarded and should never report a spanned stop")
	}
}

func TestSpansReverseStop(t *testing.T) {
	seq := []byte("TTACCGTA")
	if !spansReverseStop(seq, M2State1, 1, 2) {
		t.Error("expected M2State1 to report a spanned reverse stop")
	}
	if spansReverseStop(seq, M4State1, 1, 2) {
		t.Error("M4State1 is not guarded and should never report a spanned stop")
	}
}

func TestPairAt(t *testing.T) {
	seq := []byte("ACGT")
	if got := pairAt(seq, 1); got != "CG" {
		t.Errorf("pairAt(seq,1) = %q, want CG", got)
	}
	if got := pairAt(seq, 3); got != "" {
		t.Errorf("pairAt at sequence boundary = %q, want empty", got)
	}
}
