package viterbi

import (
	"strings"
	"testing"

	"github.com/fraggo/fgs/internal/model"
)

// zeroHMM returns a degenerate HMM with every log-probability at its zero
// value (i.e. p=1 everywhere a table is consulted), enough to exercise
// Fill/Backtrack end to end without a real training directory.
func zeroHMM() *model.HMM {
	return &model.HMM{}
}

func TestFillProducesFiniteFinalColumn(t *testing.T) {
	seq := []byte(strings.Repeat("ATGCCCATGCCCATGCCCTAA", 10))
	hmm := zeroHMM()

	m := Fill(seq, hmm, true)
	if m.Len() != len(seq) {
		t.Fatalf("Matrices.Len() = %d, want %d", m.Len(), len(seq))
	}

	last := len(seq) - 1
	sawFinite := false
	for s := 0; s < NumState; s++ {
		if !isForbidden(m.Alpha(s, last)) {
			sawFinite = true
			break
		}
	}
	if !sawFinite {
		t.Error("expected at least one reachable state at the final column")
	}
}

func TestBacktrackDoesNotPanicOnShortSequence(t *testing.T) {
	seq := []byte("ATGCCCATGCCCTAA")
	hmm := zeroHMM()

	m := Fill(seq, hmm, true)
	pred := Backtrack(seq, m, hmm, "short", true)
	if pred.Head != "short" {
		t.Errorf("Prediction.Head = %q, want %q", pred.Head, "short")
	}
	// A 15bp record can never clear the 120bp whole-genome gene_len
	// threshold, so no ORF should be emitted.
	if len(pred.Outs) != 0 {
		t.Errorf("got %d ORFs from a sub-threshold record, want 0", len(pred.Outs))
	}
}

func TestBacktrackOnLongSequenceMayEmitORFs(t *testing.T) {
	seq := []byte(strings.Repeat("ATGCCCAAACCCGGGTTTACGACG", 20))
	hmm := zeroHMM()

	m := Fill(seq, hmm, true)
	pred := Backtrack(seq, m, hmm, "long", true)
	for _, o := range pred.Outs {
		if o.DNAEndT <= o.DNAStartT {
			t.Errorf("ORF end %d <= start %d", o.DNAEndT, o.DNAStartT)
		}
		if o.DNAStartT < 1 || o.DNAEndT > len(seq) {
			t.Errorf("ORF bounds [%d,%d] out of sequence range [1,%d]", o.DNAStartT, o.DNAEndT, len(seq))
		}
	}
}
