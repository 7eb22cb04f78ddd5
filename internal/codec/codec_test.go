package codec

import "testing"

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		name, seq, want string
	}{
		{"simple", "ATGC", "GCAT"},
		{"palindrome", "ATAT", "ATAT"},
		{"lowercase", "atgc", "gcat"},
		{"with N", "ATNG", "CNAT"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(ReverseComplement([]byte(tt.seq)))
			if got != tt.want {
				t.Errorf("ReverseComplement(%q) = %q, want %q", tt.seq, got, tt.want)
			}
		})
	}
}

func TestTrinucleotidePep(t *testing.T) {
	tests := []struct {
		codon string
		want  int
	}{
		{"AAA", 0},
		{"TTT", 63},
		{"ATG", 14},
		{"NNN", TrinucUnknown},
		{"ATN", TrinucUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.codon, func(t *testing.T) {
			got := TrinucleotidePep(tt.codon[0], tt.codon[1], tt.codon[2])
			if got != tt.want {
				t.Errorf("TrinucleotidePep(%q) = %d, want %d", tt.codon, got, tt.want)
			}
		})
	}
}

func TestTranslateForward(t *testing.T) {
	// ATG CCC TAA -> "MP", trailing stop dropped.
	dna := []byte("ATGCCCTAA")
	got := string(Translate(dna, true, true))
	if got != "MP" {
		t.Errorf("Translate forward = %q, want MP", got)
	}
}

func TestTranslateReverse(t *testing.T) {
	// Reverse-strand translation reads the reverse-complement table;
	// CAT in forward coordinates at the 3' end reads as Met on the
	// reverse strand.
	dna := []byte(string(ReverseComplement([]byte("ATGCCC"))))
	got := Translate(dna, false, true)
	if len(got) != 2 {
		t.Fatalf("Translate reverse produced %d residues, want 2", len(got))
	}
}

func TestTranslateShortReadForcesM(t *testing.T) {
	dna := []byte("GTGCCCTAA")
	got := string(Translate(dna, true, false))
	if got == "" || got[0] != 'M' {
		t.Errorf("Translate short-read GTG start = %q, want leading M", got)
	}
}

func TestIsStopCodon(t *testing.T) {
	for _, c := range []string{"TAA", "TAG", "TGA", "taa"} {
		if !IsStopCodon(c) {
			t.Errorf("IsStopCodon(%q) = false, want true", c)
		}
	}
	if IsStopCodon("ATG") {
		t.Errorf("IsStopCodon(ATG) = true, want false")
	}
}

func TestUppercase(t *testing.T) {
	got := string(Uppercase([]byte("acgtN")))
	if got != "ACGTN" {
		t.Errorf("Uppercase = %q, want ACGTN", got)
	}
}
