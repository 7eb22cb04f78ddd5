package viterbi

import (
	"github.com/fraggo/fgs/internal/codec"
	"github.com/fraggo/fgs/internal/model"
)

// Backtrack implements the Backtracker & ORFExtractor: it walks the best
// state path produced by Fill, segments it into ORFs, optionally refines
// the reported start position (whole-genome mode only), translates each
// ORF's DNA, and returns the assembled Prediction.
func Backtrack(seq []byte, m *Matrices, hmm *model.HMM, head string, wholegenome bool) Prediction {
	vpath := m.Backtrack()
	l := len(vpath)
	geneLen := 60
	if wholegenome {
		geneLen = 120
	}

	pred := Prediction{Head: head}

	var (
		inGene            bool
		startT            int
		dnaStartT         int
		dnaStartTWithStop int
		codonStart        int // +1 forward, -1 reverse, 0 undecided
		prevMatch         int
		dnaID             int
		insertPos         []int
		deletePos         []int
	)

	reset := func() {
		inGene = false
		codonStart = 0
		insertPos = nil
		deletePos = nil
		dnaID = 0
	}
	reset()

	closeORF := func(t int, closedByControl bool) {
		defer reset()
		if !inGene || codonStart == 0 {
			return
		}

		endT := t + 3
		if !closedByControl {
			endT = lastCodonBoundary(vpath, t, codonStart)
		}
		if dnaID <= geneLen {
			return
		}

		forward := codonStart > 0
		dnaStart := dnaStartT
		if !forward {
			dnaStart = dnaStartTWithStop
		}
		if dnaStart < 1 {
			dnaStart = 1
		}
		dnaEnd := endT
		if dnaEnd > l {
			dnaEnd = l
		}
		if dnaEnd <= dnaStart {
			return
		}

		localStartT := startT
		if wholegenome {
			dnaStart, localStartT = refineStart(seq, hmm, forward, dnaStart, startT, l)
			if dnaStart < 1 {
				dnaStart = 1
			}
		}

		raw := append([]byte(nil), seq[dnaStart-1:dnaEnd]...)
		dna := raw
		if !forward {
			dna = codec.ReverseComplement(raw)
		}
		protein := codec.Translate(raw, forward, wholegenome)

		frame := ((localStartT-1)%3+3)%3 + 1

		pred.Outs = append(pred.Outs, Out{
			DNAStartT:  dnaStart,
			DNAEndT:    dnaEnd,
			Frame:      frame,
			FinalScore: scoreSpan(m, vpath, localStartT, endT),
			Forward:    forward,
			Insert:     append([]int(nil), insertPos...),
			Delete:     append([]int(nil), deletePos...),
			Protein:    string(protein),
			DNA:        string(dna),
		})
	}

	for t := 0; t < l; t++ {
		s := vpath[t]
		switch {
		case isMatchState(s):
			if !inGene {
				inGene = true
				startT = t + 1
				prevMatch = s
			}
			if codonStart == 0 && (s == M1State || s == M4State || s == M1State1 || s == M4State1) {
				if s == M1State || s == M4State {
					codonStart = 1
					dnaStartT = t + 1
				} else {
					codonStart = -1
					dnaStartTWithStop = max1(t - 2)
				}
			}
			if codonStart != 0 {
				if diff := wrappedDiff(s, prevMatch); diff > 1 {
					skipped := diff - 1
					for k := 1; k < skipped; k++ {
						deletePos = append(deletePos, t-diff+1+k)
					}
					dnaID += skipped
				}
				dnaID++
			}
			prevMatch = s

		case isInsertState(s):
			if inGene {
				insertPos = append(insertPos, t+1)
			}

		case s == EState || s == EState1:
			closeORF(t, true)
		}

		if t == l-1 && inGene {
			closeORF(t, false)
		}
	}

	return pred
}

func isMatchState(s int) bool {
	return (s >= M1State && s <= M6State) || (s >= M1State1 && s <= M6State1)
}

func isInsertState(s int) bool {
	return (s >= I1State && s <= I6State) || (s >= I1State1 && s <= I6State1)
}

func frameOf(s int) int {
	switch {
	case s >= M1State && s <= M6State:
		return s - M1State
	case s >= M1State1 && s <= M6State1:
		return s - M1State1
	default:
		return -1
	}
}

func wrappedDiff(cur, prev int) int {
	c, p := frameOf(cur), frameOf(prev)
	if c < 0 || p < 0 {
		return 1
	}
	d := c - p
	if d <= 0 {
		d += 6
	}
	return d
}

func lastCodonBoundary(vpath []int, t, codonStart int) int {
	lo, hi := M1State, M4State
	if codonStart < 0 {
		lo, hi = M1State1, M4State1
	}
	for i := t; i >= 0; i-- {
		if vpath[i] == lo || vpath[i] == hi {
			return i + 3
		}
	}
	return t + 1
}

func scoreSpan(m *Matrices, vpath []int, startT, endT int) float64 {
	denom := endT - startT - 5
	if denom == 0 {
		return 0
	}
	i1, i0 := endT-4, startT+2
	if i1 < 0 || i1 >= len(vpath) || i0 < 0 || i0 >= len(vpath) {
		return 0
	}
	return (m.Alpha(vpath[i1], i1) - m.Alpha(vpath[i0], i0)) / float64(denom)
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// refineStart implements the whole-genome-only start-codon refinement of
// S4.4.5: it scans upstream (forward ORFs, using the start table) or
// downstream (reverse ORFs, using the stop1 table) in 3bp steps for up
// to 35bp, keeping the lowest-cost candidate window and stopping at a
// forbidden stop codon or the sequence boundary.
func refineStart(seq []byte, hmm *model.HMM, forward bool, dnaStart, startT, l int) (int, int) {
	if forward {
		best := windowScore(seq, &hmm.TrS, dnaStart)
		bestOff := 0
		for off := 3; off <= 35; off += 3 {
			cand := dnaStart - off
			if cand < 1 || cand+2 > l {
				break
			}
			if codec.IsStopCodon(string(seq[cand-1 : cand+2])) {
				break
			}
			if s := windowScore(seq, &hmm.TrS, cand); s < best {
				best, bestOff = s, off
			}
		}
		return dnaStart - bestOff, startT - bestOff
	}

	best := windowScore(seq, &hmm.TrE1, dnaStart)
	bestOff := 0
	for off := 3; off <= 35; off += 3 {
		cand := dnaStart + off
		if cand+2 > l {
			break
		}
		if codec.IsReverseStopContext(string(seq[cand-1 : cand+2])) {
			break
		}
		if s := windowScore(seq, &hmm.TrE1, cand); s < best {
			best, bestOff = s, off
		}
	}
	return dnaStart + bestOff, startT + bestOff
}

// windowScore sums the positional trinucleotide cost of a 61-wide
// context window centered just before pos (1-based), the same table
// shape the decoder's splice windows read.
func windowScore(seq []byte, table *[61][64]float64, pos int) float64 {
	sum := 0.0
	for j := 0; j < 61; j++ {
		p := pos - 1 - (30 - j)
		if p < 0 || p+2 >= len(seq) {
			continue
		}
		tri := codec.TrinucleotidePep(seq[p], seq[p+1], seq[p+2])
		sum -= table[j][tri]
	}
	return sum
}
