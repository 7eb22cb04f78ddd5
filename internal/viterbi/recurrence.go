package viterbi

import (
	"math"

	"github.com/fraggo/fgs/internal/codec"
	"github.com/fraggo/fgs/internal/model"
)

func ln(x float64) float64 { return math.Log(x) }

// Stop/start codon bonuses absorbed at window-write time. logInitStop
// applies at the t=0 preload; logStopWin and logStartWin apply at the
// in-sequence E/S1 (stop-shaped) and S/E1 (start-shaped) splice windows
// — the reference model uses slightly different weights for the boundary
// case than the steady-state case. logRNonCoding is the R state's
// per-step factor.
var (
	logInitStop  = [3]float64{logOf(0.53), logOf(0.16), logOf(0.30)}
	logStopWin   = [3]float64{logOf(0.54), logOf(0.16), logOf(0.30)}
	logStartWin  = [3]float64{logOf(0.83), logOf(0.10), logOf(0.07)}
	logRNonCoding = logOf(0.95)
)

// logOf returns ln(p); callers apply it as "alpha -= logOf(p)", which
// under the cost (negative-log) convention adds -ln(p) of cost for
// passing through an event of probability p.
func logOf(p float64) float64 { return ln(p) }

// Fill runs ViterbiCore: it builds and fills alpha/path for the whole
// sequence under the transition rules of S4.3, returning the completed
// Matrices ready for Backtrack.
func Fill(seq []byte, hmm *model.HMM, wholegenome bool) *Matrices {
	l := len(seq)
	m := NewMatrices(l)

	for s := 0; s < NumState; s++ {
		m.SetAlpha(s, 0, -hmm.InitialState[s])
	}

	if l >= 3 {
		preloadStopAt0(seq, m, hmm)
	}

	numN := 0
	for t := 1; t < l; t++ {
		if isN(seq[t]) {
			numN++
		} else {
			numN = 0
		}

		from := collapse(codec.Nt2Int(seq[t-1]))
		from0 := 2
		if t >= 2 {
			from0 = collapse(codec.Nt2Int(seq[t-2]))
		}
		to := collapse(codec.Nt2Int(seq[t]))
		from2 := 4*from0 + from

		fillForwardMatch(seq, m, hmm, t, from2, to, wholegenome)
		fillReverseMatch(seq, m, hmm, t, from2, to, wholegenome)
		fillForwardInsert(seq, m, hmm, t, from, to)
		fillReverseInsert(seq, m, hmm, t, from, to)
		fillR(m, hmm, t, from, to)

		fillEState(seq, m, hmm, t)
		fillSState1(seq, m, hmm, t)
		fillSState(seq, m, hmm, t)
		fillEState1(seq, m, hmm, t)

		if numN > 9 {
			poisonExceptR(m, t)
		}
	}

	return m
}

func collapse(nt int) int {
	if nt == codec.NtN {
		return codec.NtG // collapse "any N" to 2 for emission lookups
	}
	return nt
}

func isN(c byte) bool {
	switch c {
	case 'A', 'a', 'C', 'c', 'G', 'g', 'T', 't':
		return false
	default:
		return true
	}
}

func poisonExceptR(m *Matrices, t int) {
	for s := 0; s < NumState; s++ {
		if s == RState {
			continue
		}
		m.SetAlpha(s, t, Inf)
		m.SetPred(s, t, RState)
	}
}

func preloadStopAt0(seq []byte, m *Matrices, hmm *model.HMM) {
	codon := string(seq[0:3])
	if codec.IsStopCodon(codon) {
		m.SetAlpha(EState, 0, Inf)
		m.SetAlpha(EState, 1, Inf)
		m.SetPred(EState, 1, EState)
		m.SetPred(EState, 2, EState)
		m.SetAlpha(EState, 2, m.Alpha(EState, 2)-stopBonus(codon, logInitStop))
	}
	if codec.IsReverseStopContext(codon) {
		m.SetAlpha(SState1, 0, Inf)
		m.SetAlpha(SState1, 1, Inf)
		m.SetAlpha(SState1, 2, m.Alpha(SState, 0))
		m.SetPred(SState1, 1, SState1)
		m.SetPred(SState1, 2, SState1)
		m.SetAlpha(SState1, 2, m.Alpha(SState1, 2)-stopBonus(codon, logInitStop))
	}
}

func stopBonus(codon string, weights [3]float64) float64 {
	switch codon {
	case "TAA", "TTA":
		return weights[0]
	case "TAG", "CTA":
		return weights[1]
	default: // TGA, TCA
		return weights[2]
	}
}

// startBonus classifies a start-window codon the same way dna_helpers'
// M-forcing logic does: the canonical ATG and the two alternate starts
// GTG/TTG, weighted by their relative frequency in the training set.
func startBonus(codon string, weights [3]float64) float64 {
	switch codon {
	case "ATG":
		return weights[0]
	case "GTG":
		return weights[1]
	default: // TTG and anything else
		return weights[2]
	}
}

// startBonusReverse is startBonus read on the reverse strand in forward
// sequence coordinates: the reverse complements of ATG/GTG/TTG.
func startBonusReverse(codon string, weights [3]float64) float64 {
	switch codon {
	case "CAT":
		return weights[0]
	case "CAC":
		return weights[1]
	default: // CAA and anything else
		return weights[2]
	}
}

// fillForwardMatch updates M1..M6 at column t.
func fillForwardMatch(seq []byte, m *Matrices, hmm *model.HMM, t, from2, to int, wholegenome bool) {
	for i := M1State; i <= M6State; i++ {
		frame := i - M1State
		best := Inf
		bestPred := i

		prevState, wrap := prevMatchState(i, M1State, M6State)
		cost := m.Alpha(prevState, t-1) - hmm.Tr[model.TrMM]
		if wrap {
			cost -= hmm.Tr[model.TrGG]
		}
		cost -= hmm.EM[frame][from2][to]
		if cost < best {
			best, bestPred = cost, prevState
		}

		if !wholegenome {
			for j := M1State; j <= M6State; j++ {
				numD := phaseSkip(j-M1State, frame)
				if numD <= 0 {
					continue
				}
				c := m.Alpha(j, t-1) - hmm.Tr[model.TrMD] + float64(numD-1)*(-ln(0.25)) -
					float64(numD-2)*hmm.Tr[model.TrDD] - hmm.Tr[model.TrDM] - hmm.EM[frame][from2][to]
				if c < best {
					best, bestPred = c, j
				}
			}
		}

		if i == M1State {
			c := m.Alpha(SState, t-1) - hmm.EM[0][from2][to]
			if c < best {
				best, bestPred = c, SState
			}
		}

		insState := I1State + frame
		k := m.tempI[frame]
		if !spansForwardStop(seq, i, k, t) {
			c := m.Alpha(insState, t-1) - hmm.Tr[model.TrIM] + (-ln(0.25))
			if c < best {
				best, bestPred = c, insState
			}
		}

		if isForbidden(best) {
			best, bestPred = Inf, bestPred
		}
		m.SetAlpha(i, t, best)
		m.SetPred(i, t, bestPred)
	}
}

func fillReverseMatch(seq []byte, m *Matrices, hmm *model.HMM, t, from2, to int, wholegenome bool) {
	for i := M1State1; i <= M6State1; i++ {
		frame := i - M1State1
		best := Inf
		bestPred := i

		prevState, wrap := prevMatchState(i, M1State1, M6State1)
		cost := m.Alpha(prevState, t-1) - hmm.Tr[model.TrMM]
		if wrap {
			cost -= hmm.Tr[model.TrGG]
		}
		cost -= hmm.EM1[frame][from2][to]
		if cost < best {
			best, bestPred = cost, prevState
		}

		if !wholegenome {
			for j := M1State1; j <= M6State1; j++ {
				numD := phaseSkip(j-M1State1, frame)
				if numD <= 0 {
					continue
				}
				c := m.Alpha(j, t-1) - hmm.Tr[model.TrMD] + float64(numD-1)*(-ln(0.25)) -
					float64(numD-2)*hmm.Tr[model.TrDD] - hmm.Tr[model.TrDM] - hmm.EM1[frame][from2][to]
				if c < best {
					best, bestPred = c, j
				}
			}
		}

		if i == M1State1 || i == M4State1 {
			if t >= 3 {
				ctx := string(seq[t-3 : t])
				if codec.IsReverseStopContext(ctx) {
					c := m.Alpha(SState1, t-1) - hmm.EM1[frame][from2][to]
					if c < best {
						best, bestPred = c, SState1
					}
				}
			}
		}

		insState := I1State1 + frame
		k := m.tempI1[frame]
		if !spansReverseStop(seq, i, k, t) {
			c := m.Alpha(insState, t-1) - hmm.Tr[model.TrIM] + (-ln(0.25))
			if c < best {
				best, bestPred = c, insState
			}
		}

		if isForbidden(best) {
			best, bestPred = Inf, bestPred
		}
		m.SetAlpha(i, t, best)
		m.SetPred(i, t, bestPred)
	}
}

func fillForwardInsert(seq []byte, m *Matrices, hmm *model.HMM, t, from, to int) {
	for frame := 0; frame < 6; frame++ {
		i := I1State + frame
		mState := M1State + frame

		fromM := m.Alpha(mState, t-1) - hmm.Tr[model.TrMI] - hmm.TrMI[from][to]
		if frame == 5 {
			fromM -= hmm.Tr[model.TrGG]
		}
		fromI := m.Alpha(i, t-1) - hmm.Tr[model.TrII] - hmm.TrII[from][to]

		best, bestPred := fromI, i
		if fromM < best {
			best, bestPred = fromM, mState
		}
		if bestPred == mState {
			m.tempI[frame] = t - 1
		}
		m.SetAlpha(i, t, best)
		m.SetPred(i, t, bestPred)
	}
}

func fillReverseInsert(seq []byte, m *Matrices, hmm *model.HMM, t, from, to int) {
	for frame := 0; frame < 6; frame++ {
		i := I1State1 + frame
		mState := M1State1 + frame

		fromI := m.Alpha(i, t-1) - hmm.Tr[model.TrII] - hmm.TrII[from][to]
		best, bestPred := fromI, i

		if t > 4 &&
			m.Pred(SState1, t-3) != RState &&
			m.Pred(SState1, t-4) != RState &&
			m.Pred(SState1, t-5) != RState {
			fromM := m.Alpha(mState, t-1) - hmm.Tr[model.TrMI] - hmm.TrMI[from][to]
			if frame == 5 {
				fromM -= hmm.Tr[model.TrGG]
			}
			if fromM < best {
				best, bestPred = fromM, mState
			}
			if bestPred == mState {
				m.tempI1[frame] = t - 1
			}
		}
		m.SetAlpha(i, t, best)
		m.SetPred(i, t, bestPred)
	}
}

func fillR(m *Matrices, hmm *model.HMM, t, from, to int) {
	best := m.Alpha(RState, t-1) - hmm.TrRR[from][to] - hmm.Tr[model.TrRR]
	bestPred := RState

	if c := m.Alpha(EState, t-1) - hmm.Tr[model.TrER]; c < best {
		best, bestPred = c, EState
	}
	if c := m.Alpha(EState1, t-1) - hmm.Tr[model.TrER]; c < best {
		best, bestPred = c, EState1
	}
	best -= logRNonCoding

	m.SetAlpha(RState, t, best)
	m.SetPred(RState, t, bestPred)
}

// prevMatchState returns the predecessor match state in the M1..M6
// phase ladder, wrapping M6->M1 (reporting wrap=true so the caller can
// add the extra GG transition cost that wrap incurs).
func prevMatchState(i, lo, hi int) (state int, wrap bool) {
	if i == lo {
		return hi, true
	}
	return i - 1, false
}

// phaseSkip returns the wrapped 2..5 skip count from phase j to phase
// frame in a 6-phase ladder, or 0 if j==frame (no deletion possible) or
// j is the adjacent predecessor (d==1), which the plain MM transition
// already accounts for.
func phaseSkip(j, frame int) int {
	d := frame - j
	if d <= 0 {
		d += 6
	}
	if d < 2 || d > 5 {
		return 0
	}
	return d
}
