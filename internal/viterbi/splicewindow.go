package viterbi

import (
	"github.com/fraggo/fgs/internal/codec"
	"github.com/fraggo/fgs/internal/model"
)

// fillEState implements the forward-gene-stop splice window: it closes
// out any E cell left untouched from a previous column, then — if
// seq[t:t+3] is a forward stop codon — writes the 3-cell window ending
// at t+2 and applies the positional adjustment of S4.3.2.
func fillEState(seq []byte, m *Matrices, hmm *model.HMM, t int) {
	if m.Alpha(EState, t) == 0 {
		m.SetAlpha(EState, t, Inf)
		m.SetPred(EState, t, NoState)
	}
	if t+2 >= len(seq) {
		return
	}
	codon := string(seq[t : t+3])
	if !codec.IsStopCodon(codon) {
		return
	}

	best := m.Alpha(M6State, t-1) - hmm.Tr[model.TrGE]
	bestPred := M6State
	if c := m.Alpha(M3State, t-1) - hmm.Tr[model.TrGE]; c < best {
		best, bestPred = c, M3State
	}

	m.SetAlpha(EState, t, Inf)
	m.SetAlpha(EState, t+1, Inf)
	m.SetPred(EState, t, bestPred)
	m.SetPred(EState, t+1, EState)
	m.SetPred(EState, t+2, EState)

	best -= stopBonus(codon, logStopWin)
	m.SetAlpha(EState, t+2, best)

	freq := positionalScore(seq, t, &hmm.TrE, -60, -3)
	p := gaussianMixtureP(freq, hmm.EDist)
	m.SetAlpha(EState, t+2, m.Alpha(EState, t+2)-ln(p))

	poisonMatchWindow(m, t+1, M1State, M6State)
}

// fillSState1 implements the reverse-gene-start splice window, which in
// forward-sequence coordinates looks like a stop-shaped context
// (TTA/CTA/TCA) because the reverse gene is read backward.
func fillSState1(seq []byte, m *Matrices, hmm *model.HMM, t int) {
	if m.Alpha(SState1, t) == 0 {
		m.SetAlpha(SState1, t, Inf)
		m.SetPred(SState1, t, NoState)
	}
	if t+2 >= len(seq) {
		return
	}
	codon := string(seq[t : t+3])
	if !codec.IsReverseStopContext(codon) {
		return
	}

	best := m.Alpha(RState, t-1) - hmm.Tr[model.TrRS]
	bestPred := RState
	if c := m.Alpha(EState1, t-1) - hmm.Tr[model.TrES]; c < best {
		best, bestPred = c, EState1
	}
	if c := m.Alpha(EState, t-1) - hmm.Tr[model.TrES1]; c < best {
		best, bestPred = c, EState
	}

	m.SetAlpha(SState1, t, Inf)
	m.SetAlpha(SState1, t+1, Inf)
	m.SetPred(SState1, t, bestPred)
	m.SetPred(SState1, t+1, SState1)
	m.SetPred(SState1, t+2, SState1)

	best -= stopBonus(codon, logStopWin)
	m.SetAlpha(SState1, t+2, best)

	freq := positionalScore(seq, t, &hmm.TrS1, 3, 60)
	p := gaussianMixtureP(freq, hmm.S1Dist)
	m.SetAlpha(SState1, t+2, m.Alpha(SState1, t+2)-ln(p))

	poisonMatchWindow(m, t+1, M1State1, M6State1)
}

// fillSState implements the forward-gene-start splice window.
func fillSState(seq []byte, m *Matrices, hmm *model.HMM, t int) {
	if m.Alpha(SState, t) == 0 {
		m.SetAlpha(SState, t, Inf)
		m.SetPred(SState, t, NoState)
	}
	if t+2 >= len(seq) {
		return
	}
	codon := string(seq[t : t+3])
	if codon != "ATG" && codon != "GTG" && codon != "TTG" {
		return
	}

	best := m.Alpha(RState, t-1) - hmm.Tr[model.TrRS]
	bestPred := RState
	if c := m.Alpha(EState, t-1) - hmm.Tr[model.TrES]; c < best {
		best, bestPred = c, EState
	}
	if c := m.Alpha(EState1, t-1) - hmm.Tr[model.TrES1]; c < best {
		best, bestPred = c, EState1
	}

	m.SetAlpha(SState, t, Inf)
	m.SetAlpha(SState, t+1, Inf)
	m.SetPred(SState, t, bestPred)
	m.SetPred(SState, t+1, SState)
	m.SetPred(SState, t+2, SState)

	best -= startBonus(codon, logStartWin)
	m.SetAlpha(SState, t+2, best)

	freq := positionalScore(seq, t, &hmm.TrS, -30, 30)
	p := gaussianMixtureP(freq, hmm.SDist)
	m.SetAlpha(SState, t+2, m.Alpha(SState, t+2)-ln(p))
}

// fillEState1 implements the reverse-gene-stop splice window, which in
// forward-sequence coordinates looks like a start-shaped context.
func fillEState1(seq []byte, m *Matrices, hmm *model.HMM, t int) {
	if m.Alpha(EState1, t) == 0 {
		m.SetAlpha(EState1, t, Inf)
		m.SetPred(EState1, t, NoState)
	}
	if t+2 >= len(seq) {
		return
	}
	codon := string(seq[t : t+3])
	if codon != "CAT" && codon != "CAC" && codon != "CAA" {
		return
	}

	best := m.Alpha(M6State1, t-1) - hmm.Tr[model.TrGE]

	m.SetAlpha(EState1, t, Inf)
	m.SetAlpha(EState1, t+1, Inf)
	m.SetPred(EState1, t, M6State1)
	m.SetPred(EState1, t+1, EState1)
	m.SetPred(EState1, t+2, EState1)

	best -= startBonusReverse(codon, logStartWin)
	m.SetAlpha(EState1, t+2, best)

	freq := positionalScore(seq, t, &hmm.TrE1, -30, 30)
	p := gaussianMixtureP(freq, hmm.E1Dist)
	m.SetAlpha(EState1, t+2, m.Alpha(EState1, t+2)-ln(p))
}

func poisonMatchWindow(m *Matrices, t, lo, hi int) {
	if t >= len(m.alpha) {
		return
	}
	for s := lo; s <= hi; s++ {
		m.SetAlpha(s, t, Inf)
	}
}
