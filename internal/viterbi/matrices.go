package viterbi

import "math"

// Inf is the forbidden-transition sentinel: "this state cannot be reached
// at this position". Matrices are minimized, so Inf is +math.Inf(1).
var Inf = math.Inf(1)

// Matrices holds the per-decode alpha/predecessor arrays plus the small
// auxiliary trackers the stop-codon guard needs. Stored column-major
// (position-major, state-minor) so that filling column t — which reads
// every predecessor state of column t-1 — stays cache-resident, per the
// design's matrix-shape note.
type Matrices struct {
	alpha [][NumState]float64
	path  [][NumState]int8
	vpath []int

	// tempI/tempI1 record, for each forward/reverse insertion state,
	// the most recent position at which a match->insertion transition
	// fired; the I->M guard reads these to avoid splicing a forbidden
	// stop codon across the insertion bubble.
	tempI, tempI1 [6]int
}

// NewMatrices allocates matrices sized for a sequence of length l.
func NewMatrices(l int) *Matrices {
	m := &Matrices{
		alpha: make([][NumState]float64, l),
		path:  make([][NumState]int8, l),
		vpath: make([]int, l),
	}
	for t := range m.alpha {
		for s := 0; s < NumState; s++ {
			m.path[t][s] = NoState
		}
	}
	return m
}

func (m *Matrices) Alpha(state, t int) float64    { return m.alpha[t][state] }
func (m *Matrices) SetAlpha(state, t int, v float64) { m.alpha[t][state] = v }
func (m *Matrices) Pred(state, t int) int         { return int(m.path[t][state]) }
func (m *Matrices) SetPred(state, t int, pred int) { m.path[t][state] = int8(pred) }

// Len reports the decoded sequence length.
func (m *Matrices) Len() int { return len(m.alpha) }

// BestFinalState returns the state with the lowest cost at the last
// column, the seed for backtracking.
func (m *Matrices) BestFinalState() int {
	last := len(m.alpha) - 1
	best, bestScore := 0, m.alpha[last][0]
	for s := 1; s < NumState; s++ {
		if m.alpha[last][s] < bestScore {
			best, bestScore = s, m.alpha[last][s]
		}
	}
	return best
}

// Backtrack fills vpath from the predecessor matrix and returns it.
func (m *Matrices) Backtrack() []int {
	l := len(m.alpha)
	m.vpath[l-1] = m.BestFinalState()
	for t := l - 2; t >= 0; t-- {
		pred := m.Pred(m.vpath[t+1], t+1)
		if pred == NoState {
			pred = m.vpath[t+1]
		}
		m.vpath[t] = pred
	}
	return m.vpath
}

func isForbidden(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 1)
}
