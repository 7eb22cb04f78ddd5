// Package model holds the pre-trained probability tables (Train), the
// per-decode materialized HMM, and the loader that turns a training
// directory on disk into both.
package model

// Train holds the full, GC-bucketed probability tables for all 44 buckets.
// It is built once per process and never mutated after loading; every
// decode borrows read-only slices out of it via Select.
//
// All probability tables hold natural-log probabilities (see ModelSelector
// invariant): log(0) is represented as math.Inf(-1) and is a legal,
// "impossible" table entry. The *Dist parameters are not probabilities
// and stay in linear space.
type Train struct {
	// Trans/RTrans are [bucket][frame 0..6][prevDinuc 0..16][nt 0..4]
	// match-emission log-probabilities, forward and reverse strand.
	Trans, RTrans [44][6][16][4]float64

	// Noncoding is [bucket][nt][nt] reverse-strand dinucleotide
	// log-probabilities for the R state.
	Noncoding [44][4][4]float64

	// Start/Stop/Start1/Stop1 are [bucket][pos 0..61][tri 0..64]
	// positional trinucleotide log-probabilities for the start/stop
	// context windows; Start/Stop are forward strand, Start1/Stop1
	// reverse.
	Start, Stop, Start1, Stop1 [44][61][64]float64

	// SDist/EDist/S1Dist/E1Dist are [bucket][6] (sigma, mu, A, sigma',
	// mu', A') Gaussian-mixture parameters for positional reweighting.
	SDist, EDist, S1Dist, E1Dist [44][6]float64
}

// GlobalParams are the transition probabilities that do not depend on GC
// bucket: the 29-state prior and the 14 named inter-state transitions,
// plus the insertion emission tables. Loaded once from the training
// directory's transition file and shared, read-only, by every HMM clone.
type GlobalParams struct {
	InitialState [29]float64
	Tr           [14]float64
	TrII, TrMI   [4][4]float64
}

// Named indices into GlobalParams.Tr, matching the transition names used
// by the training file format (MM, MI, MD, II, IM, DD, DM, GE, GG, ER,
// RS, RR, ES, ES1).
const (
	TrMM = iota
	TrMI
	TrMD
	TrII
	TrIM
	TrDD
	TrDM
	TrGE
	TrGG
	TrER
	TrRS
	TrRR
	TrES
	TrES1
)

// HMM is the per-decode materialization: GlobalParams plus the bucket
// slice ModelSelector copies out of Train for a specific input sequence.
type HMM struct {
	GlobalParams

	EM, EM1 [6][16][4]float64
	TrRR    [4][4]float64
	TrS     [61][64]float64
	TrE     [61][64]float64
	TrS1    [61][64]float64
	TrE1    [61][64]float64

	SDist, EDist, S1Dist, E1Dist [6]float64

	// Bucket is the GC bucket (0..43) this HMM was materialized for.
	Bucket int
}
