// Package viterbi implements the 29-state HMM decoder: matrix fill
// (ViterbiCore), backtracking, and ORF extraction.
package viterbi

// State indices for the 29-state HMM. The ordering follows the reference
// model's layout (control states first, then the forward/reverse
// match/insert ladders) rather than the grouping in the written spec, so
// that "i - M1" style phase arithmetic stays a single subtraction.
const (
	SState = iota
	EState
	RState
	SState1
	EState1
	M1State
	M2State
	M3State
	M4State
	M5State
	M6State
	M1State1
	M2State1
	M3State1
	M4State1
	M5State1
	M6State1
	I1State
	I2State
	I3State
	I4State
	I5State
	I6State
	I1State1
	I2State1
	I3State1
	I4State1
	I5State1
	I6State1

	NumState = 29
)

// NoState marks "no predecessor decided yet" in the predecessor matrix,
// used only transiently during the S/E/S'/E' splice-window writes.
const NoState = -1
