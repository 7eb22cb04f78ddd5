package viterbi

import (
	"math"

	"github.com/fraggo/fgs/internal/codec"
)

// positionalScore implements S4.3.2's start_freq/stop_freq computation: a
// weighted sum of positional trinucleotide log-probabilities over the
// signed-offset window [lo,hi] around the event position t (pos = t+i),
// sample-size corrected when the window runs off either end of the
// sequence. table is indexed [i-lo][trinucleotide], so the offset
// nearest lo lands in row 0 regardless of whether the window reaches
// upstream (E: lo=-60,hi=-3), downstream (S1: lo=3,hi=60), or straddles
// t (S, E1: lo=-30,hi=30).
func positionalScore(seq []byte, t int, table *[61][64]float64, lo, hi int) float64 {
	sum := 0.0
	n := 0
	for i := lo; i <= hi; i++ {
		pos := t + i
		if pos < 0 || pos+2 >= len(seq) {
			continue
		}
		tri := trinuc(seq, pos)
		sum += table[i-lo][tri]
		n++
	}
	full := hi - lo + 1
	if n == 0 {
		return 0
	}
	if n < full {
		// sample-size correction: scale the partial sum up to what a
		// full window would have contributed.
		sum *= float64(full) / float64(n)
	}
	return -sum
}

func trinuc(seq []byte, pos int) int {
	return codec.TrinucleotidePep(seq[pos], seq[pos+1], seq[pos+2])
}

// gaussianMixtureP implements the (sigma, mu, A, sigma', mu', A') scoring
// rule of S4.3.2: h and r are two Gaussian components evaluated at freq,
// p = clamp(h/(h+r), 0.01, 0.99) is the probability the adjustment
// subtracts the log of.
func gaussianMixtureP(freq float64, dist [6]float64) float64 {
	sigma, mu, a := dist[0], dist[1], dist[2]
	sigmaP, muP, aP := dist[3], dist[4], dist[5]

	h := gaussian(freq, mu, sigma, a)
	r := gaussian(freq, muP, sigmaP, aP)
	if h+r == 0 {
		return 0.5
	}
	p := h / (h + r)
	if p < 0.01 {
		p = 0.01
	}
	if p > 0.99 {
		p = 0.99
	}
	return p
}

func gaussian(x, mu, sigma, a float64) float64 {
	if sigma == 0 {
		return 0
	}
	return a * math.Exp(-((x-mu)*(x-mu))/(2*sigma*sigma))
}
