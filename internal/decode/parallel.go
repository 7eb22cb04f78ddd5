// Package decode drives the HMM decoder across many FASTA records
// concurrently and collects their predictions.
package decode

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/fraggo/fgs/internal/codec"
	"github.com/fraggo/fgs/internal/fasta"
	"github.com/fraggo/fgs/internal/model"
	"github.com/fraggo/fgs/internal/viterbi"
)

// WorkItem holds one FASTA record ready for decoding.
type WorkItem struct {
	Seq    int
	Record fasta.Record
}

// WorkResult holds the decoder's output for a single record.
type WorkResult struct {
	Seq        int
	Head       string
	Prediction viterbi.Prediction
	Err        error
}

// Driver runs the Select->Fill->Backtrack pipeline against a stream of
// FASTA records using a pool of workers.
type Driver struct {
	Train       *model.Train
	Global      model.GlobalParams
	WholeGenome bool
	Log         *zap.Logger
}

// Run decodes items using a pool of workers. Results are sent to the
// returned channel in arrival order, not input order — callers that
// need stable ordering must sort downstream; FragGeneScan's own output
// order is not guaranteed either.
func (d *Driver) Run(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				pred, err := d.decodeOne(item.Record)
				if err != nil && d.Log != nil {
					d.Log.Warn("decode failed", zap.String("head", item.Record.Head), zap.Error(err))
				}
				results <- WorkResult{
					Seq:        item.Seq,
					Head:       item.Record.Head,
					Prediction: pred,
					Err:        err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (d *Driver) decodeOne(rec fasta.Record) (viterbi.Prediction, error) {
	seq := codec.Uppercase(rec.Seq)
	hmm, _ := model.Select(d.Train, d.Global, seq)
	matrices := viterbi.Fill(seq, hmm, d.WholeGenome)
	return viterbi.Backtrack(seq, matrices, hmm, rec.Head, d.WholeGenome), nil
}

// Collect drains results (in arrival order) calling fn for each one. It
// blocks until the results channel is closed and returns the first
// error fn reports, after draining the remaining results to unblock
// any still-running workers.
func Collect(results <-chan WorkResult, fn func(WorkResult) error) error {
	var firstErr error
	for r := range results {
		if firstErr != nil {
			continue
		}
		if err := fn(r); err != nil {
			firstErr = err
		}
	}
	return firstErr
}
