package model

// Select implements ModelSelector: it computes the GC bucket of seq and
// materializes a per-decode HMM by copying that bucket's emission tables
// out of train. global carries the bucket-independent transition
// parameters shared by every decode.
//
// Returns the materialized HMM and the bucket index (0..43), which the
// caller logs and which callers double-checking idempotence can compare
// across repeated decodes of the same sequence.
func Select(train *Train, global GlobalParams, seq []byte) (*HMM, int) {
	bucket := gcBucket(seq)

	hmm := &HMM{
		GlobalParams: global,
		EM:           train.Trans[bucket],
		EM1:          train.RTrans[bucket],
		TrRR:         train.Noncoding[bucket],
		TrS:          train.Start[bucket],
		TrE:          train.Stop[bucket],
		TrS1:         train.Start1[bucket],
		TrE1:         train.Stop1[bucket],
		SDist:        train.SDist[bucket],
		EDist:        train.EDist[bucket],
		S1Dist:       train.S1Dist[bucket],
		E1Dist:       train.E1Dist[bucket],
		Bucket:       bucket,
	}
	return hmm, bucket
}

// gcBucket computes floor((cgCount/len)*100) - 26, clamped to [0,43].
func gcBucket(seq []byte) int {
	cgCount := 0
	for _, c := range seq {
		switch c {
		case 'C', 'c', 'G', 'g':
			cgCount++
		}
	}
	if len(seq) == 0 {
		return 0
	}
	raw := int((float64(cgCount)/float64(len(seq)))*100.0) - 26
	switch {
	case raw < 0:
		return 0
	case raw > 43:
		return 43
	default:
		return raw
	}
}
