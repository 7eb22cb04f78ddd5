package model

import "testing"

func TestGCBucketClampsToRange(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want int
	}{
		{"all AT -> clamps to 0", "AAAATTTT", 0},
		{"all GC -> clamps to 43", "GGGGCCCC", 43},
		{"50pct GC", stringRepeat("ATCG", 25), 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gcBucket([]byte(tt.seq)); got != tt.want {
				t.Errorf("gcBucket(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestSelectMaterializesBucketSlice(t *testing.T) {
	var train Train
	train.Trans[10][0][0][0] = -1.5
	global := GlobalParams{}

	seq := stringRepeat("ATCG", 25) // 50% GC -> bucket 24, not 10; just check wiring
	hmm, bucket := Select(&train, global, []byte(seq))

	if hmm.Bucket != bucket {
		t.Errorf("hmm.Bucket = %d, want %d", hmm.Bucket, bucket)
	}
	if hmm.EM != train.Trans[bucket] {
		t.Error("Select did not copy the matching bucket's Trans table into EM")
	}
}

func stringRepeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
