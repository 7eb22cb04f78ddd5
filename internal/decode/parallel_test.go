package decode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fraggo/fgs/internal/fasta"
	"github.com/fraggo/fgs/internal/model"
)

func TestDriverRunDecodesEveryItem(t *testing.T) {
	d := &Driver{Train: &model.Train{}, Global: model.GlobalParams{}, WholeGenome: true}

	seq := strings.Repeat("ATGCCCAAACCCGGGTTTACGACG", 10)
	items := make(chan WorkItem, 3)
	items <- WorkItem{Seq: 0, Record: fasta.Record{Head: "a", Seq: []byte(seq)}}
	items <- WorkItem{Seq: 1, Record: fasta.Record{Head: "b", Seq: []byte(seq)}}
	items <- WorkItem{Seq: 2, Record: fasta.Record{Head: "c", Seq: []byte(seq)}}
	close(items)

	results := d.Run(items, 2)

	seen := map[string]bool{}
	err := Collect(results, func(r WorkResult) error {
		require.NoError(t, r.Err)
		seen[r.Head] = true
		return nil
	})
	require.NoError(t, err)
	require.Len(t, seen, 3)
	require.True(t, seen["a"] && seen["b"] && seen["c"])
}

func TestCollectStopsReportingAfterFirstError(t *testing.T) {
	results := make(chan WorkResult, 2)
	results <- WorkResult{Seq: 0, Head: "a"}
	results <- WorkResult{Seq: 1, Head: "b"}
	close(results)

	calls := 0
	err := Collect(results, func(r WorkResult) error {
		calls++
		if r.Head == "a" {
			return errBoom
		}
		return nil
	})
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, 1, calls)
}

var errBoom = &boomError{}

type boomError struct{}

func (*boomError) Error() string { return "boom" }
