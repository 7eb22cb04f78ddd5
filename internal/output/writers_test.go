package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fraggo/fgs/internal/viterbi"
)

func samplePrediction() viterbi.Prediction {
	return viterbi.Prediction{
		Head: "contig1",
		Outs: []viterbi.Out{
			{
				DNAStartT:  10,
				DNAEndT:    30,
				Frame:      1,
				FinalScore: -4.5,
				Forward:    true,
				Insert:     []int{15},
				Delete:     nil,
				Protein:    "MPR",
				DNA:        "ATGCCCCGC",
			},
			{
				DNAStartT: 40,
				DNAEndT:   70,
				Frame:     2,
				Forward:   false,
				Protein:   "MKV",
				DNA:       "ATGAAAGTT",
			},
		},
	}
}

func TestWritePredictionAAFormat(t *testing.T) {
	var aa bytes.Buffer
	w := NewWriters(&aa, nil, nil)

	require.NoError(t, w.WritePrediction(samplePrediction()))
	require.NoError(t, w.Flush())

	got := aa.String()
	require.True(t, strings.Contains(got, ">contig1_10_30_+\nMPR\n"))
	require.True(t, strings.Contains(got, ">contig1_40_70_-\nMKV\n"))
}

func TestWritePredictionMetaFormat(t *testing.T) {
	var aa, meta bytes.Buffer
	w := NewWriters(&aa, nil, &meta)

	require.NoError(t, w.WritePrediction(samplePrediction()))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(meta.String(), "\n"), "\n")
	require.Equal(t, "contig1", lines[0])
	require.Equal(t, "10\t30\t+\t1\t-4.5\tI:15,\tD:", lines[1])
}

func TestWritePredictionDNAOptional(t *testing.T) {
	var aa, dna bytes.Buffer
	w := NewWriters(&aa, &dna, nil)

	require.NoError(t, w.WritePrediction(samplePrediction()))
	require.NoError(t, w.Flush())

	require.Contains(t, dna.String(), ">contig1_10_30_+\nATGCCCCGC\n")
}

func TestJSONWriterOmitsDNAByDefault(t *testing.T) {
	var buf bytes.Buffer
	jw := NewJSONWriter(&buf, false)
	require.NoError(t, jw.WritePrediction(samplePrediction()))

	require.NotContains(t, buf.String(), "\"dna\"")
	require.Contains(t, buf.String(), "\"protein\":\"MPR\"")
}
