package fasta

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func longSeq(prefix string) string {
	seq := prefix
	for len(seq) < MinRecordLength {
		seq += "ACGTACGTAC"
	}
	return seq
}

func TestReaderSkipsShortRecords(t *testing.T) {
	content := ">short\nACGT\n>long\n" + longSeq("ATGCCC") + "\n"
	path := writeTemp(t, "in.fasta", content)

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "long", rec.Head)
	require.GreaterOrEqual(t, len(rec.Seq), MinRecordLength)

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderHandlesMultipleRecords(t *testing.T) {
	seqA := longSeq("ATGAAA")
	seqB := longSeq("ATGCCC")
	content := ">a\n" + seqA + "\n>b\n" + seqB + "\n"
	path := writeTemp(t, "multi.fasta", content)

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	var heads []string
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		heads = append(heads, rec.Head)
	}
	require.Equal(t, []string{"a", "b"}, heads)
}

func TestReaderDetectsGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.fasta.gz")

	var buf bytes.Buffer
	gz := pgzip.NewWriter(&buf)
	_, err := gz.Write([]byte(">gz\n" + longSeq("ATGGGG") + "\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "gz", rec.Head)
}
