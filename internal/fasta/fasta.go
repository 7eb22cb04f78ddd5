// Package fasta provides streaming FASTA record ingestion for the decoder,
// including gzip/pgzip auto-detection and the minimum-length filter of
// the input pipeline.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// MinRecordLength is the shortest input record the decoder will accept;
// shorter records are skipped rather than reported as errors.
const MinRecordLength = 70

// Record is one FASTA entry: a header line (without the leading '>')
// and its nucleotide sequence.
type Record struct {
	Head string
	Seq  []byte
}

// Reader streams Records from an underlying FASTA file, transparently
// decompressing gzip/pgzip-compressed input detected by magic bytes.
type Reader struct {
	scanner *bufio.Scanner
	closers []io.Closer
	pending *Record
	err     error
}

// Open opens path (or stdin for "-") and returns a Reader positioned at
// the first record.
func Open(path string) (*Reader, error) {
	var raw io.Reader
	var closers []io.Closer

	if path == "-" {
		raw = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open fasta file: %w", err)
		}
		closers = append(closers, f)
		raw = f

		magic := make([]byte, 2)
		if _, err := io.ReadFull(f, magic); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				closeAll(closers)
				return nil, fmt.Errorf("seek fasta file: %w", err)
			}
			gz, err := pgzip.NewReader(f)
			if err != nil {
				closeAll(closers)
				return nil, fmt.Errorf("open pgzip reader: %w", err)
			}
			closers = append(closers, gz)
			raw = gz
		} else if _, err := f.Seek(0, io.SeekStart); err != nil {
			closeAll(closers)
			return nil, fmt.Errorf("seek fasta file: %w", err)
		}
	}

	scanner := bufio.NewScanner(raw)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024)

	return &Reader{scanner: scanner, closers: closers}, nil
}

// Close releases any underlying file/decompressor handles.
func (r *Reader) Close() error {
	return closeAll(r.closers)
}

func closeAll(closers []io.Closer) error {
	var err error
	for i := len(closers) - 1; i >= 0; i-- {
		if cerr := closers[i].Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Next returns the next record at least MinRecordLength bases long,
// skipping shorter ones, or io.EOF once the input is exhausted.
func (r *Reader) Next() (Record, error) {
	for {
		rec, ok, err := r.readOne()
		if err != nil {
			return Record{}, err
		}
		if !ok {
			return Record{}, io.EOF
		}
		if len(rec.Seq) >= MinRecordLength {
			return rec, nil
		}
	}
}

func (r *Reader) readOne() (Record, bool, error) {
	if r.err != nil {
		return Record{}, false, r.err
	}

	var head string
	var seq strings.Builder

	if r.pending != nil {
		head = r.pending.Head
		r.pending = nil
	} else {
		for r.scanner.Scan() {
			line := strings.TrimSpace(r.scanner.Text())
			if strings.HasPrefix(line, ">") {
				head = strings.TrimPrefix(line, ">")
				break
			}
		}
		if head == "" {
			if err := r.scanner.Err(); err != nil {
				r.err = err
				return Record{}, false, err
			}
			return Record{}, false, nil
		}
	}

	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if strings.HasPrefix(line, ">") {
			r.pending = &Record{Head: strings.TrimPrefix(line, ">")}
			return Record{Head: head, Seq: []byte(seq.String())}, true, nil
		}
		seq.WriteString(line)
	}
	if err := r.scanner.Err(); err != nil {
		r.err = err
		return Record{}, false, err
	}
	return Record{Head: head, Seq: []byte(seq.String())}, true, nil
}
