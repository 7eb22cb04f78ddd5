// Package output provides the decoder's AA/DNA FASTA writers and the
// tab-delimited metadata writer.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fraggo/fgs/internal/viterbi"
)

// Writers bundles the destinations a Prediction can be fanned out to.
// AA is always required; DNA and Meta are optional (nil means "skip").
type Writers struct {
	AA   *bufio.Writer
	DNA  *bufio.Writer
	Meta *bufio.Writer
}

// NewWriters wraps the given io.Writers in buffered writers. dna/meta may
// be nil to disable those outputs.
func NewWriters(aa, dna, meta io.Writer) *Writers {
	w := &Writers{AA: bufio.NewWriter(aa)}
	if dna != nil {
		w.DNA = bufio.NewWriter(dna)
	}
	if meta != nil {
		w.Meta = bufio.NewWriter(meta)
	}
	return w
}

// Flush flushes every enabled writer, returning the first error seen.
func (w *Writers) Flush() error {
	var err error
	if ferr := w.AA.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	if w.DNA != nil {
		if ferr := w.DNA.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	if w.Meta != nil {
		if ferr := w.Meta.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	return err
}

// WritePrediction emits one record's ORFs across the enabled writers, in
// the header/protein/metadata/dna layout of the reference output format.
func (w *Writers) WritePrediction(p viterbi.Prediction) error {
	if w.Meta != nil {
		if _, err := fmt.Fprintf(w.Meta, "%s\n", p.Head); err != nil {
			return err
		}
	}

	for _, o := range p.Outs {
		strand := strandChar(o.Forward)

		if _, err := fmt.Fprintf(w.AA, ">%s_%d_%d_%c\n%s\n", p.Head, o.DNAStartT, o.DNAEndT, strand, o.Protein); err != nil {
			return err
		}

		if w.Meta != nil {
			if err := writeMetaLine(w.Meta, o); err != nil {
				return err
			}
		}

		if w.DNA != nil {
			if _, err := fmt.Fprintf(w.DNA, ">%s_%d_%d_%c\n%s\n", p.Head, o.DNAStartT, o.DNAEndT, strand, o.DNA); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMetaLine(w *bufio.Writer, o viterbi.Out) error {
	if _, err := fmt.Fprintf(w, "%d\t%d\t%c\t%d\t%g\t", o.DNAStartT, o.DNAEndT, strandChar(o.Forward), o.Frame, o.FinalScore); err != nil {
		return err
	}
	if _, err := w.WriteString("I:"); err != nil {
		return err
	}
	for _, i := range o.Insert {
		if _, err := fmt.Fprintf(w, "%d,", i); err != nil {
			return err
		}
	}
	if _, err := w.WriteString("\tD:"); err != nil {
		return err
	}
	for _, d := range o.Delete {
		if _, err := fmt.Fprintf(w, "%d,", d); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\n")
	return err
}

func strandChar(forward bool) byte {
	if forward {
		return '+'
	}
	return '-'
}
