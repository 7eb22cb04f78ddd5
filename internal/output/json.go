package output

import (
	"encoding/json"
	"io"

	"github.com/fraggo/fgs/internal/viterbi"
)

// jsonOut mirrors viterbi.Out with explicit JSON field names, since the
// decoder's own struct tags are kept plain for its internal use.
type jsonOut struct {
	Head       string  `json:"head"`
	Start      int     `json:"dna_start"`
	End        int     `json:"dna_end"`
	Frame      int     `json:"frame"`
	Score      float64 `json:"final_score"`
	Forward    bool    `json:"forward"`
	Insert     []int   `json:"insert"`
	Delete     []int   `json:"delete"`
	Protein    string  `json:"protein"`
	DNA        string  `json:"dna,omitempty"`
}

// JSONWriter emits one JSON object per ORF, newline-delimited, so a
// consumer can stream results without buffering the whole run.
type JSONWriter struct {
	enc        *json.Encoder
	includeDNA bool
}

// NewJSONWriter wraps w. When includeDNA is false, the dna field is
// omitted to keep per-record output small.
func NewJSONWriter(w io.Writer, includeDNA bool) *JSONWriter {
	return &JSONWriter{enc: json.NewEncoder(w), includeDNA: includeDNA}
}

// WritePrediction emits every ORF in p as its own JSON line.
func (j *JSONWriter) WritePrediction(p viterbi.Prediction) error {
	for _, o := range p.Outs {
		rec := jsonOut{
			Head:    p.Head,
			Start:   o.DNAStartT,
			End:     o.DNAEndT,
			Frame:   o.Frame,
			Score:   o.FinalScore,
			Forward: o.Forward,
			Insert:  o.Insert,
			Delete:  o.Delete,
			Protein: o.Protein,
		}
		if j.includeDNA {
			rec.DNA = o.DNA
		}
		if err := j.enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
