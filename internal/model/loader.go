package model

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fraggo/fgs/internal/fgserrors"
)

// file names inside a training directory, matching the layout the
// original FragGeneScan train/ directory uses.
const (
	geneFile       = "gene"
	rgeneFile      = "rgene"
	noncodingFile  = "noncoding"
	startFile      = "start"
	stopFile       = "stop"
	start1File     = "start1"
	stop1File      = "stop1"
	pwmFile        = "pwm"
	transitionFile = "transition"
)

// Loader reads a training directory into a Train table set plus the
// bucket-independent GlobalParams, converting every stored probability to
// its natural log as it is read (the pwm distribution parameters are not
// probabilities and stay linear).
type Loader struct {
	dir    string
	logger *zap.Logger
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{dir: dir, logger: logger}
}

// Load parses every training file under the loader's directory and
// returns the fully populated Train tables and GlobalParams.
func (l *Loader) Load() (*Train, GlobalParams, error) {
	train := &Train{}
	var global GlobalParams

	steps := []struct {
		name string
		fn   func(*Train) error
	}{
		{"gene", l.loadMState},
		{"rgene", l.loadM1State},
		{"noncoding", l.loadNoncoding},
		{"start", func(t *Train) error { return l.loadPositional(startFile, &t.Start) }},
		{"stop", func(t *Train) error { return l.loadPositional(stopFile, &t.Stop) }},
		{"start1", func(t *Train) error { return l.loadPositional(start1File, &t.Start1) }},
		{"stop1", func(t *Train) error { return l.loadPositional(stop1File, &t.Stop1) }},
		{"pwm", l.loadPWMDist},
	}
	for _, step := range steps {
		if err := step.fn(train); err != nil {
			return nil, GlobalParams{}, fmt.Errorf("%w: loading %s: %v", fgserrors.ErrTrainingLoad, step.name, err)
		}
		l.logger.Debug("loaded training table", zap.String("table", step.name))
	}

	g, err := l.loadTransitions()
	if err != nil {
		return nil, GlobalParams{}, fmt.Errorf("%w: loading transitions: %v", fgserrors.ErrTrainingLoad, err)
	}
	global = g

	l.logger.Info("training directory loaded", zap.String("dir", l.dir))
	return train, global, nil
}

func (l *Loader) open(name string) (*bufio.Scanner, *os.File, error) {
	f, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		return nil, nil, err
	}
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return s, f, nil
}

func (l *Loader) loadMState(t *Train) error {
	return l.load4TupleBlock(geneFile, func(p, i, j, k int, v float64) { t.Trans[p][i][j][k] = v })
}

func (l *Loader) loadM1State(t *Train) error {
	return l.load4TupleBlock(rgeneFile, func(p, i, j, k int, v float64) { t.RTrans[p][i][j][k] = v })
}

// load4TupleBlock reads 44 buckets x 6 frames x 16 dinucleotides of
// 4-tuples, one header line per bucket.
func (l *Loader) load4TupleBlock(name string, set func(p, i, j, k int, v float64)) error {
	s, f, err := l.open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	for p := 0; p < 44; p++ {
		if !s.Scan() { // header
			return fmt.Errorf("unexpected EOF reading %s header for bucket %d", name, p)
		}
		for i := 0; i < 6; i++ {
			for j := 0; j < 16; j++ {
				vals, err := scanFloats(s, 4)
				if err != nil {
					return fmt.Errorf("%s bucket %d frame %d dinuc %d: %w", name, p, i, j, err)
				}
				for k, v := range vals {
					set(p, i, j, k, math.Log(v))
				}
			}
		}
	}
	return s.Err()
}

func (l *Loader) loadNoncoding(t *Train) error {
	s, f, err := l.open(noncodingFile)
	if err != nil {
		return err
	}
	defer f.Close()

	for p := 0; p < 44; p++ {
		if !s.Scan() {
			return fmt.Errorf("unexpected EOF reading noncoding header for bucket %d", p)
		}
		for j := 0; j < 4; j++ {
			vals, err := scanFloats(s, 4)
			if err != nil {
				return fmt.Errorf("noncoding bucket %d row %d: %w", p, j, err)
			}
			for k, v := range vals {
				t.Noncoding[p][j][k] = math.Log(v)
			}
		}
	}
	return s.Err()
}

func (l *Loader) loadPositional(name string, table *[44][61][64]float64) error {
	s, f, err := l.open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	for p := 0; p < 44; p++ {
		if !s.Scan() {
			return fmt.Errorf("unexpected EOF reading %s header for bucket %d", name, p)
		}
		for j := 0; j < 61; j++ {
			vals, err := scanFloats(s, 64)
			if err != nil {
				return fmt.Errorf("%s bucket %d pos %d: %w", name, p, j, err)
			}
			for k, v := range vals {
				table[p][j][k] = math.Log(v)
			}
		}
	}
	return s.Err()
}

func (l *Loader) loadPWMDist(t *Train) error {
	s, f, err := l.open(pwmFile)
	if err != nil {
		return err
	}
	defer f.Close()

	dists := [4]*[44][6]float64{&t.SDist, &t.EDist, &t.S1Dist, &t.E1Dist}
	for p := 0; p < 44; p++ {
		if !s.Scan() {
			return fmt.Errorf("unexpected EOF reading pwm header for bucket %d", p)
		}
		for i := 0; i < 4; i++ {
			vals, err := scanFloats(s, 6)
			if err != nil {
				return fmt.Errorf("pwm bucket %d dist %d: %w", p, i, err)
			}
			for k, v := range vals {
				dists[i][p][k] = v // distribution params stay in linear space
			}
		}
	}
	return s.Err()
}

func (l *Loader) loadTransitions() (GlobalParams, error) {
	s, f, err := l.open(transitionFile)
	if err != nil {
		return GlobalParams{}, err
	}
	defer f.Close()

	var g GlobalParams
	lineNo := 0
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		lineNo++
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch {
		case lineNo >= 2 && lineNo <= 15:
			idx, err := transitionIndex(fields[0])
			if err != nil {
				return GlobalParams{}, err
			}
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return GlobalParams{}, err
			}
			g.Tr[idx] = math.Log(v)
		case lineNo >= 17 && lineNo <= 32:
			g.TrMI[nt2int(fields[0])][nt2int(fields[1])] = logField(fields[2])
		case lineNo >= 34 && lineNo <= 49:
			g.TrII[nt2int(fields[0])][nt2int(fields[1])] = logField(fields[2])
		case lineNo >= 51:
			idx := lineNo - 51
			if idx >= 0 && idx < 29 {
				g.InitialState[idx] = logField(fields[1])
			}
		}
	}
	return g, s.Err()
}

func logField(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return math.Log(v)
}

func nt2int(s string) int {
	if len(s) == 0 {
		return 4
	}
	switch s[0] {
	case 'A', 'a':
		return 0
	case 'C', 'c':
		return 1
	case 'G', 'g':
		return 2
	case 'T', 't':
		return 3
	default:
		return 4
	}
}

func transitionIndex(name string) (int, error) {
	switch name {
	case "MM":
		return TrMM, nil
	case "MI":
		return TrMI, nil
	case "MD":
		return TrMD, nil
	case "II":
		return TrII, nil
	case "IM":
		return TrIM, nil
	case "DD":
		return TrDD, nil
	case "DM":
		return TrDM, nil
	case "GE":
		return TrGE, nil
	case "GG":
		return TrGG, nil
	case "ER":
		return TrER, nil
	case "RS":
		return TrRS, nil
	case "RR":
		return TrRR, nil
	case "ES":
		return TrES, nil
	case "ES1":
		return TrES1, nil
	default:
		return 0, fmt.Errorf("unknown transition name %q", name)
	}
}

func scanFloats(s *bufio.Scanner, n int) ([]float64, error) {
	if !s.Scan() {
		return nil, fmt.Errorf("unexpected EOF")
	}
	fields := strings.Fields(s.Text())
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d fields, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
