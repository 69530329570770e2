// Package motif holds position weight matrices and the single-order
// background model they are scored against. It never imports scan,
// pipeline or writers; keep it model-only.
package motif

import "math"

// Column order of every PWM row and background table.
const (
	A = iota
	C
	G
	T
)

// Alphabet lists the nucleotides in column order.
const Alphabet = "ACGT"

var index [256]int8

func init() {
	for i := range index {
		index[i] = -1
	}
	for i, b := range []byte(Alphabet) {
		index[b] = int8(i)
		index[b+'a'-'A'] = int8(i)
	}
}

// Index returns the column of base b, or -1 for anything that is not A, C,
// G or T (either case).
func Index(b byte) int { return int(index[b]) }

// PWM is a position weight matrix: one row per motif position, one column
// per nucleotide. Rows hold probabilities until ToLog converts them.
type PWM struct {
	Name string
	Alt  string
	Rows [][4]float64
	Log  bool
}

// Len is the motif length (number of rows).
func (p *PWM) Len() int { return len(p.Rows) }

// Clone returns a deep copy.
func (p *PWM) Clone() *PWM {
	c := *p
	c.Rows = append([][4]float64(nil), p.Rows...)
	return &c
}

// DefaultFrequencies is the background used when none is configured.
var DefaultFrequencies = [4]float64{0.3, 0.2, 0.2, 0.3}

// Background is an immutable table of nucleotide log-frequencies. Build it
// once and share the pointer with every scoring call.
type Background struct {
	logf [4]float64
}

// NewBackground converts frequencies (A, C, G, T) to log space.
func NewBackground(freqs [4]float64) (*Background, error) {
	var b Background
	for i, f := range freqs {
		if !(f > 0) {
			return nil, &ArithmeticError{Op: "log", Motif: "background", Row: -1, Col: i, Value: f}
		}
		b.logf[i] = math.Log(f)
	}
	return &b, nil
}

// DefaultBackground returns the A=0.3 C=0.2 G=0.2 T=0.3 background.
func DefaultBackground() *Background {
	b, err := NewBackground(DefaultFrequencies)
	if err != nil {
		panic(err)
	}
	return b
}

// LogFreq is the log-frequency of column i.
func (b *Background) LogFreq(i int) float64 { return b.logf[i] }

// Frequencies returns the table back in linear space.
func (b *Background) Frequencies() [4]float64 {
	var f [4]float64
	for i, l := range b.logf {
		f[i] = math.Exp(l)
	}
	return f
}
