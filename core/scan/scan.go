package scan

import (
	"errors"
	"fmt"

	"pwmscan/core/fasta"
	"pwmscan/core/motif"
)

// Strands of a Match.
const (
	Forward byte = '+'
	Reverse byte = '-'
)

var (
	// ErrEmptySequence marks a record with no bases.
	ErrEmptySequence = errors.New("empty sequence")
	// ErrBadBase marks a base other than A, C, G, T or N.
	ErrBadBase = errors.New("unexpected base")
	// ErrNotLogSpace marks a motif that was never converted with motif.ToLog.
	ErrNotLogSpace = errors.New("motif is not in log space")
)

// SequenceError is a per-sequence scoring failure. It never aborts a run:
// the sequence contributes no windows and the error is reported.
type SequenceError struct {
	ID  string
	Pos int // 0-based position of the offending base, -1 if not positional
	Err error
}

func (e *SequenceError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("sequence %s: position %d: %v", e.ID, e.Pos+1, e.Err)
	}
	return fmt.Sprintf("sequence %s: %v", e.ID, e.Err)
}

func (e *SequenceError) Unwrap() error { return e.Err }

// Match is a window whose strand score exceeded the threshold. Start and End
// are relative to the sequence record.
type Match struct {
	Motif  string
	Strand byte
	Start  int
	End    int
	Score  float64
}

// Result is everything one sequence produced for one motif. The worker that
// builds it hands it off whole; nothing mutates it afterwards.
type Result struct {
	ID      string
	Desc    string
	Coords  fasta.Coords
	Located bool // Coords came from the description, not the defaults
	Motif   string
	Windows int
	Scores  []float64 // best-strand score per window, in offset order
	Matches []Match
}

// Scanner selects the outputs computed per window.
type Scanner struct {
	Threshold float64
	Scores    bool // keep max(fwd, rev) per window
	Predict   bool // keep strands scoring strictly above Threshold
}

// Scan scores every window of rec against m.
func (s Scanner) Scan(rec fasta.Record, m *motif.PWM, bg *motif.Background) (Result, error) {
	coords, ok := fasta.ParseCoords(rec)
	res := Result{ID: rec.ID, Desc: rec.Desc, Coords: coords, Located: ok, Motif: m.Name}

	if !m.Log {
		return res, fmt.Errorf("%s: %w", m.Name, ErrNotLogSpace)
	}
	if len(rec.Seq) == 0 {
		return res, &SequenceError{ID: rec.ID, Pos: -1, Err: ErrEmptySequence}
	}
	if pos := firstBadBase(rec.Seq); pos >= 0 {
		return res, &SequenceError{ID: rec.ID, Pos: pos, Err: fmt.Errorf("%w %q", ErrBadBase, rec.Seq[pos])}
	}

	L := m.Len()
	n := Windows(len(rec.Seq), L)
	res.Windows = n
	if n == 0 {
		return res, nil
	}
	if s.Scores {
		res.Scores = make([]float64, 0, n)
	}
	for off := 1; off <= n; off++ {
		fwd, rev := ScoreWindow(rec.Seq, off, m, bg)
		if s.Scores {
			res.Scores = append(res.Scores, max(fwd, rev))
		}
		if !s.Predict {
			continue
		}
		// both strands report the forward window's coordinates
		if fwd > s.Threshold {
			res.Matches = append(res.Matches, Match{Motif: m.Name, Strand: Forward, Start: off, End: off + L, Score: fwd})
		}
		if rev > s.Threshold {
			res.Matches = append(res.Matches, Match{Motif: m.Name, Strand: Reverse, Start: off, End: off + L, Score: rev})
		}
	}
	return res, nil
}

func firstBadBase(seq []byte) int {
	for i, b := range seq {
		switch b {
		case 'A', 'C', 'G', 'T', 'N', 'a', 'c', 'g', 't', 'n':
		default:
			return i
		}
	}
	return -1
}
