package motif

import (
	"fmt"
	"sort"
)

// Store owns the prepared motifs and the background for the life of a run.
// It is read-only after construction and safe to share between goroutines.
type Store struct {
	motifs map[string]*PWM
	names  []string
	bg     *Background
}

// NewStore wraps already-prepared (log-space) motifs.
func NewStore(motifs map[string]*PWM, bg *Background) (*Store, error) {
	if bg == nil {
		bg = DefaultBackground()
	}
	s := &Store{motifs: make(map[string]*PWM, len(motifs)), bg: bg}
	for name, m := range motifs {
		if !m.Log {
			return nil, fmt.Errorf("motif %s: not in log space", name)
		}
		s.motifs[name] = m
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	return s, nil
}

// LoadStore reads path, applies the pseudocount and log conversion to every
// motif, and stops at the first failure.
func LoadStore(path string, pseudocount float64, bg *Background) (*Store, error) {
	motifs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(motifs))
	for name := range motifs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := Prepare(motifs[name], pseudocount); err != nil {
			return nil, err
		}
	}
	return NewStore(motifs, bg)
}

// Names returns motif names in sorted order.
func (s *Store) Names() []string { return append([]string(nil), s.names...) }

// Get returns the named motif.
func (s *Store) Get(name string) (*PWM, bool) {
	m, ok := s.motifs[name]
	return m, ok
}

// Background returns the shared background model.
func (s *Store) Background() *Background { return s.bg }

// Len is the number of motifs.
func (s *Store) Len() int { return len(s.names) }
