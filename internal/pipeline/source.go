package pipeline

import (
	"context"
	"sync"

	"pwmscan/core/fasta"
	"pwmscan/core/xio"
)

// Source is a restartable stream of sequence records. Count is the initial
// pass; Each must then yield exactly that many records.
type Source interface {
	Count(ctx context.Context) (int, error)
	Each(ctx context.Context, emit func(fasta.Record) error) error
}

// FileSource streams one or more FASTA files in order. Standard input ("-")
// cannot be rewound, so it is read into memory once on first use.
type FileSource struct {
	paths []string

	once    sync.Once
	stdin   []fasta.Record
	stdinEr error
}

// NewFileSource returns a Source over paths.
func NewFileSource(paths ...string) *FileSource {
	return &FileSource{paths: append([]string(nil), paths...)}
}

func (s *FileSource) loadStdin(ctx context.Context) ([]fasta.Record, error) {
	s.once.Do(func() {
		s.stdin, s.stdinEr = fasta.ReadAll(ctx, stdinReader())
	})
	return s.stdin, s.stdinEr
}

func (s *FileSource) Count(ctx context.Context) (int, error) {
	total := 0
	for _, p := range s.paths {
		if p == xio.Stdin {
			recs, err := s.loadStdin(ctx)
			if err != nil {
				return 0, err
			}
			total += len(recs)
			continue
		}
		n, err := fasta.CountPath(ctx, p)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (s *FileSource) Each(ctx context.Context, emit func(fasta.Record) error) error {
	for _, p := range s.paths {
		if p == xio.Stdin {
			recs, err := s.loadStdin(ctx)
			if err != nil {
				return err
			}
			if err := SliceSource(recs).Each(ctx, emit); err != nil {
				return err
			}
			continue
		}
		if err := fasta.StreamPathCtx(ctx, p, emit); err != nil {
			return err
		}
	}
	return nil
}

// SliceSource serves records already in memory.
type SliceSource []fasta.Record

func (s SliceSource) Count(context.Context) (int, error) { return len(s), nil }

func (s SliceSource) Each(ctx context.Context, emit func(fasta.Record) error) error {
	for _, rec := range s {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(rec); err != nil {
			return err
		}
	}
	return nil
}
