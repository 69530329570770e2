package appcore

import (
	"errors"
	"os"

	"pwmscan/internal/cli"
	"pwmscan/internal/writers"
)

// fileEmitter is an Emitter that owns its file.
type fileEmitter struct {
	writers.Emitter
	f    *os.File
	path string
}

func newFileEmitter(format, path string, flag int, o writers.Options) (*fileEmitter, error) {
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, err
	}
	em, err := writers.New(format, f, o)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileEmitter{Emitter: em, f: f, path: path}, nil
}

// Close flushes, then closes the file.
func (e *fileEmitter) Close() error {
	return errors.Join(e.Emitter.Close(), e.f.Close())
}

const (
	createFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	appendFlags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
)

// runOutputs are the files that stay open across motif passes.
type runOutputs struct {
	bed *fileEmitter
}

// openRunOutputs creates the BED file and truncates the shared text score
// file, so every motif pass can append to it.
func openRunOutputs(o cli.Options, sum *Summary) (*runOutputs, error) {
	out := &runOutputs{}
	if o.Scores && !o.Wig {
		path := writers.ScoreTextPath(o.Prefix)
		f, err := os.OpenFile(path, createFlags, 0o644)
		if err != nil {
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
	}
	if o.Predict {
		path := writers.PredictionPath(o.Prefix)
		bed, err := newFileEmitter(writers.FormatBED, path, createFlags, writers.Options{Genomic: o.Genomic})
		if err != nil {
			return nil, err
		}
		out.bed = bed
		sum.addOutput(path)
	}
	return out, nil
}

func (r *runOutputs) Close() error {
	if r.bed == nil {
		return nil
	}
	return r.bed.Close()
}

// openScoreOutput opens the score track for one motif pass: a fresh wig file
// per motif, or the run's text file in append mode.
func openScoreOutput(o cli.Options, motif string) (*fileEmitter, error) {
	if o.Wig {
		return newFileEmitter(writers.FormatWig, writers.WigPath(o.Prefix, motif), createFlags, writers.Options{})
	}
	return newFileEmitter(writers.FormatText, writers.ScoreTextPath(o.Prefix), appendFlags, writers.Options{})
}
