// Package appcore runs one scan: it loads the model, streams every sequence
// source once per motif through the worker pool and owns the output files.
package appcore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pwmscan/core/motif"
	"pwmscan/core/scan"
	"pwmscan/internal/cli"
	"pwmscan/internal/metrics"
	"pwmscan/internal/pipeline"
	"pwmscan/internal/version"
	"pwmscan/internal/writers"
)

// ErrConfig marks option values rejected before any input is read.
var ErrConfig = errors.New("invalid configuration")

// Run executes a scan and maps the outcome to a process exit code.
func Run(ctx context.Context, log zerolog.Logger, o cli.Options) int {
	_, err := Scan(ctx, log, o)
	code := ExitCode(err)
	switch {
	case code == 130:
		log.Warn().Msg("cancelled")
	case err != nil && code != 0:
		log.Error().Err(err).Msg("scan failed")
	}
	return code
}

// ExitCode maps a Scan error to 0 ok, 2 config or model error, 3 I/O or
// runtime error, 130 cancelled. A broken output pipe counts as success.
func ExitCode(err error) int {
	var (
		pe *motif.ParseError
		ae *motif.ArithmeticError
	)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case errors.As(err, &pe), errors.As(err, &ae), errors.Is(err, ErrConfig):
		return 2
	case writers.IsBrokenPipe(err):
		return 0
	default:
		return 3
	}
}

// Scan runs every motif over every sequence and returns the run summary.
// When o.Summary is set the summary is also written next to the outputs.
func Scan(ctx context.Context, log zerolog.Logger, o cli.Options) (*Summary, error) {
	started := time.Now()
	runID := uuid.NewString()
	log = log.With().Str("run", runID).Logger()

	freqs, err := cli.ParseFrequencies(o.Background)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	bg, err := motif.NewBackground(freqs)
	if err != nil {
		return nil, err
	}
	store, err := motif.LoadStore(o.Motifs, o.Pseudocount, bg)
	if err != nil {
		var pe *motif.ParseError
		var ae *motif.ArithmeticError
		if errors.As(err, &pe) || errors.As(err, &ae) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	threads := cli.EffectiveThreads(o.Threads)
	mx := metrics.New()
	mx.Threads.Set(float64(threads))

	sum := &Summary{
		RunID:     runID,
		Version:   version.Version,
		Started:   started.UTC(),
		Motifs:    o.Motifs,
		Sequences: o.Sequences,
		Threshold: o.Threshold,
		Threads:   threads,
	}
	log.Info().
		Int("motifs", store.Len()).
		Strs("sequences", o.Sequences).
		Int("threads", threads).
		Msg("scan started")

	out, err := openRunOutputs(o, sum)
	if err != nil {
		return nil, err
	}

	r := &runner{
		log:     log,
		opts:    o,
		src:     pipeline.NewFileSource(o.Sequences...),
		bg:      store.Background(),
		threads: threads,
		mx:      mx,
		bed:     out.bed,
		sum:     sum,
	}
	var scanErr error
	for _, name := range store.Names() {
		m, _ := store.Get(name)
		if scanErr = r.pass(ctx, m); scanErr != nil {
			break
		}
	}
	if err := out.Close(); err != nil && scanErr == nil {
		scanErr = err
	}

	elapsed := time.Since(started)
	sum.Elapsed = elapsed.Round(time.Millisecond).String()
	if scanErr != nil {
		return sum, scanErr
	}

	if o.MetricsFile != "" {
		if err := mx.WriteTextfile(o.MetricsFile); err != nil {
			return sum, fmt.Errorf("write metrics: %w", err)
		}
		sum.addOutput(o.MetricsFile)
	}
	if o.Summary {
		path := SummaryPath(o.Prefix)
		sum.addOutput(path)
		if err := sum.WriteFile(path); err != nil {
			return sum, err
		}
	}
	log.Info().Dur("elapsed", elapsed).Strs("outputs", sum.Outputs).Msg("scan finished")
	return sum, nil
}

// runner carries what every motif pass shares.
type runner struct {
	log     zerolog.Logger
	opts    cli.Options
	src     pipeline.Source
	bg      *motif.Background
	threads int
	mx      *metrics.Run
	bed     *fileEmitter
	sum     *Summary
}

// pass streams the whole source once for m. Score files live for one pass;
// the BED emitter lives for the run.
func (r *runner) pass(ctx context.Context, m *motif.PWM) error {
	o := r.opts
	log := r.log.With().Str("motif", m.Name).Logger()
	start := time.Now()

	var score *fileEmitter
	if o.Scores {
		var err error
		if score, err = openScoreOutput(o, m.Name); err != nil {
			return err
		}
		r.sum.addOutput(score.path)
	}

	job := pipeline.Job{
		Motif:      m,
		Background: r.bg,
		Scanner:    scan.Scanner{Threshold: o.Threshold, Scores: o.Scores, Predict: o.Predict},
	}
	t := MotifTally{Motif: m.Name}

	err := pipeline.ForEachResult(ctx, pipeline.Config{Threads: r.threads}, r.src, job, func(out pipeline.Outcome) error {
		res := out.Result
		if out.Err != nil {
			t.Failed++
			r.mx.Fail(m.Name)
			log.Warn().Err(out.Err).Str("seq", res.ID).Msg("sequence skipped")
			return nil
		}
		if !res.Located {
			log.Debug().Str("seq", res.ID).Msg("no coordinates in description; using whole record")
		}
		t.Sequences++
		t.Windows += res.Windows
		t.Matches += len(res.Matches)
		r.mx.Observe(res)

		if score != nil {
			if err := score.Emit(res); err != nil {
				return fmt.Errorf("write %s: %w", score.path, err)
			}
		}
		if r.bed != nil {
			if err := r.bed.Emit(res); err != nil {
				return fmt.Errorf("write predictions: %w", err)
			}
		}
		return nil
	})
	if score != nil {
		if cerr := score.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	t.Seconds = elapsed.Seconds()
	r.mx.Pass(m.Name, elapsed)
	r.sum.Passes = append(r.sum.Passes, t)
	log.Info().
		Int("sequences", t.Sequences).
		Int("failed", t.Failed).
		Int("windows", t.Windows).
		Int("matches", t.Matches).
		Dur("elapsed", elapsed).
		Msg("motif done")
	return nil
}
