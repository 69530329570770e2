package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pwmscan/core/fasta"
	"pwmscan/core/motif"
	"pwmscan/core/scan"
)

// ErrSourceChanged means the source yielded a different number of records
// than its counting pass reported.
var ErrSourceChanged = errors.New("sequence source changed between count and scan")

// Config controls the dispatcher.
type Config struct {
	Threads int // worker goroutines; <=1 scores inline on the caller's goroutine
}

// Job is the read-only model every worker scores against.
type Job struct {
	Motif      *motif.PWM
	Background *motif.Background
	Scanner    scan.Scanner
}

func (j Job) run(rec fasta.Record) Outcome {
	res, err := j.Scanner.Scan(rec, j.Motif, j.Background)
	return Outcome{Result: res, Err: err}
}

// Outcome is one finished sequence. Err is set when that sequence could not
// be scored; Result still carries its identity.
type Outcome struct {
	Result scan.Result
	Err    error
}

// ForEachResult counts src, then scores every record and calls visit once
// per record on the caller's goroutine. visit is the only place output may
// be written. A failed sequence is passed to visit like any other outcome;
// a non-nil error from visit stops dispatch and is returned.
//
// With Threads >= 2, at most Threads records are in flight (scoring or
// waiting for visit) and outcomes arrive in completion order.
func ForEachResult(ctx context.Context, cfg Config, src Source, job Job, visit func(Outcome) error) error {
	if job.Motif == nil || job.Background == nil {
		return errors.New("pipeline: job needs a motif and a background")
	}
	if !job.Motif.Log {
		return fmt.Errorf("%s: %w", job.Motif.Name, scan.ErrNotLogSpace)
	}

	want, err := src.Count(ctx)
	if err != nil {
		return err
	}

	var got int
	if cfg.Threads <= 1 {
		got, err = runSerial(ctx, src, job, visit)
	} else {
		got, err = runPool(ctx, cfg.Threads, src, job, visit)
	}
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: counted %d records, dispatched %d", ErrSourceChanged, want, got)
	}
	return nil
}

// Dispatch is the channel form of ForEachResult: a lazy, single-pass stream
// of outcomes. The error channel yields exactly one value after the outcome
// channel closes. Callers must drain the outcome channel or cancel ctx;
// otherwise the producing goroutine blocks forever.
func Dispatch(ctx context.Context, cfg Config, src Source, job Job) (<-chan Outcome, <-chan error) {
	out := make(chan Outcome)
	done := make(chan error, 1)
	go func() {
		defer close(out)
		done <- ForEachResult(ctx, cfg, src, job, func(o Outcome) error {
			select {
			case out <- o:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	return out, done
}

func runSerial(ctx context.Context, src Source, job Job, visit func(Outcome) error) (int, error) {
	n := 0
	err := src.Each(ctx, func(rec fasta.Record) error {
		n++
		return visit(job.run(rec))
	})
	return n, err
}

func runPool(parent context.Context, threads int, src Source, job Job, visit func(Outcome) error) (int, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// A slot is held from dispatch until visit has consumed the outcome.
	slots := make(chan struct{}, threads)
	jobs := make(chan fasta.Record)
	results := make(chan Outcome, threads)

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for rec := range jobs {
				results <- job.run(rec)
			}
		}()
	}

	// Feed work
	var (
		dispatched int
		feedErr    error
		feedDone   = make(chan struct{})
	)
	go func() {
		defer close(feedDone)
		defer close(jobs)
		feedErr = src.Each(ctx, func(rec fasta.Record) error {
			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case jobs <- rec:
			case <-ctx.Done():
				return ctx.Err()
			}
			dispatched++
			return nil
		})
	}()
	go func() {
		<-feedDone
		wg.Wait()
		close(results)
	}()

	// Collect on the caller's goroutine; dispatched work always finishes.
	var visitErr error
	for o := range results {
		if visitErr == nil {
			if err := visit(o); err != nil {
				visitErr = err
				cancel()
			}
		}
		<-slots
	}

	if visitErr != nil {
		return dispatched, visitErr
	}
	return dispatched, feedErr
}
