package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pwmscan/core/fasta"
	"pwmscan/core/motif"
	"pwmscan/core/scan"
)

func testJob(t *testing.T) Job {
	t.Helper()
	m := &motif.PWM{Name: "m", Rows: [][4]float64{{0.7, 0.1, 0.1, 0.1}, {0.1, 0.1, 0.1, 0.7}, {0.25, 0.25, 0.25, 0.25}}}
	require.NoError(t, motif.ToLog(m))
	return Job{Motif: m, Background: motif.DefaultBackground(), Scanner: scan.Scanner{Threshold: 0.5, Scores: true, Predict: true}}
}

func randomRecords(n int) SliceSource {
	rng := rand.New(rand.NewSource(99))
	recs := make(SliceSource, n)
	for i := range recs {
		seq := make([]byte, rng.Intn(300))
		for j := range seq {
			seq[j] = "ACGTN"[rng.Intn(5)]
		}
		recs[i] = fasta.Record{ID: fmt.Sprintf("s%03d", i), Seq: seq}
	}
	return recs
}

func collect(t *testing.T, threads int, src Source, job Job) []Outcome {
	t.Helper()
	var out []Outcome
	err := ForEachResult(context.Background(), Config{Threads: threads}, src, job, func(o Outcome) error {
		out = append(out, o)
		return nil
	})
	require.NoError(t, err)
	return out
}

func byID(outs []Outcome) map[string]Outcome {
	m := make(map[string]Outcome, len(outs))
	for _, o := range outs {
		m[o.Result.ID] = o
	}
	return m
}

func TestForEachResult_SerialAndPoolAgree(t *testing.T) {
	src := randomRecords(200)
	job := testJob(t)

	serial := collect(t, 1, src, job)
	pooled := collect(t, 4, src, job)

	require.Len(t, serial, len(src))
	require.Len(t, pooled, len(src))
	// serial keeps input order
	for i, o := range serial {
		assert.Equal(t, src[i].ID, o.Result.ID)
	}
	// same set, no drops or duplicates
	sm, pm := byID(serial), byID(pooled)
	require.Len(t, pm, len(src))
	for id, o := range sm {
		assert.Equal(t, o, pm[id], id)
	}
}

func TestForEachResult_BoundsInFlight(t *testing.T) {
	const threads = 3
	var inFlight, peak int64
	src := countingSource{SliceSource: randomRecords(60), onEmit: func() {
		n := atomic.AddInt64(&inFlight, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
	}}
	err := ForEachResult(context.Background(), Config{Threads: threads}, src, testJob(t), func(Outcome) error {
		atomic.AddInt64(&inFlight, -1)
		return nil
	})
	require.NoError(t, err)
	// emit runs before the slot is taken, so the count may briefly read one high
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(threads+1))
}

type countingSource struct {
	SliceSource
	onEmit func()
}

func (c countingSource) Each(ctx context.Context, emit func(fasta.Record) error) error {
	return c.SliceSource.Each(ctx, func(r fasta.Record) error {
		c.onEmit()
		return emit(r)
	})
}

func TestForEachResult_FailureDoesNotAbort(t *testing.T) {
	src := SliceSource{
		{ID: "ok1", Seq: []byte("ACGTACGT")},
		{ID: "empty"},
		{ID: "bad", Seq: []byte("ACGXT")},
		{ID: "ok2", Seq: []byte("TTTTAAAA")},
	}
	for _, threads := range []int{1, 3} {
		got := byID(collect(t, threads, src, testJob(t)))
		require.Len(t, got, 4)
		assert.NoError(t, got["ok1"].Err)
		assert.NoError(t, got["ok2"].Err)
		assert.ErrorIs(t, got["empty"].Err, scan.ErrEmptySequence)
		var se *scan.SequenceError
		assert.True(t, errors.As(got["bad"].Err, &se))
		assert.Equal(t, 4, got["ok1"].Result.Windows)
	}
}

// shrinking yields one record fewer than it counts.
type shrinking struct{ SliceSource }

func (s shrinking) Each(ctx context.Context, emit func(fasta.Record) error) error {
	return s.SliceSource[1:].Each(ctx, emit)
}

func TestForEachResult_SourceChanged(t *testing.T) {
	for _, threads := range []int{1, 4} {
		err := ForEachResult(context.Background(), Config{Threads: threads}, shrinking{randomRecords(10)}, testJob(t),
			func(Outcome) error { return nil })
		assert.ErrorIs(t, err, ErrSourceChanged)
	}
}

func TestForEachResult_VisitErrorStops(t *testing.T) {
	boom := errors.New("boom")
	for _, threads := range []int{1, 4} {
		n := 0
		err := ForEachResult(context.Background(), Config{Threads: threads}, randomRecords(100), testJob(t),
			func(Outcome) error {
				n++
				if n == 5 {
					return boom
				}
				return nil
			})
		assert.ErrorIs(t, err, boom)
		assert.Less(t, n, 100)
	}
}

func TestForEachResult_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n := 0
	err := ForEachResult(ctx, Config{Threads: 2}, randomRecords(100), testJob(t), func(Outcome) error {
		n++
		if n == 3 {
			cancel()
		}
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForEachResult_RejectsProbabilityMotif(t *testing.T) {
	job := testJob(t)
	job.Motif = &motif.PWM{Name: "raw", Rows: [][4]float64{{1, 1, 1, 1}}}
	err := ForEachResult(context.Background(), Config{}, randomRecords(1), job, func(Outcome) error { return nil })
	assert.ErrorIs(t, err, scan.ErrNotLogSpace)
}

func TestDispatch(t *testing.T) {
	src := randomRecords(50)
	out, done := Dispatch(context.Background(), Config{Threads: 4}, src, testJob(t))
	var ids []string
	for o := range out {
		ids = append(ids, o.Result.ID)
	}
	require.NoError(t, <-done)
	sort.Strings(ids)
	require.Len(t, ids, 50)
	assert.Equal(t, "s000", ids[0])
	assert.Equal(t, "s049", ids[49])
}

func TestDispatch_CancelWithoutDraining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out, done := Dispatch(ctx, Config{Threads: 4}, randomRecords(200), testJob(t))
	for i := 0; i < 3; i++ {
		<-out
	}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("producer still blocked after cancel")
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fa")
	b := filepath.Join(dir, "b.fa")
	require.NoError(t, os.WriteFile(a, []byte(">a1\nACGTACGT\n>a2\nAAAA\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(">b1 chr9 10 20\nCCCCGGGGTT\n"), 0o644))

	src := NewFileSource(a, b)
	n, err := src.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got := collect(t, 2, src, testJob(t))
	ids := make([]string, 0, len(got))
	for _, o := range got {
		ids = append(ids, o.Result.ID)
	}
	sort.Strings(ids)
	assert.Equal(t, "a1,a2,b1", strings.Join(ids, ","))
	assert.Equal(t, "chr9", byID(got)["b1"].Result.Coords.Chrom)
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.fa")).Count(context.Background())
	assert.Error(t, err)
}
