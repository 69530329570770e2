package writers

import (
	"fmt"
	"io"
	"sort"

	"pwmscan/core/scan"
)

// Output formats.
const (
	FormatText = "text" // one line of comma-joined scores per sequence
	FormatWig  = "wig"  // fixedStep block per sequence
	FormatBED  = "bed"  // one line per match
)

// Options are shared by all formats.
type Options struct {
	Genomic bool // BED: chromosome coordinates instead of record-relative ones
}

// Emitter serializes results. Emit is only ever called from one goroutine.
// Close flushes buffered output; it does not close the underlying writer.
type Emitter interface {
	Emit(scan.Result) error
	Close() error
}

// Factory builds an Emitter over w.
type Factory func(w io.Writer, o Options) Emitter

// Emitter registry (format → factory). Formats register in init() blocks.
var factories = map[string]Factory{}

// Register installs f for format (last wins).
func Register(format string, f Factory) { factories[format] = f }

// New builds the emitter registered for format.
func New(format string, w io.Writer, o Options) (Emitter, error) {
	f, ok := factories[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return f(w, o), nil
}

// Formats lists registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
