package writers

import (
	"io"

	"pwmscan/core/scan"
)

func init() {
	Register(FormatBED, func(w io.Writer, o Options) Emitter {
		return &bedEmitter{buffered: newBuffered(w), genomic: o.Genomic}
	})
}

type bedEmitter struct {
	buffered
	genomic bool
}

func (e *bedEmitter) Emit(r scan.Result) error {
	for _, m := range r.Matches {
		if _, err := e.bw.WriteString(FormatBEDRow(r, m, e.genomic)); err != nil {
			return err
		}
		if err := e.bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}
