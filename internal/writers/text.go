package writers

import (
	"io"
	"strconv"

	"pwmscan/core/scan"
)

func init() {
	Register(FormatText, func(w io.Writer, _ Options) Emitter {
		return &textEmitter{buffered: newBuffered(w)}
	})
}

// textEmitter writes chrom, chromStart+1, chromEnd, id and motif, then the
// comma-joined score track, tab-separated, one line per sequence.
type textEmitter struct {
	buffered
	line []byte
}

func (e *textEmitter) Emit(r scan.Result) error {
	b := e.line[:0]
	b = append(b, r.Coords.Chrom...)
	b = append(b, '\t')
	b = strconv.AppendInt(b, int64(r.Coords.Start+1), 10)
	b = append(b, '\t')
	b = strconv.AppendInt(b, int64(r.Coords.End), 10)
	b = append(b, '\t')
	b = append(b, r.ID...)
	b = append(b, '\t')
	b = append(b, r.Motif...)
	b = append(b, '\t')
	for i, v := range r.Scores {
		if i > 0 {
			b = append(b, ',')
		}
		b = AppendScore(b, v)
	}
	b = append(b, '\n')
	e.line = b
	_, err := e.bw.Write(b)
	return err
}
