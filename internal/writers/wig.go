package writers

import (
	"io"
	"strconv"

	"pwmscan/core/scan"
)

func init() {
	Register(FormatWig, func(w io.Writer, _ Options) Emitter {
		return &wigEmitter{buffered: newBuffered(w)}
	})
}

// wigEmitter appends one fixedStep block per sequence:
//
//	fixedStep chrom=<chrom> start=<chromStart+1> step=1
//	# <id> <description>
//	<score>
//	...
type wigEmitter struct {
	buffered
	num []byte
}

func (e *wigEmitter) Emit(r scan.Result) error {
	b := append(e.num[:0], "fixedStep chrom="...)
	b = append(b, r.Coords.Chrom...)
	b = append(b, " start="...)
	b = strconv.AppendInt(b, int64(r.Coords.Start+1), 10)
	b = append(b, " step=1\n# "...)
	b = append(b, r.ID...)
	if r.Desc != "" {
		b = append(b, ' ')
		b = append(b, r.Desc...)
	}
	b = append(b, '\n')
	e.num = b
	bw := e.bw
	if _, err := bw.Write(b); err != nil {
		return err
	}
	for _, v := range r.Scores {
		e.num = AppendScore(e.num[:0], v)
		e.num = append(e.num, '\n')
		if _, err := bw.Write(e.num); err != nil {
			return err
		}
	}
	return nil
}
