package writers

import (
	"bufio"
	"io"
	"sync"
)

// Reuse 64 KiB buffered writers across emitters; every motif pass opens a
// fresh score emitter.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// buffered binds a pooled bufio.Writer to an output until release.
type buffered struct {
	bw *bufio.Writer
}

func newBuffered(w io.Writer) buffered {
	bw := bwPool.Get().(*bufio.Writer)
	bw.Reset(w)
	return buffered{bw: bw}
}

// release flushes and returns the buffer to the pool. Safe to call twice.
func (b *buffered) release() error {
	if b.bw == nil {
		return nil
	}
	err := b.bw.Flush()
	// drop the reference to the output before pooling
	b.bw.Reset(io.Discard)
	bwPool.Put(b.bw)
	b.bw = nil
	if IsBrokenPipe(err) {
		return nil
	}
	return err
}

func (b *buffered) Close() error { return b.release() }
