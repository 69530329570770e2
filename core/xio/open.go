// Package xio opens plain, gzip-compressed and standard-input sources
// behind a single io.ReadCloser.
package xio

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// readCloser pairs a (possibly decompressing) reader with every
// closer underneath it.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *readCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader for path. "-" reads standard input. Gzip input is
// detected by its magic number, so the ".gz" suffix is not required.
func Open(path string) (io.ReadCloser, error) {
	var (
		src     io.Reader
		closers []io.Closer
	)
	if path == Stdin {
		src = os.Stdin
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src = fh
		closers = append(closers, fh)
	}

	br := bufio.NewReaderSize(src, 64<<10)
	if sig, _ := br.Peek(2); len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			for _, c := range closers {
				_ = c.Close()
			}
			return nil, err
		}
		return &readCloser{Reader: gr, closers: append([]io.Closer{gr}, closers...)}, nil
	}
	return &readCloser{Reader: br, closers: closers}, nil
}
