package pipeline

import (
	"io"

	"pwmscan/core/xio"
)

// stdinReader opens standard input through xio so gzip input is detected.
// The handle is never closed: stdin belongs to the process.
func stdinReader() io.Reader {
	rc, err := xio.Open(xio.Stdin)
	if err != nil {
		return errReader{err}
	}
	return rc
}

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }
