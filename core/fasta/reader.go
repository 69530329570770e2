// Package fasta streams FASTA records with their header descriptions.
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"pwmscan/core/xio"
)

// Record is one FASTA entry. Seq is upper-cased and owned by the record.
type Record struct {
	ID   string
	Desc string // header text after the ID, trimmed
	Seq  []byte
}

// StreamCtx parses FASTA from r and calls emit once per record, in file
// order. It returns promptly when ctx is done, even mid-record. A non-nil
// error from emit stops the scan and is returned as-is.
func StreamCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id, desc string
		inRec    bool
		seq      = make([]byte, 0, 1<<16)
	)
	flush := func() error {
		if !inRec {
			return nil
		}
		return emit(Record{ID: id, Desc: desc, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			seq = seq[:0]
			id, desc = parseHeader(line[1:])
			inRec = true
			continue
		}
		if line[0] == ';' { // old-style comment
			continue
		}
		seq = appendUpper(seq, bytes.TrimSpace(line))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// StreamPathCtx opens path (plain, gzip or "-") and streams its records.
func StreamPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := xio.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	if err := StreamCtx(ctx, rc, emit); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ReadAll collects every record of r.
func ReadAll(ctx context.Context, r io.Reader) ([]Record, error) {
	var out []Record
	err := StreamCtx(ctx, r, func(rec Record) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}

// CountPath counts the records in path without materializing sequences.
func CountPath(ctx context.Context, path string) (int, error) {
	rc, err := xio.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rc.Close() }()

	br := bufio.NewReaderSize(rc, 1<<20)
	n := 0
	atLineStart := true
	for {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		default:
		}
		chunk, err := br.ReadSlice('\n')
		if len(chunk) > 0 {
			if atLineStart && chunk[0] == '>' {
				n++
			}
			atLineStart = chunk[len(chunk)-1] == '\n'
		}
		switch {
		case err == nil, err == bufio.ErrBufferFull:
		case err == io.EOF:
			return n, nil
		default:
			return n, fmt.Errorf("%s: fasta count: %w", path, err)
		}
	}
}

func parseHeader(hdr []byte) (id, desc string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}

func appendUpper(dst, src []byte) []byte {
	for _, b := range src {
		if 'a' <= b && b <= 'z' {
			b -= 'a' - 'A'
		}
		dst = append(dst, b)
	}
	return dst
}
