package motif

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"pwmscan/core/xio"
)

// LoadFile reads a MEME motif file (plain, gzip or "-").
func LoadFile(path string) (map[string]*PWM, error) {
	rc, err := xio.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return readMEME(rc, path)
}

// LoadMEME parses MEME minimal format from r and returns the
// letter-probability matrices keyed by motif name.
//
// A block starts at "MOTIF <name> [alt]" and its matrix at the
// "letter-probability matrix:" line. The matrix ends at a blank line, a
// URL line, the next MOTIF, or EOF. When the header declares w=, the block
// must supply exactly that many rows.
func LoadMEME(r io.Reader) (map[string]*PWM, error) { return readMEME(r, "") }

type memeState int

const (
	awaitMotif memeState = iota
	awaitMatrix
	inMatrix
	blockDone
)

func readMEME(r io.Reader, path string) (map[string]*PWM, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var (
		out   = map[string]*PWM{}
		cur   *PWM
		want  int // declared w=, 0 when absent
		start int // line of the current MOTIF
		state = awaitMotif
		ln    int
	)
	perr := func(line int, name, msg string) error {
		return &ParseError{Path: path, Line: line, Motif: name, Msg: msg}
	}

	finish := func(line int) error {
		if cur == nil {
			return nil
		}
		switch {
		case state == awaitMatrix:
			return perr(start, cur.Name, "no letter-probability matrix")
		case len(cur.Rows) == 0:
			return perr(line, cur.Name, "matrix has no rows")
		case want > 0 && len(cur.Rows) != want:
			return perr(line, cur.Name, "matrix block not terminated: got "+
				strconv.Itoa(len(cur.Rows))+" rows, header declares w= "+strconv.Itoa(want))
		}
		if _, dup := out[cur.Name]; dup {
			return perr(start, cur.Name, "duplicate motif name")
		}
		out[cur.Name] = cur
		cur = nil
		return nil
	}

	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())

		if strings.HasPrefix(line, "MOTIF") {
			if err := finish(ln); err != nil {
				return nil, err
			}
			f := strings.Fields(line)
			if len(f) < 2 || f[0] != "MOTIF" {
				return nil, perr(ln, "", "MOTIF line without a name")
			}
			cur = &PWM{Name: f[1]}
			if len(f) > 2 {
				cur.Alt = f[2]
			}
			want, start, state = 0, ln, awaitMatrix
			continue
		}

		switch state {
		case awaitMatrix:
			if !strings.HasPrefix(line, "letter-probability matrix") {
				continue
			}
			w, alen, err := matrixHeader(line)
			if err != nil {
				return nil, perr(ln, cur.Name, err.Error())
			}
			if alen != 0 && alen != 4 {
				return nil, perr(ln, cur.Name, "alength= "+strconv.Itoa(alen)+", only DNA (4) is supported")
			}
			want, state = w, inMatrix

		case inMatrix:
			if line == "" || strings.HasPrefix(line, "URL") {
				if len(cur.Rows) == 0 {
					continue
				}
				if err := finish(ln); err != nil {
					return nil, err
				}
				state = blockDone
				continue
			}
			row, err := parseRow(line)
			if err != nil {
				return nil, perr(ln, cur.Name, err.Error())
			}
			cur.Rows = append(cur.Rows, row)
			if want > 0 && len(cur.Rows) == want {
				if err := finish(ln); err != nil {
					return nil, err
				}
				state = blockDone
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := finish(ln); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, perr(0, "", "no motifs found")
	}
	return out, nil
}

type syntaxError string

func (e syntaxError) Error() string { return string(e) }

func parseRow(line string) ([4]float64, error) {
	var row [4]float64
	f := strings.Fields(line)
	if len(f) != 4 {
		return row, syntaxError("matrix row has " + strconv.Itoa(len(f)) + " columns, want 4")
	}
	for i, s := range f {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return row, syntaxError("non-numeric matrix entry " + strconv.Quote(s))
		}
		row[i] = v
	}
	return row, nil
}

// matrixHeader pulls w= and alength= out of a letter-probability header.
// Values may be attached ("w=8") or separate ("w= 8").
func matrixHeader(line string) (w, alength int, err error) {
	f := strings.Fields(strings.TrimPrefix(line, "letter-probability matrix:"))
	for i := 0; i < len(f); i++ {
		key, val, _ := strings.Cut(f[i], "=")
		if val == "" && i+1 < len(f) && strings.HasSuffix(f[i], "=") {
			val = f[i+1]
			i++
		}
		var dst *int
		switch key {
		case "w":
			dst = &w
		case "alength":
			dst = &alength
		default:
			continue
		}
		n, cerr := strconv.Atoi(val)
		if cerr != nil || n < 0 {
			return 0, 0, syntaxError("bad " + key + "= value " + strconv.Quote(val))
		}
		*dst = n
	}
	return w, alength, nil
}
