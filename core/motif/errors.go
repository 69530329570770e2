package motif

import "fmt"

// ParseError reports a malformed motif file. It is fatal: nothing is
// scored when loading fails.
type ParseError struct {
	Path  string
	Line  int
	Motif string
	Msg   string
}

func (e *ParseError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "<input>"
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Motif != "" {
		return fmt.Sprintf("%s: motif %s: %s", loc, e.Motif, e.Msg)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

// ArithmeticError reports a value the model math cannot accept: a
// non-positive input to log, or a zero row sum during renormalization.
// Row is -1 for the background table.
type ArithmeticError struct {
	Op    string
	Motif string
	Row   int
	Col   int
	Value float64
}

func (e *ArithmeticError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("%s: %s of %g (column %c)", e.Motif, e.Op, e.Value, Alphabet[e.Col])
	}
	if e.Col < 0 {
		return fmt.Sprintf("motif %s row %d: %s of %g", e.Motif, e.Row+1, e.Op, e.Value)
	}
	return fmt.Sprintf("motif %s row %d column %c: %s of %g", e.Motif, e.Row+1, Alphabet[e.Col], e.Op, e.Value)
}
