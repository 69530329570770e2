package motif

import (
	"errors"
	"math"
)

// ErrLogSpace is returned when probability-space math is asked of a matrix
// that has already been converted to log space.
var ErrLogSpace = errors.New("matrix is already in log space")

// ApplyPseudocount adds c to every cell, then renormalizes each row so it
// sums to 1. It must run before ToLog.
func ApplyPseudocount(p *PWM, c float64) error {
	if p.Log {
		return ErrLogSpace
	}
	for i := range p.Rows {
		var sum float64
		for j := range p.Rows[i] {
			p.Rows[i][j] += c
			sum += p.Rows[i][j]
		}
		if sum == 0 {
			return &ArithmeticError{Op: "normalize (row sum)", Motif: p.Name, Row: i, Col: -1, Value: sum}
		}
		for j := range p.Rows[i] {
			p.Rows[i][j] /= sum
		}
	}
	return nil
}

// ToLog converts every cell to its natural log. Nothing is modified when a
// cell is non-positive.
func ToLog(p *PWM) error {
	if p.Log {
		return ErrLogSpace
	}
	for i, row := range p.Rows {
		for j, v := range row {
			if !(v > 0) {
				return &ArithmeticError{Op: "log", Motif: p.Name, Row: i, Col: j, Value: v}
			}
		}
	}
	for i := range p.Rows {
		for j := range p.Rows[i] {
			p.Rows[i][j] = math.Log(p.Rows[i][j])
		}
	}
	p.Log = true
	return nil
}

// Prepare smooths p with pseudocount c (skipped when c <= 0) and converts
// it to log space.
func Prepare(p *PWM, c float64) error {
	if c > 0 {
		if err := ApplyPseudocount(p, c); err != nil {
			return err
		}
	}
	return ToLog(p)
}
