package scan

import "pwmscan/core/motif"

// ScoreWindow returns the forward and reverse log-odds of the window that
// starts at offset.
//
// The window is seq[offset : offset+L+1] for a motif of L rows, and the row
// loop runs j = 0..L-1. The forward strand therefore consumes the first L
// bases of the window and the reverse strand the first L bases of the
// reverse complement of all L+1 bases. N bases add nothing to either sum.
// The caller guarantees the window fits and holds only A, C, G, T or N.
func ScoreWindow(seq []byte, offset int, m *motif.PWM, bg *motif.Background) (fwd, rev float64) {
	L := m.Len()
	mlen := L - 1
	win := seq[offset : offset+L+1]

	var motifF, bgF, motifR, bgR float64
	for j := 0; j <= mlen; j++ {
		if k := motif.Index(win[j]); k >= 0 {
			motifF += m.Rows[j][k]
			bgF += bg.LogFreq(k)
		}
		// position j of the reverse complement is the complement of win[L-j]
		if k := motif.Index(win[L-j]); k >= 0 {
			c := motif.T - k
			motifR += m.Rows[j][c]
			bgR += bg.LogFreq(c)
		}
	}
	return motifF - bgF, motifR - bgR
}

// Windows is the number of windows scored on a sequence of length n: one
// per offset 1..n-L-1.
//
// TODO: offset 0 is never scored and windows span L+1 bases. Both look like
// off-by-ones; move to seq[off:off+L] over 0..n-L together with a tracks
// format version bump so existing score files stay comparable.
func Windows(n, L int) int {
	if w := n - L - 1; w > 0 {
		return w
	}
	return 0
}
