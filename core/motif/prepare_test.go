package motif

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPseudocount_RowsSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		p := &PWM{Name: "r"}
		for i := 0; i < 1+rng.Intn(20); i++ {
			var row [4]float64
			for j := range row {
				row[j] = rng.Float64() * 10
			}
			p.Rows = append(p.Rows, row)
		}
		c := 1e-6 + rng.Float64()
		require.NoError(t, ApplyPseudocount(p, c))
		for i, row := range p.Rows {
			sum := row[0] + row[1] + row[2] + row[3]
			assert.InDelta(t, 1.0, sum, 1e-9, "trial %d row %d", trial, i)
		}
	}
}

func TestApplyPseudocount_ZeroRow(t *testing.T) {
	p := &PWM{Name: "z", Rows: [][4]float64{{0.25, 0.25, 0.25, 0.25}, {0, 0, 0, 0}}}
	err := ApplyPseudocount(p, 0)
	var ae *ArithmeticError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, 1, ae.Row)
}

func TestToLog(t *testing.T) {
	p := &PWM{Name: "m", Rows: [][4]float64{{0.7, 0.1, 0.1, 0.1}}}
	require.NoError(t, ToLog(p))
	assert.True(t, p.Log)
	assert.InDelta(t, math.Log(0.7), p.Rows[0][A], 1e-15)
	assert.ErrorIs(t, ToLog(p), ErrLogSpace)
	assert.ErrorIs(t, ApplyPseudocount(p, 0.1), ErrLogSpace)
}

func TestToLog_NonPositiveLeavesMatrixUntouched(t *testing.T) {
	p := &PWM{Name: "m", Rows: [][4]float64{{0.5, 0.5, 0, 0}, {-1, 1, 1, 1}}}
	err := ToLog(p)
	var ae *ArithmeticError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, 0, ae.Row)
	assert.Equal(t, G, ae.Col)
	assert.False(t, p.Log)
	assert.Equal(t, 0.5, p.Rows[0][A])
}

func TestPrepare_PseudocountRescuesZeros(t *testing.T) {
	p := &PWM{Name: "m", Rows: [][4]float64{{1, 0, 0, 0}}}
	require.NoError(t, Prepare(p, 0.01))
	for _, v := range p.Rows[0] {
		assert.False(t, math.IsInf(v, 0))
	}
	q := &PWM{Name: "m", Rows: [][4]float64{{1, 0, 0, 0}}}
	require.Error(t, Prepare(q, 0))
}

func TestBackground(t *testing.T) {
	bg := DefaultBackground()
	assert.InDelta(t, math.Log(0.3), bg.LogFreq(A), 1e-15)
	assert.InDelta(t, math.Log(0.2), bg.LogFreq(C), 1e-15)
	assert.InDelta(t, math.Log(0.2), bg.LogFreq(G), 1e-15)
	assert.InDelta(t, math.Log(0.3), bg.LogFreq(T), 1e-15)
	assert.InDeltaSlice(t, DefaultFrequencies[:], sliceOf(bg.Frequencies()), 1e-12)

	_, err := NewBackground([4]float64{0.5, 0.5, 0, 0})
	var ae *ArithmeticError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, G, ae.Col)
}

func sliceOf(a [4]float64) []float64 { return a[:] }

func TestIndex(t *testing.T) {
	assert.Equal(t, A, Index('A'))
	assert.Equal(t, T, Index('t'))
	assert.Equal(t, -1, Index('N'))
	assert.Equal(t, -1, Index('R'))
}

func TestLoadStore(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "m.meme")
	require.NoError(t, os.WriteFile(fn, []byte(twoMotifs), 0o644))

	_, err := LoadStore(fn, 0, nil)
	var ae *ArithmeticError
	require.True(t, errors.As(err, &ae), "zeta has zero cells, want ArithmeticError, got %v", err)

	s, err := LoadStore(fn, 0.01, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"MA0001.1", "zeta"}, s.Names())
	m, ok := s.Get("zeta")
	require.True(t, ok)
	assert.True(t, m.Log)
	assert.NotNil(t, s.Background())
}

func TestNewStore_RejectsProbabilities(t *testing.T) {
	_, err := NewStore(map[string]*PWM{"a": {Name: "a", Rows: [][4]float64{{1, 1, 1, 1}}}}, nil)
	require.Error(t, err)
}
