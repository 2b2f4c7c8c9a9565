package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, Linspace(0, 1, 3))
	assert.Equal(t, []float64{2}, Linspace(2, 5, 1))
	assert.Nil(t, Linspace(0, 1, 0))
}

func TestSimpsonIntegratesCubicExactly(t *testing.T) {
	xs := Linspace(-1, 2, 7)
	w, err := GetQuadratureWeights(SimpsonMethod, len(xs), xs[1]-xs[0])
	require.NoError(t, err)

	sum := 0.0
	for i, x := range xs {
		sum += w[i] * x * x * x
	}
	// integral of x^3 over [-1, 2]
	assert.InDelta(t, (16.0-1.0)/4, sum, 1e-12)
}

func TestTrapezoidIntegratesLine(t *testing.T) {
	xs := Linspace(0, math.Pi, 4)
	w, err := GetQuadratureWeights(TrapezoidalMethod, len(xs), xs[1]-xs[0])
	require.NoError(t, err)

	sum := 0.0
	for i, x := range xs {
		sum += w[i] * (2*x + 1)
	}
	assert.InDelta(t, math.Pi*math.Pi+math.Pi, sum, 1e-12)
}

func TestQuadratureErrors(t *testing.T) {
	_, err := GetSimpsonWeights(4, 0.1)
	assert.Error(t, err)
	_, err = GetTrapezoidalWeights(1, 0.1)
	assert.Error(t, err)
}

func TestFormatValueFactor(t *testing.T) {
	assert.Equal(t, "25.813 kohm", FormatValueFactor(25812.8, "ohm"))
	assert.Equal(t, "38.740 uS", FormatValueFactor(3.874e-5, "S"))
	assert.Equal(t, "1.000 S", FormatValueFactor(1, "S"))
}

func TestFormatAngle(t *testing.T) {
	assert.Equal(t, " 180.0deg", FormatAngle(math.Pi))
}
