package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chiral is an ideal quantum Hall bar: terminal j feeds terminal j+1 only.
func chiral(to, from int) float64 {
	if to == (from+1)%4 {
		return 1
	}
	return 0
}

// cross is a reciprocal four-terminal junction with equal transmission
// a to both neighbors and b straight across.
func cross(a, b float64) func(int, int) float64 {
	return func(to, from int) float64 {
		if (to-from+4)%4 == 2 {
			return b
		}
		return a
	}
}

func TestConductanceMatrixRowSums(t *testing.T) {
	g := NewConductanceMatrix(4, cross(0.3, 0.5))
	require.Equal(t, 4, g.Size())

	for i := 0; i < 4; i++ {
		sum := 0.0
		for j := 0; j < 4; j++ {
			sum += g.At(i, j)
		}
		assert.InDelta(t, 0, sum, 1e-15)
	}
	assert.InDelta(t, -1.1, g.At(0, 0), 1e-15)
	assert.True(t, g.IsSymmetric(1e-12))
	assert.False(t, NewConductanceMatrix(4, chiral).IsSymmetric(1e-12))
}

func TestTwoTerminalResistance(t *testing.T) {
	g := NewConductanceMatrix(2, func(int, int) float64 { return 2 })

	r, err := g.Resistance(0, 1, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, r, 1e-12)
}

func TestQuantumHallBar(t *testing.T) {
	g := NewConductanceMatrix(4, chiral)

	v, err := g.Voltages([]float64{1, 0, -1, 0}, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1, 0, 0}, v, 1e-12)

	rh, err := g.Resistance(0, 2, 1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 1, rh, 1e-12)

	rxx, err := g.Resistance(0, 2, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0, rxx, 1e-12)
}

func TestSymmetricCrossHasNoHallVoltage(t *testing.T) {
	g := NewConductanceMatrix(4, cross(0.25, 0.7))

	rh, err := g.Resistance(0, 2, 1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0, rh, 1e-12)

	rxx, err := g.Resistance(0, 2, 0, 2)
	require.NoError(t, err)
	assert.Greater(t, rxx, 0.0)
}

func TestVoltagesErrors(t *testing.T) {
	g := NewConductanceMatrix(4, cross(0.25, 0.7))

	_, err := g.Voltages([]float64{1, 0, 0, 0}, 2)
	assert.ErrorIs(t, err, ErrCurrentImbalance)

	_, err = g.Voltages([]float64{1, -1}, 0)
	assert.Error(t, err)

	_, err = g.Voltages([]float64{1, 0, -1, 0}, 4)
	assert.ErrorIs(t, err, ErrTerminal)

	_, err = g.Resistance(0, 0, 1, 3)
	assert.Error(t, err)
}

func TestDecoupledTerminalIsSingular(t *testing.T) {
	g := NewConductanceMatrix(3, func(to, from int) float64 {
		if to == 2 || from == 2 {
			return 0
		}
		return 1
	})

	_, err := g.Resistance(0, 1, 0, 2)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestUnits(t *testing.T) {
	assert.InDelta(t, 3.8740e-5, Siemens(1), 1e-8)
	assert.InDelta(t, 25812.3, Ohms(1), 0.1)
	assert.InDelta(t, 2*3.8740e-5, TwoTerminal(2), 2e-8)
}
