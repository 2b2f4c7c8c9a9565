package matrix

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDenseEqual(t *testing.T, want, got *Dense, tol float64) {
	t.Helper()
	require.True(t, want.SameShape(got), "shape %dx%d vs %dx%d", want.Rows(), want.Cols(), got.Rows(), got.Cols())
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			assert.InDelta(t, 0, cmplx.Abs(want.At(i, j)-got.At(i, j)), tol, "element (%d,%d)", i, j)
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	a := FromRows([][]complex128{
		{2 + 1i, 1, 0},
		{0, 3, 1i},
		{1, -1, 4 - 2i},
	})

	inv, err := a.Inverse()
	require.NoError(t, err)
	assertDenseEqual(t, Identity(3), a.Mul(inv), 1e-12)
	assertDenseEqual(t, Identity(3), inv.Mul(a), 1e-12)
}

func TestInverseNeedsPivoting(t *testing.T) {
	a := FromRows([][]complex128{{0, 1}, {1, 0}})

	inv, err := a.Inverse()
	require.NoError(t, err)
	assertDenseEqual(t, a, inv, 1e-15)
}

func TestInverseSingular(t *testing.T) {
	_, err := FromRows([][]complex128{{1, 2}, {2, 4}}).Inverse()
	assert.ErrorIs(t, err, ErrSingular)

	_, err = NewDense(2, 3).Inverse()
	assert.ErrorIs(t, err, ErrShape)
}

func TestDaggerAndTrace(t *testing.T) {
	a := FromRows([][]complex128{{1, 2i}, {3, 4 - 1i}})
	d := a.Dagger()

	assert.Equal(t, complex(0, -2), d.At(1, 0))
	assert.Equal(t, complex(3, 0), d.At(0, 1))
	assert.Equal(t, complex(5, -1), a.Trace())
	assert.Equal(t, complex(5, 1), d.Trace())
}

func TestPauliAlgebra(t *testing.T) {
	x, y, z := PauliX(), PauliY(), PauliZ()

	assertDenseEqual(t, Identity(2), x.Mul(x), 0)
	assertDenseEqual(t, Identity(2), y.Mul(y), 0)
	assertDenseEqual(t, z.Scale(1i), x.Mul(y), 0)
	assert.True(t, Spin(0.3, -0.4, 0.5).IsHermitian(0))
	assertDenseEqual(t, x.Scale(0.6).Add(z.Scale(0.8)), Spin(0.6, 0, 0.8), 1e-15)
}

func TestBlock(t *testing.T) {
	a := FromRows([][]complex128{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	b := a.Block([]int{0, 2}, []int{1, 2})

	assert.Equal(t, FromRows([][]complex128{{2, 3}, {8, 9}}), b)
}
