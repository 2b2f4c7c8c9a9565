package system

import (
	"fmt"

	"github.com/edp1096/toy-transport/pkg/matrix"
)

// surfaceGreen returns the surface Green's function of a semi-infinite
// stack of cells with on-site block h0, where alpha couples a cell to the
// next one deeper in the stack and beta = alpha^+ couples back. It uses the
// Lopez Sancho renormalization, doubling the decimated length each step.
func surfaceGreen(h0, alpha, beta *matrix.Dense, energy, eta, tol float64, maxIter int) (*matrix.Dense, error) {
	n := h0.Rows()
	z := matrix.Identity(n).Scale(complex(energy, eta))

	eps := h0.Clone()
	epsS := h0.Clone()
	a := alpha.Clone()
	b := beta.Clone()
	limit := tol * (1 + h0.MaxAbs() + alpha.MaxAbs())

	for iter := 0; iter < maxIter; iter++ {
		if a.MaxAbs()+b.MaxAbs() < limit {
			return z.Sub(epsS).Inverse()
		}

		g, err := z.Sub(eps).Inverse()
		if err != nil {
			return nil, fmt.Errorf("decimation step %d: %w", iter, err)
		}

		ag := a.Mul(g)
		bg := b.Mul(g)
		agb := ag.Mul(b)

		epsS = epsS.Add(agb)
		eps = eps.Add(agb).Add(bg.Mul(a))
		a = ag.Mul(a)
		b = bg.Mul(b)
	}

	return nil, fmt.Errorf("%w after %d steps at E=%g", ErrNoConvergence, maxIter, energy)
}
