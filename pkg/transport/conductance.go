package transport

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/edp1096/toy-transport/internal/consts"
	"github.com/edp1096/toy-transport/pkg/matrix"
)

var (
	ErrSingular         = errors.New("transport: singular reduced conductance matrix")
	ErrCurrentImbalance = errors.New("transport: terminal currents do not sum to zero")
	ErrTerminal         = errors.New("transport: terminal index out of range")
)

// CurrentTol bounds the sum of terminal currents accepted by Voltages.
const CurrentTol = 1e-9

// ConductanceMatrix relates terminal currents to terminal voltages in
// units of e^2/h: I = -G V. Off-diagonal entries are transmissions
// G_ij = T(i, j) and the diagonal holds the negative row sums.
type ConductanceMatrix struct {
	n int
	g [][]float64
}

// NewConductanceMatrix builds the matrix of n terminals from a
// transmission function T(to, from).
func NewConductanceMatrix(n int, trans func(to, from int) float64) *ConductanceMatrix {
	g := make([][]float64, n)
	for i := range g {
		g[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			g[i][j] = trans(i, j)
			g[i][i] -= g[i][j]
		}
	}
	return &ConductanceMatrix{n: n, g: g}
}

func (c *ConductanceMatrix) Size() int {
	return c.n
}

func (c *ConductanceMatrix) At(i, j int) float64 {
	return c.g[i][j]
}

// IsSymmetric reports whether G equals its transpose within tol, as it
// must for reciprocal systems.
func (c *ConductanceMatrix) IsSymmetric(tol float64) bool {
	for i := 0; i < c.n; i++ {
		for j := i + 1; j < c.n; j++ {
			if math.Abs(c.g[i][j]-c.g[j][i]) > tol {
				return false
			}
		}
	}
	return true
}

func (c *ConductanceMatrix) checkTerminal(i int) error {
	if i < 0 || i >= c.n {
		return fmt.Errorf("%w: %d of %d", ErrTerminal, i, c.n)
	}
	return nil
}

// Voltages solves for terminal voltages given the currents flowing into
// each terminal. Terminal ref is grounded and removed from the system.
func (c *ConductanceMatrix) Voltages(currents []float64, ref int) ([]float64, error) {
	if len(currents) != c.n {
		return nil, fmt.Errorf("got %d currents for %d terminals", len(currents), c.n)
	}
	if err := c.checkTerminal(ref); err != nil {
		return nil, err
	}

	total := 0.0
	for _, i := range currents {
		total += i
	}
	if math.Abs(total) > CurrentTol {
		return nil, fmt.Errorf("%w: sum %g", ErrCurrentImbalance, total)
	}

	v := make([]float64, c.n)
	if c.n == 1 {
		return v, nil
	}

	// reduced index -> terminal
	terms := make([]int, 0, c.n-1)
	for i := 0; i < c.n; i++ {
		if i != ref {
			terms = append(terms, i)
		}
	}

	mat, err := matrix.NewMatrix(len(terms), false)
	if err != nil {
		return nil, err
	}
	defer mat.Destroy()

	for r, i := range terms {
		if c.g[i][i] == 0 {
			return nil, fmt.Errorf("%w: terminal %d is decoupled", ErrSingular, i)
		}
		for k, j := range terms {
			if c.g[i][j] != 0 {
				mat.AddElement(r+1, k+1, -c.g[i][j])
			}
		}
		mat.AddRHS(r+1, currents[i])
	}

	err = mat.Solve()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSingular, err)
	}

	sol := mat.Solution()
	for r, i := range terms {
		v[i] = sol[r+1]
	}
	return v, nil
}

// Resistance drives a unit current from source to drain and returns
// (V_plus - V_minus) in units of h/e^2.
func (c *ConductanceMatrix) Resistance(source, drain, plus, minus int) (float64, error) {
	for _, t := range []int{source, drain, plus, minus} {
		if err := c.checkTerminal(t); err != nil {
			return 0, err
		}
	}
	if source == drain {
		return 0, fmt.Errorf("source and drain are both terminal %d", source)
	}

	currents := make([]float64, c.n)
	currents[source] = 1
	currents[drain] = -1

	v, err := c.Voltages(currents, drain)
	if err != nil {
		return 0, err
	}
	return v[plus] - v[minus], nil
}

func (c *ConductanceMatrix) String() string {
	var sb strings.Builder
	for i := 0; i < c.n; i++ {
		for j := 0; j < c.n; j++ {
			fmt.Fprintf(&sb, "%10.5f", c.g[i][j])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Siemens converts a conductance in units of e^2/h to S.
func Siemens(g float64) float64 {
	return g * consts.CONDUCTANCE_QUANTUM
}

// Ohms converts a resistance in units of h/e^2 to ohm.
func Ohms(r float64) float64 {
	return r * consts.RESISTANCE_QUANTUM
}

// TwoTerminal returns the Landauer conductance T e^2/h in siemens.
func TwoTerminal(transmission float64) float64 {
	return Siemens(transmission)
}
