package matrix

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/cmplx"
	"strings"

	"github.com/edp1096/sparse"
)

// SystemMatrix is a 1-based sparse matrix with its right-hand side.
// Complex matrices keep the imaginary parts of rhs and solution in
// separate vectors.
type SystemMatrix struct {
	Size         int
	matrix       *sparse.Matrix
	rhs          []float64
	rhsImag      []float64
	solution     []float64
	solutionImag []float64
	config       *sparse.Configuration
	factored     bool
}

func NewMatrix(size int, isComplex bool) (*SystemMatrix, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid matrix size %d", size)
	}

	// Translate lets a cleared matrix take new stamps after the first
	// factorization has reordered it.
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 isComplex,
		SeparatedComplexVectors: true,
		Expandable:              true,
		Translate:               true,
		ModifiedNodal:           false,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %w", err)
	}

	return &SystemMatrix{
		Size:         size,
		matrix:       mat,
		rhs:          make([]float64, size+1), // 1-based indexing
		rhsImag:      make([]float64, size+1),
		solution:     make([]float64, size+1),
		solutionImag: make([]float64, size+1),
		config:       config,
	}, nil
}

func (m *SystemMatrix) IsComplex() bool {
	return m.config.Complex
}

func (m *SystemMatrix) inRange(i int) bool {
	return i > 0 && i <= m.Size
}

func (m *SystemMatrix) AddElement(i, j int, value float64) {
	if !m.inRange(i) || !m.inRange(j) {
		slog.Warn("matrix index out of bounds", "i", i, "j", j, "size", m.Size)
		return
	}
	m.matrix.GetElement(int64(i), int64(j)).Real += value
	m.factored = false
}

func (m *SystemMatrix) AddComplexElement(i, j int, real, imag float64) {
	if !m.inRange(i) || !m.inRange(j) {
		slog.Warn("matrix index out of bounds", "i", i, "j", j, "size", m.Size)
		return
	}

	element := m.matrix.GetElement(int64(i), int64(j))
	element.Real += real
	element.Imag += imag
	m.factored = false
}

func (m *SystemMatrix) AddRHS(i int, value float64) {
	if !m.inRange(i) {
		slog.Warn("rhs index out of bounds", "i", i, "size", m.Size)
		return
	}
	m.rhs[i] += value
}

func (m *SystemMatrix) AddComplexRHS(i int, real, imag float64) {
	if !m.inRange(i) {
		slog.Warn("rhs index out of bounds", "i", i, "size", m.Size)
		return
	}
	m.rhs[i] += real
	m.rhsImag[i] += imag
}

func (m *SystemMatrix) Clear() {
	m.matrix.Clear()
	m.ClearRHS()
	m.factored = false
}

func (m *SystemMatrix) ClearRHS() {
	for i := range m.rhs {
		m.rhs[i] = 0
	}
	for i := range m.rhsImag {
		m.rhsImag[i] = 0
	}
}

// Factor performs the LU factorization. Repeated solves against the same
// stamped matrix reuse it.
func (m *SystemMatrix) Factor() error {
	err := m.matrix.Factor()
	if err != nil {
		return fmt.Errorf("matrix factorization failed: %w", err)
	}
	m.factored = true
	return nil
}

// SolveRHS solves against the current right-hand side, factoring first if
// the matrix changed since the last factorization.
func (m *SystemMatrix) SolveRHS() error {
	var err error

	if !m.factored {
		err = m.Factor()
		if err != nil {
			return err
		}
	}

	if m.config.Complex {
		m.solution, m.solutionImag, err = m.matrix.SolveComplex(m.rhs, m.rhsImag)
	} else {
		m.solution, err = m.matrix.Solve(m.rhs)
	}
	if err != nil {
		return fmt.Errorf("matrix solve failed: %w", err)
	}

	return m.checkSolution()
}

func (m *SystemMatrix) Solve() error {
	err := m.Factor()
	if err != nil {
		return err
	}
	return m.SolveRHS()
}

// SolveVector solves A x = b for a 0-based complex vector b.
func (m *SystemMatrix) SolveVector(b []complex128) ([]complex128, error) {
	if len(b) != m.Size {
		return nil, fmt.Errorf("rhs length %d does not match matrix size %d", len(b), m.Size)
	}

	m.ClearRHS()
	for i, v := range b {
		m.rhs[i+1] = real(v)
		if m.config.Complex {
			m.rhsImag[i+1] = imag(v)
		}
	}

	err := m.SolveRHS()
	if err != nil {
		return nil, err
	}

	x := make([]complex128, m.Size)
	for i := range x {
		re, im := m.GetComplexSolution(i + 1)
		x[i] = complex(re, im)
	}
	return x, nil
}

func (m *SystemMatrix) checkSolution() error {
	for i := 1; i <= m.Size; i++ {
		re, im := m.GetComplexSolution(i)
		if cmplx.IsNaN(complex(re, im)) || math.IsInf(re, 0) || math.IsInf(im, 0) {
			return fmt.Errorf("matrix solve failed: non-finite solution at x%d", i)
		}
	}
	return nil
}

func (m *SystemMatrix) RHS() []float64 {
	return m.rhs
}

func (m *SystemMatrix) Solution() []float64 {
	return m.solution
}

func (m *SystemMatrix) SolutionImag() []float64 {
	return m.solutionImag
}

func (m *SystemMatrix) GetComplexSolution(i int) (float64, float64) {
	if !m.inRange(i) || i >= len(m.solution) {
		return 0, 0
	}
	if !m.config.Complex || i >= len(m.solutionImag) {
		return m.solution[i], 0
	}
	return m.solution[i], m.solutionImag[i]
}

// PrintSystem writes the nonzero entries row by row, then the sparse
// package's own dump to stdout.
func (m *SystemMatrix) PrintSystem(w io.Writer) {
	fmt.Fprintf(w, "\nSystem Equations (%dx%d):\n", m.Size, m.Size)

	for i := 1; i <= m.Size; i++ {
		var row []string
		for j := 1; j <= m.Size; j++ {
			el := m.matrix.GetElement(int64(i), int64(j))
			switch {
			case el.Real == 0 && el.Imag == 0:
			case el.Imag == 0:
				row = append(row, fmt.Sprintf("%+g*x%d", el.Real, j))
			default:
				row = append(row, fmt.Sprintf("(%g%+gi)*x%d", el.Real, el.Imag, j))
			}
		}
		if len(row) > 0 {
			fmt.Fprintf(w, "  %3d: %s\n", i, strings.Join(row, " "))
		}
	}

	m.matrix.Print(false, true, true)
}

func (m *SystemMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
		m.matrix = nil
	}
}
