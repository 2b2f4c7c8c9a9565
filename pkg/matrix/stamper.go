package matrix

// DeviceMatrix receives Hamiltonian stamps. Indices are 1-based, orbital
// i of the system maps to row and column i.
type DeviceMatrix interface {
	AddElement(i, j int, value float64)
	AddComplexElement(i, j int, real, imag float64)
	AddRHS(i int, value float64)
	AddComplexRHS(i int, real, imag float64)
}

var (
	_ DeviceMatrix = (*SystemMatrix)(nil)
	_ DeviceMatrix = (*DenseStamper)(nil)
)

// DenseStamper collects stamps into a Dense, 1-based like SystemMatrix.
// Right-hand side stamps are ignored.
type DenseStamper struct {
	*Dense
}

func NewDenseStamper(n int) *DenseStamper {
	return &DenseStamper{Dense: NewDense(n, n)}
}

func (s *DenseStamper) AddElement(i, j int, value float64) {
	s.AddAt(i-1, j-1, complex(value, 0))
}

func (s *DenseStamper) AddComplexElement(i, j int, real, imag float64) {
	s.AddAt(i-1, j-1, complex(real, imag))
}

func (s *DenseStamper) AddRHS(i int, value float64)            {}
func (s *DenseStamper) AddComplexRHS(i int, real, imag float64) {}
