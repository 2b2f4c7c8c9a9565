package term

import (
	"errors"

	"github.com/edp1096/toy-transport/pkg/matrix"
)

var (
	ErrShape        = errors.New("term: value has wrong shape")
	ErrNilValue     = errors.New("term: value function returned nil")
	ErrSelfEnergy   = errors.New("term: missing lead self-energy")
	ErrNotHermitian = errors.New("term: on-site value is not Hermitian")
)

type Term interface {
	GetName() string
	GetType() string
	Stamp(m matrix.DeviceMatrix, status *Status) error
}

type StampMode int

const (
	// HamiltonianMode stamps H.
	HamiltonianMode StampMode = iota
	// ScatteringMode stamps E - H - Sigma.
	ScatteringMode
)

type Status struct {
	Mode         StampMode
	Energy       float64
	Params       Params
	SelfEnergies []*matrix.Dense // indexed by lead
}

type BaseTerm struct {
	Name string
}

func (t *BaseTerm) GetName() string {
	return t.Name
}

// stampBlock adds sign*block at 1-based offsets (row, col).
func stampBlock(m matrix.DeviceMatrix, row, col int, block *matrix.Dense, sign float64) {
	for i := 0; i < block.Rows(); i++ {
		for j := 0; j < block.Cols(); j++ {
			v := block.At(i, j)
			m.AddComplexElement(row+i, col+j, sign*real(v), sign*imag(v))
		}
	}
}

func sign(mode StampMode) float64 {
	if mode == ScatteringMode {
		return -1
	}
	return 1
}
