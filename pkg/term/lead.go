package term

import (
	"fmt"

	"github.com/edp1096/toy-transport/pkg/matrix"
)

// LeadTerm stamps -Sigma of an attached lead on its interface orbitals.
// The self-energy is computed by the caller and passed in Status.
type LeadTerm struct {
	BaseTerm
	Index   int
	Orbital []int // 1-based matrix indices of the interface orbitals
}

func NewLead(index int, orbitals []int) *LeadTerm {
	return &LeadTerm{
		BaseTerm: BaseTerm{Name: fmt.Sprintf("lead%d", index)},
		Index:    index,
		Orbital:  orbitals,
	}
}

func (t *LeadTerm) GetType() string { return "lead" }

func (t *LeadTerm) Stamp(m matrix.DeviceMatrix, status *Status) error {
	if status.Mode != ScatteringMode {
		return nil
	}
	if t.Index >= len(status.SelfEnergies) || status.SelfEnergies[t.Index] == nil {
		return fmt.Errorf("lead %d: %w", t.Index, ErrSelfEnergy)
	}

	sigma := status.SelfEnergies[t.Index]
	n := len(t.Orbital)
	if sigma.Rows() != n || sigma.Cols() != n {
		return fmt.Errorf("lead %d: self-energy %dx%d, want %dx%d: %w", t.Index, sigma.Rows(), sigma.Cols(), n, n, ErrShape)
	}

	for i, row := range t.Orbital {
		for j, col := range t.Orbital {
			v := sigma.At(i, j)
			m.AddComplexElement(row, col, -real(v), -imag(v))
		}
	}
	return nil
}
