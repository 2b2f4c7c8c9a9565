package term

import (
	"fmt"

	"github.com/edp1096/toy-transport/pkg/lattice"
	"github.com/edp1096/toy-transport/pkg/matrix"
)

type OnsiteTerm struct {
	BaseTerm
	Site   lattice.Site
	Offset int // 1-based index of the first orbital
	Norbs  int
	Value  OnsiteFunc
}

func NewOnsite(site lattice.Site, offset, norbs int, value OnsiteFunc) *OnsiteTerm {
	return &OnsiteTerm{
		BaseTerm: BaseTerm{Name: "onsite" + site.String()},
		Site:     site,
		Offset:   offset,
		Norbs:    norbs,
		Value:    value,
	}
}

func (t *OnsiteTerm) GetType() string { return "onsite" }

func (t *OnsiteTerm) Evaluate(p Params) (*matrix.Dense, error) {
	h := t.Value(t.Site, p)
	if h == nil {
		return nil, fmt.Errorf("site %v: %w", t.Site, ErrNilValue)
	}
	if h.Rows() != t.Norbs || h.Cols() != t.Norbs {
		return nil, fmt.Errorf("site %v: %dx%d, want %dx%d: %w", t.Site, h.Rows(), h.Cols(), t.Norbs, t.Norbs, ErrShape)
	}
	if !h.IsHermitian(1e-12) {
		return nil, fmt.Errorf("site %v: %w", t.Site, ErrNotHermitian)
	}
	return h, nil
}

func (t *OnsiteTerm) Stamp(m matrix.DeviceMatrix, status *Status) error {
	h, err := t.Evaluate(status.Params)
	if err != nil {
		return err
	}

	stampBlock(m, t.Offset, t.Offset, h, sign(status.Mode))

	if status.Mode == ScatteringMode {
		for i := 0; i < t.Norbs; i++ {
			m.AddComplexElement(t.Offset+i, t.Offset+i, status.Energy, 0)
		}
	}
	return nil
}
