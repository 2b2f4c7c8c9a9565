package term

import (
	"fmt"

	"github.com/edp1096/toy-transport/pkg/lattice"
	"github.com/edp1096/toy-transport/pkg/matrix"
)

// HoppingTerm stamps H[to, from] and its Hermitian conjugate.
type HoppingTerm struct {
	BaseTerm
	To, From             lattice.Site
	ToOffset, FromOffset int
	ToNorbs, FromNorbs   int
	Value                HoppingFunc
}

func NewHopping(to, from lattice.Site, toOffset, fromOffset, toNorbs, fromNorbs int, value HoppingFunc) *HoppingTerm {
	return &HoppingTerm{
		BaseTerm:   BaseTerm{Name: fmt.Sprintf("hopping%v<-%v", to, from)},
		To:         to,
		From:       from,
		ToOffset:   toOffset,
		FromOffset: fromOffset,
		ToNorbs:    toNorbs,
		FromNorbs:  fromNorbs,
		Value:      value,
	}
}

func (t *HoppingTerm) GetType() string { return "hopping" }

func (t *HoppingTerm) Evaluate(p Params) (*matrix.Dense, error) {
	h := t.Value(t.To, t.From, p)
	if h == nil {
		return nil, fmt.Errorf("hopping %v<-%v: %w", t.To, t.From, ErrNilValue)
	}
	if h.Rows() != t.ToNorbs || h.Cols() != t.FromNorbs {
		return nil, fmt.Errorf("hopping %v<-%v: %dx%d, want %dx%d: %w",
			t.To, t.From, h.Rows(), h.Cols(), t.ToNorbs, t.FromNorbs, ErrShape)
	}
	return h, nil
}

func (t *HoppingTerm) Stamp(m matrix.DeviceMatrix, status *Status) error {
	h, err := t.Evaluate(status.Params)
	if err != nil {
		return err
	}

	s := sign(status.Mode)
	stampBlock(m, t.ToOffset, t.FromOffset, h, s)
	stampBlock(m, t.FromOffset, t.ToOffset, h.Dagger(), s)
	return nil
}
