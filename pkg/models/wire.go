package models

import (
	"github.com/edp1096/toy-transport/pkg/builder"
	"github.com/edp1096/toy-transport/pkg/lattice"
	"github.com/edp1096/toy-transport/pkg/matrix"
	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
)

// Wire is a square-lattice wire of length x width sites with hopping -t
// and band bottom at zero energy. Parameter V0 raises the middle third.
// Lead 0 is on the left, lead 1 on the right.
func Wire(length, width int, t float64) (*system.System, error) {
	if err := checkSize("length", length, 1); err != nil {
		return nil, err
	}
	if err := checkSize("width", width, 1); err != nil {
		return nil, err
	}

	lat := lattice.Square(1)
	onsite := func(s lattice.Site, p term.Params) *matrix.Dense {
		v := 4 * t
		if inBarrier(s.X, length) {
			v += p.Get(ParamBarrier)
		}
		return matrix.Scalar(complex(v, 0))
	}

	b := builder.New(lat, nil)
	b.Name = "wire"
	_, err := b.Fill(lattice.Rectangle(0, 0, length-1, width-1), lattice.Site{}, onsite)
	if err != nil {
		return nil, err
	}
	_, err = b.AddNeighborHoppings(term.ScalarHopping(-t))
	if err != nil {
		return nil, err
	}

	lead := builder.New(lat, newSymmetry(-1, 0))
	_, err = lead.Fill(lattice.Band(0, width-1), lattice.Site{}, term.Scalar(4*t))
	if err != nil {
		return nil, err
	}
	_, err = lead.AddNeighborHoppings(term.ScalarHopping(-t))
	if err != nil {
		return nil, err
	}

	_, _, err = attachPair(b, lead)
	if err != nil {
		return nil, err
	}
	return finalize(b)
}

// Chain is a 1D chain with zero on-site energy and hopping -t, so its band
// spans [-2t, 2t]. V0 raises the middle third.
func Chain(length int, t float64) (*system.System, error) {
	if err := checkSize("length", length, 1); err != nil {
		return nil, err
	}

	lat := lattice.Chain(1)
	onsite := func(s lattice.Site, p term.Params) *matrix.Dense {
		if inBarrier(s.X, length) {
			return matrix.Scalar(complex(p.Get(ParamBarrier), 0))
		}
		return matrix.Scalar(0)
	}

	b := builder.New(lat, nil)
	b.Name = "chain"
	_, err := b.Fill(lattice.Column(0, length-1), lattice.Site{}, onsite)
	if err != nil {
		return nil, err
	}
	_, err = b.AddNeighborHoppings(term.ScalarHopping(-t))
	if err != nil {
		return nil, err
	}

	lead := builder.New(lat, newSymmetry(-1, 0))
	err = lead.AddSite(lattice.Site{}, term.Scalar(0))
	if err != nil {
		return nil, err
	}
	_, err = lead.AddNeighborHoppings(term.ScalarHopping(-t))
	if err != nil {
		return nil, err
	}

	_, _, err = attachPair(b, lead)
	if err != nil {
		return nil, err
	}
	return finalize(b)
}
