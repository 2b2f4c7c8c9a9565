package models

import (
	"math"

	"github.com/edp1096/toy-transport/pkg/builder"
	"github.com/edp1096/toy-transport/pkg/lattice"
	"github.com/edp1096/toy-transport/pkg/matrix"
	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
)

// exchange returns -J m.sigma.
func exchange(j, mx, my, mz float64) *matrix.Dense {
	return matrix.Spin(mx, my, mz).Scale(complex(-j, 0))
}

// SpinValve is a spin-1/2 chain whose left half is magnetized along z and
// whose right half is rotated by theta in the x-z plane. The ferromagnetic
// leads follow the magnetization of their side. Lead 0 is on the left.
func SpinValve(length int, t float64) (*system.System, error) {
	if err := checkSize("length", length, 2); err != nil {
		return nil, err
	}

	lat := lattice.Chain(2)
	left := func(_ lattice.Site, p term.Params) *matrix.Dense {
		return exchange(p.Get(ParamJ), 0, 0, 1)
	}
	right := func(_ lattice.Site, p term.Params) *matrix.Dense {
		th := p.Get(ParamTheta)
		return exchange(p.Get(ParamJ), math.Sin(th), 0, math.Cos(th))
	}
	onsite := func(s lattice.Site, p term.Params) *matrix.Dense {
		if 2*s.X < length {
			return left(s, p)
		}
		return right(s, p)
	}

	hop := identityHopping(2, t)

	b := builder.New(lat, nil)
	b.Name = "spin-valve"
	_, err := b.Fill(lattice.Column(0, length-1), lattice.Site{}, onsite)
	if err != nil {
		return nil, err
	}
	_, err = b.AddNeighborHoppings(hop)
	if err != nil {
		return nil, err
	}

	leftLead := builder.New(lat, newSymmetry(-1, 0))
	if err = leftLead.AddSite(lattice.Site{}, left); err != nil {
		return nil, err
	}
	if _, err = leftLead.AddNeighborHoppings(hop); err != nil {
		return nil, err
	}

	rightLead := builder.New(lat, newSymmetry(1, 0))
	if err = rightLead.AddSite(lattice.Site{}, right); err != nil {
		return nil, err
	}
	if _, err = rightLead.AddNeighborHoppings(hop); err != nil {
		return nil, err
	}

	if _, err = b.AttachLead(leftLead); err != nil {
		return nil, err
	}
	if _, err = b.AttachLead(rightLead); err != nil {
		return nil, err
	}
	return finalize(b)
}
