package models

import (
	"math"

	"github.com/edp1096/toy-transport/pkg/builder"
	"github.com/edp1096/toy-transport/pkg/lattice"
	"github.com/edp1096/toy-transport/pkg/matrix"
	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
)

// SkyrmionTexture returns the unit magnetization of a Neel skyrmion of
// radius r0 centered at the origin. The core points along -z and the
// texture is uniform along +z beyond r0.
func SkyrmionTexture(x, y, r0 float64) (float64, float64, float64) {
	r := math.Hypot(x, y)
	if r0 <= 0 || r >= r0 {
		return 0, 0, 1
	}
	polar := math.Pi * (1 - r/r0)
	phi := math.Atan2(y, x)
	return math.Sin(polar) * math.Cos(phi), math.Sin(polar) * math.Sin(phi), math.Cos(polar)
}

// SkyrmionCross is a square region of side 2*radius+1 centered at the
// origin with a skyrmion texture coupled through J. Four non-magnetic leads
// of width leadWidth are attached: 0 left, 1 top, 2 right, 3 bottom.
func SkyrmionCross(radius, leadWidth int, t float64) (*system.System, error) {
	if err := checkSize("radius", radius, 1); err != nil {
		return nil, err
	}
	if err := checkSize("lead width", leadWidth, 1); err != nil {
		return nil, err
	}
	if err := checkSize("region side", 2*radius+1, leadWidth); err != nil {
		return nil, err
	}

	lat := lattice.Square(2)
	kinetic := matrix.Identity(2).Scale(complex(4*t, 0))
	onsite := func(s lattice.Site, p term.Params) *matrix.Dense {
		mx, my, mz := SkyrmionTexture(float64(s.X), float64(s.Y), p.Get(ParamRadius))
		return kinetic.Add(exchange(p.Get(ParamJ), mx, my, mz))
	}
	hop := identityHopping(2, t)

	b := builder.New(lat, nil)
	b.Name = "skyrmion-cross"
	_, err := b.Fill(lattice.Rectangle(-radius, -radius, radius, radius), lattice.Site{}, onsite)
	if err != nil {
		return nil, err
	}
	_, err = b.AddNeighborHoppings(hop)
	if err != nil {
		return nil, err
	}

	lo := -leadWidth / 2
	hi := lo + leadWidth - 1

	horizontal := builder.New(lat, newSymmetry(-1, 0))
	_, err = horizontal.Fill(lattice.Band(lo, hi), lattice.Site{X: 0, Y: lo}, term.ConstOnsite(kinetic))
	if err != nil {
		return nil, err
	}
	if _, err = horizontal.AddNeighborHoppings(hop); err != nil {
		return nil, err
	}

	vertical := builder.New(lat, newSymmetry(0, 1))
	_, err = vertical.Fill(lattice.Column(lo, hi), lattice.Site{X: lo, Y: 0}, term.ConstOnsite(kinetic))
	if err != nil {
		return nil, err
	}
	if _, err = vertical.AddNeighborHoppings(hop); err != nil {
		return nil, err
	}

	// left=0, top=1, right=2, bottom=3
	right, err := horizontal.Reversed()
	if err != nil {
		return nil, err
	}
	bottom, err := vertical.Reversed()
	if err != nil {
		return nil, err
	}
	for _, lead := range []*builder.Builder{horizontal, vertical, right, bottom} {
		if _, err = b.AttachLead(lead); err != nil {
			return nil, err
		}
	}
	return finalize(b)
}
