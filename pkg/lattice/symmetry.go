package lattice

import "fmt"

// Symmetry is a discrete translational symmetry with period vector Period.
// Domain 0 is the fundamental domain; domain n is the fundamental domain
// shifted by n periods.
type Symmetry struct {
	Period Vec
}

func NewTranslational(period Vec) (*Symmetry, error) {
	if period.X == 0 && period.Y == 0 {
		return nil, ErrZeroPeriod
	}
	return &Symmetry{Period: period}, nil
}

func (s *Symmetry) Domain(site Site) int {
	dot := site.X*s.Period.X + site.Y*s.Period.Y
	norm := s.Period.X*s.Period.X + s.Period.Y*s.Period.Y
	return floorDiv(dot, norm)
}

// Act translates site by n periods.
func (s *Symmetry) Act(n int, site Site) Site {
	return site.Add(s.Period.Scale(n))
}

// ToFD maps site into the fundamental domain.
func (s *Symmetry) ToFD(site Site) Site {
	return s.Act(-s.Domain(site), site)
}

func (s *Symmetry) Reversed() *Symmetry {
	return &Symmetry{Period: s.Period.Neg()}
}

func (s *Symmetry) String() string {
	return fmt.Sprintf("translational(%d,%d)", s.Period.X, s.Period.Y)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
