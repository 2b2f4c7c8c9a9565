package system

import (
	"fmt"
	"math"
	"sort"

	"github.com/edp1096/toy-transport/internal/consts"
	"github.com/edp1096/toy-transport/pkg/lattice"
	"github.com/edp1096/toy-transport/pkg/matrix"
	"github.com/edp1096/toy-transport/pkg/term"
)

type Hopping struct {
	To, From lattice.Site
	Value    term.HoppingFunc
}

// LeadCell describes a lead template: one unit cell of sites in the
// fundamental domain of Symmetry plus hoppings whose To site lies in it.
type LeadCell struct {
	Symmetry *lattice.Symmetry
	Lattice  *lattice.Lattice
	Onsites  map[lattice.Site]term.OnsiteFunc
	Hoppings []Hopping
}

// Lead is a finalized semi-infinite lead. Cell n+1 lies one period further
// from the scattering region than cell n; V couples cell n+1 into cell n.
type Lead struct {
	Index     int
	Symmetry  *lattice.Symmetry
	Norbs     int
	Cell      []lattice.Site
	Boundary  int   // symmetry domain of the region sites the lead couples to
	Interface []int // cell indices coupled to the region, ascending

	Eta     float64
	Tol     float64
	MaxIter int

	onsite []term.OnsiteFunc
	intra  []cellHopping
	inter  []cellHopping
}

type cellHopping struct {
	to, from         int
	toSite, fromSite lattice.Site
	value            term.HoppingFunc
}

func NewLead(cell *LeadCell) (*Lead, error) {
	if cell.Symmetry == nil {
		return nil, fmt.Errorf("%w: lead has no translational symmetry", ErrLeadMismatch)
	}
	if len(cell.Onsites) == 0 {
		return nil, fmt.Errorf("lead: %w", ErrEmpty)
	}

	sym := cell.Symmetry
	sites := make([]lattice.Site, 0, len(cell.Onsites))
	for s := range cell.Onsites {
		sites = append(sites, s)
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].Less(sites[j]) })

	idx := make(map[lattice.Site]int, len(sites))
	onsite := make([]term.OnsiteFunc, len(sites))
	for i, s := range sites {
		if d := sym.Domain(s); d != 0 {
			return nil, fmt.Errorf("%w: lead site %v outside the unit cell (domain %d)", ErrLeadMismatch, s, d)
		}
		idx[s] = i
		onsite[i] = cell.Onsites[s]
	}

	lead := &Lead{
		Symmetry: sym,
		Norbs:    cell.Lattice.Norbs,
		Cell:     sites,
		Eta:      consts.ETA,
		Tol:      consts.DECIM_TOL,
		MaxIter:  consts.DECIM_ITERS,
		onsite:   onsite,
	}

	lookup := func(s lattice.Site) (int, error) {
		i, ok := idx[s]
		if !ok {
			return 0, fmt.Errorf("%w: lead hopping to missing site %v", ErrLeadMismatch, s)
		}
		return i, nil
	}

	for _, h := range cell.Hoppings {
		to, from := h.To, h.From
		if dt := sym.Domain(to); dt != 0 {
			to, from = sym.Act(-dt, to), sym.Act(-dt, from)
		}

		toIdx, err := lookup(to)
		if err != nil {
			return nil, err
		}

		switch d := sym.Domain(from); d {
		case 0:
			fromIdx, err := lookup(from)
			if err != nil {
				return nil, err
			}
			lead.intra = append(lead.intra, cellHopping{toIdx, fromIdx, to, from, h.Value})

		case 1:
			fromIdx, err := lookup(sym.Act(-1, from))
			if err != nil {
				return nil, err
			}
			lead.inter = append(lead.inter, cellHopping{toIdx, fromIdx, to, from, h.Value})

		case -1:
			// Shift one period outwards and store the conjugate block.
			near := sym.Act(1, from)
			far := sym.Act(1, to)
			nearIdx, err := lookup(near)
			if err != nil {
				return nil, err
			}
			lead.inter = append(lead.inter, cellHopping{nearIdx, toIdx, near, far, term.Conjugate(h.Value)})

		default:
			return nil, fmt.Errorf("%w: %v<-%v crosses %d periods", ErrLeadHopping, h.To, h.From, d)
		}
	}

	if len(lead.inter) == 0 {
		return nil, fmt.Errorf("%w: no hopping between unit cells", ErrLeadMismatch)
	}

	seen := map[int]bool{}
	for _, h := range lead.inter {
		if !seen[h.to] {
			seen[h.to] = true
			lead.Interface = append(lead.Interface, h.to)
		}
	}
	sort.Ints(lead.Interface)

	return lead, nil
}

func (l *Lead) NumOrbitals() int {
	return len(l.Cell) * l.Norbs
}

// InterfaceSites returns the region sites the lead couples to, in the
// order of Interface.
func (l *Lead) InterfaceSites() []lattice.Site {
	out := make([]lattice.Site, len(l.Interface))
	for i, c := range l.Interface {
		out[i] = l.Symmetry.Act(l.Boundary, l.Cell[c])
	}
	return out
}

// InterfaceOrbitals returns the cell-orbital indices of Interface.
func (l *Lead) InterfaceOrbitals() []int {
	out := make([]int, 0, len(l.Interface)*l.Norbs)
	for _, c := range l.Interface {
		for o := 0; o < l.Norbs; o++ {
			out = append(out, c*l.Norbs+o)
		}
	}
	return out
}

// H0 is the Hamiltonian of one unit cell.
func (l *Lead) H0(p term.Params) (*matrix.Dense, error) {
	m := matrix.NewDenseStamper(l.NumOrbitals())
	status := &term.Status{Mode: term.HamiltonianMode, Params: p}

	for i, s := range l.Cell {
		err := term.NewOnsite(s, i*l.Norbs+1, l.Norbs, l.onsite[i]).Stamp(m, status)
		if err != nil {
			return nil, fmt.Errorf("lead %d: %w", l.Index, err)
		}
	}
	for _, h := range l.intra {
		t := term.NewHopping(h.toSite, h.fromSite, h.to*l.Norbs+1, h.from*l.Norbs+1, l.Norbs, l.Norbs, h.value)
		err := t.Stamp(m, status)
		if err != nil {
			return nil, fmt.Errorf("lead %d: %w", l.Index, err)
		}
	}

	return m.Dense, nil
}

// V is the hopping block H[n, n+1].
func (l *Lead) V(p term.Params) (*matrix.Dense, error) {
	v := matrix.NewDense(l.NumOrbitals(), l.NumOrbitals())

	for _, h := range l.inter {
		t := term.NewHopping(h.toSite, h.fromSite, 0, 0, l.Norbs, l.Norbs, h.value)
		block, err := t.Evaluate(p)
		if err != nil {
			return nil, fmt.Errorf("lead %d: %w", l.Index, err)
		}
		for i := 0; i < l.Norbs; i++ {
			for j := 0; j < l.Norbs; j++ {
				v.AddAt(h.to*l.Norbs+i, h.from*l.Norbs+j, block.At(i, j))
			}
		}
	}

	return v, nil
}

func (l *Lead) blocks(p term.Params) (*matrix.Dense, *matrix.Dense, error) {
	h0, err := l.H0(p)
	if err != nil {
		return nil, nil, err
	}
	v, err := l.V(p)
	if err != nil {
		return nil, nil, err
	}
	return h0, v, nil
}

// SurfaceGreen returns the retarded Green's function of the first lead
// cell with all deeper cells attached.
func (l *Lead) SurfaceGreen(energy float64, p term.Params) (*matrix.Dense, error) {
	h0, v, err := l.blocks(p)
	if err != nil {
		return nil, err
	}
	return surfaceGreen(h0, v, v.Dagger(), energy, l.Eta, l.Tol, l.MaxIter)
}

// SelfEnergy returns Sigma on the interface orbitals of the region.
func (l *Lead) SelfEnergy(energy float64, p term.Params) (*matrix.Dense, error) {
	h0, v, err := l.blocks(p)
	if err != nil {
		return nil, err
	}
	g, err := surfaceGreen(h0, v, v.Dagger(), energy, l.Eta, l.Tol, l.MaxIter)
	if err != nil {
		return nil, fmt.Errorf("lead %d: %w", l.Index, err)
	}

	all := make([]int, l.NumOrbitals())
	for i := range all {
		all[i] = i
	}
	vi := v.Block(l.InterfaceOrbitals(), all)

	return vi.Mul(g).Mul(vi.Dagger()), nil
}

// OpenChannels returns the number of propagating modes in one direction,
// computed as the transmission through a perfect infinite lead.
func (l *Lead) OpenChannels(energy float64, p term.Params) (float64, error) {
	h0, v, err := l.blocks(p)
	if err != nil {
		return 0, err
	}
	vd := v.Dagger()

	gOut, err := surfaceGreen(h0, v, vd, energy, l.Eta, l.Tol, l.MaxIter)
	if err != nil {
		return 0, fmt.Errorf("lead %d: %w", l.Index, err)
	}
	gIn, err := surfaceGreen(h0, vd, v, energy, l.Eta, l.Tol, l.MaxIter)
	if err != nil {
		return 0, fmt.Errorf("lead %d: %w", l.Index, err)
	}

	sigmaOut := v.Mul(gOut).Mul(vd)
	sigmaIn := vd.Mul(gIn).Mul(v)

	n := l.NumOrbitals()
	z := matrix.Identity(n).Scale(complex(energy, l.Eta))
	g, err := z.Sub(h0).Sub(sigmaOut).Sub(sigmaIn).Inverse()
	if err != nil {
		return 0, fmt.Errorf("lead %d: %w", l.Index, err)
	}

	gammaOut := Broadening(sigmaOut)
	gammaIn := Broadening(sigmaIn)
	t := real(gammaOut.Mul(g).Mul(gammaIn).Mul(g.Dagger()).Trace())

	return math.Max(t, 0), nil
}

// Broadening returns Gamma = i (Sigma - Sigma^+).
func Broadening(sigma *matrix.Dense) *matrix.Dense {
	return sigma.Sub(sigma.Dagger()).Scale(1i)
}
