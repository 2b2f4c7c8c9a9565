package system

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"

	"github.com/edp1096/toy-transport/pkg/lattice"
	"github.com/edp1096/toy-transport/pkg/matrix"
	"github.com/edp1096/toy-transport/pkg/term"
)

// Region is a finite builder's content handed to New.
type Region struct {
	Name     string
	Lattice  *lattice.Lattice
	Onsites  map[lattice.Site]term.OnsiteFunc
	Hoppings []Hopping
	Leads    []*Lead
}

// System is a finalized scattering region with its leads. Its structure is
// fixed; values are evaluated at every Stamp.
type System struct {
	name    string
	lat     *lattice.Lattice
	sites   []lattice.Site
	siteMap map[lattice.Site]int
	terms   []term.Term
	leads   []*Lead
	leadOrb [][]int // 1-based matrix indices of each lead's interface orbitals
	matrix  *matrix.SystemMatrix
	Status  *term.Status
}

func New(r *Region) (*System, error) {
	if len(r.Onsites) == 0 {
		return nil, ErrEmpty
	}

	sys := &System{
		name:    r.Name,
		lat:     r.Lattice,
		siteMap: make(map[lattice.Site]int, len(r.Onsites)),
		Status:  &term.Status{},
	}

	for s := range r.Onsites {
		sys.sites = append(sys.sites, s)
	}
	sort.Slice(sys.sites, func(i, j int) bool { return sys.sites[i].Less(sys.sites[j]) })
	for i, s := range sys.sites {
		sys.siteMap[s] = i
	}

	err := sys.checkConnected(r.Hoppings)
	if err != nil {
		return nil, err
	}

	norbs := r.Lattice.Norbs
	for i, s := range sys.sites {
		sys.terms = append(sys.terms, term.NewOnsite(s, sys.OrbitalIndex(i, 0), norbs, r.Onsites[s]))
	}
	for _, h := range r.Hoppings {
		to, okTo := sys.siteMap[h.To]
		from, okFrom := sys.siteMap[h.From]
		if !okTo || !okFrom {
			return nil, fmt.Errorf("hopping %v<-%v references a missing site", h.To, h.From)
		}
		sys.terms = append(sys.terms, term.NewHopping(h.To, h.From,
			sys.OrbitalIndex(to, 0), sys.OrbitalIndex(from, 0), norbs, norbs, h.Value))
	}

	for i, lead := range r.Leads {
		err = sys.attach(i, lead)
		if err != nil {
			return nil, err
		}
	}

	sys.matrix, err = matrix.NewMatrix(sys.NumOrbitals(), true)
	if err != nil {
		return nil, err
	}

	return sys, nil
}

func (sys *System) checkConnected(hoppings []Hopping) error {
	g := core.NewGraph()
	for _, s := range sys.sites {
		if err := g.AddVertex(s.ID()); err != nil {
			return fmt.Errorf("connectivity graph: %w", err)
		}
	}
	for _, h := range hoppings {
		a, b := h.To.ID(), h.From.ID()
		if a == b || g.HasEdge(a, b) {
			continue
		}
		if _, err := g.AddEdge(a, b, 0); err != nil {
			return fmt.Errorf("connectivity graph: %w", err)
		}
	}

	res, err := bfs.BFS(g, sys.sites[0].ID())
	if err != nil {
		return fmt.Errorf("connectivity graph: %w", err)
	}
	if len(res.Order) != len(sys.sites) {
		return fmt.Errorf("%w: %d of %d sites reachable from %v",
			ErrDisconnected, len(res.Order), len(sys.sites), sys.sites[0])
	}
	return nil
}

func (sys *System) attach(index int, lead *Lead) error {
	lead.Index = index

	if lead.Norbs != sys.lat.Norbs {
		return fmt.Errorf("%w: lead %d has %d orbitals per site, region has %d",
			ErrLeadMismatch, index, lead.Norbs, sys.lat.Norbs)
	}

	for _, s := range sys.sites {
		if d := lead.Symmetry.Domain(s); d > lead.Boundary {
			return fmt.Errorf("%w: site %v lies in lead %d (domain %d > %d)",
				ErrLeadOverlap, s, index, d, lead.Boundary)
		}
	}

	var orbitals []int
	for _, s := range lead.InterfaceSites() {
		i, ok := sys.siteMap[s]
		if !ok {
			return fmt.Errorf("%w: lead %d couples to missing site %v", ErrLeadMismatch, index, s)
		}
		for o := 0; o < lead.Norbs; o++ {
			orbitals = append(orbitals, sys.OrbitalIndex(i, o))
		}
	}

	sys.leads = append(sys.leads, lead)
	sys.leadOrb = append(sys.leadOrb, orbitals)
	sys.terms = append(sys.terms, term.NewLead(index, orbitals))
	return nil
}

// OrbitalIndex returns the 1-based matrix index of orbital o of site i.
func (sys *System) OrbitalIndex(site, orb int) int {
	return site*sys.lat.Norbs + orb + 1
}

func (sys *System) Stamp(status *term.Status) error {
	var err error

	for _, t := range sys.terms {
		err = t.Stamp(sys.matrix, status)
		if err != nil {
			return fmt.Errorf("stamping %s: %w", t.GetName(), err)
		}
	}
	sys.Status = status
	return nil
}

// Hamiltonian returns a dense copy of the region Hamiltonian.
func (sys *System) Hamiltonian(p term.Params) (*matrix.Dense, error) {
	m := matrix.NewDenseStamper(sys.NumOrbitals())
	status := &term.Status{Mode: term.HamiltonianMode, Params: p}

	for _, t := range sys.terms {
		err := t.Stamp(m, status)
		if err != nil {
			return nil, fmt.Errorf("stamping %s: %w", t.GetName(), err)
		}
	}
	return m.Dense, nil
}

func (sys *System) GetMatrix() *matrix.SystemMatrix {
	return sys.matrix
}

func (sys *System) Name() string {
	return sys.name
}

func (sys *System) Lattice() *lattice.Lattice {
	return sys.lat
}

func (sys *System) Sites() []lattice.Site {
	return sys.sites
}

func (sys *System) SiteIndex(s lattice.Site) (int, bool) {
	i, ok := sys.siteMap[s]
	return i, ok
}

func (sys *System) NumSites() int {
	return len(sys.sites)
}

func (sys *System) NumOrbitals() int {
	return len(sys.sites) * sys.lat.Norbs
}

func (sys *System) Leads() []*Lead {
	return sys.leads
}

func (sys *System) NumLeads() int {
	return len(sys.leads)
}

func (sys *System) Lead(i int) (*Lead, error) {
	if i < 0 || i >= len(sys.leads) {
		return nil, fmt.Errorf("%w: %d of %d", ErrLeadIndex, i, len(sys.leads))
	}
	return sys.leads[i], nil
}

// LeadOrbitals returns the 1-based matrix indices of lead i's interface.
func (sys *System) LeadOrbitals(i int) []int {
	return sys.leadOrb[i]
}

func (sys *System) GetTerms() []term.Term {
	return sys.terms
}

func (sys *System) Destroy() {
	if sys.matrix != nil {
		sys.matrix.Destroy()
	}
}
