package builder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/edp1096/toy-transport/pkg/lattice"
	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
)

var (
	ErrNoSite       = errors.New("builder: site does not exist")
	ErrSelfHopping  = errors.New("builder: hopping from a site to itself")
	ErrNilValue     = errors.New("builder: nil value function")
	ErrOffLattice   = errors.New("builder: site not on lattice")
	ErrNotLead      = errors.New("builder: lead builder needs a translational symmetry")
	ErrHasSymmetry  = errors.New("builder: operation needs a builder without symmetry")
	ErrLatticeKinds = errors.New("builder: lead lattice differs from region lattice")
)

type hoppingKey struct {
	To, From lattice.Site
}

type attachment struct {
	lead     *Builder
	boundary int
}

// Builder collects sites and hoppings of a finite scattering region
// (no symmetry) or of a lead template (translational symmetry). Sites of a
// symmetric builder are kept in the fundamental domain; hoppings are kept
// with their To site there.
type Builder struct {
	Name     string
	lat      *lattice.Lattice
	sym      *lattice.Symmetry
	sites    map[lattice.Site]term.OnsiteFunc
	hoppings map[hoppingKey]term.HoppingFunc
	leads    []attachment
}

func New(lat *lattice.Lattice, sym *lattice.Symmetry) *Builder {
	return &Builder{
		lat:      lat,
		sym:      sym,
		sites:    make(map[lattice.Site]term.OnsiteFunc),
		hoppings: make(map[hoppingKey]term.HoppingFunc),
	}
}

func (b *Builder) Lattice() *lattice.Lattice {
	return b.lat
}

func (b *Builder) Symmetry() *lattice.Symmetry {
	return b.sym
}

func (b *Builder) norm(s lattice.Site) lattice.Site {
	if b.sym == nil {
		return s
	}
	return b.sym.ToFD(s)
}

func (b *Builder) key(to, from lattice.Site) hoppingKey {
	if b.sym == nil {
		return hoppingKey{to, from}
	}
	d := b.sym.Domain(to)
	return hoppingKey{b.sym.Act(-d, to), b.sym.Act(-d, from)}
}

// AddSite sets the on-site value of s, adding the site when it is new.
func (b *Builder) AddSite(s lattice.Site, value term.OnsiteFunc) error {
	if value == nil {
		return ErrNilValue
	}
	if !b.lat.Contains(s) {
		return fmt.Errorf("%w: %v on %s", ErrOffLattice, s, b.lat.Name)
	}
	b.sites[b.norm(s)] = value
	return nil
}

func (b *Builder) HasSite(s lattice.Site) bool {
	_, ok := b.sites[b.norm(s)]
	return ok
}

// RemoveSite deletes s and every hopping touching it.
func (b *Builder) RemoveSite(s lattice.Site) bool {
	s = b.norm(s)
	if _, ok := b.sites[s]; !ok {
		return false
	}
	delete(b.sites, s)
	for k := range b.hoppings {
		if k.To == s || b.norm(k.From) == s {
			delete(b.hoppings, k)
		}
	}
	return true
}

func (b *Builder) Sites() []lattice.Site {
	out := make([]lattice.Site, 0, len(b.sites))
	for s := range b.sites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (b *Builder) NumSites() int {
	return len(b.sites)
}

func (b *Builder) Onsite(s lattice.Site) (term.OnsiteFunc, bool) {
	v, ok := b.sites[b.norm(s)]
	return v, ok
}

// AddHopping sets H[to, from]; H[from, to] is its Hermitian conjugate.
func (b *Builder) AddHopping(to, from lattice.Site, value term.HoppingFunc) error {
	if value == nil {
		return ErrNilValue
	}
	if to == from {
		return fmt.Errorf("%w: %v", ErrSelfHopping, to)
	}
	if !b.HasSite(to) {
		return fmt.Errorf("%w: %v", ErrNoSite, to)
	}
	if !b.HasSite(from) {
		return fmt.Errorf("%w: %v", ErrNoSite, from)
	}

	delete(b.hoppings, b.key(from, to))
	b.hoppings[b.key(to, from)] = value
	return nil
}

func (b *Builder) HasHopping(to, from lattice.Site) bool {
	_, ok := b.Hopping(to, from)
	return ok
}

// Hopping returns the value function of H[to, from].
func (b *Builder) Hopping(to, from lattice.Site) (term.HoppingFunc, bool) {
	if v, ok := b.hoppings[b.key(to, from)]; ok {
		return v, true
	}
	if v, ok := b.hoppings[b.key(from, to)]; ok {
		return term.Conjugate(v), true
	}
	return nil, false
}

func (b *Builder) RemoveHopping(to, from lattice.Site) bool {
	for _, k := range []hoppingKey{b.key(to, from), b.key(from, to)} {
		if _, ok := b.hoppings[k]; ok {
			delete(b.hoppings, k)
			return true
		}
	}
	return false
}

func (b *Builder) NumHoppings() int {
	return len(b.hoppings)
}

func (b *Builder) Hoppings() []system.Hopping {
	out := make([]system.Hopping, 0, len(b.hoppings))
	for k, v := range b.hoppings {
		out = append(out, system.Hopping{To: k.To, From: k.From, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].To != out[j].To {
			return out[i].To.Less(out[j].To)
		}
		return out[i].From.Less(out[j].From)
	})
	return out
}

// Fill adds every site reachable from start through nearest neighbors
// for which shape holds. It returns the number of new sites.
func (b *Builder) Fill(shape lattice.Shape, start lattice.Site, value term.OnsiteFunc) (int, error) {
	sites, err := b.lat.Fill(shape, start, b.sym)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, s := range sites {
		if !b.HasSite(s) {
			added++
		}
		err = b.AddSite(s, value)
		if err != nil {
			return added, err
		}
	}
	return added, nil
}

// AddNeighborHoppings connects every pair of nearest-neighbor sites that
// has no hopping yet. It returns the number of hoppings added.
func (b *Builder) AddNeighborHoppings(value term.HoppingFunc) (int, error) {
	added := 0
	for _, s := range b.Sites() {
		for _, d := range b.lat.Neighbors() {
			t := s.Add(d)
			if !b.HasSite(t) || b.HasHopping(t, s) {
				continue
			}
			err := b.AddHopping(t, s, value)
			if err != nil {
				return added, err
			}
			added++
		}
	}
	return added, nil
}

// Reversed returns a copy of a lead builder whose symmetry points the other
// way, for attaching the same lead on the opposite side.
func (b *Builder) Reversed() (*Builder, error) {
	if b.sym == nil {
		return nil, ErrNotLead
	}

	r := New(b.lat, b.sym.Reversed())
	r.Name = b.Name
	for s, v := range b.sites {
		r.sites[r.norm(s)] = v
	}
	for k, v := range b.hoppings {
		r.hoppings[r.key(k.To, k.From)] = v
	}
	return r, nil
}
