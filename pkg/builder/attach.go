package builder

import (
	"fmt"

	"github.com/edp1096/toy-transport/pkg/lattice"
	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
)

// AttachLead attaches a lead template and returns its index. Indices count
// from 0 in attachment order. When the region boundary lacks a site the
// lead couples to, one lead unit cell is copied onto the boundary first.
func (b *Builder) AttachLead(lead *Builder) (int, error) {
	if b.sym != nil {
		return 0, ErrHasSymmetry
	}
	if lead.sym == nil {
		return 0, ErrNotLead
	}
	if lead.lat.Name != b.lat.Name || lead.lat.Norbs != b.lat.Norbs {
		return 0, fmt.Errorf("%w: %v vs %v", ErrLatticeKinds, lead.lat, b.lat)
	}
	if len(b.sites) == 0 {
		return 0, system.ErrEmpty
	}
	if len(lead.sites) == 0 {
		return 0, fmt.Errorf("lead: %w", system.ErrEmpty)
	}

	sym := lead.sym
	boundary := 0
	first := true
	for s := range b.sites {
		if d := sym.Domain(s); first || d > boundary {
			boundary, first = d, false
		}
	}

	if !b.hasInterface(lead, boundary) {
		boundary++
		added := b.copyCell(lead, boundary)
		if !added.linked || !b.hasInterface(lead, boundary) {
			b.undo(added)
			return 0, fmt.Errorf("%w: cannot complete the interface", system.ErrLeadMismatch)
		}
	}

	b.leads = append(b.leads, attachment{lead: lead, boundary: boundary})
	return len(b.leads) - 1, nil
}

// interfaceTargets lists the unit-cell sites with a hopping into the next
// cell outwards.
func interfaceTargets(lead *Builder) []lattice.Site {
	sym := lead.sym
	var out []lattice.Site
	for k := range lead.hoppings {
		switch sym.Domain(k.From) {
		case 1:
			out = append(out, k.To)
		case -1:
			out = append(out, sym.Act(1, k.From))
		}
	}
	return out
}

func (b *Builder) hasInterface(lead *Builder, boundary int) bool {
	for _, s := range interfaceTargets(lead) {
		if _, ok := b.sites[lead.sym.Act(boundary, s)]; !ok {
			return false
		}
	}
	return true
}

// cellCopy records what copyCell added. linked is set when at least one
// copied hopping reaches a site outside the new cell.
type cellCopy struct {
	sites    []lattice.Site
	hoppings []hoppingKey
	linked   bool
}

// copyCell places one lead unit cell in symmetry domain `domain` and
// connects it to whatever region sites its hoppings reach.
func (b *Builder) copyCell(lead *Builder, domain int) cellCopy {
	var added cellCopy
	sym := lead.sym
	for s, v := range lead.sites {
		site := sym.Act(domain, s)
		if _, ok := b.sites[site]; ok {
			continue
		}
		b.sites[site] = v
		added.sites = append(added.sites, site)
	}

	for k, v := range lead.hoppings {
		for _, shift := range []int{domain - 1, domain} {
			to, from := sym.Act(shift, k.To), sym.Act(shift, k.From)
			inTo, inFrom := sym.Domain(to) == domain, sym.Domain(from) == domain
			if !inTo && !inFrom {
				continue
			}
			if !b.HasSite(to) || !b.HasSite(from) || b.HasHopping(to, from) {
				continue
			}
			key := b.key(to, from)
			b.hoppings[key] = v
			added.hoppings = append(added.hoppings, key)
			if !inTo || !inFrom {
				added.linked = true
			}
		}
	}
	return added
}

func (b *Builder) undo(added cellCopy) {
	for _, k := range added.hoppings {
		delete(b.hoppings, k)
	}
	for _, s := range added.sites {
		delete(b.sites, s)
	}
}

func (b *Builder) NumLeads() int {
	return len(b.leads)
}

func (b *Builder) leadCell() *system.LeadCell {
	return &system.LeadCell{
		Symmetry: b.sym,
		Lattice:  b.lat,
		Onsites:  b.sites,
		Hoppings: b.Hoppings(),
	}
}

// Finalize turns a region builder into an immutable numerical system.
func (b *Builder) Finalize() (*system.System, error) {
	if b.sym != nil {
		return nil, ErrHasSymmetry
	}

	leads := make([]*system.Lead, 0, len(b.leads))
	for i, a := range b.leads {
		l, err := system.NewLead(a.lead.leadCell())
		if err != nil {
			return nil, fmt.Errorf("lead %d: %w", i, err)
		}
		l.Boundary = a.boundary
		leads = append(leads, l)
	}

	onsites := make(map[lattice.Site]term.OnsiteFunc, len(b.sites))
	for s, v := range b.sites {
		onsites[s] = v
	}

	return system.New(&system.Region{
		Name:     b.Name,
		Lattice:  b.lat,
		Onsites:  onsites,
		Hoppings: b.Hoppings(),
		Leads:    leads,
	})
}
