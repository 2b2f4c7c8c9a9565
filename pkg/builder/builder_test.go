package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-transport/pkg/lattice"
	"github.com/edp1096/toy-transport/pkg/matrix"
	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
)

func symmetry(t *testing.T, x, y int) *lattice.Symmetry {
	t.Helper()
	sym, err := lattice.NewTranslational(lattice.Vec{X: x, Y: y})
	require.NoError(t, err)
	return sym
}

func wireLead(t *testing.T, width int) *Builder {
	t.Helper()
	lead := New(lattice.Square(1), symmetry(t, -1, 0))
	_, err := lead.Fill(lattice.Band(0, width-1), lattice.Site{}, term.Scalar(4))
	require.NoError(t, err)
	_, err = lead.AddNeighborHoppings(term.ScalarHopping(-1))
	require.NoError(t, err)
	return lead
}

func TestAddSiteAndHopping(t *testing.T) {
	b := New(lattice.Square(1), nil)
	a, c := lattice.Site{X: 0, Y: 0}, lattice.Site{X: 1, Y: 0}

	require.NoError(t, b.AddSite(a, term.Scalar(1)))
	assert.ErrorIs(t, b.AddHopping(c, a, term.ScalarHopping(-1)), ErrNoSite)
	require.NoError(t, b.AddSite(c, term.Scalar(2)))
	require.NoError(t, b.AddHopping(c, a, term.ScalarHopping(-1)))

	assert.True(t, b.HasHopping(c, a))
	assert.True(t, b.HasHopping(a, c))
	assert.Equal(t, 1, b.NumHoppings())

	// (a, c) replaces (c, a)
	require.NoError(t, b.AddHopping(a, c, term.ScalarHopping(-2)))
	assert.Equal(t, 1, b.NumHoppings())
	v, ok := b.Hopping(c, a)
	require.True(t, ok)
	assert.Equal(t, complex(-2, 0), v(c, a, nil).At(0, 0))

	assert.ErrorIs(t, b.AddHopping(a, a, term.ScalarHopping(-1)), ErrSelfHopping)
	assert.ErrorIs(t, b.AddSite(a, nil), ErrNilValue)

	assert.True(t, b.RemoveSite(c))
	assert.False(t, b.RemoveSite(c))
	assert.Equal(t, 0, b.NumHoppings())
}

func TestHermitianConjugateLookup(t *testing.T) {
	b := New(lattice.Chain(2), nil)
	a, c := lattice.Site{X: 0}, lattice.Site{X: 1}
	require.NoError(t, b.AddSite(a, term.ConstOnsite(matrix.Identity(2))))
	require.NoError(t, b.AddSite(c, term.ConstOnsite(matrix.Identity(2))))

	raise := matrix.FromRows([][]complex128{{0, 1i}, {0, 0}})
	require.NoError(t, b.AddHopping(c, a, term.ConstHopping(raise)))

	v, ok := b.Hopping(a, c)
	require.True(t, ok)
	m := v(a, c, nil)
	assert.Equal(t, complex(0, 0), m.At(0, 1))
	assert.Equal(t, complex(0, -1), m.At(1, 0))
}

func TestAddSiteOffLattice(t *testing.T) {
	b := New(lattice.Chain(1), nil)
	assert.ErrorIs(t, b.AddSite(lattice.Site{X: 0, Y: 1}, term.Scalar(0)), ErrOffLattice)
}

func TestSymmetricBuilderFoldsSites(t *testing.T) {
	lead := New(lattice.Chain(1), symmetry(t, 1, 0))
	require.NoError(t, lead.AddSite(lattice.Site{X: 5}, term.Scalar(0)))
	assert.True(t, lead.HasSite(lattice.Site{X: 0}))
	assert.True(t, lead.HasSite(lattice.Site{X: -3}))
	assert.Equal(t, []lattice.Site{{X: 0}}, lead.Sites())

	n, err := lead.AddNeighborHoppings(term.ScalarHopping(-1))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, lead.HasHopping(lattice.Site{X: 7}, lattice.Site{X: 6}))
	assert.True(t, lead.HasHopping(lattice.Site{X: -2}, lattice.Site{X: -1}))
}

func TestFillAndNeighborHoppings(t *testing.T) {
	b := New(lattice.Square(1), nil)
	n, err := b.Fill(lattice.Rectangle(0, 0, 3, 2), lattice.Site{}, term.Scalar(4))
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	h, err := b.AddNeighborHoppings(term.ScalarHopping(-1))
	require.NoError(t, err)
	// 3 rows of 3 horizontal bonds plus 4 columns of 2 vertical bonds
	assert.Equal(t, 17, h)

	h, err = b.AddNeighborHoppings(term.ScalarHopping(-1))
	require.NoError(t, err)
	assert.Equal(t, 0, h)

	lead := wireLead(t, 3)
	assert.Equal(t, 3, lead.NumSites())
	assert.Equal(t, 5, lead.NumHoppings())
}

func TestReversed(t *testing.T) {
	lead := wireLead(t, 2)
	rev, err := lead.Reversed()
	require.NoError(t, err)

	assert.Equal(t, lattice.Vec{X: 1}, rev.Symmetry().Period)
	assert.Equal(t, lead.Sites(), rev.Sites())
	assert.Equal(t, lead.NumHoppings(), rev.NumHoppings())
	assert.True(t, rev.HasHopping(lattice.Site{X: 1, Y: 0}, lattice.Site{X: 0, Y: 0}))

	_, err = New(lattice.Square(1), nil).Reversed()
	assert.ErrorIs(t, err, ErrNotLead)
}

func TestAttachLeadIndices(t *testing.T) {
	b := New(lattice.Square(1), nil)
	_, err := b.Fill(lattice.Rectangle(0, 0, 4, 2), lattice.Site{}, term.Scalar(4))
	require.NoError(t, err)
	_, err = b.AddNeighborHoppings(term.ScalarHopping(-1))
	require.NoError(t, err)

	lead := wireLead(t, 3)
	i, err := b.AttachLead(lead)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	rev, err := lead.Reversed()
	require.NoError(t, err)
	i, err = b.AttachLead(rev)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, 2, b.NumLeads())
	assert.Equal(t, 15, b.NumSites())

	sys, err := b.Finalize()
	require.NoError(t, err)
	defer sys.Destroy()

	assert.Equal(t, 15, sys.NumOrbitals())
	assert.Equal(t, []lattice.Site{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}, sys.Leads()[0].InterfaceSites())
	assert.Equal(t, []lattice.Site{{X: 4, Y: 0}, {X: 4, Y: 1}, {X: 4, Y: 2}}, sys.Leads()[1].InterfaceSites())
}

func TestAttachLeadCopiesCell(t *testing.T) {
	// region touches the lead cross-section only partly
	b := New(lattice.Square(1), nil)
	for x := 0; x < 3; x++ {
		require.NoError(t, b.AddSite(lattice.Site{X: x, Y: 0}, term.Scalar(4)))
	}
	require.NoError(t, b.AddSite(lattice.Site{X: 2, Y: 1}, term.Scalar(4)))
	_, err := b.AddNeighborHoppings(term.ScalarHopping(-1))
	require.NoError(t, err)

	lead := New(lattice.Square(1), symmetry(t, 1, 0))
	_, err = lead.Fill(lattice.Band(0, 2), lattice.Site{}, term.Scalar(4))
	require.NoError(t, err)
	_, err = lead.AddNeighborHoppings(term.ScalarHopping(-1))
	require.NoError(t, err)

	_, err = b.AttachLead(lead)
	require.NoError(t, err)
	assert.Equal(t, 7, b.NumSites())
	assert.True(t, b.HasSite(lattice.Site{X: 3, Y: 2}))
	assert.True(t, b.HasHopping(lattice.Site{X: 3, Y: 0}, lattice.Site{X: 2, Y: 0}))
	assert.True(t, b.HasHopping(lattice.Site{X: 3, Y: 1}, lattice.Site{X: 2, Y: 1}))
	assert.True(t, b.HasHopping(lattice.Site{X: 3, Y: 2}, lattice.Site{X: 3, Y: 1}))

	sys, err := b.Finalize()
	require.NoError(t, err)
	defer sys.Destroy()
	assert.Equal(t, 3, sys.Leads()[0].Boundary)
}

func TestAttachLeadErrors(t *testing.T) {
	b := New(lattice.Square(1), nil)
	lead := wireLead(t, 2)

	_, err := b.AttachLead(lead)
	assert.ErrorIs(t, err, system.ErrEmpty)

	require.NoError(t, b.AddSite(lattice.Site{}, term.Scalar(4)))
	_, err = b.AttachLead(New(lattice.Square(1), nil))
	assert.ErrorIs(t, err, ErrNotLead)

	_, err = lead.AttachLead(lead)
	assert.ErrorIs(t, err, ErrHasSymmetry)

	chain := New(lattice.Chain(1), symmetry(t, 1, 0))
	_, err = b.AttachLead(chain)
	assert.ErrorIs(t, err, ErrLatticeKinds)

	_, err = lead.Finalize()
	assert.ErrorIs(t, err, ErrHasSymmetry)
}

func TestFinalizeDisconnected(t *testing.T) {
	b := New(lattice.Chain(1), nil)
	require.NoError(t, b.AddSite(lattice.Site{X: 0}, term.Scalar(0)))
	require.NoError(t, b.AddSite(lattice.Site{X: 2}, term.Scalar(0)))

	_, err := b.Finalize()
	assert.ErrorIs(t, err, system.ErrDisconnected)
}

func TestAttachLeadFailureLeavesRegionUnchanged(t *testing.T) {
	// the only region site lies beside the lead cross-section
	b := New(lattice.Square(1), nil)
	require.NoError(t, b.AddSite(lattice.Site{X: 0, Y: 5}, term.Scalar(4)))
	before := b.Sites()

	_, err := b.AttachLead(wireLead(t, 3))
	assert.ErrorIs(t, err, system.ErrLeadMismatch)
	assert.Equal(t, before, b.Sites())
	assert.Equal(t, 0, b.NumHoppings())
	assert.Equal(t, 0, b.NumLeads())

	sys, err := b.Finalize()
	require.NoError(t, err)
	defer sys.Destroy()
	assert.Equal(t, 1, sys.NumSites())
}
