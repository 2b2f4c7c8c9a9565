package analysis

import (
	"fmt"
	"math"

	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
	"github.com/edp1096/toy-transport/pkg/transport"
	"github.com/edp1096/toy-transport/pkg/util"
)

// EnergyParam as a sweep name varies the Fermi energy instead of a
// Hamiltonian parameter.
const EnergyParam = "energy"

// Terminals assigns lead indices to the roles of a four-terminal
// measurement.
type Terminals struct {
	Source, Drain       int
	HallPlus, HallMinus int
	LongPlus, LongMinus int
}

// CrossTerminals is the layout of a cross with leads 0 left, 1 top,
// 2 right and 3 bottom.
func CrossTerminals() Terminals {
	return Terminals{Source: 0, Drain: 2, HallPlus: 1, HallMinus: 3, LongPlus: 0, LongMinus: 2}
}

func (t Terminals) check(n int) error {
	for _, i := range []int{t.Source, t.Drain, t.HallPlus, t.HallMinus, t.LongPlus, t.LongMinus} {
		if i < 0 || i >= n {
			return fmt.Errorf("%w: %d of %d", transport.ErrTerminal, i, n)
		}
	}
	return nil
}

// ResistanceSweep computes Hall and longitudinal resistances in units of
// h/e^2 while sweeping a parameter or the energy.
type ResistanceSweep struct {
	BaseAnalysis
	Energy    float64
	Name      string
	Terminals Terminals
	start     float64
	stop      float64
	numPoints int
	values    []float64
}

func NewResistanceSweep(name string, start, stop float64, points int, energy float64, terms Terminals, params term.Params) *ResistanceSweep {
	return &ResistanceSweep{
		BaseAnalysis: *NewBaseAnalysis(params),
		Energy:       energy,
		Name:         name,
		Terminals:    terms,
		start:        start,
		stop:         stop,
		numPoints:    points,
	}
}

func (rs *ResistanceSweep) Setup(sys *system.System) error {
	if rs.numPoints < 1 {
		return fmt.Errorf("resistance sweep needs at least one point, got %d", rs.numPoints)
	}
	if sys != nil {
		if err := rs.Terminals.check(sys.NumLeads()); err != nil {
			return err
		}
	}
	rs.values = util.Linspace(rs.start, rs.stop, rs.numPoints)
	return rs.BaseAnalysis.Setup(sys)
}

func (rs *ResistanceSweep) point(val float64) (float64, term.Params) {
	if rs.Name == EnergyParam {
		return val, rs.Params
	}
	return rs.Energy, rs.Params.With(rs.Name, val)
}

func (rs *ResistanceSweep) Execute() error {
	if rs.System == nil {
		return ErrNoSystem
	}

	t := rs.Terminals
	for _, val := range rs.values {
		energy, params := rs.point(val)
		res, err := rs.solve(energy, params)
		if err != nil {
			return err
		}

		g := res.ConductanceMatrix()
		rh, err := g.Resistance(t.Source, t.Drain, t.HallPlus, t.HallMinus)
		if err != nil {
			return fmt.Errorf("hall resistance at %s=%g: %w", rs.Name, val, err)
		}
		rxx, err := g.Resistance(t.Source, t.Drain, t.LongPlus, t.LongMinus)
		if err != nil {
			return fmt.Errorf("longitudinal resistance at %s=%g: %w", rs.Name, val, err)
		}

		solution := scatteringSolution(res)
		solution["R_H"] = rh
		solution["R_XX"] = rxx
		solution["ASYM"] = asymmetry(g)
		rs.StoreResult(rs.Name, val, solution)
	}
	return nil
}

// asymmetry is max |G_ij - G_ji|, zero for reciprocal systems.
func asymmetry(g *transport.ConductanceMatrix) float64 {
	worst := 0.0
	for i := 0; i < g.Size(); i++ {
		for j := i + 1; j < g.Size(); j++ {
			worst = math.Max(worst, math.Abs(g.At(i, j)-g.At(j, i)))
		}
	}
	return worst
}
