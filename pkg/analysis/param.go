package analysis

import (
	"fmt"

	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
	"github.com/edp1096/toy-transport/pkg/util"
)

// ParamSweep varies one or two named parameters at fixed energy. Two
// parameters are swept nested, the second one fastest.
type ParamSweep struct {
	BaseAnalysis
	Energy    float64
	names     []string
	startVals []float64
	stopVals  []float64
	numPoints []int
	sweepVals [][]float64
}

func NewParamSweep(names []string, starts, stops []float64, points []int, energy float64, params term.Params) *ParamSweep {
	return &ParamSweep{
		BaseAnalysis: *NewBaseAnalysis(params),
		Energy:       energy,
		names:        names,
		startVals:    starts,
		stopVals:     stops,
		numPoints:    points,
	}
}

func (ps *ParamSweep) Setup(sys *system.System) error {
	n := len(ps.names)
	if n == 0 || n > 2 {
		return fmt.Errorf("unsupported number of sweep parameters: %d", n)
	}
	if len(ps.startVals) != n || len(ps.stopVals) != n || len(ps.numPoints) != n {
		return fmt.Errorf("inconsistent sweep definition for %v", ps.names)
	}

	ps.sweepVals = make([][]float64, n)
	for i := range ps.names {
		if ps.numPoints[i] < 1 {
			return fmt.Errorf("sweep of %s needs at least one point", ps.names[i])
		}
		ps.sweepVals[i] = util.Linspace(ps.startVals[i], ps.stopVals[i], ps.numPoints[i])
	}

	return ps.BaseAnalysis.Setup(sys)
}

func (ps *ParamSweep) Execute() error {
	if ps.System == nil {
		return ErrNoSystem
	}

	if len(ps.names) == 1 {
		return ps.singleSweep()
	}
	return ps.nestedSweep()
}

func (ps *ParamSweep) singleSweep() error {
	name := ps.names[0]
	for _, val := range ps.sweepVals[0] {
		res, err := ps.solve(ps.Energy, ps.Params.With(name, val))
		if err != nil {
			return err
		}
		ps.StoreResult(name, val, scatteringSolution(res))
	}
	return nil
}

func (ps *ParamSweep) nestedSweep() error {
	name1, name2 := ps.names[0], ps.names[1]
	for _, val1 := range ps.sweepVals[0] {
		params := ps.Params.With(name1, val1)
		for _, val2 := range ps.sweepVals[1] {
			res, err := ps.solve(ps.Energy, params.With(name2, val2))
			if err != nil {
				return err
			}
			ps.append(name1, val1)
			ps.StoreResult(name2, val2, scatteringSolution(res))
		}
	}
	return nil
}
