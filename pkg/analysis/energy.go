package analysis

import (
	"fmt"

	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
	"github.com/edp1096/toy-transport/pkg/util"
)

// EnergySweep evaluates transmissions on a linear grid of Fermi energies.
type EnergySweep struct {
	BaseAnalysis
	startEnergy float64
	stopEnergy  float64
	numPoints   int
	energies    []float64
}

func NewEnergySweep(start, stop float64, points int, params term.Params) *EnergySweep {
	return &EnergySweep{
		BaseAnalysis: *NewBaseAnalysis(params),
		startEnergy:  start,
		stopEnergy:   stop,
		numPoints:    points,
	}
}

func (es *EnergySweep) Setup(sys *system.System) error {
	if es.numPoints < 1 {
		return fmt.Errorf("energy sweep needs at least one point, got %d", es.numPoints)
	}
	es.energies = util.Linspace(es.startEnergy, es.stopEnergy, es.numPoints)
	return es.BaseAnalysis.Setup(sys)
}

func (es *EnergySweep) Energies() []float64 {
	return es.energies
}

func (es *EnergySweep) Execute() error {
	if es.System == nil {
		return ErrNoSystem
	}

	for _, energy := range es.energies {
		res, err := es.solve(energy, es.Params)
		if err != nil {
			return err
		}
		es.StoreResult("ENERGY", energy, scatteringSolution(res))
	}
	return nil
}
