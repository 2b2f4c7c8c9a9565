package analysis

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/edp1096/toy-transport/internal/consts"
	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
	"github.com/edp1096/toy-transport/pkg/util"
)

// ThermalSweep computes the finite-temperature conductance
// G(mu) = int T(E) (-df/dE) dE between two leads on a grid of chemical
// potentials mu. Temperature is in Kelvin, energies in eV.
type ThermalSweep struct {
	BaseAnalysis
	Temp     float64
	To, From int
	Window   float64 // half width of the energy window in units of kT
	Points   int     // quadrature points per mu, odd for Simpson
	Method   util.QuadratureMethod
	startMu  float64
	stopMu   float64
	numMu    int
	mus      []float64
}

func NewThermalSweep(start, stop float64, points int, temp float64, to, from int, params term.Params) *ThermalSweep {
	return &ThermalSweep{
		BaseAnalysis: *NewBaseAnalysis(params),
		Temp:         temp,
		To:           to,
		From:         from,
		Window:       8,
		Points:       41,
		Method:       util.SimpsonMethod,
		startMu:      start,
		stopMu:       stop,
		numMu:        points,
	}
}

func (ts *ThermalSweep) Setup(sys *system.System) error {
	if ts.numMu < 1 {
		return fmt.Errorf("thermal sweep needs at least one point, got %d", ts.numMu)
	}
	if ts.Temp < 0 {
		return fmt.Errorf("negative temperature %g K", ts.Temp)
	}
	if ts.Points < 2 {
		return fmt.Errorf("thermal window needs at least 2 quadrature points, got %d", ts.Points)
	}
	if ts.Method == util.SimpsonMethod && (ts.Points < 3 || ts.Points%2 == 0) {
		return fmt.Errorf("simpson quadrature needs an odd number of points >= 3, got %d", ts.Points)
	}
	if sys != nil {
		n := sys.NumLeads()
		if ts.To < 0 || ts.To >= n || ts.From < 0 || ts.From >= n {
			return fmt.Errorf("leads %d<-%d out of range for %d leads", ts.To, ts.From, n)
		}
	}
	ts.mus = util.Linspace(ts.startMu, ts.stopMu, ts.numMu)
	return ts.BaseAnalysis.Setup(sys)
}

// fermiWindow is -df/dE at energy e for chemical potential mu.
func fermiWindow(e, mu, kT float64) float64 {
	c := math.Cosh((e - mu) / (2 * kT))
	return 1 / (4 * kT * c * c)
}

func (ts *ThermalSweep) Execute() error {
	if ts.System == nil {
		return ErrNoSystem
	}

	kT := consts.ThermalEnergy(ts.Temp)
	slog.Debug("thermal sweep", "temp", ts.Temp, "kT", kT, "points", ts.Points)

	for _, mu := range ts.mus {
		if kT == 0 {
			res, err := ts.solve(mu, ts.Params)
			if err != nil {
				return err
			}
			t := res.Transmission(ts.To, ts.From)
			ts.StoreResult("MU", mu, map[string]float64{"G_T": t, "T0": t})
			continue
		}

		energies := util.Linspace(mu-ts.Window*kT, mu+ts.Window*kT, ts.Points)
		weights, err := util.GetQuadratureWeights(ts.Method, len(energies), energies[1]-energies[0])
		if err != nil {
			return err
		}

		var sum, norm, t0 float64
		for k, e := range energies {
			res, err := ts.solve(e, ts.Params)
			if err != nil {
				return err
			}
			t := res.Transmission(ts.To, ts.From)
			f := weights[k] * fermiWindow(e, mu, kT)
			sum += f * t
			norm += f
			if k == len(energies)/2 {
				t0 = t
			}
		}

		ts.StoreResult("MU", mu, map[string]float64{"G_T": sum / norm, "T0": t0})
	}
	return nil
}
