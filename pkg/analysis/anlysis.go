package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/edp1096/toy-transport/internal/logging"
	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
)

const (
	POINT int = iota
	ENERGY
	PARAM
	RESISTANCE
	THERMAL
)

var (
	ErrNoSystem = errors.New("analysis: system not set")
	ErrNoLeads  = errors.New("analysis: system has no leads")
)

type Analysis interface {
	Setup(sys *system.System) error
	Execute() error
	GetResults() map[string][]float64
	Columns() []string
}

type BaseAnalysis struct {
	System  *system.System
	Params  term.Params
	results map[string][]float64 // key: quantity name, value: result by sweep point
	order   []string
}

func NewBaseAnalysis(params term.Params) *BaseAnalysis {
	if params == nil {
		params = term.Params{}
	}
	return &BaseAnalysis{
		Params:  params,
		results: make(map[string][]float64),
	}
}

func (a *BaseAnalysis) Setup(sys *system.System) error {
	if sys == nil {
		return ErrNoSystem
	}
	if sys.NumLeads() == 0 {
		return ErrNoLeads
	}
	a.System = sys
	return nil
}

func (a *BaseAnalysis) append(name string, value float64) {
	if _, exists := a.results[name]; !exists {
		a.results[name] = make([]float64, 0)
		a.order = append(a.order, name)
	}
	a.results[name] = append(a.results[name], value)
}

// StoreResult appends one sweep point: the sweep variable under sweepKey
// and every named quantity of the solution.
func (a *BaseAnalysis) StoreResult(sweepKey string, x float64, solution map[string]float64) {
	a.append(sweepKey, x)

	names := make([]string, 0, len(solution))
	for name := range solution {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a.append(name, solution[name])
	}
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}

// Columns returns result names in the order they were first stored.
func (a *BaseAnalysis) Columns() []string {
	return a.order
}

// solve evaluates one scattering point and logs it at trace level.
func (a *BaseAnalysis) solve(energy float64, params term.Params) (*ScatteringResult, error) {
	if a.System == nil {
		return nil, ErrNoSystem
	}

	res, err := SMatrix(a.System, energy, params)
	if err != nil {
		return nil, fmt.Errorf("at E=%g %s: %w", energy, params, err)
	}
	slog.Log(context.Background(), logging.LevelTrace, "scattering point", "energy", energy, "params", params.String(),
		"residual", res.MaxResidual())
	return res, nil
}

// TransmissionKey names T(to, from) in result tables.
func TransmissionKey(to, from int) string {
	return fmt.Sprintf("T(%d,%d)", to, from)
}

func ChannelKey(lead int) string {
	return fmt.Sprintf("N(%d)", lead)
}

// scatteringSolution flattens a result into named quantities.
func scatteringSolution(res *ScatteringResult) map[string]float64 {
	n := res.NumLeads()
	solution := make(map[string]float64, n*n+n)
	for j := 0; j < n; j++ {
		solution[ChannelKey(j)] = res.Channels(j)
		for i := 0; i < n; i++ {
			solution[TransmissionKey(i, j)] = res.Transmission(i, j)
		}
	}
	return solution
}
