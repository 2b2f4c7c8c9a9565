// Package scenario reads YAML descriptions of a transport calculation: the
// model to build, its parameters and the analysis to run.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edp1096/toy-transport/pkg/analysis"
	"github.com/edp1096/toy-transport/pkg/models"
	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
)

var ErrInvalid = errors.New("scenario: invalid")

// Model kinds.
const (
	ModelWire      = "wire"
	ModelChain     = "chain"
	ModelSpinValve = "spinvalve"
	ModelSkyrmion  = "skyrmion"
)

// Analysis kinds.
const (
	AnalysisPoint      = "point"
	AnalysisEnergy     = "energy"
	AnalysisParam      = "param"
	AnalysisResistance = "resistance"
	AnalysisThermal    = "thermal"
)

type Scenario struct {
	Title    string             `yaml:"title"`
	Model    Model              `yaml:"model"`
	Params   map[string]float64 `yaml:"params"`
	Analysis Analysis           `yaml:"analysis"`
}

type Model struct {
	Kind      string  `yaml:"kind"`
	Length    int     `yaml:"length"`
	Width     int     `yaml:"width"`
	Radius    int     `yaml:"radius"`
	LeadWidth int     `yaml:"lead_width"`
	Hopping   float64 `yaml:"hopping"`
}

type Sweep struct {
	Name   string  `yaml:"name"`
	Start  float64 `yaml:"start"`
	Stop   float64 `yaml:"stop"`
	Points int     `yaml:"points"`
}

type Terminals struct {
	Source    int `yaml:"source"`
	Drain     int `yaml:"drain"`
	HallPlus  int `yaml:"hall_plus"`
	HallMinus int `yaml:"hall_minus"`
	LongPlus  int `yaml:"long_plus"`
	LongMinus int `yaml:"long_minus"`
}

type Analysis struct {
	Kind        string     `yaml:"kind"`
	Energy      float64    `yaml:"energy"`
	Sweeps      []Sweep    `yaml:"sweeps"`
	Temperature float64    `yaml:"temperature"` // K
	Leads       []int      `yaml:"leads"`       // to, from
	Terminals   *Terminals `yaml:"terminals"`
}

// Parse decodes a scenario and fills defaults. Unknown keys are errors.
func Parse(data []byte) (*Scenario, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty scenario", ErrInvalid)
	}

	s := &Scenario{Model: Model{Hopping: 1}, Analysis: Analysis{Leads: []int{1, 0}}}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	if s.Params == nil {
		s.Params = map[string]float64{}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Title == "" {
		s.Title = path
	}
	return s, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks the geometry and analysis definitions.
func (s *Scenario) Validate() error {
	m := s.Model
	switch m.Kind {
	case ModelWire:
		if m.Length < 1 || m.Width < 1 {
			return invalid("wire needs length and width >= 1")
		}
	case ModelChain:
		if m.Length < 1 {
			return invalid("chain needs length >= 1")
		}
	case ModelSpinValve:
		if m.Length < 2 {
			return invalid("spin valve needs length >= 2")
		}
	case ModelSkyrmion:
		if m.Radius < 1 || m.LeadWidth < 1 || m.LeadWidth > 2*m.Radius+1 {
			return invalid("skyrmion cross needs radius >= 1 and 1 <= lead_width <= 2*radius+1")
		}
	default:
		return invalid("unknown model kind %q (valid: %s)", m.Kind,
			strings.Join([]string{ModelWire, ModelChain, ModelSpinValve, ModelSkyrmion}, ", "))
	}
	if m.Hopping == 0 {
		return invalid("hopping must be nonzero")
	}

	a := s.Analysis
	for _, sw := range a.Sweeps {
		if sw.Name == "" || sw.Points < 1 {
			return invalid("sweep needs a name and points >= 1")
		}
	}

	switch a.Kind {
	case AnalysisPoint:
	case AnalysisEnergy, AnalysisResistance, AnalysisThermal:
		if len(a.Sweeps) != 1 {
			return invalid("%s analysis needs exactly one sweep", a.Kind)
		}
	case AnalysisParam:
		if len(a.Sweeps) < 1 || len(a.Sweeps) > 2 {
			return invalid("param analysis needs one or two sweeps")
		}
	default:
		return invalid("unknown analysis kind %q", a.Kind)
	}

	if a.Kind == AnalysisResistance && s.Model.Kind != ModelSkyrmion && a.Terminals == nil {
		return invalid("resistance analysis on a %s needs terminals", s.Model.Kind)
	}
	if a.Kind == AnalysisThermal {
		if a.Temperature < 0 {
			return invalid("negative temperature %g", a.Temperature)
		}
		if len(a.Leads) != 2 {
			return invalid("thermal analysis needs leads: [to, from]")
		}
	}
	return nil
}

func (s *Scenario) TermParams() term.Params {
	return term.Params(s.Params)
}

// ParamNames lists the parameter names in sorted order.
func (s *Scenario) ParamNames() []string {
	names := make([]string, 0, len(s.Params))
	for k := range s.Params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// BuildSystem builds and finalizes the model.
func (s *Scenario) BuildSystem() (*system.System, error) {
	m := s.Model
	switch m.Kind {
	case ModelWire:
		return models.Wire(m.Length, m.Width, m.Hopping)
	case ModelChain:
		return models.Chain(m.Length, m.Hopping)
	case ModelSpinValve:
		return models.SpinValve(m.Length, m.Hopping)
	case ModelSkyrmion:
		return models.SkyrmionCross(m.Radius, m.LeadWidth, m.Hopping)
	}
	return nil, invalid("unknown model kind %q", m.Kind)
}

// BuildAnalysis creates the analysis without setting it up.
func (s *Scenario) BuildAnalysis() (analysis.Analysis, error) {
	a := s.Analysis
	params := s.TermParams()

	switch a.Kind {
	case AnalysisPoint:
		return analysis.NewPoint(a.Energy, params), nil

	case AnalysisEnergy:
		sw := a.Sweeps[0]
		return analysis.NewEnergySweep(sw.Start, sw.Stop, sw.Points, params), nil

	case AnalysisParam:
		names := make([]string, len(a.Sweeps))
		starts := make([]float64, len(a.Sweeps))
		stops := make([]float64, len(a.Sweeps))
		points := make([]int, len(a.Sweeps))
		for i, sw := range a.Sweeps {
			names[i], starts[i], stops[i], points[i] = sw.Name, sw.Start, sw.Stop, sw.Points
		}
		return analysis.NewParamSweep(names, starts, stops, points, a.Energy, params), nil

	case AnalysisResistance:
		sw := a.Sweeps[0]
		terms := analysis.CrossTerminals()
		if a.Terminals != nil {
			t := a.Terminals
			terms = analysis.Terminals{
				Source: t.Source, Drain: t.Drain,
				HallPlus: t.HallPlus, HallMinus: t.HallMinus,
				LongPlus: t.LongPlus, LongMinus: t.LongMinus,
			}
		}
		return analysis.NewResistanceSweep(sw.Name, sw.Start, sw.Stop, sw.Points, a.Energy, terms, params), nil

	case AnalysisThermal:
		sw := a.Sweeps[0]
		return analysis.NewThermalSweep(sw.Start, sw.Stop, sw.Points, a.Temperature, a.Leads[0], a.Leads[1], params), nil
	}
	return nil, invalid("unknown analysis kind %q", a.Kind)
}

// SweepKey is the result column holding the sweep variable.
func (s *Scenario) SweepKey() string {
	a := s.Analysis
	switch a.Kind {
	case AnalysisEnergy, AnalysisPoint:
		return "ENERGY"
	case AnalysisThermal:
		return "MU"
	}
	return a.Sweeps[0].Name
}
