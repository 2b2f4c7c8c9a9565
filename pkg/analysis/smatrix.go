package analysis

import (
	"fmt"
	"math"

	"github.com/edp1096/toy-transport/pkg/matrix"
	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
	"github.com/edp1096/toy-transport/pkg/transport"
)

// ScatteringResult holds the transmission probabilities between all leads
// of a system at one energy and parameter point.
type ScatteringResult struct {
	Energy   float64
	Params   term.Params
	channels []float64
	trans    [][]float64 // trans[to][from]
}

// SMatrix evaluates transport through sys with the non-equilibrium Green's
// function G = (E - H - Sigma)^-1, restricted to the lead interfaces.
// The system matrix is re-stamped, so a System must not be solved from
// two goroutines at once.
func SMatrix(sys *system.System, energy float64, params term.Params) (*ScatteringResult, error) {
	nl := sys.NumLeads()
	if nl == 0 {
		return nil, ErrNoLeads
	}

	res := &ScatteringResult{
		Energy:   energy,
		Params:   params,
		channels: make([]float64, nl),
		trans:    make([][]float64, nl),
	}

	sigmas := make([]*matrix.Dense, nl)
	gammas := make([]*matrix.Dense, nl)
	for i, lead := range sys.Leads() {
		sigma, err := lead.SelfEnergy(energy, params)
		if err != nil {
			return nil, err
		}
		n, err := lead.OpenChannels(energy, params)
		if err != nil {
			return nil, err
		}
		sigmas[i] = sigma
		gammas[i] = system.Broadening(sigma)
		res.channels[i] = n
	}

	mat := sys.GetMatrix()
	mat.Clear()
	err := sys.Stamp(&term.Status{
		Mode:         term.ScatteringMode,
		Energy:       energy,
		Params:       params,
		SelfEnergies: sigmas,
	})
	if err != nil {
		return nil, err
	}
	err = mat.Factor()
	if err != nil {
		return nil, err
	}

	// cols[j][c] is the column of G for interface orbital c of lead j.
	cols := make([][][]complex128, nl)
	rhs := make([]complex128, sys.NumOrbitals())
	for j := 0; j < nl; j++ {
		for _, idx := range sys.LeadOrbitals(j) {
			rhs[idx-1] = 1
			x, err := mat.SolveVector(rhs)
			rhs[idx-1] = 0
			if err != nil {
				return nil, fmt.Errorf("green's function column %d: %w", idx, err)
			}
			cols[j] = append(cols[j], x)
		}
	}

	block := func(i, j int) *matrix.Dense {
		rows := sys.LeadOrbitals(i)
		g := matrix.NewDense(len(rows), len(cols[j]))
		for c, x := range cols[j] {
			for r, idx := range rows {
				g.Set(r, c, x[idx-1])
			}
		}
		return g
	}

	for i := 0; i < nl; i++ {
		res.trans[i] = make([]float64, nl)
	}
	for j := 0; j < nl; j++ {
		for i := 0; i < nl; i++ {
			gij := block(i, j)
			t := real(gammas[i].Mul(gij).Mul(gammas[j]).Mul(gij.Dagger()).Trace())
			if i == j {
				anti := gij.Sub(gij.Dagger())
				t += res.channels[j] - real(1i*gammas[j].Mul(anti).Trace())
			}
			res.trans[i][j] = t
		}
	}

	return res, nil
}

func (r *ScatteringResult) NumLeads() int {
	return len(r.channels)
}

// Transmission returns the probability of going from lead `from` into lead
// `to`; to == from gives the reflection.
func (r *ScatteringResult) Transmission(to, from int) float64 {
	return r.trans[to][from]
}

// Channels returns the open-channel count of a lead before rounding.
func (r *ScatteringResult) Channels(lead int) float64 {
	return r.channels[lead]
}

func (r *ScatteringResult) NumChannels(lead int) int {
	return int(math.Round(r.channels[lead]))
}

// Unitarity returns sum_i T(i, lead) - N_lead, which vanishes when current
// is conserved.
func (r *ScatteringResult) Unitarity(lead int) float64 {
	sum := 0.0
	for i := range r.trans {
		sum += r.trans[i][lead]
	}
	return sum - r.channels[lead]
}

func (r *ScatteringResult) MaxResidual() float64 {
	worst := 0.0
	for j := range r.channels {
		worst = math.Max(worst, math.Abs(r.Unitarity(j)))
	}
	return worst
}

func (r *ScatteringResult) ConductanceMatrix() *transport.ConductanceMatrix {
	return transport.NewConductanceMatrix(r.NumLeads(), r.Transmission)
}
