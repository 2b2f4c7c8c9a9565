package analysis

import (
	"fmt"

	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
)

// Point evaluates a single energy and parameter point.
type Point struct {
	BaseAnalysis
	Energy float64
	Result *ScatteringResult
}

func NewPoint(energy float64, params term.Params) *Point {
	return &Point{
		BaseAnalysis: *NewBaseAnalysis(params),
		Energy:       energy,
	}
}

func (p *Point) Setup(sys *system.System) error {
	return p.BaseAnalysis.Setup(sys)
}

func (p *Point) Execute() error {
	res, err := p.solve(p.Energy, p.Params)
	if err != nil {
		return err
	}
	p.Result = res
	p.StoreResult("ENERGY", p.Energy, scatteringSolution(res))

	if res.NumLeads() > 2 {
		g := res.ConductanceMatrix()
		for i := 0; i < g.Size(); i++ {
			for j := 0; j < g.Size(); j++ {
				p.append(fmt.Sprintf("G(%d,%d)", i, j), g.At(i, j))
			}
		}
	}
	return nil
}
