// Package models builds the finalized systems used by the scenarios: a
// quantum wire, a 1D chain, a spin valve and a four-terminal cross with a
// magnetic skyrmion.
package models

import (
	"errors"
	"fmt"

	"github.com/edp1096/toy-transport/pkg/builder"
	"github.com/edp1096/toy-transport/pkg/lattice"
	"github.com/edp1096/toy-transport/pkg/matrix"
	"github.com/edp1096/toy-transport/pkg/system"
	"github.com/edp1096/toy-transport/pkg/term"
)

// Parameter names read by the value functions.
const (
	ParamBarrier = "V0"
	ParamJ       = "J"
	ParamTheta   = "theta"
	ParamRadius  = "skyrmion_radius"
)

var ErrGeometry = errors.New("models: invalid geometry")

func checkSize(name string, v, min int) error {
	if v < min {
		return fmt.Errorf("%w: %s=%d, need at least %d", ErrGeometry, name, v, min)
	}
	return nil
}

// identityHopping is -t times the identity on norbs orbitals.
func identityHopping(norbs int, t float64) term.HoppingFunc {
	return term.ConstHopping(matrix.Identity(norbs).Scale(complex(-t, 0)))
}

// inBarrier reports whether column x lies in the middle third of length.
func inBarrier(x, length int) bool {
	return 3*x >= length && 3*x < 2*length
}

// attachPair attaches lead and its reverse, returning their indices.
func attachPair(b, lead *builder.Builder) (int, int, error) {
	first, err := b.AttachLead(lead)
	if err != nil {
		return 0, 0, err
	}
	rev, err := lead.Reversed()
	if err != nil {
		return 0, 0, err
	}
	second, err := b.AttachLead(rev)
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}

func newSymmetry(x, y int) *lattice.Symmetry {
	sym, err := lattice.NewTranslational(lattice.Vec{X: x, Y: y})
	if err != nil {
		// periods passed here are fixed unit vectors
		panic(err)
	}
	return sym
}

func finalize(b *builder.Builder) (*system.System, error) {
	sys, err := b.Finalize()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name, err)
	}
	return sys, nil
}
