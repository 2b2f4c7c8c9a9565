package lattice

import (
	"errors"
	"fmt"
)

var (
	ErrZeroPeriod = errors.New("lattice: zero symmetry period")
	ErrOutside    = errors.New("lattice: start site outside shape")
	ErrTooLarge   = errors.New("lattice: shape is unbounded")
)

// MaxFillSites bounds flood fills so an unbounded shape fails instead of
// exhausting memory.
const MaxFillSites = 1 << 20

type Site struct {
	X, Y int
}

type Vec struct {
	X, Y int
}

func (s Site) Add(v Vec) Site { return Site{s.X + v.X, s.Y + v.Y} }
func (s Site) Sub(v Vec) Site { return Site{s.X - v.X, s.Y - v.Y} }

func (s Site) String() string {
	return fmt.Sprintf("(%d,%d)", s.X, s.Y)
}

// ID is the vertex name used for graph checks.
func (s Site) ID() string {
	return fmt.Sprintf("%d_%d", s.X, s.Y)
}

// Less orders sites by X, then Y.
func (s Site) Less(o Site) bool {
	if s.X != o.X {
		return s.X < o.X
	}
	return s.Y < o.Y
}

func (v Vec) Scale(n int) Vec { return Vec{v.X * n, v.Y * n} }
func (v Vec) Neg() Vec        { return Vec{-v.X, -v.Y} }

type Lattice struct {
	Name  string
	Dim   int
	Norbs int // orbitals per site
	prims []Vec
}

func Chain(norbs int) *Lattice {
	return &Lattice{Name: "chain", Dim: 1, Norbs: norbs, prims: []Vec{{1, 0}}}
}

func Square(norbs int) *Lattice {
	return &Lattice{Name: "square", Dim: 2, Norbs: norbs, prims: []Vec{{1, 0}, {0, 1}}}
}

// Neighbors returns one hopping vector per unordered nearest-neighbor pair.
func (l *Lattice) Neighbors() []Vec {
	out := make([]Vec, len(l.prims))
	copy(out, l.prims)
	return out
}

// Contains reports whether the site belongs to the lattice.
func (l *Lattice) Contains(s Site) bool {
	return l.Dim > 1 || s.Y == 0
}

func (l *Lattice) String() string {
	return fmt.Sprintf("%s lattice (norbs=%d)", l.Name, l.Norbs)
}
