package term

import (
	"fmt"
	"sort"
	"strings"

	"github.com/edp1096/toy-transport/pkg/lattice"
	"github.com/edp1096/toy-transport/pkg/matrix"
)

// Params are the external parameters value functions are evaluated with.
type Params map[string]float64

// Get returns the named parameter or 0 when it is not set.
func (p Params) Get(name string) float64 {
	return p[name]
}

func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// With returns a copy of p with name set to value.
func (p Params) With(name string, value float64) Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[name] = value
	return out
}

func (p Params) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, p[k])
	}
	return strings.Join(parts, " ")
}

type OnsiteFunc func(s lattice.Site, p Params) *matrix.Dense

// HoppingFunc returns the Hamiltonian block H[to, from].
type HoppingFunc func(to, from lattice.Site, p Params) *matrix.Dense

func ConstOnsite(m *matrix.Dense) OnsiteFunc {
	return func(lattice.Site, Params) *matrix.Dense { return m }
}

func ConstHopping(m *matrix.Dense) HoppingFunc {
	return func(lattice.Site, lattice.Site, Params) *matrix.Dense { return m }
}

// Scalar is a constant 1x1 on-site value.
func Scalar(v float64) OnsiteFunc {
	return ConstOnsite(matrix.Scalar(complex(v, 0)))
}

// ScalarHopping is a constant 1x1 hopping value.
func ScalarHopping(v float64) HoppingFunc {
	return ConstHopping(matrix.Scalar(complex(v, 0)))
}

// Conjugate returns the value function of the reversed hopping (from, to).
func Conjugate(f HoppingFunc) HoppingFunc {
	return func(to, from lattice.Site, p Params) *matrix.Dense {
		return f(from, to, p).Dagger()
	}
}
