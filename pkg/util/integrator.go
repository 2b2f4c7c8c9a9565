package util

import "fmt"

type QuadratureMethod int

const (
	SimpsonMethod QuadratureMethod = iota
	TrapezoidalMethod
)

// Linspace returns n evenly spaced points from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range n {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

func GetQuadratureWeights(method QuadratureMethod, n int, h float64) ([]float64, error) {
	switch method {
	case TrapezoidalMethod:
		return GetTrapezoidalWeights(n, h)
	default:
		return GetSimpsonWeights(n, h)
	}
}

// GetSimpsonWeights returns composite Simpson weights for n equally spaced
// points; n must be odd.
func GetSimpsonWeights(n int, h float64) ([]float64, error) {
	if n < 3 || n%2 == 0 {
		return nil, fmt.Errorf("simpson rule needs an odd number of points >= 3, got %d", n)
	}

	w := make([]float64, n)
	for i := range n {
		switch {
		case i == 0 || i == n-1:
			w[i] = h / 3
		case i%2 == 1:
			w[i] = 4 * h / 3
		default:
			w[i] = 2 * h / 3
		}
	}
	return w, nil
}

func GetTrapezoidalWeights(n int, h float64) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("trapezoidal rule needs at least 2 points, got %d", n)
	}

	w := make([]float64, n)
	for i := range n {
		w[i] = h
	}
	w[0] = h / 2
	w[n-1] = h / 2
	return w, nil
}
