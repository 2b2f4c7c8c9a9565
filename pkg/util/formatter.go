package util

import (
	"fmt"
	"math"
)

var prefixes = []struct {
	scale  float64
	symbol string
}{
	{1e6, "M"}, {1e3, "k"}, {1, ""}, {1e-3, "m"}, {1e-6, "u"}, {1e-9, "n"}, {1e-12, "p"},
}

// FormatValueFactor prints value with an SI prefix on unit.
func FormatValueFactor(value float64, unit string) string {
	a := math.Abs(value)
	for _, p := range prefixes {
		if a >= p.scale {
			return fmt.Sprintf("%.3f %s%s", value/p.scale, p.symbol, unit)
		}
	}
	return fmt.Sprintf("%.3e %s", value, unit)
}

func FormatMagnitude(value float64) string {
	a := math.Abs(value)
	if a >= 1000 || (a < 0.001 && value != 0) {
		return fmt.Sprintf("%9.2e", value) // "1.00e+03" or "5.43e-05"
	}
	return fmt.Sprintf("%9.4f", value) // "   0.7325"
}

// FormatAngle prints radians as degrees.
func FormatAngle(rad float64) string {
	return fmt.Sprintf("%6.1fdeg", rad*180/math.Pi)
}
