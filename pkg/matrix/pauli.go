package matrix

func PauliX() *Dense {
	return FromRows([][]complex128{{0, 1}, {1, 0}})
}

func PauliY() *Dense {
	return FromRows([][]complex128{{0, -1i}, {1i, 0}})
}

func PauliZ() *Dense {
	return FromRows([][]complex128{{1, 0}, {0, -1}})
}

// Spin returns m.sigma for a magnetization vector m.
func Spin(mx, my, mz float64) *Dense {
	return FromRows([][]complex128{
		{complex(mz, 0), complex(mx, -my)},
		{complex(mx, my), complex(-mz, 0)},
	})
}
