package matrix

import (
	"errors"
	"fmt"
	"math/cmplx"
	"strings"
)

var (
	ErrSingular = errors.New("matrix: singular matrix")
	ErrShape    = errors.New("matrix: shape mismatch")
)

// Dense is a small row-major complex matrix. On-site and hopping values and
// lead unit-cell blocks are Dense; the scattering region uses SystemMatrix.
type Dense struct {
	rows, cols int
	data       []complex128
}

func NewDense(rows, cols int) *Dense {
	return &Dense{rows: rows, cols: cols, data: make([]complex128, rows*cols)}
}

func Identity(n int) *Dense {
	d := NewDense(n, n)
	for i := 0; i < n; i++ {
		d.data[i*n+i] = 1
	}
	return d
}

// Scalar returns a 1x1 matrix.
func Scalar(v complex128) *Dense {
	return &Dense{rows: 1, cols: 1, data: []complex128{v}}
}

func FromRows(rows [][]complex128) *Dense {
	if len(rows) == 0 {
		return NewDense(0, 0)
	}
	d := NewDense(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != d.cols {
			panic(fmt.Sprintf("matrix: ragged row %d", i))
		}
		copy(d.data[i*d.cols:(i+1)*d.cols], row)
	}
	return d
}

func (d *Dense) Rows() int { return d.rows }
func (d *Dense) Cols() int { return d.cols }

func (d *Dense) At(i, j int) complex128 {
	return d.data[i*d.cols+j]
}

func (d *Dense) Set(i, j int, v complex128) {
	d.data[i*d.cols+j] = v
}

func (d *Dense) AddAt(i, j int, v complex128) {
	d.data[i*d.cols+j] += v
}

func (d *Dense) Clone() *Dense {
	c := NewDense(d.rows, d.cols)
	copy(c.data, d.data)
	return c
}

func (d *Dense) SameShape(o *Dense) bool {
	return d.rows == o.rows && d.cols == o.cols
}

func (d *Dense) Add(o *Dense) *Dense {
	if !d.SameShape(o) {
		panic(fmt.Sprintf("matrix: add %dx%d and %dx%d", d.rows, d.cols, o.rows, o.cols))
	}
	c := d.Clone()
	for i, v := range o.data {
		c.data[i] += v
	}
	return c
}

func (d *Dense) Sub(o *Dense) *Dense {
	return d.Add(o.Scale(-1))
}

func (d *Dense) Scale(s complex128) *Dense {
	c := d.Clone()
	for i := range c.data {
		c.data[i] *= s
	}
	return c
}

func (d *Dense) Mul(o *Dense) *Dense {
	if d.cols != o.rows {
		panic(fmt.Sprintf("matrix: multiply %dx%d by %dx%d", d.rows, d.cols, o.rows, o.cols))
	}
	c := NewDense(d.rows, o.cols)
	for i := 0; i < d.rows; i++ {
		for k := 0; k < d.cols; k++ {
			a := d.data[i*d.cols+k]
			if a == 0 {
				continue
			}
			for j := 0; j < o.cols; j++ {
				c.data[i*c.cols+j] += a * o.data[k*o.cols+j]
			}
		}
	}
	return c
}

// Dagger returns the conjugate transpose.
func (d *Dense) Dagger() *Dense {
	c := NewDense(d.cols, d.rows)
	for i := 0; i < d.rows; i++ {
		for j := 0; j < d.cols; j++ {
			c.data[j*c.cols+i] = cmplx.Conj(d.data[i*d.cols+j])
		}
	}
	return c
}

func (d *Dense) Trace() complex128 {
	var t complex128
	for i := 0; i < d.rows && i < d.cols; i++ {
		t += d.data[i*d.cols+i]
	}
	return t
}

func (d *Dense) MaxAbs() float64 {
	m := 0.0
	for _, v := range d.data {
		if a := cmplx.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func (d *Dense) IsHermitian(tol float64) bool {
	if d.rows != d.cols {
		return false
	}
	for i := 0; i < d.rows; i++ {
		for j := i; j < d.cols; j++ {
			if cmplx.Abs(d.At(i, j)-cmplx.Conj(d.At(j, i))) > tol {
				return false
			}
		}
	}
	return true
}

// Inverse uses Gauss-Jordan elimination with partial pivoting.
func (d *Dense) Inverse() (*Dense, error) {
	if d.rows != d.cols {
		return nil, fmt.Errorf("inverse of %dx%d: %w", d.rows, d.cols, ErrShape)
	}
	n := d.rows
	a := d.Clone()
	inv := Identity(n)

	scale := a.MaxAbs()
	if scale == 0 {
		return nil, ErrSingular
	}

	for col := 0; col < n; col++ {
		pivot := col
		best := cmplx.Abs(a.At(col, col))
		for r := col + 1; r < n; r++ {
			if v := cmplx.Abs(a.At(r, col)); v > best {
				pivot, best = r, v
			}
		}
		if best <= 1e-14*scale {
			return nil, ErrSingular
		}
		if pivot != col {
			a.swapRows(pivot, col)
			inv.swapRows(pivot, col)
		}

		p := a.At(col, col)
		for j := 0; j < n; j++ {
			a.data[col*n+j] /= p
			inv.data[col*n+j] /= p
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := a.At(r, col)
			if f == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				a.data[r*n+j] -= f * a.data[col*n+j]
				inv.data[r*n+j] -= f * inv.data[col*n+j]
			}
		}
	}

	return inv, nil
}

func (d *Dense) swapRows(i, j int) {
	for k := 0; k < d.cols; k++ {
		d.data[i*d.cols+k], d.data[j*d.cols+k] = d.data[j*d.cols+k], d.data[i*d.cols+k]
	}
}

// Block copies the sub-matrix selected by rows and cols.
func (d *Dense) Block(rows, cols []int) *Dense {
	c := NewDense(len(rows), len(cols))
	for i, r := range rows {
		for j, col := range cols {
			c.data[i*c.cols+j] = d.At(r, col)
		}
	}
	return c
}

func (d *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < d.rows; i++ {
		sb.WriteString("[")
		for j := 0; j < d.cols; j++ {
			if j > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%.4g", d.At(i, j))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
