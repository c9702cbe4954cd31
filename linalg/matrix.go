// Package linalg holds the small dense-matrix toolkit used by the frame
// transformations: construction, arithmetic with shape checks, elementary
// rotations and a pivoting linear solver.
package linalg

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/echoflaresat/earthframes/vectors"
)

var (
	ErrInvalidDimensions = errors.New("invalid matrix dimensions")
	ErrSingularSystem    = errors.New("singular linear system")
)

// Matrix is an immutable dense matrix. Every operation returns a new value.
type Matrix struct {
	d *mat.Dense
}

// FromRows builds a matrix from row slices of equal, non-zero length.
func FromRows(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Matrix{}, fmt.Errorf("%w: empty matrix", ErrInvalidDimensions)
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return Matrix{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidDimensions, i, len(row), c)
		}
		data = append(data, row...)
	}
	return Matrix{d: mat.NewDense(len(rows), c, data)}, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return Matrix{d: d}
}

// Generate builds an r×c matrix whose entries are f(i, j).
func Generate(r, c int, f func(i, j int) float64) (Matrix, error) {
	if r <= 0 || c <= 0 {
		return Matrix{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, r, c)
	}
	d := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d.Set(i, j, f(i, j))
		}
	}
	return Matrix{d: d}, nil
}

func (m Matrix) Dims() (r, c int) {
	if m.d == nil {
		return 0, 0
	}
	return m.d.Dims()
}

func (m Matrix) At(i, j int) float64 {
	return m.d.At(i, j)
}

// Rows returns a copy of the entries as row slices.
func (m Matrix) Rows() [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		copy(out[i], m.d.RawRowView(i))
	}
	return out
}

func (m Matrix) Add(o Matrix) (Matrix, error) {
	if err := sameShape("add", m, o); err != nil {
		return Matrix{}, err
	}
	var d mat.Dense
	d.Add(m.d, o.d)
	return Matrix{d: &d}, nil
}

func (m Matrix) Sub(o Matrix) (Matrix, error) {
	if err := sameShape("subtract", m, o); err != nil {
		return Matrix{}, err
	}
	var d mat.Dense
	d.Sub(m.d, o.d)
	return Matrix{d: &d}, nil
}

// Mul returns the product m·o.
func (m Matrix) Mul(o Matrix) (Matrix, error) {
	mr, mc := m.Dims()
	or, oc := o.Dims()
	if mr == 0 || or == 0 || mc != or {
		return Matrix{}, fmt.Errorf("%w: multiply %dx%d by %dx%d", ErrInvalidDimensions, mr, mc, or, oc)
	}
	var d mat.Dense
	d.Mul(m.d, o.d)
	return Matrix{d: &d}, nil
}

// MulVec applies a 3×3 matrix to a column vector.
func (m Matrix) MulVec(v vectors.Vec3) (vectors.Vec3, error) {
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return vectors.Vec3{}, fmt.Errorf("%w: apply %dx%d to a 3-vector", ErrInvalidDimensions, r, c)
	}
	var out mat.VecDense
	out.MulVec(m.d, mat.NewVecDense(3, v.Slice()))
	return vectors.Vec3{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}, nil
}

func (m Matrix) Transpose() Matrix {
	return Matrix{d: mat.DenseCopyOf(m.d.T())}
}

// Det returns the determinant of a square matrix.
func (m Matrix) Det() (float64, error) {
	r, c := m.Dims()
	if r == 0 || r != c {
		return 0, fmt.Errorf("%w: determinant of %dx%d", ErrInvalidDimensions, r, c)
	}
	return mat.Det(m.d), nil
}

// EqualApprox reports whether both matrices have the same shape and all
// entries agree within tol.
func (m Matrix) EqualApprox(o Matrix, tol float64) bool {
	if sameShape("compare", m, o) != nil {
		return false
	}
	return mat.EqualApprox(m.d, o.d, tol)
}

func (m Matrix) String() string {
	if m.d == nil {
		return "[]"
	}
	return fmt.Sprintf("%v", mat.Formatted(m.d, mat.Squeeze()))
}

func sameShape(op string, a, b Matrix) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar == 0 || ar != br || ac != bc {
		return fmt.Errorf("%w: %s %dx%d and %dx%d", ErrInvalidDimensions, op, ar, ac, br, bc)
	}
	return nil
}
