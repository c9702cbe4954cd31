package linalg

import (
	"fmt"
	"math"

	"github.com/echoflaresat/earthframes/vectors"
)

// PivotThreshold is the smallest magnitude accepted as a pivot.
const PivotThreshold = 1e-6

// Solve returns x with m·x = b using Gaussian elimination with partial
// pivoting. For each column the first row at or below the diagonal whose
// entry exceeds PivotThreshold in magnitude becomes the pivot; when no
// such row exists the system is reported as singular.
func (m Matrix) Solve(b []float64) ([]float64, error) {
	n, c := m.Dims()
	if n == 0 || n != c {
		return nil, fmt.Errorf("%w: solve with %dx%d matrix", ErrInvalidDimensions, n, c)
	}
	if len(b) != n {
		return nil, fmt.Errorf("%w: %dx%d matrix with right-hand side of length %d", ErrInvalidDimensions, n, c, len(b))
	}

	a := m.Rows()
	x := make([]float64, n)
	copy(x, b)

	for col := 0; col < n; col++ {
		p := -1
		for row := col; row < n; row++ {
			if math.Abs(a[row][col]) > PivotThreshold {
				p = row
				break
			}
		}
		if p < 0 {
			return nil, fmt.Errorf("%w: no pivot in column %d", ErrSingularSystem, col)
		}
		if p != col {
			a[p], a[col] = a[col], a[p]
			x[p], x[col] = x[col], x[p]
		}
		for row := col + 1; row < n; row++ {
			f := a[row][col] / a[col][col]
			if f == 0 {
				continue
			}
			for k := col; k < n; k++ {
				a[row][k] -= f * a[col][k]
			}
			x[row] -= f * x[col]
		}
	}

	for row := n - 1; row >= 0; row-- {
		sum := x[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}

// SolveVec3 solves the 3×3 system m·x = v.
func (m Matrix) SolveVec3(v vectors.Vec3) (vectors.Vec3, error) {
	x, err := m.Solve(v.Slice())
	if err != nil {
		return vectors.Vec3{}, err
	}
	return vectors.FromSlice(x)
}
