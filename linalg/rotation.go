package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Axis selects the coordinate axis of an elementary rotation.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// RotationMatrix returns the elementary matrix that rotates a vector by
// angle radians about axis.
func RotationMatrix(angle float64, axis Axis) Matrix {
	s, c := math.Sincos(angle)
	var data []float64
	switch axis {
	case X:
		data = []float64{
			1, 0, 0,
			0, c, -s,
			0, s, c,
		}
	case Y:
		data = []float64{
			c, 0, s,
			0, 1, 0,
			-s, 0, c,
		}
	default:
		data = []float64{
			c, -s, 0,
			s, c, 0,
			0, 0, 1,
		}
	}
	return Matrix{d: mat.NewDense(3, 3, data)}
}

// Rotate rotates the reference frame of m by angle about axis, which is
// RotationMatrix(-angle, axis)·m. All IAU rotation sequences are written
// in this convention.
func (m Matrix) Rotate(angle float64, axis Axis) (Matrix, error) {
	if r, _ := m.Dims(); r != 3 {
		return Matrix{}, fmt.Errorf("%w: rotate a matrix with %d rows", ErrInvalidDimensions, r)
	}
	return RotationMatrix(-angle, axis).Mul(m)
}

// Rotation is one step of a rotation sequence.
type Rotation struct {
	Angle float64
	Axis  Axis
}

// Compose applies the rotations to m in order, each left-multiplying the
// running result.
func Compose(m Matrix, steps ...Rotation) (Matrix, error) {
	var err error
	for _, s := range steps {
		if m, err = m.Rotate(s.Angle, s.Axis); err != nil {
			return Matrix{}, err
		}
	}
	return m, nil
}
