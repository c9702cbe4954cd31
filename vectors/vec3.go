package vectors

import (
	"fmt"
	"math"
)

// Vec3 is a Cartesian position in metres. The frame (ECI or ECEF) is
// implied by the API that produced it.
type Vec3 struct {
	X, Y, Z float64
}

// FromSlice builds a Vec3 from exactly three components.
func FromSlice(s []float64) (Vec3, error) {
	if len(s) != 3 {
		return Vec3{}, fmt.Errorf("vectors: want 3 components, got %d", len(s))
	}
	return Vec3{X: s[0], Y: s[1], Z: s[2]}, nil
}

// Slice returns the components as a column for matrix code.
func (v Vec3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Norm returns the distance from the Earth's centre.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

func Distance(v1, v2 Vec3) float64 {
	return v1.Sub(v2).Norm()
}
