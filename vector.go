package astrocore

import (
	"fmt"
	"math"
)

// Vector3 is a 3-component Cartesian vector, used throughout this package
// for positions, velocities, and accelerations in a given Frame.
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 builds a Vector3 from its three components.
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Slice returns the vector as a [3]float64-backed slice, for interop with
// gonum/mat and the SGP4 adapter.
func (v Vector3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// VectorFromSlice builds a Vector3 from a length-3 slice.
func VectorFromSlice(s []float64) Vector3 {
	return Vector3{X: s[0], Y: s[1], Z: s[2]}
}

// Slice3 returns the vector as a fixed-size array, for integrator state
// buffers that want to avoid a heap allocation per call.
func (v Vector3) Slice3() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Add returns v+u.
func (v Vector3) Add(u Vector3) Vector3 {
	return Vector3{v.X + u.X, v.Y + u.Y, v.Z + u.Z}
}

// Sub returns v-u.
func (v Vector3) Sub(u Vector3) Vector3 {
	return Vector3{v.X - u.X, v.Y - u.Y, v.Z - u.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the inner product of v and u.
func (v Vector3) Dot(u Vector3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns v x u.
func (v Vector3) Cross(u Vector3) Vector3 {
	return Vector3{
		v.Y*u.Z - v.Z*u.Y,
		v.Z*u.X - v.X*u.Z,
		v.X*u.Y - v.Y*u.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v scaled to unit length. Returns the zero vector if v is
// (within floating point tolerance) the zero vector, mirroring the
// teacher's Unit() rather than dividing by zero.
func (v Vector3) Unit() Vector3 {
	n := v.Norm()
	if n < 1e-12 {
		return Vector3{}
	}
	return v.Scale(1 / n)
}

func (v Vector3) String() string {
	return fmt.Sprintf("[%.6f %.6f %.6f]", v.X, v.Y, v.Z)
}
