package astrocore

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 1 / deg2rad
)

// Deg2rad converts degrees to radians, folding negative angles into
// [0, 2*pi) the way the teacher's helper does.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, folding negative angles into
// [0, 360).
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}

// R1 returns the direction cosine matrix for a rotation of x radians about
// the first axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 returns the direction cosine matrix for a rotation of x radians about
// the second axis.
func R2(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 returns the direction cosine matrix for a rotation of x radians about
// the third axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// R3R1R3 performs a 3-1-3 Euler angle rotation, as used to build the
// perifocal-to-inertial rotation from the classical orbital angles
// (Omega, i, omega). From Schaub & Junkins.
func R3R1R3(theta1, theta2, theta3 float64) *mat.Dense {
	m := mat.NewDense(3, 3, nil)
	m.Mul(R3(theta3), R1(theta2))
	m.Mul(m, R3(theta1))
	return m
}

// MxV33 multiplies a 3x3 matrix by a Vector3.
func MxV33(m *mat.Dense, v Vector3) Vector3 {
	var r mat.VecDense
	r.MulVec(m, mat.NewVecDense(3, v.Slice()))
	return Vector3{r.AtVec(0), r.AtVec(1), r.AtVec(2)}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *mat.Dense {
	id := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}
	return id
}

// Transpose3 returns the transpose of a 3x3 matrix, which for a direction
// cosine matrix is also its inverse.
func Transpose3(m *mat.Dense) *mat.Dense {
	var t mat.Dense
	t.CloneFrom(m.T())
	return &t
}
