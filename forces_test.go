package astrocore

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestGravityForcePointMassMagnitude(t *testing.T) {
	g := NewGravityForce(Body{Object: Earth})
	r := Vector3{X: 7e6}
	a := g.Acceleration(Instant{}, r)
	expected := Earth.GM() / (7e6 * 7e6)
	if !floats.EqualWithinAbsOrRel(a.Norm(), expected, 1e-9, 1e-9) {
		t.Fatalf("point-mass acceleration magnitude: got %f want %f", a.Norm(), expected)
	}
	if !floats.EqualWithinAbsOrRel(a.X, -expected, 1e-9, 1e-9) {
		t.Fatalf("point-mass acceleration should point toward the center, got %v", a)
	}
}

func TestGravityForceJ2PerturbsOffEquator(t *testing.T) {
	g := NewGravityForce(Body{Object: Earth})
	g.J2Enabled = true
	rEquatorial := Vector3{X: 7e6}
	rPolar := Vector3{Z: 7e6}

	aEq := g.Acceleration(Instant{}, rEquatorial)
	aPolar := g.Acceleration(Instant{}, rPolar)

	// J2 makes the equatorial and polar accelerations differ at the same
	// radius; a pure point-mass model would make them identical in norm.
	if floats.EqualWithinAbsOrRel(aEq.Norm(), aPolar.Norm(), 1e-6, 1e-9) {
		t.Fatalf("expected J2 to break the point-mass symmetry between equatorial and polar radii")
	}
}

func TestGravityForceThirdBodyAddsPerturbation(t *testing.T) {
	moonish := Body{
		Object: CelestialObject{Name: "Moonish", mu: 4902.8e9},
		StateAt: func(t Instant) (Vector3, Vector3) {
			return Vector3{X: 384400e3}, Vector3{}
		},
	}
	withoutThirdBody := NewGravityForce(Body{Object: Earth})
	withThirdBody := NewGravityForce(Body{Object: Earth}, moonish)

	r := Vector3{X: 7e6}
	a1 := withoutThirdBody.Acceleration(Instant{}, r)
	a2 := withThirdBody.Acceleration(Instant{}, r)

	if a1 == a2 {
		t.Fatalf("expected third-body perturbation to change the total acceleration")
	}
}

func TestJ2AccelerationZeroWithoutJ2(t *testing.T) {
	body := CelestialObject{Name: "Airless", mu: 100}
	a := j2Acceleration(body, Vector3{X: 1000})
	if a != (Vector3{}) {
		t.Fatalf("expected zero J2 acceleration for a body with no J2 term, got %v", a)
	}
}

func TestGravityForceNoOpPerturberIgnoredAtCoincidentOrigin(t *testing.T) {
	// A perturber whose position coincides with the evaluation point (a
	// degenerate configuration) must not divide by zero.
	coincident := Body{
		Object:  CelestialObject{Name: "Coincident", mu: 10},
		StateAt: func(t Instant) (Vector3, Vector3) { return Vector3{X: 7e6}, Vector3{} },
	}
	g := NewGravityForce(Body{Object: Earth}, coincident)
	a := g.Acceleration(Instant{}, Vector3{X: 7e6})
	if math.IsNaN(a.Norm()) || math.IsInf(a.Norm(), 0) {
		t.Fatalf("expected finite acceleration even with a coincident perturber, got %v", a)
	}
}
