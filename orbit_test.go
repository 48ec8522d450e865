package astrocore

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats"
)

func TestConicElementsToStateVectorAndBack(t *testing.T) {
	epoch := NewInstantFromUTC(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	coe := NewConicElements(7e6, 0.01, 0.9, 1.2, 0.3, 0.5, Earth, ICRF, epoch)

	sv, err := coe.ToStateVector(epoch)
	if err != nil {
		t.Fatalf("ToStateVector: %v", err)
	}

	back := NewConicElementsFromStateVector(sv)
	if !floats.EqualWithinAbsOrRel(back.A, coe.A, distanceEps, 1e-6) {
		t.Fatalf("semi-major axis round trip: got %f want %f", back.A, coe.A)
	}
	if !floats.EqualWithinAbsOrRel(back.E, coe.E, eccentricityEps, 1e-4) {
		t.Fatalf("eccentricity round trip: got %f want %f", back.E, coe.E)
	}
	if !floats.EqualWithinAbsOrRel(back.I, coe.I, angleEps, 1e-4) {
		t.Fatalf("inclination round trip: got %f want %f", back.I, coe.I)
	}
}

func TestConicElementsApoapsisPeriapsis(t *testing.T) {
	epoch := NewInstantFromUTC(time.Now())
	coe := NewConicElements(1e7, 0.2, 0, 0, 0, 0, Earth, ICRF, epoch)
	if !floats.EqualWithinAbsOrRel(coe.Apoapsis(), 1.2e7, 1e-9, 1e-9) {
		t.Fatalf("expected apoapsis 1.2e7, got %f", coe.Apoapsis())
	}
	if !floats.EqualWithinAbsOrRel(coe.Periapsis(), 8e6, 1e-9, 1e-9) {
		t.Fatalf("expected periapsis 8e6, got %f", coe.Periapsis())
	}
}

func TestConicElementsPanicsOnHyperbolic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected NewConicElements to panic for hyperbolic eccentricity with positive A")
		}
	}()
	epoch := NewInstantFromUTC(time.Now())
	NewConicElements(7e6, 1.5, 0, 0, 0, 0, Earth, ICRF, epoch)
}

func TestStateVectorEnergyMatchesVisViva(t *testing.T) {
	epoch := NewInstantFromUTC(time.Now())
	a := 7e6
	coe := NewConicElements(a, 0, 0, 0, 0, 0, Earth, ICRF, epoch)
	sv, err := coe.ToStateVector(epoch)
	if err != nil {
		t.Fatalf("ToStateVector: %v", err)
	}
	expected := -Earth.GM() / (2 * a)
	if !floats.EqualWithinAbsOrRel(sv.SpecificEnergy(), expected, 1e-6, 1e-6) {
		t.Fatalf("specific energy: got %f want %f", sv.SpecificEnergy(), expected)
	}
}

func TestRadii2ae(t *testing.T) {
	a, e, err := Radii2ae(8e6, 7e6)
	if err != nil {
		t.Fatalf("Radii2ae: %v", err)
	}
	if !floats.EqualWithinAbsOrRel(a, 7.5e6, 1e-9, 1e-9) {
		t.Fatalf("expected a=7.5e6, got %f", a)
	}
	if !floats.EqualWithinAbsOrRel(e, (8e6-7e6)/(8e6+7e6), 1e-9, 1e-9) {
		t.Fatalf("expected e matching (ra-rp)/(ra+rp), got %f", e)
	}
}

func TestRadii2aeRejectsNegativeRadius(t *testing.T) {
	if _, _, err := Radii2ae(-1, 7e6); err == nil {
		t.Fatalf("expected error for negative radius")
	}
}

func TestClampUnitGuardsAcos(t *testing.T) {
	if math.IsNaN(math.Acos(clampUnit(1 + 1e-10))) {
		t.Fatalf("clampUnit should prevent acos from returning NaN on slight overshoot")
	}
}
