package astrocore

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestCelestialObjectFromString(t *testing.T) {
	for _, name := range []string{"Earth", "earth", "EARTH", "Mars", "Sun"} {
		if _, err := CelestialObjectFromString(name); err != nil {
			t.Fatalf("CelestialObjectFromString(%q): %v", name, err)
		}
	}
	if _, err := CelestialObjectFromString("Vulcan"); err == nil {
		t.Fatalf("expected error for unknown body")
	}
}

func TestCelestialObjectEquals(t *testing.T) {
	if !Earth.Equals(Earth) {
		t.Fatalf("Earth should equal itself")
	}
	if Earth.Equals(Mars) {
		t.Fatalf("Earth should not equal Mars")
	}
}

func TestCelestialObjectJAccessors(t *testing.T) {
	if !floats.EqualWithinAbsOrRel(Earth.J(2), 1082.6269e-6, 1e-12, 1e-12) {
		t.Fatalf("Earth J2 mismatch: got %e", Earth.J(2))
	}
	if Earth.J(5) != 0 {
		t.Fatalf("expected zero for an unmodeled zonal harmonic, got %e", Earth.J(5))
	}
}

func TestHillSphereRadiusFiniteForPlanetsInfiniteForSun(t *testing.T) {
	if !math.IsInf(Sun.HillSphereRadius(0), 1) {
		t.Fatalf("expected the Sun's Hill sphere (about itself) to be infinite")
	}
	r := Earth.HillSphereRadius(0)
	if r <= 0 || math.IsInf(r, 0) {
		t.Fatalf("expected Earth's Hill sphere radius to be finite and positive, got %f", r)
	}
	// Earth's Hill sphere is on the order of 1.5e9 metres (1.5 million km).
	if r < 1e9 || r > 2e9 {
		t.Fatalf("Earth Hill sphere radius out of expected order of magnitude: %f", r)
	}
}

func TestHillSphereRadiusShrinksWithEccentricity(t *testing.T) {
	circular := Earth.HillSphereRadius(0)
	eccentric := Earth.HillSphereRadius(0.5)
	if eccentric >= circular {
		t.Fatalf("an eccentric parent orbit should shrink the Hill sphere at periapsis: circular=%f eccentric=%f", circular, eccentric)
	}
}
