package astrocore

import (
	"testing"
	"time"

	"gonum.org/v1/gonum/floats"
)

func TestEquinoctialRoundTripProgradeOrbit(t *testing.T) {
	epoch := NewInstantFromUTC(time.Now())
	coe := NewConicElements(7.2e6, 0.05, 0.8, 1.1, 0.6, 2.0, Earth, ICRF, epoch)
	eq := NewEquinoctialElementsFromConic(coe, false)
	back := eq.ToConicElements()

	if !floats.EqualWithinAbsOrRel(back.A, coe.A, 1e-6, 1e-9) {
		t.Fatalf("semi-major axis round trip: got %f want %f", back.A, coe.A)
	}
	if !floats.EqualWithinAbsOrRel(back.E, coe.E, 1e-9, 1e-6) {
		t.Fatalf("eccentricity round trip: got %f want %f", back.E, coe.E)
	}
	if !floats.EqualWithinAbsOrRel(back.I, coe.I, 1e-9, 1e-6) {
		t.Fatalf("inclination round trip: got %f want %f", back.I, coe.I)
	}
}

func TestEquinoctialToStateVectorMatchesConic(t *testing.T) {
	epoch := NewInstantFromUTC(time.Now())
	coe := NewConicElements(7e6, 0.01, 0.5, 0.2, 0.3, 0.1, Earth, ICRF, epoch)
	eq := NewEquinoctialElementsFromConic(coe, false)

	svFromConic, err := coe.ToStateVector(epoch)
	if err != nil {
		t.Fatalf("ToStateVector (conic): %v", err)
	}
	svFromEquinoctial, err := eq.ToStateVector(epoch)
	if err != nil {
		t.Fatalf("ToStateVector (equinoctial): %v", err)
	}
	if !floats.EqualWithinAbsOrRel(svFromConic.R.Norm(), svFromEquinoctial.R.Norm(), 1e-3, 1e-6) {
		t.Fatalf("expected equinoctial and conic paths to agree on position, got %f vs %f", svFromConic.R.Norm(), svFromEquinoctial.R.Norm())
	}
}
