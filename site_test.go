package astrocore

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats"
)

func TestSiteVisibleDirectlyOverhead(t *testing.T) {
	s := NewSite("pad39a", 28.5, -80.6, 10, 5, Earth)
	overhead := s.rBodyFixed.Scale(1.1) // same direction, higher altitude
	if !s.Visible(overhead) {
		t.Fatalf("expected a target directly overhead to be visible")
	}
}

func TestSiteNotVisibleBelowMask(t *testing.T) {
	s := NewSite("pad39a", 28.5, -80.6, 10, 5, Earth)
	oppositeSide := s.rBodyFixed.Scale(-1)
	if s.Visible(oppositeSide) {
		t.Fatalf("expected a target on the opposite side of the body to not be visible")
	}
}

func TestGeodeticToECEFEquatorRadius(t *testing.T) {
	r := geodeticToECEF(0, 0, 0)
	if !floats.EqualWithinAbsOrRel(r.Norm(), earthEquatorialRadius, 1e-6, 1e-6) {
		t.Fatalf("expected a point at the equator/prime-meridian/sea-level to be at the equatorial radius, got %f", r.Norm())
	}
}

func TestLaunchAzimuthInfeasibleBeyondInclination(t *testing.T) {
	s := NewSite("polarpad", 85, 0, 0, 5, Earth)
	epoch := NewInstantFromUTC(time.Now())
	target := NewConicElements(7e6, 0.001, 10*math.Pi/180, 0, 0, 0, Earth, ICRF, epoch)
	if _, ok := launchAzimuthAt(s, target, epoch); ok {
		t.Fatalf("expected no feasible launch azimuth from an 85-degree-latitude site to a 10-degree-inclination orbit")
	}
}
