package astrocore

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// Precise epsilons, used about any body other than the Sun.
	eccentricityEps = 5e-5
	angleEps        = (5e-3 / 360) * (2 * math.Pi) // 0.005 degrees
	distanceEps     = 2e4                          // metres
	// Coarse epsilons, used for heliocentric/interplanetary orbits.
	eccentricityLgEps = 1e-2
	angleLgEps        = (5e-1 / 360) * (2 * math.Pi) // 0.5 degrees
	distanceLgEps     = 5e5                          // metres
	velocityEps       = 1e-1                         // metres/second
)

// OrbitalParameters is satisfied by every orbital-element variant this
// package supports (StateVector, ConicElements, EquinoctialElements, TLE).
// Maneuvers and event predicates take StateVector or ConicElements
// directly; this interface is the common conversion surface for callers.
type OrbitalParameters interface {
	// ToStateVector returns the Cartesian state at the given epoch.
	ToStateVector(t Instant) (StateVector, error)
	// CenterBody returns the body this orbit is defined about.
	CenterBody() CelestialObject
}

// StateVector is a Cartesian orbital state: position and velocity vectors
// about a center body, expressed in a named frame at a given epoch.
type StateVector struct {
	R, V   Vector3
	Origin CelestialObject
	Frame  Frame
	Epoch  Instant
}

// CenterBody implements OrbitalParameters.
func (sv StateVector) CenterBody() CelestialObject { return sv.Origin }

// ToStateVector implements OrbitalParameters: a StateVector is already in
// Cartesian form, so this simply stamps the requested epoch.
func (sv StateVector) ToStateVector(t Instant) (StateVector, error) {
	sv.Epoch = t
	return sv, nil
}

// RNorm returns the distance from the center body.
func (sv StateVector) RNorm() float64 { return sv.R.Norm() }

// VNorm returns the speed relative to the center body.
func (sv StateVector) VNorm() float64 { return sv.V.Norm() }

// SpecificEnergy returns the specific mechanical energy xi of this state.
func (sv StateVector) SpecificEnergy() float64 {
	return sv.VNorm()*sv.VNorm()/2 - sv.Origin.GM()/sv.RNorm()
}

// AngularMomentum returns the orbital angular momentum vector h = r x v.
func (sv StateVector) AngularMomentum() Vector3 { return sv.R.Cross(sv.V) }

// ConicElements is a classical (Keplerian) orbital-element set: semi-major
// axis, eccentricity, inclination, RAAN, argument of periapsis, and true
// anomaly, all angles in radians.
type ConicElements struct {
	A, E, I, RAAN, ArgPeriapsis, TrueAnomaly float64
	Origin                                   CelestialObject
	Frame                                    Frame
	Epoch                                    Instant
}

// CenterBody implements OrbitalParameters.
func (c ConicElements) CenterBody() CelestialObject { return c.Origin }

// Period returns the orbital period. Undefined for parabolic/hyperbolic
// orbits, for which it returns Duration(math.MaxInt64), the largest
// representable Duration.
func (c ConicElements) Period() Duration {
	if c.E >= 1 {
		return Duration(math.MaxInt64)
	}
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(c.A, 3)/c.Origin.GM())
	return NewDurationFromSeconds(seconds)
}

// Apoapsis returns the apoapsis radius.
func (c ConicElements) Apoapsis() float64 { return c.A * (1 + c.E) }

// Periapsis returns the periapsis radius.
func (c ConicElements) Periapsis() float64 { return c.A * (1 - c.E) }

// SemiParameter returns the semi-latus rectum p = a(1-e^2).
func (c ConicElements) SemiParameter() float64 { return c.A * (1 - c.E*c.E) }

// ToStateVector converts classical elements to a Cartesian state via the
// perifocal-to-inertial rotation (Vallado, COE2RV), stamping epoch t.
func (c ConicElements) ToStateVector(t Instant) (StateVector, error) {
	if c.E >= 1 && !floats.EqualWithinAbs(c.E, 1, eccentricityEps) {
		if c.A >= 0 {
			return StateVector{}, newError("ConicElements.ToStateVector", InvalidArgument, "hyperbolic orbit requires negative semi-major axis")
		}
	}
	p := c.SemiParameter()
	if p <= 0 {
		return StateVector{}, newError("ConicElements.ToStateVector", OutOfRange, "non-positive semi-latus rectum")
	}
	muOverP := math.Sqrt(c.Origin.GM() / p)
	sinNu, cosNu := math.Sincos(c.TrueAnomaly)
	denom := 1 + c.E*cosNu
	rPQW := Vector3{p * cosNu / denom, p * sinNu / denom, 0}
	vPQW := Vector3{-muOverP * sinNu, muOverP * (c.E + cosNu), 0}
	dcm := R3R1R3(-c.ArgPeriapsis, -c.I, -c.RAAN)
	return StateVector{
		R:      MxV33(dcm, rPQW),
		V:      MxV33(dcm, vPQW),
		Origin: c.Origin,
		Frame:  c.Frame,
		Epoch:  t,
	}, nil
}

// NewConicElements builds a ConicElements from angles in radians. Panics
// for hyperbolic eccentricities (e >= 1 beyond eccentricityEps); an e within
// eccentricityEps of 1 (near-parabolic) is accepted, matching the teacher's
// programmer-error-only panic convention (those variants must be built
// with NewConicElementsFromStateVector instead).
func NewConicElements(a, e, i, raan, argp, nu float64, origin CelestialObject, frame Frame, epoch Instant) ConicElements {
	if e >= 1 && !floats.EqualWithinAbs(e, 1, eccentricityEps) {
		panic("use NewConicElementsFromStateVector for parabolic/hyperbolic orbits")
	}
	return ConicElements{A: a, E: e, I: i, RAAN: raan, ArgPeriapsis: argp, TrueAnomaly: nu, Origin: origin, Frame: frame, Epoch: epoch}
}

// NewConicElementsFromStateVector derives classical elements from a
// Cartesian state (Vallado, RV2COE).
func NewConicElementsFromStateVector(sv StateVector) ConicElements {
	mu := sv.Origin.GM()
	hVec := sv.R.Cross(sv.V)
	nVec := Vector3{Z: 1}.Cross(hVec)
	v := sv.V.Norm()
	r := sv.R.Norm()
	xi := v*v/2 - mu/r
	a := -mu / (2 * xi)

	eVec := sv.R.Scale((v*v - mu/r)).Sub(sv.V.Scale(sv.R.Dot(sv.V))).Scale(1 / mu)
	e := eVec.Norm()
	if e < eccentricityEps {
		e = eccentricityEps
	}

	i := math.Acos(clampUnit(hVec.Z / hVec.Norm()))
	if i < angleEps {
		i = angleEps
	}

	raan := math.Acos(clampUnit(nVec.X / nVec.Norm()))
	if math.IsNaN(raan) {
		raan = angleEps
	}
	if nVec.Y < 0 {
		raan = 2*math.Pi - raan
	}

	argp := math.Acos(clampUnit(nVec.Dot(eVec) / (nVec.Norm() * e)))
	if math.IsNaN(argp) {
		argp = 0
	}
	if eVec.Z < 0 {
		argp = 2*math.Pi - argp
	}

	cosNu := clampUnit(eVec.Dot(sv.R) / (e * r))
	nu := math.Acos(cosNu)
	if math.IsNaN(nu) {
		nu = 0
	}
	if sv.R.Dot(sv.V) < 0 {
		nu = 2*math.Pi - nu
	}

	i = math.Mod(i, 2*math.Pi)
	raan = math.Mod(raan, 2*math.Pi)
	argp = math.Mod(argp, 2*math.Pi)
	nu = math.Mod(nu, 2*math.Pi)

	return ConicElements{A: a, E: e, I: i, RAAN: raan, ArgPeriapsis: argp, TrueAnomaly: nu, Origin: sv.Origin, Frame: sv.Frame, Epoch: sv.Epoch}
}

// clampUnit clamps x to [-1, 1] when it lies outside by less than 1e-9,
// absorbing rounding error before feeding math.Acos, which otherwise
// returns NaN for |x| very slightly above 1. Values further outside, and
// NaN, are returned unchanged.
func clampUnit(x float64) float64 {
	if x > 1 {
		if x < 1+1e-9 {
			return 1
		}
	}
	if x < -1 {
		if x > -1-1e-9 {
			return -1
		}
	}
	return x
}

// orbitEpsilons returns the (distance, eccentricity, angle) tolerances to use
// for comparing orbits about this center body: coarse around the Sun,
// precise elsewhere.
func orbitEpsilons(origin CelestialObject) (float64, float64, float64) {
	if origin.Equals(Sun) {
		return distanceLgEps, eccentricityLgEps, angleLgEps
	}
	return distanceEps, eccentricityEps, angleEps
}

// Equals reports whether two classical element sets describe the same
// orbit, ignoring true anomaly (i.e. the same orbit at possibly different
// points along it).
func (c ConicElements) Equals(o ConicElements) (bool, error) {
	if !c.Origin.Equals(o.Origin) {
		return false, fmt.Errorf("different center body")
	}
	dEps, eEps, aEps := orbitEpsilons(c.Origin)
	if !floats.EqualWithinAbs(c.A, o.A, dEps) {
		return false, fmt.Errorf("semi-major axis differs")
	}
	if !floats.EqualWithinAbs(c.E, o.E, eEps) {
		return false, fmt.Errorf("eccentricity differs")
	}
	if !floats.EqualWithinAbs(c.I, o.I, aEps) {
		return false, fmt.Errorf("inclination differs")
	}
	if !floats.EqualWithinAbs(c.RAAN, o.RAAN, aEps) {
		return false, fmt.Errorf("RAAN differs")
	}
	if c.E >= eEps && !floats.EqualWithinAbs(c.ArgPeriapsis, o.ArgPeriapsis, aEps) {
		return false, fmt.Errorf("argument of periapsis differs")
	}
	return true, nil
}

func (c ConicElements) String() string {
	return fmt.Sprintf("a=%.1f e=%.4f i=%.3f RAAN=%.3f argp=%.3f nu=%.3f",
		c.A, c.E, Rad2deg(c.I), Rad2deg(c.RAAN), Rad2deg(c.ArgPeriapsis), Rad2deg(c.TrueAnomaly))
}

// Radii2ae returns the semi-major axis and eccentricity implied by a pair
// of apoapsis/periapsis radii.
func Radii2ae(rA, rP float64) (a, e float64, err error) {
	if rA < rP {
		return 0, 0, newError("Radii2ae", InvalidArgument, "periapsis radius exceeds apoapsis radius")
	}
	return (rP + rA) / 2, (rA - rP) / (rA + rP), nil
}
