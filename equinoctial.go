package astrocore

import "math"

// EquinoctialElements is the non-singular orbital-element set used for
// near-circular and near-equatorial orbits, where ConicElements' RAAN and
// argument of periapsis become numerically degenerate.
type EquinoctialElements struct {
	P            float64 // semi-latus rectum
	F, G         float64 // eccentricity vector components
	H, K         float64 // inclination vector components
	L            float64 // true longitude, radians
	Retrograde   bool
	Origin       CelestialObject
	Frame        Frame
	Epoch        Instant
}

// CenterBody implements OrbitalParameters.
func (eq EquinoctialElements) CenterBody() CelestialObject { return eq.Origin }

// inclinationSign returns -1 for the retrograde equinoctial formulation,
// +1 otherwise (Vallado's I factor).
func (eq EquinoctialElements) inclinationSign() float64 {
	if eq.Retrograde {
		return -1
	}
	return 1
}

// ToConicElements converts equinoctial elements to classical elements.
func (eq EquinoctialElements) ToConicElements() ConicElements {
	I := eq.inclinationSign()
	a := eq.P / (1 - eq.F*eq.F - eq.G*eq.G)
	e := math.Hypot(eq.F, eq.G)
	raan := math.Atan2(eq.K, eq.H)
	argp := math.Atan2(eq.G*eq.H-I*eq.F*eq.K, eq.F*eq.H+I*eq.G*eq.K)
	i := math.Pi * (1 - I) / 2
	if I > 0 {
		i = 2 * math.Atan(math.Hypot(eq.H, eq.K))
	} else {
		i = math.Pi - 2*math.Atan(math.Hypot(eq.H, eq.K))
	}
	nu := math.Mod(eq.L-I*raan-argp, 2*math.Pi)
	return ConicElements{
		A: a, E: e, I: i, RAAN: math.Mod(raan, 2*math.Pi), ArgPeriapsis: math.Mod(argp, 2*math.Pi),
		TrueAnomaly: math.Mod(nu+2*math.Pi, 2*math.Pi),
		Origin:      eq.Origin, Frame: eq.Frame, Epoch: eq.Epoch,
	}
}

// ToStateVector implements OrbitalParameters by bridging through
// ConicElements, the same conversion path the teacher uses for every
// non-Cartesian representation.
func (eq EquinoctialElements) ToStateVector(t Instant) (StateVector, error) {
	return eq.ToConicElements().ToStateVector(t)
}

// NewEquinoctialElementsFromConic derives equinoctial elements from a
// classical element set.
func NewEquinoctialElementsFromConic(c ConicElements, retrograde bool) EquinoctialElements {
	I := 1.0
	if retrograde {
		I = -1.0
	}
	p := c.SemiParameter()
	f := c.E * math.Cos(c.ArgPeriapsis+I*c.RAAN)
	g := c.E * math.Sin(c.ArgPeriapsis+I*c.RAAN)
	var h, k float64
	if I > 0 {
		h = math.Tan(c.I/2) * math.Cos(c.RAAN)
		k = math.Tan(c.I/2) * math.Sin(c.RAAN)
	} else {
		h = 1/math.Tan(c.I/2) * math.Cos(c.RAAN)
		k = 1/math.Tan(c.I/2) * math.Sin(c.RAAN)
	}
	l := math.Mod(c.ArgPeriapsis+I*c.RAAN+c.TrueAnomaly, 2*math.Pi)
	return EquinoctialElements{P: p, F: f, G: g, H: h, K: k, L: l, Retrograde: retrograde, Origin: c.Origin, Frame: c.Frame, Epoch: c.Epoch}
}
