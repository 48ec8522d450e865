package astrocore

import (
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/meeus/julian"
	"github.com/soniakeys/meeus/planetposition"
	"github.com/soniakeys/meeus/pluto"
)

// AU is one astronomical unit in metres.
const AU = 1.49597870700e11

// CelestialObject defines a celestial body: its gravitational and
// geometric constants, and (for planets) a handle on the VSOP87 series
// used to compute its heliocentric position.
type CelestialObject struct {
	Name   string
	Radius float64
	a      float64 // mean semi-major axis about the Sun, for SOI/energy bookkeeping
	mu     float64
	tilt   float64 // axial tilt, degrees
	incl   float64 // ecliptic inclination, degrees
	SOI    float64 // sphere of influence radius, metres; -1 for the Sun
	J2     float64
	J3     float64
	J4     float64
	pp     *planetposition.V87Planet
}

// GM returns the gravitational parameter mu of this body.
func (c CelestialObject) GM() float64 { return c.mu }

// J returns the zonal harmonic coefficient J_n. Only J2 through J4 are
// modeled; any other n returns 0.
func (c CelestialObject) J(n uint8) float64 {
	switch n {
	case 2:
		return c.J2
	case 3:
		return c.J3
	case 4:
		return c.J4
	default:
		return 0
	}
}

func (c CelestialObject) String() string { return c.Name + " body" }

// Equals reports whether b denotes the same celestial body.
func (c CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.a == b.a && c.mu == b.mu && c.SOI == b.SOI && c.J2 == b.J2
}

// HillSphereRadius returns the Hill-sphere radius of this body about its
// parent (approximated here as the Sun for every planet), the boundary at
// which the propagator's center-of-motion handoff (see forces.go) occurs.
// The Hill sphere is larger than the SOI values tabulated below (for Earth
// about 1.5e9 m against 9.2e8 m); callers that need the SOI specifically
// (patched-conic handoff) should use SOI directly.
func (c CelestialObject) HillSphereRadius(eccentricity float64) float64 {
	if c.Name == "Sun" || c.a <= 0 {
		return math.Inf(1)
	}
	return c.a * (1 - eccentricity) * math.Cbrt(c.mu/(3*Sun.mu))
}

// HelioOrbit returns this body's heliocentric StateVector at t, via the
// VSOP87 series (meeus/planetposition), with Pluto handled by its
// dedicated meeus/pluto series, mirroring the original ephemeris adapter.
func (c *CelestialObject) HelioOrbit(t Instant) StateVector {
	if c.Name == "Sun" {
		return StateVector{R: Vector3{}, V: Vector3{}, Origin: Sun, Frame: EclipticJ2000, Epoch: t}
	}
	jd := t.JD()
	if c.Name == "Pluto" {
		l, b, r := pluto.Heliocentric(jd)
		r *= AU
		return cartesianFromLBR(l.Rad(), b.Rad(), r, c.a)
	}
	if c.pp == nil {
		var vsopPosition int
		switch c.Name {
		case "Venus":
			vsopPosition = 2
		case "Earth":
			vsopPosition = 3
		case "Mars":
			vsopPosition = 4
		case "Jupiter":
			vsopPosition = 5
		case "Saturn":
			vsopPosition = 6
		case "Uranus":
			vsopPosition = 7
		default:
			panic(fmt.Errorf("unknown VSOP87 object: %s", c.Name))
		}
		planet, err := planetposition.LoadPlanetPath(vsopPosition-1, smdConfig().VSOP87Dir)
		if err != nil {
			panic(fmt.Errorf("could not load VSOP87 series for %s: %s", c.Name, err))
		}
		c.pp = planet
	}
	l, b, r := c.pp.Position2000(jd)
	r *= AU
	return cartesianFromLBR(l.Rad(), b.Rad(), r, c.a)
}

// cartesianFromLBR turns VSOP87 ecliptic longitude/latitude/radius into a
// Cartesian StateVector in the ecliptic J2000 frame, deriving the velocity
// direction from the instantaneous orbit-normal rather than differencing
// two ephemeris calls.
func cartesianFromLBR(l, b, r, a float64) StateVector {
	sB, cB := math.Sincos(b)
	sL, cL := math.Sincos(l)
	R := Vector3{r * cB * cL, r * cB * sL, r * sB}
	v := math.Sqrt(2*Sun.mu/r - Sun.mu/a)
	vDir := R.Cross(Vector3{Z: -1}).Unit()
	V := vDir.Scale(v)
	return StateVector{R: R, V: V, Origin: Sun, Frame: EclipticJ2000}
}

// CelestialObjectFromString looks up a body by (case-insensitive) name.
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "earth":
		return Earth, nil
	case "venus":
		return Venus, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	case "saturn":
		return Saturn, nil
	case "uranus":
		return Uranus, nil
	case "pluto":
		return Pluto, nil
	default:
		return CelestialObject{}, newError("CelestialObjectFromString", InvalidArgument, "undefined body %q", name)
	}
}

/* Definitions, values from Vallado's planetary constants table. */

// Sun is the origin body for heliocentric orbits.
//
// Constants below are Vallado's planetary table, converted from the
// kilometre/kilometre-cubed-per-second-squared units in which that table is
// normally quoted into this package's metre/metre-per-second surface
// (distance x1e3, GM x1e9), so every OrbitalParameters/StateVector computed
// against them comes out directly in SI units.
var Sun = CelestialObject{Name: "Sun", Radius: 695700e3, a: -1, mu: 1.32712440017987e20, SOI: -1}

// Venus.
var Venus = CelestialObject{Name: "Venus", Radius: 6051.8e3, a: 108208601e3, mu: 3.24858599e14, tilt: 117.36, incl: 3.39458, SOI: 0.616e9, J2: 0.000027}

// Earth is home.
var Earth = CelestialObject{Name: "Earth", Radius: 6378.1363e3, a: 149598023e3, mu: 3.98600433e14, tilt: 23.4, incl: 0.00005, SOI: 924645.0e3, J2: 1082.6269e-6, J3: -2.5324e-6, J4: -1.6204e-6}

// Mars.
var Mars = CelestialObject{Name: "Mars", Radius: 3396.19e3, a: 227939282.5616e3, mu: 4.28283100e13, tilt: 25.19, incl: 1.85, SOI: 576000e3, J2: 1964e-6, J3: 36e-6, J4: -18e-6}

// Jupiter.
var Jupiter = CelestialObject{Name: "Jupiter", Radius: 71492.0e3, a: 778298361e3, mu: 1.266865361e17, tilt: 3.13, incl: 1.30326966, SOI: 48.2e9, J2: 0.01475, J4: -0.00058}

// Saturn.
var Saturn = CelestialObject{Name: "Saturn", Radius: 60268.0e3, a: 1429394133e3, mu: 3.7931208e16, tilt: 0.93, incl: 2.485, J2: 0.01645, J4: -0.001}

// Uranus.
var Uranus = CelestialObject{Name: "Uranus", Radius: 25559.0e3, a: 2875038615e3, mu: 5.7939513e15, tilt: 1.02, incl: 0.773, J2: 0.012}

// Pluto is not a planet, and its SOI is not well defined.
var Pluto = CelestialObject{Name: "Pluto", Radius: 1151.0e3, a: 5915799000e3, mu: 9.0e11, tilt: 118.0, incl: 17.14216667}
