package astrocore

import (
	"math"

	"github.com/soniakeys/meeus/nutation"
	"github.com/soniakeys/meeus/sidereal"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/mat"
)

// Frame identifies a reference frame by name. Two frames are the same frame
// iff their names compare equal; the zero value is not a valid Frame.
type Frame struct {
	Name string
}

// Inertial frames fixed for the lifetime of the process.
var (
	ICRF        = Frame{"ICRF"}        // International Celestial Reference Frame, this package's root frame.
	EclipticJ2000 = Frame{"ECLIPJ2000"} // Mean ecliptic and equinox of J2000.0
	Galactic    = Frame{"GALACTIC"}     // Galactic coordinate frame.
)

// BodyFixedFrame returns the (rotating) body-fixed frame name for a
// celestial body, in the "IAU_<Name>" convention the original toolchain
// uses for its body-fixed kernels.
func BodyFixedFrame(body CelestialObject) Frame {
	return Frame{"IAU_" + body.Name}
}

// TEME is the True Equator Mean Equinox frame SGP4/SDP4 propagates in; it
// must be bridged into ICRF via precession-nutation and sidereal rotation
// before being combined with states computed in any other frame.
var TEME = Frame{"TEME"}

// eclipticObliquityJ2000 is the mean obliquity of the ecliptic at J2000.0,
// IAU 1980 value, in radians.
const eclipticObliquityJ2000 = 23.439291111 * deg2rad

// EclipticToEquatorial returns the DCM rotating a vector from
// EclipticJ2000 into ICRF (mean equatorial J2000).
func EclipticToEquatorial() *mat.Dense {
	return R1(-eclipticObliquityJ2000)
}

// EquatorialToEcliptic returns the DCM rotating a vector from ICRF into
// EclipticJ2000.
func EquatorialToEcliptic() *mat.Dense {
	return R1(eclipticObliquityJ2000)
}

// precessionNutationAngles returns the IAU 2006 nutation in longitude and
// obliquity (dPsi, dEpsilon) plus the mean obliquity, at the given epoch,
// delegating the series evaluation to meeus/nutation the way the teacher
// delegates planetary position to meeus/planetposition.
func precessionNutationAngles(t Instant) (dPsi, dEps, meanEps unit.Angle) {
	jd := t.JD()
	dPsi, dEps = nutation.Nutation(jd)
	meanEps = nutation.MeanObliquity(jd)
	return
}

// gmst returns the Greenwich Mean Sidereal Time at the given epoch as an
// angle, via meeus/sidereal.
func gmst(t Instant) unit.Angle {
	return sidereal.Mean(t.JD()).Angle()
}

// TEMEToICRF returns the DCM that rotates a vector expressed in TEME at
// epoch t into ICRF, composing Greenwich sidereal rotation with the IAU
// nutation/precession correction. This is the bridge spec's frame graph
// requires to combine an SGP4-propagated TLE state with anything else.
func TEMEToICRF(t Instant) *mat.Dense {
	dPsi, dEps, meanEps := precessionNutationAngles(t)
	trueEps := meanEps + dEps
	// Equation of the equinoxes: the correction from mean to apparent
	// sidereal time due to nutation in longitude.
	eqEq := dPsi.Rad() * math.Cos(trueEps.Rad())
	gast := gmst(t).Rad() + eqEq

	// TEME is true-equator-mean-equinox: the equinox still needs the
	// equation-of-the-equinoxes correction to reach the true (apparent)
	// equinox before the Earth-fixed rotation is removed, so the bridge
	// rotates by the apparent sidereal angle GAST, not plain GMST.
	return R3(-gast)
}

// PolarMotion returns the small-angle DCM correcting for polar motion
// (xp, yp in radians) between the terrestrial frame SGP4 nominally uses
// and a true Earth-fixed frame. Most callers may pass xp=yp=0: without an
// external Earth-orientation-parameter feed this library cannot source
// live polar motion, and the rotation it corrects for is sub-arcsecond.
func PolarMotion(xp, yp float64) *mat.Dense {
	m := mat.NewDense(3, 3, nil)
	m.Mul(R2(-xp), R1(-yp))
	return m
}

// CoriolisCorrection returns the velocity correction omega x r that is
// added when carrying a velocity from a frame rotating at omega into a
// non-rotating one (as TLE.ToStateVector does for TEME); the reverse
// direction subtracts it. omega is the body's rotation rate vector
// expressed in the same frame as r.
func CoriolisCorrection(omega, r Vector3) Vector3 {
	return omega.Cross(r)
}
