package astrocore

import (
	gosatellite "github.com/joshuaferrara/go-satellite"
)

// kmToM converts the km/km-s⁻¹ units go-satellite's SGP4/SDP4 output uses
// into this package's metre/metre-per-second surface.
const kmToM = 1000.0

// TLE is a two-line-element mean-element set, propagated with SGP4/SDP4
// (go-satellite picks whichever the mean motion calls for) rather than the
// two-body Kepler propagator the other OrbitalParameters variants imply.
type TLE struct {
	Name        string
	Line1, Line2 string

	sat     gosatellite.Satellite
	hasSat  bool
}

// NewTLE parses a two-line element set using the gravity model configured
// via ASTROCORE_CONFIG (sgp4.gravity_model), defaulting to WGS84.
func NewTLE(name, line1, line2 string) (TLE, error) {
	gm := gosatellite.GravityWGS84
	switch smdConfig().SGP4GravityModel {
	case "wgs72":
		gm = gosatellite.GravityWGS72
	case "wgs72old":
		gm = gosatellite.GravityWGS72Old
	}
	sat := gosatellite.TLEToSat(line1, line2, gm)
	return TLE{Name: name, Line1: line1, Line2: line2, sat: sat, hasSat: true}, nil
}

// CenterBody implements OrbitalParameters: TLEs always describe
// geocentric orbits.
func (tle TLE) CenterBody() CelestialObject { return Earth }

// ToStateVector propagates the TLE to t via SGP4/SDP4 and bridges the
// resulting TEME state into ICRF using the frame graph's precession/
// sidereal bridge (see frame.go).
func (tle TLE) ToStateVector(t Instant) (StateVector, error) {
	if !tle.hasSat {
		return StateVector{}, newError("TLE.ToStateVector", InvalidArgument, "TLE not initialized via NewTLE")
	}
	utc := t.UTC()
	// gosatellite.Propagate only accepts whole seconds; thread the
	// fractional part through by propagating at the truncated second and
	// advancing the result by the residual using the propagated velocity,
	// rather than silently discarding up to one second of epoch.
	residual := float64(utc.Nanosecond()) / 1e9
	pos, vel := gosatellite.Propagate(tle.sat, utc.Year(), int(utc.Month()), utc.Day(), utc.Hour(), utc.Minute(), utc.Second())

	rTEME := Vector3{pos.X, pos.Y, pos.Z}.Scale(kmToM)
	vTEME := Vector3{vel.X, vel.Y, vel.Z}.Scale(kmToM)
	rTEME = rTEME.Add(vTEME.Scale(residual))

	dcm := TEMEToICRF(t)
	r := MxV33(dcm, rTEME)
	v := MxV33(dcm, vTEME)
	// The DCM rotates the position; the velocity also picks up a Coriolis
	// term from Earth's rotation rate since TEME and ICRF counter-rotate.
	omega := Vector3{Z: earthRotationRate}
	v = v.Add(CoriolisCorrection(omega, r))

	return StateVector{R: r, V: v, Origin: Earth, Frame: ICRF, Epoch: t}, nil
}

// earthRotationRate is Earth's mean sidereal rotation rate, rad/s.
const earthRotationRate = 7.292115146706979e-5
