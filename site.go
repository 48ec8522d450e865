package astrocore

import (
	"fmt"
	"math"
)

// earthFlattening and earthEquatorialRadius are the WGS84 ellipsoid
// constants used to convert geodetic coordinates to body-fixed Cartesian.
const (
	earthFlattening       = 1 / 298.257223563
	earthEquatorialRadius = 6378137 // metres
)

// Site is a fixed ground location: a launch or tracking site, adapted
// from the teacher's Station but dropping the Kalman-filter measurement-
// noise fields, which only served orbit determination (out of scope).
type Site struct {
	Name          string
	LatGeodetic   float64 // radians
	Lon           float64 // radians
	Altitude      float64 // metres
	ElevationMask float64 // radians; below this elevation a target is not trackable/launchable
	Body          CelestialObject

	rBodyFixed Vector3
}

// NewSite builds a Site from geodetic coordinates in degrees and an
// altitude in metres.
func NewSite(name string, latDeg, lonDeg, altitude, elevationMaskDeg float64, body CelestialObject) Site {
	lat := latDeg * deg2rad
	lon := lonDeg * deg2rad
	s := Site{Name: name, LatGeodetic: lat, Lon: lon, Altitude: altitude, ElevationMask: elevationMaskDeg * deg2rad, Body: body}
	s.rBodyFixed = geodeticToECEF(lat, lon, altitude)
	return s
}

// geodeticToECEF converts WGS84 geodetic coordinates (radians, radians,
// metres) to a body-fixed Cartesian position.
func geodeticToECEF(lat, lon, alt float64) Vector3 {
	e2 := earthFlattening * (2 - earthFlattening)
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)
	n := earthEquatorialRadius / math.Sqrt(1-e2*sinLat*sinLat)
	return Vector3{
		X: (n + alt) * cosLat * cosLon,
		Y: (n + alt) * cosLat * sinLon,
		Z: (n*(1-e2) + alt) * sinLat,
	}
}

// RangeElevationAzimuth returns the slant range (metres), elevation, and
// azimuth (radians) from this site to a body-fixed target position.
func (s Site) RangeElevationAzimuth(targetBodyFixed Vector3) (rangeM, elevation, azimuth float64) {
	rho := targetBodyFixed.Sub(s.rBodyFixed)
	rangeM = rho.Norm()
	sez := MxV33(R2(math.Pi/2-s.LatGeodetic), MxV33(R3(s.Lon), rho))
	elevation = math.Asin(sez.Z / rangeM)
	azimuth = math.Mod(2*math.Pi+math.Atan2(sez.Y, -sez.X), 2*math.Pi)
	return
}

// Visible reports whether a body-fixed target position is above this
// site's elevation mask, used by the by-day/by-night event predicate
// (DayNightFunc).
func (s Site) Visible(targetBodyFixed Vector3) bool {
	_, el, _ := s.RangeElevationAzimuth(targetBodyFixed)
	return el >= s.ElevationMask
}

// InertialVelocity returns the site's velocity due to the body's rotation,
// expressed in the same body-fixed frame as rBodyFixed (i.e. it's the
// velocity an inertial observer would see, expressed with body-fixed
// axes) — used by the Launch maneuver's inertial-azimuth computation.
func (s Site) InertialVelocity() Vector3 {
	omega := Vector3{Z: earthRotationRate}
	return omega.Cross(s.rBodyFixed)
}

func (s Site) String() string {
	return fmt.Sprintf("%s (lat=%.4f lon=%.4f alt=%.1fm)", s.Name, Rad2deg(s.LatGeodetic), Rad2deg(s.Lon), s.Altitude)
}
