package astrocore

import "math"

// LaunchWindowOption is one candidate launch opportunity returned by
// SearchLaunchWindows: an epoch, the inertial azimuth the vehicle must fly,
// and a rough delta-v estimate for reaching the target orbit from this site
// (see launchDeltaVEstimate); no guided-ascent cost is computed.
type LaunchWindowOption struct {
	Epoch           Instant
	InertialAzimuth float64 // radians
	DeltaV          float64 // metres/second, rough order-of-magnitude cost estimate
}

// SearchLaunchWindows scans [search.Start, search.End] at the given step,
// grounded on Maneuvers/LaunchWindow.cpp, and returns every step epoch at
// which launchAzimuthAt finds a feasible azimuth. That test depends only on
// the site's latitude and the target's inclination; whether the site lies
// in the target's orbital plane at the epoch is not checked, so either
// every step epoch is returned or none is.
func SearchLaunchWindows(site Site, target ConicElements, search Window[Instant], step Duration) []LaunchWindowOption {
	var opts []LaunchWindowOption
	for t := search.Start; !t.After(search.End); t = t.Add(step) {
		az, ok := launchAzimuthAt(site, target, t)
		if !ok {
			continue
		}
		dv := launchDeltaVEstimate(site, target, az)
		opts = append(opts, LaunchWindowOption{Epoch: t, InertialAzimuth: az, DeltaV: dv})
	}
	return opts
}

// launchAzimuthAt solves the spherical-trigonometry relation between a
// site's latitude, a target orbit's inclination, and the achievable
// inertial launch azimuth: sin(az) = cos(i)/cos(lat). No real solution
// exists when the site's latitude exceeds the target inclination (the
// site can never pass under a lower-inclination plane without a plane
// change), which this function reports via ok=false.
func launchAzimuthAt(site Site, target ConicElements, t Instant) (azimuth float64, ok bool) {
	cosI := math.Cos(target.I)
	cosLat := math.Cos(site.LatGeodetic)
	if cosLat < 1e-9 {
		return 0, false
	}
	sinAz := cosI / cosLat
	if sinAz > 1 || sinAz < -1 {
		return 0, false
	}
	return math.Asin(sinAz), true
}

// launchDeltaVEstimate returns a rough delta-v budget for reaching the
// target orbit's insertion speed from a standing start at the site,
// crediting the component of the site's own inertial velocity along the
// launch azimuth (the Earth-rotation assist the original's Launch
// maneuver computes via powered explicit guidance in full; here reduced
// to the vis-viva insertion speed less that assist, which is the
// dominant term).
func launchDeltaVEstimate(site Site, target ConicElements, azimuth float64) float64 {
	mu := target.Origin.GM()
	rInsertion := target.Periapsis()
	vInsertion := math.Sqrt(mu * (2/rInsertion - 1/target.A))

	siteSpeed := site.InertialVelocity().Norm()
	sinAz, _ := math.Sincos(azimuth)
	assist := siteSpeed * sinAz

	dv := vInsertion - assist
	if dv < 0 {
		dv = 0
	}
	return dv
}
