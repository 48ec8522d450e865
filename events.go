package astrocore

import (
	"math"

	"github.com/astrocore-project/astrocore/event"
)

// secondsPerDay converts between the Instant/Duration domain this package
// works in and the Julian-day domain the event package's search primitives
// expect their step/epsilon parameters in.
const secondsPerDay = 86400.0

func instantToJD(t Instant) float64 { return t.JD() }
func jdToInstant(jd float64, ref Instant) Instant {
	return ref.Add(NewDurationFromSeconds((jd - ref.JD()) * secondsPerDay))
}

// EventWindow is one window during which a geometric condition held.
type EventWindow struct {
	Window[Instant]
}

// DistanceFunc returns a scalar function of time suitable for event
// finding: the distance (metres) between two position providers.
func DistanceFunc(a, b func(Instant) Vector3) func(t Instant) float64 {
	return func(t Instant) float64 {
		return a(t).Sub(b(t)).Norm()
	}
}

// FindDistanceCrossings finds the instants within search at which the
// distance between a and b crosses threshold (metres).
func FindDistanceCrossings(a, b func(Instant) Vector3, threshold float64, search Window[Instant], step Duration) ([]Instant, error) {
	f := func(jd float64) float64 {
		return DistanceFunc(a, b)(jdToInstant(jd, search.Start))
	}
	crossings, err := event.FindCrossings(instantToJD(search.Start), instantToJD(search.End), step.Seconds()/secondsPerDay, f, threshold, 0)
	if err != nil {
		return nil, err
	}
	out := make([]Instant, len(crossings))
	for i, c := range crossings {
		out[i] = jdToInstant(c.T, search.Start)
	}
	return out, nil
}

// IlluminationAngle returns the angle (radians) between the sun direction
// and the local vertical (position direction) of a body-orbiting
// spacecraft, 0 at local noon under the sub-solar point, pi at the
// anti-solar point: the standard measure for a day/night or eclipse
// predicate.
func IlluminationAngle(state func(Instant) StateVector, sunDirection func(Instant) Vector3) func(t Instant) float64 {
	return func(t Instant) float64 {
		sv := state(t)
		cosAngle := sv.R.Unit().Dot(sunDirection(t).Unit())
		return math.Acos(clampUnit(cosAngle))
	}
}

// FindIlluminationWindows finds the windows during which the illumination
// angle is below threshold (daylight) or above it (eclipse/night),
// depending on op (LowerThan for daylight, GreaterThan for night).
func FindIlluminationWindows(angle func(Instant) float64, op event.Operator, threshold float64, search Window[Instant], step Duration) ([]Window[Instant], error) {
	f := func(jd float64) float64 { return angle(jdToInstant(jd, search.Start)) }
	windows, err := event.FindWindows(instantToJD(search.Start), instantToJD(search.End), step.Seconds()/secondsPerDay, f, op, threshold, 0)
	if err != nil {
		return nil, err
	}
	out := make([]Window[Instant], len(windows))
	for i, w := range windows {
		out[i] = NewWindow(jdToInstant(w[0], search.Start), jdToInstant(w[1], search.Start))
	}
	return out, nil
}

// OccultationFraction returns 1 when one disk lies wholly within the other
// (a total occultation, or an annular one where a smaller occluder sits
// inside the occluded disk), 0 when fully visible, and a value in between
// during partial occultation, via the angular-radii overlap test (the
// same geometry a solar-eclipse or Earth-occultation-of-a-star predicate
// needs).
func OccultationFraction(observer, occluder, occluded func(Instant) Vector3, occluderRadius, occludedRadius float64) func(t Instant) float64 {
	return func(t Instant) float64 {
		toOccluder := occluder(t).Sub(observer(t))
		toOccluded := occluded(t).Sub(observer(t))
		dOccluder := toOccluder.Norm()
		dOccluded := toOccluded.Norm()
		if dOccluded <= dOccluder {
			return 0 // occluded object is nearer than the occluder: no occultation
		}
		sepAngle := math.Acos(clampUnit(toOccluder.Unit().Dot(toOccluded.Unit())))
		angRadiusOccluder := math.Asin(clampUnit(occluderRadius / dOccluder))
		angRadiusOccluded := math.Asin(clampUnit(occludedRadius / dOccluded))
		if sepAngle >= angRadiusOccluder+angRadiusOccluded {
			return 0
		}
		if sepAngle <= math.Abs(angRadiusOccluder-angRadiusOccluded) {
			return 1
		}
		// Partial: linear interpolation across the overlap band. A full
		// lune-area computation is unnecessary for a threshold-crossing
		// event finder, which only needs monotonic behavior near the
		// edges of the occultation window.
		full := angRadiusOccluder + angRadiusOccluded
		partial := math.Abs(angRadiusOccluder - angRadiusOccluded)
		return 1 - (sepAngle-partial)/(full-partial)
	}
}

// InFieldOfViewFunc returns a scalar function of time which is 1 when
// target is within instrument's field of view (as seen from a spacecraft
// whose attitude is given by orient) and 0 otherwise, suitable for
// FindCrossings at threshold=0.5.
func InFieldOfViewFunc(ins Instrument, scPos func(Instant) Vector3, orient func(Instant) Quaternion, target func(Instant) Vector3) func(t Instant) float64 {
	return func(t Instant) float64 {
		toTarget := target(t).Sub(scPos(t))
		bodyFrameDir := orient(t).Conjugate().Rotate(toTarget)
		if ins.InFOV(bodyFrameDir) {
			return 1
		}
		return 0
	}
}

// DayNightFunc returns 1.0 when site is in daylight (the sun is above its
// elevation mask) and 0.0 otherwise.
func DayNightFunc(site Site, sunBodyFixed func(Instant) Vector3) func(t Instant) float64 {
	return func(t Instant) float64 {
		if site.Visible(sunBodyFixed(t)) {
			return 1
		}
		return 0
	}
}
