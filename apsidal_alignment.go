package astrocore

import "math"

// intersectDetectionTolerance bounds how far the acos argument in
// trueAnomaliesAtIntersection may lie outside [-1, 1] before the orbits are
// reported as not intersecting, and how close to +/-1 it must be to count
// as a tangent intersection; mirrors the original toolchain's
// IntersectDetectionAccuraccy constant.
const intersectDetectionTolerance = 1e-6

// ApsidalAlignmentManeuver rotates the current orbit's line of apsides to
// match a target orbit's, burning at whichever of the two orbit/orbit
// intersection points (conventionally named P and Q) the spacecraft
// reaches first. Grounded on Maneuvers/ApsidalAlignmentManeuver.cpp.
type ApsidalAlignmentManeuver struct {
	maneuverBase
	Target ConicElements

	// computed lazily by compute(), cached for CanExecute/Execute to share.
	computed   bool
	burnNu     float64 // true anomaly (on the current orbit) at the chosen burn point
	targetNu   float64 // true anomaly (on the target orbit) at the same point
	tangent    bool    // true when the two orbits have a single (repeated) intersection
}

// NewApsidalAlignmentManeuver builds a maneuver that rotates the current
// orbit's apsidal line onto target's.
func NewApsidalAlignmentManeuver(sc *Spacecraft, engines []*Engine, minEpoch Instant, target ConicElements) *ApsidalAlignmentManeuver {
	return &ApsidalAlignmentManeuver{maneuverBase: newManeuverBase(sc, engines, minEpoch, 0), Target: target}
}

// theta returns the angle between the two orbits' periapsis directions,
// i.e. the difference of their arguments of periapsis when both are
// expressed in a common equatorial reference (GetTheta in the original).
func (m *ApsidalAlignmentManeuver) theta(current ConicElements) float64 {
	return current.ArgPeriapsis - m.Target.ArgPeriapsis
}

// coefficients returns the A, B, C, alpha terms of the original's
// GetCoefficients: h1, h2 are the specific angular momenta of the current
// and target orbits; e1, e2 their eccentricities.
func (m *ApsidalAlignmentManeuver) coefficients(current ConicElements) (a, b, c, alpha float64) {
	mu := current.Origin.GM()
	h1 := math.Sqrt(mu * current.SemiParameter())
	h2 := math.Sqrt(mu * m.Target.SemiParameter())
	theta := m.theta(current)
	sinT, cosT := math.Sincos(theta)
	a = h2*h2*current.E - h1*h1*m.Target.E*cosT
	b = -h1 * h1 * m.Target.E * sinT
	c = h1*h1 - h2*h2
	alpha = math.Atan2(b, a)
	return
}

// trueAnomaliesAtIntersection solves the original's GetPTrueAnomaly/
// GetQTrueAnomaly pair: nu = alpha +/- acos((C/A)*cos(alpha)), wrapping
// negative results by +2*pi, and reporting NoOrbitIntersection when the
// acos argument falls outside [-1, 1] beyond tolerance (no real root: the
// orbits do not intersect). When the argument is within tolerance of
// +/-1 exactly, the two roots coincide — the tangent-orbit case this
// module's Open Question resolves (see apsidal_alignment.go doc comment
// on ApsidalAlignmentManeuver and DESIGN.md).
func (m *ApsidalAlignmentManeuver) trueAnomaliesAtIntersection(current ConicElements) (nuP, nuQ float64, tangent bool, err error) {
	a, _, c, alpha := m.coefficients(current)
	if a == 0 {
		return 0, 0, false, newError("ApsidalAlignmentManeuver", NoOrbitIntersection, "apsidal alignment requires orbit intersection")
	}
	arg := (c / a) * math.Cos(alpha)
	if arg > 1+intersectDetectionTolerance || arg < -1-intersectDetectionTolerance {
		return 0, 0, false, newError("ApsidalAlignmentManeuver", NoOrbitIntersection, "apsidal alignment requires orbit intersection")
	}
	tangent = math.Abs(math.Abs(arg)-1) <= intersectDetectionTolerance
	arg = math.Max(-1, math.Min(1, arg))
	delta := math.Acos(arg)

	nuP = alpha + delta
	nuQ = alpha - delta
	if nuP < 0 {
		nuP += 2 * math.Pi
	}
	if nuQ < 0 {
		nuQ += 2 * math.Pi
	}
	return nuP, nuQ, tangent, nil
}

// compute resolves, against the spacecraft's current orbit, which
// intersection point (P or Q) the burn will occur at: whichever the
// spacecraft reaches first travelling forward in true anomaly from its
// present position. This is the concrete behavior this module supplies
// for CanExecute, where the original leaves the method body empty (see
// DESIGN.md): rather than leaving the trigger condition unimplemented,
// the choice of burn point is pinned down once, here, and CanExecute
// below just polls whether that point has been reached.
func (m *ApsidalAlignmentManeuver) compute(current ConicElements) error {
	if m.computed {
		return nil
	}
	nuP, nuQ, tangent, err := m.trueAnomaliesAtIntersection(current)
	if err != nil {
		return err
	}
	theta := m.theta(current)

	forwardDistance := func(nu float64) float64 {
		d := nu - current.TrueAnomaly
		if d < 0 {
			d += 2 * math.Pi
		}
		return d
	}

	if tangent || forwardDistance(nuP) <= forwardDistance(nuQ) {
		m.burnNu = nuP
		m.targetNu = nuP - theta
	} else {
		m.burnNu = nuQ
		m.targetNu = nuQ - theta
	}
	if m.targetNu < 0 {
		m.targetNu += 2 * math.Pi
	}
	m.tangent = tangent
	m.computed = true
	return nil
}

// CanExecute reports whether the spacecraft has reached the burn point
// selected by compute, within the orbit's angular tolerance.
func (m *ApsidalAlignmentManeuver) CanExecute(current StateVector) bool {
	coe := NewConicElementsFromStateVector(current)
	if err := m.compute(coe); err != nil {
		return false
	}
	_, _, angleTol := orbitEpsilons(current.Origin)
	return math.Abs(coe.TrueAnomaly-m.burnNu) < angleTol
}

// Execute computes the delta-v that rotates the velocity from the current
// orbit's velocity at the burn point to the target orbit's velocity at
// the corresponding point, both evaluated via vis-viva plus flight-path
// angle, and applies it.
func (m *ApsidalAlignmentManeuver) Execute(p *Propagator) error {
	current := p.Current().State
	coe := NewConicElementsFromStateVector(current)
	if err := m.compute(coe); err != nil {
		return err
	}

	atBurn := coe
	atBurn.TrueAnomaly = m.burnNu
	svBefore, err := atBurn.ToStateVector(current.Epoch)
	if err != nil {
		return err
	}

	atTarget := m.Target
	atTarget.TrueAnomaly = m.targetNu
	svAfter, err := atTarget.ToStateVector(current.Epoch)
	if err != nil {
		return err
	}

	dv := svAfter.V.Sub(svBefore.V)
	return m.applyImpulsiveDeltaV(p, dv)
}
