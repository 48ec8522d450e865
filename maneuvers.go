package astrocore

import "math"

// ApsisHeightChangeManeuver raises or lowers one apsis (periapsis or
// apoapsis) of an orbit to a target radius via a single impulsive burn
// at the opposite apsis, the Hohmann-transfer half this package's
// Hohmann() helper (tools.go) cross-checks.
type ApsisHeightChangeManeuver struct {
	maneuverBase
	TargetRadius float64 // metres
	AtPeriapsis  bool    // true: burn at periapsis to change apoapsis; false: the reverse
}

// NewApsisHeightChangeManeuver builds a maneuver that changes the
// non-burn apsis of the spacecraft's current orbit to targetRadius.
func NewApsisHeightChangeManeuver(sc *Spacecraft, engines []*Engine, minEpoch Instant, targetRadius float64, atPeriapsis bool) *ApsisHeightChangeManeuver {
	return &ApsisHeightChangeManeuver{
		maneuverBase: newManeuverBase(sc, engines, minEpoch, 0),
		TargetRadius: targetRadius,
		AtPeriapsis:  atPeriapsis,
	}
}

// CanExecute reports whether the spacecraft is at the burn apsis (true
// anomaly near 0 for periapsis, near pi for apoapsis), within the
// orbit's own angle tolerance.
func (m *ApsisHeightChangeManeuver) CanExecute(current StateVector) bool {
	coe := NewConicElementsFromStateVector(current)
	_, _, angleTol := orbitEpsilons(current.Origin)
	if m.AtPeriapsis {
		return math.Abs(coe.TrueAnomaly) < angleTol || math.Abs(coe.TrueAnomaly-2*math.Pi) < angleTol
	}
	return math.Abs(coe.TrueAnomaly-math.Pi) < angleTol
}

// Execute computes the tangential impulsive delta-v via the vis-viva
// equation and applies it.
func (m *ApsisHeightChangeManeuver) Execute(p *Propagator) error {
	current := p.Current().State
	mu := current.Origin.GM()
	coe := NewConicElementsFromStateVector(current)

	rBurn := coe.Apoapsis()
	if m.AtPeriapsis {
		rBurn = coe.Periapsis()
	}
	vCurrent := math.Sqrt(mu * (2/rBurn - 1/coe.A))
	// The post-burn speed at rBurn is exactly the departure speed of a
	// Hohmann transfer from rBurn to TargetRadius.
	vTarget, _, _ := Hohmann(rBurn, m.TargetRadius, current.Origin)

	dvMag := vTarget - vCurrent
	dir := current.V.Unit()
	return m.applyImpulsiveDeltaV(p, dir.Scale(dvMag))
}

// PlaneChangeManeuver rotates the orbital plane (inclination and/or RAAN)
// via a single impulsive burn at the orbital node where the plane change
// is cheapest (or, for a pure inclination change, at either node).
type PlaneChangeManeuver struct {
	maneuverBase
	TargetInclination float64
	TargetRAAN        float64
}

// NewPlaneChangeManeuver builds a maneuver that rotates the current
// orbit's plane to the target inclination/RAAN.
func NewPlaneChangeManeuver(sc *Spacecraft, engines []*Engine, minEpoch Instant, targetInclination, targetRAAN float64) *PlaneChangeManeuver {
	return &PlaneChangeManeuver{
		maneuverBase:      newManeuverBase(sc, engines, minEpoch, 0),
		TargetInclination: targetInclination,
		TargetRAAN:        targetRAAN,
	}
}

// CanExecute reports whether the spacecraft is at (within tolerance) one
// of the two orbital nodes, where a pure plane-change burn is cheapest.
func (m *PlaneChangeManeuver) CanExecute(current StateVector) bool {
	coe := NewConicElementsFromStateVector(current)
	_, _, angleTol := orbitEpsilons(current.Origin)
	u := math.Mod(coe.ArgPeriapsis+coe.TrueAnomaly, 2*math.Pi)
	return math.Abs(u) < angleTol || math.Abs(u-math.Pi) < angleTol
}

// Execute computes the plane-rotation delta-v via the classical
// cos(theta) = cos(i1)cos(i2) + sin(i1)sin(i2)cos(dRAAN) dihedral angle
// formula and the constant-speed approximation 2*v*sin(theta/2).
func (m *PlaneChangeManeuver) Execute(p *Propagator) error {
	current := p.Current().State
	coe := NewConicElementsFromStateVector(current)
	dRAAN := m.TargetRAAN - coe.RAAN
	cosTheta := math.Cos(coe.I)*math.Cos(m.TargetInclination) + math.Sin(coe.I)*math.Sin(m.TargetInclination)*math.Cos(dRAAN)
	theta := math.Acos(clampUnit(cosTheta))

	v := current.V.Norm()
	dvMag := 2 * v * math.Sin(theta/2)

	// Direction: rotate the velocity unit vector about the node-crossing
	// radius vector by theta, towards the target plane.
	vHat := current.V.Unit()
	axis := current.R.Unit()
	rotated := NewQuaternionFromAxisAngle(axis, theta).Rotate(vHat)
	dv := rotated.Sub(vHat).Unit().Scale(dvMag)
	return m.applyImpulsiveDeltaV(p, dv)
}

// CombinedApsisPlaneManeuver performs an apsis-height change and a plane
// change in a single burn, which costs less delta-v than the two
// maneuvers performed separately whenever both are needed at the same
// node.
type CombinedApsisPlaneManeuver struct {
	maneuverBase
	TargetRadius      float64
	AtPeriapsis       bool
	TargetInclination float64
	TargetRAAN        float64
}

// NewCombinedApsisPlaneManeuver builds a combined apsis-height/plane-change
// maneuver.
func NewCombinedApsisPlaneManeuver(sc *Spacecraft, engines []*Engine, minEpoch Instant, targetRadius float64, atPeriapsis bool, targetInclination, targetRAAN float64) *CombinedApsisPlaneManeuver {
	return &CombinedApsisPlaneManeuver{
		maneuverBase:      newManeuverBase(sc, engines, minEpoch, 0),
		TargetRadius:      targetRadius,
		AtPeriapsis:       atPeriapsis,
		TargetInclination: targetInclination,
		TargetRAAN:        targetRAAN,
	}
}

// CanExecute delegates to the same node-crossing test as
// PlaneChangeManeuver, since a combined burn must also occur at a node.
func (m *CombinedApsisPlaneManeuver) CanExecute(current StateVector) bool {
	pc := &PlaneChangeManeuver{maneuverBase: m.maneuverBase, TargetInclination: m.TargetInclination, TargetRAAN: m.TargetRAAN}
	return pc.CanExecute(current)
}

// Execute composes the apsis-height delta-v (tangential) and the plane
// rotation delta-v (normal-ish) via the law of cosines on the resulting
// velocity triangle, rather than simply summing the two component
// maneuvers' vectors, which would double-count the speed change.
func (m *CombinedApsisPlaneManeuver) Execute(p *Propagator) error {
	current := p.Current().State
	mu := current.Origin.GM()
	coe := NewConicElementsFromStateVector(current)

	rBurn := coe.Periapsis()
	if !m.AtPeriapsis {
		rBurn = coe.Apoapsis()
	}
	vCurrent := math.Sqrt(mu * (2/rBurn - 1/coe.A))
	newA := (rBurn + m.TargetRadius) / 2
	vTarget := math.Sqrt(mu * (2/rBurn - 1/newA))

	dRAAN := m.TargetRAAN - coe.RAAN
	cosTheta := math.Cos(coe.I)*math.Cos(m.TargetInclination) + math.Sin(coe.I)*math.Sin(m.TargetInclination)*math.Cos(dRAAN)
	theta := math.Acos(clampUnit(cosTheta))

	dvMag := math.Sqrt(vCurrent*vCurrent + vTarget*vTarget - 2*vCurrent*vTarget*math.Cos(theta))

	dir := current.V.Unit()
	rotatedDir := NewQuaternionFromAxisAngle(current.R.Unit(), theta).Rotate(dir)
	return m.applyImpulsiveDeltaV(p, rotatedDir.Sub(dir).Unit().Scale(dvMag))
}

// PhasingManeuver performs a same-orbit phasing transfer: a two-burn
// Hohmann-like loop that changes the spacecraft's position along its
// orbit (its mean anomaly / true longitude) without changing the orbit's
// shape, by temporarily raising or lowering the opposite apsis for a
// whole number of phasing-loop periods.
type PhasingManeuver struct {
	maneuverBase
	PhaseAngle  float64 // radians to advance (positive) or retreat (negative)
	NumOrbits   int     // number of phasing loops before returning to the original orbit
}

// NewPhasingManeuver builds a phasing maneuver targeting the given phase
// angle change over numOrbits phasing loops.
func NewPhasingManeuver(sc *Spacecraft, engines []*Engine, minEpoch Instant, phaseAngle float64, numOrbits int) *PhasingManeuver {
	if numOrbits < 1 {
		panic("PhasingManeuver requires at least one phasing loop")
	}
	return &PhasingManeuver{maneuverBase: newManeuverBase(sc, engines, minEpoch, 0), PhaseAngle: phaseAngle, NumOrbits: numOrbits}
}

// CanExecute reports whether the spacecraft is at periapsis, where this
// maneuver initiates its phasing loop.
func (m *PhasingManeuver) CanExecute(current StateVector) bool {
	coe := NewConicElementsFromStateVector(current)
	_, _, angleTol := orbitEpsilons(current.Origin)
	return math.Abs(coe.TrueAnomaly) < angleTol || math.Abs(coe.TrueAnomaly-2*math.Pi) < angleTol
}

// Execute computes the phasing-loop semi-major axis from Kepler's third
// law (the loop's period must differ from the original orbit's period by
// exactly PhaseAngle/2pi of a period, spread over NumOrbits loops) and
// burns to enter it; the caller is expected to schedule a second,
// symmetric burn NumOrbits periods later to rejoin the original orbit
// (not modeled here, since this maneuver only computes the first burn of
// the pair, matching how ApsisHeightChangeManeuver only computes one
// apsis raise at a time).
func (m *PhasingManeuver) Execute(p *Propagator) error {
	current := p.Current().State
	mu := current.Origin.GM()
	coe := NewConicElementsFromStateVector(current)
	period := coe.Period().Seconds()

	deltaPeriod := (m.PhaseAngle / (2 * math.Pi)) * period / float64(m.NumOrbits)
	phasingPeriod := period + deltaPeriod
	phasingA := math.Cbrt(mu * math.Pow(phasingPeriod/(2*math.Pi), 2))

	rPeri := coe.Periapsis()
	vCurrent := math.Sqrt(mu * (2/rPeri - 1/coe.A))
	vPhasing := math.Sqrt(mu * (2/rPeri - 1/phasingA))

	dir := current.V.Unit()
	return m.applyImpulsiveDeltaV(p, dir.Scale(vPhasing-vCurrent))
}

// AttitudeManeuver is a zero-delta-v, orientation-only maneuver: it holds
// the spacecraft in a prescribed attitude (prograde, toward a target body,
// or pointing an instrument boresight at a target) for a fixed window
// rather than firing an engine.
type AttitudeManeuver struct {
	maneuverBase
	Orient      func(current StateVector) Quaternion
	Hold        Duration
	Orientation Quaternion // set by Execute; the attitude held for Hold
}

// NewProgradeAttitudeManeuver holds the spacecraft's reference "front"
// axis (see Spacecraft.Front) aligned with its velocity vector.
func NewProgradeAttitudeManeuver(sc *Spacecraft, minEpoch Instant, hold Duration) *AttitudeManeuver {
	return &AttitudeManeuver{
		maneuverBase: newManeuverBase(sc, nil, minEpoch, hold),
		Hold:         hold,
		Orient: func(current StateVector) Quaternion {
			return sc.Front().To(current.V.Unit())
		},
	}
}

// NewTowardObjectAttitudeManeuver holds the spacecraft oriented towards a
// target position, as supplied by target (evaluated at execution time).
func NewTowardObjectAttitudeManeuver(sc *Spacecraft, minEpoch Instant, hold Duration, target func(t Instant) Vector3) *AttitudeManeuver {
	return &AttitudeManeuver{
		maneuverBase: newManeuverBase(sc, nil, minEpoch, hold),
		Hold:         hold,
		Orient: func(current StateVector) Quaternion {
			dir := target(current.Epoch).Sub(current.R).Unit()
			return sc.Front().To(dir)
		},
	}
}

// NewZenithAttitudeManeuver holds the spacecraft's reference "top" axis
// (see Spacecraft.Top) aligned with the local vertical, i.e. pointed away
// from the center body (zenith-pointing, as opposed to nadir-pointing
// instrument attitudes, which point Bottom at the center body instead).
func NewZenithAttitudeManeuver(sc *Spacecraft, minEpoch Instant, hold Duration) *AttitudeManeuver {
	return &AttitudeManeuver{
		maneuverBase: newManeuverBase(sc, nil, minEpoch, hold),
		Hold:         hold,
		Orient: func(current StateVector) Quaternion {
			return sc.Top().To(current.R.Unit())
		},
	}
}

// NewInstrumentPointingAttitudeManeuver holds the spacecraft oriented so
// that ins's boresight tracks a target position, as supplied by target
// (evaluated at execution time); unlike NewTowardObjectAttitudeManeuver,
// the reference axis rotated onto the target direction is the
// instrument's own boresight rather than the spacecraft's front axis, so
// instruments mounted off the front axis still track correctly.
func NewInstrumentPointingAttitudeManeuver(sc *Spacecraft, ins *Instrument, minEpoch Instant, hold Duration, target func(t Instant) Vector3) *AttitudeManeuver {
	return &AttitudeManeuver{
		maneuverBase: newManeuverBase(sc, nil, minEpoch, hold),
		Hold:         hold,
		Orient: func(current StateVector) Quaternion {
			dir := target(current.Epoch).Sub(current.R).Unit()
			return ins.Boresight.Unit().To(dir)
		},
	}
}

// CanExecute always reports true once MinimumEpoch has passed: an
// attitude hold has no geometric trigger condition of its own.
func (m *AttitudeManeuver) CanExecute(current StateVector) bool {
	return true
}

// Execute computes and records the orientation quaternion for the hold
// window; it never changes velocity, so DeltaV is always the zero vector.
func (m *AttitudeManeuver) Execute(p *Propagator) error {
	current := p.Current()
	m.thrustWindow = NewWindow(current.Epoch, current.Epoch.Add(m.Hold))
	m.Orientation = m.Orient(current.State)
	m.deltaV = Vector3{}
	return nil
}
