package astrocore

import "math"

// Maneuver is the common interface every concrete maneuver in this
// package implements, mirroring the original toolchain's ManeuverBase:
// a maneuver knows when it's allowed to fire (CanExecute), how much
// delta-v it needs (computed lazily, cached), and how to apply itself to
// a Propagator once fired.
type Maneuver interface {
	// MinimumEpoch returns the earliest epoch this maneuver may execute.
	MinimumEpoch() Instant
	// CanExecute reports whether, given the spacecraft's current state,
	// this maneuver's trigger condition is satisfied.
	CanExecute(current StateVector) bool
	// Execute computes and applies the maneuver's delta-v to the
	// propagator's spacecraft and current state.
	Execute(p *Propagator) error
	// DeltaV returns the last computed delta-v vector, valid after
	// Execute has run once.
	DeltaV() Vector3
}

// maneuverBase factors the bookkeeping every concrete maneuver needs:
// engine selection, fuel burn via Tsiolkovsky's rocket equation, burn
// spreading around the impulsive epoch, and the attitude-hold window.
// Concrete maneuvers embed it and implement CanExecute and Execute.
type maneuverBase struct {
	spacecraft        *Spacecraft
	engines           []*Engine
	minimumEpoch      Instant
	attitudeHoldSpan  Duration
	deltaV            Vector3
	thrustWindow      Window[Instant]
	fuelBurned        float64
}

func newManeuverBase(sc *Spacecraft, engines []*Engine, minEpoch Instant, holdSpan Duration) maneuverBase {
	return maneuverBase{spacecraft: sc, engines: engines, minimumEpoch: minEpoch, attitudeHoldSpan: holdSpan}
}

func (m maneuverBase) MinimumEpoch() Instant { return m.minimumEpoch }
func (m maneuverBase) DeltaV() Vector3        { return m.deltaV }

// tsiolkovskyBurnDuration returns the time needed to deliver dv (m/s) of
// delta-v on a vehicle of the given mass (kg) using the maneuver's
// engines, assuming all engines fire at their nominal thrust together.
func (m *maneuverBase) tsiolkovskyBurnDuration(dv, mass float64) (duration Duration, fuelBurned float64) {
	var totalThrust, totalFlow float64
	for _, e := range m.engines {
		totalThrust += e.Thrust
		totalFlow += e.MassFlowRate()
	}
	if totalThrust <= 0 {
		panic("maneuver has no usable engines")
	}
	// Exhaust velocity-weighted average ISP across engines, mass-flow
	// weighted, for the finite-burn duration via the rocket equation
	// m1 = m0 * exp(-dv/vExh); duration = (m0-m1)/totalFlow.
	vExh := totalThrust / totalFlow
	m1 := mass * math.Exp(-dv/vExh)
	fuelBurned = mass - m1
	seconds := fuelBurned / totalFlow
	return NewDurationFromSeconds(seconds), fuelBurned
}

// spreadThrust centers a zero-duration impulsive delta-v into a finite
// thrust window of the given duration, straddling the impulsive epoch
// symmetrically, in the original toolchain's "SpreadThrust" convention.
func spreadThrust(impulsiveEpoch Instant, duration Duration) Window[Instant] {
	half := NewDurationFromSeconds(duration.Seconds() / 2)
	return NewWindow(impulsiveEpoch.Add(-half), impulsiveEpoch.Add(half))
}

// burnFuel drains fuelBurned kg across the maneuver's engines'
// associated tanks, proportionally to each engine's share of total mass
// flow, returning InsufficientFuel if any tank would go negative.
func (m *maneuverBase) burnFuel(tanks []*FuelTank, fuelBurned float64) error {
	var totalFlow float64
	for _, e := range m.engines {
		totalFlow += e.MassFlowRate()
	}
	for i, e := range m.engines {
		if i >= len(tanks) || tanks[i] == nil {
			continue
		}
		share := fuelBurned * (e.MassFlowRate() / totalFlow)
		if err := tanks[i].Burn(share); err != nil {
			return err
		}
	}
	return nil
}

// applyImpulsiveDeltaV is the common Execute tail: burn fuel for the
// computed delta-v, apply it to the propagator's current velocity, and
// record the thrust window and fuel burned on the maneuverBase.
func (m *maneuverBase) applyImpulsiveDeltaV(p *Propagator, dv Vector3) error {
	current := p.Current()
	mass := m.spacecraft.Mass()
	duration, fuelBurned := m.tsiolkovskyBurnDuration(dv.Norm(), mass)
	m.thrustWindow = spreadThrust(current.Epoch, duration)
	m.fuelBurned = fuelBurned

	var tanks []*FuelTank
	for _, e := range m.engines {
		for _, ft := range m.spacecraft.FuelTanks {
			if ft.Engine == e {
				tanks = append(tanks, ft)
				break
			}
		}
	}
	if err := m.burnFuel(tanks, fuelBurned); err != nil {
		return err
	}

	m.deltaV = dv
	newState := current.State
	newState.V = newState.V.Add(dv)
	p.timeline[len(p.timeline)-1] = TrajectoryPoint{Epoch: current.Epoch, State: newState}
	return nil
}
