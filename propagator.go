package astrocore

import (
	"sort"

	"github.com/astrocore-project/astrocore/integrator"
)

// TrajectoryPoint is one sample of a Propagator's recorded trajectory.
type TrajectoryPoint struct {
	Epoch Instant
	State StateVector
}

// Propagator advances a Spacecraft's StateVector under a GravityForce,
// recording the trajectory timeline so maneuvers and the event finder can
// both look backward in it. It supports rewinding the timeline to an
// earlier epoch and resuming from there, the way a maneuver search or an
// event bisection needs to re-run a span of propagation without
// re-running everything before it.
type Propagator struct {
	Spacecraft *Spacecraft
	Force      *GravityForce
	StepSize   Duration

	timeline []TrajectoryPoint
	pending  []Maneuver
}

// NewPropagator builds a Propagator seeded with an initial state.
func NewPropagator(sc *Spacecraft, force *GravityForce, step Duration, initial StateVector) *Propagator {
	return &Propagator{
		Spacecraft: sc,
		Force:      force,
		StepSize:   step,
		timeline:   []TrajectoryPoint{{Epoch: initial.Epoch, State: initial}},
	}
}

// ScheduleManeuver adds a maneuver to the propagator's queue, in
// chronological order. Returns OutOfOrderManeuver if its minimum epoch
// precedes the last point currently in the timeline, since a maneuver
// cannot retroactively fire into trajectory already propagated.
func (p *Propagator) ScheduleManeuver(m Maneuver) error {
	last := p.timeline[len(p.timeline)-1]
	if m.MinimumEpoch().Before(last.Epoch) {
		return newError("Propagator.ScheduleManeuver", OutOfOrderManeuver, "maneuver minimum epoch %s precedes current trajectory epoch %s", m.MinimumEpoch(), last.Epoch)
	}
	p.pending = append(p.pending, m)
	sort.Slice(p.pending, func(i, j int) bool { return p.pending[i].MinimumEpoch().Before(p.pending[j].MinimumEpoch()) })
	return nil
}

// Current returns the last recorded TrajectoryPoint.
func (p *Propagator) Current() TrajectoryPoint {
	return p.timeline[len(p.timeline)-1]
}

// Timeline returns the full recorded trajectory so far.
func (p *Propagator) Timeline() []TrajectoryPoint {
	return p.timeline
}

// RewindTo truncates the recorded timeline back to (and including) the
// last point at or before t, discarding everything after. Any pending
// maneuvers with a minimum epoch after the new head are left queued; any
// already-applied maneuvers whose epoch is now after the rewound head are
// NOT automatically reverted onto the spacecraft (fuel burned stays
// burned) — callers that need to undo a maneuver's fuel consumption must
// do so themselves, since only the trajectory vectors, not mission state,
// are what "rewind" describes here.
func (p *Propagator) RewindTo(t Instant) error {
	idx := -1
	for i, pt := range p.timeline {
		if !pt.Epoch.After(t) {
			idx = i
		} else {
			break
		}
	}
	if idx < 0 {
		return newError("Propagator.RewindTo", EpochOutOfCoverage, "epoch %s precedes recorded timeline", t)
	}
	p.timeline = p.timeline[:idx+1]
	return nil
}

// PropagateTo advances the trajectory from its current head to the target
// epoch, applying any pending maneuvers whose window is crossed along the
// way, and performing the Hill-sphere center-of-motion handoff (switching
// Force.Center to whichever body's Hill sphere the particle has entered)
// whenever the integrator's HillSphereCheck trips.
func (p *Propagator) PropagateTo(target Instant) error {
	for {
		head := p.Current()
		if !head.Epoch.Before(target) {
			return nil
		}
		step := p.StepSize
		if head.Epoch.Add(step).After(target) {
			step = target.Sub(head.Epoch)
		}
		if step.Seconds() <= 0 {
			return nil
		}

		integ := &stateIntegrable{
			prop:  p,
			state: head.State,
			step:  step,
		}
		stepper := integrator.NewVelocityVerlet(0, step.Seconds(), integ)
		stepper.HillSphereCheck = func(pos [3]float64) bool {
			return p.checkHillSphereCrossing(Vector3{pos[0], pos[1], pos[2]})
		}
		if _, _, err := stepper.Solve(); err != nil {
			return err
		}

		next := TrajectoryPoint{Epoch: head.Epoch.Add(step), State: integ.state}
		p.timeline = append(p.timeline, next)
		p.applyDueManeuvers(next.Epoch)
	}
}

// checkHillSphereCrossing rebases Force.Center to a perturbing body once
// the particle's distance to it drops under that body's Hill-sphere
// radius, per spec's patched-conic handoff.
func (p *Propagator) checkHillSphereCrossing(r Vector3) bool {
	for i, perturber := range p.Force.Perturbers {
		center, _ := perturber.StateAt(p.Current().Epoch)
		dist := r.Sub(center).Norm()
		hill := perturber.Object.HillSphereRadius(0)
		if dist < hill {
			oldCenter := p.Force.Center
			p.Force.Center = perturber
			p.Force.Perturbers[i] = oldCenter
			return true
		}
	}
	return false
}

func (p *Propagator) applyDueManeuvers(t Instant) {
	var remaining []Maneuver
	for _, m := range p.pending {
		if m.MinimumEpoch().After(t) {
			remaining = append(remaining, m)
			continue
		}
		if m.CanExecute(p.Current().State) {
			m.Execute(p)
		} else {
			remaining = append(remaining, m)
		}
	}
	p.pending = remaining
}

// stateIntegrable bridges Propagator+GravityForce into integrator.Integrable.
type stateIntegrable struct {
	prop  *Propagator
	state StateVector
	step  Duration
	t0    Instant
}

func (si *stateIntegrable) GetPV() (pos, vel [3]float64) {
	return si.state.R.Slice3(), si.state.V.Slice3()
}

func (si *stateIntegrable) SetPV(i uint64, pos, vel [3]float64) {
	si.state.R = Vector3{pos[0], pos[1], pos[2]}
	si.state.V = Vector3{vel[0], vel[1], vel[2]}
}

func (si *stateIntegrable) Accel(t float64, pos [3]float64) [3]float64 {
	epoch := si.prop.Current().Epoch.Add(NewDurationFromSeconds(t))
	a := si.prop.Force.Acceleration(epoch, Vector3{pos[0], pos[1], pos[2]})
	return [3]float64{a.X, a.Y, a.Z}
}

func (si *stateIntegrable) Stop(i uint64) bool {
	return i >= 1 // one VV step per PropagateTo iteration; the outer loop chains steps
}
