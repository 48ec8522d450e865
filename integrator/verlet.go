package integrator

// VelocityVerlet is a symplectic (energy-conserving over long integration
// spans) second-order stepper, the kick-drift-kick form:
//
//	v(t+h/2) = v(t)       + a(t)       * h/2
//	x(t+h)   = x(t)       + v(t+h/2)   * h
//	v(t+h)   = v(t+h/2)   + a(t+h)     * h/2
//
// It replaces the RK4 stepper with a different algorithm entirely, not an
// RK4 configuration: RK4 is not symplectic and drifts energy over long
// propagations the way this library's orbit and maneuver tests run.
type VelocityVerlet struct {
	T0         float64
	StepSize   float64
	Integrator Integrable
	// HillSphereCheck, if non-nil, is polled after every step; when it
	// returns true the integration halts early so the caller can rebase
	// the center of motion (the patched-conic handoff spec's propagator
	// performs when a particle crosses into a third body's Hill sphere)
	// and resume with a fresh VelocityVerlet.
	HillSphereCheck func(pos [3]float64) bool
}

// NewVelocityVerlet returns a configured VelocityVerlet stepper.
func NewVelocityVerlet(t0, stepSize float64, integ Integrable) *VelocityVerlet {
	if stepSize <= 0 {
		panic("config StepSize must be positive")
	}
	if integ == nil {
		panic("config Integrator may not be nil")
	}
	return &VelocityVerlet{T0: t0, StepSize: stepSize, Integrator: integ}
}

// Solve runs the stepper until the Integrable reports Stop or the
// HillSphereCheck (if set) trips, returning the iteration count and the
// last time reached.
func (vv *VelocityVerlet) Solve() (uint64, float64, error) {
	h := vv.StepSize
	t := vv.T0
	iter := uint64(0)

	pos, vel := vv.Integrator.GetPV()
	accel := vv.Integrator.Accel(t, pos)

	for !vv.Integrator.Stop(iter) {
		var vHalf, newPos [3]float64
		for i := 0; i < 3; i++ {
			vHalf[i] = vel[i] + accel[i]*(h/2)
			newPos[i] = pos[i] + vHalf[i]*h
		}
		newAccel := vv.Integrator.Accel(t+h, newPos)
		var newVel [3]float64
		for i := 0; i < 3; i++ {
			newVel[i] = vHalf[i] + newAccel[i]*(h/2)
		}

		vv.Integrator.SetPV(iter, newPos, newVel)

		pos, vel, accel = newPos, newVel, newAccel
		t += h
		iter++

		if vv.HillSphereCheck != nil && vv.HillSphereCheck(pos) {
			break
		}
	}
	return iter, t, nil
}
