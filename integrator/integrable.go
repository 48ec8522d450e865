// Package integrator provides the symplectic Velocity-Verlet stepper this
// module propagates trajectories with.
package integrator

// Integrable is anything with a position/velocity state that can be
// advanced by acceleration evaluations. Implementations manage their own
// state storage across iterations, in the same minimal-surface idiom the
// original RK4 stepper used.
type Integrable interface {
	// GetPV returns the current position and velocity, three components
	// each.
	GetPV() (pos, vel [3]float64)
	// SetPV stores the position and velocity for iteration i.
	SetPV(i uint64, pos, vel [3]float64)
	// Accel returns the acceleration at time t given position pos.
	Accel(t float64, pos [3]float64) [3]float64
	// Stop reports whether the integration should halt after iteration i.
	Stop(i uint64) bool
}
