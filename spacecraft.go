package astrocore

import (
	"fmt"
	"math"
	"os"

	kitlog "github.com/go-kit/log"
)

// FuelTank holds a quantity of propellant and points at the Engine it feeds.
type FuelTank struct {
	Name       string
	Capacity   float64 // kg
	Quantity   float64 // kg, current load
	Engine     *Engine
}

// Burn removes mass kg of propellant, returning InsufficientFuel if the
// tank would go negative.
func (ft *FuelTank) Burn(mass float64) error {
	if mass > ft.Quantity {
		return newError("FuelTank.Burn", InsufficientFuel, "%s has %.3f kg, requested %.3f kg", ft.Name, ft.Quantity, mass)
	}
	ft.Quantity -= mass
	return nil
}

// Engine characterizes a thruster by its ISP and nominal thrust, used by
// the maneuver framework's Tsiolkovsky burn-duration computation.
type Engine struct {
	Name        string
	ISP         float64 // seconds
	Thrust      float64 // Newtons
	FuelFlow    float64 // kg/s at nominal thrust; derived if zero
}

const standardGravity = 9.80665 // m/s^2, for Tsiolkovsky's rocket equation

// MassFlowRate returns the propellant mass flow rate at nominal thrust.
func (e Engine) MassFlowRate() float64 {
	if e.FuelFlow > 0 {
		return e.FuelFlow
	}
	return e.Thrust / (e.ISP * standardGravity)
}

// FOVShape identifies the geometric shape of an Instrument's field of view.
type FOVShape uint8

const (
	// FOVCircular is a circular cone with a single half-angle.
	FOVCircular FOVShape = iota
	// FOVRectangular is a rectangular pyramid with separate cross/along
	// half-angles.
	FOVRectangular
	// FOVElliptical is an elliptical cone with separate semi-axis angles.
	FOVElliptical
)

// Instrument models a body-mounted sensor: a boresight direction, a
// reference "up" direction (for rectangular/elliptical FOVs, which are not
// rotationally symmetric), and a field-of-view shape, grounded on the
// original toolchain's Instrument/RectangularInstrumentKernel pair.
type Instrument struct {
	Name      string
	Boresight Vector3 // unit vector, spacecraft body frame
	RefUp     Vector3 // unit vector, spacecraft body frame, orthogonal-ish to Boresight
	Shape     FOVShape
	// HalfAngle1 is the full cone half-angle (FOVCircular), or the
	// along-boresight-axis half-angle (FOVRectangular/FOVElliptical).
	HalfAngle1 float64
	// HalfAngle2 is the cross-axis half-angle; ignored for FOVCircular.
	HalfAngle2 float64
}

// InFOV reports whether the unit vector to a target, expressed in the
// spacecraft body frame, falls within this instrument's field of view.
func (ins Instrument) InFOV(toTarget Vector3) bool {
	dir := toTarget.Unit()
	boresight := ins.Boresight.Unit()
	switch ins.Shape {
	case FOVCircular:
		cosAngle := dir.Dot(boresight)
		return cosAngle >= math.Cos(ins.HalfAngle1)
	default:
		// Rectangular/elliptical: project dir onto the (boresight, refUp,
		// cross) triad and test each axis' half-angle independently
		// (rectangular) — the elliptical case uses the same projection
		// with an elliptical rather than box bound.
		cross := boresight.Cross(ins.RefUp).Unit()
		up := cross.Cross(boresight).Unit()
		zComp := dir.Dot(boresight)
		if zComp <= 0 {
			return false
		}
		xComp := dir.Dot(cross)
		yComp := dir.Dot(up)
		alongAngle := math.Atan2(xComp, zComp)
		crossAngle := math.Atan2(yComp, zComp)
		if ins.Shape == FOVRectangular {
			return math.Abs(alongAngle) <= ins.HalfAngle1 && math.Abs(crossAngle) <= ins.HalfAngle2
		}
		// Elliptical: normalized sum-of-squares <= 1.
		a := alongAngle / ins.HalfAngle1
		b := crossAngle / ins.HalfAngle2
		return a*a+b*b <= 1
	}
}

// axisFront, axisTop etc. fix the spacecraft body-frame axis convention:
// Front points along the nominal direction of travel, Top is the nominal
// zenith (anti-nadir) axis, and Left/Right/Back complete the right-handed
// triad. Every attitude maneuver references these through the Spacecraft
// accessors below rather than a bare Vector3 literal.
var (
	axisFront  = Vector3{X: 1}
	axisBack   = Vector3{X: -1}
	axisLeft   = Vector3{Y: -1}
	axisRight  = Vector3{Y: 1}
	axisTop    = Vector3{Z: 1}
	axisBottom = Vector3{Z: -1}
)

// Spacecraft is a mission vehicle: dry mass, fuel tanks, engines,
// instruments, and a trajectory logger, in the teacher's model.
type Spacecraft struct {
	Name        string
	DryMass     float64
	FuelTanks   []*FuelTank
	Engines     []*Engine
	Instruments []*Instrument
	Maneuvers   []Maneuver
	logger      kitlog.Logger
}

// NewSpacecraft returns a Spacecraft with an initialized structured logger,
// in the "level"/"subsys" key convention the teacher's SCLogInit used.
func NewSpacecraft(name string, dryMass float64, tanks []*FuelTank, engines []*Engine, instruments []*Instrument) *Spacecraft {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "spacecraft", name)
	return &Spacecraft{
		Name: name, DryMass: dryMass, FuelTanks: tanks, Engines: engines, Instruments: instruments,
		logger: logger,
	}
}

// Front returns the spacecraft's body-frame forward (prograde-reference)
// unit axis.
func (sc *Spacecraft) Front() Vector3 { return axisFront }

// Back returns the spacecraft's body-frame aft unit axis.
func (sc *Spacecraft) Back() Vector3 { return axisBack }

// Left returns the spacecraft's body-frame left unit axis.
func (sc *Spacecraft) Left() Vector3 { return axisLeft }

// Right returns the spacecraft's body-frame right unit axis.
func (sc *Spacecraft) Right() Vector3 { return axisRight }

// Top returns the spacecraft's body-frame zenith (anti-nadir reference)
// unit axis.
func (sc *Spacecraft) Top() Vector3 { return axisTop }

// Bottom returns the spacecraft's body-frame nadir-reference unit axis.
func (sc *Spacecraft) Bottom() Vector3 { return axisBottom }

// Mass returns the total vehicle mass (dry mass plus all tank loads).
func (sc *Spacecraft) Mass() float64 {
	m := sc.DryMass
	for _, ft := range sc.FuelTanks {
		m += ft.Quantity
	}
	if m <= 0 {
		m = 1 // refuse massless vehicles, as the teacher's Mass() does
	}
	return m
}

// LogEvent logs a structured event at the given level, in the teacher's
// level=/subsys= convention.
func (sc *Spacecraft) LogEvent(level, msg string, keyvals ...interface{}) {
	args := append([]interface{}{"level", level, "subsys", "astro", "msg", msg}, keyvals...)
	sc.logger.Log(args...)
}

func (sc *Spacecraft) String() string {
	return fmt.Sprintf("%s (mass=%.1f kg)", sc.Name, sc.Mass())
}
