package astrocore

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats"
)

func testSpacecraftAndEngine() (*Spacecraft, *Engine) {
	engine := &Engine{Name: "main", ISP: 300, Thrust: 500}
	tank := &FuelTank{Name: "tank1", Capacity: 500, Quantity: 500, Engine: engine}
	sc := NewSpacecraft("tester", 1000, []*FuelTank{tank}, []*Engine{engine}, nil)
	return sc, engine
}

func testPropagatorAtPeriapsis(sc *Spacecraft, epoch Instant) *Propagator {
	coe := NewConicElements(7e6, 0.1, 0.1, 0, 0, 0, Earth, ICRF, epoch)
	sv, err := coe.ToStateVector(epoch)
	if err != nil {
		panic(err)
	}
	force := NewGravityForce(Body{Object: Earth})
	return NewPropagator(sc, force, NewDurationFromSeconds(60), sv)
}

func TestApsisHeightChangeManeuverCanExecuteAtPeriapsis(t *testing.T) {
	sc, engine := testSpacecraftAndEngine()
	epoch := NewInstantFromUTC(time.Now())
	p := testPropagatorAtPeriapsis(sc, epoch)
	m := NewApsisHeightChangeManeuver(sc, []*Engine{engine}, epoch, 8e6, true)

	if !m.CanExecute(p.Current().State) {
		t.Fatalf("expected CanExecute to report true at periapsis")
	}
}

func TestApsisHeightChangeManeuverExecuteRaisesApoapsis(t *testing.T) {
	sc, engine := testSpacecraftAndEngine()
	epoch := NewInstantFromUTC(time.Now())
	p := testPropagatorAtPeriapsis(sc, epoch)
	before := NewConicElementsFromStateVector(p.Current().State)

	m := NewApsisHeightChangeManeuver(sc, []*Engine{engine}, epoch, 9e6, true)
	if err := m.Execute(p); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	after := NewConicElementsFromStateVector(p.Current().State)

	if after.Apoapsis() <= before.Apoapsis() {
		t.Fatalf("expected apoapsis to increase: before=%f after=%f", before.Apoapsis(), after.Apoapsis())
	}
	if !floats.EqualWithinAbsOrRel(after.Apoapsis(), 9e6, distanceEps*5, 1e-3) {
		t.Fatalf("expected new apoapsis near 9e6m, got %f", after.Apoapsis())
	}
	if m.DeltaV().Norm() <= 0 {
		t.Fatalf("expected a nonzero delta-v to have been recorded")
	}
}

func TestApsisHeightChangeManeuverBurnsFuel(t *testing.T) {
	sc, engine := testSpacecraftAndEngine()
	epoch := NewInstantFromUTC(time.Now())
	p := testPropagatorAtPeriapsis(sc, epoch)
	fuelBefore := sc.FuelTanks[0].Quantity

	m := NewApsisHeightChangeManeuver(sc, []*Engine{engine}, epoch, 9e6, true)
	if err := m.Execute(p); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if sc.FuelTanks[0].Quantity >= fuelBefore {
		t.Fatalf("expected fuel to be consumed by the burn")
	}
}

func TestPlaneChangeManeuverCanExecuteAtNode(t *testing.T) {
	sc, engine := testSpacecraftAndEngine()
	epoch := NewInstantFromUTC(time.Now())
	coe := NewConicElements(7e6, 0.001, 0.5, 0, 0, 0, Earth, ICRF, epoch)
	sv, _ := coe.ToStateVector(epoch)
	force := NewGravityForce(Body{Object: Earth})
	p := NewPropagator(sc, force, NewDurationFromSeconds(60), sv)

	m := NewPlaneChangeManeuver(sc, []*Engine{engine}, epoch, 0.7, 0)
	if !m.CanExecute(p.Current().State) {
		t.Fatalf("expected CanExecute to report true at the ascending node")
	}
}

func TestPhasingManeuverRequiresAtLeastOneOrbit(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for zero phasing orbits")
		}
	}()
	sc, engine := testSpacecraftAndEngine()
	epoch := NewInstantFromUTC(time.Now())
	NewPhasingManeuver(sc, []*Engine{engine}, epoch, 0.1, 0)
}

func TestAttitudeManeuverAlwaysCanExecute(t *testing.T) {
	sc, _ := testSpacecraftAndEngine()
	epoch := NewInstantFromUTC(time.Now())
	p := testPropagatorAtPeriapsis(sc, epoch)
	m := NewProgradeAttitudeManeuver(sc, epoch, NewDurationFromSeconds(600))
	if !m.CanExecute(p.Current().State) {
		t.Fatalf("expected attitude maneuver to always report CanExecute=true")
	}
}

func TestAttitudeManeuverExecuteRecordsOrientationAndZeroDeltaV(t *testing.T) {
	sc, _ := testSpacecraftAndEngine()
	epoch := NewInstantFromUTC(time.Now())
	p := testPropagatorAtPeriapsis(sc, epoch)
	m := NewProgradeAttitudeManeuver(sc, epoch, NewDurationFromSeconds(600))
	if err := m.Execute(p); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if m.DeltaV() != (Vector3{}) {
		t.Fatalf("expected an attitude-only maneuver to have zero delta-v, got %v", m.DeltaV())
	}
	if m.Orientation == (Quaternion{}) {
		t.Fatalf("expected Execute to record a nonzero orientation quaternion")
	}
}

func TestZenithAttitudeManeuverPointsTopAtLocalVertical(t *testing.T) {
	sc, _ := testSpacecraftAndEngine()
	epoch := NewInstantFromUTC(time.Now())
	p := testPropagatorAtPeriapsis(sc, epoch)
	m := NewZenithAttitudeManeuver(sc, epoch, NewDurationFromSeconds(600))
	if err := m.Execute(p); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	rotatedTop := m.Orientation.Rotate(sc.Top())
	localVertical := p.Current().State.R.Unit()
	if !floats.EqualWithinAbsOrRel(rotatedTop.Dot(localVertical), 1, 1e-6, 1e-6) {
		t.Fatalf("expected the rotated Top axis to align with the local vertical, got dot=%f", rotatedTop.Dot(localVertical))
	}
}

func TestInstrumentPointingAttitudeManeuverTracksTarget(t *testing.T) {
	sc, _ := testSpacecraftAndEngine()
	epoch := NewInstantFromUTC(time.Now())
	p := testPropagatorAtPeriapsis(sc, epoch)
	ins := &Instrument{Name: "cam", Boresight: Vector3{Z: 1}, RefUp: Vector3{X: 1}, Shape: FOVCircular, HalfAngle1: 0.1}
	target := func(t Instant) Vector3 { return Vector3{X: 1e9} }

	m := NewInstrumentPointingAttitudeManeuver(sc, ins, epoch, NewDurationFromSeconds(600), target)
	if err := m.Execute(p); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	rotatedBoresight := m.Orientation.Rotate(ins.Boresight.Unit())
	dir := target(epoch).Sub(p.Current().State.R).Unit()
	if !floats.EqualWithinAbsOrRel(rotatedBoresight.Dot(dir), 1, 1e-6, 1e-6) {
		t.Fatalf("expected the rotated boresight to point at the target, got dot=%f", rotatedBoresight.Dot(dir))
	}
}

func TestSpacecraftAxisConventionOrthogonalUnitTriad(t *testing.T) {
	sc, _ := testSpacecraftAndEngine()
	axes := []Vector3{sc.Front(), sc.Back(), sc.Left(), sc.Right(), sc.Top(), sc.Bottom()}
	for _, a := range axes {
		if !floats.EqualWithinAbsOrRel(a.Norm(), 1, 1e-12, 1e-12) {
			t.Fatalf("expected every named axis to be a unit vector, got %v (norm %f)", a, a.Norm())
		}
	}
	if sc.Front().Add(sc.Back()) != (Vector3{}) {
		t.Fatalf("expected Front and Back to be opposite")
	}
	if sc.Left().Add(sc.Right()) != (Vector3{}) {
		t.Fatalf("expected Left and Right to be opposite")
	}
	if sc.Top().Add(sc.Bottom()) != (Vector3{}) {
		t.Fatalf("expected Top and Bottom to be opposite")
	}
}

func TestApsidalAlignmentManeuverNoIntersection(t *testing.T) {
	sc, engine := testSpacecraftAndEngine()
	epoch := NewInstantFromUTC(time.Now())
	// Two coplanar circular orbits of different radii never intersect.
	current := NewConicElements(7e6, 0, 0, 0, 0, 0.3, Earth, ICRF, epoch)
	target := NewConicElements(8e6, 0, 0, 0, 0, 0, Earth, ICRF, epoch)
	m := NewApsidalAlignmentManeuver(sc, []*Engine{engine}, epoch, target)

	sv, _ := current.ToStateVector(epoch)
	if m.CanExecute(sv) {
		t.Fatalf("expected CanExecute to report false when the orbits never intersect")
	}
}

func TestApsidalAlignmentManeuverCoefficientsDegenerateDoesNotPanic(t *testing.T) {
	sc, engine := testSpacecraftAndEngine()
	epoch := NewInstantFromUTC(time.Now())
	// Identical orbits are the degenerate case where the coefficient
	// scheme's A term vanishes; this checks only that compute() returns
	// without panicking (its error value is not inspected).
	current := NewConicElements(7e6, 0.1, 0.2, 0, 0.4, 0.4, Earth, ICRF, epoch)
	m := NewApsidalAlignmentManeuver(sc, []*Engine{engine}, epoch, current)
	sv, _ := current.ToStateVector(epoch)
	_ = m.compute(NewConicElementsFromStateVector(sv)) // must not panic
}

func TestOrbitEpsilonsCoarsensForHeliocentricOrigin(t *testing.T) {
	_, _, angleTolEarth := orbitEpsilons(Earth)
	_, _, angleTolSun := orbitEpsilons(Sun)
	if angleTolSun < angleTolEarth {
		t.Fatalf("expected a coarser angle tolerance about the Sun than about Earth")
	}
}

func TestTsiolkovskyBurnDurationPositive(t *testing.T) {
	sc, engine := testSpacecraftAndEngine()
	base := newManeuverBase(sc, []*Engine{engine}, Instant{}, 0)
	d, fuel := base.tsiolkovskyBurnDuration(0.1, sc.Mass())
	if d.Seconds() <= 0 {
		t.Fatalf("expected a positive burn duration, got %f", d.Seconds())
	}
	if fuel <= 0 || fuel >= sc.Mass() {
		t.Fatalf("expected a plausible fuel-burned amount, got %f", fuel)
	}
}

func TestHohmannTransferSpeedsBracketCircularSpeeds(t *testing.T) {
	rI, rF := 7e6, 9e6
	vDep, vArr, tof := Hohmann(rI, rF, Earth)
	vCircI := math.Sqrt(Earth.GM() / rI)
	vCircF := math.Sqrt(Earth.GM() / rF)
	if vDep <= vCircI {
		t.Fatalf("expected the transfer departure speed to exceed circular speed at rI")
	}
	if vArr >= vCircF {
		t.Fatalf("expected the transfer arrival speed to be below circular speed at rF")
	}
	if tof.Seconds() <= 0 {
		t.Fatalf("expected a positive time of flight")
	}
}
