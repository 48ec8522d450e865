package astrocore

import (
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Scenario is the top-level container tying a Spacecraft, its Propagator,
// an Ephemeris source for perturbing bodies, and a ground Site together
// into one runnable mission, in the same orchestrating role the teacher's
// Mission/Astrocodile type played for its propagation loop, generalized
// off the single hardcoded central body to whatever GravityForce.Center
// the caller configures.
type Scenario struct {
	Name       string
	Spacecraft *Spacecraft
	Propagator *Propagator
	Ephemeris  Ephemeris
	Site       *Site

	logger kitlog.Logger
}

// NewScenario builds a Scenario around an already-constructed Spacecraft
// and Propagator. eph is stored on the Scenario as given and may be nil;
// propagation does not consult it, and takes perturber positions only from
// the StateAt closures already wired into prop.Force.
func NewScenario(name string, sc *Spacecraft, prop *Propagator, eph Ephemeris) *Scenario {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "scenario", name)
	return &Scenario{Name: name, Spacecraft: sc, Propagator: prop, Ephemeris: eph, logger: logger}
}

// Run advances the scenario's Propagator to end, scheduling no additional
// maneuvers beyond whatever is already queued on the Propagator or on
// Spacecraft.Maneuvers (which are scheduled here if not already pending).
func (s *Scenario) Run(end Instant) error {
	for _, m := range s.Spacecraft.Maneuvers {
		alreadyPending := false
		for _, q := range s.Propagator.pending {
			if q == m {
				alreadyPending = true
				break
			}
		}
		if alreadyPending {
			continue
		}
		if err := s.Propagator.ScheduleManeuver(m); err != nil {
			level.Warn(s.logger).Log("msg", "could not schedule maneuver", "err", err)
		}
	}
	level.Info(s.logger).Log("msg", "propagation start", "epoch", s.Propagator.Current().Epoch.String(), "target", end.String())
	if err := s.Propagator.PropagateTo(end); err != nil {
		level.Error(s.logger).Log("msg", "propagation failed", "err", err)
		return err
	}
	level.Info(s.logger).Log("msg", "propagation complete", "epoch", s.Propagator.Current().Epoch.String())
	return nil
}

// Export streams the scenario's recorded trajectory through conf, the way
// the teacher's StreamStates drained a channel fed by the propagation
// loop; here the timeline is already fully recorded, so the channel is
// fed from the stored slice instead of live propagation.
func (s *Scenario) Export(conf ExportConfig) error {
	ch := make(chan TrajectoryPoint)
	go func() {
		defer close(ch)
		for _, pt := range s.Propagator.Timeline() {
			ch <- pt
		}
	}()
	return StreamTrajectory(conf, ch)
}

// LaunchWindows delegates to SearchLaunchWindows using this scenario's
// site, for scenarios that begin with a ground-launched vehicle.
func (s *Scenario) LaunchWindows(target ConicElements, search Window[Instant], step Duration) ([]LaunchWindowOption, error) {
	if s.Site == nil {
		return nil, newError("Scenario.LaunchWindows", InvalidArgument, "scenario %s has no launch site configured", s.Name)
	}
	return SearchLaunchWindows(*s.Site, target, search, step), nil
}
