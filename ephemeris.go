package astrocore

import (
	"fmt"

	"github.com/pkg/errors"
)

// Ephemeris supplies the heliocentric state of a celestial body at a given
// instant. The default implementation (meeusEphemeris) is backed by the
// VSOP87 analytic series; a mission that needs higher-fidelity or
// externally-sourced ephemerides can supply its own implementation to a
// Scenario instead.
type Ephemeris interface {
	State(body CelestialObject, t Instant) (StateVector, error)
}

// meeusEphemeris is the default Ephemeris, backed by meeus/planetposition
// and meeus/pluto, the same series the teacher's VSOP87 path used.
type meeusEphemeris struct{}

// MeeusEphemeris is the default analytic Ephemeris provider.
var MeeusEphemeris Ephemeris = meeusEphemeris{}

func (meeusEphemeris) State(body CelestialObject, t Instant) (sv StateVector, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(fmt.Errorf("%v", r), "meeus ephemeris failed for %s", body.Name)
		}
	}()
	return body.HelioOrbit(t), nil
}
