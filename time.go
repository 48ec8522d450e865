package astrocore

import (
	"fmt"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// leapSeconds is the TAI-UTC offset used to bridge UTC wall-clock time to
// TDB. It is a coarse constant rather than a leap-second table lookup: the
// teacher's own meeus-based ephemeris is itself only good to sub-second
// accuracy over the spans this library targets.
const leapSeconds = 37 * time.Second

// ttTaiOffset is the constant TT-TAI offset (32.184s), applied together
// with leapSeconds above; the small periodic TDB-TT difference is neglected.
const ttTaiOffset = 32184 * time.Microsecond

// Instant is a point in time carried internally in TDB, the timescale every
// dynamical computation in this package (orbital elements, force models,
// ephemerides) is expressed in. Use NewInstantFromUTC/UTC to cross the
// boundary with wall-clock time.
type Instant struct {
	tdb time.Time
}

// NewInstantFromUTC builds an Instant from a UTC time.Time.
func NewInstantFromUTC(utc time.Time) Instant {
	return Instant{tdb: utc.UTC().Add(leapSeconds).Add(ttTaiOffset)}
}

// UTC returns the UTC wall-clock time corresponding to this Instant.
func (t Instant) UTC() time.Time {
	return t.tdb.Add(-ttTaiOffset).Add(-leapSeconds).UTC()
}

// JD returns the Julian Date of this instant in the TDB timescale, as
// consumed by the meeus ephemeris series.
func (t Instant) JD() float64 {
	return julian.TimeToJD(t.tdb)
}

// Add returns the Instant offset by d.
func (t Instant) Add(d Duration) Instant {
	return Instant{tdb: t.tdb.Add(time.Duration(d))}
}

// Sub returns the Duration elapsed between u and t (t - u).
func (t Instant) Sub(u Instant) Duration {
	return Duration(t.tdb.Sub(u.tdb))
}

// Before reports whether t occurs before u.
func (t Instant) Before(u Instant) bool { return t.tdb.Before(u.tdb) }

// After reports whether t occurs after u.
func (t Instant) After(u Instant) bool { return t.tdb.After(u.tdb) }

// Equal reports whether t and u denote the same Instant.
func (t Instant) Equal(u Instant) bool { return t.tdb.Equal(u.tdb) }

func (t Instant) String() string {
	return fmt.Sprintf("%s TDB", t.tdb.Format("2006-01-02T15:04:05.000"))
}

// Duration is a span of time, expressed with the same resolution as
// time.Duration. It exists as a distinct type so that time arithmetic in
// this package reads in terms of Instant/Duration rather than time.Time.
type Duration time.Duration

// Seconds returns the duration as floating-point seconds, the unit every
// dynamical equation of motion in this package is stated in.
func (d Duration) Seconds() float64 {
	return time.Duration(d).Seconds()
}

// NewDurationFromSeconds builds a Duration from a floating-point second
// count.
func NewDurationFromSeconds(s float64) Duration {
	return Duration(time.Duration(s * float64(time.Second)))
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Orderable is satisfied by any value with Instant's comparison and
// subtraction semantics; Window is generic over it so the same type serves
// thrust windows, attitude windows, and maneuver windows alike.
type Orderable[T any] interface {
	Before(T) bool
	After(T) bool
	Sub(T) Duration
}

// Window is a closed interval [Start, End] over an ordered instant-like
// value. It is used throughout this package for thrust windows, attitude
// windows, maneuver windows, and event-finder results.
type Window[T Orderable[T]] struct {
	Start T
	End   T
}

// NewWindow builds a Window from a start and end value.
func NewWindow[T Orderable[T]](start, end T) Window[T] {
	return Window[T]{Start: start, End: end}
}

// Span returns the duration covered by the window.
func (w Window[T]) Span() Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls within [Start, End], inclusive.
func (w Window[T]) Contains(t T) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
