package astrocore

import "math"

// Hohmann computes a two-impulse Hohmann transfer between two circular-ish
// radii about body, returning the departure and arrival speeds on the
// transfer ellipse and its time of flight. Ported near-verbatim from the
// teacher's Hohmann helper (the Lambert/porkchop-plot machinery around it
// is out of scope and was dropped, see DESIGN.md).
func Hohmann(rI, rF float64, body CelestialObject) (vDeparture, vArrival float64, tof Duration) {
	aTransfer := 0.5 * (rI + rF)
	mu := body.GM()
	vDeparture = math.Sqrt((2 * mu / rI) - (mu / aTransfer))
	vArrival = math.Sqrt((2 * mu / rF) - (mu / aTransfer))
	tof = NewDurationFromSeconds(math.Pi * math.Sqrt(math.Pow(aTransfer, 3)/mu))
	return
}
