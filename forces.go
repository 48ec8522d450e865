package astrocore

import "math"

// Body is anything the gravity force model can attract a spacecraft
// toward: a CelestialObject plus a state-provider closure, so the force
// model doesn't need to know whether that state came from an Ephemeris,
// a fixed position, or a HelioOrbit call.
type Body struct {
	Object CelestialObject
	// StateAt returns this body's Cartesian state (position, velocity) at
	// t, in the same frame/origin the integrator is working in.
	StateAt func(t Instant) (Vector3, Vector3)
}

// GravityForce computes acceleration from a central body plus any number
// of perturbing third bodies, with an optional J2 correction on the
// center of motion. It is the point-mass multi-body force model spec's
// C6 component names; the J2 term is additive, folded in from the
// teacher's perturbations.go, and never substitutes for the point-mass
// term.
type GravityForce struct {
	Center     Body
	Perturbers []Body
	// J2Enabled turns on the zonal-harmonic correction for Center.Object.
	J2Enabled bool
}

// NewGravityForce builds a GravityForce about center with the given third
// bodies as perturbers.
func NewGravityForce(center Body, perturbers ...Body) *GravityForce {
	return &GravityForce{Center: center, Perturbers: perturbers}
}

// Acceleration returns the total gravitational acceleration on a particle
// at position r (relative to Center) at time t.
func (g *GravityForce) Acceleration(t Instant, r Vector3) Vector3 {
	mu := g.Center.Object.GM()
	rNorm := r.Norm()
	a := r.Scale(-mu / (rNorm * rNorm * rNorm))

	if g.J2Enabled {
		a = a.Add(j2Acceleration(g.Center.Object, r))
	}

	for _, p := range g.Perturbers {
		rPertCenter, _ := p.StateAt(t)
		rPertToParticle := r.Sub(rPertCenter)
		dNorm := rPertToParticle.Norm()
		if dNorm < 1e-9 {
			continue
		}
		muP := p.Object.GM()
		// Third-body term: direct attraction on the particle minus the
		// indirect term from the same body's pull on the center (Vallado
		// eq. 8-34), so a common-origin propagation doesn't double count
		// the center's own motion toward the perturber.
		direct := rPertToParticle.Scale(-muP / (dNorm * dNorm * dNorm))
		cNorm := rPertCenter.Norm()
		indirect := rPertCenter.Scale(muP / (cNorm * cNorm * cNorm))
		a = a.Add(direct).Sub(indirect)
	}
	return a
}

// j2Acceleration returns the J2 zonal harmonic correction to point-mass
// gravity, in the body-fixed-aligned frame r is expressed in (i.e. the
// z-axis is the body's rotation axis). J3 and higher zonal terms are not
// included, even for bodies that carry a J3 value.
func j2Acceleration(body CelestialObject, r Vector3) Vector3 {
	j2 := body.J(2)
	if j2 == 0 {
		return Vector3{}
	}
	mu := body.GM()
	req := body.Radius
	rn := r.Norm()
	z2OverR2 := (r.Z * r.Z) / (rn * rn)
	factor := 1.5 * j2 * mu * req * req / math.Pow(rn, 5)
	return Vector3{
		X: factor * r.X * (5*z2OverR2 - 1),
		Y: factor * r.Y * (5*z2OverR2 - 1),
		Z: factor * r.Z * (5*z2OverR2 - 3),
	}
}
