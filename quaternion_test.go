package astrocore

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestQuaternionIdentityRotate(t *testing.T) {
	v := Vector3{1, 2, 3}
	r := IdentityQuaternion.Rotate(v)
	if r != v {
		t.Fatalf("identity quaternion should not change v, got %v", r)
	}
}

func TestQuaternionAxisAngle90DegZ(t *testing.T) {
	q := NewQuaternionFromAxisAngle(Vector3{Z: 1}, math.Pi/2)
	r := q.Rotate(Vector3{X: 1})
	if !floats.EqualWithinAbsOrRel(r.X, 0, 1e-9, 1e-9) || !floats.EqualWithinAbsOrRel(r.Y, 1, 1e-9, 1e-9) {
		t.Fatalf("expected +x rotated 90deg about z to land on +y, got %v", r)
	}
}

func TestVectorToRoundTrip(t *testing.T) {
	a := Vector3{1, 0, 0}
	b := Vector3{0, 1, 0}
	q := a.To(b)
	r := q.Rotate(a)
	if !floats.EqualWithinAbsOrRel(r.X, b.X, 1e-9, 1e-9) || !floats.EqualWithinAbsOrRel(r.Y, b.Y, 1e-9, 1e-9) {
		t.Fatalf("a.To(b) applied to a should yield b, got %v", r)
	}
}

func TestVectorToAntiParallel(t *testing.T) {
	a := Vector3{1, 0, 0}
	b := Vector3{-1, 0, 0}
	q := a.To(b)
	r := q.Rotate(a)
	if !floats.EqualWithinAbsOrRel(r.X, b.X, 1e-6, 1e-6) {
		t.Fatalf("anti-parallel case should still rotate a onto b, got %v", r)
	}
}

func TestQuaternionConjugateInvertsRotation(t *testing.T) {
	q := NewQuaternionFromAxisAngle(Vector3{X: 1, Y: 1}, 0.7)
	v := Vector3{1, 2, -3}
	rotated := q.Rotate(v)
	back := q.Conjugate().Rotate(rotated)
	if !floats.EqualWithinAbsOrRel(back.X, v.X, 1e-9, 1e-9) ||
		!floats.EqualWithinAbsOrRel(back.Y, v.Y, 1e-9, 1e-9) ||
		!floats.EqualWithinAbsOrRel(back.Z, v.Z, 1e-9, 1e-9) {
		t.Fatalf("conjugate should invert the rotation, got %v want %v", back, v)
	}
}
