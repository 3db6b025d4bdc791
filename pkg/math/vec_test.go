package math

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{0, 3, 4}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero vector", got)
	}
}

func TestVec3R3RoundTrip(t *testing.T) {
	in := r3.Vec{X: 150, Y: -42.5, Z: 0.25}
	got := FromR3(in)
	want := Vec3{150, -42.5, 0.25}
	if got != want {
		t.Errorf("FromR3(%v) = %v, want %v", in, got, want)
	}
	if back := got.R3(); back != in {
		t.Errorf("R3() = %v, want %v", back, in)
	}
}
