package geometry

import (
	gomath "math"
	"testing"
)

func length(v [3]float32) float64 {
	return gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]))
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// checkIndices verifies every index points at a vertex.
func checkIndices(t *testing.T, m *Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Fatalf("index count %d not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d = %d out of range (%d vertices)", i, idx, len(m.Vertices))
		}
	}
}

// checkOutwardWinding verifies counter-clockwise triangles face along their normals.
func checkOutwardWinding(t *testing.T, m *Mesh) {
	t.Helper()
	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]]
		b := m.Vertices[m.Indices[i+1]]
		c := m.Vertices[m.Indices[i+2]]
		face := cross(sub(b.Position, a.Position), sub(c.Position, a.Position))
		if dot(face, a.Normal) <= 0 {
			t.Fatalf("triangle %d winds against its normal", i/3)
		}
	}
}

func TestSphere(t *testing.T) {
	const radius = 10
	m := Sphere(radius, 32, 32)
	checkIndices(t, m)

	if got, want := len(m.Vertices), 33*33; got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}
	// Two triangles per quad except the 2*32 pole quads.
	if got, want := m.TriangleCount(), 32*32*2-2*32; got != want {
		t.Errorf("triangle count = %d, want %d", got, want)
	}

	for i, v := range m.Vertices {
		if d := length(v.Position); gomath.Abs(d-radius) > 1e-4 {
			t.Fatalf("vertex %d at distance %v, want %v", i, d, radius)
		}
		if l := length(v.Normal); gomath.Abs(l-1) > 1e-5 {
			t.Fatalf("normal %d has length %v", i, l)
		}
	}
	checkOutwardWinding(t, m)
}

func TestSphereClampsSegments(t *testing.T) {
	m := Sphere(1, 0, 0)
	checkIndices(t, m)
	if m.TriangleCount() == 0 {
		t.Error("expected a closed mesh for degenerate segment counts")
	}
}

func TestPlane(t *testing.T) {
	m := Plane(100, 100)
	checkIndices(t, m)

	if m.TriangleCount() != 2 {
		t.Errorf("triangle count = %d, want 2", m.TriangleCount())
	}
	lo, hi := m.Bounds()
	if lo != [3]float32{-50, -50, 0} || hi != [3]float32{50, 50, 0} {
		t.Errorf("bounds = %v..%v", lo, hi)
	}
	checkOutwardWinding(t, m)
}

func TestBox(t *testing.T) {
	m := Box(1, 3, 1)
	checkIndices(t, m)

	if len(m.Vertices) != 24 {
		t.Errorf("vertex count = %d, want 24", len(m.Vertices))
	}
	if m.TriangleCount() != 12 {
		t.Errorf("triangle count = %d, want 12", m.TriangleCount())
	}
	lo, hi := m.Bounds()
	if lo != [3]float32{-0.5, -1.5, -0.5} || hi != [3]float32{0.5, 1.5, 0.5} {
		t.Errorf("bounds = %v..%v", lo, hi)
	}
	checkOutwardWinding(t, m)
}
