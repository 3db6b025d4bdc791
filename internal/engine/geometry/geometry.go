// Package geometry builds indexed triangle meshes for the scene primitives.
package geometry

import (
	gomath "math"
)

// Vertex is an interleaved mesh vertex as uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh holds vertex and index data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Sphere builds a UV sphere centred on the origin.
// widthSegments runs around the equator, heightSegments from pole to pole.
func Sphere(radius float32, widthSegments, heightSegments int) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	mesh := &Mesh{}
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * gomath.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * gomath.Pi

			n := [3]float32{
				float32(-gomath.Cos(phi) * gomath.Sin(theta)),
				float32(gomath.Cos(theta)),
				float32(gomath.Sin(phi) * gomath.Sin(theta)),
			}
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
			})
		}
	}

	row := uint32(widthSegments + 1)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*row + uint32(ix) + 1
			b := uint32(iy)*row + uint32(ix)
			c := uint32(iy+1)*row + uint32(ix)
			d := uint32(iy+1)*row + uint32(ix) + 1

			// Pole rows collapse to a point, so only one triangle per quad.
			if iy != 0 {
				mesh.Indices = append(mesh.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				mesh.Indices = append(mesh.Indices, b, c, d)
			}
		}
	}
	return mesh
}

// Plane builds a width x height quad in the XY plane facing +Z.
func Plane(width, height float32) *Mesh {
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	return &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-hw, hh, 0}, Normal: n},
			{Position: [3]float32{hw, hh, 0}, Normal: n},
			{Position: [3]float32{-hw, -hh, 0}, Normal: n},
			{Position: [3]float32{hw, -hh, 0}, Normal: n},
		},
		Indices: []uint32{0, 2, 1, 2, 3, 1},
	}
}

// Box builds an axis-aligned box centred on the origin with flat-shaded faces.
func Box(width, height, depth float32) *Mesh {
	hw, hh, hd := width/2, height/2, depth/2

	// Each face: normal, then four corners counter-clockwise seen from outside.
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{1, 0, 0}, [4][3]float32{{hw, -hh, hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {hw, hh, hd}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hw, -hh, -hd}, {-hw, -hh, hd}, {-hw, hh, hd}, {-hw, hh, -hd}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hw, hh, hd}, {hw, hh, hd}, {hw, hh, -hd}, {-hw, hh, -hd}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, -hh, hd}, {-hw, -hh, hd}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hw, -hh, -hd}, {-hw, -hh, -hd}, {-hw, hh, -hd}, {hw, hh, -hd}}},
	}

	mesh := &Mesh{}
	for _, f := range faces {
		base := uint32(len(mesh.Vertices))
		for _, c := range f.corners {
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: c, Normal: f.normal})
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return mesh
}

// Bounds returns the axis-aligned extent of the mesh vertices.
func (m *Mesh) Bounds() (minPos, maxPos [3]float32) {
	minPos = [3]float32{gomath.MaxFloat32, gomath.MaxFloat32, gomath.MaxFloat32}
	maxPos = [3]float32{-gomath.MaxFloat32, -gomath.MaxFloat32, -gomath.MaxFloat32}
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			minPos[i] = min(minPos[i], v.Position[i])
			maxPos[i] = max(maxPos[i], v.Position[i])
		}
	}
	return minPos, maxPos
}
