package debug

import (
	"github.com/Faultbox/suncycle/pkg/math"
)

// FrustumWireframeVertexCount is the number of line vertices FrustumWireframe
// returns (12 edges x 2).
const FrustumWireframeVertexCount = 24

// ndcCorners are the corners of the clip cube: near face then far face,
// each counter-clockwise from bottom-left.
var ndcCorners = [8][3]float32{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// frustumEdges index pairs into ndcCorners.
var frustumEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0}, // near
	{4, 5}, {5, 6}, {6, 7}, {7, 4}, // far
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // sides
}

// FrustumCorners returns the world-space corners of the volume a
// view-projection matrix sees.
func FrustumCorners(viewProj math.Mat4) [8][3]float32 {
	inv := viewProj.Inverse()
	var corners [8][3]float32
	for i, c := range ndcCorners {
		corners[i] = inv.TransformPoint(c)
	}
	return corners
}

// FrustumWireframe creates line vertices outlining a camera frustum, such as
// the sunlight's shadow camera. Format: [x, y, z] per vertex.
func FrustumWireframe(viewProj math.Mat4) []float32 {
	corners := FrustumCorners(viewProj)
	vertices := make([]float32, 0, FrustumWireframeVertexCount*3)
	for _, e := range frustumEdges {
		a, b := corners[e[0]], corners[e[1]]
		vertices = append(vertices, a[0], a[1], a[2], b[0], b[1], b[2])
	}
	return vertices
}
