package shadow

import (
	"github.com/Faultbox/suncycle/pkg/math"
)

// OrthoCamera is the orthographic volume a directional light renders its
// depth pass with. Extent is the half size of the square frustum.
type OrthoCamera struct {
	Extent float32
	Near   float32
	Far    float32
}

// DefaultCamera matches the usual directional shadow camera: a 10x10 square
// reaching 500 units from the light.
func DefaultCamera() OrthoCamera {
	return OrthoCamera{Extent: 5, Near: 0.5, Far: 500}
}

// Valid reports whether the camera describes a non-empty volume.
func (c OrthoCamera) Valid() bool {
	return c.Extent > 0 && c.Near >= 0 && c.Far > c.Near
}

// Projection returns the orthographic projection of the camera.
func (c OrthoCamera) Projection() math.Mat4 {
	return math.Ortho(-c.Extent, c.Extent, -c.Extent, c.Extent, c.Near, c.Far)
}

// CalculateLightMatrix computes the view-projection used for the shadow map.
// The light sits at lightPos and looks at target.
func CalculateLightMatrix(lightPos, target math.Vec3, cam OrthoCamera) math.Mat4 {
	dir := target.Sub(lightPos)
	if dir.Length() == 0 {
		// Degenerate placement, look straight down.
		dir = math.Vec3{Y: -1}
		target = lightPos.Add(dir)
	}

	up := math.Vec3{X: 0, Y: 1, Z: 0}
	// If light is nearly vertical, use a different up vector
	if abs32(dir.Normalize().Y) > 0.99 {
		up = math.Vec3{X: 0, Y: 0, Z: 1}
	}

	view := math.LookAt(lightPos, target, up)
	return cam.Projection().Mul(view)
}

// abs32 returns the absolute value of a float32.
func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
