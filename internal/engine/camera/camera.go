// Package camera provides the perspective camera and its orbit controls.
package camera

import (
	gomath "math"

	"github.com/Faultbox/suncycle/internal/config"
	"github.com/Faultbox/suncycle/pkg/math"
)

// polarEpsilon keeps the polar angle off the poles where LookAt degenerates.
const polarEpsilon = 1e-6

// Rig is a perspective camera orbiting a target point. Input accumulates
// spherical deltas which Update applies, optionally damped over several frames.
type Rig struct {
	Position math.Vec3
	Target   math.Vec3

	// Projection
	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32

	// Controls
	EnableDamping   bool
	DampingFactor   float64
	RotateSpeed     float64
	EnableZoom      bool
	ZoomSpeed       float64
	AutoRotate      bool
	AutoRotateSpeed float64 // 30 seconds per orbit at 60fps when 2.0
	MinDistance     float64
	MaxDistance     float64

	deltaTheta float64
	deltaPhi   float64
	scale      float64

	view       math.Mat4
	projection math.Mat4
}

// NewRig creates a rig from configuration, looking at the origin from
// Distance units along +Z.
func NewRig(cfg config.CameraConfig, aspect float32) *Rig {
	r := &Rig{
		Position:        math.Vec3{Z: float32(cfg.Distance)},
		FOV:             float32(cfg.FOV),
		Aspect:          aspect,
		Near:            float32(cfg.Near),
		Far:             float32(cfg.Far),
		EnableDamping:   cfg.EnableDamping,
		DampingFactor:   cfg.DampingFactor,
		RotateSpeed:     cfg.RotateSpeed,
		EnableZoom:      cfg.EnableZoom,
		ZoomSpeed:       cfg.ZoomSpeed,
		AutoRotate:      cfg.AutoRotate,
		AutoRotateSpeed: 2.0,
		MinDistance:     0,
		MaxDistance:     gomath.Inf(1),
		scale:           1,
	}
	r.UpdateProjection()
	r.UpdateMatrixWorld()
	return r
}

// HandleRotate accumulates a mouse drag of (dx, dy) pixels. A drag across the
// full viewport height turns the camera by 2π times RotateSpeed.
func (r *Rig) HandleRotate(dx, dy float64, viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	h := float64(viewportHeight)
	r.rotateLeft(2 * gomath.Pi * dx * r.RotateSpeed / h)
	r.rotateUp(2 * gomath.Pi * dy * r.RotateSpeed / h)
}

// HandleZoom applies wheel notches. Positive values move towards the target.
func (r *Rig) HandleZoom(notches float64) {
	if !r.EnableZoom || notches == 0 {
		return
	}
	r.scale *= gomath.Pow(r.zoomScale(), notches)
}

func (r *Rig) zoomScale() float64 {
	return gomath.Pow(0.95, r.ZoomSpeed)
}

func (r *Rig) rotateLeft(angle float64) {
	r.deltaTheta -= angle
}

func (r *Rig) rotateUp(angle float64) {
	r.deltaPhi -= angle
}

// Update moves the camera by the pending input and reports whether it moved.
// With damping only DampingFactor of the pending rotation is applied and the
// rest carries over to the next call.
func (r *Rig) Update() bool {
	offset := r.Position.Sub(r.Target)
	radius := float64(offset.Length())
	theta := gomath.Atan2(float64(offset.X), float64(offset.Z))
	phi := gomath.Pi / 2
	if radius > 0 {
		phi = gomath.Acos(clamp(float64(offset.Y)/radius, -1, 1))
	}

	if r.AutoRotate {
		r.rotateLeft(2 * gomath.Pi / 60 / 60 * r.AutoRotateSpeed)
	}

	if r.EnableDamping {
		theta += r.deltaTheta * r.DampingFactor
		phi += r.deltaPhi * r.DampingFactor
	} else {
		theta += r.deltaTheta
		phi += r.deltaPhi
	}
	phi = clamp(phi, polarEpsilon, gomath.Pi-polarEpsilon)

	radius = clamp(radius*r.scale, r.MinDistance, r.MaxDistance)

	sinPhi := gomath.Sin(phi)
	newOffset := math.Vec3{
		X: float32(radius * sinPhi * gomath.Sin(theta)),
		Y: float32(radius * gomath.Cos(phi)),
		Z: float32(radius * sinPhi * gomath.Cos(theta)),
	}
	prev := r.Position
	r.Position = r.Target.Add(newOffset)
	r.UpdateMatrixWorld()

	if r.EnableDamping {
		r.deltaTheta *= 1 - r.DampingFactor
		r.deltaPhi *= 1 - r.DampingFactor
	} else {
		r.deltaTheta, r.deltaPhi = 0, 0
	}
	r.scale = 1

	return r.Position.Sub(prev).Length() > 1e-6
}

// UpdateMatrixWorld refreshes the cached view matrix from Position and Target.
func (r *Rig) UpdateMatrixWorld() {
	r.view = math.LookAt(r.Position, r.Target, math.Vec3{Y: 1})
}

// UpdateProjection refreshes the cached projection matrix.
func (r *Rig) UpdateProjection() {
	fovY := float32(float64(r.FOV) * gomath.Pi / 180)
	r.projection = math.Perspective(fovY, r.Aspect, r.Near, r.Far)
}

// SetAspect changes the aspect ratio and refreshes the projection.
// Non-positive ratios are ignored.
func (r *Rig) SetAspect(aspect float32) {
	if aspect <= 0 || gomath.IsNaN(float64(aspect)) || gomath.IsInf(float64(aspect), 0) {
		return
	}
	r.Aspect = aspect
	r.UpdateProjection()
}

// View returns the view matrix as of the last UpdateMatrixWorld.
func (r *Rig) View() math.Mat4 {
	return r.view
}

// Projection returns the projection matrix.
func (r *Rig) Projection() math.Mat4 {
	return r.projection
}

// ViewProj returns projection * view.
func (r *Rig) ViewProj() math.Mat4 {
	return r.projection.Mul(r.view)
}

// Distance returns the distance from the camera to its target.
func (r *Rig) Distance() float64 {
	return float64(r.Position.Sub(r.Target).Length())
}

// Pending reports whether damped rotation is still being applied.
func (r *Rig) Pending() bool {
	return gomath.Abs(r.deltaTheta) > 1e-6 || gomath.Abs(r.deltaPhi) > 1e-6
}

func clamp(v, lo, hi float64) float64 {
	return gomath.Max(lo, gomath.Min(hi, v))
}
