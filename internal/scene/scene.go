// Package scene holds the fixed set of objects the renderer draws: ground,
// cube, sun, moon and the directional sunlight.
package scene

import (
	gomath "math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/suncycle/internal/config"
	"github.com/Faultbox/suncycle/internal/engine/geometry"
	"github.com/Faultbox/suncycle/internal/engine/shadow"
	"github.com/Faultbox/suncycle/pkg/math"
)

// Kind identifies a scene object.
type Kind int

const (
	KindGround Kind = iota
	KindCube
	KindSun
	KindMoon
)

func (k Kind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindCube:
		return "cube"
	case KindSun:
		return "sun"
	case KindMoon:
		return "moon"
	default:
		return "unknown"
	}
}

// Material describes how a node is shaded. Colors are sRGB.
type Material struct {
	Color       [3]float32
	Unlit       bool
	DoubleSided bool
}

// Node is one renderable object.
type Node struct {
	Name          string
	Kind          Kind
	Mesh          *geometry.Mesh
	Material      Material
	Position      r3.Vec
	RotationX     float64
	CastShadow    bool
	ReceiveShadow bool
}

// Model returns the node's world transform.
func (n *Node) Model() math.Mat4 {
	return math.Model(math.FromR3(n.Position), float32(n.RotationX))
}

// Shadow configures the light's depth pass.
type Shadow struct {
	MapSize  int32
	Bias     float32
	Camera   shadow.OrthoCamera
	ViewProj math.Mat4
}

// DirectionalLight is the sunlight. It shines from Position towards Target.
type DirectionalLight struct {
	Color      [3]float32
	Intensity  float64
	Position   r3.Vec
	Target     r3.Vec
	CastShadow bool
	Shadow     Shadow
}

// Direction returns the unit vector from the surface towards the light.
func (l *DirectionalLight) Direction() r3.Vec {
	d := r3.Sub(l.Position, l.Target)
	if r3.Norm(d) == 0 {
		return r3.Vec{Y: 1}
	}
	return r3.Unit(d)
}

// UpdateShadow recomputes the shadow view-projection from the current
// position and target.
func (l *DirectionalLight) UpdateShadow() {
	l.Shadow.ViewProj = shadow.CalculateLightMatrix(
		math.FromR3(l.Position), math.FromR3(l.Target), l.Shadow.Camera)
}

// Scene owns exactly one of each object for its whole lifetime.
type Scene struct {
	Ground *Node
	Cube   *Node
	Sun    *Node
	Moon   *Node
	Light  *DirectionalLight
}

var (
	groundColor = [3]float32{0, 1, 0}
	cubeColor   = [3]float32{0xd7 / 255.0, 0xe3 / 255.0, 0xfa / 255.0}
	sunColor    = [3]float32{1, 1, 0}
	moonColor   = [3]float32{0xaa / 255.0, 0xaa / 255.0, 0xaa / 255.0}
)

// New builds the scene in its initial layout.
func New(sky config.SkyConfig, shadows config.ShadowConfig) *Scene {
	ground := &Node{
		Name:          "ground",
		Kind:          KindGround,
		Mesh:          geometry.Plane(100, 100),
		Material:      Material{Color: groundColor, DoubleSided: true},
		Position:      r3.Vec{Y: -1},
		RotationX:     -gomath.Pi / 2,
		ReceiveShadow: true,
	}

	s := &Scene{
		Ground: ground,
		Cube: &Node{
			Name:          "cube",
			Kind:          KindCube,
			Mesh:          geometry.Box(1, 3, 1),
			Material:      Material{Color: cubeColor},
			Position:      r3.Vec{Y: 1},
			CastShadow:    true,
			ReceiveShadow: true,
		},
		Sun: &Node{
			Name:     "sun",
			Kind:     KindSun,
			Mesh:     geometry.Sphere(float32(sky.SunRadius), 32, 32),
			Material: Material{Color: sunColor, Unlit: true},
		},
		Moon: &Node{
			Name:     "moon",
			Kind:     KindMoon,
			Mesh:     geometry.Sphere(float32(sky.MoonRadius), 32, 32),
			Material: Material{Color: moonColor},
		},
		Light: &DirectionalLight{
			Color:      [3]float32{1, 1, 1},
			Intensity:  sky.InitialIntensity,
			Target:     ground.Position,
			CastShadow: shadows.Enabled,
			Shadow: Shadow{
				MapSize: shadows.MapSize,
				Bias:    shadows.Bias,
				Camera:  shadowCamera(shadows),
			},
		},
	}
	s.Light.UpdateShadow()
	return s
}

// shadowCamera returns the configured shadow volume, or the default one when
// the configured volume is empty.
func shadowCamera(cfg config.ShadowConfig) shadow.OrthoCamera {
	cam := shadow.OrthoCamera{Extent: cfg.Extent, Near: cfg.Near, Far: cfg.Far}
	if !cam.Valid() {
		return shadow.DefaultCamera()
	}
	return cam
}

// Nodes returns the renderable objects in draw order.
func (s *Scene) Nodes() []*Node {
	return []*Node{s.Ground, s.Cube, s.Sun, s.Moon}
}

// Count returns how many nodes of a kind the scene holds.
func (s *Scene) Count(kind Kind) int {
	n := 0
	for _, node := range s.Nodes() {
		if node != nil && node.Kind == kind {
			n++
		}
	}
	return n
}
