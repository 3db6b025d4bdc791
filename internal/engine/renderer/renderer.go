// Package renderer draws the scene with OpenGL: a depth pass for the
// sunlight's shadow map, a lit pass and optional debug lines.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/suncycle/internal/engine/camera"
	"github.com/Faultbox/suncycle/internal/engine/debug"
	"github.com/Faultbox/suncycle/internal/engine/geometry"
	"github.com/Faultbox/suncycle/internal/engine/shader"
	"github.com/Faultbox/suncycle/internal/engine/shadow"
	"github.com/Faultbox/suncycle/internal/logger"
	"github.com/Faultbox/suncycle/internal/scene"
)

// Config holds renderer configuration.
type Config struct {
	Width            int
	Height           int
	ShadowsEnabled   bool
	ShadowMapSize    int32
	ShowShadowHelper bool
	Ambient          float32
	Gamma            float32
	Multisample      bool
	ClearColor       [3]float32
}

// helperColor is the shadow camera outline color.
var helperColor = [3]float32{1, 0.67, 0}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	lit   *shader.Program
	depth *shader.Program
	lines *shader.Program

	meshes    map[*geometry.Mesh]*gpuMesh
	shadowMap *shadow.Map
	helper    *lineBuffer
}

// New creates a renderer. It must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	if cfg.Gamma <= 0 {
		cfg.Gamma = 2.2
	}
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		meshes: make(map[*geometry.Mesh]*gpuMesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	if r.lit, err = shader.New("lit", litVertexShader, litFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.depth, err = shader.New("depth", depthVertexShader, depthFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.lines, err = shader.New("lines", lineVertexShader, lineFragmentShader); err != nil {
		r.Close()
		return nil, err
	}

	if cfg.ShadowsEnabled {
		if r.shadowMap, err = shadow.NewMap(cfg.ShadowMapSize); err != nil {
			r.Close()
			return nil, fmt.Errorf("creating shadow map: %w", err)
		}
		if cfg.ShowShadowHelper {
			r.helper = newLineBuffer()
		}
	}

	if cfg.Multisample {
		gl.Enable(gl.MULTISAMPLE)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for m, g := range r.meshes {
		g.destroy()
		delete(r.meshes, m)
	}
	if r.helper != nil {
		r.helper.destroy()
		r.helper = nil
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
		r.shadowMap = nil
	}
	for _, p := range []*shader.Program{r.lit, r.depth, r.lines} {
		if p != nil {
			p.Delete()
		}
	}
}

// Resize sets the viewport to the new framebuffer size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Render draws one frame of the scene from the camera.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Rig) {
	light := s.Light
	shadows := r.shadowMap.IsValid() && light.CastShadow

	if shadows {
		r.renderShadowPass(s)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	viewProj := cam.ViewProj()
	lightViewProj := light.Shadow.ViewProj
	dir := light.Direction()

	r.lit.Use()
	gl.UniformMatrix4fv(r.lit.Uniform("uViewProj"), 1, false, &viewProj[0])
	gl.UniformMatrix4fv(r.lit.Uniform("uLightViewProj"), 1, false, &lightViewProj[0])
	gl.Uniform3f(r.lit.Uniform("uLightDir"), float32(dir.X), float32(dir.Y), float32(dir.Z))
	gl.Uniform3f(r.lit.Uniform("uLightColor"), light.Color[0], light.Color[1], light.Color[2])
	gl.Uniform1f(r.lit.Uniform("uIntensity"), float32(light.Intensity))
	gl.Uniform1f(r.lit.Uniform("uAmbient"), r.config.Ambient)
	gl.Uniform1f(r.lit.Uniform("uGamma"), r.config.Gamma)
	gl.Uniform1f(r.lit.Uniform("uShadowBias"), light.Shadow.Bias)
	gl.Uniform1i(r.lit.Uniform("uShadowsEnabled"), boolToInt(shadows))
	gl.Uniform1i(r.lit.Uniform("uShadowMap"), 0)
	if shadows {
		r.shadowMap.BindTexture(gl.TEXTURE0)
	}

	for _, node := range s.Nodes() {
		if node.Material.DoubleSided {
			gl.Disable(gl.CULL_FACE)
		} else {
			gl.Enable(gl.CULL_FACE)
			gl.CullFace(gl.BACK)
		}

		model := node.Model()
		c := node.Material.Color
		gl.UniformMatrix4fv(r.lit.Uniform("uModel"), 1, false, &model[0])
		gl.Uniform3f(r.lit.Uniform("uColor"), c[0], c[1], c[2])
		gl.Uniform1i(r.lit.Uniform("uUnlit"), boolToInt(node.Material.Unlit))
		gl.Uniform1i(r.lit.Uniform("uDoubleSided"), boolToInt(node.Material.DoubleSided))
		gl.Uniform1i(r.lit.Uniform("uReceiveShadow"), boolToInt(node.ReceiveShadow))
		r.mesh(node.Mesh).draw()
	}

	if r.helper != nil {
		r.helper.update(debug.FrustumWireframe(lightViewProj))
		r.lines.Use()
		gl.UniformMatrix4fv(r.lines.Uniform("uViewProj"), 1, false, &viewProj[0])
		gl.Uniform3f(r.lines.Uniform("uColor"), helperColor[0], helperColor[1], helperColor[2])
		r.helper.draw()
	}
}

func (r *Renderer) renderShadowPass(s *scene.Scene) {
	lightViewProj := s.Light.Shadow.ViewProj

	r.shadowMap.Bind()
	r.depth.Use()
	gl.UniformMatrix4fv(r.depth.Uniform("uLightViewProj"), 1, false, &lightViewProj[0])
	for _, node := range s.Nodes() {
		if !node.CastShadow {
			continue
		}
		model := node.Model()
		gl.UniformMatrix4fv(r.depth.Uniform("uModel"), 1, false, &model[0])
		r.mesh(node.Mesh).draw()
	}
	r.shadowMap.Unbind()
}

// mesh returns the GPU copy of m, uploading it on first use.
func (r *Renderer) mesh(m *geometry.Mesh) *gpuMesh {
	g, ok := r.meshes[m]
	if !ok {
		g = uploadMesh(m)
		r.meshes[m] = g
		r.log.Debug("mesh uploaded",
			zap.Int("vertices", len(m.Vertices)),
			zap.Int("triangles", m.TriangleCount()),
		)
	}
	return g
}

// ReadPixels reads back the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels, w, h
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
