// Package viewer owns the window and wires input, the renderer and the
// render loop together.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/suncycle/internal/app"
	"github.com/Faultbox/suncycle/internal/astro"
	"github.com/Faultbox/suncycle/internal/celestial"
	"github.com/Faultbox/suncycle/internal/clock"
	"github.com/Faultbox/suncycle/internal/config"
	"github.com/Faultbox/suncycle/internal/engine/camera"
	"github.com/Faultbox/suncycle/internal/engine/debug"
	"github.com/Faultbox/suncycle/internal/engine/input"
	"github.com/Faultbox/suncycle/internal/engine/renderer"
	"github.com/Faultbox/suncycle/internal/engine/window"
	"github.com/Faultbox/suncycle/internal/logger"
	"github.com/Faultbox/suncycle/internal/scene"
)

const title = "Suncycle"

// Viewer is the running application.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	scene     *scene.Scene
	camera    *camera.Rig
	scheduler *app.FrameScheduler
	loop      *app.Loop
	status    *app.StatusReporter
	source    clock.Source

	screenshots *debug.ScreenshotCapture
	capture     bool
}

// New creates the window, GL resources and scene.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:         cfg,
		log:         logger.Named("viewer"),
		input:       input.New(),
		scheduler:   &app.FrameScheduler{},
		screenshots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "suncycle"),
	}

	calc, err := astro.New(cfg.Astronomy.Backend)
	if err != nil {
		return nil, err
	}
	observer := astro.Observer{Latitude: cfg.Observer.Latitude, Longitude: cfg.Observer.Longitude}

	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("backend", cfg.Astronomy.Backend),
	)

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:       title,
		Width:       cfg.Graphics.Width,
		Height:      cfg.Graphics.Height,
		Fullscreen:  cfg.Graphics.Fullscreen,
		VSync:       cfg.Graphics.VSync,
		MSAASamples: cfg.Graphics.MSAASamples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window, since it needs the GL context.
	fbWidth, fbHeight := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:            fbWidth,
		Height:           fbHeight,
		ShadowsEnabled:   cfg.Shadows.Enabled,
		ShadowMapSize:    cfg.Shadows.MapSize,
		ShowShadowHelper: cfg.Shadows.ShowHelper,
		Ambient:          float32(cfg.Sky.Ambient),
		Gamma:            2.2,
		Multisample:      cfg.Graphics.MSAASamples > 1,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	width, height := v.window.GetSize()
	v.scene = scene.New(cfg.Sky, cfg.Shadows)
	v.camera = camera.NewRig(cfg.Camera, float32(width)/float32(height))
	v.source = clock.NewSystemSource()

	v.loop, err = app.NewLoop(app.LoopConfig{
		Clock:      clock.Simulated{Scale: cfg.Clock.TimeScale, Epoch: cfg.Clock.Epoch},
		Observer:   observer,
		Calculator: calc,
		Updater: celestial.Updater{
			SunDistance:        cfg.Sky.SunDistance,
			MoonDistance:       cfg.Sky.MoonDistance,
			BaseIntensity:      cfg.Sky.BaseIntensity,
			TrackMoonElevation: cfg.Sky.TrackMoonElevation,
		},
		Scene:     v.scene,
		Camera:    v.camera,
		Drawer:    v,
		Scheduler: v.scheduler,
		FailStop:  cfg.Loop.FailStop,
	})
	if err != nil {
		v.Close()
		return nil, err
	}

	if cfg.Debug.StatusSchedule != "" {
		v.status, err = app.NewStatusReporter(cfg.Debug.StatusSchedule, v.loop, calc, observer)
		if err != nil {
			v.Close()
			return nil, err
		}
	}

	v.log.Info("viewer initialized")
	return v, nil
}

// Draw renders the scene and presents it. It implements app.Drawer.
func (v *Viewer) Draw(s *scene.Scene, cam *camera.Rig) error {
	v.renderer.Render(s, cam)
	// Read back before the swap, after it the back buffer is undefined.
	if v.capture {
		v.capture = false
		v.screenshot()
	}
	v.window.SwapBuffers()
	return nil
}

// Resize follows a window size change. It implements app.Drawer.
func (v *Viewer) Resize(width, height int) {
	// The framebuffer can be larger than the window on high-DPI displays.
	fbWidth, fbHeight := v.window.DrawableSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		fbWidth, fbHeight = width, height
	}
	v.renderer.Resize(fbWidth, fbHeight)
}

// Run drives the render loop until the window closes, ctx is cancelled or
// the loop halts on an error.
func (v *Viewer) Run(ctx context.Context) error {
	if v.status != nil {
		v.status.Start()
		defer v.status.Stop()
	}

	if err := v.loop.Start(v.source.Now()); err != nil {
		return err
	}
	defer v.loop.Stop()

	fpsTimer := time.Now()
	lastFrames := v.loop.Frames()

	for {
		select {
		case <-ctx.Done():
			v.log.Info("shutdown requested")
			return nil
		default:
		}

		if v.input.Update() {
			v.log.Info("window closed")
			return nil
		}
		if quit := v.handleEvents(); quit {
			return nil
		}

		// With vsync the swap inside Draw paces this loop to the display.
		if !v.scheduler.Fire(v.source.Now()) {
			if err := v.loop.Err(); err != nil {
				return fmt.Errorf("render loop: %w", err)
			}
			return nil
		}

		if time.Since(fpsTimer) >= time.Second {
			frames := v.loop.Frames()
			v.log.Debug("fps", zap.Uint64("count", frames-lastFrames), zap.Uint64("skipped", v.loop.Skipped()))
			if snap, ok := v.loop.Snapshot(); ok {
				v.window.SetTitle(fmt.Sprintf("%s - %s", title, snap.Date.Format("2006-01-02 15:04 MST")))
			}
			lastFrames = frames
			fpsTimer = time.Now()
		}
	}
}

// handleEvents applies input from the last poll. It returns true on quit.
func (v *Viewer) handleEvents() bool {
	if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
		v.capture = true
	}
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.loop.Resize(event.Width, event.Height)

		case input.EventKeyDown:
			if event.Key == sdl.SCANCODE_ESCAPE {
				return true
			}

		case input.EventMouseMove:
			if v.input.IsButtonDown(sdl.BUTTON_LEFT) {
				_, height := v.window.GetSize()
				v.camera.HandleRotate(float64(event.DeltaX), float64(event.DeltaY), height)
			}

		case input.EventMouseWheel:
			v.camera.HandleZoom(float64(event.Wheel))
		}
	}
	return false
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GL and window resources in reverse creation order.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
		v.renderer = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}
