// Package app drives the scene: each frame it advances the simulated clock,
// moves the sun, moon and light, updates the camera and draws.
package app

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/suncycle/internal/astro"
	"github.com/Faultbox/suncycle/internal/celestial"
	"github.com/Faultbox/suncycle/internal/clock"
	"github.com/Faultbox/suncycle/internal/engine/camera"
	"github.com/Faultbox/suncycle/internal/logger"
	"github.com/Faultbox/suncycle/internal/scene"
)

// ErrNotIdle is returned when Start is called on a loop that already ran.
var ErrNotIdle = errors.New("loop already started")

// Drawer draws the scene. The GL renderer implements it through the viewer.
type Drawer interface {
	Draw(s *scene.Scene, cam *camera.Rig) error
	Resize(width, height int)
}

// State is the loop lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Snapshot is the state applied by the most recent frame.
type Snapshot struct {
	Date         time.Time
	Sun          astro.Horizontal
	Moon         astro.Horizontal
	SunPosition  r3.Vec
	MoonPosition r3.Vec
	Intensity    float64
	Frames       uint64
	Skipped      uint64
}

// LoopConfig wires a Loop to its collaborators.
type LoopConfig struct {
	Clock      clock.Simulated
	Observer   astro.Observer
	Calculator astro.Calculator
	Updater    celestial.Updater
	Scene      *scene.Scene
	Camera     *camera.Rig
	Drawer     Drawer
	Scheduler  Scheduler
	// FailStop stops the loop on the first error. Otherwise failed steps
	// are logged and skipped and the loop keeps running.
	FailStop bool
}

// Loop is the per-frame driver. All methods except Snapshot must be called
// from the render goroutine.
type Loop struct {
	cfg   LoopConfig
	log   *zap.Logger
	frame FrameFunc

	state   State
	err     error
	frames  uint64
	skipped uint64

	snapshot atomic.Pointer[Snapshot]
}

// NewLoop validates the configuration and returns an idle loop.
func NewLoop(cfg LoopConfig) (*Loop, error) {
	switch {
	case cfg.Calculator == nil:
		return nil, errors.New("loop: calculator is required")
	case cfg.Scene == nil:
		return nil, errors.New("loop: scene is required")
	case cfg.Camera == nil:
		return nil, errors.New("loop: camera is required")
	case cfg.Drawer == nil:
		return nil, errors.New("loop: drawer is required")
	case cfg.Scheduler == nil:
		return nil, errors.New("loop: scheduler is required")
	}
	if err := cfg.Observer.Validate(); err != nil {
		return nil, fmt.Errorf("loop: %w", err)
	}

	l := &Loop{
		cfg: cfg,
		log: logger.Named("loop"),
	}
	l.frame = l.tick
	return l, nil
}

// Start runs the first frame immediately for ts and moves the loop to
// running. Later frames run when the scheduler fires.
func (l *Loop) Start(ts float64) error {
	if l.state != StateIdle {
		return ErrNotIdle
	}
	l.state = StateRunning
	l.log.Info("render loop started",
		zap.Float64("time_scale", l.cfg.Clock.Scale),
		zap.Float64("latitude", l.cfg.Observer.Latitude),
		zap.Float64("longitude", l.cfg.Observer.Longitude),
		zap.Bool("fail_stop", l.cfg.FailStop),
	)
	l.tick(ts)
	return nil
}

// Stop halts the loop. A pending frame becomes a no-op.
func (l *Loop) Stop() {
	if l.state == StateRunning {
		l.log.Info("render loop stopped", zap.Uint64("frames", l.frames), zap.Uint64("skipped", l.skipped))
	}
	l.state = StateStopped
}

// State returns the lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// Err returns the error that stopped the loop in fail-stop mode.
func (l *Loop) Err() error {
	return l.err
}

// Frames returns how many frames have been drawn.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Skipped returns how many celestial updates were skipped after errors.
func (l *Loop) Skipped() uint64 {
	return l.skipped
}

// Snapshot returns the last applied frame. It is safe to call from any
// goroutine. ok is false until the first frame ran.
func (l *Loop) Snapshot() (Snapshot, bool) {
	s := l.snapshot.Load()
	if s == nil {
		return Snapshot{}, false
	}
	return *s, true
}

// tick runs one frame for timestamp ts.
func (l *Loop) tick(ts float64) {
	if l.state != StateRunning {
		return
	}

	snap := Snapshot{}
	if prev := l.snapshot.Load(); prev != nil {
		snap = *prev
	}

	date, err := l.cfg.Clock.Date(ts)
	if err != nil {
		if !l.fail("date", err) {
			return
		}
	} else {
		snap.Date = date
		if !l.updateSun(date, &snap) {
			return
		}
	}

	// Camera world matrix is refreshed between the sun and moon updates.
	l.cfg.Camera.UpdateMatrixWorld()

	if err == nil {
		if !l.updateMoon(date, &snap) {
			return
		}
	}

	l.cfg.Camera.Update()

	if drawErr := l.cfg.Drawer.Draw(l.cfg.Scene, l.cfg.Camera); drawErr != nil {
		if !l.fail("draw", drawErr) {
			return
		}
	} else {
		l.frames++
	}

	snap.Frames, snap.Skipped = l.frames, l.skipped
	l.snapshot.Store(&snap)

	l.cfg.Scheduler.RequestFrame(l.frame)
}

// updateSun places the sun, sets the light and refreshes its shadow camera.
// It returns false if the loop stopped.
func (l *Loop) updateSun(date time.Time, snap *Snapshot) bool {
	h, err := l.cfg.Calculator.Sun(date, l.cfg.Observer)
	if err != nil {
		return l.fail("sun", err)
	}
	pos := l.cfg.Updater.ApplySun(l.cfg.Scene, h)
	celestial.UpdateLightDirection(l.cfg.Scene.Light, pos)
	l.cfg.Scene.Light.UpdateShadow()

	snap.Sun, snap.SunPosition, snap.Intensity = h, pos, l.cfg.Scene.Light.Intensity
	return true
}

// updateMoon places the moon. It returns false if the loop stopped.
func (l *Loop) updateMoon(date time.Time, snap *Snapshot) bool {
	h, err := l.cfg.Calculator.Moon(date, l.cfg.Observer)
	if err != nil {
		return l.fail("moon", err)
	}
	snap.Moon, snap.MoonPosition = h, l.cfg.Updater.ApplyMoon(l.cfg.Scene, h)
	return true
}

// fail handles a step error and reports whether the frame may continue.
func (l *Loop) fail(step string, err error) bool {
	err = fmt.Errorf("%s: %w", step, err)
	if l.cfg.FailStop {
		l.err = err
		l.state = StateStopped
		l.log.Error("render loop halted", zap.Error(err), zap.Uint64("frames", l.frames))
		return false
	}
	l.skipped++
	l.log.Warn("frame step skipped", zap.String("step", step), zap.Error(err), zap.Uint64("skipped", l.skipped))
	return true
}

// Resize updates the camera aspect and viewport and draws one frame out of
// band so the window never shows a stretched image.
func (l *Loop) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		l.log.Debug("ignoring empty resize", zap.Int("width", width), zap.Int("height", height))
		return
	}
	l.cfg.Camera.SetAspect(float32(width) / float32(height))
	l.cfg.Drawer.Resize(width, height)
	if err := l.cfg.Drawer.Draw(l.cfg.Scene, l.cfg.Camera); err != nil {
		l.log.Warn("resize draw failed", zap.Error(err))
	}
}
