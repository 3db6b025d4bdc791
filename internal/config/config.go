// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Config holds all application settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Observer  ObserverConfig  `yaml:"observer"`
	Clock     ClockConfig     `yaml:"clock"`
	Astronomy AstronomyConfig `yaml:"astronomy"`
	Sky       SkyConfig       `yaml:"sky"`
	Camera    CameraConfig    `yaml:"camera"`
	Shadows   ShadowConfig    `yaml:"shadows"`
	Loop      LoopConfig      `yaml:"loop"`
	Debug     DebugConfig     `yaml:"debug"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	Fullscreen  bool `yaml:"fullscreen"`
	VSync       bool `yaml:"vsync"`
	MSAASamples int  `yaml:"msaa_samples"`
}

// ObserverConfig is the fixed position on Earth the sky is computed for.
type ObserverConfig struct {
	Latitude  float64 `yaml:"latitude"`  // degrees, north positive
	Longitude float64 `yaml:"longitude"` // degrees, east positive
}

// ClockConfig controls the simulated clock.
type ClockConfig struct {
	// TimeScale multiplies elapsed real milliseconds into simulated milliseconds.
	TimeScale float64 `yaml:"time_scale"`
	// Epoch is the simulated date at elapsed time zero. Zero means the Unix epoch.
	Epoch time.Time `yaml:"epoch"`
}

// AstronomyConfig selects the celestial position backend.
type AstronomyConfig struct {
	Backend string `yaml:"backend"` // suncalc or meeus
}

// SkyConfig holds sun and moon placement and light settings.
type SkyConfig struct {
	SunDistance        float64 `yaml:"sun_distance"`
	SunRadius          float64 `yaml:"sun_radius"`
	MoonDistance       float64 `yaml:"moon_distance"`
	MoonRadius         float64 `yaml:"moon_radius"`
	BaseIntensity      float64 `yaml:"base_intensity"`
	InitialIntensity   float64 `yaml:"initial_intensity"`
	Ambient            float64 `yaml:"ambient"`
	TrackMoonElevation bool    `yaml:"track_moon_elevation"`
}

// CameraConfig holds the perspective camera and orbit control settings.
type CameraConfig struct {
	FOV           float64 `yaml:"fov"` // vertical, degrees
	Near          float64 `yaml:"near"`
	Far           float64 `yaml:"far"`
	Distance      float64 `yaml:"distance"`
	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float64 `yaml:"damping_factor"`
	RotateSpeed   float64 `yaml:"rotate_speed"`
	EnableZoom    bool    `yaml:"enable_zoom"`
	ZoomSpeed     float64 `yaml:"zoom_speed"`
	AutoRotate    bool    `yaml:"auto_rotate"`
}

// ShadowConfig holds directional light shadow settings.
type ShadowConfig struct {
	Enabled    bool    `yaml:"enabled"`
	MapSize    int32   `yaml:"map_size"`
	Bias       float32 `yaml:"bias"`
	Extent     float32 `yaml:"extent"` // half size of the orthographic shadow camera
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	ShowHelper bool    `yaml:"show_helper"`
}

// LoopConfig holds render loop failure policy.
type LoopConfig struct {
	// FailStop halts the loop on the first failed frame instead of skipping it.
	FailStop bool `yaml:"fail_stop"`
}

// DebugConfig holds diagnostics settings.
type DebugConfig struct {
	ScreenshotDir  string `yaml:"screenshot_dir"`
	StatusSchedule string `yaml:"status_schedule"` // cron spec, empty disables
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the stock scene settings.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			MSAASamples: 4,
		},
		Observer: ObserverConfig{
			Latitude:  0,
			Longitude: 0,
		},
		Clock: ClockConfig{
			TimeScale: 500,
		},
		Astronomy: AstronomyConfig{
			Backend: "suncalc",
		},
		Sky: SkyConfig{
			SunDistance:      150,
			SunRadius:        10,
			MoonDistance:     150,
			MoonRadius:       8,
			BaseIntensity:    1.3,
			InitialIntensity: 1.2,
			Ambient:          0,
		},
		Camera: CameraConfig{
			FOV:           75,
			Near:          0.1,
			Far:           1000,
			Distance:      4,
			EnableDamping: true,
			DampingFactor: 0.1,
			RotateSpeed:   0.25,
			EnableZoom:    true,
			ZoomSpeed:     1,
			AutoRotate:    false,
		},
		Shadows: ShadowConfig{
			Enabled:    true,
			MapSize:    1024,
			Bias:       -0.0001,
			Extent:     5,
			Near:       0.5,
			Far:        500,
			ShowHelper: true,
		},
		Debug: DebugConfig{
			ScreenshotDir:  "screenshots",
			StatusSchedule: "@every 10s",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks values the renderer and the sky computations cannot recover from.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	if !finite(c.Observer.Latitude) || math.Abs(c.Observer.Latitude) > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalid, c.Observer.Latitude)
	}
	if !finite(c.Observer.Longitude) || math.Abs(c.Observer.Longitude) > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalid, c.Observer.Longitude)
	}
	if !finite(c.Clock.TimeScale) || c.Clock.TimeScale <= 0 {
		return fmt.Errorf("%w: time scale must be positive, got %v", ErrInvalid, c.Clock.TimeScale)
	}
	switch c.Astronomy.Backend {
	case "suncalc", "meeus":
	default:
		return fmt.Errorf("%w: unknown astronomy backend %q", ErrInvalid, c.Astronomy.Backend)
	}
	if c.Camera.DampingFactor < 0 || c.Camera.DampingFactor > 1 {
		return fmt.Errorf("%w: damping factor %v outside [0, 1]", ErrInvalid, c.Camera.DampingFactor)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip range %v..%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	if c.Shadows.Enabled {
		if size := c.Shadows.MapSize; size <= 0 || size&(size-1) != 0 {
			return fmt.Errorf("%w: shadow map size %d is not a power of two", ErrInvalid, size)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
