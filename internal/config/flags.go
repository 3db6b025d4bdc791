package config

import (
	"flag"
	"math"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLatitude   = flag.Float64("lat", math.NaN(), "Observer latitude in degrees")
	flagLongitude  = flag.Float64("lon", math.NaN(), "Observer longitude in degrees")
	flagTimeScale  = flag.Float64("timescale", 0, "Simulated milliseconds per real millisecond")
	flagBackend    = flag.String("backend", "", "Astronomy backend (suncalc, meeus)")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFailStop   = flag.Bool("failstop", false, "Stop the render loop on the first failed frame")
	flagSave       = flag.Bool("saveconfig", false, "Write the effective config to the user config dir and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --saveconfig was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	// NaN marks an unset coordinate, since 0 is a valid latitude.
	if !math.IsNaN(*flagLatitude) {
		cfg.Observer.Latitude = *flagLatitude
	}
	if !math.IsNaN(*flagLongitude) {
		cfg.Observer.Longitude = *flagLongitude
	}
	if *flagTimeScale > 0 {
		cfg.Clock.TimeScale = *flagTimeScale
	}
	if *flagBackend != "" {
		cfg.Astronomy.Backend = *flagBackend
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagFailStop {
		cfg.Loop.FailStop = true
	}
}
