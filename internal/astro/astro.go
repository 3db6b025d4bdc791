// Package astro computes where the sun and moon stand in an observer's sky.
//
// Angles follow the SunCalc convention used throughout the scene: radians,
// azimuth measured from south and increasing towards west, elevation above the
// horizon.
package astro

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidDate is returned for dates the backends cannot place.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidObserver is returned for coordinates outside the globe.
	ErrInvalidObserver = errors.New("invalid observer")
)

// Observer is a fixed position on Earth in degrees, north and east positive.
type Observer struct {
	Latitude  float64
	Longitude float64
}

// Validate reports whether the coordinates are finite and on the globe.
func (o Observer) Validate() error {
	if !finite(o.Latitude) || math.Abs(o.Latitude) > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidObserver, o.Latitude)
	}
	if !finite(o.Longitude) || math.Abs(o.Longitude) > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidObserver, o.Longitude)
	}
	return nil
}

// Horizontal is a position in the observer's sky.
type Horizontal struct {
	Azimuth   float64
	Elevation float64
}

// DayTimes holds the solar events of the day containing a date.
// Sunrise and sunset are zero when they do not occur (polar day or night).
// Solar noon and nadir are always set.
type DayTimes struct {
	Sunrise   time.Time
	Sunset    time.Time
	SolarNoon time.Time
	Nadir     time.Time
}

// Calculator maps a date and an observer to sky positions. Implementations are
// pure and safe for concurrent use.
type Calculator interface {
	Sun(t time.Time, obs Observer) (Horizontal, error)
	Moon(t time.Time, obs Observer) (Horizontal, error)
	Times(t time.Time, obs Observer) (DayTimes, error)
}

// Backend names accepted by New.
const (
	BackendSunCalc = "suncalc"
	BackendMeeus   = "meeus"
)

// New returns the calculator for a backend name. An empty name selects SunCalc.
func New(backend string) (Calculator, error) {
	switch backend {
	case "", BackendSunCalc:
		return SunCalc{}, nil
	case BackendMeeus:
		return Meeus{}, nil
	default:
		return nil, fmt.Errorf("unknown astronomy backend %q", backend)
	}
}

// checkInput validates the arguments every backend shares.
func checkInput(t time.Time, obs Observer) error {
	if t.IsZero() {
		return fmt.Errorf("%w: zero time", ErrInvalidDate)
	}
	return obs.Validate()
}

// checkOutput rejects non-finite angles coming back from a library.
func checkOutput(h Horizontal, t time.Time) (Horizontal, error) {
	if !finite(h.Azimuth) || !finite(h.Elevation) {
		return Horizontal{}, fmt.Errorf("%w: no position for %s", ErrInvalidDate, t.Format(time.RFC3339))
	}
	return h, nil
}

// normalizeAzimuth wraps an angle into (-π, π].
func normalizeAzimuth(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
