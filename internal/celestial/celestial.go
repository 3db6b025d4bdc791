// Package celestial turns sky angles into scene positions and light intensity.
//
// The mapping is deliberately simple: x and z follow the azimuth on a circle
// of fixed radius while y follows the elevation. The moon mirrors the sun's
// circle and keeps its previous height unless elevation tracking is enabled.
package celestial

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/suncycle/internal/astro"
	"github.com/Faultbox/suncycle/internal/scene"
)

// PlaceSun maps sun angles to a world position at the given distance.
func PlaceSun(azimuth, elevation, distance float64) r3.Vec {
	return r3.Vec{
		X: distance * math.Cos(azimuth),
		Y: distance * math.Sin(elevation),
		Z: distance * math.Sin(azimuth),
	}
}

// PlaceMoon maps the moon azimuth to a world position opposite the sun's
// circle. The height is carried over unchanged.
func PlaceMoon(azimuth, distance, prevY float64) r3.Vec {
	return r3.Vec{
		X: -distance * math.Cos(azimuth),
		Y: prevY,
		Z: -distance * math.Sin(azimuth),
	}
}

// SunIntensity scales base linearly down from the horizon: full at zero
// elevation, nothing at ±π.
func SunIntensity(elevation, base float64) float64 {
	return base * math.Max(1-math.Abs(elevation)/math.Pi, 0)
}

// UpdateLightDirection moves the light onto the sun so it shines from there
// towards its target.
func UpdateLightDirection(light *scene.DirectionalLight, sunPos r3.Vec) {
	light.Position = sunPos
}

// Updater applies sky angles to a scene.
type Updater struct {
	SunDistance   float64
	MoonDistance  float64
	BaseIntensity float64
	// TrackMoonElevation sets the moon height from its elevation instead of
	// keeping the previous value.
	TrackMoonElevation bool
}

// ApplySun places the sun node and sets the light intensity. It returns the
// new sun position.
func (u Updater) ApplySun(s *scene.Scene, h astro.Horizontal) r3.Vec {
	pos := PlaceSun(h.Azimuth, h.Elevation, u.SunDistance)
	s.Sun.Position = pos
	s.Light.Intensity = SunIntensity(h.Elevation, u.BaseIntensity)
	return pos
}

// ApplyMoon places the moon node.
func (u Updater) ApplyMoon(s *scene.Scene, h astro.Horizontal) r3.Vec {
	y := s.Moon.Position.Y
	if u.TrackMoonElevation {
		y = u.MoonDistance * math.Sin(h.Elevation)
	}
	pos := PlaceMoon(h.Azimuth, u.MoonDistance, y)
	s.Moon.Position = pos
	return pos
}
