package celestial

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/suncycle/internal/astro"
	"github.com/Faultbox/suncycle/internal/config"
	"github.com/Faultbox/suncycle/internal/scene"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestPlaceSun(t *testing.T) {
	tests := []struct {
		name     string
		az, el   float64
		distance float64
		want     r3.Vec
	}{
		{"south on horizon", 0, 0, 150, r3.Vec{X: 150}},
		{"west on horizon", math.Pi / 2, 0, 150, r3.Vec{Z: 150}},
		{"zenith due south", 0, math.Pi / 2, 150, r3.Vec{X: 150, Y: 150}},
		{"below horizon north", math.Pi, -math.Pi / 6, 100, r3.Vec{X: -100, Y: -50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaceSun(tt.az, tt.el, tt.distance)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z) {
				t.Errorf("PlaceSun(%v, %v, %v) = %v, want %v", tt.az, tt.el, tt.distance, got, tt.want)
			}
		})
	}
}

func TestPlaceSunBounded(t *testing.T) {
	const d = 150
	for az := -math.Pi; az <= math.Pi; az += 0.1 {
		for el := -math.Pi / 2; el <= math.Pi/2; el += 0.1 {
			p := PlaceSun(az, el, d)
			// The horizontal part always lies on the circle of radius d.
			if r := math.Hypot(p.X, p.Z); !near(r, d) {
				t.Fatalf("horizontal radius %v at az=%v el=%v", r, az, el)
			}
			if math.Abs(p.Y) > d+eps {
				t.Fatalf("height %v exceeds distance at el=%v", p.Y, el)
			}
		}
	}
}

func TestPlaceMoonMirrorsAndKeepsHeight(t *testing.T) {
	for az := -math.Pi; az <= math.Pi; az += 0.25 {
		sun := PlaceSun(az, 0, 150)
		moon := PlaceMoon(az, 150, 42)
		if !near(moon.X, -sun.X) || !near(moon.Z, -sun.Z) {
			t.Errorf("moon %v does not mirror sun %v at az=%v", moon, sun, az)
		}
		if moon.Y != 42 {
			t.Errorf("moon height = %v, want 42", moon.Y)
		}
	}
}

func TestSunIntensity(t *testing.T) {
	tests := []struct {
		el   float64
		want float64
	}{
		{0, 1.3},
		{math.Pi, 0},
		{-math.Pi, 0},
		{math.Pi / 2, 0.65},
		{-math.Pi / 2, 0.65},
		{4, 0},
	}
	for _, tt := range tests {
		if got := SunIntensity(tt.el, 1.3); !near(got, tt.want) {
			t.Errorf("SunIntensity(%v) = %v, want %v", tt.el, got, tt.want)
		}
	}
}

func TestSunIntensityDecreasesWithElevation(t *testing.T) {
	prev := SunIntensity(0, 1)
	for el := 0.05; el <= math.Pi/2; el += 0.05 {
		got := SunIntensity(el, 1)
		if got >= prev {
			t.Fatalf("intensity did not fall at el=%v: %v >= %v", el, got, prev)
		}
		if got < 0 || got > 1 {
			t.Fatalf("intensity %v outside [0, 1]", got)
		}
		prev = got
	}
}

func TestUpdateLightDirection(t *testing.T) {
	s := newScene()
	pos := r3.Vec{X: 1, Y: 2, Z: 3}
	UpdateLightDirection(s.Light, pos)
	if s.Light.Position != pos {
		t.Errorf("light at %v, want %v", s.Light.Position, pos)
	}
}

func newScene() *scene.Scene {
	cfg := config.Default()
	return scene.New(cfg.Sky, cfg.Shadows)
}

func TestUpdaterApplySun(t *testing.T) {
	s := newScene()
	u := Updater{SunDistance: 150, MoonDistance: 150, BaseIntensity: 1.3}

	pos := u.ApplySun(s, astro.Horizontal{Azimuth: 0, Elevation: math.Pi / 2})
	if s.Sun.Position != pos {
		t.Errorf("sun node at %v, returned %v", s.Sun.Position, pos)
	}
	if !near(s.Light.Intensity, 0.65) {
		t.Errorf("intensity = %v, want 0.65", s.Light.Intensity)
	}
}

func TestUpdaterApplyMoonKeepsHeight(t *testing.T) {
	s := newScene()
	s.Moon.Position.Y = 7
	u := Updater{SunDistance: 150, MoonDistance: 150, BaseIntensity: 1.3}

	for _, h := range []astro.Horizontal{{Azimuth: 0.3, Elevation: 1}, {Azimuth: -2, Elevation: -0.4}} {
		u.ApplyMoon(s, h)
		if s.Moon.Position.Y != 7 {
			t.Errorf("moon height changed to %v", s.Moon.Position.Y)
		}
	}
}

func TestUpdaterApplyMoonTracksElevation(t *testing.T) {
	s := newScene()
	u := Updater{MoonDistance: 150, TrackMoonElevation: true}

	u.ApplyMoon(s, astro.Horizontal{Azimuth: 0, Elevation: math.Pi / 6})
	if !near(s.Moon.Position.Y, 75) {
		t.Errorf("moon height = %v, want 75", s.Moon.Position.Y)
	}
}
