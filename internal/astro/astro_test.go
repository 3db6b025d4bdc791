package astro

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

var backends = []struct {
	name string
	calc Calculator
}{
	{BackendSunCalc, SunCalc{}},
	{BackendMeeus, Meeus{}},
}

func TestNew(t *testing.T) {
	tests := []struct {
		backend string
		want    Calculator
	}{
		{"", SunCalc{}},
		{"suncalc", SunCalc{}},
		{"meeus", Meeus{}},
	}
	for _, tt := range tests {
		got, err := New(tt.backend)
		if err != nil {
			t.Fatalf("New(%q) error: %v", tt.backend, err)
		}
		if got != tt.want {
			t.Errorf("New(%q) = %T, want %T", tt.backend, got, tt.want)
		}
	}

	if _, err := New("ptolemy"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestObserverValidate(t *testing.T) {
	valid := []Observer{{0, 0}, {90, 180}, {-90, -180}, {51.48, -0.0015}}
	for _, o := range valid {
		if err := o.Validate(); err != nil {
			t.Errorf("Validate(%+v) = %v, want nil", o, err)
		}
	}

	invalid := []Observer{{90.1, 0}, {0, 180.5}, {math.NaN(), 0}, {0, math.Inf(-1)}}
	for _, o := range invalid {
		if err := o.Validate(); !errors.Is(err, ErrInvalidObserver) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidObserver", o, err)
		}
	}
}

func TestInvalidInputs(t *testing.T) {
	date := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			if _, err := b.calc.Sun(time.Time{}, Observer{}); !errors.Is(err, ErrInvalidDate) {
				t.Errorf("Sun(zero time) error = %v, want ErrInvalidDate", err)
			}
			if _, err := b.calc.Moon(time.Time{}, Observer{}); !errors.Is(err, ErrInvalidDate) {
				t.Errorf("Moon(zero time) error = %v, want ErrInvalidDate", err)
			}
			if _, err := b.calc.Times(time.Time{}, Observer{}); !errors.Is(err, ErrInvalidDate) {
				t.Errorf("Times(zero time) error = %v, want ErrInvalidDate", err)
			}
			if _, err := b.calc.Sun(date, Observer{Latitude: 100}); !errors.Is(err, ErrInvalidObserver) {
				t.Errorf("Sun(bad observer) error = %v, want ErrInvalidObserver", err)
			}
		})
	}
}

func TestAnglesAreBounded(t *testing.T) {
	obs := Observer{Latitude: 0, Longitude: 0}
	start := time.Unix(0, 0).UTC()

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			// Sweep two simulated days in 37 minute steps.
			for i := 0; i < 78; i++ {
				date := start.Add(time.Duration(i) * 37 * time.Minute)
				for _, f := range []func(time.Time, Observer) (Horizontal, error){b.calc.Sun, b.calc.Moon} {
					h, err := f(date, obs)
					if err != nil {
						t.Fatalf("%s at %v: %v", b.name, date, err)
					}
					if h.Azimuth <= -math.Pi-1e-9 || h.Azimuth > math.Pi+1e-9 {
						t.Errorf("azimuth %v out of (-π, π] at %v", h.Azimuth, date)
					}
					// SunCalc adds refraction to the moon, which can lift it a hair past the bound.
					if math.Abs(h.Elevation) > math.Pi/2+0.01 {
						t.Errorf("elevation %v out of range at %v", h.Elevation, date)
					}
				}
			}
		})
	}
}

func TestSolarNoonIsDailyMaximum(t *testing.T) {
	obs := Observer{Latitude: 0, Longitude: 0}
	date := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			times, err := b.calc.Times(date, obs)
			if err != nil {
				t.Fatalf("Times error: %v", err)
			}
			lo := time.Date(2024, 3, 20, 11, 45, 0, 0, time.UTC)
			hi := time.Date(2024, 3, 20, 12, 30, 0, 0, time.UTC)
			if times.SolarNoon.Before(lo) || times.SolarNoon.After(hi) {
				t.Fatalf("solar noon %v outside %v..%v", times.SolarNoon, lo, hi)
			}
			if !times.Sunrise.Before(times.SolarNoon) || !times.SolarNoon.Before(times.Sunset) {
				t.Errorf("expected sunrise < noon < sunset, got %v %v %v", times.Sunrise, times.SolarNoon, times.Sunset)
			}

			noon, err := b.calc.Sun(times.SolarNoon, obs)
			if err != nil {
				t.Fatalf("Sun at noon: %v", err)
			}
			// Equinox on the equator: the sun passes almost overhead.
			if noon.Elevation < 1.4 {
				t.Errorf("noon elevation %v, want near π/2", noon.Elevation)
			}
			for _, offset := range []time.Duration{-3 * time.Hour, -time.Hour, time.Hour, 3 * time.Hour} {
				h, err := b.calc.Sun(times.SolarNoon.Add(offset), obs)
				if err != nil {
					t.Fatalf("Sun at noon%+v: %v", offset, err)
				}
				if h.Elevation >= noon.Elevation {
					t.Errorf("elevation at noon%+v (%v) not below noon (%v)", offset, h.Elevation, noon.Elevation)
				}
			}
		})
	}
}

func TestBackendsAgree(t *testing.T) {
	obs := Observer{Latitude: 48.85, Longitude: 2.35}
	dates := []time.Time{
		time.Date(2024, 6, 21, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 21, 16, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 10, 10, 30, 0, 0, time.UTC),
	}

	for _, date := range dates {
		sa, err := SunCalc{}.Sun(date, obs)
		if err != nil {
			t.Fatal(err)
		}
		sb, err := Meeus{}.Sun(date, obs)
		if err != nil {
			t.Fatal(err)
		}
		if d := angleDiff(sa.Azimuth, sb.Azimuth); d > 0.01 {
			t.Errorf("sun azimuth at %v differs by %v rad", date, d)
		}
		if d := math.Abs(sa.Elevation - sb.Elevation); d > 0.01 {
			t.Errorf("sun elevation at %v differs by %v rad", date, d)
		}

		ma, err := SunCalc{}.Moon(date, obs)
		if err != nil {
			t.Fatal(err)
		}
		mb, err := Meeus{}.Moon(date, obs)
		if err != nil {
			t.Fatal(err)
		}
		if d := angleDiff(ma.Azimuth, mb.Azimuth); d > 0.1 {
			t.Errorf("moon azimuth at %v differs by %v rad", date, d)
		}
		if d := math.Abs(ma.Elevation - mb.Elevation); d > 0.1 {
			t.Errorf("moon elevation at %v differs by %v rad", date, d)
		}
	}
}

func TestNormalizeAzimuth(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
		{4 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := normalizeAzimuth(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeAzimuth(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func angleDiff(a, b float64) float64 {
	return math.Abs(normalizeAzimuth(a - b))
}

func TestPolarTimesKeepSolarNoon(t *testing.T) {
	obs := Observer{Latitude: 85, Longitude: 0}
	days := []struct {
		name string
		date time.Time
	}{
		{"polar day", time.Date(2024, 6, 21, 6, 0, 0, 0, time.UTC)},
		{"polar night", time.Date(2024, 12, 21, 6, 0, 0, 0, time.UTC)},
	}

	for _, b := range backends {
		for _, d := range days {
			t.Run(b.name+"/"+d.name, func(t *testing.T) {
				times, err := b.calc.Times(d.date, obs)
				if err != nil {
					t.Fatalf("Times error: %v", err)
				}
				lo := time.Date(d.date.Year(), d.date.Month(), d.date.Day(), 11, 30, 0, 0, time.UTC)
				hi := lo.Add(time.Hour)
				if times.SolarNoon.Before(lo) || times.SolarNoon.After(hi) {
					t.Errorf("solar noon %v outside %v..%v", times.SolarNoon, lo, hi)
				}
				if got := times.SolarNoon.Sub(times.Nadir); got < 12*time.Hour-time.Second || got > 12*time.Hour+time.Second {
					t.Errorf("nadir %v before noon, want 12h", got)
				}
			})
		}
	}

	t.Run("meeus rise and set", func(t *testing.T) {
		for _, d := range days {
			times, err := Meeus{}.Times(d.date, obs)
			if err != nil {
				t.Fatal(err)
			}
			if !times.Sunrise.IsZero() || !times.Sunset.IsZero() {
				t.Errorf("%s: sunrise %v sunset %v, want zero", d.name, times.Sunrise, times.Sunset)
			}
		}
	})
}

func TestMeeusNoonMatchesRiseAndSet(t *testing.T) {
	obs := Observer{Latitude: 48.85, Longitude: 2.35}
	times, err := Meeus{}.Times(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), obs)
	if err != nil {
		t.Fatal(err)
	}
	mid := times.Sunrise.Add(times.Sunset.Sub(times.Sunrise) / 2)
	if d := times.SolarNoon.Sub(mid); d < -2*time.Second || d > 2*time.Second {
		t.Errorf("solar noon %v is %v from the rise/set midpoint", times.SolarNoon, d)
	}
}

func TestDynamicalTime(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		min, max float64 // seconds
	}{
		{"table", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), 55, 60},
		{"after table", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), 60, 110},
		{"medieval", time.Date(1200, 6, 1, 0, 0, 0, 0, time.UTC), 800, 1100},
		{"ancient", time.Date(500, 6, 1, 0, 0, 0, 0, time.UTC), 4000, 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jd := julian.TimeToJD(tt.date)
			got := (dynamical(tt.date, jd) - jd) * 86400
			if got < tt.min || got > tt.max {
				t.Errorf("ΔT = %.1fs, want %v..%v", got, tt.min, tt.max)
			}
		})
	}
}
