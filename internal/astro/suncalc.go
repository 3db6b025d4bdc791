package astro

import (
	"time"

	"github.com/sixdouglas/suncalc"
)

// SunCalc delegates to the Go port of the SunCalc library.
type SunCalc struct{}

// Sun returns the sun's azimuth and altitude.
func (SunCalc) Sun(t time.Time, obs Observer) (Horizontal, error) {
	if err := checkInput(t, obs); err != nil {
		return Horizontal{}, err
	}
	p := suncalc.GetPosition(t, obs.Latitude, obs.Longitude)
	return checkOutput(Horizontal{Azimuth: p.Azimuth, Elevation: p.Altitude}, t)
}

// Moon returns the moon's azimuth and altitude.
func (SunCalc) Moon(t time.Time, obs Observer) (Horizontal, error) {
	if err := checkInput(t, obs); err != nil {
		return Horizontal{}, err
	}
	p := suncalc.GetMoonPosition(t, obs.Latitude, obs.Longitude)
	return checkOutput(Horizontal{Azimuth: p.Azimuth, Elevation: p.Altitude}, t)
}

// Times returns sunrise, sunset, solar noon and nadir for the day containing t.
func (SunCalc) Times(t time.Time, obs Observer) (DayTimes, error) {
	if err := checkInput(t, obs); err != nil {
		return DayTimes{}, err
	}
	times := suncalc.GetTimes(t, obs.Latitude, obs.Longitude)
	return DayTimes{
		Sunrise:   times[suncalc.Sunrise].Value,
		Sunset:    times[suncalc.Sunset].Value,
		SolarNoon: times[suncalc.SolarNoon].Value,
		Nadir:     times[suncalc.Nadir].Value,
	}, nil
}
