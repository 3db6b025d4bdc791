package astro

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/deltat"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// Meeus computes positions with the algorithms from Jean Meeus' Astronomical
// Algorithms. It is slower than SunCalc and includes nutation.
type Meeus struct{}

// Sun returns the sun's apparent azimuth and elevation.
func (Meeus) Sun(t time.Time, obs Observer) (Horizontal, error) {
	if err := checkInput(t, obs); err != nil {
		return Horizontal{}, err
	}
	jd := julian.TimeToJD(t.UTC())
	α, δ := solar.ApparentEquatorial(dynamical(t, jd))
	return checkOutput(toHorizontal(α, δ, jd, obs), t)
}

// Moon returns the moon's apparent azimuth and elevation, geocentric.
func (Meeus) Moon(t time.Time, obs Observer) (Horizontal, error) {
	if err := checkInput(t, obs); err != nil {
		return Horizontal{}, err
	}
	jd := julian.TimeToJD(t.UTC())
	jde := dynamical(t, jd)
	λ, β, _ := moonposition.Position(jde)
	Δψ, Δε := nutation.Nutation(jde)
	sε, cε := (nutation.MeanObliquity(jde) + Δε).Sincos()
	α, δ := coord.EclToEq(λ+Δψ, β, sε, cε)
	return checkOutput(toHorizontal(α, δ, jd, obs), t)
}

// Times uses go-sunrise for rise, set and the solar transit. Noon and nadir
// are reported during polar day and night too.
func (Meeus) Times(t time.Time, obs Observer) (DayTimes, error) {
	if err := checkInput(t, obs); err != nil {
		return DayTimes{}, err
	}
	day := t.UTC()
	rise, set := sunrise.SunriseSunset(obs.Latitude, obs.Longitude, day.Year(), day.Month(), day.Day())
	noon := solarTransit(obs.Longitude, day)
	return DayTimes{
		Sunrise:   rise,
		Sunset:    set,
		SolarNoon: noon,
		Nadir:     noon.Add(-12 * time.Hour),
	}, nil
}

// solarTransit is go-sunrise's transit for the day, the same instant its rise
// and set are centred on.
func solarTransit(longitude float64, day time.Time) time.Time {
	d := sunrise.MeanSolarNoon(longitude, day.Year(), day.Month(), day.Day())
	m := sunrise.SolarMeanAnomaly(d)
	λ := sunrise.EclipticLongitude(m, sunrise.EquationOfCenter(m), d)
	return sunrise.JulianDayToTime(sunrise.SolarTransit(d, m, λ))
}

// dynamical converts the UT Julian day jd of t to dynamical time (JDE).
// Table 10.A covers 1620 to 2010 and the polynomials cover the rest.
func dynamical(t time.Time, jd float64) float64 {
	u := t.UTC()
	year := float64(u.Year()) + float64(u.YearDay()-1)/365.25
	var ΔT unit.Time
	switch {
	case year < 948:
		ΔT = deltat.PolyBefore948(year)
	case year < 1620:
		ΔT = deltat.Poly948to1600(year)
	case year < 2010:
		ΔT = deltat.Interp10A(jd)
	default:
		ΔT = deltat.PolyAfter2000(year)
	}
	return jd + ΔT.Day()
}

// toHorizontal converts apparent equatorial coordinates for the observer.
// Meeus measures azimuth from south like SunCalc but takes longitude positive
// west, so the observer's east-positive longitude is negated.
func toHorizontal(α unit.RA, δ unit.Angle, jd float64, obs Observer) Horizontal {
	φ := unit.AngleFromDeg(obs.Latitude)
	ψ := unit.AngleFromDeg(-obs.Longitude)
	A, h := coord.EqToHz(α, δ, φ, ψ, sidereal.Apparent(jd))
	return Horizontal{
		Azimuth:   normalizeAzimuth(A.Rad()),
		Elevation: h.Rad(),
	}
}
