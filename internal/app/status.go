package app

import (
	"fmt"
	"math"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/suncycle/internal/astro"
	"github.com/Faultbox/suncycle/internal/logger"
)

// SnapshotSource provides the most recent frame state.
type SnapshotSource interface {
	Snapshot() (Snapshot, bool)
}

// StatusReporter periodically logs where the sun and moon are and the solar
// events of the simulated day. It runs on the cron goroutine and only reads
// snapshots.
type StatusReporter struct {
	cron     *cron.Cron
	source   SnapshotSource
	calc     astro.Calculator
	observer astro.Observer
	log      *zap.Logger
}

// NewStatusReporter schedules reports with a standard cron spec or a
// descriptor such as "@every 10s".
func NewStatusReporter(spec string, source SnapshotSource, calc astro.Calculator, obs astro.Observer) (*StatusReporter, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse status schedule: %w", err)
	}

	r := &StatusReporter{
		cron:     cron.New(),
		source:   source,
		calc:     calc,
		observer: obs,
		log:      logger.Named("status"),
	}
	r.cron.Schedule(schedule, r)
	r.log.Debug("status reporter scheduled",
		zap.String("schedule", spec),
		zap.Time("next", schedule.Next(time.Now())),
	)
	return r, nil
}

// Start begins reporting in the background.
func (r *StatusReporter) Start() {
	r.cron.Start()
}

// Stop stops the scheduler and waits for a running report to finish.
func (r *StatusReporter) Stop() {
	<-r.cron.Stop().Done()
}

// Run logs one report. It implements cron.Job.
func (r *StatusReporter) Run() {
	snap, ok := r.source.Snapshot()
	if !ok {
		r.log.Debug("no frame rendered yet")
		return
	}

	fields := []zap.Field{
		zap.Time("date", snap.Date),
		zap.Float64("sun_azimuth_deg", degrees(snap.Sun.Azimuth)),
		zap.Float64("sun_elevation_deg", degrees(snap.Sun.Elevation)),
		zap.Float64("moon_azimuth_deg", degrees(snap.Moon.Azimuth)),
		zap.Float64("intensity", snap.Intensity),
		zap.Uint64("frames", snap.Frames),
		zap.Uint64("skipped", snap.Skipped),
	}

	times, err := r.calc.Times(snap.Date, r.observer)
	if err != nil {
		r.log.Warn("solar times unavailable", zap.Error(err))
	} else {
		fields = append(fields,
			zap.Time("sunrise", times.Sunrise),
			zap.Time("solar_noon", times.SolarNoon),
			zap.Time("sunset", times.Sunset),
		)
	}

	r.log.Info("sky status", fields...)
}

func degrees(rad float64) float64 {
	return math.Round(rad*180/math.Pi*100) / 100
}
