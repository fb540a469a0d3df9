// Package scheduler runs jobs once per calendar day at a fixed wall-clock
// time in a configured location.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/sitetrack/internal/config"
)

type Job func(ctx context.Context) error

type Daily struct {
	name   string
	hour   int
	minute int
	loc    *time.Location
	job    Job
	log    zerolog.Logger
	now    func() time.Time

	// RunOnStart fires the job once immediately. Used for idempotent jobs so
	// a process started after the daily slot still covers today.
	RunOnStart bool
}

func NewDaily(name, at string, loc *time.Location, job Job, log zerolog.Logger) (*Daily, error) {
	hour, minute, err := config.ParseClock(at)
	if err != nil {
		return nil, fmt.Errorf("schedule %s: %w", name, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Daily{
		name:   name,
		hour:   hour,
		minute: minute,
		loc:    loc,
		job:    job,
		log:    log.With().Str("job", name).Logger(),
		now:    time.Now,
	}, nil
}

// Run blocks until ctx is cancelled.
func (d *Daily) Run(ctx context.Context) {
	d.log.Info().Str("at", fmt.Sprintf("%02d:%02d", d.hour, d.minute)).Str("tz", d.loc.String()).Msg("scheduler started")
	if d.RunOnStart {
		d.fire(ctx)
	}

	for {
		next := nextRun(d.now(), d.loc, d.hour, d.minute)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			d.log.Info().Msg("scheduler stopped")
			return
		case <-timer.C:
			d.fire(ctx)
		}
	}
}

func (d *Daily) fire(ctx context.Context) {
	start := time.Now()
	if err := d.job(ctx); err != nil {
		d.log.Error().Err(err).Dur("took", time.Since(start)).Msg("scheduled job failed")
		return
	}
	d.log.Info().Dur("took", time.Since(start)).Msg("scheduled job finished")
}

// nextRun returns the first hour:minute in loc strictly after now.
func nextRun(now time.Time, loc *time.Location, hour, minute int) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}
