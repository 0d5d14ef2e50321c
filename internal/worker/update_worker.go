// Package worker runs the nightly maintenance cycle: refresh all listing
// prices, re-derive product display fields, then re-arm satisfied alerts.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dealtrack/dealtrack_api/internal/service"
)

// Refresher appends fresh price observations for every known listing.
type Refresher interface {
	RefreshAll(ctx context.Context) (*service.RefreshSummary, error)
}

// Syncer re-derives product display fields from stored observations.
type Syncer interface {
	SyncAll(ctx context.Context) (*service.SyncSummary, error)
}

// Rearmer resets satisfied alerts so they can fire again.
type Rearmer interface {
	Rearm(ctx context.Context) (int64, error)
}

// UpdateWorker triggers the maintenance cycle once a day at a fixed local
// time. Stages run in order; a failed stage aborts the rest of that cycle.
type UpdateWorker struct {
	refresher Refresher
	syncer    Syncer
	rearmer   Rearmer

	hour     int
	minute   int
	location *time.Location
}

// NewUpdateWorker creates an UpdateWorker. updateTime is "HH:MM" wall clock
// in the named IANA timezone.
func NewUpdateWorker(refresher Refresher, syncer Syncer, rearmer Rearmer, updateTime, timezone string) (*UpdateWorker, error) {
	hour, minute, err := parseClock(updateTime)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	return &UpdateWorker{
		refresher: refresher,
		syncer:    syncer,
		rearmer:   rearmer,
		hour:      hour,
		minute:    minute,
		location:  loc,
	}, nil
}

func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid update time %q, want HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid update time %q, want HH:MM", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid update time %q, want HH:MM", s)
	}
	return hour, minute, nil
}

// nextRunAfter returns the next scheduled fire time strictly after now.
func (w *UpdateWorker) nextRunAfter(now time.Time) time.Time {
	local := now.In(w.location)
	next := time.Date(local.Year(), local.Month(), local.Day(), w.hour, w.minute, 0, 0, w.location)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start blocks until ctx is done, firing the maintenance cycle on schedule.
// Run it in its own goroutine.
func (w *UpdateWorker) Start(ctx context.Context) {
	log.Info().
		Str("time", fmt.Sprintf("%02d:%02d", w.hour, w.minute)).
		Str("timezone", w.location.String()).
		Msg("update worker started")

	for {
		next := w.nextRunAfter(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info().Msg("update worker stopped")
			return
		case <-timer.C:
			w.runCycle(ctx)
		}
	}
}

// RunNow fires one maintenance cycle immediately, outside the schedule.
func (w *UpdateWorker) RunNow(ctx context.Context) {
	w.runCycle(ctx)
}

func (w *UpdateWorker) runCycle(ctx context.Context) {
	runID := uuid.New().String()[:8]
	logger := log.With().Str("run_id", runID).Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("scheduled task panicked")
		}
	}()

	started := time.Now()
	logger.Info().Msg("scheduled update cycle started")

	if _, err := w.refresher.RefreshAll(ctx); err != nil {
		logger.Error().Err(err).Str("stage", "refresh").Msg("scheduled task failed")
		return
	}

	if _, err := w.syncer.SyncAll(ctx); err != nil {
		logger.Error().Err(err).Str("stage", "sync").Msg("scheduled task failed")
		return
	}

	if _, err := w.rearmer.Rearm(ctx); err != nil {
		logger.Error().Err(err).Str("stage", "rearm").Msg("scheduled task failed")
		return
	}

	logger.Info().Dur("elapsed", time.Since(started)).Msg("scheduled update cycle completed")
}
