package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dealtrack/dealtrack_api/internal/models"
	"github.com/dealtrack/dealtrack_api/internal/sse"
	"github.com/dealtrack/dealtrack_api/internal/utils"
)

// AlertService owns the wishlist alert state machine. An entry alerts when
// its product's current lowest price sits at or under the target price.
// Firing moves Idle or Read to Notified, at most once per dedupe window;
// acknowledging moves Notified to Read; the nightly sweep re-arms entries
// back to Idle while the price condition still holds.
type AlertService struct {
	wishlist WishlistStore
	notifier *sse.Notifier
	dedupe   time.Duration
	now      func() time.Time
}

// NewAlertService creates an AlertService. dedupe is the minimum spacing
// between repeat notifications for the same entry.
func NewAlertService(wishlist WishlistStore, notifier *sse.Notifier, dedupe time.Duration) *AlertService {
	return &AlertService{
		wishlist: wishlist,
		notifier: notifier,
		dedupe:   dedupe,
		now:      time.Now,
	}
}

// Alerts returns the user's wishlist entries whose price condition currently
// holds, firing notifications for those not yet notified. Entries without a
// target price never alert.
func (s *AlertService) Alerts(ctx context.Context, uid int64) ([]models.WishlistItem, error) {
	items, err := s.wishlist.ListForUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	now := s.now()
	triggered := []models.WishlistItem{}

	for _, item := range items {
		if item.TargetPrice == nil || item.CurrentPrice == nil {
			continue
		}
		if *item.CurrentPrice > *item.TargetPrice {
			continue
		}

		if item.AlertStatus != models.AlertNotified && s.mayFire(item, now) {
			if err := s.wishlist.MarkNotified(ctx, uid, item.PID, now); err != nil {
				log.Error().Err(err).Int64("uid", uid).Int64("pid", item.PID).Msg("failed to mark alert notified")
			} else {
				item.AlertStatus = models.AlertNotified
				at := now
				item.LastAlertAt = &at

				if s.notifier != nil {
					s.notifier.AlertTriggered(uid, sse.AlertPayload{
						PID:          item.PID,
						ShortTitle:   item.ShortTitle,
						CurrentPrice: *item.CurrentPrice,
						TargetPrice:  item.TargetPrice,
						ImageURL:     item.ImageURL,
					})
				}

				log.Info().
					Int64("uid", uid).
					Int64("pid", item.PID).
					Float64("current", *item.CurrentPrice).
					Float64("target", *item.TargetPrice).
					Msg("price alert fired")
			}
		}

		triggered = append(triggered, item)
	}

	return triggered, nil
}

// mayFire checks the dedupe window for an entry about to notify.
func (s *AlertService) mayFire(item models.WishlistItem, now time.Time) bool {
	if item.LastAlertAt == nil {
		return true
	}
	return now.Sub(*item.LastAlertAt) >= s.dedupe
}

// Acknowledge marks a fired alert as read.
func (s *AlertService) Acknowledge(ctx context.Context, uid, pid int64) error {
	err := s.wishlist.Acknowledge(ctx, uid, pid)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrWishlistNotFound
	}
	return err
}

// Rearm resets every notified or read entry whose price condition still
// holds back to idle, so the next read can alert again. Runs after the
// nightly refresh and sync.
func (s *AlertService) Rearm(ctx context.Context) (int64, error) {
	n, err := s.wishlist.ResetBelowTarget(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info().Int64("entries", n).Msg("alerts re-armed")
	}
	return n, nil
}
