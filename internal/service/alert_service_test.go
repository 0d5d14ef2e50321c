package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dealtrack/dealtrack_api/internal/models"
	"github.com/dealtrack/dealtrack_api/internal/sse"
	"github.com/dealtrack/dealtrack_api/internal/utils"
)

const dedupeWindow = 6 * time.Hour

func newAlertFixture(store *fakeWishlistStore) (*AlertService, *sse.Hub) {
	hub := sse.NewHub()
	svc := NewAlertService(store, sse.NewNotifier(hub), dedupeWindow)
	return svc, hub
}

func TestAlertsFiresWhenPriceHitsTarget(t *testing.T) {
	store := &fakeWishlistStore{items: []models.WishlistItem{{
		UID:          7,
		PID:          1,
		TargetPrice:  fptr(300),
		CurrentPrice: fptr(298),
		AlertStatus:  models.AlertIdle,
		ShortTitle:   "Sony WH-1000XM5",
		ImageURL:     "https://img/x.jpg",
	}}}

	svc, hub := newAlertFixture(store)
	events, cancel := hub.Subscribe(7)
	defer cancel()

	triggered, err := svc.Alerts(context.Background(), 7)
	if err != nil {
		t.Fatalf("Alerts returned error: %v", err)
	}

	if len(triggered) != 1 {
		t.Fatalf("triggered %d entries, want 1", len(triggered))
	}
	if triggered[0].AlertStatus != models.AlertNotified {
		t.Errorf("status = %v, want notified", triggered[0].AlertStatus)
	}
	if triggered[0].LastAlertAt == nil {
		t.Error("LastAlertAt not set on firing")
	}
	if len(store.notified) != 1 || store.notified[0] != 1 {
		t.Errorf("MarkNotified calls = %v, want [1]", store.notified)
	}

	select {
	case ev := <-events:
		if ev.Type != sse.EventAlertTriggered {
			t.Fatalf("event type = %q, want %q", ev.Type, sse.EventAlertTriggered)
		}
		payload, ok := ev.Data.(sse.AlertPayload)
		if !ok {
			t.Fatalf("event data = %T, want AlertPayload", ev.Data)
		}
		if payload.PID != 1 || payload.CurrentPrice != 298 {
			t.Errorf("payload = %+v", payload)
		}
	default:
		t.Fatal("no event published on firing")
	}
}

func TestAlertsSkipsEntriesAboveTarget(t *testing.T) {
	store := &fakeWishlistStore{items: []models.WishlistItem{
		{UID: 7, PID: 1, TargetPrice: fptr(100), CurrentPrice: fptr(150)},
		{UID: 7, PID: 2, CurrentPrice: fptr(50)},
		{UID: 7, PID: 3, TargetPrice: fptr(100)},
	}}

	svc, _ := newAlertFixture(store)
	triggered, err := svc.Alerts(context.Background(), 7)
	if err != nil {
		t.Fatalf("Alerts returned error: %v", err)
	}
	if len(triggered) != 0 {
		t.Fatalf("triggered = %v, want none", triggered)
	}
	if len(store.notified) != 0 {
		t.Fatal("MarkNotified called for a non-qualifying entry")
	}
}

func TestAlertsDedupeWindowBlocksRepeat(t *testing.T) {
	recent := time.Now().Add(-time.Hour)
	store := &fakeWishlistStore{items: []models.WishlistItem{{
		UID:          7,
		PID:          1,
		TargetPrice:  fptr(300),
		CurrentPrice: fptr(250),
		AlertStatus:  models.AlertIdle,
		LastAlertAt:  &recent,
	}}}

	svc, hub := newAlertFixture(store)
	events, cancel := hub.Subscribe(7)
	defer cancel()

	triggered, err := svc.Alerts(context.Background(), 7)
	if err != nil {
		t.Fatalf("Alerts returned error: %v", err)
	}

	// The condition holds so the entry is reported, but no notification fires.
	if len(triggered) != 1 {
		t.Fatalf("triggered %d entries, want 1", len(triggered))
	}
	if len(store.notified) != 0 {
		t.Fatal("MarkNotified called inside the dedupe window")
	}
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %v inside the dedupe window", ev)
	default:
	}
}

func TestAlertsFiresAgainAfterDedupeWindow(t *testing.T) {
	old := time.Now().Add(-dedupeWindow - time.Minute)
	store := &fakeWishlistStore{items: []models.WishlistItem{{
		UID:          7,
		PID:          1,
		TargetPrice:  fptr(300),
		CurrentPrice: fptr(250),
		AlertStatus:  models.AlertIdle,
		LastAlertAt:  &old,
	}}}

	svc, _ := newAlertFixture(store)
	if _, err := svc.Alerts(context.Background(), 7); err != nil {
		t.Fatalf("Alerts returned error: %v", err)
	}
	if len(store.notified) != 1 {
		t.Fatal("entry past the dedupe window did not re-fire")
	}
}

func TestAlertsAlreadyNotifiedNotRefired(t *testing.T) {
	at := time.Now().Add(-2 * dedupeWindow)
	store := &fakeWishlistStore{items: []models.WishlistItem{{
		UID:          7,
		PID:          1,
		TargetPrice:  fptr(300),
		CurrentPrice: fptr(250),
		AlertStatus:  models.AlertNotified,
		LastAlertAt:  &at,
	}}}

	svc, _ := newAlertFixture(store)
	triggered, err := svc.Alerts(context.Background(), 7)
	if err != nil {
		t.Fatalf("Alerts returned error: %v", err)
	}
	if len(triggered) != 1 {
		t.Fatalf("triggered %d entries, want the notified entry reported", len(triggered))
	}
	if len(store.notified) != 0 {
		t.Fatal("a notified entry must not fire again before re-arm")
	}
}

func TestAlertsMarkFailureLeavesEntryUntouched(t *testing.T) {
	store := &fakeWishlistStore{
		items: []models.WishlistItem{{
			UID:          7,
			PID:          1,
			TargetPrice:  fptr(300),
			CurrentPrice: fptr(250),
			AlertStatus:  models.AlertIdle,
		}},
		notifyErr: errors.New("db down"),
	}

	svc, hub := newAlertFixture(store)
	events, cancel := hub.Subscribe(7)
	defer cancel()

	triggered, err := svc.Alerts(context.Background(), 7)
	if err != nil {
		t.Fatalf("Alerts returned error: %v", err)
	}
	if len(triggered) != 1 {
		t.Fatalf("triggered %d entries, want 1", len(triggered))
	}
	if triggered[0].AlertStatus != models.AlertIdle {
		t.Error("status mutated despite the persistence failure")
	}
	select {
	case <-events:
		t.Fatal("event published despite the persistence failure")
	default:
	}
}

func TestAcknowledgeMapsMissingEntry(t *testing.T) {
	store := &fakeWishlistStore{ackErr: sql.ErrNoRows}
	svc, _ := newAlertFixture(store)

	err := svc.Acknowledge(context.Background(), 7, 1)
	if !errors.Is(err, utils.ErrWishlistNotFound) {
		t.Fatalf("Acknowledge error = %v, want ErrWishlistNotFound", err)
	}
}

func TestRearmReturnsSweepCount(t *testing.T) {
	store := &fakeWishlistStore{rearmed: 4}
	svc, _ := newAlertFixture(store)

	n, err := svc.Rearm(context.Background())
	if err != nil {
		t.Fatalf("Rearm returned error: %v", err)
	}
	if n != 4 {
		t.Fatalf("Rearm = %d, want 4", n)
	}
}
