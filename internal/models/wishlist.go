package models

import "time"

// AlertStatus tracks the notification state machine of a wishlist entry.
// Transitions: Idle/Read -> Notified on the wishlist read path when the price
// condition holds and the dedupe window has passed; Notified -> Read on user
// acknowledgment; Notified/Read -> Idle by the nightly re-arm sweep while the
// price stays at or under target.
type AlertStatus int

const (
	AlertIdle     AlertStatus = 0
	AlertNotified AlertStatus = 1
	AlertRead     AlertStatus = 2
)

// WishlistEntry is one (user, product) wish with an optional target price.
// TargetPrice is written by the wishlist API; AlertStatus and LastAlertAt are
// owned exclusively by the alert engine.
type WishlistEntry struct {
	UID         int64       `db:"uid" json:"uid"`
	PID         int64       `db:"pid" json:"pid"`
	TargetPrice *float64    `db:"target_price" json:"targetPrice,omitempty"`
	AlertStatus AlertStatus `db:"alert_status" json:"alertStatus"`
	LastAlertAt *time.Time  `db:"last_alert_at" json:"lastAlertAt,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"-"`
	UpdatedAt   time.Time   `db:"updated_at" json:"-"`
}

// WishlistItem is a wishlist entry joined with product display data and the
// current lowest price across platforms, as served to clients.
type WishlistItem struct {
	UID          int64       `db:"uid" json:"uid"`
	PID          int64       `db:"pid" json:"pid"`
	TargetPrice  *float64    `db:"target_price" json:"targetPrice,omitempty"`
	AlertStatus  AlertStatus `db:"alert_status" json:"alertStatus"`
	LastAlertAt  *time.Time  `db:"last_alert_at" json:"lastAlertAt,omitempty"`
	ShortTitle   string      `db:"short_title" json:"shortTitle"`
	Title        string      `db:"title" json:"title"`
	Rating       float64     `db:"rating" json:"rating"`
	Category     string      `db:"category" json:"category"`
	ImageURL     string      `db:"image_url" json:"imageUrl"`
	CurrentPrice *float64    `db:"current_price" json:"currentPrice,omitempty"`
}
