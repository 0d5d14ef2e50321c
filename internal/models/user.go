package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and is never
// serialized.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	IsAdmin      bool      `db:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// ViewHistoryItem is one browsing-history row joined with product data.
type ViewHistoryItem struct {
	ID         int64     `db:"id" json:"id"`
	PID        int64     `db:"pid" json:"pid"`
	ShortTitle string    `db:"short_title" json:"shortTitle"`
	Price      float64   `db:"price" json:"price"`
	Category   string    `db:"category" json:"category"`
	ImageURL   string    `db:"image_url" json:"imageUrl"`
	ViewedAt   time.Time `db:"viewed_at" json:"viewedAt"`
}
