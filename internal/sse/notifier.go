package sse

// EventAlertTriggered is sent when a wishlist price alert fires.
const EventAlertTriggered = "alert.triggered"

// AlertPayload is the data carried by an alert.triggered event.
type AlertPayload struct {
	PID          int64    `json:"pid"`
	ShortTitle   string   `json:"shortTitle"`
	CurrentPrice float64  `json:"currentPrice"`
	TargetPrice  *float64 `json:"targetPrice,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
}

// Notifier publishes domain events through the hub.
type Notifier struct {
	hub *Hub
}

// NewNotifier creates a notifier bound to a hub.
func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

// AlertTriggered pushes a price alert to one user's open streams.
func (n *Notifier) AlertTriggered(uid int64, payload AlertPayload) {
	n.hub.Publish(uid, Event{Type: EventAlertTriggered, Data: payload})
}
