package domain

import "time"

// Favorite marks an event as saved by a user.
type Favorite struct {
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}
