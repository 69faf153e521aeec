package domain

import "time"

// Tag represents a global community tag for categorizing events.
// Tags are shared across all users — no ownership model. Name is the
// source of truth and is stored as entered (trimmed, original casing).
type Tag struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	UsageCount int       `json:"usage_count"` // Times the tag has ever been attached; never decremented
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now()
}

// EventTag represents the many-to-many relationship between events and tags.
// All users see the same tags on an event.
type EventTag struct {
	EventID   string    `json:"event_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
