package domain

import "time"

// Event represents a community event listing.
type Event struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`             // Human-readable place name
	Latitude    float64   `json:"latitude,omitempty"`   // WGS84
	Longitude   float64   `json:"longitude,omitempty"`  // WGS84
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	ImageURL    string    `json:"image_url,omitempty"`  // Public URL of the cover image
	Capacity    int       `json:"capacity,omitempty"`   // 0 means unlimited
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Tags is populated from the event_tags join when loading an event;
	// it is never written directly on the events row.
	Tags []Tag `json:"tags,omitempty"`
}

// Touch updates the UpdatedAt timestamp.
func (e *Event) Touch() {
	e.UpdatedAt = time.Now()
}

// HasEnded reports whether the event's end time has passed.
func (e *Event) HasEnded() bool {
	return time.Now().After(e.EndsAt)
}

// IsOwnedBy reports whether the given user owns this event.
func (e *Event) IsOwnedBy(userID string) bool {
	return e.OwnerID == userID
}
