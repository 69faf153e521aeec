// Package search provides full-text event search using Bleve.
// It supports fuzzy matching on titles, tag filtering, and date ranges.
package search

import (
	"github.com/gatherly/gatherly-server/internal/domain"
)

// EventDocument is the document structure for the Bleve index.
//
// Tag names are denormalized into the event document so a single query
// can match either title text or tag terms.
type EventDocument struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// Numeric fields for range queries and sorting (unix millis).
	StartsAt  int64 `json:"starts_at"`
	CreatedAt int64 `json:"created_at"`
}

// NewEventDocument builds a search document from a domain event.
func NewEventDocument(e *domain.Event) *EventDocument {
	tags := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		tags = append(tags, t.Name)
	}

	return &EventDocument{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Tags:        tags,
		StartsAt:    e.StartsAt.UnixMilli(),
		CreatedAt:   e.CreatedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *EventDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"starts_at":  d.StartsAt,
		"created_at": d.CreatedAt,
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Location != "" {
		m["location"] = d.Location
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	return m
}
