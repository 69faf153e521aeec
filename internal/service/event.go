package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"time"

	"github.com/gatherly/gatherly-server/internal/domain"
	apperrors "github.com/gatherly/gatherly-server/internal/errors"
	"github.com/gatherly/gatherly-server/internal/id"
	"github.com/gatherly/gatherly-server/internal/search"
	"github.com/gatherly/gatherly-server/internal/store"
)

// ImageRemover deletes stored event images by file name.
// Satisfied by *images.Storage.
type ImageRemover interface {
	Delete(name string) error
}

// Indexer keeps the search index in sync with event writes.
// Index updates are best effort and never fail an event write.
type Indexer interface {
	IndexEvent(doc *search.EventDocument) error
	DeleteEvent(id string) error
}

// NoopIndexer is a no-op Indexer for tests and search-less setups.
type NoopIndexer struct{}

// IndexEvent is a no-op.
func (NoopIndexer) IndexEvent(*search.EventDocument) error { return nil }

// DeleteEvent is a no-op.
func (NoopIndexer) DeleteEvent(string) error { return nil }

// WriteOutcome is the result of an event write. Warning carries a
// secondary-step failure (tag linking, image cleanup) that did not
// unwind the primary write; callers decide how visibly to surface it.
type WriteOutcome struct {
	Event   *domain.Event
	Warning error
}

// CreateEventInput holds the fields for a new event.
type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	Latitude    float64
	Longitude   float64
	StartsAt    time.Time
	EndsAt      time.Time
	ImageURL    string
	Capacity    int
	Tags        []string
}

// UpdateEventInput holds partial updates; nil fields are left unchanged.
// Tags replaces the full tag set when non-nil.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Location    *string
	Latitude    *float64
	Longitude   *float64
	StartsAt    *time.Time
	EndsAt      *time.Time
	ImageURL    *string
	Capacity    *int
	Tags        []string
}

// EventService sequences the dependent writes for one event: the event
// row first, then tag links, then image cleanup. There is no rollback
// anywhere — every multi-step write is best effort forward, and partial
// states are self-healing on the next edit.
type EventService struct {
	store   store.Store
	tags    *TagService
	images  ImageRemover
	indexer Indexer
	logger  *slog.Logger
}

// NewEventService creates a new event service.
func NewEventService(store store.Store, tags *TagService, images ImageRemover, indexer Indexer, logger *slog.Logger) *EventService {
	if indexer == nil {
		indexer = NoopIndexer{}
	}
	return &EventService{
		store:   store,
		tags:    tags,
		images:  images,
		indexer: indexer,
		logger:  logger,
	}
}

// validateTimes enforces that an event ends at or after it starts.
func validateTimes(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() {
		return apperrors.Validation("start time is required")
	}
	if !endsAt.IsZero() && endsAt.Before(startsAt) {
		return apperrors.Validation("end time must not be before start time")
	}
	return nil
}

// Create inserts the event row, then links its tags.
//
// A tag-linking failure leaves the event persisted with missing or partial
// links and comes back as the outcome's Warning — visible partial data is
// preferred over deleting the event the user just made.
func (s *EventService) Create(ctx context.Context, ownerID string, input CreateEventInput) (*WriteOutcome, error) {
	if input.Title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if err := validateTimes(input.StartsAt, input.EndsAt); err != nil {
		return nil, err
	}

	eventID, err := id.Generate("evt")
	if err != nil {
		return nil, fmt.Errorf("generate event ID: %w", err)
	}

	now := time.Now()
	endsAt := input.EndsAt
	if endsAt.IsZero() {
		endsAt = input.StartsAt
	}
	event := &domain.Event{
		ID:          eventID,
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		StartsAt:    input.StartsAt,
		EndsAt:      endsAt,
		ImageURL:    input.ImageURL,
		Capacity:    input.Capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	outcome := &WriteOutcome{Event: event}

	if len(input.Tags) > 0 {
		if err := s.tags.ResolveAndLink(ctx, event.ID, input.Tags); err != nil {
			outcome.Warning = classifyLinkError(err)
			s.logger.Warn("event created with incomplete tags",
				"event_id", event.ID,
				"warning", outcome.Warning,
			)
		}
	}

	s.refresh(ctx, outcome)
	return outcome, nil
}

// Update applies field changes, relinks tags, then cleans up a replaced
// image. Only the owner may update an event.
func (s *EventService) Update(ctx context.Context, userID, eventID string, input UpdateEventInput) (*WriteOutcome, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("event %s not found", eventID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !event.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, apperrors.Forbidden("not the event owner"))
	}

	previousImage := event.ImageURL

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.Latitude != nil {
		event.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		event.Longitude = *input.Longitude
	}
	if input.StartsAt != nil {
		event.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		event.EndsAt = *input.EndsAt
	}
	if input.ImageURL != nil {
		event.ImageURL = *input.ImageURL
	}
	if input.Capacity != nil {
		event.Capacity = *input.Capacity
	}

	if event.Title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if err := validateTimes(event.StartsAt, event.EndsAt); err != nil {
		return nil, err
	}

	event.Touch()
	if err := s.store.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}

	outcome := &WriteOutcome{Event: event}

	if input.Tags != nil {
		if err := s.tags.Relink(ctx, event.ID, input.Tags); err != nil {
			outcome.Warning = classifyLinkError(err)
			s.logger.Warn("event updated with incomplete tags",
				"event_id", event.ID,
				"warning", outcome.Warning,
			)
		}
	}

	// A replaced image leaves its predecessor unreferenced; removing it is
	// best effort. A stale blob is a leak, not a correctness problem.
	if input.ImageURL != nil && previousImage != "" && previousImage != event.ImageURL {
		if err := s.removeImage(previousImage); err != nil {
			cleanupErr := fmt.Errorf("%w: %v", ErrImageCleanupFailed, err)
			s.logger.Warn("stale image not removed",
				"event_id", event.ID,
				"image", previousImage,
				"error", err,
			)
			outcome.Warning = joinWarnings(outcome.Warning, cleanupErr)
		}
	}

	s.refresh(ctx, outcome)
	return outcome, nil
}

// Delete removes the event row, then best-effort deletes its image.
// Tag links and favorites cascade with the row via the store's
// referential rules. Only the owner may delete an event.
//
// An image-cleanup failure after a successful row delete comes back as
// the outcome's Warning: the row is already gone and retrying cleanup
// cannot restore it, so the delete itself counts as successful.
func (s *EventService) Delete(ctx context.Context, userID, eventID string) (*WriteOutcome, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("event %s not found", eventID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !event.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: %w", ErrDeleteFailed, apperrors.Forbidden("not the event owner"))
	}

	if err := s.store.DeleteEvent(ctx, eventID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	outcome := &WriteOutcome{Event: event}

	if event.ImageURL != "" {
		if err := s.removeImage(event.ImageURL); err != nil {
			outcome.Warning = fmt.Errorf("%w: %v", ErrImageCleanupFailed, err)
			s.logger.Warn("event image not removed",
				"event_id", eventID,
				"image", event.ImageURL,
				"error", err,
			)
		}
	}

	if err := s.indexer.DeleteEvent(eventID); err != nil {
		s.logger.Warn("search deindex failed", "event_id", eventID, "error", err)
	}

	return outcome, nil
}

// Get returns an event with its tags.
func (s *EventService) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("event %s not found", eventID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return event, nil
}

// List returns events matching the filter.
func (s *EventService) List(ctx context.Context, filter store.EventFilter) ([]*domain.Event, error) {
	events, err := s.store.ListEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return events, nil
}

// Count returns the number of events matching the filter.
func (s *EventService) Count(ctx context.Context, filter store.EventFilter) (int, error) {
	n, err := s.store.CountEvents(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return n, nil
}

// ListMine returns the caller's own events.
func (s *EventService) ListMine(ctx context.Context, userID string, filter store.EventFilter) ([]*domain.Event, error) {
	filter.OwnerID = userID
	return s.List(ctx, filter)
}

// classifyLinkError maps a reconciliation failure onto the outcome
// taxonomy: zero links made means the whole step failed, anything
// else is a partial linkage.
func classifyLinkError(err error) error {
	var partial *PartialLinkError
	if errors.As(err, &partial) && partial.Linked == 0 {
		return fmt.Errorf("%w: %v", ErrTagLinkFailed, partial.Err)
	}
	if errors.As(err, &partial) {
		return partial
	}
	// Input validation failures (bad names) mean nothing was linked.
	return fmt.Errorf("%w: %v", ErrTagLinkFailed, err)
}

// removeImage strips an image URL down to its stored file name and
// deletes the file.
func (s *EventService) removeImage(imageURL string) error {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return fmt.Errorf("parse image url: %w", err)
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return fmt.Errorf("no file name in image url %q", imageURL)
	}
	return s.images.Delete(name)
}

// refresh re-reads the event so the outcome carries current tags, and
// pushes it into the search index. Both steps are best effort.
func (s *EventService) refresh(ctx context.Context, outcome *WriteOutcome) {
	if fresh, err := s.store.GetEvent(ctx, outcome.Event.ID); err == nil {
		outcome.Event = fresh
	}
	if err := s.indexer.IndexEvent(search.NewEventDocument(outcome.Event)); err != nil {
		s.logger.Warn("search index failed", "event_id", outcome.Event.ID, "error", err)
	}
}

// joinWarnings combines secondary-step warnings, keeping both visible.
func joinWarnings(a, b error) error {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return errors.Join(a, b)
}
