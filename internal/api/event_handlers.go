package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gatherly/gatherly-server/internal/domain"
	"github.com/gatherly/gatherly-server/internal/service"
	"github.com/gatherly/gatherly-server/internal/store"
)

func (s *Server) registerEventRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listEvents",
		Method:      http.MethodGet,
		Path:        "/api/v1/events",
		Summary:     "List events",
		Description: "Returns events matching the given filters",
		Tags:        []string{"Events"},
	}, s.handleListEvents)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEvent",
		Method:      http.MethodGet,
		Path:        "/api/v1/events/{id}",
		Summary:     "Get event",
		Description: "Returns an event with its tags",
		Tags:        []string{"Events"},
	}, s.handleGetEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "createEvent",
		Method:      http.MethodPost,
		Path:        "/api/v1/events",
		Summary:     "Create event",
		Description: "Creates an event and links its tags",
		Tags:        []string{"Events"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateEvent",
		Method:      http.MethodPatch,
		Path:        "/api/v1/events/{id}",
		Summary:     "Update event",
		Description: "Updates an event; tags, when present, replace the full set",
		Tags:        []string{"Events"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteEvent",
		Method:      http.MethodDelete,
		Path:        "/api/v1/events/{id}",
		Summary:     "Delete event",
		Description: "Deletes an event, its tag links, and its image",
		Tags:        []string{"Events"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteEvent)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMyEvents",
		Method:      http.MethodGet,
		Path:        "/api/v1/events/mine",
		Summary:     "List own events",
		Description: "Returns events owned by the authenticated user",
		Tags:        []string{"Events"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMyEvents)
}

// === DTOs ===

// TagSummary contains tag data in event responses.
type TagSummary struct {
	ID         string `json:"id" doc:"Tag ID"`
	Name       string `json:"name" doc:"Tag name"`
	UsageCount int    `json:"usage_count" doc:"Times the tag has been attached"`
}

// EventResponse contains event data in API responses.
type EventResponse struct {
	ID          string       `json:"id" doc:"Event ID"`
	OwnerID     string       `json:"owner_id" doc:"Owning user ID"`
	Title       string       `json:"title" doc:"Event title"`
	Description string       `json:"description,omitempty" doc:"Event description"`
	Location    string       `json:"location,omitempty" doc:"Venue or address"`
	Latitude    float64      `json:"latitude,omitempty" doc:"Venue latitude"`
	Longitude   float64      `json:"longitude,omitempty" doc:"Venue longitude"`
	StartsAt    time.Time    `json:"starts_at" doc:"Event start time"`
	EndsAt      time.Time    `json:"ends_at" doc:"Event end time"`
	ImageURL    string       `json:"image_url,omitempty" doc:"Event image URL"`
	Capacity    int          `json:"capacity,omitempty" doc:"Attendee capacity (0 = unlimited)"`
	CreatedAt   time.Time    `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time    `json:"updated_at" doc:"Last update time"`
	Tags        []TagSummary `json:"tags" doc:"Attached tags"`
}

// EventWriteResponse is an event write result. Warning is set when a
// secondary step (tag linking, image cleanup) failed without unwinding
// the write itself.
type EventWriteResponse struct {
	Event   EventResponse `json:"event" doc:"The written event"`
	Warning string        `json:"warning,omitempty" doc:"Secondary-step failure, if any"`
}

// EventOutput wraps a single event for Huma.
type EventOutput struct {
	Body EventResponse
}

// EventWriteOutput wraps an event write result for Huma.
type EventWriteOutput struct {
	Body EventWriteResponse
}

// ListEventsInput contains filters for listing events.
type ListEventsInput struct {
	Tag    string    `query:"tag" doc:"Only events carrying this exact tag name"`
	Owner  string    `query:"owner" doc:"Only events owned by this user ID"`
	From   time.Time `query:"from" doc:"Only events starting at or after this instant"`
	Until  time.Time `query:"until" doc:"Only events starting before this instant"`
	Title  string    `query:"title" doc:"Case-insensitive substring match on title"`
	Limit  int       `query:"limit" doc:"Page size (max 200)"`
	Offset int       `query:"offset" doc:"Page offset"`
}

// ListEventsResponse contains a page of events.
type ListEventsResponse struct {
	Events []EventResponse `json:"events" doc:"Matching events"`
	Total  int             `json:"total" doc:"Total matches, ignoring pagination"`
	Limit  int             `json:"limit" doc:"Applied page size"`
	Offset int             `json:"offset" doc:"Applied page offset"`
}

// ListEventsOutput wraps the event list for Huma.
type ListEventsOutput struct {
	Body ListEventsResponse
}

// GetEventInput contains parameters for getting an event.
type GetEventInput struct {
	ID string `path:"id" doc:"Event ID"`
}

// CreateEventRequest is the request body for creating an event.
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200" doc:"Event title"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=5000" doc:"Event description"`
	Location    string    `json:"location,omitempty" validate:"omitempty,max=300" doc:"Venue or address"`
	Latitude    float64   `json:"latitude,omitempty" validate:"omitempty,latitude" doc:"Venue latitude"`
	Longitude   float64   `json:"longitude,omitempty" validate:"omitempty,longitude" doc:"Venue longitude"`
	StartsAt    time.Time `json:"starts_at" validate:"required" doc:"Event start time"`
	EndsAt      time.Time `json:"ends_at,omitempty" doc:"Event end time (defaults to start)"`
	ImageURL    string    `json:"image_url,omitempty" validate:"omitempty,url" doc:"Event image URL"`
	Capacity    int       `json:"capacity,omitempty" validate:"omitempty,gte=0" doc:"Attendee capacity"`
	Tags        []string  `json:"tags" validate:"required,min=1,max=10" doc:"Tag names (1-10)"`
}

// CreateEventInput wraps the create event request for Huma.
type CreateEventInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateEventRequest
}

// UpdateEventRequest is the request body for updating an event.
// Absent fields are left unchanged; tags, when present, replace the set.
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200" doc:"Event title"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=5000" doc:"Event description"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=300" doc:"Venue or address"`
	Latitude    *float64   `json:"latitude,omitempty" validate:"omitempty,latitude" doc:"Venue latitude"`
	Longitude   *float64   `json:"longitude,omitempty" validate:"omitempty,longitude" doc:"Venue longitude"`
	StartsAt    *time.Time `json:"starts_at,omitempty" doc:"Event start time"`
	EndsAt      *time.Time `json:"ends_at,omitempty" doc:"Event end time"`
	ImageURL    *string    `json:"image_url,omitempty" validate:"omitempty,url" doc:"Event image URL"`
	Capacity    *int       `json:"capacity,omitempty" validate:"omitempty,gte=0" doc:"Attendee capacity"`
	Tags        []string   `json:"tags,omitempty" validate:"omitempty,min=1,max=10" doc:"Replacement tag names"`
}

// UpdateEventInput wraps the update event request for Huma.
type UpdateEventInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Event ID"`
	Body          UpdateEventRequest
}

// DeleteEventInput contains parameters for deleting an event.
type DeleteEventInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Event ID"`
}

// DeleteEventResponse confirms a delete, with any cleanup warning.
type DeleteEventResponse struct {
	Message string `json:"message" doc:"Confirmation message"`
	Warning string `json:"warning,omitempty" doc:"Secondary-step failure, if any"`
}

// DeleteEventOutput wraps the delete response for Huma.
type DeleteEventOutput struct {
	Body DeleteEventResponse
}

// ListMyEventsInput contains parameters for listing own events.
type ListMyEventsInput struct {
	Authorization string `header:"Authorization"`
	Limit         int    `query:"limit" doc:"Page size (max 200)"`
	Offset        int    `query:"offset" doc:"Page offset"`
}

func toEventResponse(e *domain.Event) EventResponse {
	tags := make([]TagSummary, len(e.Tags))
	for i, t := range e.Tags {
		tags[i] = TagSummary{ID: t.ID, Name: t.Name, UsageCount: t.UsageCount}
	}
	return EventResponse{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		ImageURL:    e.ImageURL,
		Capacity:    e.Capacity,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Tags:        tags,
	}
}

func toEventWriteResponse(outcome *service.WriteOutcome) EventWriteResponse {
	resp := EventWriteResponse{Event: toEventResponse(outcome.Event)}
	if outcome.Warning != nil {
		resp.Warning = outcome.Warning.Error()
	}
	return resp
}

// === Handlers ===

func (s *Server) handleListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
	filter := store.EventFilter{
		OwnerID:   input.Owner,
		TagName:   input.Tag,
		TitleLike: input.Title,
		Limit:     input.Limit,
		Offset:    input.Offset,
	}
	if !input.From.IsZero() {
		filter.From = &input.From
	}
	if !input.Until.IsZero() {
		filter.Until = &input.Until
	}
	filter.Normalize()

	events, err := s.services.Event.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.services.Event.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := ListEventsResponse{
		Events: make([]EventResponse, len(events)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for i, e := range events {
		resp.Events[i] = toEventResponse(e)
	}

	return &ListEventsOutput{Body: resp}, nil
}

func (s *Server) handleGetEvent(ctx context.Context, input *GetEventInput) (*EventOutput, error) {
	event, err := s.services.Event.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &EventOutput{Body: toEventResponse(event)}, nil
}

func (s *Server) handleCreateEvent(ctx context.Context, input *CreateEventInput) (*EventWriteOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	outcome, err := s.services.Event.Create(ctx, userID, service.CreateEventInput{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Location:    input.Body.Location,
		Latitude:    input.Body.Latitude,
		Longitude:   input.Body.Longitude,
		StartsAt:    input.Body.StartsAt,
		EndsAt:      input.Body.EndsAt,
		ImageURL:    input.Body.ImageURL,
		Capacity:    input.Body.Capacity,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &EventWriteOutput{Body: toEventWriteResponse(outcome)}, nil
}

func (s *Server) handleUpdateEvent(ctx context.Context, input *UpdateEventInput) (*EventWriteOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	outcome, err := s.services.Event.Update(ctx, userID, input.ID, service.UpdateEventInput{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Location:    input.Body.Location,
		Latitude:    input.Body.Latitude,
		Longitude:   input.Body.Longitude,
		StartsAt:    input.Body.StartsAt,
		EndsAt:      input.Body.EndsAt,
		ImageURL:    input.Body.ImageURL,
		Capacity:    input.Body.Capacity,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &EventWriteOutput{Body: toEventWriteResponse(outcome)}, nil
}

func (s *Server) handleDeleteEvent(ctx context.Context, input *DeleteEventInput) (*DeleteEventOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	outcome, err := s.services.Event.Delete(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	resp := DeleteEventResponse{Message: "Event deleted"}
	if outcome.Warning != nil {
		resp.Warning = outcome.Warning.Error()
	}
	return &DeleteEventOutput{Body: resp}, nil
}

func (s *Server) handleListMyEvents(ctx context.Context, input *ListMyEventsInput) (*ListEventsOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	filter := store.EventFilter{Limit: input.Limit, Offset: input.Offset}
	filter.Normalize()
	filter.OwnerID = userID

	events, err := s.services.Event.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.services.Event.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := ListEventsResponse{
		Events: make([]EventResponse, len(events)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for i, e := range events {
		resp.Events[i] = toEventResponse(e)
	}

	return &ListEventsOutput{Body: resp}, nil
}
