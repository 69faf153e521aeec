package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gatherly/gatherly-server/internal/domain"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all tags ordered by name",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "suggestTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/suggest",
		Summary:     "Suggest tags",
		Description: "Returns up to five tags matching the prefix, most-used first",
		Tags:        []string{"Tags"},
	}, s.handleSuggestTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "listEventTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/events/{id}/tags",
		Summary:     "List event tags",
		Description: "Returns the tags attached to an event",
		Tags:        []string{"Tags"},
	}, s.handleListEventTags)
}

// === DTOs ===

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID         string    `json:"id" doc:"Tag ID"`
	Name       string    `json:"name" doc:"Tag name"`
	UsageCount int       `json:"usage_count" doc:"Times the tag has been attached"`
	CreatedAt  time.Time `json:"created_at" doc:"Creation time"`
}

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"List of tags"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// SuggestTagsInput contains parameters for tag autocomplete.
type SuggestTagsInput struct {
	Prefix string `query:"q" doc:"Tag name prefix"`
}

// EventTagsInput contains parameters for listing an event's tags.
type EventTagsInput struct {
	ID string `path:"id" doc:"Event ID"`
}

func toTagResponses(tags []*domain.Tag) []TagResponse {
	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = TagResponse{
			ID:         t.ID,
			Name:       t.Name,
			UsageCount: t.UsageCount,
			CreatedAt:  t.CreatedAt,
		}
	}
	return resp
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	tags, err := s.services.Tag.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListTagsOutput{Body: ListTagsResponse{Tags: toTagResponses(tags)}}, nil
}

func (s *Server) handleSuggestTags(ctx context.Context, input *SuggestTagsInput) (*ListTagsOutput, error) {
	tags, err := s.services.Tag.Suggest(ctx, input.Prefix)
	if err != nil {
		return nil, err
	}
	return &ListTagsOutput{Body: ListTagsResponse{Tags: toTagResponses(tags)}}, nil
}

func (s *Server) handleListEventTags(ctx context.Context, input *EventTagsInput) (*ListTagsOutput, error) {
	event, err := s.services.Event.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := ListTagsResponse{Tags: make([]TagResponse, len(event.Tags))}
	for i, t := range event.Tags {
		resp.Tags[i] = TagResponse{
			ID:         t.ID,
			Name:       t.Name,
			UsageCount: t.UsageCount,
			CreatedAt:  t.CreatedAt,
		}
	}
	return &ListTagsOutput{Body: resp}, nil
}
