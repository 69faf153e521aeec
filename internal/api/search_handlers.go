package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gatherly/gatherly-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchEvents",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search events",
		Description: "Full-text search over events with tag and time filters",
		Tags:        []string{"Search"},
	}, s.handleSearchEvents)

	huma.Register(s.api, huma.Operation{
		OperationID: "rebuildSearchIndex",
		Method:      http.MethodPost,
		Path:        "/api/v1/search/rebuild",
		Summary:     "Rebuild search index",
		Description: "Reindexes every event from the store",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRebuildSearchIndex)
}

// === DTOs ===

// SearchEventsInput contains full-text search parameters.
type SearchEventsInput struct {
	Query  string    `query:"q" doc:"Search query"`
	Tags   []string  `query:"tags" doc:"Filter by exact tag names (OR)"`
	From   time.Time `query:"from" doc:"Only events starting at or after this instant"`
	Until  time.Time `query:"until" doc:"Only events starting before this instant"`
	Limit  int       `query:"limit" doc:"Page size"`
	Offset int       `query:"offset" doc:"Page offset"`
}

// SearchOutput wraps search results for Huma.
type SearchOutput struct {
	Body search.Result
}

// RebuildSearchInput contains parameters for a rebuild.
type RebuildSearchInput struct {
	Authorization string `header:"Authorization"`
}

// RebuildSearchResponse reports a finished rebuild.
type RebuildSearchResponse struct {
	Indexed int `json:"indexed" doc:"Number of events indexed"`
}

// RebuildSearchOutput wraps the rebuild response for Huma.
type RebuildSearchOutput struct {
	Body RebuildSearchResponse
}

// === Handlers ===

func (s *Server) handleSearchEvents(ctx context.Context, input *SearchEventsInput) (*SearchOutput, error) {
	params := search.DefaultParams()
	params.Query = input.Query
	params.Tags = input.Tags
	params.From = input.From
	params.Until = input.Until
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Offset = input.Offset

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: *result}, nil
}

func (s *Server) handleRebuildSearchIndex(ctx context.Context, input *RebuildSearchInput) (*RebuildSearchOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	n, err := s.services.Search.RebuildFromStore(ctx)
	if err != nil {
		return nil, err
	}
	return &RebuildSearchOutput{Body: RebuildSearchResponse{Indexed: n}}, nil
}
