package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerFavoriteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "saveFavorite",
		Method:      http.MethodPut,
		Path:        "/api/v1/events/{id}/favorite",
		Summary:     "Save favorite",
		Description: "Saves an event to the user's favorites (idempotent)",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSaveFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFavorite",
		Method:      http.MethodDelete,
		Path:        "/api/v1/events/{id}/favorite",
		Summary:     "Remove favorite",
		Description: "Removes an event from the user's favorites (idempotent)",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns the user's saved events, most recently saved first",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFavorites)
}

// === DTOs ===

// FavoriteInput contains parameters for saving or removing a favorite.
type FavoriteInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Event ID"`
}

// ListFavoritesInput contains parameters for listing favorites.
type ListFavoritesInput struct {
	Authorization string `header:"Authorization"`
}

// ListFavoritesResponse contains the user's saved events.
type ListFavoritesResponse struct {
	Events []EventResponse `json:"events" doc:"Saved events"`
}

// ListFavoritesOutput wraps the favorites list for Huma.
type ListFavoritesOutput struct {
	Body ListFavoritesResponse
}

// === Handlers ===

func (s *Server) handleSaveFavorite(ctx context.Context, input *FavoriteInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Favorite.Add(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Event saved"}}, nil
}

func (s *Server) handleRemoveFavorite(ctx context.Context, input *FavoriteInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Favorite.Remove(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Event removed"}}, nil
}

func (s *Server) handleListFavorites(ctx context.Context, input *ListFavoritesInput) (*ListFavoritesOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	events, err := s.services.Favorite.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := ListFavoritesResponse{Events: make([]EventResponse, len(events))}
	for i, e := range events {
		resp.Events[i] = toEventResponse(e)
	}
	return &ListFavoritesOutput{Body: resp}, nil
}
