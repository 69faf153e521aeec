package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gatherly/gatherly-server/internal/domain"
	"github.com/gatherly/gatherly-server/internal/geocode"
)

func (s *Server) registerGeocodeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "geocodeSearch",
		Method:      http.MethodGet,
		Path:        "/api/v1/geocode",
		Summary:     "Geocode a place",
		Description: "Resolves a free-text query to candidate places",
		Tags:        []string{"Geocode"},
	}, s.handleGeocodeSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "geocodeReverse",
		Method:      http.MethodGet,
		Path:        "/api/v1/geocode/reverse",
		Summary:     "Reverse geocode",
		Description: "Resolves coordinates to candidate places",
		Tags:        []string{"Geocode"},
	}, s.handleGeocodeReverse)
}

// === DTOs ===

// GeocodeSearchInput contains parameters for forward geocoding.
type GeocodeSearchInput struct {
	Query string `query:"q" minLength:"1" doc:"Free-text place query"`
}

// GeocodeReverseInput contains parameters for reverse geocoding.
type GeocodeReverseInput struct {
	Longitude float64 `query:"lon" doc:"Longitude"`
	Latitude  float64 `query:"lat" doc:"Latitude"`
}

// PlaceResponse contains a geocoding candidate.
type PlaceResponse struct {
	ID        string  `json:"id" doc:"Provider place ID"`
	Name      string  `json:"name" doc:"Short place name"`
	PlaceName string  `json:"place_name" doc:"Full place name"`
	Longitude float64 `json:"longitude" doc:"Longitude"`
	Latitude  float64 `json:"latitude" doc:"Latitude"`
}

// GeocodeResponse contains geocoding candidates.
type GeocodeResponse struct {
	Places []PlaceResponse `json:"places" doc:"Candidate places"`
}

// GeocodeOutput wraps the geocode response for Huma.
type GeocodeOutput struct {
	Body GeocodeResponse
}

func toGeocodeResponse(places []domain.Place) GeocodeResponse {
	resp := GeocodeResponse{Places: make([]PlaceResponse, len(places))}
	for i, p := range places {
		resp.Places[i] = PlaceResponse{
			ID:        p.ID,
			Name:      p.Name,
			PlaceName: p.PlaceName,
			Longitude: p.Longitude,
			Latitude:  p.Latitude,
		}
	}
	return resp
}

// === Handlers ===

func (s *Server) handleGeocodeSearch(ctx context.Context, input *GeocodeSearchInput) (*GeocodeOutput, error) {
	places, err := s.geocoder.Search(ctx, input.Query)
	if err != nil {
		if errors.Is(err, geocode.ErrDisabled) {
			return nil, huma.Error503ServiceUnavailable("Geocoding is not configured")
		}
		s.logger.Error("geocode search failed", "error", err)
		return nil, huma.Error502BadGateway("Geocoding provider unavailable")
	}
	return &GeocodeOutput{Body: toGeocodeResponse(places)}, nil
}

func (s *Server) handleGeocodeReverse(ctx context.Context, input *GeocodeReverseInput) (*GeocodeOutput, error) {
	places, err := s.geocoder.Reverse(ctx, input.Longitude, input.Latitude)
	if err != nil {
		if errors.Is(err, geocode.ErrDisabled) {
			return nil, huma.Error503ServiceUnavailable("Geocoding is not configured")
		}
		s.logger.Error("reverse geocode failed", "error", err)
		return nil, huma.Error502BadGateway("Geocoding provider unavailable")
	}
	return &GeocodeOutput{Body: toGeocodeResponse(places)}, nil
}
