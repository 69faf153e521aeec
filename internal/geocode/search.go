package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gatherly/gatherly-server/internal/domain"
)

const defaultLimit = 5

// ErrDisabled is returned when no access token is configured.
var ErrDisabled = errors.New("geocoding is not configured")

// featureCollection is the wire shape of a places response.
type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	PlaceName string    `json:"place_name"`
	Center    []float64 `json:"center"` // [longitude, latitude]
}

// Search resolves a free-text location query to candidate places.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Place, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	if query == "" {
		return nil, errors.New("empty query")
	}
	return c.forward(ctx, query)
}

// Reverse resolves coordinates to candidate places.
// The places API treats a "lon,lat" query as a reverse lookup.
func (c *Client) Reverse(ctx context.Context, longitude, latitude float64) ([]domain.Place, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	query := strconv.FormatFloat(longitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(latitude, 'f', -1, 64)
	return c.forward(ctx, query)
}

func (c *Client) forward(ctx context.Context, query string) ([]domain.Place, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("access_token", c.accessToken)
	params.Set("limit", strconv.Itoa(defaultLimit))

	requestURL := c.baseURL + "/" + url.PathEscape(query) + ".json?" + params.Encode()

	c.logger.Debug("geocoding request", "query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode failed: status %d", resp.StatusCode)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	places := make([]domain.Place, 0, len(fc.Features))
	for _, f := range fc.Features {
		if len(f.Center) < 2 {
			continue
		}
		places = append(places, domain.Place{
			ID:        f.ID,
			Name:      f.Text,
			PlaceName: f.PlaceName,
			Longitude: f.Center[0],
			Latitude:  f.Center[1],
		})
	}

	c.logger.Debug("geocoding results", "query", query, "count", len(places))

	return places, nil
}
