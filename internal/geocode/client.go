// Package geocode provides forward and reverse geocoding against a
// Mapbox-compatible places API.
package geocode

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client provides access to the geocoding API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	baseURL     string
	accessToken string
}

// NewClient creates a new geocoding client.
// baseURL points at a Mapbox places endpoint; an empty accessToken
// leaves the client constructed but Enabled() false.
func NewClient(baseURL, accessToken string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// Mapbox free tier allows 600 requests per minute; stay well under.
		rateLimiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 10),
		logger:      logger,
		baseURL:     baseURL,
		accessToken: accessToken,
	}
}

// Enabled reports whether the client has an access token configured.
func (c *Client) Enabled() bool {
	return c.accessToken != ""
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
