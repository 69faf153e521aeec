package geocode

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewClient(srv.URL, "test-token", logger)
}

const sampleResponse = `{
	"features": [
		{
			"id": "poi.1",
			"text": "Blue Note",
			"place_name": "Blue Note, 131 W 3rd St, New York, New York 10012, United States",
			"center": [-74.000663, 40.730824]
		},
		{
			"id": "poi.2",
			"text": "Blue Note Cafe",
			"place_name": "Blue Note Cafe, Berlin, Germany",
			"center": [13.40, 52.52]
		}
	]
}`

func TestSearch(t *testing.T) {
	var gotPath, gotToken string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotToken = r.URL.Query().Get("access_token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleResponse))
	})

	places, err := c.Search(context.Background(), "Blue Note")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if !strings.Contains(gotPath, "Blue%20Note.json") {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotToken != "test-token" {
		t.Errorf("access token not sent: %q", gotToken)
	}

	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(places))
	}
	first := places[0]
	if first.Name != "Blue Note" {
		t.Errorf("Name: got %q", first.Name)
	}
	if first.Longitude != -74.000663 || first.Latitude != 40.730824 {
		t.Errorf("center order wrong: lon=%v lat=%v", first.Longitude, first.Latitude)
	}
}

func TestReverse_QueryShape(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"features": []}`))
	})

	_, err := c.Reverse(context.Background(), -74.0006, 40.7308)
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}

	// Reverse lookups send "lon,lat" as the query.
	if !strings.Contains(gotPath, "-74.0006,40.7308.json") {
		t.Errorf("unexpected reverse path: %s", gotPath)
	}
}

func TestSearch_Disabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	c := NewClient("http://unused", "", logger)

	if _, err := c.Search(context.Background(), "anywhere"); err != ErrDisabled {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if c.Enabled() {
		t.Error("expected client disabled without a token")
	}
}

func TestSearch_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := c.Search(context.Background(), "anywhere"); err == nil {
		t.Fatal("expected error on upstream failure")
	}
}

func TestSearch_SkipsMalformedFeatures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features": [{"id": "poi.1", "text": "No Center", "center": []}]}`))
	})

	places, err := c.Search(context.Background(), "anywhere")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(places) != 0 {
		t.Errorf("expected malformed feature dropped, got %d", len(places))
	}
}
