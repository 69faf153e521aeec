package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/gatherly-server/internal/domain"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) *Index {
	t.Helper()

	index, err := NewIndex(Options{
		DataPath: t.TempDir(),
		Logger:   nil,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	return index
}

func TestNewIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIndexEvent(t *testing.T) {
	index := setupTestIndex(t)

	doc := &EventDocument{
		ID:       "evt-123",
		Title:    "Jazz Night",
		Location: "Blue Note",
		Tags:     []string{"jazz", "live music"},
		StartsAt: time.Now().UnixMilli(),
	}

	require.NoError(t, index.IndexEvent(doc))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearch_TitleMatch(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	docs := []*EventDocument{
		{ID: "evt-1", Title: "Jazz Night", StartsAt: time.Now().UnixMilli()},
		{ID: "evt-2", Title: "Pottery Workshop", StartsAt: time.Now().UnixMilli()},
	}
	require.NoError(t, index.IndexEvents(docs))

	params := DefaultParams()
	params.Query = "jazz"
	result, err := index.Search(ctx, params)
	require.NoError(t, err)

	require.Len(t, result.Hits, 1)
	assert.Equal(t, "evt-1", result.Hits[0].ID)
	assert.Equal(t, "Jazz Night", result.Hits[0].Title)
}

func TestSearch_FuzzyMatch(t *testing.T) {
	index := setupTestIndex(t)

	require.NoError(t, index.IndexEvent(&EventDocument{
		ID:    "evt-1",
		Title: "Pottery Workshop",
	}))

	params := DefaultParams()
	params.Query = "potery" // typo
	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, result.Hits, 1)
	assert.Equal(t, "evt-1", result.Hits[0].ID)
}

func TestSearch_TagFilter(t *testing.T) {
	index := setupTestIndex(t)

	docs := []*EventDocument{
		{ID: "evt-1", Title: "Jazz Night", Tags: []string{"jazz"}},
		{ID: "evt-2", Title: "Rock Night", Tags: []string{"rock"}},
	}
	require.NoError(t, index.IndexEvents(docs))

	params := DefaultParams()
	params.Query = "night"
	params.Tags = []string{"jazz"}
	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, result.Hits, 1)
	assert.Equal(t, "evt-1", result.Hits[0].ID)
}

func TestSearch_TimeWindow(t *testing.T) {
	index := setupTestIndex(t)

	now := time.Now()
	docs := []*EventDocument{
		{ID: "evt-soon", Title: "Morning Run", StartsAt: now.Add(24 * time.Hour).UnixMilli()},
		{ID: "evt-later", Title: "Evening Run", StartsAt: now.Add(30 * 24 * time.Hour).UnixMilli()},
	}
	require.NoError(t, index.IndexEvents(docs))

	params := DefaultParams()
	params.Query = "run"
	params.Until = now.Add(7 * 24 * time.Hour)
	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, result.Hits, 1)
	assert.Equal(t, "evt-soon", result.Hits[0].ID)
}

func TestSearch_Highlighting(t *testing.T) {
	index := setupTestIndex(t)

	require.NoError(t, index.IndexEvent(&EventDocument{
		ID:    "evt-1",
		Title: "Jazz Night at the Park",
	}))

	params := DefaultParams()
	params.Query = "jazz"
	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, result.Hits, 1)
	assert.Contains(t, result.Hits[0].Highlights, "title")
}

func TestDeleteEvent(t *testing.T) {
	index := setupTestIndex(t)

	require.NoError(t, index.IndexEvent(&EventDocument{ID: "evt-1", Title: "Jazz Night"}))
	require.NoError(t, index.DeleteEvent("evt-1"))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestNewEventDocument(t *testing.T) {
	starts := time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC)
	e := &domain.Event{
		ID:       "evt-1",
		Title:    "Jazz Night",
		Location: "Blue Note",
		StartsAt: starts,
		Tags: []domain.Tag{
			{ID: "tag-1", Name: "jazz"},
			{ID: "tag-2", Name: "live music"},
		},
	}

	doc := NewEventDocument(e)
	assert.Equal(t, "evt-1", doc.ID)
	assert.Equal(t, []string{"jazz", "live music"}, doc.Tags)
	assert.Equal(t, starts.UnixMilli(), doc.StartsAt)
}
