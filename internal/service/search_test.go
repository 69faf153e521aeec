package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/gatherly-server/internal/search"
	"github.com/gatherly/gatherly-server/internal/store"
)

func newSearchService(t *testing.T, s store.Store) *SearchService {
	t.Helper()
	index, err := search.NewIndex(search.Options{DataPath: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	return NewSearchService(s, index, testLogger())
}

func TestRebuildFromStore(t *testing.T) {
	s := newTestStore(t)
	svc := newSearchService(t, s)
	ctx := context.Background()

	makeUser(t, s, "usr-1")
	makeEventRow(t, s, "evt-1", "usr-1")
	makeEventRow(t, s, "evt-2", "usr-1")

	n, err := svc.RebuildFromStore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := svc.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestRebuildFromStore_Empty(t *testing.T) {
	s := newTestStore(t)
	svc := newSearchService(t, s)

	n, err := svc.RebuildFromStore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSearchService_Search(t *testing.T) {
	s := newTestStore(t)
	svc := newSearchService(t, s)
	ctx := context.Background()

	makeUser(t, s, "usr-1")
	makeEventRow(t, s, "evt-1", "usr-1")

	_, err := svc.RebuildFromStore(ctx)
	require.NoError(t, err)

	params := search.DefaultParams()
	params.Query = "some"
	result, err := svc.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "evt-1", result.Hits[0].ID)
}
