package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gatherly/gatherly-server/internal/errors"
)

func TestFavoriteAddRemove(t *testing.T) {
	s := newTestStore(t)
	svc := NewFavoriteService(s, testLogger())
	ctx := context.Background()

	makeUser(t, s, "usr-1")
	makeEventRow(t, s, "evt-1", "usr-1")

	require.NoError(t, svc.Add(ctx, "usr-1", "evt-1"))

	saved, err := svc.IsSaved(ctx, "usr-1", "evt-1")
	require.NoError(t, err)
	assert.True(t, saved)

	// Saving again is a no-op, not a conflict.
	assert.NoError(t, svc.Add(ctx, "usr-1", "evt-1"))

	require.NoError(t, svc.Remove(ctx, "usr-1", "evt-1"))
	saved, err = svc.IsSaved(ctx, "usr-1", "evt-1")
	require.NoError(t, err)
	assert.False(t, saved)

	// Removing again is equally a no-op.
	assert.NoError(t, svc.Remove(ctx, "usr-1", "evt-1"))
}

func TestFavoriteAdd_MissingEvent(t *testing.T) {
	s := newTestStore(t)
	svc := NewFavoriteService(s, testLogger())

	makeUser(t, s, "usr-1")

	err := svc.Add(context.Background(), "usr-1", "evt-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFavoriteList(t *testing.T) {
	s := newTestStore(t)
	svc := NewFavoriteService(s, testLogger())
	ctx := context.Background()

	makeUser(t, s, "usr-1")
	makeEventRow(t, s, "evt-1", "usr-1")
	makeEventRow(t, s, "evt-2", "usr-1")

	require.NoError(t, svc.Add(ctx, "usr-1", "evt-1"))
	require.NoError(t, svc.Add(ctx, "usr-1", "evt-2"))

	events, err := svc.List(ctx, "usr-1")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
