package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/gatherly-server/internal/domain"
	"github.com/gatherly/gatherly-server/internal/store"
)

func makeEventRow(t *testing.T, s store.Store, id, ownerID string) *domain.Event {
	t.Helper()
	now := time.Now()
	e := &domain.Event{
		ID:        id,
		OwnerID:   ownerID,
		Title:     "Some Event",
		StartsAt:  now.Add(24 * time.Hour),
		EndsAt:    now.Add(26 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateEvent(context.Background(), e))
	return e
}

func TestNormalizeNames(t *testing.T) {
	t.Run("trims and dedupes preserving order", func(t *testing.T) {
		names, err := NormalizeNames([]string{" music ", "live", "music"})
		require.NoError(t, err)
		assert.Equal(t, []string{"music", "live"}, names)
	})

	t.Run("empty name after trim is rejected", func(t *testing.T) {
		_, err := NormalizeNames([]string{"music", "   "})
		assert.ErrorIs(t, err, ErrEmptyTagName)
	})

	t.Run("no names is rejected", func(t *testing.T) {
		_, err := NormalizeNames(nil)
		assert.ErrorIs(t, err, ErrNoTags)
	})

	t.Run("over the limit is rejected", func(t *testing.T) {
		names := make([]string, MaxTagsPerEvent+1)
		for i := range names {
			names[i] = string(rune('a' + i))
		}
		_, err := NormalizeNames(names)
		assert.ErrorIs(t, err, ErrTooManyTags)
	})

	t.Run("case variants are distinct names", func(t *testing.T) {
		names, err := NormalizeNames([]string{"Music", "music"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Music", "music"}, names)
	})
}

func TestResolveAndLink_CreatesNewTags(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, testLogger())
	ctx := context.Background()

	makeUser(t, s, "usr-1")
	makeEventRow(t, s, "evt-1", "usr-1")

	require.NoError(t, svc.ResolveAndLink(ctx, "evt-1", []string{"music", "live"}))

	tags, err := s.GetEventTags(ctx, "evt-1")
	require.NoError(t, err)
	require.Len(t, tags, 2)

	music, err := s.GetTagByName(ctx, "music")
	require.NoError(t, err)
	assert.Equal(t, 1, music.UsageCount)
}

func TestResolveAndLink_IncrementsExistingTag(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, testLogger())
	ctx := context.Background()

	makeUser(t, s, "usr-1")
	makeEventRow(t, s, "evt-1", "usr-1")
	makeEventRow(t, s, "evt-2", "usr-1")

	require.NoError(t, svc.ResolveAndLink(ctx, "evt-1", []string{"music"}))
	require.NoError(t, svc.ResolveAndLink(ctx, "evt-2", []string{"music"}))

	music, err := s.GetTagByName(ctx, "music")
	require.NoError(t, err)
	assert.Equal(t, 2, music.UsageCount)

	// Still a single tag row.
	all, err := s.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestResolveAndLink_PartialFailureKeepsEarlierLinks(t *testing.T) {
	real := newTestStore(t)
	ctx := context.Background()

	makeUser(t, real, "usr-1")
	makeEventRow(t, real, "evt-1", "usr-1")

	calls := 0
	fs := &failingStore{Store: real}
	fs.linkEventTag = func(ctx context.Context, eventID, tagID string) error {
		calls++
		if calls == 2 {
			return store.ErrUnavailable
		}
		return real.LinkEventTag(ctx, eventID, tagID)
	}

	svc := NewTagService(fs, testLogger())
	err := svc.ResolveAndLink(ctx, "evt-1", []string{"music", "live", "outdoor"})
	require.Error(t, err)

	var partial *PartialLinkError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 1, partial.Linked)
	assert.Equal(t, 3, partial.Requested)

	// The link made before the failure stays in place.
	tags, err := real.GetEventTags(ctx, "evt-1")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "music", tags[0].Name)
}

func TestResolveAndLink_DuplicateLinkTolerated(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, testLogger())
	ctx := context.Background()

	makeUser(t, s, "usr-1")
	makeEventRow(t, s, "evt-1", "usr-1")

	require.NoError(t, svc.ResolveAndLink(ctx, "evt-1", []string{"music"}))
	require.NoError(t, svc.ResolveAndLink(ctx, "evt-1", []string{"music"}))

	tags, err := s.GetEventTags(ctx, "evt-1")
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	// The second resolve still counted as a usage.
	music, err := s.GetTagByName(ctx, "music")
	require.NoError(t, err)
	assert.Equal(t, 2, music.UsageCount)
}

func TestRelink_ReplacesLinksWithoutDecrementing(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, testLogger())
	ctx := context.Background()

	makeUser(t, s, "usr-1")
	makeEventRow(t, s, "evt-1", "usr-1")

	require.NoError(t, svc.ResolveAndLink(ctx, "evt-1", []string{"music", "live"}))
	require.NoError(t, svc.Relink(ctx, "evt-1", []string{"music", "outdoor"}))

	tags, err := s.GetEventTags(ctx, "evt-1")
	require.NoError(t, err)
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	assert.ElementsMatch(t, []string{"music", "outdoor"}, names)

	// Kept tag counted again; dropped tag kept its count.
	music, err := s.GetTagByName(ctx, "music")
	require.NoError(t, err)
	assert.Equal(t, 2, music.UsageCount)

	live, err := s.GetTagByName(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, 1, live.UsageCount)
}

func TestRelink_EmptySetJustUnlinks(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, testLogger())
	ctx := context.Background()

	makeUser(t, s, "usr-1")
	makeEventRow(t, s, "evt-1", "usr-1")

	require.NoError(t, svc.ResolveAndLink(ctx, "evt-1", []string{"music"}))
	require.NoError(t, svc.Relink(ctx, "evt-1", nil))

	tags, err := s.GetEventTags(ctx, "evt-1")
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestResolveAndLink_StoreDown(t *testing.T) {
	real := newTestStore(t)
	fs := &failingStore{Store: real}
	fs.getTagByName = func(context.Context, string) (*domain.Tag, error) {
		return nil, store.ErrUnavailable
	}

	svc := NewTagService(fs, testLogger())
	err := svc.ResolveAndLink(context.Background(), "evt-1", []string{"music"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	var partial *PartialLinkError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, 0, partial.Linked)
}

func TestSuggest_EmptyPrefix(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, testLogger())

	tags, err := svc.Suggest(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, tags)
}
