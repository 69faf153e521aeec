package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatherly/gatherly-server/internal/domain"
	"github.com/gatherly/gatherly-server/internal/store"
)

func TestCreateFavorite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "usr-1")

	event := makeTestEvent("evt-1", "usr-1", "Jazz Night", time.Now().Add(time.Hour))
	if err := s.CreateEvent(ctx, event); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	fav := &domain.Favorite{UserID: "usr-1", EventID: "evt-1", CreatedAt: time.Now()}
	if err := s.CreateFavorite(ctx, fav); err != nil {
		t.Fatalf("CreateFavorite: %v", err)
	}

	isFav, err := s.IsFavorite(ctx, "usr-1", "evt-1")
	if err != nil {
		t.Fatalf("IsFavorite: %v", err)
	}
	if !isFav {
		t.Error("expected favorite to exist")
	}

	// Saving twice conflicts.
	if err := s.CreateFavorite(ctx, fav); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateFavorite_MissingEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "usr-1")

	fav := &domain.Favorite{UserID: "usr-1", EventID: "evt-nope", CreatedAt: time.Now()}
	if err := s.CreateFavorite(ctx, fav); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing event, got %v", err)
	}
}

func TestDeleteFavorite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "usr-1")

	event := makeTestEvent("evt-1", "usr-1", "Jazz Night", time.Now().Add(time.Hour))
	if err := s.CreateEvent(ctx, event); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	fav := &domain.Favorite{UserID: "usr-1", EventID: "evt-1", CreatedAt: time.Now()}
	if err := s.CreateFavorite(ctx, fav); err != nil {
		t.Fatalf("CreateFavorite: %v", err)
	}

	if err := s.DeleteFavorite(ctx, "usr-1", "evt-1"); err != nil {
		t.Fatalf("DeleteFavorite: %v", err)
	}

	isFav, err := s.IsFavorite(ctx, "usr-1", "evt-1")
	if err != nil {
		t.Fatalf("IsFavorite: %v", err)
	}
	if isFav {
		t.Error("expected favorite removed")
	}

	if err := s.DeleteFavorite(ctx, "usr-1", "evt-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListFavoriteEvents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	makeTestUser(t, s, "usr-1")
	makeTestUser(t, s, "usr-2")

	first := makeTestEvent("evt-1", "usr-2", "Jazz Night", time.Now().Add(time.Hour))
	second := makeTestEvent("evt-2", "usr-2", "Pottery Workshop", time.Now().Add(2*time.Hour))
	for _, e := range []*domain.Event{first, second} {
		if err := s.CreateEvent(ctx, e); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}
	if err := s.CreateTag(ctx, makeTestTag("tag-1", "jazz")); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if err := s.LinkEventTag(ctx, "evt-1", "tag-1"); err != nil {
		t.Fatalf("LinkEventTag: %v", err)
	}

	now := time.Now()
	favs := []*domain.Favorite{
		{UserID: "usr-1", EventID: "evt-1", CreatedAt: now.Add(-time.Minute)},
		{UserID: "usr-1", EventID: "evt-2", CreatedAt: now},
	}
	for _, f := range favs {
		if err := s.CreateFavorite(ctx, f); err != nil {
			t.Fatalf("CreateFavorite: %v", err)
		}
	}

	got, err := s.ListFavoriteEvents(ctx, "usr-1")
	if err != nil {
		t.Fatalf("ListFavoriteEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(got))
	}
	// Most recently saved first.
	if got[0].ID != "evt-2" {
		t.Errorf("expected evt-2 first, got %s", got[0].ID)
	}
	if len(got[1].Tags) != 1 {
		t.Errorf("expected tags populated on favorites, got %v", got[1].Tags)
	}

	// Other users see nothing.
	got, err = s.ListFavoriteEvents(ctx, "usr-2")
	if err != nil {
		t.Fatalf("ListFavoriteEvents: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no favorites for usr-2, got %d", len(got))
	}
}
