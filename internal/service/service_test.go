package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gatherly/gatherly-server/internal/domain"
	"github.com/gatherly/gatherly-server/internal/store"
	"github.com/gatherly/gatherly-server/internal/store/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func makeUser(t *testing.T, s store.Store, id string) *domain.User {
	t.Helper()
	now := time.Now()
	u := &domain.User{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: "x",
		DisplayName:  "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func ptr[T any](v T) *T { return &v }

// failingStore wraps a real store and lets individual tests inject
// failures into specific operations.
type failingStore struct {
	store.Store

	createEvent  func(ctx context.Context, event *domain.Event) error
	updateEvent  func(ctx context.Context, event *domain.Event) error
	deleteEvent  func(ctx context.Context, id string) error
	linkEventTag func(ctx context.Context, eventID, tagID string) error
	createTag    func(ctx context.Context, tag *domain.Tag) error
	getTagByName func(ctx context.Context, name string) (*domain.Tag, error)
}

func (f *failingStore) CreateEvent(ctx context.Context, event *domain.Event) error {
	if f.createEvent != nil {
		return f.createEvent(ctx, event)
	}
	return f.Store.CreateEvent(ctx, event)
}

func (f *failingStore) UpdateEvent(ctx context.Context, event *domain.Event) error {
	if f.updateEvent != nil {
		return f.updateEvent(ctx, event)
	}
	return f.Store.UpdateEvent(ctx, event)
}

func (f *failingStore) DeleteEvent(ctx context.Context, id string) error {
	if f.deleteEvent != nil {
		return f.deleteEvent(ctx, id)
	}
	return f.Store.DeleteEvent(ctx, id)
}

func (f *failingStore) LinkEventTag(ctx context.Context, eventID, tagID string) error {
	if f.linkEventTag != nil {
		return f.linkEventTag(ctx, eventID, tagID)
	}
	return f.Store.LinkEventTag(ctx, eventID, tagID)
}

func (f *failingStore) CreateTag(ctx context.Context, tag *domain.Tag) error {
	if f.createTag != nil {
		return f.createTag(ctx, tag)
	}
	return f.Store.CreateTag(ctx, tag)
}

func (f *failingStore) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	if f.getTagByName != nil {
		return f.getTagByName(ctx, name)
	}
	return f.Store.GetTagByName(ctx, name)
}

// recordingRemover is an ImageRemover fake that records deletions and
// can be made to fail.
type recordingRemover struct {
	deleted []string
	err     error
}

func (r *recordingRemover) Delete(name string) error {
	if r.err != nil {
		return r.err
	}
	r.deleted = append(r.deleted, name)
	return nil
}
