package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatherly/gatherly-server/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "usr-1")

	got, err := s.GetUser(ctx, "usr-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Email != u.Email {
		t.Errorf("Email: got %q, want %q", got.Email, u.Email)
	}
	if !got.LastLoginAt.IsZero() {
		t.Errorf("expected zero LastLoginAt, got %v", got.LastLoginAt)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "usr-1")

	dup := *u
	dup.ID = "usr-2"
	if err := s.CreateUser(ctx, &dup); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestUser(t, s, "usr-1")

	got, err := s.GetUserByEmail(ctx, "USR-1@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != "usr-1" {
		t.Errorf("ID: got %q", got.ID)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser(t, s, "usr-1")
	u.DisplayName = "Renamed"
	u.LastLoginAt = time.Now()
	u.Touch()

	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "usr-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.DisplayName != "Renamed" {
		t.Errorf("DisplayName: got %q", got.DisplayName)
	}
	if got.LastLoginAt.IsZero() {
		t.Error("expected LastLoginAt set")
	}
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetUser(context.Background(), "usr-nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetUserByEmail(context.Background(), "nope@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
