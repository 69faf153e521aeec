package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gatherly/gatherly-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// makeTestUser inserts a user so that owner/user foreign keys resolve.
func makeTestUser(t *testing.T, s *Store, id string) *domain.User {
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
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	tables := []string{"users", "sessions", "events", "tags", "event_tags", "favorites"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	makeTestUser(t, s, "usr-reopen")
	s.Close()

	// Schema is idempotent and existing data survives.
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	if _, err := s2.GetUser(context.Background(), "usr-reopen"); err != nil {
		t.Errorf("expected user to survive reopen: %v", err)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	ts := time.Date(2026, 6, 15, 19, 30, 0, 123456789, time.UTC)
	parsed, err := parseTime(formatTime(ts))
	if err != nil {
		t.Fatalf("parseTime: %v", err)
	}
	if !parsed.Equal(ts) {
		t.Errorf("round trip: got %v, want %v", parsed, ts)
	}
}
