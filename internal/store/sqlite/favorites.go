package sqlite

import (
	"context"
	"strings"

	"github.com/gatherly/gatherly-server/internal/domain"
	"github.com/gatherly/gatherly-server/internal/store"
)

// CreateFavorite saves an event for a user.
// Returns store.ErrAlreadyExists if the event is already saved.
func (s *Store) CreateFavorite(ctx context.Context, fav *domain.Favorite) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, event_id, created_at)
		VALUES (?, ?, ?)`,
		fav.UserID,
		fav.EventID,
		formatTime(fav.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteFavorite removes a saved event for a user.
// Returns store.ErrNotFound if the favorite does not exist.
func (s *Store) DeleteFavorite(ctx context.Context, userID, eventID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND event_id = ?`,
		userID, eventID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// IsFavorite reports whether the user has saved the event.
func (s *Store) IsFavorite(ctx context.Context, userID, eventID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND event_id = ?`,
		userID, eventID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFavoriteEvents returns the user's saved events, most recently saved first.
// Tags are populated on each returned event.
func (s *Store) ListFavoriteEvents(ctx context.Context, userID string) ([]*domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.owner_id, e.title, e.description, e.location, e.latitude, e.longitude,
			e.starts_at, e.ends_at, e.image_url, e.capacity, e.created_at, e.updated_at
		FROM events e
		JOIN favorites f ON f.event_id = e.id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, e := range events {
		if e.Tags, err = s.GetEventTags(ctx, e.ID); err != nil {
			return nil, err
		}
	}
	return events, nil
}
