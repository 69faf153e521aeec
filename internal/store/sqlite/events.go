package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gatherly/gatherly-server/internal/domain"
	"github.com/gatherly/gatherly-server/internal/store"
)

// eventColumns is the ordered list of columns selected in event queries.
// Must match the scan order in scanEvent.
const eventColumns = `id, owner_id, title, description, location, latitude, longitude,
	starts_at, ends_at, image_url, capacity, created_at, updated_at`

// scanEvent scans a sql.Row (or sql.Rows via its Scan method) into a domain.Event.
// Tags are left nil; callers load them separately when needed.
func scanEvent(scanner interface{ Scan(dest ...any) error }) (*domain.Event, error) {
	var e domain.Event

	var (
		startsAt  string
		endsAt    string
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&e.ID,
		&e.OwnerID,
		&e.Title,
		&e.Description,
		&e.Location,
		&e.Latitude,
		&e.Longitude,
		&startsAt,
		&endsAt,
		&e.ImageURL,
		&e.Capacity,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if e.StartsAt, err = parseTime(startsAt); err != nil {
		return nil, err
	}
	if e.EndsAt, err = parseTime(endsAt); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &e, nil
}

// CreateEvent inserts a new event into the database.
func (s *Store) CreateEvent(ctx context.Context, e *domain.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, owner_id, title, description, location, latitude, longitude,
			starts_at, ends_at, image_url, capacity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.OwnerID,
		e.Title,
		e.Description,
		e.Location,
		e.Latitude,
		e.Longitude,
		formatTime(e.StartsAt),
		formatTime(e.EndsAt),
		e.ImageURL,
		e.Capacity,
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetEvent retrieves an event by its ID, with tags populated.
// Returns store.ErrNotFound if the event does not exist.
func (s *Store) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	e.Tags, err = s.GetEventTags(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// buildEventFilter renders the WHERE clause and args for an event filter.
func buildEventFilter(f store.EventFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.OwnerID != "" {
		conds = append(conds, "e.owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if f.TagName != "" {
		conds = append(conds, `e.id IN (
			SELECT et.event_id FROM event_tags et
			JOIN tags t ON t.id = et.tag_id
			WHERE t.name = ?)`)
		args = append(args, f.TagName)
	}
	if f.From != nil {
		conds = append(conds, "e.starts_at >= ?")
		args = append(args, formatTime(*f.From))
	}
	if f.Until != nil {
		conds = append(conds, "e.starts_at < ?")
		args = append(args, formatTime(*f.Until))
	}
	if f.TitleLike != "" {
		conds = append(conds, "e.title LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(f.TitleLike)+"%")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// escapeLike escapes LIKE metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// ListEvents returns events matching the filter, ordered by start time.
// Tags are populated on each returned event.
func (s *Store) ListEvents(ctx context.Context, filter store.EventFilter) ([]*domain.Event, error) {
	filter.Normalize()

	where, args := buildEventFilter(filter)
	query := `SELECT ` + eventColumns + ` FROM events e` + where +
		` ORDER BY e.starts_at ASC, e.id ASC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
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

// CountEvents returns the number of events matching the filter,
// ignoring pagination.
func (s *Store) CountEvents(ctx context.Context, filter store.EventFilter) (int, error) {
	where, args := buildEventFilter(filter)

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events e`+where, args...).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateEvent updates an existing event's row.
// Returns store.ErrNotFound if the event does not exist.
func (s *Store) UpdateEvent(ctx context.Context, e *domain.Event) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE events
		SET title = ?, description = ?, location = ?, latitude = ?, longitude = ?,
			starts_at = ?, ends_at = ?, image_url = ?, capacity = ?, updated_at = ?
		WHERE id = ?`,
		e.Title,
		e.Description,
		e.Location,
		e.Latitude,
		e.Longitude,
		formatTime(e.StartsAt),
		formatTime(e.EndsAt),
		e.ImageURL,
		e.Capacity,
		formatTime(e.UpdatedAt),
		e.ID,
	)
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

// DeleteEvent removes an event. Links and favorites cascade.
// Returns store.ErrNotFound if the event does not exist.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
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
