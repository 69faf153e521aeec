package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gatherly/gatherly-server/internal/domain"
	"github.com/gatherly/gatherly-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, usage_count, created_at, updated_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.UsageCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag inserts a new tag into the database.
// Names are not unique, so two writers can both insert the same name.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, usage_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID,
		t.Name,
		t.UsageCount,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetTag retrieves a tag by its ID.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagByName retrieves a tag by its exact name.
// When duplicate rows exist for a name the oldest row wins, so all
// lookups converge on the same tag even after a racy double insert.
// Returns store.ErrNotFound if no tag has this name.
func (s *Store) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name = ?
		 ORDER BY created_at ASC, id ASC LIMIT 1`, name)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// IncrementTagUsage bumps a tag's usage counter by one.
// The counter is never decremented; it records total attachments ever.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) IncrementTagUsage(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tags SET usage_count = usage_count + 1, updated_at = ?
		WHERE id = ?`,
		formatTime(time.Now()),
		id,
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

// LinkEventTag attaches a tag to an event.
// Returns store.ErrAlreadyExists if the link is already present.
func (s *Store) LinkEventTag(ctx context.Context, eventID, tagID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO event_tags (event_id, tag_id, created_at)
		VALUES (?, ?, ?)`,
		eventID,
		tagID,
		formatTime(time.Now()),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UnlinkEventTags removes all tag links for an event.
// Usage counters on the tags are left untouched.
func (s *Store) UnlinkEventTags(ctx context.Context, eventID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM event_tags WHERE event_id = ?`, eventID)
	return err
}

// GetEventTags returns the tags attached to an event, ordered by name.
func (s *Store) GetEventTags(ctx context.Context, eventID string) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.usage_count, t.created_at, t.updated_at
		FROM tags t
		JOIN event_tags et ON et.tag_id = t.id
		WHERE et.event_id = ?
		ORDER BY t.name ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *t)
	}
	return tags, rows.Err()
}

// SuggestTags returns tags whose name starts with the given prefix,
// most-used first. The prefix match is case-insensitive.
func (s *Store) SuggestTags(ctx context.Context, prefix string, limit int) ([]*domain.Tag, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tagColumns+` FROM tags
		WHERE name LIKE ? ESCAPE '\'
		ORDER BY usage_count DESC, name ASC
		LIMIT ?`,
		escapeLike(prefix)+"%",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
