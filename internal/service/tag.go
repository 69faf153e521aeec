package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gatherly/gatherly-server/internal/domain"
	"github.com/gatherly/gatherly-server/internal/id"
	"github.com/gatherly/gatherly-server/internal/store"
)

// Tag limits per event.
const (
	MinTagsPerEvent = 1
	MaxTagsPerEvent = 10

	// suggestLimit caps tag autocomplete results.
	suggestLimit = 5
)

// Tag input errors.
var (
	ErrNoTags       = errors.New("at least one tag name is required")
	ErrTooManyTags  = fmt.Errorf("at most %d tags are allowed", MaxTagsPerEvent)
	ErrEmptyTagName = errors.New("tag name is empty after trimming")
)

// TagService resolves free-text tag names to persisted tag identities and
// keeps an event's tag links in line with the requested set.
//
// Tags are community-wide — no user ownership. Names match by exact
// case-sensitive string equality, and the usage counter counts every
// attachment ever made; it is never decremented.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  store,
		logger: logger,
	}
}

// NormalizeNames trims, drops empties, and deduplicates tag names while
// preserving input order. Errors if the result is empty or over the limit.
func NormalizeNames(names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, ErrEmptyTagName
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}

	if len(out) < MinTagsPerEvent {
		return nil, ErrNoTags
	}
	if len(out) > MaxTagsPerEvent {
		return nil, ErrTooManyTags
	}
	return out, nil
}

// ResolveAndLink resolves each tag name to a persisted tag and links the
// event to it. Each name is fully resolved (lookup, create-or-increment,
// link) before the next is started.
//
// There is no isolation around the lookup: two concurrent callers resolving
// the same new name can both observe "not found" and both insert, leaving
// two tag rows with that name. Readers converge on the oldest row, so the
// duplicate is harmless and is left in place.
//
// A failure partway through keeps the links already made and returns a
// *PartialLinkError carrying the linked count; nothing is rolled back.
func (s *TagService) ResolveAndLink(ctx context.Context, eventID string, tagNames []string) error {
	names, err := NormalizeNames(tagNames)
	if err != nil {
		return err
	}

	linked := 0
	for _, name := range names {
		if err := s.resolveOne(ctx, eventID, name); err != nil {
			s.logger.Error("tag resolution aborted",
				"event_id", eventID,
				"tag", name,
				"linked", linked,
				"error", err,
			)
			return &PartialLinkError{Linked: linked, Requested: len(names), Err: err}
		}
		linked++
	}

	return nil
}

// resolveOne looks a name up, bumps or creates the tag, and links it.
func (s *TagService) resolveOne(ctx context.Context, eventID, name string) error {
	tag, err := s.store.GetTagByName(ctx, name)
	switch {
	case err == nil:
		if err := s.store.IncrementTagUsage(ctx, tag.ID); err != nil {
			return fmt.Errorf("%w: increment %q: %v", ErrStoreUnavailable, name, err)
		}
	case errors.Is(err, store.ErrNotFound):
		tagID, idErr := id.Generate("tag")
		if idErr != nil {
			return fmt.Errorf("generate tag ID: %w", idErr)
		}
		now := time.Now()
		tag = &domain.Tag{
			ID:         tagID,
			Name:       name,
			UsageCount: 1,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.store.CreateTag(ctx, tag); err != nil {
			return fmt.Errorf("%w: create %q: %v", ErrStoreUnavailable, name, err)
		}
	default:
		return fmt.Errorf("%w: lookup %q: %v", ErrStoreUnavailable, name, err)
	}

	if err := s.store.LinkEventTag(ctx, eventID, tag.ID); err != nil {
		// A concurrent call already made this exact link; fine.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("%w: link %q: %v", ErrStoreUnavailable, name, err)
	}

	return nil
}

// Relink replaces an event's tag links with the requested set: all existing
// links are deleted first, then the new names are resolved and linked.
//
// Usage counters on the old tags are NOT decremented — only increments ever
// happen on the update path, so the counter reads as "times ever attached"
// rather than a live-link count.
func (s *TagService) Relink(ctx context.Context, eventID string, newTagNames []string) error {
	if err := s.store.UnlinkEventTags(ctx, eventID); err != nil {
		return fmt.Errorf("%w: unlink event tags: %v", ErrStoreUnavailable, err)
	}

	if len(newTagNames) == 0 {
		return nil
	}

	return s.ResolveAndLink(ctx, eventID, newTagNames)
}

// Suggest returns up to five tags starting with the given prefix,
// most-used first. An empty prefix returns nothing.
func (s *TagService) Suggest(ctx context.Context, prefix string) ([]*domain.Tag, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, nil
	}

	tags, err := s.store.SuggestTags(ctx, prefix, suggestLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: suggest tags: %v", ErrStoreUnavailable, err)
	}
	return tags, nil
}

// List returns all tags ordered by name.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list tags: %v", ErrStoreUnavailable, err)
	}
	return tags, nil
}
