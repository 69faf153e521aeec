// Package store defines the persistence interface for the Gatherly server.
package store

import (
	"context"
	"time"

	"github.com/gatherly/gatherly-server/internal/domain"
)

// EventFilter narrows and pages event listings.
type EventFilter struct {
	OwnerID   string     // Only events owned by this user
	TagName   string     // Only events carrying a tag with this exact name
	From      *time.Time // Only events starting at or after this instant
	Until     *time.Time // Only events starting before this instant
	TitleLike string     // Case-insensitive substring match on title
	Limit     int        // Page size; 0 means DefaultListLimit
	Offset    int
}

// DefaultListLimit is the page size used when a filter does not set one.
const DefaultListLimit = 50

// MaxListLimit caps the page size a client can request.
const MaxListLimit = 200

// Normalize clamps pagination values into range.
func (f *EventFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Auth sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	RevokeSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Events
	CreateEvent(ctx context.Context, event *domain.Event) error
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*domain.Event, error)
	CountEvents(ctx context.Context, filter EventFilter) (int, error)
	UpdateEvent(ctx context.Context, event *domain.Event) error
	DeleteEvent(ctx context.Context, id string) error

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	IncrementTagUsage(ctx context.Context, id string) error
	LinkEventTag(ctx context.Context, eventID, tagID string) error
	UnlinkEventTags(ctx context.Context, eventID string) error
	GetEventTags(ctx context.Context, eventID string) ([]domain.Tag, error)
	SuggestTags(ctx context.Context, prefix string, limit int) ([]*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	// Favorites
	CreateFavorite(ctx context.Context, fav *domain.Favorite) error
	DeleteFavorite(ctx context.Context, userID, eventID string) error
	IsFavorite(ctx context.Context, userID, eventID string) (bool, error)
	ListFavoriteEvents(ctx context.Context, userID string) ([]*domain.Event, error)
}
