package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gatherly/gatherly-server/internal/domain"
	apperrors "github.com/gatherly/gatherly-server/internal/errors"
	"github.com/gatherly/gatherly-server/internal/store"
)

// FavoriteService manages per-user saved events.
type FavoriteService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(store store.Store, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		store:  store,
		logger: logger,
	}
}

// Add saves an event to the user's favorites. Saving an already-saved
// event is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, eventID string) error {
	err := s.store.CreateFavorite(ctx, &domain.Favorite{
		UserID:    userID,
		EventID:   eventID,
		CreatedAt: time.Now(),
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrAlreadyExists):
		return nil
	case errors.Is(err, store.ErrNotFound):
		return apperrors.NotFoundf("event %s not found", eventID)
	default:
		return fmt.Errorf("%w: save favorite: %v", ErrStoreUnavailable, err)
	}
}

// Remove drops an event from the user's favorites. Removing an event
// that was never saved is a no-op.
func (s *FavoriteService) Remove(ctx context.Context, userID, eventID string) error {
	err := s.store.DeleteFavorite(ctx, userID, eventID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("%w: remove favorite: %v", ErrStoreUnavailable, err)
	}
}

// IsSaved reports whether the user has the event in their favorites.
func (s *FavoriteService) IsSaved(ctx context.Context, userID, eventID string) (bool, error) {
	saved, err := s.store.IsFavorite(ctx, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("%w: check favorite: %v", ErrStoreUnavailable, err)
	}
	return saved, nil
}

// List returns the user's saved events, most recently saved first.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]*domain.Event, error) {
	events, err := s.store.ListFavoriteEvents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list favorites: %v", ErrStoreUnavailable, err)
	}
	return events, nil
}
