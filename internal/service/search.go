package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gatherly/gatherly-server/internal/search"
	"github.com/gatherly/gatherly-server/internal/store"
)

// rebuildPageSize is the batch size for reindexing from the store.
const rebuildPageSize = 200

// SearchService fronts the full-text index and keeps it rebuildable
// from the store, which stays the source of truth.
type SearchService struct {
	store  store.Store
	index  *search.Index
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(store store.Store, index *search.Index, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  store,
		index:  index,
		logger: logger,
	}
}

// Search runs a full-text query against the event index.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return result, nil
}

// RebuildFromStore reindexes every event, paging through the store.
// Returns the number of events indexed.
func (s *SearchService) RebuildFromStore(ctx context.Context) (int, error) {
	total := 0
	offset := 0
	for {
		events, err := s.store.ListEvents(ctx, store.EventFilter{
			Limit:  rebuildPageSize,
			Offset: offset,
		})
		if err != nil {
			return total, fmt.Errorf("%w: list events for reindex: %v", ErrStoreUnavailable, err)
		}
		if len(events) == 0 {
			break
		}

		docs := make([]*search.EventDocument, len(events))
		for i, e := range events {
			docs[i] = search.NewEventDocument(e)
		}
		if err := s.index.IndexEvents(docs); err != nil {
			return total, fmt.Errorf("index batch at offset %d: %w", offset, err)
		}

		total += len(events)
		offset += len(events)
		if len(events) < rebuildPageSize {
			break
		}
	}

	s.logger.Info("search index rebuilt", "events", total)
	return total, nil
}

// DocumentCount returns how many events are currently indexed.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}
