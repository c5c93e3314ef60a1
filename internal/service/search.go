package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spindleapp/spindle-server/internal/domain"
	"github.com/spindleapp/spindle-server/internal/search"
	"github.com/spindleapp/spindle-server/internal/store"
)

// SearchService bridges the search index with the data store, handling
// document creation, updates, and query execution. It implements
// store.SearchIndexer so the store can keep the index in sync as albums
// change.
type SearchService struct {
	index  *search.SearchIndex
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, store *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search performs an album search.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// IndexAlbum indexes a single album. Called by the store whenever an album
// is created or its aggregates change.
func (s *SearchService) IndexAlbum(_ context.Context, album *domain.Album) error {
	doc := search.AlbumToDocument(album)

	if err := s.index.IndexDocument(doc); err != nil {
		return fmt.Errorf("index album: %w", err)
	}

	s.logger.Debug("indexed album", "id", album.ID, "name", album.Name)
	return nil
}

// DocumentCount returns the number of indexed albums.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// DeleteAlbum removes an album from the index.
func (s *SearchService) DeleteAlbum(_ context.Context, albumID string) error {
	return s.index.DeleteDocument(albumID)
}

// ReindexAll rebuilds the index from the full album collection. Used on
// startup when the mapping version changed and after bulk seeding.
func (s *SearchService) ReindexAll(ctx context.Context) (int, error) {
	albums, err := s.store.QueryAlbums(ctx, store.ComposeAlbumQuery(store.AlbumFilter{}))
	if err != nil {
		return 0, fmt.Errorf("load albums: %w", err)
	}

	docs := make([]*search.AlbumDocument, len(albums))
	for i, album := range albums {
		docs[i] = search.AlbumToDocument(album)
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return 0, fmt.Errorf("index albums: %w", err)
	}

	s.logger.Info("reindexed album catalog", "count", len(docs))
	return len(docs), nil
}
