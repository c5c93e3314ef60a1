package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/spindleapp/spindle-server/internal/domain"
	"github.com/spindleapp/spindle-server/internal/sse"
)

// Album-specific errors.
var (
	ErrAlbumNotFound = errors.New("album not found")
	ErrAlbumExists   = errors.New("album already exists")
)

// CreateAlbum stores a new album document. The album starts with whatever
// aggregates it carries; callers creating user-facing albums should pass a
// zeroed aggregate block (bulk seeding is the exception, see SeedAlbums).
func (s *Store) CreateAlbum(ctx context.Context, album *domain.Album) error {
	if album.ID == "" {
		return fmt.Errorf("album ID is required")
	}

	key := albumKey(album.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("failed to check album existence: %w", err)
	}
	if exists {
		return ErrAlbumExists
	}

	now := time.Now()
	album.CreatedAt = now
	album.UpdatedAt = now
	album.Normalize()

	data, err := json.Marshal(album)
	if err != nil {
		return fmt.Errorf("failed to marshal album: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("failed to store album: %w", err)
	}

	if s.eventEmitter != nil {
		s.eventEmitter.Emit(sse.NewAlbumCreatedEvent(album))
	}
	s.reindexAlbum(album)
	s.watches.notifyAlbum(album.ID)

	return nil
}

// GetAlbum retrieves an album by ID.
func (s *Store) GetAlbum(ctx context.Context, albumID string) (*domain.Album, error) {
	var album domain.Album
	err := s.get(albumKey(albumID), &album)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrAlbumNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get album: %w", err)
	}

	album.Normalize()
	return &album, nil
}

// AlbumExists checks whether an album document is present.
func (s *Store) AlbumExists(ctx context.Context, albumID string) (bool, error) {
	return s.exists(albumKey(albumID))
}

// QueryAlbums evaluates a composed query against the full album collection
// and returns the matching albums in the query's sort order.
func (s *Store) QueryAlbums(ctx context.Context, query AlbumQuery) ([]*domain.Album, error) {
	var albums []*domain.Album

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(albumPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			var album domain.Album
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &album)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal album: %w", err)
			}

			album.Normalize()
			if query.Matches(&album) {
				albums = append(albums, &album)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}

	query.sortAlbums(albums)
	return albums, nil
}

// ListAlbums evaluates a composed query and returns one page of results.
func (s *Store) ListAlbums(ctx context.Context, query AlbumQuery, params PaginationParams) (PaginatedResult[*domain.Album], error) {
	albums, err := s.QueryAlbums(ctx, query)
	if err != nil {
		return PaginatedResult[*domain.Album]{}, err
	}

	return paginateSlice(albums, params, func(a *domain.Album) string { return a.ID })
}

// UpdateAlbumCover updates the cover art reference on an album.
func (s *Store) UpdateAlbumCover(ctx context.Context, albumID, coverArt string) (*domain.Album, error) {
	var album domain.Album

	key := albumKey(albumID)
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrAlbumNotFound
		}
		if err != nil {
			return err
		}

		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &album)
		})
		if err != nil {
			return fmt.Errorf("failed to unmarshal album: %w", err)
		}

		album.Normalize()
		album.CoverArt = coverArt
		album.Touch()

		data, err := json.Marshal(&album)
		if err != nil {
			return fmt.Errorf("failed to marshal album: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update album cover: %w", err)
	}

	if s.eventEmitter != nil {
		s.eventEmitter.Emit(sse.NewAlbumUpdatedEvent(&album))
	}
	s.reindexAlbum(&album)
	s.watches.notifyAlbum(albumID)

	return &album, nil
}

// CountAlbums returns the number of album documents. Used by the seeder to
// decide whether the catalog needs populating.
func (s *Store) CountAlbums(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(albumPrefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count albums: %w", err)
	}
	return count, nil
}
