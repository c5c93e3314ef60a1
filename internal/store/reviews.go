package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/spindleapp/spindle-server/internal/domain"
	"github.com/spindleapp/spindle-server/internal/id"
	"github.com/spindleapp/spindle-server/internal/sse"
)

// Review-specific errors.
var (
	ErrReviewMissingRating    = errors.New("review is missing a rating")
	ErrReviewRetriesExhausted = errors.New("review transaction conflicts exhausted retries")
)

// Retry policy for the review write transaction. Badger detects read-write
// conflicts at commit time; on conflict the whole read-modify-write cycle is
// re-run against fresh state, with exponential backoff between attempts.
const (
	maxReviewAttempts  = 5
	reviewBackoffStart = 10 * time.Millisecond
)

// AddReview appends a review to an album and recomputes the album's rating
// aggregates in the same transaction. Either both documents commit or
// neither does. Concurrent submissions against the same album serialize via
// conflict detection and retry, so every accepted review is reflected in the
// aggregates exactly once.
//
// The review's ID is assigned if empty; its CreatedAt is always assigned at
// write time. Returns the stored review and the updated album.
func (s *Store) AddReview(ctx context.Context, albumID string, review *domain.Review) (*domain.Review, *domain.Album, error) {
	if albumID == "" {
		return nil, nil, fmt.Errorf("album ID is required")
	}
	if review == nil || review.Rating == 0 {
		return nil, nil, ErrReviewMissingRating
	}

	if review.ID == "" {
		reviewID, err := id.Generate("rev")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate review ID: %w", err)
		}
		review.ID = reviewID
	}

	var (
		stored  domain.Review
		album   domain.Album
		backoff = reviewBackoffStart
	)

	for attempt := 1; ; attempt++ {
		err := s.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(albumKey(albumID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrAlbumNotFound
			}
			if err != nil {
				return err
			}

			album = domain.Album{}
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &album)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal album: %w", err)
			}

			// Aggregates recompute from the state read in this same
			// transaction; a stale read surfaces as a commit conflict.
			album.Normalize()
			album.ApplyRating(review.Rating)
			album.Touch()

			albumData, err := json.Marshal(&album)
			if err != nil {
				return fmt.Errorf("failed to marshal album: %w", err)
			}
			if err := txn.Set(albumKey(albumID), albumData); err != nil {
				return err
			}

			stored = *review
			stored.AlbumID = albumID
			stored.CreatedAt = time.Now()

			reviewData, err := json.Marshal(&stored)
			if err != nil {
				return fmt.Errorf("failed to marshal review: %w", err)
			}
			return txn.Set(reviewKey(albumID, stored.CreatedAt, stored.ID), reviewData)
		})

		if err == nil {
			break
		}
		if errors.Is(err, ErrAlbumNotFound) {
			return nil, nil, ErrAlbumNotFound
		}
		if !errors.Is(err, badger.ErrConflict) {
			return nil, nil, fmt.Errorf("failed to add review: %w", err)
		}
		if attempt >= maxReviewAttempts {
			if s.logger != nil {
				s.logger.Error("review transaction conflicts exhausted retries",
					"album_id", albumID, "attempts", attempt)
			}
			return nil, nil, ErrReviewRetriesExhausted
		}

		if s.logger != nil {
			s.logger.Debug("review transaction conflict, retrying",
				"album_id", albumID, "attempt", attempt, "backoff", backoff)
		}
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	if s.eventEmitter != nil {
		s.eventEmitter.Emit(sse.NewReviewCreatedEvent(&stored))
		s.eventEmitter.Emit(sse.NewAlbumUpdatedEvent(&album))
	}
	s.reindexAlbum(&album)
	s.watches.notifyAlbum(albumID)

	return &stored, &album, nil
}

// GetReviews returns all reviews for an album, newest first. Returns
// ErrAlbumNotFound when the album itself does not exist, so callers can
// distinguish "no reviews yet" from "no such album".
func (s *Store) GetReviews(ctx context.Context, albumID string) ([]*domain.Review, error) {
	exists, err := s.exists(albumKey(albumID))
	if err != nil {
		return nil, fmt.Errorf("failed to check album existence: %w", err)
	}
	if !exists {
		return nil, ErrAlbumNotFound
	}

	reviews := []*domain.Review{}
	prefix := reviewScanPrefix(albumID)

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration needs a seek key past every key in the prefix
		// range; 0xff sorts after any byte the timestamp segment can hold.
		seekKey := append(append([]byte{}, prefix...), 0xff)

		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			var review domain.Review
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &review)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal review: %w", err)
			}
			reviews = append(reviews, &review)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

// CountReviews returns the number of stored reviews for an album.
func (s *Store) CountReviews(ctx context.Context, albumID string) (int, error) {
	count := 0
	prefix := reviewScanPrefix(albumID)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}
