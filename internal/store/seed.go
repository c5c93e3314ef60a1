package store

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/spindleapp/spindle-server/internal/domain"
	"github.com/spindleapp/spindle-server/internal/id"
	"github.com/spindleapp/spindle-server/internal/sse"
)

// SeedAlbumWithReviews writes an album together with a batch of reviews in a
// single transaction, computing the aggregates directly from the batch. This
// bypasses the per-review transaction in AddReview and exists only for bulk
// catalog population; user-facing writes must go through AddReview so
// aggregates stay consistent under concurrency.
func (s *Store) SeedAlbumWithReviews(ctx context.Context, album *domain.Album, reviews []*domain.Review) error {
	if album.ID == "" {
		albumID, err := id.Generate("alb")
		if err != nil {
			return fmt.Errorf("failed to generate album ID: %w", err)
		}
		album.ID = albumID
	}

	now := time.Now()
	album.CreatedAt = now
	album.UpdatedAt = now

	album.NumRatings = 0
	album.SumRating = 0
	album.AvgRating = 0
	for _, review := range reviews {
		album.ApplyRating(review.Rating)
	}
	album.Normalize()

	err := s.db.Update(func(txn *badger.Txn) error {
		albumData, err := json.Marshal(album)
		if err != nil {
			return fmt.Errorf("failed to marshal album: %w", err)
		}
		if err := txn.Set(albumKey(album.ID), albumData); err != nil {
			return err
		}

		for i, review := range reviews {
			if review.ID == "" {
				reviewID, err := id.Generate("rev")
				if err != nil {
					return fmt.Errorf("failed to generate review ID: %w", err)
				}
				review.ID = reviewID
			}
			review.AlbumID = album.ID
			if review.CreatedAt.IsZero() {
				// Stagger timestamps so key order stays unambiguous.
				review.CreatedAt = now.Add(-time.Duration(len(reviews)-i) * time.Second)
			}

			reviewData, err := json.Marshal(review)
			if err != nil {
				return fmt.Errorf("failed to marshal review: %w", err)
			}
			if err := txn.Set(reviewKey(album.ID, review.CreatedAt, review.ID), reviewData); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed album %s: %w", album.ID, err)
	}

	if s.eventEmitter != nil {
		s.eventEmitter.Emit(sse.NewAlbumCreatedEvent(album))
	}
	s.reindexAlbum(album)
	s.watches.notifyAlbum(album.ID)

	return nil
}
