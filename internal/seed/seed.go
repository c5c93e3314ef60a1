// Package seed populates the catalog with generated albums and reviews for
// local development and demos.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/spindleapp/spindle-server/internal/domain"
	"github.com/spindleapp/spindle-server/internal/sse"
	"github.com/spindleapp/spindle-server/internal/store"
)

// DefaultAlbumCount is how many albums a seed run creates when the caller
// does not say otherwise.
const DefaultAlbumCount = 5

const maxReviewsPerAlbum = 5

// Options configures a seed run.
type Options struct {
	Albums int  // Number of albums to generate (DefaultAlbumCount if <= 0)
	Force  bool // Seed even when the catalog already has albums
}

// Result reports what a seed run wrote.
type Result struct {
	Albums  int
	Reviews int
	Skipped bool // True when the catalog was already populated
}

// Seeder generates fake catalog data.
type Seeder struct {
	store   *store.Store
	emitter store.EventEmitter
	logger  *slog.Logger
}

// New creates a seeder. The emitter receives a seed-completed event after a
// successful run; pass a noop emitter to disable.
func New(st *store.Store, emitter store.EventEmitter, logger *slog.Logger) *Seeder {
	return &Seeder{
		store:   st,
		emitter: emitter,
		logger:  logger,
	}
}

// Run generates albums with random review batches and writes them through
// the store's bulk path. An already-populated catalog is left alone unless
// Force is set.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	count := opts.Albums
	if count <= 0 {
		count = DefaultAlbumCount
	}

	if !opts.Force {
		existing, err := s.store.CountAlbums(ctx)
		if err != nil {
			return nil, fmt.Errorf("count albums: %w", err)
		}
		if existing > 0 {
			s.logger.Info("catalog already populated, skipping seed", "albums", existing)
			return &Result{Skipped: true}, nil
		}
	}

	result := &Result{}
	for i := 0; i < count; i++ {
		album, reviews := s.generateAlbum()
		if err := s.store.SeedAlbumWithReviews(ctx, album, reviews); err != nil {
			return nil, fmt.Errorf("seed album %q: %w", album.Name, err)
		}
		result.Albums++
		result.Reviews += len(reviews)
	}

	s.emitter.Emit(sse.NewSeedCompleteEvent(result.Albums, result.Reviews))
	s.logger.Info("seed complete", "albums", result.Albums, "reviews", result.Reviews)
	return result, nil
}

func (s *Seeder) generateAlbum() (*domain.Album, []*domain.Review) {
	createdAt := randomPastTime()

	album := &domain.Album{
		Name:      albumNames[rand.IntN(len(albumNames))],
		Genre:     albumGenres[rand.IntN(len(albumGenres))],
		Year:      albumYears[rand.IntN(len(albumYears))],
		CoverArt:  fmt.Sprintf("https://covers.spindle.app/art_%d.png", rand.IntN(22)+1),
		CreatedAt: createdAt,
	}

	numReviews := rand.IntN(maxReviewsPerAlbum + 1)
	reviews := make([]*domain.Review, 0, numReviews)
	for j := 0; j < numReviews; j++ {
		sample := reviewSamples[rand.IntN(len(reviewSamples))]
		reviews = append(reviews, &domain.Review{
			Rating:    sample.rating,
			Text:      sample.text,
			Author:    fmt.Sprintf("User #%d", rand.IntN(9999)+1),
			CreatedAt: randomTimeAfter(createdAt),
		})
	}

	return album, reviews
}

// randomPastTime returns a moment up to two years back.
func randomPastTime() time.Time {
	offset := time.Duration(rand.Int64N(int64(2 * 365 * 24 * time.Hour)))
	return time.Now().Add(-offset)
}

// randomTimeAfter returns a moment between t and now.
func randomTimeAfter(t time.Time) time.Time {
	window := time.Since(t)
	if window <= 0 {
		return t
	}
	return t.Add(time.Duration(rand.Int64N(int64(window))))
}
