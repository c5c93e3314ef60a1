package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spindleapp/spindle-server/internal/domain"
)

func TestAddReview(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))

	stored, album, err := s.AddReview(ctx, "alb-1", &domain.Review{
		Rating: 4,
		Text:   "Great opener.",
		Author: "usr-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "alb-1", stored.AlbumID)
	assert.False(t, stored.CreatedAt.IsZero())

	assert.Equal(t, 1, album.NumRatings)
	assert.InDelta(t, 4.0, album.AvgRating, 1e-9)
	assert.Equal(t, domain.RangePopular, album.RatingRange)

	// Aggregates persisted, not just returned.
	got, err := s.GetAlbum(ctx, "alb-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumRatings)
	assert.InDelta(t, 4.0, got.SumRating, 1e-9)
}

func TestAddReview_AlbumNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, _, err := s.AddReview(t.Context(), "alb-missing", &domain.Review{Rating: 3})
	assert.ErrorIs(t, err, ErrAlbumNotFound)
}

func TestAddReview_MissingRating(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))

	_, _, err := s.AddReview(ctx, "alb-1", &domain.Review{Text: "no rating"})
	assert.ErrorIs(t, err, ErrReviewMissingRating)

	_, _, err = s.AddReview(ctx, "alb-1", nil)
	assert.ErrorIs(t, err, ErrReviewMissingRating)
}

// Every concurrently accepted review must be reflected in the aggregates
// exactly once, regardless of interleaving.
func TestAddReview_ConcurrentAggregates(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))

	const workers = 10
	ratings := []float64{1, 2, 3, 4, 5, 5, 4, 3, 2, 1}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, errs[i] = s.AddReview(ctx, "alb-1", &domain.Review{Rating: ratings[i]})
		}()
	}
	wg.Wait()

	accepted := 0
	var sum float64
	for i, err := range errs {
		if err == nil {
			accepted++
			sum += ratings[i]
		} else {
			// Only conflict exhaustion is an acceptable failure here.
			require.ErrorIs(t, err, ErrReviewRetriesExhausted)
		}
	}
	require.NotZero(t, accepted)

	album, err := s.GetAlbum(ctx, "alb-1")
	require.NoError(t, err)
	assert.Equal(t, accepted, album.NumRatings)
	assert.InDelta(t, sum, album.SumRating, 1e-9)
	assert.InDelta(t, sum/float64(accepted), album.AvgRating, 1e-9)

	reviews, err := s.GetReviews(ctx, "alb-1")
	require.NoError(t, err)
	assert.Len(t, reviews, accepted)
}

func TestGetReviews_NewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))

	for _, text := range []string{"first", "second", "third"} {
		_, _, err := s.AddReview(ctx, "alb-1", &domain.Review{Rating: 4, Text: text})
		require.NoError(t, err)
	}

	reviews, err := s.GetReviews(ctx, "alb-1")
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "third", reviews[0].Text)
	assert.Equal(t, "second", reviews[1].Text)
	assert.Equal(t, "first", reviews[2].Text)
}

func TestGetReviews_AlbumNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetReviews(t.Context(), "alb-missing")
	assert.ErrorIs(t, err, ErrAlbumNotFound)
}

func TestGetReviews_EmptyAlbum(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))

	reviews, err := s.GetReviews(ctx, "alb-1")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestCountReviews(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))

	for range 3 {
		_, _, err := s.AddReview(ctx, "alb-1", &domain.Review{Rating: 5})
		require.NoError(t, err)
	}

	count, err := s.CountReviews(ctx, "alb-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
