package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spindleapp/spindle-server/internal/domain"
)

func TestCreateAndGetAlbum(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	album := testAlbum("alb-1", "Blue Train", "Jazz", 1958)
	require.NoError(t, s.CreateAlbum(ctx, album))

	assert.False(t, album.CreatedAt.IsZero())
	assert.Equal(t, domain.RangeUnderrated, album.RatingRange)

	got, err := s.GetAlbum(ctx, "alb-1")
	require.NoError(t, err)
	assert.Equal(t, "Blue Train", got.Name)
	assert.Equal(t, "Jazz", got.Genre)
	assert.Equal(t, 1958, got.Year)
	assert.Zero(t, got.NumRatings)
}

func TestCreateAlbum_Duplicate(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))
	err := s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958))
	assert.ErrorIs(t, err, ErrAlbumExists)
}

func TestCreateAlbum_MissingID(t *testing.T) {
	s := setupTestStore(t)

	err := s.CreateAlbum(t.Context(), testAlbum("", "No ID", "Jazz", 2000))
	assert.Error(t, err)
}

func TestGetAlbum_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetAlbum(t.Context(), "alb-missing")
	assert.ErrorIs(t, err, ErrAlbumNotFound)
}

func TestAlbumExists(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	exists, err := s.AlbumExists(ctx, "alb-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))

	exists, err = s.AlbumExists(ctx, "alb-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUpdateAlbumCover(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))

	updated, err := s.UpdateAlbumCover(ctx, "alb-1", "/covers/alb-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/covers/alb-1.jpg", updated.CoverArt)

	got, err := s.GetAlbum(ctx, "alb-1")
	require.NoError(t, err)
	assert.Equal(t, "/covers/alb-1.jpg", got.CoverArt)
}

func TestUpdateAlbumCover_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.UpdateAlbumCover(t.Context(), "alb-missing", "/covers/x.jpg")
	assert.ErrorIs(t, err, ErrAlbumNotFound)
}

func TestQueryAlbums_FilterAndSort(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	albums := []*domain.Album{
		testAlbum("alb-1", "Kind of Blue", "Jazz", 1959),
		testAlbum("alb-2", "Nevermind", "Rock", 1991),
		testAlbum("alb-3", "OK Computer", "Rock", 1997),
	}
	for _, a := range albums {
		require.NoError(t, s.CreateAlbum(ctx, a))
	}

	// Give alb-3 a higher average, alb-2 more reviews.
	_, _, err := s.AddReview(ctx, "alb-3", &domain.Review{Rating: 5})
	require.NoError(t, err)
	for _, rating := range []float64{3, 4} {
		_, _, err := s.AddReview(ctx, "alb-2", &domain.Review{Rating: rating})
		require.NoError(t, err)
	}

	t.Run("genre filter with rating sort", func(t *testing.T) {
		got, err := s.QueryAlbums(ctx, ComposeAlbumQuery(AlbumFilter{Genre: "Rock"}))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "alb-3", got[0].ID)
		assert.Equal(t, "alb-2", got[1].ID)
	})

	t.Run("genre filter with review count sort", func(t *testing.T) {
		got, err := s.QueryAlbums(ctx, ComposeAlbumQuery(AlbumFilter{Genre: "Rock", Sort: SortByReviews}))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "alb-2", got[0].ID)
		assert.Equal(t, "alb-3", got[1].ID)
	})

	t.Run("year filter", func(t *testing.T) {
		got, err := s.QueryAlbums(ctx, ComposeAlbumQuery(AlbumFilter{Year: 1959}))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "alb-1", got[0].ID)
	})

	t.Run("empty filter matches everything", func(t *testing.T) {
		got, err := s.QueryAlbums(ctx, ComposeAlbumQuery(AlbumFilter{}))
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("no matches", func(t *testing.T) {
		got, err := s.QueryAlbums(ctx, ComposeAlbumQuery(AlbumFilter{Genre: "Classical"}))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCountAlbums(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	count, err := s.CountAlbums(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "A", "Jazz", 2000)))
	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-2", "B", "Jazz", 2001)))

	count, err = s.CountAlbums(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
