package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spindleapp/spindle-server/internal/domain"
)

const watchTimeout = 2 * time.Second

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(watchTimeout):
		t.Fatal("timed out waiting for watch delivery")
		panic("unreachable")
	}
}

func TestWatchAlbums_InitialAndUpdateSnapshots(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Kind of Blue", "Jazz", 1959)))

	snapshots := make(chan []*domain.Album, 16)
	cancel, err := s.WatchAlbums(ComposeAlbumQuery(AlbumFilter{Genre: "Jazz"}), func(albums []*domain.Album) {
		snapshots <- albums
	})
	require.NoError(t, err)
	defer cancel()

	initial := waitFor(t, snapshots)
	require.Len(t, initial, 1)
	assert.Equal(t, "alb-1", initial[0].ID)

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-2", "Blue Train", "Jazz", 1958)))

	// Deliveries may coalesce; wait until the two-album snapshot arrives.
	for {
		snap := waitFor(t, snapshots)
		if len(snap) == 2 {
			break
		}
	}
}

func TestWatchAlbums_FilteredOut(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	snapshots := make(chan []*domain.Album, 16)
	cancel, err := s.WatchAlbums(ComposeAlbumQuery(AlbumFilter{Genre: "Jazz"}), func(albums []*domain.Album) {
		snapshots <- albums
	})
	require.NoError(t, err)
	defer cancel()

	assert.Empty(t, waitFor(t, snapshots))

	// A non-matching album still triggers a delivery, but the snapshot
	// remains empty.
	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Nevermind", "Rock", 1991)))
	assert.Empty(t, waitFor(t, snapshots))
}

func TestWatchAlbums_NilCallback(t *testing.T) {
	s := setupTestStore(t)

	cancel, err := s.WatchAlbums(ComposeAlbumQuery(AlbumFilter{}), nil)
	assert.Error(t, err)
	assert.Nil(t, cancel)
}

func TestWatchAlbum_NotFoundSignal(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	type delivery struct {
		album *domain.Album
		found bool
	}
	deliveries := make(chan delivery, 16)

	cancel, err := s.WatchAlbum("alb-1", func(album *domain.Album, found bool) {
		deliveries <- delivery{album, found}
	})
	require.NoError(t, err)
	defer cancel()

	// Watching a missing document yields an explicit not-found state.
	first := waitFor(t, deliveries)
	assert.False(t, first.found)
	assert.Nil(t, first.album)

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))

	second := waitFor(t, deliveries)
	assert.True(t, second.found)
	require.NotNil(t, second.album)
	assert.Equal(t, "Blue Train", second.album.Name)
}

func TestWatchAlbum_SeesAggregateUpdates(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))

	albums := make(chan *domain.Album, 16)
	cancel, err := s.WatchAlbum("alb-1", func(album *domain.Album, found bool) {
		if found {
			albums <- album
		}
	})
	require.NoError(t, err)
	defer cancel()

	initial := waitFor(t, albums)
	assert.Zero(t, initial.NumRatings)

	_, _, err = s.AddReview(ctx, "alb-1", &domain.Review{Rating: 5})
	require.NoError(t, err)

	for {
		snap := waitFor(t, albums)
		if snap.NumRatings == 1 {
			assert.InDelta(t, 5.0, snap.AvgRating, 1e-9)
			break
		}
	}
}

func TestWatchAlbum_OtherAlbumChangesDoNotWake(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))
	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-2", "Nevermind", "Rock", 1991)))

	deliveries := make(chan struct{}, 16)
	cancel, err := s.WatchAlbum("alb-1", func(*domain.Album, bool) {
		deliveries <- struct{}{}
	})
	require.NoError(t, err)
	defer cancel()

	waitFor(t, deliveries) // initial snapshot

	_, _, err = s.AddReview(ctx, "alb-2", &domain.Review{Rating: 3})
	require.NoError(t, err)

	select {
	case <-deliveries:
		t.Fatal("watch woke for an unrelated album")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchCancel(t *testing.T) {
	s := setupTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.CreateAlbum(ctx, testAlbum("alb-1", "Blue Train", "Jazz", 1958)))

	deliveries := make(chan struct{}, 16)
	cancel, err := s.WatchAlbum("alb-1", func(*domain.Album, bool) {
		deliveries <- struct{}{}
	})
	require.NoError(t, err)

	waitFor(t, deliveries)

	cancel()
	cancel() // idempotent

	// No callback may run once cancel has returned.
	_, _, err = s.AddReview(ctx, "alb-1", &domain.Review{Rating: 4})
	require.NoError(t, err)

	select {
	case <-deliveries:
		t.Fatal("callback ran after cancel returned")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchCancel_ImmediateAfterRegister(t *testing.T) {
	s := setupTestStore(t)

	cancel, err := s.WatchAlbums(ComposeAlbumQuery(AlbumFilter{}), func([]*domain.Album) {})
	require.NoError(t, err)

	// Cancelling right away must not panic or deadlock, even if the initial
	// delivery is still in flight.
	cancel()
}
