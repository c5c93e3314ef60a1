package store

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spindleapp/spindle-server/internal/domain"
)

// setupTestStore creates a store backed by a temp directory. The store is
// closed automatically when the test finishes.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(t.TempDir(), logger, NewNoopEmitter())
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

// testAlbum builds a minimal album for tests.
func testAlbum(id, name, genre string, year int) *domain.Album {
	return &domain.Album{
		ID:    id,
		Name:  name,
		Genre: genre,
		Year:  year,
	}
}
