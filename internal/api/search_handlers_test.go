package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spindleapp/spindle-server/internal/search"
)

// reindex forces a synchronous rebuild so tests do not race the async
// indexing that follows album writes.
func (ts *testServer) reindex(t *testing.T) {
	t.Helper()
	_, err := ts.search.ReindexAll(context.Background())
	require.NoError(t, err)
}

func TestSearchAlbums_ByName(t *testing.T) {
	ts := setupTestServer(t)

	ts.createAlbum(t, "Nevermind", "Rock", 1991)
	ts.createAlbum(t, "In Utero", "Rock", 1993)
	ts.createAlbum(t, "Kind of Blue", "Jazz", 1959)
	ts.reindex(t)

	resp := ts.api.Get("/api/v1/search?q=nevermind")
	assert.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[search.SearchResult](t, resp.Body.Bytes())
	require.Equal(t, uint64(1), body.Total)
	assert.Equal(t, "Nevermind", body.Hits[0].Name)
}

func TestSearchAlbums_EmptyQueryMatchesAll(t *testing.T) {
	ts := setupTestServer(t)

	ts.createAlbum(t, "Nevermind", "Rock", 1991)
	ts.createAlbum(t, "Kind of Blue", "Jazz", 1959)
	ts.reindex(t)

	resp := ts.api.Get("/api/v1/search")
	assert.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[search.SearchResult](t, resp.Body.Bytes())
	assert.Equal(t, uint64(2), body.Total)
}

func TestSearchAlbums_GenreFilter(t *testing.T) {
	ts := setupTestServer(t)

	ts.createAlbum(t, "Nevermind", "Rock", 1991)
	ts.createAlbum(t, "Kind of Blue", "Jazz", 1959)
	ts.createAlbum(t, "A Love Supreme", "Jazz", 1965)
	ts.reindex(t)

	resp := ts.api.Get("/api/v1/search?genre=Jazz")
	assert.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[search.SearchResult](t, resp.Body.Bytes())
	require.Equal(t, uint64(2), body.Total)
	for _, hit := range body.Hits {
		assert.Equal(t, "Jazz", hit.Genre)
	}
}

func TestSearchAlbums_YearRange(t *testing.T) {
	ts := setupTestServer(t)

	ts.createAlbum(t, "Kind of Blue", "Jazz", 1959)
	ts.createAlbum(t, "Nevermind", "Rock", 1991)
	ts.createAlbum(t, "Discovery", "Electronic", 2001)
	ts.reindex(t)

	resp := ts.api.Get("/api/v1/search?min_year=1990&max_year=2000")
	assert.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[search.SearchResult](t, resp.Body.Bytes())
	require.Equal(t, uint64(1), body.Total)
	assert.Equal(t, "Nevermind", body.Hits[0].Name)
}

func TestSearchAlbums_Facets(t *testing.T) {
	ts := setupTestServer(t)

	ts.createAlbum(t, "Nevermind", "Rock", 1991)
	ts.createAlbum(t, "In Utero", "Rock", 1993)
	ts.createAlbum(t, "Kind of Blue", "Jazz", 1959)
	ts.reindex(t)

	resp := ts.api.Get("/api/v1/search")
	assert.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[search.SearchResult](t, resp.Body.Bytes())
	require.NotEmpty(t, body.Facets.Genres)

	counts := make(map[string]int)
	for _, fc := range body.Facets.Genres {
		counts[fc.Value] = fc.Count
	}
	assert.Equal(t, 2, counts["Rock"])
	assert.Equal(t, 1, counts["Jazz"])
}

func TestSearchAlbums_InvalidSortRejected(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/search?sort=bogus")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
