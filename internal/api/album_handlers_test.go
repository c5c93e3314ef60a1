package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) createAlbum(t *testing.T, name, genre string, year int) AlbumResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/albums", map[string]any{
		"name":  name,
		"genre": genre,
		"year":  year,
	})
	require.Equal(t, http.StatusOK, resp.Code, "create album failed: %s", resp.Body.String())

	return decodeBody[AlbumResponse](t, resp.Body.Bytes())
}

func TestCreateAlbum(t *testing.T) {
	ts := setupTestServer(t)

	album := ts.createAlbum(t, "In Rainbows", "Alternative", 2007)

	assert.NotEmpty(t, album.ID)
	assert.Equal(t, "In Rainbows", album.Name)
	assert.Equal(t, "Alternative", album.Genre)
	assert.Equal(t, 2007, album.Year)
	assert.Zero(t, album.NumRatings)
	assert.Zero(t, album.AvgRating)
	assert.Equal(t, "Underrated", album.RatingRange)
	assert.False(t, album.CreatedAt.IsZero())
}

func TestCreateAlbum_ValidationErrors(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"year too early", map[string]any{"name": "Old", "genre": "Jazz", "year": 1850}},
		{"year too late", map[string]any{"name": "Future", "genre": "Jazz", "year": 2200}},
		{"empty name", map[string]any{"name": "", "genre": "Jazz", "year": 2000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/v1/albums", tt.body)
			assert.GreaterOrEqual(t, resp.Code, http.StatusBadRequest)
			assert.Less(t, resp.Code, http.StatusInternalServerError)
		})
	}
}

func TestGetAlbum(t *testing.T) {
	ts := setupTestServer(t)

	created := ts.createAlbum(t, "Blue Train", "Jazz", 1958)

	resp := ts.api.Get("/api/v1/albums/" + created.ID)
	assert.Equal(t, http.StatusOK, resp.Code)

	album := decodeBody[AlbumResponse](t, resp.Body.Bytes())
	assert.Equal(t, created.ID, album.ID)
	assert.Equal(t, "Blue Train", album.Name)
}

func TestGetAlbum_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/albums/alb_missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	body := decodeBody[APIError](t, resp.Body.Bytes())
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestListAlbums_FilterAndSort(t *testing.T) {
	ts := setupTestServer(t)

	jazz := ts.createAlbum(t, "Kind of Blue", "Jazz", 1959)
	rock := ts.createAlbum(t, "Nevermind", "Rock", 1991)
	ts.createAlbum(t, "A Love Supreme", "Jazz", 1965)

	// Rate the rock album higher than the jazz ones.
	resp := ts.api.Post("/api/v1/albums/"+rock.ID+"/reviews", map[string]any{"rating": 5})
	require.Equal(t, http.StatusCreated, resp.Code)
	resp = ts.api.Post("/api/v1/albums/"+jazz.ID+"/reviews", map[string]any{"rating": 3})
	require.Equal(t, http.StatusCreated, resp.Code)

	t.Run("no filter sorts by rating desc", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/albums")
		assert.Equal(t, http.StatusOK, resp.Code)

		body := decodeBody[ListAlbumsResponse](t, resp.Body.Bytes())
		require.Len(t, body.Albums, 3)
		assert.Equal(t, rock.ID, body.Albums[0].ID)
		assert.Equal(t, jazz.ID, body.Albums[1].ID)
		assert.False(t, body.HasMore)
	})

	t.Run("genre filter", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/albums?genre=Jazz")
		assert.Equal(t, http.StatusOK, resp.Code)

		body := decodeBody[ListAlbumsResponse](t, resp.Body.Bytes())
		require.Len(t, body.Albums, 2)
		for _, a := range body.Albums {
			assert.Equal(t, "Jazz", a.Genre)
		}
	})

	t.Run("year filter", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/albums?year=1991")
		assert.Equal(t, http.StatusOK, resp.Code)

		body := decodeBody[ListAlbumsResponse](t, resp.Body.Bytes())
		require.Len(t, body.Albums, 1)
		assert.Equal(t, rock.ID, body.Albums[0].ID)
	})

	t.Run("unknown sort falls back to rating", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/albums?sort=Banana")
		assert.Equal(t, http.StatusOK, resp.Code)

		body := decodeBody[ListAlbumsResponse](t, resp.Body.Bytes())
		require.Len(t, body.Albums, 3)
		assert.Equal(t, rock.ID, body.Albums[0].ID)
	})

	t.Run("review sort puts most reviewed first", func(t *testing.T) {
		// Give jazz a second review so it leads on count.
		resp := ts.api.Post("/api/v1/albums/"+jazz.ID+"/reviews",
			map[string]any{"rating": 4, "author": "miles"})
		require.Equal(t, http.StatusCreated, resp.Code)

		resp = ts.api.Get("/api/v1/albums?sort=Review")
		assert.Equal(t, http.StatusOK, resp.Code)

		body := decodeBody[ListAlbumsResponse](t, resp.Body.Bytes())
		require.Len(t, body.Albums, 3)
		assert.Equal(t, jazz.ID, body.Albums[0].ID)
	})
}

func TestListAlbums_Pagination(t *testing.T) {
	ts := setupTestServer(t)

	for i := range 5 {
		ts.createAlbum(t, "Album "+string(rune('A'+i)), "Electronic", 2000+i)
	}

	resp := ts.api.Get("/api/v1/albums?limit=2")
	assert.Equal(t, http.StatusOK, resp.Code)

	page1 := decodeBody[ListAlbumsResponse](t, resp.Body.Bytes())
	require.Len(t, page1.Albums, 2)
	assert.True(t, page1.HasMore)
	require.NotEmpty(t, page1.NextCursor)

	resp = ts.api.Get("/api/v1/albums?limit=2&cursor=" + page1.NextCursor)
	assert.Equal(t, http.StatusOK, resp.Code)

	page2 := decodeBody[ListAlbumsResponse](t, resp.Body.Bytes())
	require.Len(t, page2.Albums, 2)
	assert.NotEqual(t, page1.Albums[0].ID, page2.Albums[0].ID)
}

func TestUpdateAlbumCover(t *testing.T) {
	ts := setupTestServer(t)

	created := ts.createAlbum(t, "Discovery", "Electronic", 2001)

	resp := ts.api.Put("/api/v1/albums/"+created.ID+"/cover", map[string]any{
		"cover_art": "https://covers.example.com/discovery.jpg",
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	album := decodeBody[AlbumResponse](t, resp.Body.Bytes())
	assert.Equal(t, "https://covers.example.com/discovery.jpg", album.CoverArt)
}

func TestUpdateAlbumCover_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/albums/alb_missing/cover", map[string]any{
		"cover_art": "https://covers.example.com/x.jpg",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
