package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spindleapp/spindle-server/internal/domain"
)

func TestComposeAlbumQuery_SortFallback(t *testing.T) {
	assert.Equal(t, SortByRating, ComposeAlbumQuery(AlbumFilter{}).Sort())
	assert.Equal(t, SortByRating, ComposeAlbumQuery(AlbumFilter{Sort: "Banana"}).Sort())
	assert.Equal(t, SortByReviews, ComposeAlbumQuery(AlbumFilter{Sort: SortByReviews}).Sort())
	assert.Equal(t, SortByRating, ComposeAlbumQuery(AlbumFilter{Sort: SortByRating}).Sort())
}

func TestAlbumQuery_Matches(t *testing.T) {
	album := &domain.Album{
		ID:          "alb-1",
		Genre:       "Rock",
		Year:        1991,
		RatingRange: domain.RangePopular,
	}

	tests := []struct {
		name   string
		filter AlbumFilter
		want   bool
	}{
		{"empty filter", AlbumFilter{}, true},
		{"matching genre", AlbumFilter{Genre: "Rock"}, true},
		{"wrong genre", AlbumFilter{Genre: "Jazz"}, false},
		{"matching year", AlbumFilter{Year: 1991}, true},
		{"wrong year", AlbumFilter{Year: 1990}, false},
		{"matching rating range", AlbumFilter{RatingRange: "Popular"}, true},
		{"wrong rating range", AlbumFilter{RatingRange: "Highly Rated"}, false},
		{"all predicates match", AlbumFilter{Genre: "Rock", Year: 1991, RatingRange: "Popular"}, true},
		{"one predicate fails", AlbumFilter{Genre: "Rock", Year: 1990}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ComposeAlbumQuery(tt.filter)
			assert.Equal(t, tt.want, q.Matches(album))
		})
	}
}

func TestAlbumQuery_SortDeterminism(t *testing.T) {
	build := func() []*domain.Album {
		return []*domain.Album{
			{ID: "alb-b", AvgRating: 4.0, NumRatings: 2},
			{ID: "alb-a", AvgRating: 4.0, NumRatings: 2},
			{ID: "alb-c", AvgRating: 4.5, NumRatings: 1},
		}
	}

	t.Run("rating sort breaks ties by ID", func(t *testing.T) {
		q := ComposeAlbumQuery(AlbumFilter{})
		albums := build()
		q.sortAlbums(albums)
		assert.Equal(t, []string{"alb-c", "alb-a", "alb-b"}, ids(albums))

		// Same input in a different order yields the same output.
		shuffled := []*domain.Album{albums[2], albums[0], albums[1]}
		q.sortAlbums(shuffled)
		assert.Equal(t, []string{"alb-c", "alb-a", "alb-b"}, ids(shuffled))
	})

	t.Run("review count sort", func(t *testing.T) {
		q := ComposeAlbumQuery(AlbumFilter{Sort: SortByReviews})
		albums := build()
		q.sortAlbums(albums)
		assert.Equal(t, []string{"alb-a", "alb-b", "alb-c"}, ids(albums))
	})
}

func ids(albums []*domain.Album) []string {
	out := make([]string, len(albums))
	for i, a := range albums {
		out[i] = a.ID
	}
	return out
}
