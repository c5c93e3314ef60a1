package store

import (
	"slices"
	"strings"

	"github.com/spindleapp/spindle-server/internal/domain"
)

// SortMode selects the ordering of a composed album query.
type SortMode string

const (
	// SortByRating orders albums by average rating, highest first.
	SortByRating SortMode = "Rating"
	// SortByReviews orders albums by review count, highest first.
	SortByReviews SortMode = "Review"
)

// AlbumFilter is the caller-supplied set of optional predicates and the
// requested ordering for an album listing. Zero values mean "no constraint".
type AlbumFilter struct {
	Genre       string
	Year        int
	RatingRange string
	Sort        SortMode
}

// AlbumQuery is an executable read specification produced by
// ComposeAlbumQuery. It is a pure value: composing a query never touches the
// database, so the same query can be evaluated repeatedly (listings re-run it,
// watches re-run it on every change notification).
type AlbumQuery struct {
	filter AlbumFilter
	sort   SortMode
}

// ComposeAlbumQuery builds an AlbumQuery from a filter. All supplied
// predicates combine conjunctively. An unrecognized or empty sort mode falls
// back to rating order, so composition never fails.
func ComposeAlbumQuery(filter AlbumFilter) AlbumQuery {
	q := AlbumQuery{filter: filter, sort: SortByRating}
	if filter.Sort == SortByReviews {
		q.sort = SortByReviews
	}
	return q
}

// Sort returns the effective sort mode after fallback.
func (q AlbumQuery) Sort() SortMode { return q.sort }

// Matches reports whether an album satisfies every predicate in the query.
func (q AlbumQuery) Matches(album *domain.Album) bool {
	if q.filter.Genre != "" && album.Genre != q.filter.Genre {
		return false
	}
	if q.filter.Year != 0 && album.Year != q.filter.Year {
		return false
	}
	if q.filter.RatingRange != "" && string(album.RatingRange) != q.filter.RatingRange {
		return false
	}
	return true
}

// sortAlbums orders a result set in place according to the query's sort mode.
// Ties break on album ID so identical stored data always yields identical
// ordering regardless of scan order.
func (q AlbumQuery) sortAlbums(albums []*domain.Album) {
	slices.SortFunc(albums, func(a, b *domain.Album) int {
		switch q.sort {
		case SortByReviews:
			if a.NumRatings != b.NumRatings {
				if a.NumRatings > b.NumRatings {
					return -1
				}
				return 1
			}
		default:
			if a.AvgRating != b.AvgRating {
				if a.AvgRating > b.AvgRating {
					return -1
				}
				return 1
			}
		}
		return strings.Compare(a.ID, b.ID)
	})
}
