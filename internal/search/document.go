// Package search provides full-text album search using Bleve, with keyword
// filters on genre and rating bucket and numeric range queries on year and
// average rating.
package search

import (
	"github.com/spindleapp/spindle-server/internal/domain"
)

// AlbumDocument is the indexed representation of an album. It carries the
// aggregate rating state so results render without a store round trip, at
// the cost of reindexing the album whenever a review lands.
type AlbumDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Keyword fields for exact filtering.
	Genre       string `json:"genre,omitempty"`
	RatingRange string `json:"rating_range,omitempty"`

	// Numeric fields for range queries and sorting.
	Year       int     `json:"year,omitempty"`
	AvgRating  float64 `json:"avg_rating"`
	NumRatings int     `json:"num_ratings"`

	// Timestamps for sorting, Unix millis.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *AlbumDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":          d.ID,
		"name":        d.Name,
		"avg_rating":  d.AvgRating,
		"num_ratings": d.NumRatings,
		"created_at":  d.CreatedAt,
		"updated_at":  d.UpdatedAt,
	}

	if d.Genre != "" {
		m["genre"] = d.Genre
	}
	if d.RatingRange != "" {
		m["rating_range"] = d.RatingRange
	}
	if d.Year > 0 {
		m["year"] = d.Year
	}

	return m
}

// AlbumToDocument converts a domain Album to its indexed form.
func AlbumToDocument(album *domain.Album) *AlbumDocument {
	return &AlbumDocument{
		ID:          album.ID,
		Name:        album.Name,
		Genre:       album.Genre,
		RatingRange: string(album.RatingRange),
		Year:        album.Year,
		AvgRating:   album.AvgRating,
		NumRatings:  album.NumRatings,
		CreatedAt:   album.CreatedAt.UnixMilli(),
		UpdatedAt:   album.UpdatedAt.UnixMilli(),
	}
}
