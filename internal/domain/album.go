// Package domain contains the core types for the Spindle catalog: albums,
// reviews, and the aggregate rating state that ties them together.
package domain

import "time"

// RatingRange is a display bucket derived from an album's average rating.
type RatingRange string

// Rating buckets, highest first. Boundary values map to the higher bucket.
const (
	RangeHighlyRated RatingRange = "Highly Rated" // avg >= 4.5
	RangePopular     RatingRange = "Popular"      // avg >= 3.5
	RangeEmerging    RatingRange = "Emerging"     // avg >= 2.5
	RangeUnderrated  RatingRange = "Underrated"   // everything else
)

// BucketFor returns the rating bucket implied by an average rating.
func BucketFor(avg float64) RatingRange {
	switch {
	case avg >= 4.5:
		return RangeHighlyRated
	case avg >= 3.5:
		return RangePopular
	case avg >= 2.5:
		return RangeEmerging
	default:
		return RangeUnderrated
	}
}

// Album is a catalog entry with descriptive fields and aggregate rating state.
//
// The aggregate fields (NumRatings, SumRating, AvgRating, RatingRange) are
// derived from the album's reviews and must only be mutated through
// ApplyRating inside the store's review transaction. CoverArt is the one
// descriptive field that changes after creation; everything else is set at
// ingestion time.
type Album struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Genre     string    `json:"genre"`
	Year      int       `json:"year"`
	CoverArt  string    `json:"cover_art,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NumRatings  int         `json:"num_ratings"`
	SumRating   float64     `json:"sum_rating"`
	AvgRating   float64     `json:"avg_rating"`
	RatingRange RatingRange `json:"rating_range"`
}

// ApplyRating folds one new rating into the album's aggregate fields.
// The bucket is recomputed in the same step so it never lags the average.
func (a *Album) ApplyRating(rating float64) {
	a.NumRatings++
	a.SumRating += rating
	a.AvgRating = a.SumRating / float64(a.NumRatings)
	a.RatingRange = BucketFor(a.AvgRating)
}

// Normalize recomputes the derived aggregate fields from NumRatings and
// SumRating. Used when loading documents whose aggregate fields may be
// missing (treated as zero).
func (a *Album) Normalize() {
	if a.NumRatings <= 0 {
		a.NumRatings = 0
		a.SumRating = 0
		a.AvgRating = 0
	} else {
		a.AvgRating = a.SumRating / float64(a.NumRatings)
	}
	a.RatingRange = BucketFor(a.AvgRating)
}

// Touch updates the UpdatedAt timestamp.
func (a *Album) Touch() {
	a.UpdatedAt = time.Now()
}
