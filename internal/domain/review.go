package domain

import "time"

// Review is a single user-submitted rating with optional text, attached to
// exactly one album. Reviews are immutable: once written they are never
// edited or deleted, so the parent album's aggregates only ever move by
// whole-review increments.
type Review struct {
	ID        string    `json:"id"`
	AlbumID   string    `json:"album_id"`
	Rating    float64   `json:"rating"`
	Text      string    `json:"text,omitempty"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"` // assigned at write time, never client-supplied
}

// Rating bounds accepted for new reviews.
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// ValidRating reports whether a rating is inside the accepted range.
func ValidRating(rating float64) bool {
	return rating >= MinRating && rating <= MaxRating
}
