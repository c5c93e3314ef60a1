package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/spindleapp/spindle-server/internal/domain"
	"github.com/spindleapp/spindle-server/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/albums/{id}/reviews",
		Summary:     "List reviews",
		Description: "Returns all reviews for an album, newest first",
		Tags:        []string{"Reviews"},
	}, s.handleListReviews)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addReview",
		Method:        http.MethodPost,
		Path:          "/api/v1/albums/{id}/reviews",
		Summary:       "Add review",
		Description:   "Submits a review; the album's rating aggregates update atomically with the append",
		Tags:          []string{"Reviews"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddReview)
}

// === DTOs ===

// ReviewResponse contains review data in API responses.
type ReviewResponse struct {
	ID        string    `json:"id" doc:"Review ID"`
	AlbumID   string    `json:"album_id" doc:"Reviewed album ID"`
	Rating    float64   `json:"rating" doc:"Rating between 1 and 5"`
	Text      string    `json:"text,omitempty" doc:"Review text"`
	Author    string    `json:"author,omitempty" doc:"Reviewer identity"`
	CreatedAt time.Time `json:"created_at" doc:"Submission time"`
}

func toReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		AlbumID:   review.AlbumID,
		Rating:    review.Rating,
		Text:      review.Text,
		Author:    review.Author,
		CreatedAt: review.CreatedAt,
	}
}

// ListReviewsInput contains parameters for listing an album's reviews.
type ListReviewsInput struct {
	ID string `path:"id" doc:"Album ID"`
}

// ListReviewsResponse contains an album's reviews.
type ListReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews" doc:"Reviews, newest first"`
	Count   int              `json:"count" doc:"Number of reviews"`
}

// ListReviewsOutput wraps the list reviews response for Huma.
type ListReviewsOutput struct {
	Body ListReviewsResponse
}

// AddReviewInput wraps the review submission request for Huma. The reviewer
// identity comes from the X-Spindle-User header when set, falling back to
// the author field in the body.
type AddReviewInput struct {
	ID   string `path:"id" doc:"Album ID"`
	User string `header:"X-Spindle-User" doc:"Reviewer identity" required:"false"`
	Body service.AddReviewRequest
}

// AddReviewResponse contains the stored review and updated album aggregates.
type AddReviewResponse struct {
	Review ReviewResponse `json:"review" doc:"The stored review"`
	Album  AlbumResponse  `json:"album" doc:"The album with recomputed aggregates"`
}

// AddReviewOutput wraps the add review response for Huma.
type AddReviewOutput struct {
	Body AddReviewResponse
}

// === Handlers ===

func (s *Server) handleListReviews(ctx context.Context, input *ListReviewsInput) (*ListReviewsOutput, error) {
	reviews, err := s.services.Review.GetReviews(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	out := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = toReviewResponse(review)
	}

	return &ListReviewsOutput{Body: ListReviewsResponse{
		Reviews: out,
		Count:   len(out),
	}}, nil
}

func (s *Server) handleAddReview(ctx context.Context, input *AddReviewInput) (*AddReviewOutput, error) {
	req := input.Body
	if input.User != "" {
		req.Author = input.User
	}

	result, err := s.services.Review.AddReview(ctx, input.ID, req)
	if err != nil {
		return nil, err
	}

	return &AddReviewOutput{Body: AddReviewResponse{
		Review: toReviewResponse(result.Review),
		Album:  toAlbumResponse(result.Album),
	}}, nil
}
