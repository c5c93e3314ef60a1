package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spindleapp/spindle-server/internal/domain"
	apperrors "github.com/spindleapp/spindle-server/internal/errors"
	"github.com/spindleapp/spindle-server/internal/ratelimit"
	"github.com/spindleapp/spindle-server/internal/store"
	"github.com/spindleapp/spindle-server/internal/validation"
)

// ReviewService orchestrates review submission and listing.
type ReviewService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
	limiter   *ratelimit.KeyedRateLimiter
}

// NewReviewService creates a new review service. The limiter throttles
// submissions per caller identity; pass nil to disable throttling.
func NewReviewService(store *store.Store, logger *slog.Logger, limiter *ratelimit.KeyedRateLimiter) *ReviewService {
	return &ReviewService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
		limiter:   limiter,
	}
}

// AddReviewRequest contains fields for submitting a review.
type AddReviewRequest struct {
	Rating float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Text   string  `json:"text,omitempty" validate:"max=4000"`
	Author string  `json:"author,omitempty" validate:"max=100"`
}

// AddReviewResult carries the stored review and the album with its freshly
// recomputed aggregates.
type AddReviewResult struct {
	Review *domain.Review
	Album  *domain.Album
}

// AddReview validates and stores a review against an album. The append and
// the aggregate recompute commit atomically in the store.
func (s *ReviewService) AddReview(ctx context.Context, albumID string, req AddReviewRequest) (*AddReviewResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if s.limiter != nil && !s.limiter.Allow(limiterKey(albumID, req.Author)) {
		s.logger.Warn("review submission throttled", "album_id", albumID, "author", req.Author)
		return nil, apperrors.RateLimited("too many review submissions, slow down")
	}

	review := &domain.Review{
		Rating: req.Rating,
		Text:   req.Text,
		Author: req.Author,
	}

	stored, album, err := s.store.AddReview(ctx, albumID, review)
	if errors.Is(err, store.ErrAlbumNotFound) {
		return nil, apperrors.NotFoundf("album %s not found", albumID)
	}
	if errors.Is(err, store.ErrReviewRetriesExhausted) {
		return nil, apperrors.Conflict("album is receiving too many concurrent reviews, try again")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to add review")
	}

	s.logger.Info("review added",
		"review_id", stored.ID,
		"album_id", albumID,
		"rating", stored.Rating,
		"num_ratings", album.NumRatings)

	return &AddReviewResult{Review: stored, Album: album}, nil
}

// GetReviews returns all reviews for an album, newest first.
func (s *ReviewService) GetReviews(ctx context.Context, albumID string) ([]*domain.Review, error) {
	reviews, err := s.store.GetReviews(ctx, albumID)
	if errors.Is(err, store.ErrAlbumNotFound) {
		return nil, apperrors.NotFoundf("album %s not found", albumID)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to get reviews")
	}
	return reviews, nil
}

// limiterKey scopes throttling to one author per album. Anonymous
// submissions share a bucket per album.
func limiterKey(albumID, author string) string {
	if author == "" {
		author = "anonymous"
	}
	return albumID + "/" + author
}
