package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spindleapp/spindle-server/internal/domain"
	apperrors "github.com/spindleapp/spindle-server/internal/errors"
	"github.com/spindleapp/spindle-server/internal/store"
	"github.com/spindleapp/spindle-server/internal/validation"
)

// CoverService updates album cover art references.
type CoverService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewCoverService creates a new cover service.
func NewCoverService(store *store.Store, logger *slog.Logger) *CoverService {
	return &CoverService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// UpdateCoverRequest contains fields for updating an album cover.
type UpdateCoverRequest struct {
	CoverArt string `json:"cover_art" validate:"required,url,max=2048"`
}

// UpdateCover sets the cover art reference on an album.
func (s *CoverService) UpdateCover(ctx context.Context, albumID string, req UpdateCoverRequest) (*domain.Album, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	album, err := s.store.UpdateAlbumCover(ctx, albumID, req.CoverArt)
	if errors.Is(err, store.ErrAlbumNotFound) {
		return nil, apperrors.NotFoundf("album %s not found", albumID)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update cover")
	}

	s.logger.Info("album cover updated", "album_id", albumID)
	return album, nil
}
