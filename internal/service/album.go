// Package service contains the application services that sit between the
// HTTP layer and the store.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spindleapp/spindle-server/internal/domain"
	apperrors "github.com/spindleapp/spindle-server/internal/errors"
	"github.com/spindleapp/spindle-server/internal/id"
	"github.com/spindleapp/spindle-server/internal/store"
	"github.com/spindleapp/spindle-server/internal/validation"
)

// AlbumService orchestrates album operations.
type AlbumService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewAlbumService creates a new album service.
func NewAlbumService(store *store.Store, logger *slog.Logger) *AlbumService {
	return &AlbumService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreateAlbumRequest contains fields for creating an album.
type CreateAlbumRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Genre    string `json:"genre" validate:"required,min=1,max=100"`
	Year     int    `json:"year" validate:"required,gte=1900,lte=2100"`
	CoverArt string `json:"cover_art,omitempty" validate:"omitempty,max=2048"`
}

// CreateAlbum creates a new album with zeroed rating aggregates.
func (s *AlbumService) CreateAlbum(ctx context.Context, req CreateAlbumRequest) (*domain.Album, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	albumID, err := id.Generate("alb")
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to generate album ID")
	}

	album := &domain.Album{
		ID:       albumID,
		Name:     req.Name,
		Genre:    req.Genre,
		Year:     req.Year,
		CoverArt: req.CoverArt,
	}

	if err := s.store.CreateAlbum(ctx, album); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create album")
	}

	s.logger.Info("album created", "album_id", album.ID, "name", album.Name)
	return album, nil
}

// GetAlbum returns a single album.
func (s *AlbumService) GetAlbum(ctx context.Context, albumID string) (*domain.Album, error) {
	album, err := s.store.GetAlbum(ctx, albumID)
	if errors.Is(err, store.ErrAlbumNotFound) {
		return nil, apperrors.NotFoundf("album %s not found", albumID)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to get album")
	}
	return album, nil
}

// ListAlbumsRequest carries the filter, sort, and pagination inputs for a
// catalog listing.
type ListAlbumsRequest struct {
	Genre       string
	Year        int
	RatingRange string
	Sort        string
	Limit       int
	Cursor      string
}

// ListAlbums composes a query from the request and returns one page of
// matching albums. Unknown sort values fall back to rating order.
func (s *AlbumService) ListAlbums(ctx context.Context, req ListAlbumsRequest) (store.PaginatedResult[*domain.Album], error) {
	query := store.ComposeAlbumQuery(store.AlbumFilter{
		Genre:       req.Genre,
		Year:        req.Year,
		RatingRange: req.RatingRange,
		Sort:        store.SortMode(req.Sort),
	})

	page, err := s.store.ListAlbums(ctx, query, store.PaginationParams{
		Limit:  req.Limit,
		Cursor: req.Cursor,
	})
	if err != nil {
		return store.PaginatedResult[*domain.Album]{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list albums")
	}
	return page, nil
}

// WatchAlbums subscribes to the filtered album collection. See
// store.WatchAlbums for delivery guarantees.
func (s *AlbumService) WatchAlbums(req ListAlbumsRequest, fn store.AlbumsSnapshotFunc) (store.CancelFunc, error) {
	query := store.ComposeAlbumQuery(store.AlbumFilter{
		Genre:       req.Genre,
		Year:        req.Year,
		RatingRange: req.RatingRange,
		Sort:        store.SortMode(req.Sort),
	})
	return s.store.WatchAlbums(query, fn)
}

// WatchAlbum subscribes to a single album document.
func (s *AlbumService) WatchAlbum(albumID string, fn store.AlbumSnapshotFunc) (store.CancelFunc, error) {
	return s.store.WatchAlbum(albumID, fn)
}
