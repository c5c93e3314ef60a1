package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/spindleapp/spindle-server/internal/domain"
	"github.com/spindleapp/spindle-server/internal/service"
)

func (s *Server) registerAlbumRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAlbums",
		Method:      http.MethodGet,
		Path:        "/api/v1/albums",
		Summary:     "List albums",
		Description: "Returns a filtered, sorted, paginated page of the album catalog",
		Tags:        []string{"Albums"},
	}, s.handleListAlbums)

	huma.Register(s.api, huma.Operation{
		OperationID: "createAlbum",
		Method:      http.MethodPost,
		Path:        "/api/v1/albums",
		Summary:     "Create album",
		Description: "Creates a new album with zeroed rating aggregates",
		Tags:        []string{"Albums"},
	}, s.handleCreateAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAlbum",
		Method:      http.MethodGet,
		Path:        "/api/v1/albums/{id}",
		Summary:     "Get album",
		Description: "Returns an album by ID",
		Tags:        []string{"Albums"},
	}, s.handleGetAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateAlbumCover",
		Method:      http.MethodPut,
		Path:        "/api/v1/albums/{id}/cover",
		Summary:     "Update album cover",
		Description: "Sets the cover art reference on an album",
		Tags:        []string{"Albums"},
	}, s.handleUpdateAlbumCover)
}

// === DTOs ===

// AlbumResponse contains album data in API responses.
type AlbumResponse struct {
	ID          string    `json:"id" doc:"Album ID"`
	Name        string    `json:"name" doc:"Album name"`
	Genre       string    `json:"genre" doc:"Genre"`
	Year        int       `json:"year" doc:"Release year"`
	CoverArt    string    `json:"cover_art,omitempty" doc:"Cover art URL"`
	NumRatings  int       `json:"num_ratings" doc:"Number of reviews"`
	AvgRating   float64   `json:"avg_rating" doc:"Average rating"`
	RatingRange string    `json:"rating_range" doc:"Rating bucket derived from the average"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update time"`
}

func toAlbumResponse(album *domain.Album) AlbumResponse {
	return AlbumResponse{
		ID:          album.ID,
		Name:        album.Name,
		Genre:       album.Genre,
		Year:        album.Year,
		CoverArt:    album.CoverArt,
		NumRatings:  album.NumRatings,
		AvgRating:   album.AvgRating,
		RatingRange: string(album.RatingRange),
		CreatedAt:   album.CreatedAt,
		UpdatedAt:   album.UpdatedAt,
	}
}

// ListAlbumsInput contains query parameters for listing albums.
type ListAlbumsInput struct {
	Genre       string `query:"genre" doc:"Filter by exact genre"`
	Year        int    `query:"year" doc:"Filter by release year"`
	RatingRange string `query:"rating_range" doc:"Filter by rating bucket"`
	Sort        string `query:"sort" doc:"Sort mode: Rating (avg rating desc, default) or Review (review count desc); unknown values fall back to Rating"`
	Limit       int    `query:"limit" doc:"Page size (default 50, max 100)"`
	Cursor      string `query:"cursor" doc:"Opaque cursor from a previous page"`
}

// ListAlbumsResponse contains one page of albums.
type ListAlbumsResponse struct {
	Albums     []AlbumResponse `json:"albums" doc:"Page of albums"`
	NextCursor string          `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore    bool            `json:"has_more" doc:"Whether more results exist"`
}

// ListAlbumsOutput wraps the list albums response for Huma.
type ListAlbumsOutput struct {
	Body ListAlbumsResponse
}

// CreateAlbumInput wraps the create album request for Huma.
type CreateAlbumInput struct {
	Body service.CreateAlbumRequest
}

// AlbumOutput wraps the album response for Huma.
type AlbumOutput struct {
	Body AlbumResponse
}

// GetAlbumInput contains parameters for getting an album.
type GetAlbumInput struct {
	ID string `path:"id" doc:"Album ID"`
}

// UpdateAlbumCoverInput wraps the cover update request for Huma.
type UpdateAlbumCoverInput struct {
	ID   string `path:"id" doc:"Album ID"`
	Body service.UpdateCoverRequest
}

// === Handlers ===

func (s *Server) handleListAlbums(ctx context.Context, input *ListAlbumsInput) (*ListAlbumsOutput, error) {
	page, err := s.services.Album.ListAlbums(ctx, service.ListAlbumsRequest{
		Genre:       input.Genre,
		Year:        input.Year,
		RatingRange: input.RatingRange,
		Sort:        input.Sort,
		Limit:       input.Limit,
		Cursor:      input.Cursor,
	})
	if err != nil {
		return nil, err
	}

	albums := make([]AlbumResponse, len(page.Items))
	for i, album := range page.Items {
		albums[i] = toAlbumResponse(album)
	}

	return &ListAlbumsOutput{Body: ListAlbumsResponse{
		Albums:     albums,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}}, nil
}

func (s *Server) handleCreateAlbum(ctx context.Context, input *CreateAlbumInput) (*AlbumOutput, error) {
	album, err := s.services.Album.CreateAlbum(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &AlbumOutput{Body: toAlbumResponse(album)}, nil
}

func (s *Server) handleGetAlbum(ctx context.Context, input *GetAlbumInput) (*AlbumOutput, error) {
	album, err := s.services.Album.GetAlbum(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &AlbumOutput{Body: toAlbumResponse(album)}, nil
}

func (s *Server) handleUpdateAlbumCover(ctx context.Context, input *UpdateAlbumCoverInput) (*AlbumOutput, error) {
	album, err := s.services.Cover.UpdateCover(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &AlbumOutput{Body: toAlbumResponse(album)}, nil
}
