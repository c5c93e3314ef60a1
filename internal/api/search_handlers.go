package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/spindleapp/spindle-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchAlbums",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search albums",
		Description: "Full-text album search with filters, facets, and highlighting",
		Tags:        []string{"Search"},
	}, s.handleSearchAlbums)
}

// SearchAlbumsInput contains query parameters for album search.
type SearchAlbumsInput struct {
	Query       string  `query:"q" doc:"Search query; empty matches everything"`
	Genre       string  `query:"genre" doc:"Filter by exact genre"`
	RatingRange string  `query:"rating_range" doc:"Filter by rating bucket"`
	MinYear     int     `query:"min_year" doc:"Minimum release year"`
	MaxYear     int     `query:"max_year" doc:"Maximum release year"`
	MinRating   float64 `query:"min_rating" doc:"Minimum average rating"`
	Sort        string  `query:"sort" enum:"relevance,name,rating,reviews,recent" doc:"Sort field" required:"false"`
	Order       string  `query:"order" enum:"asc,desc" doc:"Sort direction" required:"false"`
	Limit       int     `query:"limit" minimum:"1" maximum:"100" doc:"Page size (default 20)" required:"false"`
	Offset      int     `query:"offset" minimum:"0" doc:"Result offset" required:"false"`
}

// SearchAlbumsOutput wraps the search result for Huma.
type SearchAlbumsOutput struct {
	Body search.SearchResult
}

func (s *Server) handleSearchAlbums(ctx context.Context, input *SearchAlbumsInput) (*SearchAlbumsOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.Genre = input.Genre
	params.RatingRange = input.RatingRange
	params.MinYear = input.MinYear
	params.MaxYear = input.MaxYear
	params.MinRating = input.MinRating
	if input.Sort != "" {
		params.SortBy = input.Sort
	}
	if input.Order != "" {
		params.SortOrder = input.Order
	}
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Offset = input.Offset

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchAlbumsOutput{Body: *result}, nil
}
