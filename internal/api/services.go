package api

import (
	"github.com/spindleapp/spindle-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Album  *service.AlbumService
	Review *service.ReviewService
	Cover  *service.CoverService
	Search *service.SearchService
}
