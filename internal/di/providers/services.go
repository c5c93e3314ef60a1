package providers

import (
	"github.com/samber/do/v2"

	"github.com/spindleapp/spindle-server/internal/config"
	"github.com/spindleapp/spindle-server/internal/logger"
	"github.com/spindleapp/spindle-server/internal/ratelimit"
	"github.com/spindleapp/spindle-server/internal/service"
)

// ReviewRateLimiterHandle wraps the review rate limiter with shutdown capability.
type ReviewRateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *ReviewRateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideReviewRateLimiter provides the per-caller review submission limiter.
func ProvideReviewRateLimiter(i do.Injector) (*ReviewRateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	rps := cfg.Reviews.RatePerMinute / 60
	limiter := ratelimit.New(rps, cfg.Reviews.Burst)

	return &ReviewRateLimiterHandle{KeyedRateLimiter: limiter}, nil
}

// ProvideAlbumService provides the album service.
func ProvideAlbumService(i do.Injector) (*service.AlbumService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAlbumService(storeHandle.Store, log.Logger), nil
}

// ProvideReviewService provides the review service.
func ProvideReviewService(i do.Injector) (*service.ReviewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	limiterHandle := do.MustInvoke[*ReviewRateLimiterHandle](i)

	return service.NewReviewService(storeHandle.Store, log.Logger, limiterHandle.KeyedRateLimiter), nil
}

// ProvideCoverService provides the cover service.
func ProvideCoverService(i do.Injector) (*service.CoverService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCoverService(storeHandle.Store, log.Logger), nil
}
