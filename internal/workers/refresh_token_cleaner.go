package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/internal/store"
)

// refreshTokenCleaner periodically clears refresh tokens whose expiry has
// passed. Expired tokens are already rejected on refresh; this only keeps
// the users table tidy.
type refreshTokenCleaner struct {
	repo     store.UserRepository
	interval time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

func newRefreshTokenCleaner(repo store.UserRepository, interval time.Duration, logger *logger.Logger) *refreshTokenCleaner {
	return &refreshTokenCleaner{
		repo:     repo,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (c *refreshTokenCleaner) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info().Dur("interval", c.interval).Msg("refresh token cleaner started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("refresh token cleaner stopped")
			return
		case <-ticker.C:
			c.clean(ctx)
		}
	}
}

func (c *refreshTokenCleaner) clean(ctx context.Context) {
	cleared, err := c.repo.ClearExpiredRefreshTokens(ctx, c.now().UTC())
	if err != nil {
		c.logger.Err(err).Str("func", "*refreshTokenCleaner.clean").Msg("clearing expired refresh tokens failed")
		return
	}

	if cleared > 0 {
		c.logger.Info().Int64("cleared", cleared).Msg("expired refresh tokens cleared")
	}
}
