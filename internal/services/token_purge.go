package services

import (
	"context"
	"log/slog"
	"time"
)

const DefaultTokenPurgeInterval = time.Hour

// RunTokenPurge deletes expired revocation entries every interval until ctx
// is cancelled. A failed pass is logged and retried on the next tick.
func RunTokenPurge(ctx context.Context, authService AuthServiceInterface, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = DefaultTokenPurgeInterval
	}

	logger.Info("starting revoked token purge", slog.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("revoked token purge stopped")
			return

		case <-ticker.C:
			deleted, err := authService.PurgeRevokedTokens(ctx)
			if err != nil {
				logger.Error("failed to purge revoked tokens", slog.String("error", err.Error()))
				continue
			}
			if deleted > 0 {
				logger.Debug("purged revoked tokens", slog.Int64("deleted", deleted))
			}
		}
	}
}
