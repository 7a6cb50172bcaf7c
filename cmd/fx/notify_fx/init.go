package notify_fx

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"nudgeup/internal/notify"
)

var Module = fx.Provide(provideNotifier)

// Falls back to the in-process notifier when no REDIS_URL is set; the
// engine works without a broker, sessions just poll instead.
func provideNotifier(logger *zap.Logger) notify.Notifier {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		logger.Info("REDIS_URL not set, using in-memory notifier")
		return notify.NewMemoryNotifier()
	}
	notifier, err := notify.NewRedisNotifier(url, logger)
	if err != nil {
		logger.Warn("redis notifier unavailable, using in-memory notifier", zap.Error(err))
		return notify.NewMemoryNotifier()
	}
	return notifier
}
