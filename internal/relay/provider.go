package relay

import (
	"log/slog"

	"github.com/eleven-am/scribe-backend/internal/metrics"
	"github.com/eleven-am/scribe-backend/internal/transcript"
	"github.com/eleven-am/scribe-backend/internal/transcription"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func ProvideRegistry() *Registry {
	return NewRegistry()
}

func ProvidePublisher(redisClient *redis.Client, logger *slog.Logger) *Publisher {
	return NewPublisher(redisClient, logger)
}

func ProvideHandler(
	cfg HandlerConfig,
	dialer transcription.Dialer,
	store *transcript.Store,
	pub *Publisher,
	registry *Registry,
	stats *metrics.Metrics,
	logger *slog.Logger,
) *Handler {
	return NewHandler(cfg, dialer, store, pub, registry, stats, logger)
}

var Module = fx.Options(
	fx.Provide(
		ProvideRegistry,
		ProvidePublisher,
		ProvideHandler,
	),
)
