package bootstrap

import (
	"log/slog"
	"os"

	"github.com/eleven-am/scribe-backend/internal/health"
	"github.com/eleven-am/scribe-backend/internal/metrics"
	"github.com/eleven-am/scribe-backend/internal/relay"
	"github.com/eleven-am/scribe-backend/internal/transcript"
	"github.com/eleven-am/scribe-backend/internal/transcription"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	_ "github.com/eleven-am/scribe-backend/docs"
)

const version = "1.0.0"

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideMetrics() *metrics.Metrics {
	return metrics.New()
}

func ProvideRelayConfig(cfg *Config) relay.HandlerConfig {
	return relay.HandlerConfig{
		Options: transcription.SessionOptions{
			Model:          cfg.Model,
			Language:       cfg.Language,
			Encoding:       cfg.AudioEncoding,
			SampleRate:     cfg.SampleRate,
			Channels:       cfg.AudioChannels,
			Punctuate:      true,
			InterimResults: true,
			Diarize:        true,
			SmartFormat:    true,
		},
		StartTimeout:  cfg.UpstreamStartTimeout,
		FinishTimeout: cfg.UpstreamFinishTimeout,
	}
}

func ProvideTranscriptHandler(store *transcript.Store, logger *slog.Logger) *transcript.Handler {
	return transcript.NewHandler(store, logger)
}

func ProvideHealthHandler(
	db *gorm.DB,
	redisClient *redis.Client,
	sttConfig transcription.Config,
	registry *relay.Registry,
) *health.Handler {
	return health.NewHandler(db, redisClient, sttConfig, registry, version)
}

type HandlerParams struct {
	fx.In

	TranscriptHandler *transcript.Handler
	RelayHandler      *relay.Handler
	HealthHandler     *health.Handler
	Metrics           *metrics.Metrics
	Config            *Config
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/v1")

	transcriptions := api.Group("/transcriptions")
	params.TranscriptHandler.RegisterRoutes(transcriptions)
	params.RelayHandler.RegisterLiveRoutes(transcriptions)

	params.RelayHandler.RegisterRoutes(e)
	params.HealthHandler.RegisterRoutes(e)

	e.GET("/metrics", params.Metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideMetrics,
		ProvideRelayConfig,
		ProvideTranscriptHandler,
		ProvideHealthHandler,
	),
	fx.Invoke(RegisterRoutes),
)
