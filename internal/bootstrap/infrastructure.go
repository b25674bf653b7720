package bootstrap

import (
	"log/slog"

	"github.com/eleven-am/scribe-backend/internal/transcription"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ProvideRedisClient(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func ProvideDatabase(cfg *Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func ProvideTranscriptionConfig(cfg *Config) transcription.Config {
	return transcription.Config{
		URL:    cfg.DeepgramURL,
		APIKey: cfg.DeepgramAPIKey,
	}
}

func ProvideDialer(sttConfig transcription.Config, log *slog.Logger) transcription.Dialer {
	return transcription.NewLiveDialer(sttConfig, log)
}

var InfrastructureModule = fx.Options(
	fx.Provide(
		ProvideRedisClient,
		ProvideDatabase,
		ProvideTranscriptionConfig,
		ProvideDialer,
	),
)
