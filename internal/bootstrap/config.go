package bootstrap

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DeepgramURL    string
	DeepgramAPIKey string

	Model         string
	Language      string
	AudioEncoding string
	SampleRate    int
	AudioChannels int

	UpstreamStartTimeout  time.Duration
	UpstreamFinishTimeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DatabaseDSN: getEnv("DATABASE_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,

		DeepgramURL:    getEnv("DEEPGRAM_URL", "wss://api.deepgram.com/v1/listen"),
		DeepgramAPIKey: getEnv("DEEPGRAM_API_KEY", ""),

		Model:         getEnv("DEEPGRAM_MODEL", "nova-2"),
		Language:      getEnv("DEEPGRAM_LANGUAGE", "en"),
		AudioEncoding: getEnv("AUDIO_ENCODING", "linear16"),
		SampleRate:    getEnvInt("SAMPLE_RATE", 16000),
		AudioChannels: getEnvInt("AUDIO_CHANNELS", 1),

		UpstreamStartTimeout:  getEnvDuration("UPSTREAM_START_TIMEOUT", 10*time.Second),
		UpstreamFinishTimeout: getEnvDuration("UPSTREAM_FINISH_TIMEOUT", 5*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
