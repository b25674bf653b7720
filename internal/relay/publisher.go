package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const liveChannelPattern = "transcription:%s:live"

// Publisher fans client envelopes out over redis pub/sub so read-only viewers
// can follow a session live. It is the only resource shared across sessions;
// redis serializes the concurrent publishes.
type Publisher struct {
	redis  *redis.Client
	logger *slog.Logger
}

func NewPublisher(redisClient *redis.Client, logger *slog.Logger) *Publisher {
	return &Publisher{
		redis:  redisClient,
		logger: logger.With("component", "publisher"),
	}
}

func (p *Publisher) Publish(ctx context.Context, transcriptionID string, msg *ClientMessage) error {
	channel := fmt.Sprintf(liveChannelPattern, transcriptionID)
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal live message: %w", err)
	}

	if err := p.redis.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish live message: %w", err)
	}

	p.logger.Debug("published live message",
		"transcription_id", transcriptionID,
		"type", msg.Type)
	return nil
}

func (p *Publisher) Subscribe(ctx context.Context, transcriptionID string) *redis.PubSub {
	channel := fmt.Sprintf(liveChannelPattern, transcriptionID)
	return p.redis.Subscribe(ctx, channel)
}
