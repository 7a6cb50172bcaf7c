package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const changeChannelPrefix = "nudgeup:changes:"

type changeMessage struct {
	Event string `json:"event"`
}

// RedisNotifier publishes change events on a per-user pub/sub channel.
// Clients with a live session subscribe to their own channel.
type RedisNotifier struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisNotifier(url string, logger *zap.Logger) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisNotifier{client: client, logger: logger}, nil
}

func (n *RedisNotifier) publish(ctx context.Context, userID, event string) error {
	payload, err := json.Marshal(changeMessage{Event: event})
	if err != nil {
		return err
	}
	if err := n.client.Publish(ctx, changeChannelPrefix+userID, payload).Err(); err != nil {
		n.logger.Warn("change notification dropped",
			zap.String("user", userID), zap.String("event", event), zap.Error(err))
		return err
	}
	return nil
}

func (n *RedisNotifier) HabitsChanged(ctx context.Context, userID string) error {
	return n.publish(ctx, userID, "habits-changed")
}

func (n *RedisNotifier) NudgeReceived(ctx context.Context, userID string) error {
	return n.publish(ctx, userID, "nudge-received")
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
