package broker

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Redis appends every message to a stream named after the topic. Commands
// are never retried by the client.
type Redis struct {
	opts   *redis.Options
	logger *slog.Logger
}

func NewRedis(opts *redis.Options, logger *slog.Logger) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	o := *opts
	o.MaxRetries = -1
	return &Redis{opts: &o, logger: logger}
}

// Connect implements Broker.
func (r *Redis) Connect(ctx context.Context) (Conn, error) {
	client := redis.NewClient(r.opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, unavailable("connect", err)
	}
	r.logger.Info("connected to redis broker", "addr", r.opts.Addr)
	return &redisConn{client: client, logger: r.logger}, nil
}

type redisConn struct {
	client *redis.Client
	logger *slog.Logger
}

func (c *redisConn) Publish(ctx context.Context, topic string, msg Message) error {
	id, err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: topic,
		Values: map[string]any{
			"key":  msg.Key,
			"body": msg.Body,
		},
	}).Result()
	if err != nil {
		return unavailable("publish", err)
	}
	c.logger.Debug("published message to redis stream", "stream", topic, "entryId", id)
	return nil
}

func (c *redisConn) Close() error {
	return c.client.Close()
}
