// Package broker publishes domain events to a message broker through short
// lived, scoped connections.
package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bjarke-xyz/applications-api/internal/domain"
)

const (
	DriverKafka    = "kafka"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Message is a single event. Key is used for partitioning where the backend
// supports it.
type Message struct {
	Key  string
	Body []byte
}

// Broker opens connections to a message broker.
type Broker interface {
	Connect(ctx context.Context) (Conn, error)
}

// Conn is an open broker connection. Publish sends exactly one message and
// never retries. Close tears the connection down.
type Conn interface {
	Publish(ctx context.Context, topic string, msg Message) error
	Close() error
}

// Publish connects, sends msg to topic and closes the connection again,
// whatever the outcome of the send. A failing close is only logged: once the
// message is out it must not be reported as unpublished.
func Publish(ctx context.Context, b Broker, topic string, msg Message) error {
	conn, err := b.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Warn("failed to close broker connection", "topic", topic, "error", closeErr)
		}
	}()

	return conn.Publish(ctx, topic, msg)
}

func unavailable(op string, err error) error {
	if errors.Is(err, domain.ErrBrokerUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrBrokerUnavailable, op, err)
}
