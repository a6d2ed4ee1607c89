package broker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const defaultDialTimeout = 10 * time.Second

// Kafka connects to a single bootstrap address per publish.
type Kafka struct {
	addr        string
	dialTimeout time.Duration
	logger      *slog.Logger
}

func NewKafka(addr string, logger *slog.Logger) *Kafka {
	if logger == nil {
		logger = slog.Default()
	}
	return &Kafka{
		addr:        addr,
		dialTimeout: defaultDialTimeout,
		logger:      logger,
	}
}

// Connect implements Broker.
func (k *Kafka) Connect(ctx context.Context) (Conn, error) {
	k.logger.Info("connecting to kafka broker", "addr", k.addr)
	dialer := &kafka.Dialer{Timeout: k.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", k.addr)
	if err != nil {
		return nil, unavailable("connect", err)
	}

	writer := newKafkaWriter(k.addr)
	k.logger.Info("connected to kafka broker", "addr", k.addr)
	return &kafkaConn{conn: conn, writer: writer, logger: k.logger}, nil
}

// newKafkaWriter sends each message once: retries are left to the caller.
func newKafkaWriter(addr string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(addr),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		// zero would mean the kafka-go default of 10 attempts
		MaxAttempts: 1,
		// flush every message right away instead of waiting for a batch
		BatchSize: 1,
	}
}

type kafkaConn struct {
	conn   *kafka.Conn
	writer *kafka.Writer
	logger *slog.Logger
}

func (c *kafkaConn) Publish(ctx context.Context, topic string, msg Message) error {
	c.logger.Debug("publishing message to kafka topic", "topic", topic)
	err := c.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(msg.Key),
		Value: msg.Body,
	})
	if err != nil {
		return unavailable("publish", err)
	}
	c.logger.Debug("published message to kafka topic", "topic", topic)
	return nil
}

func (c *kafkaConn) Close() error {
	c.logger.Info("stopping kafka broker connection")
	return errors.Join(c.writer.Close(), c.conn.Close())
}
