package broker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// Postgres publishes with LISTEN/NOTIFY on the application database. Payloads
// are limited to 8000 bytes by postgres.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *slog.Logger) *Postgres {
	if logger == nil {
		logger = slog.Default()
	}
	return &Postgres{pool: pool, logger: logger}
}

// Connect implements Broker.
func (p *Postgres) Connect(ctx context.Context) (Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, unavailable("connect", err)
	}
	return &postgresConn{conn: conn, logger: p.logger}, nil
}

type postgresConn struct {
	conn   *pgxpool.Conn
	logger *slog.Logger
}

func (c *postgresConn) Publish(ctx context.Context, topic string, msg Message) error {
	query := fmt.Sprintf("NOTIFY %s, %s", pq.QuoteIdentifier(topic), pq.QuoteLiteral(string(msg.Body)))
	if _, err := c.conn.Exec(ctx, query); err != nil {
		return unavailable("publish", err)
	}
	c.logger.Debug("message published", "topic", topic, "key", msg.Key)
	return nil
}

func (c *postgresConn) Close() error {
	c.conn.Release()
	return nil
}
