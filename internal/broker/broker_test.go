package broker_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bjarke-xyz/applications-api/internal/broker"
	"github.com/bjarke-xyz/applications-api/internal/domain"
	"github.com/bjarke-xyz/applications-api/internal/mocks"
)

func TestPublish(t *testing.T) {
	msg := broker.Message{Key: "k", Body: []byte(`{"a":1}`)}

	t.Run("should close the connection after a successful publish", func(t *testing.T) {
		conn := mocks.NewConn(t)
		conn.On("Publish", mock.Anything, "applications", msg).Return(nil).Once()
		conn.On("Close").Return(nil).Once()

		b := mocks.NewBroker(t)
		b.On("Connect", mock.Anything).Return(conn, nil).Once()

		assert.NoError(t, broker.Publish(context.Background(), b, "applications", msg))
	})

	t.Run("should close the connection and return the error when publishing fails", func(t *testing.T) {
		publishErr := errors.New("leader not available")
		conn := mocks.NewConn(t)
		conn.On("Publish", mock.Anything, "applications", msg).Return(publishErr).Once()
		conn.On("Close").Return(nil).Once()

		b := mocks.NewBroker(t)
		b.On("Connect", mock.Anything).Return(conn, nil).Once()

		err := broker.Publish(context.Background(), b, "applications", msg)
		assert.ErrorIs(t, err, publishErr)
	})

	t.Run("should not publish when the connection cannot be established", func(t *testing.T) {
		connectErr := errors.New("dial tcp: connection refused")
		b := mocks.NewBroker(t)
		b.On("Connect", mock.Anything).Return(nil, connectErr).Once()

		err := broker.Publish(context.Background(), b, "applications", msg)
		assert.ErrorIs(t, err, connectErr)
	})

	t.Run("should not fail a delivered message because close fails", func(t *testing.T) {
		conn := mocks.NewConn(t)
		conn.On("Publish", mock.Anything, "applications", msg).Return(nil).Once()
		conn.On("Close").Return(errors.New("broken pipe")).Once()

		b := mocks.NewBroker(t)
		b.On("Connect", mock.Anything).Return(conn, nil).Once()

		assert.NoError(t, broker.Publish(context.Background(), b, "applications", msg))
	})
}

// closedAddr returns an address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestBackendsReportUnavailableBroker(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("kafka", func(t *testing.T) {
		_, err := broker.NewKafka(closedAddr(t), nil).Connect(ctx)
		assert.ErrorIs(t, err, domain.ErrBrokerUnavailable)
	})

	t.Run("redis", func(t *testing.T) {
		b := broker.NewRedis(&redis.Options{Addr: closedAddr(t), MaxRetries: -1}, nil)
		_, err := b.Connect(ctx)
		assert.ErrorIs(t, err, domain.ErrBrokerUnavailable)
	})
}
