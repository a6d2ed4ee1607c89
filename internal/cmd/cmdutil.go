package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/lmittmann/tint"

	"github.com/bjarke-xyz/applications-api/internal/config"
)

func newLogger(service string, settings config.AppSettings) *slog.Logger {
	var handler slog.Handler
	if settings.LogFormat == "text" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      settings.Level(),
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: settings.Level()})
	}
	logger := slog.New(handler)
	child := logger.With(slog.Group("service_info", slog.String("env", settings.Env), slog.String("service", service)))
	return child
}

func newDatabasePool(ctx context.Context, settings config.PostgresSettings, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(settings.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(settings.MaxConns)
	poolConfig.MinConns = min(2, poolConfig.MaxConns)
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Second

	if settings.Echo {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   sqlLogger(logger),
			LogLevel: tracelog.LogLevelDebug,
		}
	}
	return pgxpool.NewWithConfig(ctx, poolConfig)
}

// sqlLogger forwards pgx trace output to slog at debug level.
func sqlLogger(logger *slog.Logger) tracelog.Logger {
	return tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		attrs := make([]any, 0, len(data)*2)
		for k, v := range data {
			attrs = append(attrs, k, v)
		}
		logger.DebugContext(ctx, msg, attrs...)
	})
}
