package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/bjarke-xyz/applications-api/internal/broker"
	"github.com/bjarke-xyz/applications-api/internal/config"
	"github.com/bjarke-xyz/applications-api/internal/metrics"
	"github.com/bjarke-xyz/applications-api/internal/repository"
	serverPkg "github.com/bjarke-xyz/applications-api/internal/server"
	"github.com/bjarke-xyz/applications-api/internal/service"
)

func ServerCmd(ctx context.Context) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger("api", settings.App)
	slog.SetDefault(logger)

	if settings.App.Workers > 0 {
		runtime.GOMAXPROCS(settings.App.Workers)
	}

	if err := repository.Migrate(repository.MigrateUp, settings.Postgres.ConnString()); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	pool, err := newDatabasePool(ctx, settings.Postgres, logger)
	if err != nil {
		return fmt.Errorf("error creating db pool: %w", err)
	}
	defer pool.Close()

	b, err := newBroker(settings, pool, logger)
	if err != nil {
		return err
	}

	server, err := serverPkg.NewServer(ctx, logger, newServiceFactory(settings, pool, b, logger), settings.CORS)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}
	srv := server.Server(settings.App.Addr())

	var metricsSrv *http.Server
	if settings.App.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{
			Addr:    net.JoinHostPort("", strconv.Itoa(settings.App.MetricsPort)),
			Handler: mux,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Info("started server", slog.String("addr", srv.Addr), slog.String("broker", settings.Broker.Driver))

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settings.App.ShutdownTimeout)
	defer cancel()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return srv.Shutdown(shutdownCtx)
}

// newServiceFactory returns the per request wiring: a repository and service
// on top of the shared pool and broker.
func newServiceFactory(settings config.Settings, pool *pgxpool.Pool, b broker.Broker, logger *slog.Logger) serverPkg.ServiceFactory {
	return func(r *http.Request) *service.ApplicationService {
		reqLogger := logger.With("method", r.Method, "path", r.URL.Path)
		repo := repository.NewPostgresApp(pool,
			repository.WithStatementTimeout(settings.Postgres.StatementTimeout),
			repository.WithLogger(reqLogger),
		)
		return service.NewApplicationService(repo, b, reqLogger,
			service.WithPublishTimeout(settings.Kafka.PublishTimeout),
		)
	}
}

func newBroker(settings config.Settings, pool *pgxpool.Pool, logger *slog.Logger) (broker.Broker, error) {
	switch settings.Broker.Driver {
	case broker.DriverKafka:
		return broker.NewKafka(settings.Kafka.Addr(), logger), nil
	case broker.DriverRedis:
		return broker.NewRedis(&redis.Options{
			Addr:       settings.Redis.Addr,
			Password:   settings.Redis.Password,
			DB:         settings.Redis.DB,
			MaxRetries: -1,
		}, logger), nil
	case broker.DriverPostgres:
		return broker.NewPostgres(pool, logger), nil
	}
	return nil, fmt.Errorf("unknown broker driver %q", settings.Broker.Driver)
}

func MigrateCmd(direction string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger("migrate", settings.App))
	return repository.Migrate(direction, settings.Postgres.ConnString())
}
