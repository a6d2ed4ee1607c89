package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bjarke-xyz/applications-api/internal/domain"
)

const (
	tableApplications = "applications"
	colID             = "id"
	colUserName       = "user_name"
	colDescription    = "description"
	colCreatedAt      = "created_at"

	uniqueViolation = "23505"

	defaultStatementTimeout = 5 * time.Second
)

var (
	dialect            = goqu.Dialect("postgres")
	applicationColumns = []any{colID, colUserName, colDescription, colCreatedAt}
)

// Connection hands out pooled connections. *pgxpool.Pool satisfies it.
type Connection interface {
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
}

type postgresAppRepository struct {
	conn    Connection
	filter  ApplicationFilter
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures the postgres application repository.
type Option func(*postgresAppRepository)

// WithStatementTimeout bounds every unit of work.
func WithStatementTimeout(timeout time.Duration) Option {
	return func(p *postgresAppRepository) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *postgresAppRepository) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewPostgresApp(conn Connection, opts ...Option) domain.ApplicationRepository {
	p := &postgresAppRepository{
		conn:    conn,
		logger:  slog.Default(),
		timeout: defaultStatementTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// unitOfWork acquires a connection for the duration of fn and releases it on
// every exit path. Acquire failures are wrapped with
// domain.ErrStorageUnavailable, query errors are returned unchanged.
func (p *postgresAppRepository) unitOfWork(ctx context.Context, fn func(ctx context.Context, conn *pgxpool.Conn) error) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.conn.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: acquire connection: %w", domain.ErrStorageUnavailable, err)
	}
	defer conn.Release()

	return fn(ctx, conn)
}

// selectApplications builds the listing query: stable order, limit always,
// predicate and offset only when the query carries them.
func selectApplications(filter ApplicationFilter, query domain.ApplicationQuery) *goqu.SelectDataset {
	ds := dialect.From(tableApplications).
		Prepared(true).
		Select(applicationColumns...).
		Order(goqu.C(colCreatedAt).Asc(), goqu.C(colID).Asc()).
		Limit(uint(query.Size))

	if where := filter.Where(query); where != nil {
		ds = ds.Where(where)
	}
	if query.Offset != nil {
		ds = ds.Offset(uint(*query.Offset))
	}
	return ds
}

// GetMulti implements domain.ApplicationRepository.
func (p *postgresAppRepository) GetMulti(ctx context.Context, query domain.ApplicationQuery) ([]domain.Application, error) {
	ds := selectApplications(p.filter, query)

	sql, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}
	p.logger.Debug("getting applications", "query", sql, "args", args)

	apps := make([]domain.Application, 0)
	err = p.unitOfWork(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		return pgxscan.Select(ctx, conn, &apps, sql, args...)
	})
	if err != nil {
		return nil, err
	}
	p.logger.Info("retrieved applications", "count", len(apps))
	return apps, nil
}

// GetByID implements domain.ApplicationRepository.
func (p *postgresAppRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Application, error) {
	var app domain.Application
	sql, args, err := dialect.From(tableApplications).
		Prepared(true).
		Select(applicationColumns...).
		Where(goqu.C(colID).Eq(id.String())).
		ToSQL()
	if err != nil {
		return app, fmt.Errorf("failed to build select query: %w", err)
	}

	err = p.unitOfWork(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		return pgxscan.Get(ctx, conn, &app, sql, args...)
	})
	if err != nil {
		if pgxscan.NotFound(err) {
			return app, domain.ErrNotFound
		}
		return app, err
	}
	return app, nil
}

// Create implements domain.ApplicationRepository. The insert and the database
// generated defaults for id and created_at happen in one transaction.
func (p *postgresAppRepository) Create(ctx context.Context, input domain.ApplicationCreate) (domain.Application, error) {
	var app domain.Application

	record := goqu.Record{
		colUserName:    input.UserName,
		colDescription: input.Description,
	}
	if input.ID != nil {
		record[colID] = input.ID.String()
	}
	if input.CreatedAt != nil {
		record[colCreatedAt] = *input.CreatedAt
	}

	sql, args, err := dialect.Insert(tableApplications).
		Prepared(true).
		Rows(record).
		Returning(applicationColumns...).
		ToSQL()
	if err != nil {
		return app, fmt.Errorf("failed to build insert query: %w", err)
	}
	p.logger.Debug("creating application", "query", sql)

	err = p.unitOfWork(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		tx, err := conn.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := pgxscan.Get(ctx, tx, &app, sql, args...); err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return app, domain.ErrConflict
		}
		return app, err
	}
	p.logger.Info("created application", "id", app.ID)
	return app, nil
}

// DeleteByID implements domain.ApplicationRepository. Deleting an id that does
// not exist is a no-op.
func (p *postgresAppRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	sql, args, err := dialect.Delete(tableApplications).
		Prepared(true).
		Where(goqu.C(colID).Eq(id.String())).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	var affected int64
	err = p.unitOfWork(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}
	p.logger.Info("deleted application", "id", id, "rowsAffected", affected)
	return nil
}
