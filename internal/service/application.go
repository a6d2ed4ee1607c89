package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"github.com/bjarke-xyz/applications-api/internal/broker"
	"github.com/bjarke-xyz/applications-api/internal/domain"
	"github.com/bjarke-xyz/applications-api/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultPublishTimeout    = 10 * time.Second
	defaultCompensateTimeout = 5 * time.Second
)

// ApplicationService creates applications and announces them on the broker.
// A created application is only kept when its event was published.
type ApplicationService struct {
	repository        domain.ApplicationRepository
	broker            broker.Broker
	logger            *slog.Logger
	publishTimeout    time.Duration
	compensateTimeout time.Duration
}

type Option func(*ApplicationService)

func WithPublishTimeout(timeout time.Duration) Option {
	return func(s *ApplicationService) {
		if timeout > 0 {
			s.publishTimeout = timeout
		}
	}
}

func WithCompensateTimeout(timeout time.Duration) Option {
	return func(s *ApplicationService) {
		if timeout > 0 {
			s.compensateTimeout = timeout
		}
	}
}

func NewApplicationService(repository domain.ApplicationRepository, b broker.Broker, logger *slog.Logger, opts ...Option) *ApplicationService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ApplicationService{
		repository:        repository,
		broker:            b,
		logger:            logger,
		publishTimeout:    defaultPublishTimeout,
		compensateTimeout: defaultCompensateTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetMulti lists applications. An empty result is reported as domain.ErrNotFound.
func (s *ApplicationService) GetMulti(ctx context.Context, query domain.ApplicationQuery) ([]domain.ApplicationRead, error) {
	s.logger.Debug("getting applications", "userName", lo.FromPtr(query.UserName), "size", query.Size, "offset", lo.FromPtr(query.Offset))
	apps, err := s.repository.GetMulti(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		s.logger.Warn("no applications found")
		return nil, domain.ErrNotFound
	}
	s.logger.Info("retrieved applications", "count", len(apps))
	return lo.Map(apps, func(app domain.Application, _ int) domain.ApplicationRead {
		return domain.NewApplicationRead(app)
	}), nil
}

func (s *ApplicationService) GetByID(ctx context.Context, id uuid.UUID) (domain.ApplicationRead, error) {
	app, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return domain.ApplicationRead{}, err
	}
	return domain.NewApplicationRead(app), nil
}

// CreateApplication stores the application and publishes it to the
// applications topic. When publishing fails the stored row is deleted and the
// publish error is returned; if that delete fails as well both errors are
// returned joined.
func (s *ApplicationService) CreateApplication(ctx context.Context, input domain.ApplicationCreate) (domain.ApplicationRead, error) {
	s.logger.Info("creating application", "userName", input.UserName)
	app, err := s.repository.Create(ctx, input)
	if err != nil {
		return domain.ApplicationRead{}, err
	}
	result := domain.NewApplicationRead(app)
	s.logger.Info("application created", "id", result.ID)

	if err := s.publish(ctx, result); err != nil {
		metrics.PublishFailed()
		s.logger.Error("failed to publish application, deleting record", "id", result.ID, "error", err)

		deleteErr := s.compensate(ctx, result.ID)
		metrics.Compensated(deleteErr)
		if deleteErr != nil {
			s.logger.Error("failed to delete unpublished application", "id", result.ID, "error", deleteErr)
			return domain.ApplicationRead{}, errors.Join(err, deleteErr)
		}
		return domain.ApplicationRead{}, err
	}

	metrics.ApplicationCreated()
	s.logger.Info("application published", "id", result.ID, "topic", domain.ApplicationsTopic)
	return result, nil
}

func (s *ApplicationService) publish(ctx context.Context, app domain.ApplicationRead) error {
	body, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("failed to encode application event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	return broker.Publish(ctx, s.broker, domain.ApplicationsTopic, broker.Message{
		Key:  app.ID.String(),
		Body: body,
	})
}

// compensate runs detached from the request context so that a cancelled
// request still removes the row.
func (s *ApplicationService) compensate(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.compensateTimeout)
	defer cancel()
	return s.repository.DeleteByID(ctx, id)
}
