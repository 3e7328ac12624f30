package kafka

import (
	"context"

	"go.uber.org/zap"

	"github.com/bikram73/Netflix-Clone/internal/core/domain"
	"github.com/bikram73/Netflix-Clone/internal/core/port"
	"github.com/bikram73/Netflix-Clone/internal/infra/logger"
)

// StubPublisher logs events instead of sending them to Kafka. Used when no brokers are configured.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(log *zap.Logger) *StubPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &StubPublisher{logger: log}
}

// PublishUserRegistered logs user.registered events.
func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	p.logger.Info("stub event published",
		zap.String("event_type", EventUserRegistered),
		zap.String("user_id", event.UserID),
		zap.String("email", logger.MaskEmail(event.Email)),
		zap.Time("timestamp", event.RegisteredAt.UTC()),
	)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
