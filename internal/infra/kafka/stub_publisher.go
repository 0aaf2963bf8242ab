package kafka

import (
	"context"

	"go.uber.org/zap"

	"github.com/mickeyAlem27/Super-backend/internal/core/domain"
)

// StubPublisher logs events instead of publishing them. Used when Kafka
// brokers are not configured.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a logging-only event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	p.logger.Debug("event skipped: account.registered", zap.String("account_id", event.AccountID))
	return nil
}

func (p *StubPublisher) PublishPasswordChanged(_ context.Context, event domain.PasswordChangedEvent) error {
	p.logger.Debug("event skipped: account.password.changed", zap.String("account_id", event.AccountID))
	return nil
}

func (p *StubPublisher) PublishPasswordResetRequested(_ context.Context, event domain.PasswordResetRequestedEvent) error {
	p.logger.Debug("event skipped: account.password.reset_requested", zap.String("account_id", event.AccountID))
	return nil
}

func (p *StubPublisher) PublishAccountSoftDeleted(_ context.Context, event domain.AccountSoftDeletedEvent) error {
	p.logger.Debug("event skipped: account.soft_deleted", zap.String("account_id", event.AccountID))
	return nil
}

func (p *StubPublisher) PublishAccountHardDeleted(_ context.Context, event domain.AccountHardDeletedEvent) error {
	p.logger.Debug("event skipped: account.hard_deleted", zap.String("account_id", event.AccountID))
	return nil
}
