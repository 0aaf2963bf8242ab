package port

import (
	"context"

	"github.com/mickeyAlem27/Super-backend/internal/core/domain"
)

// EventPublisher publishes account lifecycle events to the message bus.
type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error
	PublishPasswordChanged(ctx context.Context, event domain.PasswordChangedEvent) error
	PublishPasswordResetRequested(ctx context.Context, event domain.PasswordResetRequestedEvent) error
	PublishAccountSoftDeleted(ctx context.Context, event domain.AccountSoftDeletedEvent) error
	PublishAccountHardDeleted(ctx context.Context, event domain.AccountHardDeletedEvent) error
}
