package notification

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mickeyAlem27/Super-backend/internal/core/port"
	"github.com/mickeyAlem27/Super-backend/internal/infra/logger"
)

// LoggingResetNotifier logs reset artifacts instead of delivering them.
// Stands in until a mail or SMS dispatcher is wired up.
type LoggingResetNotifier struct {
	logger *zap.Logger
}

// NewLoggingResetNotifier constructs a logging-only reset notifier.
func NewLoggingResetNotifier(log *zap.Logger) *LoggingResetNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingResetNotifier{logger: log}
}

// NotifyPasswordReset records the reset artifact. The raw token is not logged.
func (n *LoggingResetNotifier) NotifyPasswordReset(_ context.Context, email, token string, expiresAt time.Time) error {
	n.logger.Info("password reset requested",
		zap.String("email", logger.MaskEmail(email)),
		zap.Int("token_length", len(token)),
		zap.Time("expires_at", expiresAt),
	)
	return nil
}

var _ port.ResetNotifier = (*LoggingResetNotifier)(nil)
