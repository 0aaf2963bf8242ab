package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mickeyAlem27/Super-backend/internal/core/domain"
	"github.com/mickeyAlem27/Super-backend/internal/core/port"
	"github.com/mickeyAlem27/Super-backend/internal/infra/logger"
	"github.com/mickeyAlem27/Super-backend/internal/infra/security"
	"github.com/mickeyAlem27/Super-backend/internal/repository"
)

const (
	defaultResetTTL      = time.Hour
	resetTokenByteLength = 32
)

// PasswordResetService coordinates password reset initiation. Delivery of the
// reset instructions is an external collaborator; the stored artifact is a
// hashed single-use token with a TTL.
type PasswordResetService struct {
	accounts port.AccountRepository
	store    port.ResetTokenStore
	notifier port.ResetNotifier
	events   port.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
	resetTTL time.Duration
}

// NewPasswordResetService constructs a PasswordResetService.
func NewPasswordResetService(accounts port.AccountRepository, store port.ResetTokenStore, notifier port.ResetNotifier, events port.EventPublisher, log *zap.Logger, resetTTL time.Duration) *PasswordResetService {
	if log == nil {
		log = zap.NewNop()
	}
	if resetTTL <= 0 {
		resetTTL = defaultResetTTL
	}

	return &PasswordResetService{
		accounts: accounts,
		store:    store,
		notifier: notifier,
		events:   events,
		logger:   log,
		now:      time.Now,
		resetTTL: resetTTL,
	}
}

// WithClock overrides the internal clock, used in tests.
func (s *PasswordResetService) WithClock(clock func() time.Time) *PasswordResetService {
	if clock != nil {
		s.now = clock
	}
	return s
}

// Request generates a reset token for the account matching email. Fails with
// ErrAccountNotFound when no non-deleted account matches.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return invalidInput("email is required")
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	rawToken, err := security.GenerateSecureToken(resetTokenByteLength)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.resetTTL)

	if s.store != nil {
		if err := s.store.Store(ctx, account.ID, security.HashToken(rawToken), s.resetTTL); err != nil {
			return fmt.Errorf("store reset token: %w", err)
		}
	}

	if s.events != nil {
		event := domain.PasswordResetRequestedEvent{
			EventID:           uuid.NewString(),
			AccountID:         account.ID,
			RequestID:         uuid.NewString(),
			RequestedAt:       now,
			MaskedDestination: logger.MaskEmail(account.Email),
			ExpiresAt:         expiresAt,
		}
		if err := s.events.PublishPasswordResetRequested(ctx, event); err != nil {
			s.logger.Warn("publish reset request event failed", zap.Error(err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyPasswordReset(ctx, account.Email, rawToken, expiresAt); err != nil {
			s.logger.Warn("reset notification failed", zap.Error(err))
		}
	}

	s.logger.Info("password reset requested",
		zap.String("account_id", account.ID),
		zap.String("email", logger.MaskEmail(account.Email)),
	)

	return nil
}
