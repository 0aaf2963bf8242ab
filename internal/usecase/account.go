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

var (
	// ErrAccountConflict indicates the email or phone number is already taken.
	ErrAccountConflict = errors.New("account already exists")
	// ErrInvalidCredentials indicates the email/password pair does not match.
	// Unknown email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountNotFound indicates the account is absent or soft-deleted.
	ErrAccountNotFound = errors.New("account not found")
)

// AccountService orchestrates registration, authentication, profile mutation,
// and deletion of accounts.
type AccountService struct {
	accounts port.AccountRepository
	hasher   port.PasswordHasher
	tokens   *security.TokenService
	events   port.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewAccountService constructs an AccountService.
func NewAccountService(accounts port.AccountRepository, hasher port.PasswordHasher, tokens *security.TokenService, events port.EventPublisher, log *zap.Logger) *AccountService {
	if log == nil {
		log = zap.NewNop()
	}

	return &AccountService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		events:   events,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock overrides the internal clock, used in tests.
func (s *AccountService) WithClock(clock func() time.Time) *AccountService {
	if clock != nil {
		s.now = clock
	}
	return s
}

// RegisterInput carries the validated registration payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	PhoneNo   string
	Email     string
	Password  string
	OTP       string
}

// Register creates a new account. Returns ErrAccountConflict when the email or
// phone number belongs to an existing non-deleted account.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	phoneNo := strings.TrimSpace(input.PhoneNo)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	switch {
	case firstName == "":
		return nil, invalidInput("first name is required")
	case lastName == "":
		return nil, invalidInput("last name is required")
	case phoneNo == "":
		return nil, invalidInput("phone number is required")
	case email == "":
		return nil, invalidInput("email is required")
	case strings.TrimSpace(input.Password) == "":
		return nil, invalidInput("password is required")
	}

	// Pre-check is an optimization only; the unique constraint on insert is
	// the source of truth for concurrent registrations.
	if _, err := s.accounts.FindByEmailOrPhone(ctx, email, phoneNo); err == nil {
		return nil, ErrAccountConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	account := domain.Account{
		ID:             uuid.NewString(),
		FirstName:      firstName,
		LastName:       lastName,
		PhoneNo:        phoneNo,
		Email:          email,
		PasswordDigest: digest,
		OTP:            strings.TrimSpace(input.OTP),
		Verified:       false,
		IsDeleted:      false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAccountConflict
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.publishRegistered(ctx, account)

	s.logger.Info("account registered",
		zap.String("account_id", account.ID),
		zap.String("email", logger.MaskEmail(account.Email)),
	)

	sanitized := account.Sanitized()
	return &sanitized, nil
}

// Authenticate verifies the email/password pair and issues a bearer token.
// Unknown email and digest mismatch both fail with ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (string, *domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup account: %w", err)
	}

	ok, err := s.hasher.Verify(password, account.PasswordDigest)
	if err != nil {
		return "", nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("account authenticated", zap.String("account_id", account.ID))

	sanitized := account.Sanitized()
	return token, &sanitized, nil
}

// GetProfile returns the sanitized account for the authenticated id. A
// soft-deleted account fails with ErrAccountNotFound: its own token stops
// working for profile access.
func (s *AccountService) GetProfile(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	sanitized := account.Sanitized()
	return &sanitized, nil
}

// UpdateProfile applies a partial profile mutation. Password and email are not
// representable in AccountUpdate, so attempts to change them through this path
// are dropped before reaching the store.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, update domain.AccountUpdate) (*domain.Account, error) {
	account, err := s.accounts.UpdateByID(ctx, accountID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAccountConflict
		}
		return nil, fmt.Errorf("update account: %w", err)
	}

	sanitized := account.Sanitized()
	return &sanitized, nil
}

// ChangePassword replaces the stored digest after verifying the current
// password. Previously issued tokens remain valid until natural expiry.
func (s *AccountService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return invalidInput("new password is required")
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	ok, err := s.hasher.Verify(currentPassword, account.PasswordDigest)
	if err != nil {
		return fmt.Errorf("verify current password: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	changedAt := s.now().UTC()
	if err := s.accounts.UpdatePassword(ctx, accountID, digest, changedAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}

	s.publishPasswordChanged(ctx, account.ID, changedAt, account.ID)

	s.logger.Info("password changed", zap.String("account_id", account.ID))

	return nil
}

// SoftDelete marks the account deleted while retaining the record.
func (s *AccountService) SoftDelete(ctx context.Context, accountID string) error {
	if err := s.accounts.SoftDelete(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("soft delete account: %w", err)
	}

	deletedAt := s.now().UTC()
	if s.events != nil {
		event := domain.AccountSoftDeletedEvent{
			EventID:   uuid.NewString(),
			AccountID: accountID,
			DeletedAt: deletedAt,
		}
		if err := s.events.PublishAccountSoftDeleted(ctx, event); err != nil {
			s.logger.Warn("publish soft delete event failed", zap.Error(err))
		}
	}

	s.logger.Info("account soft deleted", zap.String("account_id", accountID))

	return nil
}

// HardDelete permanently removes the target account and returns the removed
// record. Authorization of actingID against targetID belongs to the calling
// layer.
func (s *AccountService) HardDelete(ctx context.Context, targetID, actingID string) (*domain.Account, error) {
	account, err := s.accounts.HardDelete(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("hard delete account: %w", err)
	}

	deletedAt := s.now().UTC()
	if s.events != nil {
		event := domain.AccountHardDeletedEvent{
			EventID:   uuid.NewString(),
			AccountID: targetID,
			DeletedAt: deletedAt,
			DeletedBy: actingID,
		}
		if err := s.events.PublishAccountHardDeleted(ctx, event); err != nil {
			s.logger.Warn("publish hard delete event failed", zap.Error(err))
		}
	}

	s.logger.Info("account hard deleted",
		zap.String("target_id", targetID),
		zap.String("acting_id", actingID),
	)

	sanitized := account.Sanitized()
	return &sanitized, nil
}

// Logout is a stateless acknowledgment. No server-side token invalidation
// occurs; tokens stay valid until natural expiry.
func (s *AccountService) Logout(_ context.Context, accountID string) {
	s.logger.Info("account logged out", zap.String("account_id", accountID))
}

func (s *AccountService) publishRegistered(ctx context.Context, account domain.Account) {
	if s.events == nil {
		return
	}

	event := domain.AccountRegisteredEvent{
		EventID:      uuid.NewString(),
		AccountID:    account.ID,
		Email:        account.Email,
		PhoneNo:      account.PhoneNo,
		RegisteredAt: account.CreatedAt,
	}
	if err := s.events.PublishAccountRegistered(ctx, event); err != nil {
		s.logger.Warn("publish registration event failed", zap.Error(err))
	}
}

func (s *AccountService) publishPasswordChanged(ctx context.Context, accountID string, changedAt time.Time, changedBy string) {
	if s.events == nil {
		return
	}

	event := domain.PasswordChangedEvent{
		EventID:   uuid.NewString(),
		AccountID: accountID,
		ChangedAt: changedAt,
		ChangedBy: changedBy,
	}
	if err := s.events.PublishPasswordChanged(ctx, event); err != nil {
		s.logger.Warn("publish password change event failed", zap.Error(err))
	}
}
