package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mickeyAlem27/Super-backend/internal/core/domain"
	"github.com/mickeyAlem27/Super-backend/internal/repository"
)

// memoryAccountRepo is an in-memory AccountRepository stub. Uniqueness spans
// every stored row, soft-deleted included, matching the store's unique index.
type memoryAccountRepo struct {
	accounts map[string]domain.Account
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{accounts: make(map[string]domain.Account)}
}

func (r *memoryAccountRepo) Create(_ context.Context, account domain.Account) error {
	for _, existing := range r.accounts {
		if existing.Email == account.Email || existing.PhoneNo == account.PhoneNo {
			return repository.ErrDuplicate
		}
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *memoryAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok || account.IsDeleted {
		return nil, repository.ErrNotFound
	}
	copied := account
	return &copied, nil
}

func (r *memoryAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email && !account.IsDeleted {
			copied := account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryAccountRepo) FindByEmailOrPhone(_ context.Context, email, phoneNo string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.IsDeleted {
			continue
		}
		if account.Email == email || account.PhoneNo == phoneNo {
			copied := account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryAccountRepo) UpdateByID(_ context.Context, id string, update domain.AccountUpdate) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok || account.IsDeleted {
		return nil, repository.ErrNotFound
	}

	if update.FirstName != nil {
		account.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		account.LastName = *update.LastName
	}
	if update.PhoneNo != nil {
		account.PhoneNo = *update.PhoneNo
	}
	if update.OTP != nil {
		account.OTP = *update.OTP
	}
	if update.Verified != nil {
		account.Verified = *update.Verified
	}
	account.UpdatedAt = time.Now().UTC()

	r.accounts[id] = account
	copied := account
	return &copied, nil
}

func (r *memoryAccountRepo) UpdatePassword(_ context.Context, id string, digest string, changedAt time.Time) error {
	account, ok := r.accounts[id]
	if !ok || account.IsDeleted {
		return repository.ErrNotFound
	}
	account.PasswordDigest = digest
	account.UpdatedAt = changedAt
	r.accounts[id] = account
	return nil
}

func (r *memoryAccountRepo) SoftDelete(_ context.Context, id string) error {
	account, ok := r.accounts[id]
	if !ok || account.IsDeleted {
		return repository.ErrNotFound
	}
	account.IsDeleted = true
	r.accounts[id] = account
	return nil
}

func (r *memoryAccountRepo) HardDelete(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.accounts, id)
	copied := account
	return &copied, nil
}

func accountUpdate(firstName, lastName, phoneNo *string) domain.AccountUpdate {
	return domain.AccountUpdate{FirstName: firstName, LastName: lastName, PhoneNo: phoneNo}
}

// stubHasher keeps tests deterministic and fast; digests are reversible
// markers, not real hashes.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	return "digest:" + password, nil
}

func (stubHasher) Verify(password, encoded string) (bool, error) {
	return strings.TrimPrefix(encoded, "digest:") == password, nil
}

// recordingPublisher captures published event types in order.
type recordingPublisher struct {
	published []string
}

func (p *recordingPublisher) PublishAccountRegistered(context.Context, domain.AccountRegisteredEvent) error {
	p.published = append(p.published, "account.registered")
	return nil
}

func (p *recordingPublisher) PublishPasswordChanged(context.Context, domain.PasswordChangedEvent) error {
	p.published = append(p.published, "account.password.changed")
	return nil
}

func (p *recordingPublisher) PublishPasswordResetRequested(context.Context, domain.PasswordResetRequestedEvent) error {
	p.published = append(p.published, "account.password.reset_requested")
	return nil
}

func (p *recordingPublisher) PublishAccountSoftDeleted(context.Context, domain.AccountSoftDeletedEvent) error {
	p.published = append(p.published, "account.soft_deleted")
	return nil
}

func (p *recordingPublisher) PublishAccountHardDeleted(context.Context, domain.AccountHardDeletedEvent) error {
	p.published = append(p.published, "account.hard_deleted")
	return nil
}

// memoryResetTokenStore records stored reset tokens keyed by hash.
type memoryResetTokenStore struct {
	tokens map[string]string
	ttls   map[string]time.Duration
}

func newMemoryResetTokenStore() *memoryResetTokenStore {
	return &memoryResetTokenStore{
		tokens: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (s *memoryResetTokenStore) Store(_ context.Context, accountID, tokenHash string, ttl time.Duration) error {
	s.tokens[tokenHash] = accountID
	s.ttls[tokenHash] = ttl
	return nil
}

func (s *memoryResetTokenStore) Lookup(_ context.Context, tokenHash string) (string, error) {
	accountID, ok := s.tokens[tokenHash]
	if !ok {
		return "", repository.ErrNotFound
	}
	return accountID, nil
}

func (s *memoryResetTokenStore) Delete(_ context.Context, tokenHash string) error {
	if _, ok := s.tokens[tokenHash]; !ok {
		return repository.ErrNotFound
	}
	delete(s.tokens, tokenHash)
	return nil
}

// recordingNotifier captures the last reset artifact handed to it.
type recordingNotifier struct {
	email     string
	token     string
	expiresAt time.Time
}

func (n *recordingNotifier) NotifyPasswordReset(_ context.Context, email, token string, expiresAt time.Time) error {
	n.email = email
	n.token = token
	n.expiresAt = expiresAt
	return nil
}
