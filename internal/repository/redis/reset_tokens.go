package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/mickeyAlem27/Super-backend/internal/core/port"
	"github.com/mickeyAlem27/Super-backend/internal/repository"
)

const defaultResetTokenPrefix = "reset_token"

// ResetTokenStore persists single-use password reset token hashes in Redis.
// Keys carry the hashed token, never the raw value, so a Redis dump cannot be
// replayed against the reset endpoint.
type ResetTokenStore struct {
	client *red.Client
	prefix string
}

// NewResetTokenStore constructs a reset token store with the provided Redis
// client and key prefix.
func NewResetTokenStore(client *red.Client, keyPrefix string) *ResetTokenStore {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultResetTokenPrefix
	}

	return &ResetTokenStore{
		client: client,
		prefix: prefix,
	}
}

// Store persists a token hash mapped to the owning account id with the
// supplied TTL. Expiry is enforced by Redis.
func (s *ResetTokenStore) Store(ctx context.Context, accountID, tokenHash string, ttl time.Duration) error {
	accountID = strings.TrimSpace(accountID)
	tokenHash = strings.TrimSpace(tokenHash)

	switch {
	case accountID == "":
		return errors.New("account id is required")
	case tokenHash == "":
		return errors.New("token hash is required")
	case ttl <= 0:
		return errors.New("ttl must be positive")
	}

	if err := s.client.Set(ctx, s.key(tokenHash), accountID, ttl).Err(); err != nil {
		return fmt.Errorf("redis store reset token: %w", err)
	}

	return nil
}

// Lookup resolves a token hash to the owning account id. Returns
// repository.ErrNotFound when the token is absent or expired.
func (s *ResetTokenStore) Lookup(ctx context.Context, tokenHash string) (string, error) {
	tokenHash = strings.TrimSpace(tokenHash)
	if tokenHash == "" {
		return "", errors.New("token hash is required")
	}

	accountID, err := s.client.Get(ctx, s.key(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, red.Nil) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("redis lookup reset token: %w", err)
	}

	return accountID, nil
}

// Delete removes the token entry, enforcing single-use semantics.
func (s *ResetTokenStore) Delete(ctx context.Context, tokenHash string) error {
	tokenHash = strings.TrimSpace(tokenHash)
	if tokenHash == "" {
		return errors.New("token hash is required")
	}

	deleted, err := s.client.Del(ctx, s.key(tokenHash)).Result()
	if err != nil {
		return fmt.Errorf("redis delete reset token: %w", err)
	}
	if deleted == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (s *ResetTokenStore) key(tokenHash string) string {
	return fmt.Sprintf("%s:%s", s.prefix, tokenHash)
}

var _ port.ResetTokenStore = (*ResetTokenStore)(nil)
