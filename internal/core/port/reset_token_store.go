package port

import (
	"context"
	"time"
)

// ResetTokenStore persists single-use password reset token hashes with a TTL.
// Lookup and Delete carry the consume-token contract for a reset-completion
// endpoint; only Store is reached by the reset-request flow today.
type ResetTokenStore interface {
	Store(ctx context.Context, accountID, tokenHash string, ttl time.Duration) error
	// Lookup resolves a token hash to the owning account id. Returns
	// repository.ErrNotFound when the token is absent or expired.
	Lookup(ctx context.Context, tokenHash string) (string, error)
	Delete(ctx context.Context, tokenHash string) error
}
