package port

import (
	"context"
	"time"
)

// ResetNotifier delivers password reset instructions to the account holder.
// Actual delivery (email, SMS) is an external collaborator; the default
// implementation only logs the artifact.
type ResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, email, token string, expiresAt time.Time) error
}
