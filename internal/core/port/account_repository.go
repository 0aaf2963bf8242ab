package port

import (
	"context"
	"time"

	"github.com/mickeyAlem27/Super-backend/internal/core/domain"
)

// AccountRepository exposes persistence behavior for accounts.
//
// Read operations exclude soft-deleted rows unless documented otherwise; a
// soft-deleted account stays in the store until hard deletion.
type AccountRepository interface {
	// Create inserts a new account. Returns repository.ErrDuplicate when the
	// email or phone number unique constraint is violated.
	Create(ctx context.Context, account domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// FindByEmailOrPhone matches either contact field. Used as the
	// registration pre-check; the unique constraint remains the source of truth.
	FindByEmailOrPhone(ctx context.Context, email, phoneNo string) (*domain.Account, error)
	// UpdateByID applies a partial profile mutation and returns the updated row.
	UpdateByID(ctx context.Context, id string, update domain.AccountUpdate) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id string, digest string, changedAt time.Time) error
	SoftDelete(ctx context.Context, id string) error
	// HardDelete removes the row permanently, soft-deleted rows included, and
	// returns the removed record.
	HardDelete(ctx context.Context, id string) (*domain.Account, error)
}
