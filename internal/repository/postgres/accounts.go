package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mickeyAlem27/Super-backend/internal/core/domain"
	"github.com/mickeyAlem27/Super-backend/internal/core/port"
	"github.com/mickeyAlem27/Super-backend/internal/repository"
)

const uniqueViolationCode = "23505"

type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var accountColumns = []string{
	"id",
	"first_name",
	"last_name",
	"phone_no",
	"email",
	"password_digest",
	"otp",
	"verified",
	"is_deleted",
	"created_at",
	"updated_at",
}

// AccountRepository implements port.AccountRepository using PostgreSQL.
type AccountRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewAccountRepository wires an account repository backed by any executor that
// satisfies pgExecutor.
func NewAccountRepository(exec pgExecutor) *AccountRepository {
	repo := &AccountRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *AccountRepository) WithTx(tx pgx.Tx) *AccountRepository {
	if tx == nil {
		return r
	}
	return &AccountRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new account row. A unique violation on email or phone_no
// maps to repository.ErrDuplicate.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	var otpValue any
	if account.OTP != "" {
		otpValue = account.OTP
	}

	stmt, args, err := r.builder.Insert("accounts").
		Columns(accountColumns...).
		Values(
			account.ID,
			account.FirstName,
			account.LastName,
			account.PhoneNo,
			account.Email,
			account.PasswordDigest,
			otpValue,
			account.Verified,
			account.IsDeleted,
			account.CreatedAt,
			account.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by identifier, excluding soft-deleted rows.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	stmt, args, err := r.builder.
		Select(accountColumns...).
		From("accounts").
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account sql: %w", err)
	}

	return r.scanOne(r.exec.QueryRow(ctx, stmt, args...))
}

// GetByEmail retrieves an account by email, excluding soft-deleted rows.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	stmt, args, err := r.builder.
		Select(accountColumns...).
		From("accounts").
		Where(squirrel.Eq{"email": email, "is_deleted": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account by email sql: %w", err)
	}

	return r.scanOne(r.exec.QueryRow(ctx, stmt, args...))
}

// FindByEmailOrPhone retrieves an account matching either contact field,
// excluding soft-deleted rows.
func (r *AccountRepository) FindByEmailOrPhone(ctx context.Context, email, phoneNo string) (*domain.Account, error) {
	stmt, args, err := r.builder.
		Select(accountColumns...).
		From("accounts").
		Where(squirrel.Or{
			squirrel.Eq{"email": email},
			squirrel.Eq{"phone_no": phoneNo},
		}).
		Where(squirrel.Eq{"is_deleted": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account by contact sql: %w", err)
	}

	return r.scanOne(r.exec.QueryRow(ctx, stmt, args...))
}

// UpdateByID applies a partial profile mutation and returns the updated row.
func (r *AccountRepository) UpdateByID(ctx context.Context, id string, update domain.AccountUpdate) (*domain.Account, error) {
	if update.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	query := r.builder.Update("accounts").
		Set("updated_at", time.Now().UTC())

	if update.FirstName != nil {
		query = query.Set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		query = query.Set("last_name", *update.LastName)
	}
	if update.PhoneNo != nil {
		query = query.Set("phone_no", *update.PhoneNo)
	}
	if update.OTP != nil {
		var otpValue any
		if *update.OTP != "" {
			otpValue = *update.OTP
		}
		query = query.Set("otp", otpValue)
	}
	if update.Verified != nil {
		query = query.Set("verified", *update.Verified)
	}

	stmt, args, err := query.
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		Suffix(fmt.Sprintf("RETURNING %s", columnList())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update account sql: %w", err)
	}

	account, err := r.scanOne(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}

	return account, nil
}

// UpdatePassword replaces the stored credential digest.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id string, digest string, changedAt time.Time) error {
	stmt, args, err := r.builder.Update("accounts").
		Set("password_digest", digest).
		Set("updated_at", changedAt).
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update password sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// SoftDelete marks an account as deleted without removing the row.
func (r *AccountRepository) SoftDelete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Update("accounts").
		Set("is_deleted", true).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build soft delete account sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("soft delete account: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// HardDelete removes the row permanently, soft-deleted rows included, and
// returns the removed record.
func (r *AccountRepository) HardDelete(ctx context.Context, id string) (*domain.Account, error) {
	stmt, args, err := r.builder.Delete("accounts").
		Where(squirrel.Eq{"id": id}).
		Suffix(fmt.Sprintf("RETURNING %s", columnList())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build hard delete account sql: %w", err)
	}

	return r.scanOne(r.exec.QueryRow(ctx, stmt, args...))
}

func (r *AccountRepository) scanOne(row pgx.Row) (*domain.Account, error) {
	var (
		account domain.Account
		otp     sql.NullString
	)

	if err := row.Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.PhoneNo,
		&account.Email,
		&account.PasswordDigest,
		&otp,
		&account.Verified,
		&account.IsDeleted,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	if otp.Valid {
		account.OTP = otp.String
	}

	return &account, nil
}

func columnList() string {
	out := accountColumns[0]
	for _, col := range accountColumns[1:] {
		out += ", " + col
	}
	return out
}

var _ port.AccountRepository = (*AccountRepository)(nil)
