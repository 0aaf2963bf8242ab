package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/mickeyAlem27/Super-backend/internal/core/domain"
	"github.com/mickeyAlem27/Super-backend/internal/repository"
)

func newAccountMock(t *testing.T) (pgxmock.PgxPoolIface, *AccountRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, NewAccountRepository(mock)
}

func accountRow(id string, otp any, deleted bool, at time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(accountColumns).AddRow(
		id, "Jane", "Doe", "+15550001", "jane@x.com", "digest-1", otp, false, deleted, at, at,
	)
}

func TestAccountRepository_Create(t *testing.T) {
	mock, repo := newAccountMock(t)

	now := time.Now().UTC()
	account := domain.Account{
		ID:             "acct-1",
		FirstName:      "Jane",
		LastName:       "Doe",
		PhoneNo:        "+15550001",
		Email:          "jane@x.com",
		PasswordDigest: "digest-1",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Empty OTP is stored as NULL.
	mock.ExpectExec(`INSERT INTO accounts`).
		WithArgs(
			account.ID,
			account.FirstName,
			account.LastName,
			account.PhoneNo,
			account.Email,
			account.PasswordDigest,
			nil,
			false,
			false,
			account.CreatedAt,
			account.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_Create_UniqueViolation(t *testing.T) {
	mock, repo := newAccountMock(t)

	mock.ExpectExec(`INSERT INTO accounts`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	err := repo.Create(context.Background(), domain.Account{ID: "acct-1", Email: "jane@x.com"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_GetByID_FiltersSoftDeleted(t *testing.T) {
	mock, repo := newAccountMock(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .* FROM accounts WHERE id = \$1 AND is_deleted = \$2`).
		WithArgs("acct-1", false).
		WillReturnRows(accountRow("acct-1", nil, false, now))

	account, err := repo.GetByID(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if account.ID != "acct-1" {
		t.Fatalf("unexpected account id: %s", account.ID)
	}
	if account.OTP != "" {
		t.Fatalf("NULL otp must scan to empty string, got %q", account.OTP)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_GetByID_NotFound(t *testing.T) {
	mock, repo := newAccountMock(t)

	mock.ExpectQuery(`SELECT .* FROM accounts`).
		WithArgs("missing", false).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	mock, repo := newAccountMock(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .* FROM accounts WHERE email = \$1 AND is_deleted = \$2`).
		WithArgs("jane@x.com", false).
		WillReturnRows(accountRow("acct-1", "483920", false, now))

	account, err := repo.GetByEmail(context.Background(), "jane@x.com")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if account.OTP != "483920" {
		t.Fatalf("otp not scanned: %q", account.OTP)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_FindByEmailOrPhone(t *testing.T) {
	mock, repo := newAccountMock(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .* FROM accounts WHERE \(email = \$1 OR phone_no = \$2\) AND is_deleted = \$3`).
		WithArgs("jane@x.com", "+15550001", false).
		WillReturnRows(accountRow("acct-1", nil, false, now))

	account, err := repo.FindByEmailOrPhone(context.Background(), "jane@x.com", "+15550001")
	if err != nil {
		t.Fatalf("FindByEmailOrPhone returned error: %v", err)
	}
	if account.ID != "acct-1" {
		t.Fatalf("unexpected account id: %s", account.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_UpdateByID(t *testing.T) {
	mock, repo := newAccountMock(t)

	now := time.Now().UTC()
	firstName := "Janet"

	mock.ExpectQuery(`UPDATE accounts SET updated_at = \$1, first_name = \$2 WHERE id = \$3 AND is_deleted = \$4 RETURNING`).
		WithArgs(pgxmock.AnyArg(), firstName, "acct-1", false).
		WillReturnRows(accountRow("acct-1", nil, false, now))

	account, err := repo.UpdateByID(context.Background(), "acct-1", domain.AccountUpdate{FirstName: &firstName})
	if err != nil {
		t.Fatalf("UpdateByID returned error: %v", err)
	}
	if account.ID != "acct-1" {
		t.Fatalf("unexpected account id: %s", account.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_UpdateByID_DuplicatePhone(t *testing.T) {
	mock, repo := newAccountMock(t)

	phone := "+15550009"
	mock.ExpectQuery(`UPDATE accounts SET`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	if _, err := repo.UpdateByID(context.Background(), "acct-1", domain.AccountUpdate{PhoneNo: &phone}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_UpdatePassword(t *testing.T) {
	mock, repo := newAccountMock(t)

	changedAt := time.Now().UTC()
	mock.ExpectExec(`UPDATE accounts SET password_digest = \$1, updated_at = \$2 WHERE id = \$3 AND is_deleted = \$4`).
		WithArgs("digest-2", changedAt, "acct-1", false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.UpdatePassword(context.Background(), "acct-1", "digest-2", changedAt); err != nil {
		t.Fatalf("UpdatePassword returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_UpdatePassword_NotFound(t *testing.T) {
	mock, repo := newAccountMock(t)

	mock.ExpectExec(`UPDATE accounts SET password_digest`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdatePassword(context.Background(), "missing", "digest-2", time.Now().UTC())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for zero rows, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_SoftDelete(t *testing.T) {
	mock, repo := newAccountMock(t)

	mock.ExpectExec(`UPDATE accounts SET is_deleted = \$1, updated_at = \$2 WHERE id = \$3 AND is_deleted = \$4`).
		WithArgs(true, pgxmock.AnyArg(), "acct-1", false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.SoftDelete(context.Background(), "acct-1"); err != nil {
		t.Fatalf("SoftDelete returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_SoftDelete_AlreadyDeleted(t *testing.T) {
	mock, repo := newAccountMock(t)

	// The is_deleted = false guard makes a repeat soft delete touch zero rows.
	mock.ExpectExec(`UPDATE accounts SET is_deleted`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.SoftDelete(context.Background(), "acct-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_HardDelete_ReachesSoftDeletedRows(t *testing.T) {
	mock, repo := newAccountMock(t)

	now := time.Now().UTC()

	// No is_deleted filter: hard delete removes retained soft-deleted rows too.
	mock.ExpectQuery(`DELETE FROM accounts WHERE id = \$1 RETURNING`).
		WithArgs("acct-1").
		WillReturnRows(accountRow("acct-1", nil, true, now))

	account, err := repo.HardDelete(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("HardDelete returned error: %v", err)
	}
	if !account.IsDeleted {
		t.Fatal("expected the removed soft-deleted row to be returned")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_HardDelete_NotFound(t *testing.T) {
	mock, repo := newAccountMock(t)

	mock.ExpectQuery(`DELETE FROM accounts`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.HardDelete(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
