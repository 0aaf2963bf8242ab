package domain

import "time"

// Account mirrors the persisted representation in the accounts table.
type Account struct {
	ID             string
	FirstName      string
	LastName       string
	PhoneNo        string
	Email          string
	PasswordDigest string
	OTP            string
	Verified       bool
	IsDeleted      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Sanitized returns a copy of the account safe for outward-facing responses.
func (a Account) Sanitized() Account {
	a.PasswordDigest = ""
	return a
}

// AccountUpdate carries a partial profile mutation. Password and email have no
// representation here: those fields change only through their dedicated flows.
type AccountUpdate struct {
	FirstName *string
	LastName  *string
	PhoneNo   *string
	OTP       *string
	Verified  *bool
}

// IsEmpty reports whether the update would change nothing.
func (u AccountUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.PhoneNo == nil &&
		u.OTP == nil && u.Verified == nil
}
