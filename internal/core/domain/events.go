package domain

import "time"

// AccountRegisteredEvent represents the payload for account.registered messages.
type AccountRegisteredEvent struct {
	EventID      string
	AccountID    string
	Email        string
	PhoneNo      string
	RegisteredAt time.Time
	Metadata     map[string]any
}

// PasswordChangedEvent represents the payload for account.password.changed messages.
type PasswordChangedEvent struct {
	EventID   string
	AccountID string
	ChangedAt time.Time
	ChangedBy string
	Metadata  map[string]any
}

// PasswordResetRequestedEvent represents the payload for account.password.reset_requested messages.
type PasswordResetRequestedEvent struct {
	EventID           string
	AccountID         string
	RequestID         string
	RequestedAt       time.Time
	MaskedDestination string
	ExpiresAt         time.Time
	Metadata          map[string]any
}

// AccountSoftDeletedEvent represents the payload for account.soft_deleted messages.
type AccountSoftDeletedEvent struct {
	EventID   string
	AccountID string
	DeletedAt time.Time
	Metadata  map[string]any
}

// AccountHardDeletedEvent represents the payload for account.hard_deleted messages.
type AccountHardDeletedEvent struct {
	EventID   string
	AccountID string
	DeletedAt time.Time
	DeletedBy string
	Metadata  map[string]any
}
