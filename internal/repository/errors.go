package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist or is soft-deleted.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a uniqueness constraint was violated on insert.
	ErrDuplicate = errors.New("repository: duplicate key")
)
