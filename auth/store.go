package auth

import (
	"context"
	"time"
)

// UserStore defines the user repository boundary. It is the sole authority on
// whether an identity is new.
type UserStore interface {
	// FindByEmail returns the user record for the email, or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByEmailAndID returns the record matching both the email and the
	// provider subject id, or ErrUserNotFound.
	FindByEmailAndID(ctx context.Context, email, id string) (*User, error)

	// Insert stores a new user record. It returns ErrUserExists when a record
	// with the same email already exists, and ErrCouldNotAddUser when the
	// write reports nothing inserted.
	Insert(ctx context.Context, u *User) error
}

// StateStore persists OAuth state tokens for CSRF protection.
type StateStore interface {
	// StoreState saves a state token until its TTL elapses.
	StoreState(ctx context.Context, state string, ttl time.Duration) error

	// ConsumeState atomically checks that the state exists and removes it.
	// Returns ErrStateNotFound if it does not exist or was already consumed.
	ConsumeState(ctx context.Context, state string) error
}
