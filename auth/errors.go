package auth

import "errors"

// Storage errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// Provisioning errors. ErrCouldNotAddUser aborts the sign-in.
var (
	ErrCouldNotAddUser = errors.New("could not add user")
)

// Token errors.
var (
	ErrTokenNotFound = errors.New("token not found")
)

// OAuth errors.
var (
	ErrInvalidState    = errors.New("invalid or expired oauth state")
	ErrStateNotFound   = errors.New("oauth state not found or expired")
	ErrInvalidCode     = errors.New("invalid authorization code")
	ErrNoPrimaryEmail  = errors.New("no primary email from provider")
	ErrUnverifiedEmail = errors.New("email not verified by provider")
)
