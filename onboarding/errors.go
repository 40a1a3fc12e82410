package onboarding

import "errors"

var (
	// ErrVerificationMismatch means the verified token belongs to a different
	// account than the signed-in user. User-visible, re-enterable.
	ErrVerificationMismatch = errors.New("entered token does not belong to this account")

	// ErrTokenRejected means the verification API rejected the token itself.
	// User-visible, re-enterable.
	ErrTokenRejected = errors.New("verification api rejected the token")

	// ErrVerificationUnavailable covers network failures and timeouts talking
	// to the verification API. User-visible, re-enterable.
	ErrVerificationUnavailable = errors.New("verification service unavailable")

	// ErrPersistFailed means the onboarding write failed after successful
	// verification. No state transition happened; the user may retry.
	ErrPersistFailed = errors.New("could not save onboarding data")
)
