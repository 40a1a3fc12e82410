package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yuvi55/unigrow/pkg/logger"
)

// Submission is the user-entered onboarding form data.
type Submission struct {
	Major       string `json:"major"`
	JoiningTerm string `json:"joiningTerm"`
	CanvasToken string `json:"canvasToken"`
}

// Verification is the profile returned by the course-verification API for a
// valid token.
type Verification struct {
	PrimaryEmail string   `json:"primary_email"`
	AvatarURL    string   `json:"avatar_url"`
	Courses      []string `json:"courses"`
}

// Update is the onboarding data persisted against the user record in a
// single atomic write that also transitions the user to onboarded.
type Update struct {
	Major          string
	JoiningTerm    string
	EncryptedToken string
	AvatarURL      string
	Courses        []string
	GraduationDate string
}

// Verifier validates an encrypted token against the course-verification API.
type Verifier interface {
	Verify(ctx context.Context, encryptedToken, userID string) (*Verification, error)
}

// UserStore persists the onboarding answers and the onboarded transition.
type UserStore interface {
	CompleteOnboarding(ctx context.Context, userID string, upd Update) error
}

// Encryptor encrypts the raw token before transmission.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
}

// Service runs the onboarding submission flow.
type Service struct {
	store    UserStore
	verifier Verifier
	enc      Encryptor
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates an onboarding service.
func NewService(store UserStore, verifier Verifier, enc Encryptor, opts ...Option) *Service {
	s := &Service{
		store:    store,
		verifier: verifier,
		enc:      enc,
		logger:   logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit verifies the Canvas token and persists the onboarding answers.
//
// The raw token never leaves the process: it is encrypted first and the
// ciphertext is what travels to the verification API and what is stored. The
// email comparison is the authorization check that the token belongs to the
// signed-in user rather than merely being valid for someone else. Persistence
// is the final step, so a failure anywhere earlier leaves the record
// untouched and `isOnboarded` false.
func (s *Service) Submit(ctx context.Context, userID, email string, sub Submission) error {
	encrypted, err := s.enc.Encrypt(sub.CanvasToken)
	if err != nil {
		return fmt.Errorf("encrypt canvas token: %w", err)
	}

	verification, err := s.verifier.Verify(ctx, encrypted, userID)
	switch {
	case err == nil:
	case errors.Is(err, ErrTokenRejected), errors.Is(err, ErrVerificationUnavailable):
		return err
	default:
		return errors.Join(ErrVerificationUnavailable, err)
	}

	if verification == nil || verification.PrimaryEmail != email {
		return ErrVerificationMismatch
	}

	upd := Update{
		Major:          sub.Major,
		JoiningTerm:    sub.JoiningTerm,
		EncryptedToken: encrypted,
		AvatarURL:      verification.AvatarURL,
		Courses:        verification.Courses,
		GraduationDate: "NA",
	}

	if err := s.store.CompleteOnboarding(ctx, userID, upd); err != nil {
		return errors.Join(ErrPersistFailed, err)
	}

	s.logger.InfoContext(ctx, "user onboarded",
		logger.UserID(userID),
		slog.String("major", sub.Major),
		slog.String("joining_term", sub.JoiningTerm),
		logger.Component("onboarding"),
	)

	return nil
}
