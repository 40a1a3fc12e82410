package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/yuvi55/unigrow/pkg/logger"
)

// DomainPolicy classifies identities by email domain and carries the default
// field values for guest records. The suffix match gates the security
// relevant isOnboarded default, so its semantics must not change.
type DomainPolicy struct {
	InstitutionalSuffix string   `env:"INSTITUTIONAL_EMAIL_SUFFIX" envDefault:"@stevens.edu"`
	GuestBio            string   `env:"GUEST_DEFAULT_BIO" envDefault:"Guest User"`
	GuestMajor          string   `env:"GUEST_DEFAULT_MAJOR" envDefault:"Mechanical Engineering"`
	GuestCourses        []string `env:"GUEST_DEFAULT_COURSES" envSeparator:"," envDefault:"CPE 590,CS 561,CS 583,CS 513,CS 545,FE 511,FE 520,CS 541,CS 562,FE 513"`
}

// IsInstitutional reports whether the email belongs to the trusted
// organizational domain, exempting it from onboarding.
func (p DomainPolicy) IsInstitutional(email string) bool {
	return strings.HasSuffix(email, p.InstitutionalSuffix)
}

// Provisioner decides per sign-in whether to create a user record and what
// default fields it gets, and emits the SessionData bundle.
type Provisioner struct {
	store  UserStore
	policy DomainPolicy
	logger *slog.Logger
	now    func() time.Time
}

// ProvisionerOption configures a Provisioner.
type ProvisionerOption func(*Provisioner)

// WithProvisionerLogger sets a custom logger for the provisioner.
func WithProvisionerLogger(l *slog.Logger) ProvisionerOption {
	return func(p *Provisioner) { p.logger = l }
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) ProvisionerOption {
	return func(p *Provisioner) { p.now = now }
}

// NewProvisioner creates an account provisioner.
func NewProvisioner(store UserStore, policy DomainPolicy, opts ...ProvisionerOption) *Provisioner {
	p := &Provisioner{
		store:  store,
		policy: policy,
		logger: logger.NewDiscard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SignIn looks up the user record by email, creating it with domain-dependent
// defaults when absent, and returns the SessionData bundle for token
// issuance. Unlike the normalizer's best-effort lookup, any error here aborts
// the sign-in. Re-running sign-in for an existing email never duplicates the
// record or resets its onboarding state.
func (p *Provisioner) SignIn(ctx context.Context, profile Profile, creds Credentials) (SessionData, error) {
	user, err := p.store.FindByEmail(ctx, profile.Email)
	switch {
	case err == nil:
	case errors.Is(err, ErrUserNotFound):
		user, err = p.create(ctx, profile, creds)
		if err != nil {
			return SessionData{}, err
		}
	default:
		return SessionData{}, fmt.Errorf("lookup user by email: %w", err)
	}

	return NewSessionData(user), nil
}

func (p *Provisioner) create(ctx context.Context, profile Profile, creds Credentials) (*User, error) {
	institutional := p.policy.IsInstitutional(profile.Email)
	now := p.now()

	user := &User{
		ID:              profile.ID,
		Email:           profile.Email,
		Name:            profile.Name,
		Image:           profile.Image,
		AccessToken:     creds.AccessToken,
		RefreshToken:    creds.RefreshToken,
		CreatedAt:       now,
		UpdatedAt:       now,
		IsOnboarded:     institutional, // institutional users skip onboarding
		IsEmailVerified: profile.EmailVerified,
		Provider:        ProviderGoogle,
		GoogleID:        profile.ID,
	}

	if !institutional {
		user.Guest = &GuestFields{
			AvatarURL:    profile.Image,
			Bio:          p.policy.GuestBio,
			Courses:      slices.Clone(p.policy.GuestCourses),
			LoginID:      profile.Email,
			PrimaryEmail: profile.Email,
			SortableName: profile.Name,
			Major:        p.policy.GuestMajor,
		}
	}

	if err := p.store.Insert(ctx, user); err != nil {
		if errors.Is(err, ErrUserExists) {
			// Lost the race against a concurrent first sign-in for the same
			// email; the winner's record is authoritative.
			return p.store.FindByEmail(ctx, profile.Email)
		}
		return nil, errors.Join(ErrCouldNotAddUser, err)
	}

	p.logger.InfoContext(ctx, "provisioned new user",
		logger.UserID(user.ID),
		logger.Email(user.Email),
		slog.Bool("institutional", institutional),
		logger.Component("provisioner"),
	)

	return user, nil
}
