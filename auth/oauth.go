package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuvi55/unigrow/pkg/logger"
)

// ProviderAdapter hides provider specifics from the sign-in flow.
type ProviderAdapter interface {
	// ProviderID returns the provider name stored on user records.
	ProviderID() string

	// AuthURL builds the authorization URL carrying the given state token.
	AuthURL(state string) string

	// Exchange trades the authorization code for the verified profile and the
	// credential metadata. Returns ErrInvalidCode for rejected codes.
	Exchange(ctx context.Context, code string) (ProviderProfile, Credentials, error)
}

// OAuthService orchestrates the sign-in pipeline around the provider
// round-trip: state CSRF protection, code exchange, profile normalization,
// account provisioning and token issuance.
type OAuthService struct {
	adapter     ProviderAdapter
	states      StateStore
	normalizer  *Normalizer
	provisioner *Provisioner
	stateTTL    time.Duration
	logger      *slog.Logger
}

// OAuthOption configures an OAuthService.
type OAuthOption func(*OAuthService)

// WithOAuthLogger sets a custom logger for the service.
func WithOAuthLogger(l *slog.Logger) OAuthOption {
	return func(s *OAuthService) { s.logger = l }
}

// WithStateTTL sets the TTL for state tokens used in CSRF protection.
func WithStateTTL(ttl time.Duration) OAuthOption {
	return func(s *OAuthService) { s.stateTTL = ttl }
}

// NewOAuthService wires the sign-in pipeline. Defaults: stateTTL 10 minutes,
// logger discards.
func NewOAuthService(adapter ProviderAdapter, states StateStore, normalizer *Normalizer, provisioner *Provisioner, opts ...OAuthOption) *OAuthService {
	s := &OAuthService{
		adapter:     adapter,
		states:      states,
		normalizer:  normalizer,
		provisioner: provisioner,
		stateTTL:    10 * time.Minute,
		logger:      logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AuthURL generates an authorization URL with CSRF protection via the state
// parameter.
func (s *OAuthService) AuthURL(ctx context.Context) (string, error) {
	state, err := generateState()
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}

	if err := s.states.StoreState(ctx, state, s.stateTTL); err != nil {
		return "", fmt.Errorf("store state: %w", err)
	}

	return s.adapter.AuthURL(state), nil
}

// SignIn handles the OAuth callback: it consumes the state token, exchanges
// the code, and runs the normalize -> provision -> enrich stages in order,
// returning the freshly issued token. Provisioning errors abort the sign-in.
func (s *OAuthService) SignIn(ctx context.Context, code, state string) (Token, error) {
	// One-time state consumption prevents replay.
	if err := s.states.ConsumeState(ctx, state); err != nil {
		if errors.Is(err, ErrStateNotFound) {
			return Token{}, ErrInvalidState
		}
		return Token{}, fmt.Errorf("validate state: %w", err)
	}

	rawProfile, creds, err := s.adapter.Exchange(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			return Token{}, ErrInvalidCode
		}
		return Token{}, fmt.Errorf("resolve provider profile: %w", err)
	}
	if rawProfile.Email == "" {
		return Token{}, ErrNoPrimaryEmail
	}

	profile := s.normalizer.Normalize(ctx, rawProfile)

	data, err := s.provisioner.SignIn(ctx, profile, creds)
	if err != nil {
		s.logger.ErrorContext(ctx, "sign-in aborted",
			logger.Error(err),
			logger.Email(profile.Email),
			logger.Provider(s.adapter.ProviderID()),
		)
		return Token{}, err
	}

	s.logger.InfoContext(ctx, "user signed in",
		logger.UserID(data.UserID),
		logger.Provider(s.adapter.ProviderID()),
		slog.Bool("onboarded", data.IsOnboarded),
	)

	return NewToken(profile, creds, data), nil
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
