package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yuvi55/unigrow/pkg/logger"
)

// Normalizer maps a raw provider profile into the internal identity shape,
// enriching it with a previously stored avatar when one exists.
type Normalizer struct {
	store  UserStore
	logger *slog.Logger
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithNormalizerLogger sets a custom logger for the normalizer.
func WithNormalizerLogger(l *slog.Logger) NormalizerOption {
	return func(n *Normalizer) { n.logger = l }
}

// NewNormalizer creates a profile normalizer backed by the user store.
func NewNormalizer(store UserStore, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		store:  store,
		logger: logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts the provider profile into the internal shape. The avatar
// lookup is best-effort: a store failure is logged and the sign-in proceeds
// with the avatar unset, since avatar continuity is cosmetic.
func (n *Normalizer) Normalize(ctx context.Context, p ProviderProfile) Profile {
	out := Profile{
		ID:            p.Subject,
		Name:          p.Name,
		Email:         p.Email,
		Image:         p.Picture,
		EmailVerified: p.EmailVerified,
	}

	existing, err := n.store.FindByEmailAndID(ctx, p.Email, p.Subject)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			n.logger.WarnContext(ctx, "avatar continuity lookup degraded",
				logger.Error(err),
				logger.Email(p.Email),
				logger.Component("normalizer"),
			)
		}
		return out
	}

	out.AvatarURL = existing.Avatar()
	return out
}
