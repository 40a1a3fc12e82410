package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleConfig holds configuration for the Google OAuth provider.
type GoogleConfig struct {
	ClientID     string        `env:"GOOGLE_CLIENT_ID,required"`
	ClientSecret string        `env:"GOOGLE_CLIENT_SECRET,required"`
	RedirectURL  string        `env:"GOOGLE_REDIRECT_URL,required"`
	Scopes       []string      `env:"GOOGLE_SCOPES" envSeparator:"," envDefault:"openid,https://www.googleapis.com/auth/userinfo.email,https://www.googleapis.com/auth/userinfo.profile"`
	StateTTL     time.Duration `env:"GOOGLE_STATE_TTL" envDefault:"10m"`
}

type googleAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewGoogleAdapter creates the Google provider adapter.
func NewGoogleAdapter(cfg GoogleConfig) ProviderAdapter {
	return &googleAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ProviderID returns the Google provider identifier.
func (a *googleAdapter) ProviderID() string {
	return ProviderGoogle
}

// AuthURL builds the Google authorization URL. The consent prompt combined
// with offline access ensures Google returns a refresh token on every
// sign-in, not only the first.
func (a *googleAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades the authorization code for the verified Google profile and
// the credential metadata carried into token issuance.
func (a *googleAdapter) Exchange(ctx context.Context, code string) (ProviderProfile, Credentials, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return ProviderProfile{}, Credentials{}, ErrInvalidCode
	}

	profile, err := a.fetchProfile(ctx, tok.AccessToken)
	if err != nil {
		return ProviderProfile{}, Credentials{}, fmt.Errorf("fetch google profile: %w", err)
	}

	idToken, _ := tok.Extra("id_token").(string)

	creds := Credentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		IDToken:      idToken,
		ExpiresAt:    tok.Expiry.Unix(),
		Provider:     ProviderGoogle,
		TokenType:    tok.TokenType,
	}

	return profile, creds, nil
}

// fetchProfile reads the OpenID userinfo endpoint, whose response matches the
// ProviderProfile shape (sub, name, email, picture, email_verified).
func (a *googleAdapter) fetchProfile(ctx context.Context, accessToken string) (ProviderProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v3/userinfo", nil)
	if err != nil {
		return ProviderProfile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return ProviderProfile{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ProviderProfile{}, fmt.Errorf("google api returned status %d", resp.StatusCode)
	}

	var profile ProviderProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return ProviderProfile{}, err
	}
	return profile, nil
}

var _ ProviderAdapter = (*googleAdapter)(nil)
