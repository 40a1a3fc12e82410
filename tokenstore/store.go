package tokenstore

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yuvi55/unigrow/auth"
)

// Key prefixes keep session tokens and OAuth state in separate namespaces.
const (
	tokenPrefix = "token:"
	statePrefix = "oauth_state:"
)

// Config holds token store configuration.
type Config struct {
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"720h"` // TokenTTL is the session token lifetime.
}

// Store persists session tokens and OAuth state in Redis.
type Store struct {
	client   *redis.Client
	tokenTTL time.Duration
}

// New creates a token store on top of an established Redis client.
func New(client *redis.Client, cfg Config) *Store {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 720 * time.Hour
	}
	return &Store{
		client:   client,
		tokenTTL: ttl,
	}
}

// Issue stores the token under a fresh opaque key and returns the key. The
// key is the only value that leaves the server.
func (s *Store) Issue(ctx context.Context, tok auth.Token) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token key: %w", err)
	}
	key := base64.RawURLEncoding.EncodeToString(buf)

	if err := s.set(ctx, key, tok); err != nil {
		return "", err
	}
	return key, nil
}

// Get returns the token stored under key, or auth.ErrTokenNotFound when the
// key is unknown or expired.
func (s *Store) Get(ctx context.Context, key string) (auth.Token, error) {
	raw, err := s.client.Get(ctx, tokenPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return auth.Token{}, auth.ErrTokenNotFound
	}
	if err != nil {
		return auth.Token{}, fmt.Errorf("get token: %w", err)
	}

	var tok auth.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return auth.Token{}, fmt.Errorf("decode token: %w", err)
	}
	return tok, nil
}

// Save overwrites the token stored under key, resetting its TTL.
func (s *Store) Save(ctx context.Context, key string, tok auth.Token) error {
	return s.set(ctx, key, tok)
}

// Delete removes the token stored under key. Deleting an unknown key is not
// an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, tokenPrefix+key).Err(); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *Store) set(ctx context.Context, key string, tok auth.Token) error {
	raw, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := s.client.Set(ctx, tokenPrefix+key, raw, s.tokenTTL).Err(); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// StoreState saves an OAuth state token until its TTL elapses.
func (s *Store) StoreState(ctx context.Context, state string, ttl time.Duration) error {
	if err := s.client.Set(ctx, statePrefix+state, "1", ttl).Err(); err != nil {
		return fmt.Errorf("store oauth state: %w", err)
	}
	return nil
}

// ConsumeState checks that the state exists and removes it in one atomic
// operation, so a replayed callback cannot reuse it.
func (s *Store) ConsumeState(ctx context.Context, state string) error {
	err := s.client.GetDel(ctx, statePrefix+state).Err()
	if errors.Is(err, redis.Nil) {
		return auth.ErrStateNotFound
	}
	if err != nil {
		return fmt.Errorf("consume oauth state: %w", err)
	}
	return nil
}

var _ auth.StateStore = (*Store)(nil)
