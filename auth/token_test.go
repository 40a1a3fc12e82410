package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	t.Parallel()

	profile := Profile{ID: "sub-1", Name: "Ada", Email: "ada@gmail.com", Image: "pic.png"}
	creds := Credentials{
		AccessToken:  "at",
		RefreshToken: "rt",
		IDToken:      "idt",
		ExpiresAt:    1700000000,
		Provider:     ProviderGoogle,
		TokenType:    "Bearer",
	}
	data := SessionData{
		UserID:          "u1",
		IsOnboarded:     false,
		IsEmailVerified: true,
		IsAuthenticated: true,
		AvatarURL:       "a.png",
	}

	tok := NewToken(profile, creds, data)

	require.NotEmpty(t, tok.ID)
	assert.Equal(t, "Ada", tok.Name)
	assert.Equal(t, "ada@gmail.com", tok.Email)
	assert.Equal(t, "pic.png", tok.Picture)

	// Credential fields copied verbatim.
	assert.Equal(t, "at", tok.AccessToken)
	assert.Equal(t, "rt", tok.RefreshToken)
	assert.Equal(t, "idt", tok.IDToken)
	assert.Equal(t, int64(1700000000), tok.ExpiresAt)
	assert.Equal(t, ProviderGoogle, tok.Provider)
	assert.Equal(t, "Bearer", tok.TokenType)

	// Bundle fields copied exactly.
	assert.Equal(t, "u1", tok.UserID)
	assert.False(t, tok.IsOnboarded)
	assert.True(t, tok.IsEmailVerified)
	assert.True(t, tok.IsAuthenticated)
	assert.Equal(t, "a.png", tok.AvatarURL)
}

func TestToken_WithCredentials_Overwrites(t *testing.T) {
	t.Parallel()

	stale := Token{
		AccessToken: "old-at",
		UserID:      "old-user",
		IsOnboarded: true,
		AvatarURL:   "old.png",
	}

	fresh := stale.WithCredentials(
		Credentials{AccessToken: "new-at", Provider: ProviderGoogle},
		SessionData{UserID: "u2", IsAuthenticated: true},
	)

	assert.Equal(t, "new-at", fresh.AccessToken)
	assert.Equal(t, "u2", fresh.UserID)
	assert.False(t, fresh.IsOnboarded)
	assert.Empty(t, fresh.AvatarURL)
	// Original value is untouched.
	assert.Equal(t, "old-at", stale.AccessToken)
}

func TestToken_Merge(t *testing.T) {
	t.Parallel()

	boolPtr := func(b bool) *bool { return &b }
	strPtr := func(s string) *string { return &s }

	t.Run("shallow merge leaves absent fields intact", func(t *testing.T) {
		t.Parallel()

		tok := Token{
			AccessToken: "at",
			UserID:      "u1",
			IsOnboarded: false,
			AvatarURL:   "old.png",
		}

		merged := tok.Merge(SessionPatch{
			IsOnboarded: boolPtr(true),
			AvatarURL:   strPtr("new.png"),
		})

		assert.True(t, merged.IsOnboarded)
		assert.Equal(t, "new.png", merged.AvatarURL)
		// Untouched fields survive the merge.
		assert.Equal(t, "at", merged.AccessToken)
		assert.Equal(t, "u1", merged.UserID)
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		t.Parallel()

		tok := Token{UserID: "u1", IsOnboarded: true, AvatarURL: "a.png"}
		assert.Equal(t, tok, tok.Merge(SessionPatch{}))
	})

	t.Run("explicit false overrides true", func(t *testing.T) {
		t.Parallel()

		tok := Token{IsEmailVerified: true}
		merged := tok.Merge(SessionPatch{IsEmailVerified: boolPtr(false)})
		assert.False(t, merged.IsEmailVerified)
	})
}

func TestProjectSession(t *testing.T) {
	t.Parallel()

	t.Run("copies token fields and rewrites subject", func(t *testing.T) {
		t.Parallel()

		tok := Token{
			AccessToken:     "at",
			Provider:        ProviderGoogle,
			UserID:          "u1",
			IsOnboarded:     true,
			IsAuthenticated: false, // projection must force this on
			AvatarURL:       "a.png",
		}

		sess := ProjectSession(tok)

		assert.Equal(t, "u1", sess.User.Sub)
		assert.True(t, sess.User.IsAuthenticated)
		assert.Equal(t, "at", sess.User.AccessToken)
		assert.Equal(t, ProviderGoogle, sess.User.Provider)
		assert.True(t, sess.User.IsOnboarded)
		assert.Equal(t, "a.png", sess.User.AvatarURL)
	})

	t.Run("empty token still projects authenticated", func(t *testing.T) {
		t.Parallel()

		sess := ProjectSession(Token{})
		assert.True(t, sess.User.IsAuthenticated)
		assert.Empty(t, sess.User.Sub)
	})
}
