package auth

import "github.com/google/uuid"

// NewToken issues a fresh token at sign-in from the normalized profile, the
// OAuth credential metadata and the SessionData bundle. The bundle is passed
// by value; nothing is carried through side channels.
func NewToken(profile Profile, creds Credentials, data SessionData) Token {
	t := Token{
		ID:      uuid.NewString(),
		Name:    profile.Name,
		Email:   profile.Email,
		Picture: profile.Image,
	}
	return t.WithCredentials(creds, data)
}

// WithCredentials runs the credential-present enrichment path: it copies the
// credential metadata and every field of the bundle into the token,
// overwriting prior values.
func (t Token) WithCredentials(creds Credentials, data SessionData) Token {
	t.AccessToken = creds.AccessToken
	t.RefreshToken = creds.RefreshToken
	t.IDToken = creds.IDToken
	t.ExpiresAt = creds.ExpiresAt
	t.Provider = creds.Provider
	t.TokenType = creds.TokenType

	t.UserID = data.UserID
	t.IsOnboarded = data.IsOnboarded
	t.IsEmailVerified = data.IsEmailVerified
	t.IsAuthenticated = data.IsAuthenticated
	t.AvatarURL = data.AvatarURL
	return t
}

// Merge runs the update-trigger path: a shallow, field-by-field merge of the
// caller-supplied partial session into the token. Fields absent from the
// patch are left intact.
func (t Token) Merge(patch SessionPatch) Token {
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Email != nil {
		t.Email = *patch.Email
	}
	if patch.Picture != nil {
		t.Picture = *patch.Picture
	}
	if patch.IsOnboarded != nil {
		t.IsOnboarded = *patch.IsOnboarded
	}
	if patch.IsEmailVerified != nil {
		t.IsEmailVerified = *patch.IsEmailVerified
	}
	if patch.AvatarURL != nil {
		t.AvatarURL = *patch.AvatarURL
	}
	return t
}

// ProjectSession derives the externally visible session from the token. Every
// token field is copied onto the session user, isAuthenticated is forced to
// true, and the subject identifier is rewritten to the internal user id so
// downstream consumers key on the persisted identity. Pure function, no
// failure path: an empty token projects an authenticated session with zero
// fields, which is a caller error.
func ProjectSession(t Token) Session {
	t.IsAuthenticated = true
	return Session{
		User: SessionUser{
			Sub:   t.UserID,
			Token: t,
		},
	}
}
