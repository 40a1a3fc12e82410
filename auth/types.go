package auth

import "time"

// Provider identifiers.
const (
	ProviderGoogle = "google"
)

// ProviderProfile is the verified identity returned by the OAuth provider
// for a single login. Received once per sign-in, never mutated.
type ProviderProfile struct {
	Subject       string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Picture       string `json:"picture"`
	EmailVerified bool   `json:"email_verified"`
}

// Profile is the normalized internal identity shape produced from a
// ProviderProfile. AvatarURL is set only when a stored avatar was found for
// a returning user.
type Profile struct {
	ID            string
	Name          string
	Email         string
	Image         string
	AvatarURL     string
	EmailVerified bool
}

// Credentials is the OAuth credential metadata captured at sign-in.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	ExpiresAt    int64
	Provider     string
	TokenType    string
}

// User is the persisted user record. The ID equals the provider subject and
// is immutable once created. Guest holds the field block present only for
// non-institutional identities.
type User struct {
	ID              string       `bson:"_id"`
	Email           string       `bson:"email"`
	Name            string       `bson:"name"`
	Image           string       `bson:"image"`
	AccessToken     string       `bson:"token,omitempty"`
	RefreshToken    string       `bson:"refreshToken,omitempty"`
	CreatedAt       time.Time    `bson:"createdAt"`
	UpdatedAt       time.Time    `bson:"updatedAt"`
	IsOnboarded     bool         `bson:"isOnboarded"`
	IsEmailVerified bool         `bson:"isEmailVerified"`
	Provider        string       `bson:"provider"`
	GoogleID        string       `bson:"googleId"`
	Guest           *GuestFields `bson:",inline"`
}

// GuestFields is the conditional block materialized for guest identities.
// The hashed fields start null and are filled by the onboarding flow.
type GuestFields struct {
	APIKeyHashed      *string  `bson:"apiKey_hashed"`
	AvatarURL         string   `bson:"avatar_url,omitempty"`
	Bio               string   `bson:"bio,omitempty"`
	Courses           []string `bson:"courses,omitempty"`
	LoginID           string   `bson:"login_id,omitempty"`
	PrimaryEmail      string   `bson:"primary_email,omitempty"`
	SortableName      string   `bson:"sortable_name,omitempty"`
	CanvasTokenHashed *string  `bson:"canvasToken_hashed"`
	JoiningTerm       *string  `bson:"joiningTerm"`
	Major             string   `bson:"major,omitempty"`
}

// Avatar returns the stored avatar URL, empty for institutional users.
func (u *User) Avatar() string {
	if u == nil || u.Guest == nil {
		return ""
	}
	return u.Guest.AvatarURL
}

// SessionData is the ephemeral bundle of authorization facts produced once
// per sign-in and threaded into token issuance. It is never persisted.
type SessionData struct {
	UserID          string
	IsOnboarded     bool
	IsEmailVerified bool
	IsAuthenticated bool
	AvatarURL       string
}

// NewSessionData builds the bundle from whichever user record exists after
// provisioning, freshly created or pre-existing.
func NewSessionData(u *User) SessionData {
	return SessionData{
		UserID:          u.ID,
		IsOnboarded:     u.IsOnboarded,
		IsEmailVerified: u.IsEmailVerified,
		IsAuthenticated: true,
		AvatarURL:       u.Avatar(),
	}
}

// Token is the server-held, long-lived structure carrying credential metadata
// and a flattened copy of the last SessionData bundle. JSON tags define the
// persisted shape in the token store.
type Token struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Picture      string `json:"picture,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	ExpiresAt    int64  `json:"expiresAt,omitempty"`
	Provider     string `json:"provider,omitempty"`
	TokenType    string `json:"token_type,omitempty"`

	UserID          string `json:"_id,omitempty"`
	IsOnboarded     bool   `json:"isOnboarded"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	AvatarURL       string `json:"avatar_url,omitempty"`
}

// SessionPatch is the caller-supplied partial session for the update trigger.
// Nil fields are left untouched by the merge.
type SessionPatch struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Picture         *string `json:"picture,omitempty"`
	IsOnboarded     *bool   `json:"isOnboarded,omitempty"`
	IsEmailVerified *bool   `json:"isEmailVerified,omitempty"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
}

// Session is the externally visible session object derived from the token on
// every request. Never persisted.
type Session struct {
	User SessionUser `json:"user"`
}

// SessionUser carries every token field plus the subject identifier re-keyed
// to the internal user id.
type SessionUser struct {
	Sub string `json:"sub"`
	Token
}
