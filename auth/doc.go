// Package auth implements the identity-provisioning and session-enrichment
// pipeline around the Google OAuth login.
//
// The flow runs in explicit stages, each producing a value consumed by the
// next rather than mutating shared state:
//
//	provider profile -> Normalizer -> Provisioner -> SessionData -> Token
//
// The Normalizer maps the raw Google profile into the internal identity
// shape, carrying a previously stored avatar forward on a best-effort basis.
// The Provisioner decides whether the identity is new or returning,
// materializes the user record with email-domain-dependent defaults, and
// emits the SessionData bundle. NewToken folds the bundle and the OAuth
// credential metadata into the server-held token, Merge applies a
// client-initiated refresh, and ProjectSession derives the client-visible
// session on every read.
//
// OAuthService orchestrates the stages around the provider round-trip,
// including state-parameter CSRF protection.
package auth
