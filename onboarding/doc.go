// Package onboarding implements the one-time flow of verifying and recording
// course enrollment data for guest users.
//
// The submitted Canvas access token is encrypted before it leaves the
// process, verified against the course-verification API, checked to belong to
// the signed-in user, and only then persisted together with the onboarding
// answers. The persistence write is the last state-changing action, so an
// aborted submission leaves no partial state. A failed submission is
// re-enterable: the user may correct the token and submit again.
package onboarding
