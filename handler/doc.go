// Package handler exposes the HTTP surface: the Google sign-in redirect and
// callback, sign-out, the session endpoints and the onboarding submission.
//
// The browser only ever holds an opaque cookie; every request resolves it
// against the token store and derives the session object on the fly. Service
// errors are mapped to HTTP statuses here and nowhere else.
//
// # Usage
//
//	h := handler.New(oauthSvc, onboardingSvc, tokens, cfg,
//		handler.WithLogger(log),
//	)
//
//	r := h.Routes()
//	http.ListenAndServe(":8080", r)
package handler
