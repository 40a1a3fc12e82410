package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yuvi55/unigrow/auth"
	"github.com/yuvi55/unigrow/onboarding"
	"github.com/yuvi55/unigrow/pkg/logger"
)

// Authenticator runs the OAuth sign-in pipeline.
type Authenticator interface {
	AuthURL(ctx context.Context) (string, error)
	SignIn(ctx context.Context, code, state string) (auth.Token, error)
}

// Onboarder runs the onboarding submission flow.
type Onboarder interface {
	Submit(ctx context.Context, userID, email string, sub onboarding.Submission) error
}

// TokenStore issues and resolves opaque session token keys.
type TokenStore interface {
	Issue(ctx context.Context, tok auth.Token) (string, error)
	Get(ctx context.Context, key string) (auth.Token, error)
	Save(ctx context.Context, key string, tok auth.Token) error
	Delete(ctx context.Context, key string) error
}

// Handler serves the application's HTTP routes.
type Handler struct {
	auth       Authenticator
	onboarding Onboarder
	tokens     TokenStore
	cfg        Config
	logger     *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets a custom logger for the handler.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// New creates the HTTP handler.
func New(a Authenticator, o Onboarder, tokens TokenStore, cfg Config, opts ...Option) *Handler {
	h := &Handler{
		auth:       a,
		onboarding: o,
		tokens:     tokens,
		cfg:        cfg,
		logger:     logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes builds the router with the standard middleware chain.
func (h *Handler) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/auth/google", h.signInRedirect)
	r.Get("/auth/google/callback", h.callback)
	r.Post("/auth/signout", h.signOut)

	r.Get("/api/session", h.getSession)
	r.Post("/api/session", h.updateSession)
	r.Post("/api/questions", h.submitOnboarding)

	return r
}

// signInRedirect starts the OAuth dance by redirecting to the provider's
// consent screen.
func (h *Handler) signInRedirect(w http.ResponseWriter, r *http.Request) {
	url, err := h.auth.AuthURL(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "auth url generation failed",
			logger.Error(err),
			logger.Handler("signInRedirect"),
		)
		http.Redirect(w, r, "/signup?error=OAuthSignin", http.StatusFound)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// callback completes the sign-in: it exchanges the callback parameters for a
// token, stores the token and hands the browser an opaque cookie.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tok, err := h.auth.SignIn(r.Context(), q.Get("code"), q.Get("state"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "sign-in failed",
			logger.Error(err),
			logger.Handler("callback"),
		)
		http.Redirect(w, r, "/signup?error="+callbackErrorCode(err), http.StatusFound)
		return
	}

	key, err := h.tokens.Issue(r.Context(), tok)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "token issue failed",
			logger.Error(err),
			logger.Handler("callback"),
		)
		http.Redirect(w, r, "/signup?error=SessionStore", http.StatusFound)
		return
	}

	h.setSessionCookie(w, key)

	if !tok.IsOnboarded {
		http.Redirect(w, r, "/onboarding", http.StatusFound)
		return
	}
	http.Redirect(w, r, h.resolveRedirect(q.Get("callbackUrl")), http.StatusFound)
}

// signOut removes the stored token and clears the cookie. Signing out
// without a session is a no-op.
func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(h.cfg.CookieName); err == nil && c.Value != "" {
		if err := h.tokens.Delete(r.Context(), c.Value); err != nil {
			h.logger.ErrorContext(r.Context(), "token delete failed",
				logger.Error(err),
				logger.Handler("signOut"),
			)
		}
	}
	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"redirect": "/"})
}

// getSession projects the stored token into the session object.
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	tok, _, ok := h.sessionToken(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, auth.ProjectSession(tok))
}

// updateRequest is the body of a session mutation request.
type updateRequest struct {
	Trigger string            `json:"trigger"`
	Session auth.SessionPatch `json:"session"`
}

// updateSession applies an update-trigger patch to the stored token and
// returns the refreshed session. Any other trigger returns the current
// session unchanged.
func (h *Handler) updateSession(w http.ResponseWriter, r *http.Request) {
	tok, key, ok := h.sessionToken(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Trigger != "update" {
		writeJSON(w, http.StatusOK, auth.ProjectSession(tok))
		return
	}

	merged := tok.Merge(req.Session)
	if err := h.tokens.Save(r.Context(), key, merged); err != nil {
		h.logger.ErrorContext(r.Context(), "token save failed",
			logger.Error(err),
			logger.Handler("updateSession"),
		)
		writeError(w, http.StatusInternalServerError, "could not update session")
		return
	}

	writeJSON(w, http.StatusOK, auth.ProjectSession(merged))
}

// submitOnboarding accepts the onboarding form for the signed-in user.
func (h *Handler) submitOnboarding(w http.ResponseWriter, r *http.Request) {
	tok, _, ok := h.sessionToken(w, r)
	if !ok {
		return
	}

	var sub onboarding.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.onboarding.Submit(r.Context(), tok.UserID, tok.Email, sub)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"redirect": "/dashboard"})
	case errors.Is(err, onboarding.ErrVerificationMismatch),
		errors.Is(err, onboarding.ErrTokenRejected):
		writeError(w, http.StatusUnprocessableEntity, "canvas token verification failed")
	case errors.Is(err, onboarding.ErrVerificationUnavailable):
		writeError(w, http.StatusServiceUnavailable, "verification service unavailable")
	default:
		h.logger.ErrorContext(r.Context(), "onboarding submission failed",
			logger.Error(err),
			logger.UserID(tok.UserID),
			logger.Handler("submitOnboarding"),
		)
		writeError(w, http.StatusInternalServerError, "could not save onboarding data")
	}
}

// sessionToken resolves the session cookie into the stored token. On failure
// it writes a 401 and reports ok=false.
func (h *Handler) sessionToken(w http.ResponseWriter, r *http.Request) (auth.Token, string, bool) {
	c, err := r.Cookie(h.cfg.CookieName)
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return auth.Token{}, "", false
	}

	tok, err := h.tokens.Get(r.Context(), c.Value)
	if errors.Is(err, auth.ErrTokenNotFound) {
		h.clearSessionCookie(w)
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return auth.Token{}, "", false
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "token lookup failed",
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "session lookup failed")
		return auth.Token{}, "", false
	}
	return tok, c.Value, true
}

// resolveRedirect returns the requested post-login destination when it lives
// under the configured base URL, otherwise the dashboard.
func (h *Handler) resolveRedirect(requested string) string {
	if requested != "" && strings.Contains(requested, h.cfg.BaseURL) {
		return requested
	}
	return "/dashboard"
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, key string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    key,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// callbackErrorCode maps sign-in failures to the error codes the signup page
// understands.
func callbackErrorCode(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidState):
		return "OAuthStateMismatch"
	case errors.Is(err, auth.ErrInvalidCode):
		return "OAuthCallback"
	case errors.Is(err, auth.ErrNoPrimaryEmail):
		return "EmailRequired"
	case errors.Is(err, auth.ErrCouldNotAddUser):
		return "AccessDenied"
	default:
		return "Default"
	}
}
