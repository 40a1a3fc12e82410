package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yuvi55/unigrow/auth"
	"github.com/yuvi55/unigrow/handler"
	"github.com/yuvi55/unigrow/onboarding"
)

func testConfig() handler.Config {
	return handler.Config{
		BaseURL:    "http://localhost:8080",
		CookieName: "unigrow_session",
	}
}

func sessionCookie(key string) *http.Cookie {
	return &http.Cookie{Name: "unigrow_session", Value: key}
}

func TestCallback(t *testing.T) {
	t.Parallel()

	t.Run("new user lands on onboarding", func(t *testing.T) {
		t.Parallel()

		authSvc := new(MockAuthenticator)
		tokens := new(MockTokenStore)
		tok := auth.Token{UserID: "sub-1", Email: "ada@gmail.com", IsOnboarded: false}
		authSvc.On("SignIn", mock.Anything, "code-1", "state-1").Return(tok, nil)
		tokens.On("Issue", mock.Anything, tok).Return("key-1", nil)

		h := handler.New(authSvc, nil, tokens, testConfig())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=code-1&state=state-1", nil)
		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/onboarding", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "unigrow_session", cookies[0].Name)
		assert.Equal(t, "key-1", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("onboarded user lands on dashboard", func(t *testing.T) {
		t.Parallel()

		authSvc := new(MockAuthenticator)
		tokens := new(MockTokenStore)
		tok := auth.Token{UserID: "sub-1", IsOnboarded: true}
		authSvc.On("SignIn", mock.Anything, "code-1", "state-1").Return(tok, nil)
		tokens.On("Issue", mock.Anything, tok).Return("key-1", nil)

		h := handler.New(authSvc, nil, tokens, testConfig())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=code-1&state=state-1", nil)
		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})

	t.Run("callback url under the base url is honored", func(t *testing.T) {
		t.Parallel()

		authSvc := new(MockAuthenticator)
		tokens := new(MockTokenStore)
		tok := auth.Token{UserID: "sub-1", IsOnboarded: true}
		authSvc.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(tok, nil)
		tokens.On("Issue", mock.Anything, tok).Return("key-1", nil)

		h := handler.New(authSvc, nil, tokens, testConfig())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/auth/google/callback?code=c&state=s&callbackUrl=http%3A%2F%2Flocalhost%3A8080%2Fprofile", nil)
		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "http://localhost:8080/profile", rec.Header().Get("Location"))
	})

	t.Run("foreign callback url is ignored", func(t *testing.T) {
		t.Parallel()

		authSvc := new(MockAuthenticator)
		tokens := new(MockTokenStore)
		tok := auth.Token{UserID: "sub-1", IsOnboarded: true}
		authSvc.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(tok, nil)
		tokens.On("Issue", mock.Anything, tok).Return("key-1", nil)

		h := handler.New(authSvc, nil, tokens, testConfig())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/auth/google/callback?code=c&state=s&callbackUrl=https%3A%2F%2Fevil.example%2Fphish", nil)
		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})

	t.Run("stale state redirects to signup with an error code", func(t *testing.T) {
		t.Parallel()

		authSvc := new(MockAuthenticator)
		tokens := new(MockTokenStore)
		authSvc.On("SignIn", mock.Anything, mock.Anything, mock.Anything).
			Return(auth.Token{}, auth.ErrInvalidState)

		h := handler.New(authSvc, nil, tokens, testConfig())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=c&state=s", nil)
		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/signup?error=OAuthStateMismatch", rec.Header().Get("Location"))
		tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})
}

func TestGetSession(t *testing.T) {
	t.Parallel()

	t.Run("no cookie is unauthorized", func(t *testing.T) {
		t.Parallel()

		h := handler.New(nil, nil, new(MockTokenStore), testConfig())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		h.Routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown token clears the cookie", func(t *testing.T) {
		t.Parallel()

		tokens := new(MockTokenStore)
		tokens.On("Get", mock.Anything, "stale-key").Return(auth.Token{}, auth.ErrTokenNotFound)

		h := handler.New(nil, nil, tokens, testConfig())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		req.AddCookie(sessionCookie("stale-key"))
		h.Routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("projects the stored token", func(t *testing.T) {
		t.Parallel()

		tokens := new(MockTokenStore)
		tokens.On("Get", mock.Anything, "key-1").Return(auth.Token{
			ID:     "token-id",
			UserID: "sub-1",
			Email:  "ada@stevens.edu",
		}, nil)

		h := handler.New(nil, nil, tokens, testConfig())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		req.AddCookie(sessionCookie("key-1"))
		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var sess auth.Session
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
		assert.Equal(t, "sub-1", sess.User.Sub)
		assert.Equal(t, "ada@stevens.edu", sess.User.Email)
		assert.True(t, sess.User.IsAuthenticated)
	})
}

func TestUpdateSession(t *testing.T) {
	t.Parallel()

	t.Run("update trigger merges and persists", func(t *testing.T) {
		t.Parallel()

		stored := auth.Token{UserID: "sub-1", Email: "ada@gmail.com", IsOnboarded: false}
		tokens := new(MockTokenStore)
		tokens.On("Get", mock.Anything, "key-1").Return(stored, nil)
		tokens.On("Save", mock.Anything, "key-1", mock.MatchedBy(func(tok auth.Token) bool {
			return tok.IsOnboarded && tok.Email == "ada@gmail.com"
		})).Return(nil)

		h := handler.New(nil, nil, tokens, testConfig())
		rec := httptest.NewRecorder()
		body := `{"trigger":"update","session":{"isOnboarded":true}}`
		req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(body))
		req.AddCookie(sessionCookie("key-1"))
		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var sess auth.Session
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
		assert.True(t, sess.User.IsOnboarded)
		tokens.AssertExpectations(t)
	})

	t.Run("other triggers return the current session untouched", func(t *testing.T) {
		t.Parallel()

		stored := auth.Token{UserID: "sub-1", IsOnboarded: false}
		tokens := new(MockTokenStore)
		tokens.On("Get", mock.Anything, "key-1").Return(stored, nil)

		h := handler.New(nil, nil, tokens, testConfig())
		rec := httptest.NewRecorder()
		body := `{"trigger":"signIn","session":{"isOnboarded":true}}`
		req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(body))
		req.AddCookie(sessionCookie("key-1"))
		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var sess auth.Session
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
		assert.False(t, sess.User.IsOnboarded)
		tokens.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSubmitOnboarding(t *testing.T) {
	t.Parallel()

	newRequest := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/questions", strings.NewReader(body))
		req.AddCookie(sessionCookie("key-1"))
		return req
	}

	stored := auth.Token{UserID: "sub-1", Email: "ada@gmail.com"}

	t.Run("success responds with the dashboard redirect", func(t *testing.T) {
		t.Parallel()

		tokens := new(MockTokenStore)
		tokens.On("Get", mock.Anything, "key-1").Return(stored, nil)

		onboarder := new(MockOnboarder)
		onboarder.On("Submit", mock.Anything, "sub-1", "ada@gmail.com", onboarding.Submission{
			Major:       "CS",
			JoiningTerm: "Fall 23",
			CanvasToken: "raw-token",
		}).Return(nil)

		h := handler.New(nil, onboarder, tokens, testConfig())
		rec := httptest.NewRecorder()
		body := `{"major":"CS","joiningTerm":"Fall 23","canvasToken":"raw-token"}`
		h.Routes().ServeHTTP(rec, newRequest(body))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"redirect":"/dashboard"}`, rec.Body.String())
		onboarder.AssertExpectations(t)
	})

	t.Run("rejected token is unprocessable", func(t *testing.T) {
		t.Parallel()

		tokens := new(MockTokenStore)
		tokens.On("Get", mock.Anything, "key-1").Return(stored, nil)

		onboarder := new(MockOnboarder)
		onboarder.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(onboarding.ErrTokenRejected)

		h := handler.New(nil, onboarder, tokens, testConfig())
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, newRequest(`{"canvasToken":"bad"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("verification outage is service unavailable", func(t *testing.T) {
		t.Parallel()

		tokens := new(MockTokenStore)
		tokens.On("Get", mock.Anything, "key-1").Return(stored, nil)

		onboarder := new(MockOnboarder)
		onboarder.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(onboarding.ErrVerificationUnavailable)

		h := handler.New(nil, onboarder, tokens, testConfig())
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, newRequest(`{"canvasToken":"tok"}`))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("persistence failure is internal", func(t *testing.T) {
		t.Parallel()

		tokens := new(MockTokenStore)
		tokens.On("Get", mock.Anything, "key-1").Return(stored, nil)

		onboarder := new(MockOnboarder)
		onboarder.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(onboarding.ErrPersistFailed)

		h := handler.New(nil, onboarder, tokens, testConfig())
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, newRequest(`{"canvasToken":"tok"}`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestSignOut(t *testing.T) {
	t.Parallel()

	t.Run("deletes the token and clears the cookie", func(t *testing.T) {
		t.Parallel()

		tokens := new(MockTokenStore)
		tokens.On("Delete", mock.Anything, "key-1").Return(nil)

		h := handler.New(nil, nil, tokens, testConfig())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/signout", nil)
		req.AddCookie(sessionCookie("key-1"))
		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
		tokens.AssertExpectations(t)
	})

	t.Run("without a session it still succeeds", func(t *testing.T) {
		t.Parallel()

		tokens := new(MockTokenStore)
		h := handler.New(nil, nil, tokens, testConfig())
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/signout", nil)
		h.Routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		tokens.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
