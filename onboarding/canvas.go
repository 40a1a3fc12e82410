package onboarding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// CanvasConfig holds configuration for the course-verification API client.
type CanvasConfig struct {
	VerifyURL string        `env:"CANVAS_VERIFY_URL,required"`            // VerifyURL is the endpoint validating encrypted Canvas tokens.
	Timeout   time.Duration `env:"CANVAS_VERIFY_TIMEOUT" envDefault:"10s"` // Timeout bounds the verification round-trip.
}

// CanvasClient calls the external course-verification API.
type CanvasClient struct {
	url        string
	httpClient *http.Client
}

// NewCanvasClient creates a verification client. The HTTP timeout guarantees
// a slow API surfaces as ErrVerificationUnavailable instead of hanging the
// submission.
func NewCanvasClient(cfg CanvasConfig) *CanvasClient {
	return &CanvasClient{
		url:        cfg.VerifyURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type verifyRequest struct {
	TokenEncrypted string `json:"tokenEncrypted"`
	UserID         string `json:"userId"`
}

// Verify posts the encrypted token and user id to the verification API and
// returns the enrollment profile for a valid token.
func (c *CanvasClient) Verify(ctx context.Context, encryptedToken, userID string) (*Verification, error) {
	body, err := json.Marshal(verifyRequest{TokenEncrypted: encryptedToken, UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("encode verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrVerificationUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, errors.Join(ErrVerificationUnavailable, fmt.Errorf("verification api returned status %d", resp.StatusCode))
	default:
		return nil, ErrTokenRejected
	}

	var verification Verification
	if err := json.NewDecoder(resp.Body).Decode(&verification); err != nil {
		return nil, errors.Join(ErrVerificationUnavailable, err)
	}

	return &verification, nil
}

var _ Verifier = (*CanvasClient)(nil)
