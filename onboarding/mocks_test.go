package onboarding

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock implementation of UserStore.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CompleteOnboarding(ctx context.Context, userID string, upd Update) error {
	args := m.Called(ctx, userID, upd)
	return args.Error(0)
}

// MockVerifier is a mock implementation of Verifier.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, encryptedToken, userID string) (*Verification, error) {
	args := m.Called(ctx, encryptedToken, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Verification), args.Error(1)
}

// MockEncryptor is a mock implementation of Encryptor.
type MockEncryptor struct {
	mock.Mock
}

func (m *MockEncryptor) Encrypt(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}
