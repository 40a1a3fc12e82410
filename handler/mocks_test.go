package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yuvi55/unigrow/auth"
	"github.com/yuvi55/unigrow/onboarding"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) AuthURL(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) SignIn(ctx context.Context, code, state string) (auth.Token, error) {
	args := m.Called(ctx, code, state)
	return args.Get(0).(auth.Token), args.Error(1)
}

type MockOnboarder struct {
	mock.Mock
}

func (m *MockOnboarder) Submit(ctx context.Context, userID, email string, sub onboarding.Submission) error {
	args := m.Called(ctx, userID, email, sub)
	return args.Error(0)
}

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Issue(ctx context.Context, tok auth.Token) (string, error) {
	args := m.Called(ctx, tok)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) Get(ctx context.Context, key string) (auth.Token, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(auth.Token), args.Error(1)
}

func (m *MockTokenStore) Save(ctx context.Context, key string, tok auth.Token) error {
	args := m.Called(ctx, key, tok)
	return args.Error(0)
}

func (m *MockTokenStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
