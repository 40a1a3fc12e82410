package auth

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock implementation of UserStore.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserStore) FindByEmailAndID(ctx context.Context, email, id string) (*User, error) {
	args := m.Called(ctx, email, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserStore) Insert(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// MockStateStore is a mock implementation of StateStore.
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) StoreState(ctx context.Context, state string, ttl time.Duration) error {
	args := m.Called(ctx, state, ttl)
	return args.Error(0)
}

func (m *MockStateStore) ConsumeState(ctx context.Context, state string) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

// MockProviderAdapter is a mock implementation of ProviderAdapter.
type MockProviderAdapter struct {
	mock.Mock
}

func (m *MockProviderAdapter) ProviderID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProviderAdapter) AuthURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockProviderAdapter) Exchange(ctx context.Context, code string) (ProviderProfile, Credentials, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(ProviderProfile), args.Get(1).(Credentials), args.Error(2)
}
