// Package mocks provides mock implementations of the auth use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
)

// MockSessionUseCase is a mock implementation of SessionUseCase for testing.
type MockSessionUseCase struct {
	mock.Mock
}

// GetOrRefreshToken mocks the GetOrRefreshToken method of SessionUseCase.
func (m *MockSessionUseCase) GetOrRefreshToken(ctx context.Context, entityID string) (string, error) {
	args := m.Called(ctx, entityID)
	return args.String(0), args.Error(1)
}

// AuthHeaders mocks the AuthHeaders method of SessionUseCase.
func (m *MockSessionUseCase) AuthHeaders(ctx context.Context, entityID string) (map[string]string, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// EnsureToken mocks the EnsureToken method of SessionUseCase.
func (m *MockSessionUseCase) EnsureToken(ctx context.Context, entityID string) (authDomain.CacheStatus, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).(authDomain.CacheStatus), args.Error(1)
}

// LoginDebug mocks the LoginDebug method of SessionUseCase.
func (m *MockSessionUseCase) LoginDebug(ctx context.Context, entityID string) (*authDomain.DebugSummary, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.DebugSummary), args.Error(1)
}

// CacheStatus mocks the CacheStatus method of SessionUseCase.
func (m *MockSessionUseCase) CacheStatus(ctx context.Context, entityID string) (authDomain.CacheStatus, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).(authDomain.CacheStatus), args.Error(1)
}
