// Package mocks provides mock implementations of the SG proxy use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	sgproxyDomain "github.com/maasoft/sg-gateway/internal/sgproxy/domain"
)

// MockProxyUseCase is a mock implementation of ProxyUseCase for testing.
type MockProxyUseCase struct {
	mock.Mock
}

// CreateCVU mocks the CreateCVU method of ProxyUseCase.
func (m *MockProxyUseCase) CreateCVU(ctx context.Context, entityID string, payload any) (any, error) {
	args := m.Called(ctx, entityID, payload)
	return args.Get(0), args.Error(1)
}

// StartTransfer mocks the StartTransfer method of ProxyUseCase.
func (m *MockProxyUseCase) StartTransfer(ctx context.Context, entityID string, payload any) (any, error) {
	args := m.Called(ctx, entityID, payload)
	return args.Get(0), args.Error(1)
}

// MockUserUseCase is a mock implementation of UserUseCase for testing.
type MockUserUseCase struct {
	mock.Mock
}

// LookupByCUIT mocks the LookupByCUIT method of UserUseCase.
func (m *MockUserUseCase) LookupByCUIT(
	ctx context.Context,
	entityID, cuit string,
) (*sgproxyDomain.UserLookup, error) {
	args := m.Called(ctx, entityID, cuit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sgproxyDomain.UserLookup), args.Error(1)
}

// LookupRaw mocks the LookupRaw method of UserUseCase.
func (m *MockUserUseCase) LookupRaw(
	ctx context.Context,
	entityID, cuit string,
) (*sgproxyDomain.RawResponse, error) {
	args := m.Called(ctx, entityID, cuit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sgproxyDomain.RawResponse), args.Error(1)
}

// Create mocks the Create method of UserUseCase.
func (m *MockUserUseCase) Create(
	ctx context.Context,
	entityID string,
	input *sgproxyDomain.CreateUserInput,
) (*sgproxyDomain.CreateUserOutput, error) {
	args := m.Called(ctx, entityID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sgproxyDomain.CreateUserOutput), args.Error(1)
}
