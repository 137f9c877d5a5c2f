// Package mocks provides mock implementations of the notification use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	notificationDomain "github.com/maasoft/sg-gateway/internal/notification/domain"
)

// MockNotificationUseCase is a mock implementation of NotificationUseCase for testing.
type MockNotificationUseCase struct {
	mock.Mock
}

// Record mocks the Record method of NotificationUseCase.
func (m *MockNotificationUseCase) Record(
	ctx context.Context,
	tx *notificationDomain.Transaction,
) (notificationDomain.RecordStatus, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(notificationDomain.RecordStatus), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository for testing.
type MockTransactionRepository struct {
	mock.Mock
}

// Exists mocks the Exists method of TransactionRepository.
func (m *MockTransactionRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Create mocks the Create method of TransactionRepository.
func (m *MockTransactionRepository) Create(ctx context.Context, tx *notificationDomain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
