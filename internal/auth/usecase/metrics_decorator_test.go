package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
	"github.com/maasoft/sg-gateway/internal/auth/usecase"
	usecaseMocks "github.com/maasoft/sg-gateway/internal/auth/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics to avoid dependency issues.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectRecord(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "auth", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "auth", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestSessionUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("GetOrRefreshToken success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("GetOrRefreshToken", ctx, "ENT").Return("tok", nil).Once()
		expectRecord(ctx, mockMetrics, "token_get", "success")

		token, err := uc.GetOrRefreshToken(ctx, "ENT")
		assert.NoError(t, err)
		assert.Equal(t, "tok", token)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GetOrRefreshToken error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("GetOrRefreshToken", ctx, "ENT").Return("", errors.New("boom")).Once()
		expectRecord(ctx, mockMetrics, "token_get", "error")

		_, err := uc.GetOrRefreshToken(ctx, "ENT")
		assert.Error(t, err)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("AuthHeaders success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(mockNext, mockMetrics)

		headers := map[string]string{"Authorization": "bearer tok"}
		mockNext.On("AuthHeaders", ctx, "").Return(headers, nil).Once()
		expectRecord(ctx, mockMetrics, "auth_headers", "success")

		res, err := uc.AuthHeaders(ctx, "")
		assert.NoError(t, err)
		assert.Equal(t, headers, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("EnsureToken success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(mockNext, mockMetrics)

		status := authDomain.CacheStatus{EntityID: "ENT", Exists: true}
		mockNext.On("EnsureToken", ctx, "ENT").Return(status, nil).Once()
		expectRecord(ctx, mockMetrics, "token_ensure", "success")

		res, err := uc.EnsureToken(ctx, "ENT")
		assert.NoError(t, err)
		assert.Equal(t, status, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("LoginDebug error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("LoginDebug", ctx, "ENT").Return(nil, errors.New("boom")).Once()
		expectRecord(ctx, mockMetrics, "login_debug", "error")

		res, err := uc.LoginDebug(ctx, "ENT")
		assert.Error(t, err)
		assert.Nil(t, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("CacheStatus success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockSessionUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSessionUseCaseWithMetrics(mockNext, mockMetrics)

		status := authDomain.CacheStatus{EntityID: "ENT"}
		mockNext.On("CacheStatus", ctx, "ENT").Return(status, nil).Once()
		expectRecord(ctx, mockMetrics, "cache_status", "success")

		res, err := uc.CacheStatus(ctx, "ENT")
		assert.NoError(t, err)
		assert.Equal(t, status, res)
		mockMetrics.AssertExpectations(t)
	})
}
