package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	sgproxyDomain "github.com/maasoft/sg-gateway/internal/sgproxy/domain"
	"github.com/maasoft/sg-gateway/internal/sgproxy/usecase"
	usecaseMocks "github.com/maasoft/sg-gateway/internal/sgproxy/usecase/mocks"
)

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
	m.On("RecordOperation", ctx, "sgproxy", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "sgproxy", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestProxyUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	payload := map[string]any{"cuit": "20123456789"}

	tests := []struct {
		name      string
		method    string
		operation string
		err       error
		status    string
	}{
		{"CreateCVU success", "CreateCVU", "cvu_create", nil, "success"},
		{"CreateCVU error", "CreateCVU", "cvu_create", errors.New("boom"), "error"},
		{"StartTransfer success", "StartTransfer", "transfer_start", nil, "success"},
		{"StartTransfer error", "StartTransfer", "transfer_start", errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockNext := &usecaseMocks.MockProxyUseCase{}
			mockMetrics := &mockBusinessMetrics{}
			uc := usecase.NewProxyUseCaseWithMetrics(mockNext, mockMetrics)

			mockNext.On(tt.method, ctx, "ENT", payload).Return(map[string]any{"ok": true}, tt.err).Once()
			expectRecord(ctx, mockMetrics, tt.operation, tt.status)

			var err error
			if tt.method == "CreateCVU" {
				_, err = uc.CreateCVU(ctx, "ENT", payload)
			} else {
				_, err = uc.StartTransfer(ctx, "ENT", payload)
			}

			assert.Equal(t, tt.err, err)
			mockNext.AssertExpectations(t)
			mockMetrics.AssertExpectations(t)
		})
	}
}

func TestUserUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("LookupByCUIT success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		expected := &sgproxyDomain.UserLookup{Exists: true, UserID: "U-1", Accounts: []any{}, RawCount: 1}
		mockNext.On("LookupByCUIT", ctx, "", "20123456789").Return(expected, nil).Once()
		expectRecord(ctx, mockMetrics, "user_lookup", "success")

		result, err := uc.LookupByCUIT(ctx, "", "20123456789")
		assert.NoError(t, err)
		assert.Equal(t, expected, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("LookupRaw error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("LookupRaw", ctx, "", "20123456789").Return(nil, errors.New("boom")).Once()
		expectRecord(ctx, mockMetrics, "user_lookup_raw", "error")

		result, err := uc.LookupRaw(ctx, "", "20123456789")
		assert.Error(t, err)
		assert.Nil(t, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Create success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		input := &sgproxyDomain.CreateUserInput{CUIT: "20123456789"}
		output := &sgproxyDomain.CreateUserOutput{UserID: "U-1"}
		mockNext.On("Create", ctx, "", input).Return(output, nil).Once()
		expectRecord(ctx, mockMetrics, "user_create", "success")

		result, err := uc.Create(ctx, "", input)
		assert.NoError(t, err)
		assert.Equal(t, output, result)
		mockMetrics.AssertExpectations(t)
	})
}
