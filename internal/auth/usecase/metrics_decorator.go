package usecase

import (
	"context"
	"time"

	authDomain "github.com/maasoft/sg-gateway/internal/auth/domain"
	"github.com/maasoft/sg-gateway/internal/metrics"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFor(err)

	s.metrics.RecordOperation(ctx, "auth", operation, status)
	s.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// GetOrRefreshToken records metrics for token retrieval, cached or not.
func (s *sessionUseCaseWithMetrics) GetOrRefreshToken(ctx context.Context, entityID string) (string, error) {
	start := time.Now()
	token, err := s.next.GetOrRefreshToken(ctx, entityID)
	s.record(ctx, "token_get", start, err)
	return token, err
}

// AuthHeaders records metrics for Authorization header building.
func (s *sessionUseCaseWithMetrics) AuthHeaders(ctx context.Context, entityID string) (map[string]string, error) {
	start := time.Now()
	headers, err := s.next.AuthHeaders(ctx, entityID)
	s.record(ctx, "auth_headers", start, err)
	return headers, err
}

// EnsureToken records metrics for explicit token warm-up.
func (s *sessionUseCaseWithMetrics) EnsureToken(
	ctx context.Context,
	entityID string,
) (authDomain.CacheStatus, error) {
	start := time.Now()
	status, err := s.next.EnsureToken(ctx, entityID)
	s.record(ctx, "token_ensure", start, err)
	return status, err
}

// LoginDebug records metrics for forced diagnostic logins.
func (s *sessionUseCaseWithMetrics) LoginDebug(
	ctx context.Context,
	entityID string,
) (*authDomain.DebugSummary, error) {
	start := time.Now()
	summary, err := s.next.LoginDebug(ctx, entityID)
	s.record(ctx, "login_debug", start, err)
	return summary, err
}

// CacheStatus records metrics for cache inspection.
func (s *sessionUseCaseWithMetrics) CacheStatus(
	ctx context.Context,
	entityID string,
) (authDomain.CacheStatus, error) {
	start := time.Now()
	status, err := s.next.CacheStatus(ctx, entityID)
	s.record(ctx, "cache_status", start, err)
	return status, err
}
