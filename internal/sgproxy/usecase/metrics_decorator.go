package usecase

import (
	"context"
	"time"

	"github.com/maasoft/sg-gateway/internal/metrics"
	sgproxyDomain "github.com/maasoft/sg-gateway/internal/sgproxy/domain"
)

const metricsDomain = "sgproxy"

func recordOperation(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := metrics.StatusFor(err)

	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// proxyUseCaseWithMetrics decorates ProxyUseCase with metrics instrumentation.
type proxyUseCaseWithMetrics struct {
	next    ProxyUseCase
	metrics metrics.BusinessMetrics
}

// NewProxyUseCaseWithMetrics wraps a ProxyUseCase with metrics recording.
func NewProxyUseCaseWithMetrics(useCase ProxyUseCase, m metrics.BusinessMetrics) ProxyUseCase {
	return &proxyUseCaseWithMetrics{next: useCase, metrics: m}
}

func (p *proxyUseCaseWithMetrics) CreateCVU(ctx context.Context, entityID string, payload any) (any, error) {
	start := time.Now()
	result, err := p.next.CreateCVU(ctx, entityID, payload)
	recordOperation(ctx, p.metrics, "cvu_create", start, err)
	return result, err
}

func (p *proxyUseCaseWithMetrics) StartTransfer(ctx context.Context, entityID string, payload any) (any, error) {
	start := time.Now()
	result, err := p.next.StartTransfer(ctx, entityID, payload)
	recordOperation(ctx, p.metrics, "transfer_start", start, err)
	return result, err
}

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{next: useCase, metrics: m}
}

func (u *userUseCaseWithMetrics) LookupByCUIT(
	ctx context.Context,
	entityID, cuit string,
) (*sgproxyDomain.UserLookup, error) {
	start := time.Now()
	result, err := u.next.LookupByCUIT(ctx, entityID, cuit)
	recordOperation(ctx, u.metrics, "user_lookup", start, err)
	return result, err
}

func (u *userUseCaseWithMetrics) LookupRaw(
	ctx context.Context,
	entityID, cuit string,
) (*sgproxyDomain.RawResponse, error) {
	start := time.Now()
	result, err := u.next.LookupRaw(ctx, entityID, cuit)
	recordOperation(ctx, u.metrics, "user_lookup_raw", start, err)
	return result, err
}

func (u *userUseCaseWithMetrics) Create(
	ctx context.Context,
	entityID string,
	input *sgproxyDomain.CreateUserInput,
) (*sgproxyDomain.CreateUserOutput, error) {
	start := time.Now()
	result, err := u.next.Create(ctx, entityID, input)
	recordOperation(ctx, u.metrics, "user_create", start, err)
	return result, err
}
