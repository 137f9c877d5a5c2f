package usecase

import (
	"context"
	"time"

	"github.com/maasoft/sg-gateway/internal/metrics"
	notificationDomain "github.com/maasoft/sg-gateway/internal/notification/domain"
)

// notificationUseCaseWithMetrics decorates NotificationUseCase with metrics instrumentation.
type notificationUseCaseWithMetrics struct {
	next    NotificationUseCase
	metrics metrics.BusinessMetrics
}

// NewNotificationUseCaseWithMetrics wraps a NotificationUseCase with metrics recording.
// Duplicates are recorded with their own status.
func NewNotificationUseCaseWithMetrics(
	useCase NotificationUseCase,
	m metrics.BusinessMetrics,
) NotificationUseCase {
	return &notificationUseCaseWithMetrics{next: useCase, metrics: m}
}

func (n *notificationUseCaseWithMetrics) Record(
	ctx context.Context,
	tx *notificationDomain.Transaction,
) (notificationDomain.RecordStatus, error) {
	start := time.Now()
	status, err := n.next.Record(ctx, tx)

	label := metrics.StatusFor(err)
	if err == nil && status == notificationDomain.StatusDuplicate {
		label = "duplicate"
	}

	n.metrics.RecordOperation(ctx, "notification", "transaction_record", label)
	n.metrics.RecordDuration(ctx, "notification", "transaction_record", time.Since(start), label)

	return status, err
}
