package usecase

import (
	"context"
	"time"

	"github.com/maasoft/sg-gateway/internal/database"
	apperrors "github.com/maasoft/sg-gateway/internal/errors"
	notificationDomain "github.com/maasoft/sg-gateway/internal/notification/domain"
)

// notificationUseCase implements NotificationUseCase.
type notificationUseCase struct {
	txManager database.TxManager
	repo      TransactionRepository
	now       func() time.Time
}

func (n *notificationUseCase) Record(
	ctx context.Context,
	tx *notificationDomain.Transaction,
) (notificationDomain.RecordStatus, error) {
	if tx.ReceivedAt.IsZero() {
		tx.ReceivedAt = n.now().UTC()
	}

	status := notificationDomain.StatusRecorded
	err := n.txManager.WithTx(ctx, func(ctx context.Context) error {
		exists, err := n.repo.Exists(ctx, tx.ID)
		if err != nil {
			return err
		}
		if exists {
			status = notificationDomain.StatusDuplicate
			return nil
		}
		return n.repo.Create(ctx, tx)
	})

	switch {
	case err == nil:
		return status, nil
	case apperrors.Is(err, notificationDomain.ErrTransactionAlreadyRecorded):
		return notificationDomain.StatusDuplicate, nil
	default:
		return "", apperrors.Wrapf(err, "failed to record transaction %s", tx.ID)
	}
}

// NewNotificationUseCase creates a new NotificationUseCase.
func NewNotificationUseCase(txManager database.TxManager, repo TransactionRepository) NotificationUseCase {
	return &notificationUseCase{
		txManager: txManager,
		repo:      repo,
		now:       time.Now,
	}
}
