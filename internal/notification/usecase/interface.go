// Package usecase implements the recording of transaction notifications.
package usecase

import (
	"context"

	notificationDomain "github.com/maasoft/sg-gateway/internal/notification/domain"
)

// TransactionRepository defines the persistence operations for notifications.
type TransactionRepository interface {
	// Exists reports whether a transaction with the given id was stored.
	Exists(ctx context.Context, id string) (bool, error)

	// Create inserts a transaction, returning ErrTransactionAlreadyRecorded on a unique key race.
	Create(ctx context.Context, tx *notificationDomain.Transaction) error
}

// NotificationUseCase defines the operations of the notification webhook.
type NotificationUseCase interface {
	// Record stores tx unless a transaction with the same id exists.
	// Duplicates are not an error: they return StatusDuplicate.
	Record(ctx context.Context, tx *notificationDomain.Transaction) (notificationDomain.RecordStatus, error)
}
