// Package domain defines the transaction notifications SG pushes to this service.
package domain

import (
	"time"

	apperrors "github.com/maasoft/sg-gateway/internal/errors"
)

// Notification errors.
var (
	// ErrTransactionAlreadyRecorded indicates a notification with the same idTransaccion was stored before.
	ErrTransactionAlreadyRecorded = apperrors.Wrap(apperrors.ErrConflict, "transaction already recorded")

	// ErrInvalidOperationDate indicates fechaOperacion is not an ISO 8601 timestamp.
	ErrInvalidOperationDate = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid fechaOperacion")
)

// RecordStatus is the outcome of recording a notification.
type RecordStatus string

const (
	// StatusRecorded means the notification was stored.
	StatusRecorded RecordStatus = "ok"
	// StatusDuplicate means the notification had been stored before and was ignored.
	StatusDuplicate RecordStatus = "duplicado"
)

// Transaction is a stored transaction notification.
type Transaction struct {
	// ID is the SG idTransaccion, unique per notification.
	ID            string
	TypeID        int64
	AccountNumber string
	// Amount keeps the decimal text SG sent, e.g. "1500.25".
	Amount        string
	OperationDate time.Time
	CVU           string
	Observations  *string
	// RawPayload is the notification body as received, compacted.
	RawPayload []byte
	ReceivedAt time.Time
}
