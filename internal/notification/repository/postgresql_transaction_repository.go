// Package repository provides persistence of transaction notifications.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/maasoft/sg-gateway/internal/database"
	apperrors "github.com/maasoft/sg-gateway/internal/errors"
	notificationDomain "github.com/maasoft/sg-gateway/internal/notification/domain"
)

// pqUniqueViolation is the SQLSTATE of a unique constraint violation.
const pqUniqueViolation = "23505"

// PostgreSQLTransactionRepository handles transaction persistence for PostgreSQL.
type PostgreSQLTransactionRepository struct {
	db *sql.DB
}

// NewPostgreSQLTransactionRepository creates a new PostgreSQLTransactionRepository.
func NewPostgreSQLTransactionRepository(db *sql.DB) *PostgreSQLTransactionRepository {
	return &PostgreSQLTransactionRepository{db: db}
}

// Exists reports whether a transaction with the given id was stored.
func (r *PostgreSQLTransactionRepository) Exists(ctx context.Context, id string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT 1 FROM transacciones_agilpagos WHERE id_transaccion = $1`

	var one int
	err := querier.QueryRowContext(ctx, query, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "failed to check transaction")
	}
	return true, nil
}

// Create inserts a transaction. A concurrent insert of the same id returns
// ErrTransactionAlreadyRecorded.
func (r *PostgreSQLTransactionRepository) Create(ctx context.Context, tx *notificationDomain.Transaction) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO transacciones_agilpagos
			  (id_transaccion, tipo, numero_cuenta, importe, fecha_operacion, cvu, observaciones, fecha_registro, payload_raw)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		tx.ID,
		tx.TypeID,
		tx.AccountNumber,
		tx.Amount,
		tx.OperationDate,
		tx.CVU,
		tx.Observations,
		tx.ReceivedAt,
		string(tx.RawPayload),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return notificationDomain.ErrTransactionAlreadyRecorded
		}
		return apperrors.Wrap(err, "failed to create transaction")
	}
	return nil
}
