// Package mysql provides persistence of transaction notifications for MySQL.
package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/maasoft/sg-gateway/internal/database"
	apperrors "github.com/maasoft/sg-gateway/internal/errors"
	notificationDomain "github.com/maasoft/sg-gateway/internal/notification/domain"
)

// mysqlDuplicateEntry is the MySQL error number of a unique key violation.
const mysqlDuplicateEntry = 1062

// MySQLTransactionRepository handles transaction persistence for MySQL.
type MySQLTransactionRepository struct {
	db *sql.DB
}

// NewMySQLTransactionRepository creates a new MySQLTransactionRepository.
func NewMySQLTransactionRepository(db *sql.DB) *MySQLTransactionRepository {
	return &MySQLTransactionRepository{db: db}
}

// Exists reports whether a transaction with the given id was stored.
func (m *MySQLTransactionRepository) Exists(ctx context.Context, id string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT 1 FROM transacciones_agilpagos WHERE id_transaccion = ?`

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
func (m *MySQLTransactionRepository) Create(ctx context.Context, tx *notificationDomain.Transaction) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO transacciones_agilpagos
			  (id_transaccion, tipo, numero_cuenta, importe, fecha_operacion, cvu, observaciones, fecha_registro, payload_raw)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

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
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return notificationDomain.ErrTransactionAlreadyRecorded
		}
		return apperrors.Wrap(err, "failed to create transaction")
	}
	return nil
}
