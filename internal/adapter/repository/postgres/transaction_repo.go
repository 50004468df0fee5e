package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// ListByAccount returns transactions newest first. The seq column is a
// bigserial assigned at insert, so equal timestamps resolve to a total,
// deterministic order with the later insertion first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, kind, amount, status, description, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		var (
			txn     domain.Transaction
			kind    string
			status  string
			amount  pgtype.Numeric
			created pgtype.Timestamptz
		)

		err := rows.Scan(&txn.ID, &txn.AccountID, &kind, &amount, &status, &txn.Description, &created)
		if err != nil {
			return nil, err
		}

		txn.Kind = domain.TransactionKind(kind)
		txn.Status = domain.TransactionStatus(status)
		txn.Amount = numericToDecimal(amount)
		txn.CreatedAt = created.Time

		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}

// SumCompleted returns completed deposits minus completed withdrawals.
func (r *TransactionRepository) SumCompleted(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var sum pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN kind = 'withdrawal' THEN -amount ELSE amount END), 0)
		FROM transactions
		WHERE account_id = $1 AND status = 'completed'`,
		accountID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}
