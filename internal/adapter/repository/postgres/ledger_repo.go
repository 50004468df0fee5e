package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository on PostgreSQL.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	idGen   usecase.IDGenerator
	retrier *Retrier
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		idGen:   idGen,
		retrier: NewRetrier(),
	}
}

// ApplyFunding increments the account balance and records the deposit as
// one database transaction. The increment runs inside the UPDATE itself,
// so two concurrent deposits against the same account serialize on the
// row lock and neither can overwrite the other's effect. Deposits against
// different accounts do not contend.
func (r *LedgerRepository) ApplyFunding(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Transaction, decimal.Decimal, error) {
	var (
		txn        *domain.Transaction
		newBalance decimal.Decimal
	)

	err := r.retrier.Retry(ctx, func() error {
		var err error
		txn, newBalance, err = r.applyFundingOnce(ctx, accountID, amount, description)
		return err
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	return txn, newBalance, nil
}

func (r *LedgerRepository) applyFundingOnce(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Transaction, decimal.Decimal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	// Storage-level atomic increment, guarded by status. A pending or
	// closed account matches no row and is never mutated.
	var balance pgtype.Numeric
	err = tx.QueryRow(ctx, `
		UPDATE accounts
		SET balance = balance + $2, updated_at = $3
		WHERE id = $1 AND status = 'active'
		RETURNING balance`,
		accountID, decimalToNumeric(amount), timeToPgTimestamptz(now),
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, decimal.Zero, r.classifyRejection(ctx, tx, accountID)
		}

		return nil, decimal.Zero, err
	}

	txn := &domain.Transaction{
		ID:          r.idGen.Generate(),
		AccountID:   accountID,
		Kind:        domain.TransactionKindDeposit,
		Amount:      amount,
		Status:      domain.TransactionStatusCompleted,
		Description: description,
		CreatedAt:   now,
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, account_id, kind, amount, status, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		txn.ID,
		txn.AccountID,
		string(txn.Kind),
		decimalToNumeric(txn.Amount),
		string(txn.Status),
		txn.Description,
		timeToPgTimestamptz(txn.CreatedAt),
	)
	if err != nil {
		return nil, decimal.Zero, err
	}

	// Balance mutation and transaction append become visible together
	// here, or not at all.
	if err := tx.Commit(ctx); err != nil {
		return nil, decimal.Zero, err
	}

	return txn, numericToDecimal(balance), nil
}

// classifyRejection distinguishes a missing account from an inactive one
// after the guarded UPDATE matched no row.
func (r *LedgerRepository) classifyRejection(ctx context.Context, tx pgx.Tx, accountID string) error {
	var status string

	err := tx.QueryRow(ctx,
		`SELECT status FROM accounts WHERE id = $1`, accountID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAccountNotFound
		}

		return err
	}

	return domain.ErrAccountNotActive
}
