package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobank/internal/domain"
)

const pgErrUniqueViolation = "23505"

// Constraint names from migrations; used to map write-time conflicts to
// the right domain error.
const (
	constraintAccountNumber = "accounts_number_key"
	constraintOwnerTypeOpen = "accounts_owner_type_open_idx"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create persists a new account. Uniqueness of the account number and the
// one-open-account-per-type rule are enforced by the database at write
// time, which is the authoritative check under concurrent creators.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, owner_id, number, type, status, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.ID,
		account.OwnerID,
		account.Number,
		string(account.Type),
		string(account.Status),
		decimalToNumeric(account.Balance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			switch pgErr.ConstraintName {
			case constraintAccountNumber:
				return domain.ErrDuplicateAccountNumber
			case constraintOwnerTypeOpen:
				return domain.ErrAccountTypeTaken
			}
		}

		return err
	}

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, number, type, status, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1`, id)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

// NumberExists checks whether an account number is already taken. This is
// the pre-insert optimization; Create still arbitrates races.
func (r *AccountRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE number = $1)`, number,
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// ListByOwner lists all accounts owned by ownerID.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, number, type, status, balance, created_at, updated_at
		FROM accounts
		WHERE owner_id = $1
		ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account          domain.Account
		accountType      string
		status           string
		balance          pgtype.Numeric
		created, updated pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.OwnerID,
		&account.Number,
		&accountType,
		&status,
		&balance,
		&created,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	account.Type = domain.AccountType(accountType)
	account.Status = domain.AccountStatus(status)
	account.Balance = numericToDecimal(balance)
	account.CreatedAt = created.Time
	account.UpdatedAt = updated.Time

	return &account, nil
}
