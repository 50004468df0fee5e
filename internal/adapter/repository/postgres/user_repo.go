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

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create persists a new user. Email uniqueness is enforced by the
// database constraint.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, name, hashed_password, date_of_birth, national_id_encrypted, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID,
		user.Email,
		user.Name,
		user.HashedPassword,
		timeToPgTimestamptz(user.DateOfBirth),
		user.NationalIDEncrypted,
		user.Active,
		timeToPgTimestamptz(user.CreatedAt),
		timeToPgTimestamptz(user.UpdatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrEmailTaken
		}

		return err
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, hashed_password, date_of_birth, national_id_encrypted, active, created_at, updated_at
		FROM users
		WHERE id = $1`, id)

	return scanUser(row)
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, hashed_password, date_of_birth, national_id_encrypted, active, created_at, updated_at
		FROM users
		WHERE email = $1`, email)

	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user             domain.User
		dob              pgtype.Timestamptz
		created, updated pgtype.Timestamptz
	)

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.HashedPassword,
		&dob,
		&user.NationalIDEncrypted,
		&user.Active,
		&created,
		&updated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	user.DateOfBirth = dob.Time
	user.CreatedAt = created.Time
	user.UpdatedAt = updated.Time

	return &user, nil
}
