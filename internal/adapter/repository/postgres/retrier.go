package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

const (
	pgErrDeadlockDetected    = "40P01"
	pgErrSerializationFailed = "40001"
)

// Retrier re-runs a database operation when it fails with a transient
// concurrency error (deadlock or serialization failure). Anything else,
// including domain errors, passes through on the first attempt.
type Retrier struct {
	maxRetries  uint64
	maxInterval time.Duration
}

// NewRetrier creates a Retrier with default settings.
func NewRetrier() *Retrier {
	return &Retrier{
		maxRetries:  3,
		maxInterval: 500 * time.Millisecond,
	}
}

// Retry executes op, retrying on transient PostgreSQL errors with
// exponential backoff.
func (r *Retrier) Retry(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 10 * time.Millisecond
	bo.MaxInterval = r.maxInterval

	attempt := 0

	return backoff.Retry(func() error {
		attempt++

		err := op()
		if err == nil {
			return nil
		}

		if !isTransient(err) {
			return backoff.Permanent(err)
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("transient database error, retrying")

		return err
	}, backoff.WithContext(backoff.WithMaxRetries(bo, r.maxRetries), ctx))
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgErrDeadlockDetected || pgErr.Code == pgErrSerializationFailed
}
