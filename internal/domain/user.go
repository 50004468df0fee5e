package domain

import (
	"errors"
	"time"
)

// User represents a registered customer.
//
// NationalIDEncrypted holds the AES-GCM ciphertext of the customer's
// national ID; the plaintext never reaches the ledger core or any API
// response.
type User struct {
	ID                  string
	Email               string
	Name                string
	HashedPassword      string
	DateOfBirth         time.Time
	NationalIDEncrypted []byte
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUserInactive = errors.New("user account is inactive")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
