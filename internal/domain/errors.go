package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountTypeTaken       = errors.New("owner already holds an open account of this type")
	ErrDuplicateAccountNumber = errors.New("account number already exists")
	ErrAccountNotActive       = errors.New("account is not active")
	ErrNumberSpaceExhausted   = errors.New("account number space exhausted")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("amount must be positive")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
)
