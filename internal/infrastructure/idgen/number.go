package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// AccountNumberLength is the fixed width of external account numbers.
const AccountNumberLength = 10

var numberSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(AccountNumberLength), nil)

// AccountNumberGenerator draws fixed-width numeric account numbers from
// crypto/rand. Collisions are rare over a 10^10 space but not assumed
// impossible; the store's unique constraint is the final arbiter.
type AccountNumberGenerator struct{}

// NewAccountNumberGenerator creates a new AccountNumberGenerator.
func NewAccountNumberGenerator() *AccountNumberGenerator {
	return &AccountNumberGenerator{}
}

// Generate returns a zero-padded 10-digit account number.
func (g *AccountNumberGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, numberSpace)
	if err != nil {
		return "", fmt.Errorf("failed to read random source: %w", err)
	}

	return fmt.Sprintf("%0*d", AccountNumberLength, n), nil
}
