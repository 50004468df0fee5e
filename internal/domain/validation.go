package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrPasswordTooWeak      = errors.New("password does not meet requirements")
	ErrAmountTooSmall       = errors.New("amount below minimum allowed")
	ErrAmountTooLarge       = errors.New("amount exceeds maximum allowed")
	ErrInvalidCardNumber    = errors.New("invalid card number")
	ErrInvalidCardExpiry    = errors.New("invalid card expiry")
	ErrInvalidRoutingNumber = errors.New("invalid routing number")
	ErrInvalidDateOfBirth   = errors.New("invalid date of birth")
	ErrInvalidAccountType   = errors.New("invalid account type")
)

// Validation constants
const (
	MinDepositAmount  = "0.01"
	MaxDepositAmount  = "1000000000" // 1 billion
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MinAccountAge     = 18 // years
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	digitsRegex = regexp.MustCompile(`^[0-9]+$`)
	expiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	hasUpperRe  = regexp.MustCompile(`[A-Z]`)
	hasLowerRe  = regexp.MustCompile(`[a-z]`)
	hasNumberRe = regexp.MustCompile(`[0-9]`)
)

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	if !hasUpperRe.MatchString(password) || !hasLowerRe.MatchString(password) || !hasNumberRe.MatchString(password) {
		return fmt.Errorf("%w: must contain uppercase, lowercase, and numbers", ErrPasswordTooWeak)
	}

	return nil
}

// ValidateAmount validates a deposit amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	minAmount, _ := decimal.NewFromString(MinDepositAmount)
	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountTooSmall, MinDepositAmount)
	}

	maxAmount, _ := decimal.NewFromString(MaxDepositAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxDepositAmount)
	}

	return nil
}

// ValidateCardNumber validates a card number with the Luhn mod-10 check.
func ValidateCardNumber(number string) error {
	cleaned := strings.ReplaceAll(number, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")

	if len(cleaned) < 13 || len(cleaned) > 19 || !digitsRegex.MatchString(cleaned) {
		return ErrInvalidCardNumber
	}

	if !passesLuhn(cleaned) {
		return ErrInvalidCardNumber
	}

	return nil
}

// passesLuhn implements the standard mod-10 check.
func passesLuhn(number string) bool {
	sum := 0
	alternate := false

	for i := len(number) - 1; i >= 0; i-- {
		n := int(number[i] - '0')
		if alternate {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alternate = !alternate
	}

	return sum%10 == 0
}

// ValidateCardExpiry validates an MM/YY expiry and rejects expired cards.
func ValidateCardExpiry(expiry string) error {
	m := expiryRegex.FindStringSubmatch(expiry)
	if m == nil {
		return ErrInvalidCardExpiry
	}

	exp, err := time.Parse("01/06", m[1]+"/"+m[2])
	if err != nil {
		return ErrInvalidCardExpiry
	}

	// Valid through the last day of the expiry month.
	endOfMonth := exp.AddDate(0, 1, 0)
	if !time.Now().UTC().Before(endOfMonth) {
		return fmt.Errorf("%w: card has expired", ErrInvalidCardExpiry)
	}

	return nil
}

// ValidateRoutingNumber validates a 9-digit ABA routing number including
// its checksum (weights 3, 7, 1).
func ValidateRoutingNumber(number string) error {
	if len(number) != 9 || !digitsRegex.MatchString(number) {
		return ErrInvalidRoutingNumber
	}

	weights := [9]int{3, 7, 1, 3, 7, 1, 3, 7, 1}

	sum := 0
	for i := range 9 {
		sum += int(number[i]-'0') * weights[i]
	}

	if sum%10 != 0 {
		return fmt.Errorf("%w: checksum failed", ErrInvalidRoutingNumber)
	}

	return nil
}

// ValidateDateOfBirth rejects future dates and customers under the
// minimum account age.
func ValidateDateOfBirth(dob time.Time) error {
	now := time.Now().UTC()

	if dob.After(now) {
		return fmt.Errorf("%w: date is in the future", ErrInvalidDateOfBirth)
	}

	if dob.AddDate(MinAccountAge, 0, 0).After(now) {
		return fmt.Errorf("%w: must be at least %d years old", ErrInvalidDateOfBirth, MinAccountAge)
	}

	return nil
}

// ValidateAccountType checks the account type against the known set.
func ValidateAccountType(t AccountType) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidAccountType, t)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 100
	const DefaultPageSize = 20

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
