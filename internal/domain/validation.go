package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxHolderNameLength    = 255
	MaxAccountNumberLength = 64
	MaxDescriptionLength   = 500
	AccountNumberPrefix    = "ACCT"

	// MoneyScale and MaxMoneyIntegerDigits mirror the NUMERIC(20,2) columns
	// balances and amounts are stored in.
	MoneyScale            = 2
	MaxMoneyIntegerDigits = 18
)

// maxMoney is the smallest magnitude that no longer fits in
// MaxMoneyIntegerDigits integer digits.
var maxMoney = decimal.New(1, MaxMoneyIntegerDigits)

// ValidateAccountNumber validates an account number used as an external key.
func ValidateAccountNumber(number string) error {
	if number == "" {
		return ErrEmptyAccountNumber
	}

	if len(number) > MaxAccountNumberLength {
		return fmt.Errorf("%w: account number exceeds %d characters", ErrInvalidArgument, MaxAccountNumberLength)
	}

	return nil
}

// ValidateAmount validates that a movement amount is strictly positive.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return validateMoney(amount)
}

// validateMoney rejects values the ledger cannot store exactly.
func validateMoney(d decimal.Decimal) error {
	if !d.Equal(d.Truncate(MoneyScale)) {
		return ErrAmountPrecision
	}
	if d.Abs().GreaterThanOrEqual(maxMoney) {
		return ErrAmountTooLarge
	}
	return nil
}

// ValidateHolderName validates an account holder name.
func ValidateHolderName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidHolderName)
	}

	if utf8.RuneCountInString(name) > MaxHolderNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidHolderName, MaxHolderNameLength)
	}

	return nil
}

// ValidateInitialBalance validates the opening balance of a new account.
func ValidateInitialBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrNegativeInitialBalance
	}
	return validateMoney(balance)
}

// ValidateDescription validates a free-text ledger description.
func ValidateDescription(description string) error {
	if !utf8.ValidString(description) {
		return fmt.Errorf("%w: description is not valid UTF-8", ErrInvalidArgument)
	}

	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidArgument, MaxDescriptionLength)
	}
	return nil
}
