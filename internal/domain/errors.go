package domain

import (
	"errors"
	"fmt"
)

var (
	// Input errors
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrEmptyAccountNumber     = fmt.Errorf("%w: account number cannot be empty", ErrInvalidArgument)
	ErrInvalidAmount          = fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	ErrSameAccount            = fmt.Errorf("%w: cannot transfer funds to the same account", ErrInvalidArgument)
	ErrInvalidHolderName      = fmt.Errorf("%w: invalid holder name", ErrInvalidArgument)
	ErrNegativeInitialBalance = fmt.Errorf("%w: initial balance cannot be negative", ErrInvalidArgument)
	ErrAmountPrecision        = fmt.Errorf("%w: amount must have at most 2 decimal places", ErrInvalidArgument)
	ErrAmountTooLarge         = fmt.Errorf("%w: amount exceeds 18 integer digits", ErrInvalidArgument)

	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountExists     = errors.New("account number already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Ledger errors
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidParties         = errors.New("transaction parties do not match its type")

	// Storage errors
	ErrStorageFailure = errors.New("storage failure")

	// Unit of work misuse. These indicate a programming error in the caller.
	ErrUnitOfWorkInProgress = errors.New("a unit of work is already in progress")
	ErrNoActiveTransaction  = errors.New("no active transaction")
	ErrUnitOfWorkDisposed   = errors.New("unit of work has been disposed")
)

// IsBusinessError reports whether err is an expected business outcome rather
// than a system failure.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrAccountExists) ||
		errors.Is(err, ErrInsufficientFunds)
}
