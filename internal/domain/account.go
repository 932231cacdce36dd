package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a bank account holding a balance.
type Account struct {
	ID         string
	Number     string
	HolderName string
	Balance    decimal.Decimal
	CreatedAt  time.Time
}

// ValidateDebit checks if account can be debited by amount without going negative.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateCredit checks that crediting amount keeps the balance within the
// storable range.
func (a *Account) ValidateCredit(amount decimal.Decimal) error {
	if a.Balance.Add(amount).GreaterThanOrEqual(maxMoney) {
		return fmt.Errorf("%w: resulting balance", ErrAmountTooLarge)
	}
	return nil
}

// Debit subtracts amount from the in-memory balance.
func (a *Account) Debit(amount decimal.Decimal) {
	a.Balance = a.Balance.Sub(amount)
}

// Credit adds amount to the in-memory balance.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}

// Clone returns a copy of the account.
func (a *Account) Clone() *Account {
	c := *a
	return &c
}
