package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of ledger record. The numeric codes
// are persisted and must never be renumbered.
type TransactionType int

const (
	TransactionTypeDeposit    TransactionType = 1
	TransactionTypeWithdrawal TransactionType = 2
	TransactionTypeTransfer   TransactionType = 3
)

// TransactionTypes lists every known type in code order.
var TransactionTypes = []TransactionType{
	TransactionTypeDeposit,
	TransactionTypeWithdrawal,
	TransactionTypeTransfer,
}

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeDeposit:
		return "Deposit"
	case TransactionTypeWithdrawal:
		return "Withdrawal"
	case TransactionTypeTransfer:
		return "Transfer"
	default:
		return fmt.Sprintf("TransactionType(%d)", int(t))
	}
}

// Code returns the persisted code.
func (t TransactionType) Code() int {
	return int(t)
}

// ParseTransactionType converts a persisted code back into a TransactionType.
func ParseTransactionType(code int) (TransactionType, error) {
	t := TransactionType(code)
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer:
		return t, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidTransactionType, code)
	}
}

// Parties names the accounts a ledger record refers to. The set of
// implementations is closed: DepositParties, WithdrawalParties and
// TransferParties.
type Parties interface {
	Type() TransactionType
	sender() (string, bool)
	recipient() (string, bool)
}

// DepositParties credits a single recipient.
type DepositParties struct {
	Recipient string
}

func (DepositParties) Type() TransactionType       { return TransactionTypeDeposit }
func (DepositParties) sender() (string, bool)      { return "", false }
func (p DepositParties) recipient() (string, bool) { return p.Recipient, true }

// WithdrawalParties debits a single sender.
type WithdrawalParties struct {
	Sender string
}

func (WithdrawalParties) Type() TransactionType     { return TransactionTypeWithdrawal }
func (p WithdrawalParties) sender() (string, bool)  { return p.Sender, true }
func (WithdrawalParties) recipient() (string, bool) { return "", false }

// TransferParties moves funds from Sender to Recipient.
type TransferParties struct {
	Sender    string
	Recipient string
}

func (TransferParties) Type() TransactionType       { return TransactionTypeTransfer }
func (p TransferParties) sender() (string, bool)    { return p.Sender, true }
func (p TransferParties) recipient() (string, bool) { return p.Recipient, true }

// PartiesFor rebuilds the parties of a stored record, rejecting shapes that
// do not match the type.
func PartiesFor(t TransactionType, sender, recipient *string) (Parties, error) {
	switch t {
	case TransactionTypeDeposit:
		if sender != nil || recipient == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidParties, t)
		}
		return DepositParties{Recipient: *recipient}, nil
	case TransactionTypeWithdrawal:
		if sender == nil || recipient != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidParties, t)
		}
		return WithdrawalParties{Sender: *sender}, nil
	case TransactionTypeTransfer:
		if sender == nil || recipient == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidParties, t)
		}
		return TransferParties{Sender: *sender, Recipient: *recipient}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidTransactionType, int(t))
	}
}

// Transaction is an immutable ledger record documenting one balance change.
type Transaction struct {
	Timestamp   time.Time
	Parties     Parties
	ID          string
	Description string
	Amount      decimal.Decimal
}

// NewTransaction builds a ledger record. An empty description defaults to the
// type name.
func NewTransaction(id string, parties Parties, amount decimal.Decimal, description string, now time.Time) *Transaction {
	if description == "" {
		description = parties.Type().String()
	}

	return &Transaction{
		ID:          id,
		Timestamp:   now.UTC(),
		Parties:     parties,
		Amount:      amount,
		Description: description,
	}
}

// Type returns the record type derived from its parties.
func (t *Transaction) Type() TransactionType {
	return t.Parties.Type()
}

// SenderAccountNumber returns the debited account, if any.
func (t *Transaction) SenderAccountNumber() (string, bool) {
	return t.Parties.sender()
}

// RecipientAccountNumber returns the credited account, if any.
func (t *Transaction) RecipientAccountNumber() (string, bool) {
	return t.Parties.recipient()
}

// Involves reports whether the record references the account number.
func (t *Transaction) Involves(number string) bool {
	if s, ok := t.SenderAccountNumber(); ok && s == number {
		return true
	}
	if r, ok := t.RecipientAccountNumber(); ok && r == number {
		return true
	}
	return false
}

// Validate checks the envelope invariants of the record.
func (t *Transaction) Validate() error {
	if t.Parties == nil {
		return ErrInvalidParties
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	return nil
}
