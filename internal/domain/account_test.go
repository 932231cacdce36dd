package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		debitAmount decimal.Decimal
		expectError bool
	}{
		{
			name:        "debit more than balance",
			balance:     decimal.NewFromInt(30),
			debitAmount: decimal.NewFromInt(50),
			expectError: true,
		},
		{
			name:        "debit exact balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(100),
			expectError: false,
		},
		{
			name:        "debit less than balance",
			balance:     decimal.RequireFromString("200.00"),
			debitAmount: decimal.RequireFromString("50.00"),
			expectError: false,
		},
		{
			name:        "fractional shortfall",
			balance:     decimal.RequireFromString("10.00"),
			debitAmount: decimal.RequireFromString("10.01"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: tt.balance}

			err := acc.ValidateDebit(tt.debitAmount)
			if tt.expectError && !errors.Is(err, ErrInsufficientFunds) {
				t.Errorf("expected ErrInsufficientFunds, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_DebitCredit(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("200.00")}

	acc.Debit(decimal.RequireFromString("50.00"))
	if !acc.Balance.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("expected 150.00 after debit, got %s", acc.Balance)
	}

	acc.Credit(decimal.RequireFromString("25.50"))
	if !acc.Balance.Equal(decimal.RequireFromString("175.50")) {
		t.Fatalf("expected 175.50 after credit, got %s", acc.Balance)
	}
}

func TestAccount_CloneIsIndependent(t *testing.T) {
	acc := &Account{Number: "ACCT1", Balance: decimal.NewFromInt(10)}
	c := acc.Clone()
	c.Credit(decimal.NewFromInt(5))

	if !acc.Balance.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("clone mutation leaked into original: %s", acc.Balance)
	}
}

func TestAccount_ValidateCredit(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("999999999999999990.00")}

	if err := acc.ValidateCredit(decimal.RequireFromString("9.99")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := acc.ValidateCredit(decimal.NewFromInt(10))
	if !errors.Is(err, ErrAmountTooLarge) || !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}
