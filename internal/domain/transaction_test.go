package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func TestTransactionType_StableCodes(t *testing.T) {
	if TransactionTypeDeposit.Code() != 1 || TransactionTypeWithdrawal.Code() != 2 || TransactionTypeTransfer.Code() != 3 {
		t.Fatal("persisted transaction type codes changed")
	}

	for _, tt := range TransactionTypes {
		parsed, err := ParseTransactionType(tt.Code())
		if err != nil || parsed != tt {
			t.Fatalf("round trip of %s failed: %v %v", tt, parsed, err)
		}
	}

	if _, err := ParseTransactionType(4); !errors.Is(err, ErrInvalidTransactionType) {
		t.Fatalf("expected ErrInvalidTransactionType, got %v", err)
	}
}

func TestNewTransaction_DefaultsDescriptionToTypeName(t *testing.T) {
	now := time.Date(2025, 8, 10, 13, 36, 7, 0, time.FixedZone("CEST", 2*3600))

	tests := []struct {
		parties Parties
		want    string
	}{
		{DepositParties{Recipient: "A"}, "Deposit"},
		{WithdrawalParties{Sender: "A"}, "Withdrawal"},
		{TransferParties{Sender: "A", Recipient: "B"}, "Transfer"},
	}

	for _, tt := range tests {
		tx := NewTransaction("id", tt.parties, decimal.NewFromInt(25), "", now)
		if tx.Description != tt.want {
			t.Errorf("expected description %q, got %q", tt.want, tx.Description)
		}
		if tx.Timestamp.Location() != time.UTC {
			t.Errorf("expected UTC timestamp, got %s", tx.Timestamp.Location())
		}
	}

	tx := NewTransaction("id", TransferParties{Sender: "A", Recipient: "B"}, decimal.NewFromInt(100), "rent", now)
	if tx.Description != "rent" {
		t.Fatalf("expected supplied description, got %q", tx.Description)
	}
}

func TestTransaction_PartyAccessors(t *testing.T) {
	deposit := NewTransaction("d", DepositParties{Recipient: "A"}, decimal.NewFromInt(1), "", time.Now())
	if _, ok := deposit.SenderAccountNumber(); ok {
		t.Error("deposit must not have a sender")
	}
	if r, ok := deposit.RecipientAccountNumber(); !ok || r != "A" {
		t.Errorf("unexpected deposit recipient %q", r)
	}

	withdrawal := NewTransaction("w", WithdrawalParties{Sender: "A"}, decimal.NewFromInt(1), "", time.Now())
	if _, ok := withdrawal.RecipientAccountNumber(); ok {
		t.Error("withdrawal must not have a recipient")
	}

	transfer := NewTransaction("t", TransferParties{Sender: "A", Recipient: "B"}, decimal.NewFromInt(1), "", time.Now())
	if !transfer.Involves("A") || !transfer.Involves("B") || transfer.Involves("C") {
		t.Error("transfer must involve exactly its two parties")
	}
	if transfer.Type() != TransactionTypeTransfer {
		t.Errorf("expected Transfer type, got %s", transfer.Type())
	}
}

func TestPartiesFor(t *testing.T) {
	tests := []struct {
		name      string
		typ       TransactionType
		sender    *string
		recipient *string
		wantErr   error
	}{
		{"deposit ok", TransactionTypeDeposit, nil, strPtr("A"), nil},
		{"deposit with sender", TransactionTypeDeposit, strPtr("B"), strPtr("A"), ErrInvalidParties},
		{"withdrawal ok", TransactionTypeWithdrawal, strPtr("A"), nil, nil},
		{"withdrawal with recipient", TransactionTypeWithdrawal, strPtr("A"), strPtr("B"), ErrInvalidParties},
		{"transfer ok", TransactionTypeTransfer, strPtr("A"), strPtr("B"), nil},
		{"transfer missing recipient", TransactionTypeTransfer, strPtr("A"), nil, ErrInvalidParties},
		{"unknown type", TransactionType(9), nil, nil, ErrInvalidTransactionType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := PartiesFor(tt.typ, tt.sender, tt.recipient)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Type() != tt.typ {
				t.Fatalf("expected type %s, got %s", tt.typ, p.Type())
			}
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	ok := NewTransaction("id", DepositParties{Recipient: "A"}, decimal.NewFromInt(1), "", time.Now())
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zero := NewTransaction("id", DepositParties{Recipient: "A"}, decimal.Zero, "", time.Now())
	if err := zero.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
