package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	account := &domain.Account{
		ID:         "acc-1",
		Number:     "ACCT0000000001",
		HolderName: "Jane",
		Balance:    decimal.RequireFromString("123.45"),
		CreatedAt:  now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != account.ID || resp.Number != account.Number || !resp.Balance.Equal(account.Balance) {
		t.Fatalf("unexpected account response: %+v", resp)
	}

	list := AccountsFromDomain([]*domain.Account{account})
	if len(list) != 1 || list[0].ID != account.ID {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}
}

func TestTransactionFromDomain(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		parties       domain.Parties
		wantType      string
		wantSender    bool
		wantRecipient bool
	}{
		{"deposit", domain.DepositParties{Recipient: "A"}, "Deposit", false, true},
		{"withdrawal", domain.WithdrawalParties{Sender: "A"}, "Withdrawal", true, false},
		{"transfer", domain.TransferParties{Sender: "A", Recipient: "B"}, "Transfer", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := domain.NewTransaction("tx", tt.parties, decimal.NewFromInt(5), "", now)
			resp := TransactionFromDomain(record)

			if resp.Type != tt.wantType {
				t.Fatalf("expected type %s, got %s", tt.wantType, resp.Type)
			}
			if (resp.SenderAccountNumber != nil) != tt.wantSender {
				t.Fatalf("unexpected sender %v", resp.SenderAccountNumber)
			}
			if (resp.RecipientAccountNumber != nil) != tt.wantRecipient {
				t.Fatalf("unexpected recipient %v", resp.RecipientAccountNumber)
			}
		})
	}
}

func TestTransactionResponseJSONOmitsNoParty(t *testing.T) {
	record := domain.NewTransaction("tx", domain.DepositParties{Recipient: "A"}, decimal.NewFromInt(5), "", time.Now())

	raw, err := json.Marshal(TransactionFromDomain(record))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded["sender_account_number"] != nil || decoded["recipient_account_number"] != "A" {
		t.Fatalf("unexpected JSON %s", raw)
	}
}
