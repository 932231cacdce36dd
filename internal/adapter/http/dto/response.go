package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	HolderName string          `json:"holder_name"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:         a.ID,
		Number:     a.Number,
		HolderName: a.HolderName,
		Balance:    a.Balance,
		CreatedAt:  a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionResponse represents a ledger record in API responses.
type TransactionResponse struct {
	ID                     string          `json:"id"`
	Type                   string          `json:"type"`
	SenderAccountNumber    *string         `json:"sender_account_number"`
	RecipientAccountNumber *string         `json:"recipient_account_number"`
	Amount                 decimal.Decimal `json:"amount"`
	Description            string          `json:"description"`
	Timestamp              time.Time       `json:"timestamp"`
}

// TransactionFromDomain converts a ledger record to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:          t.ID,
		Type:        t.Type().String(),
		Amount:      t.Amount,
		Description: t.Description,
		Timestamp:   t.Timestamp,
	}

	if sender, ok := t.SenderAccountNumber(); ok {
		resp.SenderAccountNumber = &sender
	}

	if recipient, ok := t.RecipientAccountNumber(); ok {
		resp.RecipientAccountNumber = &recipient
	}

	return resp
}

// TransactionsFromDomain converts ledger records to responses.
func TransactionsFromDomain(records []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(records))
	for i, t := range records {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse represents a page of ledger records.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
