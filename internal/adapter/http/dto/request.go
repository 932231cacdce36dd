package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/usecase"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	HolderName     string          `json:"holder_name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		HolderName:     r.HolderName,
		InitialBalance: r.InitialBalance,
	}
}

// TransferRequest represents a request to move funds between two accounts.
type TransferRequest struct {
	SenderAccountNumber    string          `json:"sender_account_number"`
	RecipientAccountNumber string          `json:"recipient_account_number"`
	Amount                 decimal.Decimal `json:"amount"`
	Description            string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		SenderNumber:    r.SenderAccountNumber,
		RecipientNumber: r.RecipientAccountNumber,
		Amount:          r.Amount,
		Description:     r.Description,
	}
}

// AccountMovementRequest represents a withdrawal or deposit request.
type AccountMovementRequest struct {
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
}

// ToWithdrawInput converts to withdraw use case input.
func (r *AccountMovementRequest) ToWithdrawInput() usecase.WithdrawInput {
	return usecase.WithdrawInput{
		AccountNumber: r.AccountNumber,
		Amount:        r.Amount,
		Description:   r.Description,
	}
}

// ToDepositInput converts to deposit use case input.
func (r *AccountMovementRequest) ToDepositInput() usecase.DepositInput {
	return usecase.DepositInput{
		AccountNumber: r.AccountNumber,
		Amount:        r.Amount,
		Description:   r.Description,
	}
}
