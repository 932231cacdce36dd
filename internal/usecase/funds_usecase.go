package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// FundsUseCase moves money between accounts. Every operation runs in its own
// unit of work and appends exactly one ledger record.
type FundsUseCase struct {
	uowFactory UnitOfWorkFactory
	idGen      IDGenerator
	metrics    FundsMetrics
	logger     zerolog.Logger
	now        func() time.Time
}

// NewFundsUseCase creates a new FundsUseCase. metrics may be nil.
func NewFundsUseCase(
	uowFactory UnitOfWorkFactory,
	idGen IDGenerator,
	metrics FundsMetrics,
	logger zerolog.Logger,
) *FundsUseCase {
	return &FundsUseCase{
		uowFactory: uowFactory,
		idGen:      idGen,
		metrics:    metrics,
		logger:     logger.With().Str("component", "funds").Logger(),
		now:        time.Now,
	}
}

// TransferInput represents input for a transfer between two accounts.
type TransferInput struct {
	SenderNumber    string
	RecipientNumber string
	Description     string
	Amount          decimal.Decimal
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountNumber string
	Description   string
	Amount        decimal.Decimal
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountNumber string
	Description   string
	Amount        decimal.Decimal
}

// Transfer debits the sender and credits the recipient.
func (uc *FundsUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	start := time.Now()

	var record *domain.Transaction

	err := WithinUnitOfWork(ctx, uc.uowFactory, func(ctx context.Context, uow UnitOfWork) error {
		if err := validateTransfer(input); err != nil {
			return err
		}

		locked, err := lockInOrder(ctx, uow.Accounts(), input.SenderNumber, input.RecipientNumber)
		if err != nil {
			return err
		}

		sender := locked[input.SenderNumber]
		recipient := locked[input.RecipientNumber]

		if err := sender.ValidateDebit(input.Amount); err != nil {
			return err
		}

		if err := recipient.ValidateCredit(input.Amount); err != nil {
			return err
		}

		sender.Debit(input.Amount)
		recipient.Credit(input.Amount)

		record = domain.NewTransaction(
			uc.idGen.Generate(),
			domain.TransferParties{Sender: input.SenderNumber, Recipient: input.RecipientNumber},
			input.Amount,
			input.Description,
			uc.now(),
		)

		return uow.Ledger().Append(ctx, record)
	})

	uc.observe(OperationTransfer, input.Amount, start, err)

	if err != nil {
		uc.failureEvent(err).
			Str("operation", OperationTransfer).
			Str("sender", input.SenderNumber).
			Str("recipient", input.RecipientNumber).
			Str("amount", input.Amount.String()).
			Msg("transfer failed")

		return nil, err
	}

	uc.logger.Info().
		Str("operation", OperationTransfer).
		Str("transaction_id", record.ID).
		Str("sender", input.SenderNumber).
		Str("recipient", input.RecipientNumber).
		Str("amount", input.Amount.String()).
		Msg("transfer completed")

	return record, nil
}

// Withdraw debits an account.
func (uc *FundsUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Transaction, error) {
	start := time.Now()

	var record *domain.Transaction

	err := WithinUnitOfWork(ctx, uc.uowFactory, func(ctx context.Context, uow UnitOfWork) error {
		if err := validateSingle(input.AccountNumber, input.Amount, input.Description); err != nil {
			return err
		}

		account, err := lockAccount(ctx, uow.Accounts(), input.AccountNumber)
		if err != nil {
			return err
		}

		if err := account.ValidateDebit(input.Amount); err != nil {
			return err
		}

		account.Debit(input.Amount)

		record = domain.NewTransaction(
			uc.idGen.Generate(),
			domain.WithdrawalParties{Sender: input.AccountNumber},
			input.Amount,
			input.Description,
			uc.now(),
		)

		return uow.Ledger().Append(ctx, record)
	})

	uc.observe(OperationWithdraw, input.Amount, start, err)

	if err != nil {
		uc.failureEvent(err).
			Str("operation", OperationWithdraw).
			Str("account", input.AccountNumber).
			Str("amount", input.Amount.String()).
			Msg("withdraw failed")

		return nil, err
	}

	uc.logger.Info().
		Str("operation", OperationWithdraw).
		Str("transaction_id", record.ID).
		Str("account", input.AccountNumber).
		Str("amount", input.Amount.String()).
		Msg("withdraw completed")

	return record, nil
}

// Deposit credits an account.
func (uc *FundsUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	start := time.Now()

	var record *domain.Transaction

	err := WithinUnitOfWork(ctx, uc.uowFactory, func(ctx context.Context, uow UnitOfWork) error {
		if err := validateSingle(input.AccountNumber, input.Amount, input.Description); err != nil {
			return err
		}

		account, err := lockAccount(ctx, uow.Accounts(), input.AccountNumber)
		if err != nil {
			return err
		}

		if err := account.ValidateCredit(input.Amount); err != nil {
			return err
		}

		account.Credit(input.Amount)

		record = domain.NewTransaction(
			uc.idGen.Generate(),
			domain.DepositParties{Recipient: input.AccountNumber},
			input.Amount,
			input.Description,
			uc.now(),
		)

		return uow.Ledger().Append(ctx, record)
	})

	uc.observe(OperationDeposit, input.Amount, start, err)

	if err != nil {
		uc.failureEvent(err).
			Str("operation", OperationDeposit).
			Str("account", input.AccountNumber).
			Str("amount", input.Amount.String()).
			Msg("deposit failed")

		return nil, err
	}

	uc.logger.Info().
		Str("operation", OperationDeposit).
		Str("transaction_id", record.ID).
		Str("account", input.AccountNumber).
		Str("amount", input.Amount.String()).
		Msg("deposit completed")

	return record, nil
}

func (uc *FundsUseCase) observe(operation string, amount decimal.Decimal, start time.Time, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ObserveMovement(operation, amount, time.Since(start), err)
}

// failureEvent picks the log level: business rejections are warnings,
// everything else is an error.
func (uc *FundsUseCase) failureEvent(err error) *zerolog.Event {
	if domain.IsBusinessError(err) {
		return uc.logger.Warn().Err(err)
	}
	return uc.logger.Error().Err(err)
}

func validateTransfer(input TransferInput) error {
	if err := domain.ValidateAccountNumber(input.SenderNumber); err != nil {
		return err
	}

	if err := domain.ValidateAccountNumber(input.RecipientNumber); err != nil {
		return err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return err
	}

	if input.SenderNumber == input.RecipientNumber {
		return domain.ErrSameAccount
	}

	return domain.ValidateDescription(input.Description)
}

func validateSingle(number string, amount decimal.Decimal, description string) error {
	if err := domain.ValidateAccountNumber(number); err != nil {
		return err
	}

	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}

	return domain.ValidateDescription(description)
}

func lockAccount(ctx context.Context, store LockedAccountStore, number string) (*domain.Account, error) {
	account, err := store.GetByNumberForUpdate(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, number)
		}
		return nil, err
	}

	return account, nil
}

// lockInOrder locks the accounts in lexicographic order regardless of the
// roles they play, so two transfers in opposite directions cannot deadlock.
func lockInOrder(ctx context.Context, store LockedAccountStore, numbers ...string) (map[string]*domain.Account, error) {
	sorted := append([]string(nil), numbers...)
	sort.Strings(sorted)

	locked := make(map[string]*domain.Account, len(sorted))
	for _, number := range sorted {
		if _, ok := locked[number]; ok {
			continue
		}

		account, err := lockAccount(ctx, store, number)
		if err != nil {
			return nil, err
		}

		locked[number] = account
	}

	return locked, nil
}
