package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	numberGen   AccountNumberGenerator
	metrics     AccountMetrics
	logger      zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator, numberGen AccountNumberGenerator, logger zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		numberGen:   numberGen,
		logger:      logger.With().Str("component", "accounts").Logger(),
	}
}

// WithMetrics records account creations on m.
func (uc *AccountUseCase) WithMetrics(m AccountMetrics) *AccountUseCase {
	uc.metrics = m
	return uc
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	HolderName     string
	InitialBalance decimal.Decimal
}

// CreateAccount opens a new account with a freshly generated number.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateHolderName(input.HolderName); err != nil {
		return nil, err
	}

	if err := domain.ValidateInitialBalance(input.InitialBalance); err != nil {
		return nil, err
	}

	var err error
	for range accountNumberAttempts {
		account := &domain.Account{
			ID:         uc.idGen.Generate(),
			Number:     uc.numberGen.GenerateAccountNumber(),
			HolderName: strings.TrimSpace(input.HolderName),
			Balance:    input.InitialBalance,
			CreatedAt:  time.Now().UTC(),
		}

		err = uc.accountRepo.Create(ctx, account)
		if err == nil {
			uc.logger.Info().
				Str("account", account.Number).
				Str("initial_balance", account.Balance.String()).
				Msg("account created")

			if uc.metrics != nil {
				uc.metrics.ObserveAccountCreated()
			}

			return account, nil
		}

		if !errors.Is(err, domain.ErrAccountExists) {
			return nil, err
		}

		uc.logger.Warn().Str("account", account.Number).Msg("generated account number collided, retrying")
	}

	return nil, err
}

// GetAccount retrieves an account by number without locking it.
func (uc *AccountUseCase) GetAccount(ctx context.Context, number string) (*domain.Account, error) {
	if err := domain.ValidateAccountNumber(number); err != nil {
		return nil, err
	}

	return uc.accountRepo.GetByNumber(ctx, number)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := normalizePage(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
