package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
	"github.com/iho/bankcore/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		setupMocks  func(*mocks.MockAccountRepository, *mocks.MockIDGenerator, *mocks.MockAccountNumberGenerator)
		expectError error
	}{
		{
			name:  "successful account creation",
			input: usecase.CreateAccountInput{HolderName: "  Jane Doe ", InitialBalance: decimal.NewFromInt(200)},
			setupMocks: func(repo *mocks.MockAccountRepository, idGen *mocks.MockIDGenerator, numGen *mocks.MockAccountNumberGenerator) {
				idGen.EXPECT().Generate().Return("id-1")
				numGen.EXPECT().GenerateAccountNumber().Return("ACCT0000000001")
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, account *domain.Account) error {
						if account.HolderName != "Jane Doe" {
							t.Errorf("expected trimmed holder name, got %q", account.HolderName)
						}
						return nil
					})
			},
		},
		{
			name:  "retries on number collision",
			input: usecase.CreateAccountInput{HolderName: "Jane"},
			setupMocks: func(repo *mocks.MockAccountRepository, idGen *mocks.MockIDGenerator, numGen *mocks.MockAccountNumberGenerator) {
				idGen.EXPECT().Generate().Return("id").Times(2)
				gomock.InOrder(
					numGen.EXPECT().GenerateAccountNumber().Return("ACCT0000000001"),
					numGen.EXPECT().GenerateAccountNumber().Return("ACCT0000000002"),
				)
				gomock.InOrder(
					repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrAccountExists),
					repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
		},
		{
			name:  "gives up after repeated collisions",
			input: usecase.CreateAccountInput{HolderName: "Jane"},
			setupMocks: func(repo *mocks.MockAccountRepository, idGen *mocks.MockIDGenerator, numGen *mocks.MockAccountNumberGenerator) {
				idGen.EXPECT().Generate().Return("id").Times(3)
				numGen.EXPECT().GenerateAccountNumber().Return("ACCT0000000001").Times(3)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrAccountExists).Times(3)
			},
			expectError: domain.ErrAccountExists,
		},
		{
			name:        "empty holder name",
			input:       usecase.CreateAccountInput{HolderName: "   "},
			setupMocks:  func(*mocks.MockAccountRepository, *mocks.MockIDGenerator, *mocks.MockAccountNumberGenerator) {},
			expectError: domain.ErrInvalidHolderName,
		},
		{
			name:        "negative initial balance",
			input:       usecase.CreateAccountInput{HolderName: "Jane", InitialBalance: decimal.NewFromInt(-1)},
			setupMocks:  func(*mocks.MockAccountRepository, *mocks.MockIDGenerator, *mocks.MockAccountNumberGenerator) {},
			expectError: domain.ErrNegativeInitialBalance,
		},
		{
			name:        "initial balance with sub-cent precision",
			input:       usecase.CreateAccountInput{HolderName: "Jane", InitialBalance: decimal.RequireFromString("10.005")},
			setupMocks:  func(*mocks.MockAccountRepository, *mocks.MockIDGenerator, *mocks.MockAccountNumberGenerator) {},
			expectError: domain.ErrAmountPrecision,
		},
		{
			name:        "initial balance beyond eighteen integer digits",
			input:       usecase.CreateAccountInput{HolderName: "Jane", InitialBalance: decimal.New(1, 19)},
			setupMocks:  func(*mocks.MockAccountRepository, *mocks.MockIDGenerator, *mocks.MockAccountNumberGenerator) {},
			expectError: domain.ErrAmountTooLarge,
		},
		{
			name:  "storage failure",
			input: usecase.CreateAccountInput{HolderName: "Jane"},
			setupMocks: func(repo *mocks.MockAccountRepository, idGen *mocks.MockIDGenerator, numGen *mocks.MockAccountNumberGenerator) {
				idGen.EXPECT().Generate().Return("id")
				numGen.EXPECT().GenerateAccountNumber().Return("ACCT0000000001")
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrStorageFailure)
			},
			expectError: domain.ErrStorageFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockAccountRepository(ctrl)
			idGen := mocks.NewMockIDGenerator(ctrl)
			numGen := mocks.NewMockAccountNumberGenerator(ctrl)
			tt.setupMocks(repo, idGen, numGen)

			uc := usecase.NewAccountUseCase(repo, idGen, numGen, zerolog.Nop())
			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account == nil || account.Number == "" {
				t.Fatalf("expected account, got %+v", account)
			}
		})
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	uc := usecase.NewAccountUseCase(repo, nil, nil, zerolog.Nop())

	repo.EXPECT().GetByNumber(gomock.Any(), "ACCT1").Return(&domain.Account{Number: "ACCT1"}, nil)
	repo.EXPECT().GetByNumber(gomock.Any(), "GHOST").Return(nil, domain.ErrAccountNotFound)

	account, err := uc.GetAccount(context.Background(), "ACCT1")
	if err != nil || account.Number != "ACCT1" {
		t.Fatalf("unexpected result %+v, %v", account, err)
	}

	if _, err := uc.GetAccount(context.Background(), "GHOST"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	if _, err := uc.GetAccount(context.Background(), ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestAccountUseCase_ListAccountsNormalizesPage(t *testing.T) {
	tests := []struct {
		name       string
		input      usecase.ListAccountsInput
		wantLimit  int
		wantOffset int
	}{
		{"defaults", usecase.ListAccountsInput{}, usecase.DefaultPageLimit, 0},
		{"capped", usecase.ListAccountsInput{Limit: 1000, Offset: 10}, usecase.MaxPageLimit, 10},
		{"negative offset", usecase.ListAccountsInput{Limit: 5, Offset: -3}, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockAccountRepository(ctrl)
			repo.EXPECT().List(gomock.Any(), tt.wantLimit, tt.wantOffset).Return(nil, nil)

			uc := usecase.NewAccountUseCase(repo, nil, nil, zerolog.Nop())
			if _, err := uc.ListAccounts(context.Background(), tt.input); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccountUseCase_CreateAccountRecordsMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)
	numGen := mocks.NewMockAccountNumberGenerator(ctrl)

	idGen.EXPECT().Generate().Return("id").Times(2)
	numGen.EXPECT().GenerateAccountNumber().Return("ACCT0000000001").Times(2)
	gomock.InOrder(
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down")),
	)

	m := mocks.NewMockAccountMetrics(ctrl)
	m.EXPECT().ObserveAccountCreated().Times(1)

	uc := usecase.NewAccountUseCase(repo, idGen, numGen, zerolog.Nop()).WithMetrics(m)

	if _, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{HolderName: "Jane"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{HolderName: "Jane"}); err == nil {
		t.Fatal("expected repository error")
	}
}
