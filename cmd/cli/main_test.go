package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/iho/bankcore/internal/adapter/http"
	"github.com/iho/bankcore/internal/adapter/http/dto"
	"github.com/iho/bankcore/internal/adapter/http/handler"
	"github.com/iho/bankcore/internal/adapter/repository/memory"
	"github.com/iho/bankcore/internal/adapter/repository/postgres"
	"github.com/iho/bankcore/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()
	store := memory.NewStore(logger)
	ids := postgres.NewULIDGenerator()

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler: handler.NewAccountHandler(usecase.NewAccountUseCase(store.Accounts(), ids, ids, logger)),
		FundsHandler:   handler.NewFundsHandler(usecase.NewFundsUseCase(store, ids, nil, logger), nil),
		LedgerHandler:  handler.NewLedgerHandler(usecase.NewLedgerUseCase(store.Ledger())),
		HealthHandler:  handler.NewHealthHandler(),
		Logger:         logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--url", srv.URL}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func openAccount(t *testing.T, srv *httptest.Server, holder, balance string) string {
	t.Helper()

	out, err := runCLI(t, srv, "--json", "accounts", "create", "--holder", holder, "--balance", balance)
	require.NoError(t, err)

	var account dto.AccountResponse
	require.NoError(t, json.Unmarshal([]byte(out), &account))
	return account.Number
}

func TestCLI_AccountLifecycle(t *testing.T) {
	srv := newTestServer(t)
	number := openAccount(t, srv, "Jane", "12.50")

	out, err := runCLI(t, srv, "accounts", "get", number)
	require.NoError(t, err)
	assert.Contains(t, out, "NUMBER")
	assert.Contains(t, out, number)
	assert.Contains(t, out, "12.5")

	out, err = runCLI(t, srv, "accounts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane")
}

func TestCLI_MoveFunds(t *testing.T) {
	srv := newTestServer(t)
	alice := openAccount(t, srv, "Alice", "100")
	bob := openAccount(t, srv, "Bob", "0")

	_, err := runCLI(t, srv, "funds", "transfer", "--from", alice, "--to", bob, "--amount", "40", "--description", "rent")
	require.NoError(t, err)

	_, err = runCLI(t, srv, "funds", "withdraw", "--account", bob, "--amount", "15")
	require.NoError(t, err)

	_, err = runCLI(t, srv, "funds", "deposit", "--account", alice, "--amount", "1")
	require.NoError(t, err)

	out, err := runCLI(t, srv, "--json", "transactions", "list", "--account", bob)
	require.NoError(t, err)

	var history dto.ListTransactionsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &history))
	require.Len(t, history.Transactions, 2)
	assert.Equal(t, "Transfer", history.Transactions[0].Type)
	assert.Equal(t, "Withdrawal", history.Transactions[1].Type)

	out, err = runCLI(t, srv, "transactions", "list")
	require.NoError(t, err)
	assert.Equal(t, 4, len(strings.Split(strings.TrimSpace(out), "\n")), out)
}

func TestCLI_ReportsAPIErrors(t *testing.T) {
	srv := newTestServer(t)
	alice := openAccount(t, srv, "Alice", "5")

	_, err := runCLI(t, srv, "funds", "withdraw", "--account", alice, "--amount", "6")
	require.Error(t, err)

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)

	_, err = runCLI(t, srv, "accounts", "get", "ACCT0000000000")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestCLI_RejectsMalformedAmount(t *testing.T) {
	srv := newTestServer(t)

	_, err := runCLI(t, srv, "funds", "deposit", "--account", "ACCT0000000001", "--amount", "ten")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longerstring", 6))
	assert.Equal(t, "lo", truncate("longerstring", 2))
}
