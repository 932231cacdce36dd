package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/bankcore/internal/adapter/http/dto"
)

const descriptionWidth = 32

type options struct {
	baseURL string
	timeout time.Duration
	jsonOut bool
}

func (o *options) client() *apiClient {
	return newAPIClient(o.baseURL, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "bankcore-cli",
		Short:         "Bankcore CLI tool",
		Long:          `A command line interface for opening accounts and moving funds through the bankcore API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the bankcore API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print raw JSON instead of tables")

	rootCmd.AddCommand(accountsCmd(opts), fundsCmd(opts), transactionsCmd(opts))

	return rootCmd
}

func accountsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	var (
		holder  string
		balance string
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			initial, err := parseAmount(balance)
			if err != nil {
				return err
			}

			var account dto.AccountResponse
			err = opts.client().post(cmd.Context(), "/api/v1/accounts",
				dto.CreateAccountRequest{HolderName: holder, InitialBalance: initial}, "", &account)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts, account, func(w io.Writer) { printAccounts(w, &account) })
		},
	}
	createCmd.Flags().StringVar(&holder, "holder", "", "Account holder name")
	createCmd.Flags().StringVar(&balance, "balance", "0", "Initial balance")
	_ = createCmd.MarkFlagRequired("holder")

	getCmd := &cobra.Command{
		Use:   "get NUMBER",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var account dto.AccountResponse
			if err := opts.client().get(cmd.Context(), "/api/v1/accounts/"+url.PathEscape(args[0]), nil, &account); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts, account, func(w io.Writer) { printAccounts(w, &account) })
		},
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp dto.ListAccountsResponse
			if err := opts.client().get(cmd.Context(), "/api/v1/accounts", pageQuery(limit, offset), &resp); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts, resp, func(w io.Writer) { printAccounts(w, resp.Accounts...) })
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	cmd.AddCommand(createCmd, getCmd, listCmd)
	return cmd
}

func fundsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "funds",
		Short: "Move funds",
	}

	var idempotencyKey string
	cmd.PersistentFlags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency-Key header for safe retries")

	post := func(cmd *cobra.Command, path string, body any) error {
		var record dto.TransactionResponse
		if err := opts.client().post(cmd.Context(), path, body, idempotencyKey, &record); err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), opts, record, func(w io.Writer) { printTransactions(w, &record) })
	}

	var from, to, amount, description string
	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer funds between two accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			return post(cmd, "/api/v1/transactions/transfer", dto.TransferRequest{
				SenderAccountNumber:    from,
				RecipientAccountNumber: to,
				Amount:                 value,
				Description:            description,
			})
		},
	}
	transferCmd.Flags().StringVar(&from, "from", "", "Sender account number")
	transferCmd.Flags().StringVar(&to, "to", "", "Recipient account number")
	transferCmd.Flags().StringVar(&amount, "amount", "", "Amount to move")
	transferCmd.Flags().StringVar(&description, "description", "", "Free-form description")
	for _, name := range []string{"from", "to", "amount"} {
		_ = transferCmd.MarkFlagRequired(name)
	}

	cmd.AddCommand(
		transferCmd,
		movementCmd("withdraw", "Withdraw funds from an account", "/api/v1/transactions/withdraw", post),
		movementCmd("deposit", "Deposit funds into an account", "/api/v1/transactions/deposit", post),
	)
	return cmd
}

func movementCmd(use, short, path string, post func(*cobra.Command, string, any) error) *cobra.Command {
	var account, amount, description string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			return post(cmd, path, dto.AccountMovementRequest{
				AccountNumber: account,
				Amount:        value,
				Description:   description,
			})
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "Account number")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to move")
	cmd.Flags().StringVar(&description, "description", "", "Free-form description")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func transactionsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Ledger operations",
	}

	var (
		account       string
		limit, offset int
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger records, newest last",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := "/api/v1/transactions"
			if account != "" {
				path = "/api/v1/accounts/" + url.PathEscape(account) + "/transactions"
			}

			var resp dto.ListTransactionsResponse
			if err := opts.client().get(cmd.Context(), path, pageQuery(limit, offset), &resp); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts, resp, func(w io.Writer) { printTransactions(w, resp.Transactions...) })
		},
	}
	listCmd.Flags().StringVar(&account, "account", "", "Only records involving this account")
	listCmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	cmd.AddCommand(listCmd)
	return cmd
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

func render(w io.Writer, opts *options, v any, table func(io.Writer)) error {
	if opts.jsonOut {
		return printJSON(w, v)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printAccounts(w io.Writer, accounts ...*dto.AccountResponse) {
	fmt.Fprintln(w, "NUMBER\tHOLDER\tBALANCE\tCREATED")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Number, a.HolderName, a.Balance.String(), a.CreatedAt.Format(time.RFC3339))
	}
}

func printTransactions(w io.Writer, records ...*dto.TransactionResponse) {
	fmt.Fprintln(w, "ID\tTYPE\tFROM\tTO\tAMOUNT\tDESCRIPTION")
	for _, t := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Type, party(t.SenderAccountNumber), party(t.RecipientAccountNumber),
			t.Amount.String(), truncate(t.Description, descriptionWidth))
	}
}

func party(number *string) string {
	if number == nil {
		return "-"
	}
	return *number
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
