package transaction

import (
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
	"github.com/Koreanbadboy/AlbertBankApp/internal/money"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ui"
)

type listFlags struct {
	AccountID string
	Limit     int
}

func NewListCmd(reg *ledger.Registry) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent transactions",
		Long: `List recent transactions across all accounts, newest first.
Transfers appear once even though both accounts record them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransactionList(reg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.AccountID, "account", "a", "", "Only show transactions touching this account")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 20, "Maximum number of transactions to show")

	return cmd
}

type listEntry struct {
	tx       ledger.Transaction
	currency string
}

func runTransactionList(reg *ledger.Registry, flags *listFlags) error {
	names := make(map[string]string)

	// A transfer lives in both histories under one id; dedupe on the id so
	// it renders once.
	seen := make(map[string]bool)
	var entries []listEntry

	for _, acc := range reg.Accounts() {
		names[acc.ID] = acc.Name
		if flags.AccountID != "" && acc.ID != flags.AccountID {
			continue
		}
		for _, tx := range acc.Transactions {
			if seen[tx.ID] {
				continue
			}
			seen[tx.ID] = true
			entries = append(entries, listEntry{tx: tx, currency: acc.Currency})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].tx.Timestamp.After(entries[j].tx.Timestamp)
	})
	if flags.Limit > 0 && len(entries) > flags.Limit {
		entries = entries[:flags.Limit]
	}

	headers := []string{"ID", "Date", "Type", "Amount", "From", "To", "Note"}
	tableData := pterm.TableData{headers}

	for _, e := range entries {
		tx := e.tx
		row := []string{
			tx.ID,
			tx.Timestamp.Format("2006-01-02"),
			string(tx.Type),
			money.Format(tx.Amount, e.currency),
			accountLabel(names, tx.FromAccountID),
			accountLabel(names, tx.ToAccountID),
			tx.Note,
		}
		tableData = append(tableData, row)
	}

	ui.PrintTitle("Transactions")
	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	pterm.Info.Printf("Total: %d transactions\n", len(entries))
	return nil
}

func accountLabel(names map[string]string, accountID string) string {
	if accountID == "" {
		return "-"
	}
	if name, ok := names[accountID]; ok {
		return name
	}
	// Account deleted after the transfer; the weak reference survives.
	return accountID
}
