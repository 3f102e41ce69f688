package account

import (
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
	"github.com/Koreanbadboy/AlbertBankApp/internal/money"
)

type listFlags struct {
	Type string
}

type ListCommandRunner struct {
	reg   *ledger.Registry
	flags *listFlags
}

func NewListCmd(reg *ledger.Registry) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all accounts with their balances",
		Long: `List all accounts in the system with their current balances.
You can filter by account type.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{
				reg:   reg,
				flags: flags,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Filter accounts by type (checking, savings)")

	return cmd
}

func (r *ListCommandRunner) Run() error {
	accounts := r.reg.Accounts()

	if r.flags.Type != "" {
		var filtered []*ledger.Account
		for _, acc := range accounts {
			if acc.Type == ledger.AccountType(r.flags.Type) {
				filtered = append(filtered, acc)
			}
		}
		accounts = filtered
	}

	r.displayAccountsList(accounts)

	return nil
}

func (r *ListCommandRunner) displayAccountsList(accounts []*ledger.Account) {
	headers := []string{"ID", "Name", "Type", "Balance", "Rate"}
	tableData := pterm.TableData{headers}

	for _, acc := range accounts {
		balance := money.Format(acc.Balance, acc.Currency)

		rate := "-"
		if acc.InterestRate != nil {
			rate = acc.InterestRate.Mul(decimal.NewFromInt(100)).String() + "%"
		}

		var coloredName, coloredType, coloredBalance string
		switch acc.Type {
		case ledger.TypeSavings:
			coloredName = pterm.Green(acc.Name)
			coloredType = pterm.Green(acc.Type)
			coloredBalance = pterm.Green(balance)
		default:
			coloredName = acc.Name
			coloredType = string(acc.Type)
			coloredBalance = balance
		}

		row := []string{acc.ID, coloredName, coloredType, coloredBalance, rate}
		tableData = append(tableData, row)
	}

	pterm.DefaultSection.Printf("Account List")
	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	pterm.Info.Printf("Total: %d accounts\n", len(accounts))
}
