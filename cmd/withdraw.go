package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
	"github.com/Koreanbadboy/AlbertBankApp/internal/money"
)

func NewWithdrawCmd(reg *ledger.Registry) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "withdraw [account-id] [amount]",
		Short: "Withdraw money from an account",
		Long: `Withdraw money from an account. The balance never goes negative;
a withdrawal above the current balance is refused. Without arguments an
interactive picker runs instead.`,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, amountStr, err := resolveMutationArgs(reg, args, "Withdraw from:")
			if err != nil {
				return err
			}

			amount, err := money.Parse(amountStr)
			if err != nil {
				return err
			}

			tx, err := reg.Withdraw(accountID, amount, note)
			if err != nil {
				return err
			}

			acc, err := reg.Account(accountID)
			if err != nil {
				return err
			}

			pterm.Success.Printf("Withdrew %s from %q (balance: %s)\n",
				money.Format(tx.Amount, acc.Currency), acc.Name, money.Format(acc.Balance, acc.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Free-text note for the transaction")

	return cmd
}
