package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
	"github.com/Koreanbadboy/AlbertBankApp/internal/money"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ui/prompts"
)

func NewDepositCmd(reg *ledger.Registry) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "deposit [account-id] [amount]",
		Short: "Deposit money into an account",
		Long: `Deposit money into an account. Without arguments an interactive
picker runs instead.

Example: albert deposit 3f8a... 150.50 --note "paycheck"`,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, amountStr, err := resolveMutationArgs(reg, args, "Deposit into:")
			if err != nil {
				return err
			}

			amount, err := money.Parse(amountStr)
			if err != nil {
				return err
			}

			tx, err := reg.Deposit(accountID, amount, note)
			if err != nil {
				return err
			}

			acc, err := reg.Account(accountID)
			if err != nil {
				return err
			}

			pterm.Success.Printf("Deposited %s into %q (balance: %s)\n",
				money.Format(tx.Amount, acc.Currency), acc.Name, money.Format(acc.Balance, acc.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Free-text note for the transaction")

	return cmd
}

// resolveMutationArgs fills in the account id and amount from args, falling
// back to interactive prompts for whatever is missing.
func resolveMutationArgs(reg *ledger.Registry, args []string, pickerTitle string) (string, string, error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}

	var accountID string
	if len(args) == 1 {
		accountID = args[0]
	} else {
		acc, err := prompts.PromptAccount(pickerTitle, reg.Accounts())
		if err != nil {
			return "", "", err
		}
		accountID = acc.ID
	}

	amountStr, err := prompts.PromptAmount("Amount:", "", validateAmountInput)
	if err != nil {
		return "", "", err
	}

	return accountID, amountStr, nil
}

func validateAmountInput(s string) error {
	amount, err := money.Parse(s)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}
