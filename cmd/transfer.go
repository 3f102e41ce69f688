package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
	"github.com/Koreanbadboy/AlbertBankApp/internal/money"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ui/prompts"
)

func NewTransferCmd(reg *ledger.Registry) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "transfer [from-id] [to-id] [amount]",
		Short: "Transfer money between two accounts",
		Long: `Transfer money between two accounts. Both histories record the
same transfer transaction. Without arguments an interactive picker runs
instead.`,
		Args:         cobra.MaximumNArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromID, toID, amountStr, err := resolveTransferArgs(reg, args)
			if err != nil {
				return err
			}

			amount, err := money.Parse(amountStr)
			if err != nil {
				return err
			}

			tx, err := reg.Transfer(fromID, toID, amount, note)
			if err != nil {
				return err
			}

			from, err := reg.Account(fromID)
			if err != nil {
				return err
			}
			to, err := reg.Account(toID)
			if err != nil {
				return err
			}

			pterm.Success.Printf("Transferred %s from %q to %q\n",
				money.Format(tx.Amount, from.Currency), from.Name, to.Name)

			summary := pterm.TableData{
				{pterm.Blue("Transaction"), tx.ID},
				{pterm.Blue(from.Name), money.Format(from.Balance, from.Currency)},
				{pterm.Blue(to.Name), money.Format(to.Balance, to.Currency)},
			}
			pterm.DefaultTable.WithData(summary).Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Free-text note for the transaction")

	return cmd
}

func resolveTransferArgs(reg *ledger.Registry, args []string) (string, string, string, error) {
	if len(args) == 3 {
		return args[0], args[1], args[2], nil
	}

	from, err := prompts.PromptAccount("Transfer from:", reg.Accounts())
	if err != nil {
		return "", "", "", err
	}

	var candidates []*ledger.Account
	for _, acc := range reg.Accounts() {
		if acc.ID != from.ID {
			candidates = append(candidates, acc)
		}
	}

	to, err := prompts.PromptAccount("Transfer to:", candidates)
	if err != nil {
		return "", "", "", err
	}

	amountStr, err := prompts.PromptAmount("Amount:", "", validateAmountInput)
	if err != nil {
		return "", "", "", err
	}

	return from.ID, to.ID, amountStr, nil
}
