package transaction

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Koreanbadboy/AlbertBankApp/internal/errhandler"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
	"github.com/Koreanbadboy/AlbertBankApp/internal/money"
)

// surveyOpts contains custom options for all survey prompts
var surveyOpts = []survey.AskOpt{
	survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "-"
	}),
}

func NewDeleteCmd(reg *ledger.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction",
		Long: `Delete a transaction from the first account whose history
contains it; the account's balance is recomputed from the remaining
records. The twin copy of a transfer on the counterpart account is NOT
removed. This action cannot be undone.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransactionDelete(reg, args[0])
		},
	}
}

func runTransactionDelete(reg *ledger.Registry, txID string) error {
	tx, acc, err := reg.FindTransaction(txID)
	if err != nil {
		pterm.Error.Printf("Failed to delete transaction: %v\n", err)
		return nil
	}

	pterm.Warning.Printf("About to delete transaction %s:\n", tx.ID)
	deletionInfo := pterm.TableData{
		{"Date", tx.Timestamp.Format("2006-01-02")},
		{"Type", string(tx.Type)},
		{"Amount", money.Format(tx.Amount, acc.Currency)},
		{"Account", acc.Name},
		{"Note", tx.Note},
	}
	pterm.DefaultTable.WithData(deletionInfo).Render()

	if tx.Type == ledger.TxTransfer {
		pterm.Info.Println("This removes only this account's copy of the transfer")
	}
	pterm.Warning.Println("This action cannot be undone!")

	var confirmation bool
	confirmPrompt := &survey.Confirm{
		Message: "Do you want to delete this transaction?",
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &confirmation, surveyOpts...); err != nil {
		errhandler.HandleError(err)
		return nil
	}

	if !confirmation {
		pterm.Info.Println("Deletion cancelled")
		return nil
	}

	if err := reg.DeleteTransaction(txID); err != nil {
		pterm.Error.Printf("Failed to delete transaction: %v\n", err)
		return nil
	}

	updated, err := reg.Account(acc.ID)
	if err == nil {
		pterm.Success.Printf("Transaction deleted; %q rebalanced to %s\n",
			updated.Name, money.Format(updated.Balance, updated.Currency))
		return nil
	}

	pterm.Success.Println("Transaction deleted")
	return nil
}
