package account

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
		Use:   "delete <account-id>",
		Short: "Delete an account",
		Long: `Delete an account and its transaction history. Transfer records on
counterpart accounts are kept. This action cannot be undone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountDelete(reg, args[0])
		},
	}
}

func runAccountDelete(reg *ledger.Registry, accountID string) error {
	acc, err := reg.Account(accountID)
	if err != nil {
		pterm.Error.Printf("Failed to delete account: %v\n", err)
		return nil
	}

	pterm.Warning.Printf("About to delete account %s:\n", acc.ID)
	deletionInfo := pterm.TableData{
		{"Name", acc.Name},
		{"Type", string(acc.Type)},
		{"Balance", money.Format(acc.Balance, acc.Currency)},
	}
	pterm.DefaultTable.WithData(deletionInfo).Render()

	pterm.Warning.Println("This action cannot be undone!")

	var confirmation bool
	confirmPrompt := &survey.Confirm{
		Message: "Do you want to delete this account?",
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

	if err := reg.DeleteAccount(accountID); err != nil {
		pterm.Error.Printf("Failed to delete account: %v\n", err)
		return nil
	}

	pterm.Success.Printf("Account %q deleted successfully\n", acc.Name)
	return nil
}
