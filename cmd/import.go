package cmd

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Koreanbadboy/AlbertBankApp/internal/errhandler"
	"github.com/Koreanbadboy/AlbertBankApp/internal/export"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
)

func NewImportCmd(reg *ledger.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a ledger from a JSON document",
		Long: `Replace the current ledger with the accounts from an exported
JSON document. The document is validated against the ledger invariants
before anything is replaced.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := export.ReadFile(args[0])
			if err != nil {
				return err
			}

			pterm.Warning.Printf("About to replace the current ledger with %d account(s) from %s\n", len(accounts), args[0])
			pterm.Warning.Println("This action cannot be undone!")

			var confirmation bool
			confirmPrompt := &survey.Confirm{
				Message: "Do you want to import this ledger?",
				Default: false,
			}
			if err := survey.AskOne(confirmPrompt, &confirmation); err != nil {
				errhandler.HandleError(err)
				return nil
			}

			if !confirmation {
				pterm.Info.Println("Import cancelled")
				return nil
			}

			if err := reg.ReplaceAll(accounts); err != nil {
				return err
			}

			pterm.Success.Printf("Imported %d account(s)\n", len(accounts))
			return nil
		},
	}
}
