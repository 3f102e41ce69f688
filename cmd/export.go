package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Koreanbadboy/AlbertBankApp/internal/export"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
)

func NewExportCmd(reg *ledger.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export the ledger to a JSON document",
		Long: `Export every account and its transaction history to a portable
JSON document. The file is written atomically.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts := reg.Accounts()

			if err := export.WriteFile(accounts, args[0]); err != nil {
				return err
			}

			pterm.Success.Printf("Exported %d account(s) to %s\n", len(accounts), args[0])
			return nil
		},
	}
}
