package account

import (
	"github.com/spf13/cobra"

	"github.com/Koreanbadboy/AlbertBankApp/internal/config"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
)

func NewAccountCmd(reg *ledger.Registry, cfg *config.Config) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Create, list and delete accounts.",
		Long:  `Create, list and delete accounts.`,
	}

	accountCmd.AddCommand(NewCreateCmd(reg, cfg))
	accountCmd.AddCommand(NewListCmd(reg))
	accountCmd.AddCommand(NewDeleteCmd(reg))

	return accountCmd
}
