package transaction

import (
	"github.com/spf13/cobra"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
)

func NewTransactionCmd(reg *ledger.Registry) *cobra.Command {
	transactionCmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
		Long:    "Manage transactions: list history or delete a record.",
	}

	transactionCmd.AddCommand(NewListCmd(reg))
	transactionCmd.AddCommand(NewDeleteCmd(reg))

	return transactionCmd
}
