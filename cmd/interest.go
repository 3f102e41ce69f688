package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
)

func NewInterestCmd(reg *ledger.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "interest",
		Short: "Apply one interest accrual to every savings account",
		Long: `Apply one interest accrual to every interest-bearing savings
account right now, independent of the automatic catch-up that runs at
startup. Each accrual is simple interest on the account's current balance.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := reg.ApplyAnnualInterest()
			if err != nil {
				return err
			}

			if applied == 0 {
				pterm.Info.Println("No interest-bearing accounts to accrue on")
				return nil
			}

			pterm.Success.Printf("Interest applied to %d account(s)\n", applied)
			return nil
		},
	}
}
