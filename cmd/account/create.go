package account

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Koreanbadboy/AlbertBankApp/internal/config"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
	"github.com/Koreanbadboy/AlbertBankApp/internal/money"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ui"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ui/prompts"
)

type createFlags struct {
	Name        string
	Type        string
	Currency    string
	Balance     string
	Rate        string
	RatePercent string
}

// AccountCreator collects the account parameters from either flags or the
// interactive wizard before handing them to the registry.
type AccountCreator struct {
	name     string
	accType  ledger.AccountType
	currency string
	balance  decimal.Decimal
	rate     *decimal.Decimal
	rateKind ledger.RateKind

	reg *ledger.Registry
	cfg *config.Config
}

func NewCreateCmd(reg *ledger.Registry, cfg *config.Config) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account.",
		Long: `Create a checking or savings account. Savings accounts accrue
interest; the rate defaults to 1% when none is given.

The rate flags are explicit about their unit: --rate takes a fraction
(0.05 = 5%), --rate-percent takes a percentage (5 = 5%).

Example: albert account create -t savings -n "Rainy Day" -b 1000 --rate-percent 5`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			creator := &AccountCreator{reg: reg, cfg: cfg}

			hasFlags := cmd.Flags().Changed("name") || cmd.Flags().Changed("type")
			if hasFlags {
				return creator.FlagsMode(flags)
			}
			return creator.InteractiveMode()
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Account display name")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Account type: checking or savings")
	cmd.Flags().StringVar(&flags.Currency, "currency", "", "Currency code (defaults to config default)")
	cmd.Flags().StringVarP(&flags.Balance, "balance", "b", "", "Initial balance")
	cmd.Flags().StringVar(&flags.Rate, "rate", "", "Interest rate as a fraction, e.g. 0.05 (savings only)")
	cmd.Flags().StringVar(&flags.RatePercent, "rate-percent", "", "Interest rate as a percentage, e.g. 5 (savings only)")

	return cmd
}

// FlagsMode builds an account from command-line flags.
func (ac *AccountCreator) FlagsMode(flags *createFlags) error {
	if flags.Name == "" {
		return fmt.Errorf("--name is required")
	}
	if flags.Type == "" {
		return fmt.Errorf("--type is required")
	}
	if flags.Rate != "" && flags.RatePercent != "" {
		return fmt.Errorf("--rate and --rate-percent cannot be used at the same time")
	}

	ac.name = flags.Name
	ac.accType = ledger.AccountType(strings.ToLower(flags.Type))

	if err := ac.setCurrency(flags.Currency); err != nil {
		return err
	}

	if flags.Balance != "" {
		balance, err := money.Parse(flags.Balance)
		if err != nil {
			return err
		}
		ac.balance = balance
	}

	if err := ac.setRate(flags.Rate, flags.RatePercent); err != nil {
		return err
	}

	newAccount, err := ac.Save()
	if err != nil {
		return err
	}

	ac.displaySummary(newAccount)
	return nil
}

// InteractiveMode builds an account through interactive prompts.
func (ac *AccountCreator) InteractiveMode() error {
	accType, err := prompts.PromptAccountType()
	if err != nil {
		return err
	}
	ac.accType = accType

	name, err := prompts.PromptAccountName(validateName)
	if err != nil {
		return err
	}
	ac.name = name

	currency, err := prompts.PromptCurrency(ac.cfg.Defaults.Currency, validateCurrency)
	if err != nil {
		return err
	}
	if err := ac.setCurrency(currency); err != nil {
		return err
	}

	balanceInput, err := prompts.PromptAmount("Initial balance:", "Leave empty for 0", validateOptionalAmount)
	if err != nil {
		return err
	}
	if strings.TrimSpace(balanceInput) != "" {
		ac.balance, err = money.Parse(balanceInput)
		if err != nil {
			return err
		}
	}

	if ac.accType == ledger.TypeSavings {
		rateInput, err := prompts.PromptAmount("Interest rate (percent):", "Leave empty for the default 1%", validateOptionalAmount)
		if err != nil {
			return err
		}
		if err := ac.setRate("", strings.TrimSpace(rateInput)); err != nil {
			return err
		}
	}

	confirm, err := prompts.PromptConfirm("Proceed with account creation?", true)
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("account creation cancelled")
	}

	newAccount, err := ac.Save()
	if err != nil {
		return err
	}

	ac.displaySummary(newAccount)
	return nil
}

func (ac *AccountCreator) setCurrency(currency string) error {
	if currency == "" {
		currency = ac.cfg.Defaults.Currency
	}
	if !money.ValidCurrency(currency) {
		return fmt.Errorf("unknown currency code %q", currency)
	}
	ac.currency = money.NormalizeCurrency(currency)
	return nil
}

func (ac *AccountCreator) setRate(fraction, percent string) error {
	switch {
	case fraction != "":
		rate, err := decimal.NewFromString(fraction)
		if err != nil {
			return fmt.Errorf("invalid rate %q", fraction)
		}
		ac.rate = &rate
		ac.rateKind = ledger.RateFraction
	case percent != "":
		rate, err := decimal.NewFromString(percent)
		if err != nil {
			return fmt.Errorf("invalid rate %q", percent)
		}
		ac.rate = &rate
		ac.rateKind = ledger.RatePercent
	}
	return nil
}

// Save hands the collected parameters to the registry.
func (ac *AccountCreator) Save() (*ledger.Account, error) {
	newAccount, err := ac.reg.CreateAccount(ac.name, ac.accType, ac.currency, ac.balance, ac.rate, ac.rateKind)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return newAccount, nil
}

func (ac *AccountCreator) displaySummary(acc *ledger.Account) {
	ui.Separator()

	rateStr := "None"
	if acc.InterestRate != nil {
		rateStr = acc.InterestRate.Mul(decimal.NewFromInt(100)).String() + "%"
	}

	tableData := pterm.TableData{
		{pterm.Blue("Account ID"), acc.ID},
		{pterm.Blue("Name"), acc.Name},
		{pterm.Blue("Type"), string(acc.Type)},
		{pterm.Blue("Currency"), acc.Currency},
		{pterm.Blue("Balance"), money.Format(acc.Balance, acc.Currency)},
		{pterm.Blue("Interest rate"), rateStr},
	}

	pterm.DefaultTable.WithData(tableData).Render()
	pterm.Success.Println("Account created successfully!")
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("account name is required")
	}
	return nil
}

func validateCurrency(s string) error {
	if !money.ValidCurrency(s) {
		return fmt.Errorf("unknown currency code")
	}
	return nil
}

func validateOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	amount, err := money.Parse(s)
	if err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	return nil
}
