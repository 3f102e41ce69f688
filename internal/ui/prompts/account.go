package prompts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
)

// PromptAccountType prompts for the account type.
func PromptAccountType() (ledger.AccountType, error) {
	options := []string{
		"checking - everyday account, no interest",
		"savings - interest-bearing account",
	}

	selected, err := PromptSelect("Account type:", options, options[0])
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}

	return ledger.AccountType(strings.Split(selected, " ")[0]), nil
}

// PromptAccount prompts to pick one account from the list, showing names and
// returning the chosen account.
func PromptAccount(message string, accounts []*ledger.Account) (*ledger.Account, error) {
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no accounts exist yet")
	}

	byLabel := make(map[string]*ledger.Account, len(accounts))
	var options []huh.Option[string]

	for _, acc := range accounts {
		label := fmt.Sprintf("%s (%s, %s)", acc.Name, acc.Type, acc.Currency)
		byLabel[label] = acc
		options = append(options, huh.NewOption(label, label))
	}

	var selected string

	err := huh.NewSelect[string]().
		Title(message).
		Options(options...).
		Value(&selected).
		Height(10).
		Run()

	if err != nil {
		return nil, fmt.Errorf("input cancelled: %w", err)
	}

	return byLabel[selected], nil
}

// PromptCurrency prompts for a currency code with common options first.
func PromptCurrency(defaultCurrency string, validator func(string) error) (string, error) {
	commonCurrencies := []string{"USD", "EUR", "GBP", "JPY", "Other (enter manually)"}

	def := defaultCurrency
	if def == "" {
		def = "USD"
	}

	selected, err := PromptSelect("Currency:", commonCurrencies, def)
	if err != nil {
		return "", err
	}

	if selected != "Other (enter manually)" {
		return selected, nil
	}

	return PromptInput("Currency code:", def, validator)
}

// PromptAccountName prompts for the display name with validation.
func PromptAccountName(validator func(string) error) (string, error) {
	return PromptInput("Account name:", "", validator)
}

// PromptInitCurrency is the first-run wizard question for the default currency.
func PromptInitCurrency(currentDefault string) (string, error) {
	return PromptCurrency(currentDefault, nil)
}
