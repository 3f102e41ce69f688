package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Koreanbadboy/AlbertBankApp/cmd/account"
	"github.com/Koreanbadboy/AlbertBankApp/cmd/transaction"
	"github.com/Koreanbadboy/AlbertBankApp/internal/app"
	"github.com/Koreanbadboy/AlbertBankApp/internal/auth"
	"github.com/Koreanbadboy/AlbertBankApp/internal/config"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ui/prompts"
)

var (
	cfgFile string
	cfg     *config.Config
)

const maxPINAttempts = 3

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	if err := initConfig(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	if err := unlock(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	if viper.GetString("defaults.currency") == "" {
		if err := initWizard(); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	}

	application, cleanup, err := app.NewApp(cfg, migrations)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	defer cleanup()

	rootCmd := &cobra.Command{
		Use:           "albert",
		Short:         "albert is a CLI based personal multi-account ledger",
		Long:          `albert is a CLI based personal multi-account ledger`,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(account.NewAccountCmd(application.Registry, cfg))
	rootCmd.AddCommand(transaction.NewTransactionCmd(application.Registry))

	rootCmd.AddCommand(NewDepositCmd(application.Registry))
	rootCmd.AddCommand(NewWithdrawCmd(application.Registry))
	rootCmd.AddCommand(NewTransferCmd(application.Registry))
	rootCmd.AddCommand(NewInterestCmd(application.Registry))
	rootCmd.AddCommand(NewExportCmd(application.Registry))
	rootCmd.AddCommand(NewImportCmd(application.Registry))
	rootCmd.AddCommand(NewPinCmd())

	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		errMsg := err.Error()
		displayMsg := capitalize(errMsg)

		pterm.Error.Println(displayMsg)
		os.Exit(1)
	}
}

// unlock enforces the PIN latch before anything touches the ledger. With no
// PIN configured the gate is open.
func unlock() error {
	if cfg.Security.PinHash == "" {
		return nil
	}

	for attempt := 0; attempt < maxPINAttempts; attempt++ {
		pin, err := prompts.PromptPIN("Enter PIN:")
		if err != nil {
			return err
		}
		if err := auth.VerifyPIN(cfg.Security.PinHash, pin); err == nil {
			return nil
		}
		pterm.Warning.Println("Incorrect PIN")
	}

	return fmt.Errorf("too many failed PIN attempts")
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := getAppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := createDefaultConfig(); err != nil {
		return fmt.Errorf("failed to ensure config file: %w", err)
	}

	viper.SetEnvPrefix("ALBERT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {

		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return nil
}

func initWizard() error {
	currentDefault := viper.GetString("defaults.currency")
	if currentDefault == "" {
		currentDefault = "USD"
	}

	currency, err := prompts.PromptInitCurrency(currentDefault)
	if err != nil {
		return err
	}

	viper.Set("defaults.currency", currency)
	cfg.Defaults.Currency = currency

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	pterm.Success.Printf("Configuration saved. Default currency set to: %s\n", currency)

	return nil
}

func getAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".albert"), nil
	}

	return filepath.Join(configDir, "albert"), nil
}

func createDefaultConfig() error {
	appDir, err := getAppDataDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
