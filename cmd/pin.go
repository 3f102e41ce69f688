package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Koreanbadboy/AlbertBankApp/internal/auth"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ui/prompts"
)

func NewPinCmd() *cobra.Command {
	pinCmd := &cobra.Command{
		Use:   "pin",
		Short: "Manage the PIN latch",
		Long: `Manage the PIN that gates the CLI. When a PIN is set, every run
asks for it first. This is a convenience latch, not a security boundary.`,
	}

	pinCmd.AddCommand(&cobra.Command{
		Use:          "set",
		Short:        "Set or change the PIN",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPinSet()
		},
	})

	pinCmd.AddCommand(&cobra.Command{
		Use:          "clear",
		Short:        "Remove the PIN",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPinClear()
		},
	})

	return pinCmd
}

func runPinSet() error {
	pin, err := prompts.PromptPIN("New PIN:")
	if err != nil {
		return err
	}

	confirm, err := prompts.PromptPIN("Repeat PIN:")
	if err != nil {
		return err
	}

	if pin != confirm {
		return fmt.Errorf("PINs do not match")
	}

	hash, err := auth.HashPIN(pin)
	if err != nil {
		return err
	}

	viper.Set("security.pin_hash", hash)
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	pterm.Success.Println("PIN set")
	return nil
}

func runPinClear() error {
	viper.Set("security.pin_hash", "")
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	pterm.Success.Println("PIN removed")
	return nil
}
