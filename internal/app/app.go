package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Koreanbadboy/AlbertBankApp/internal/config"
	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
	"github.com/Koreanbadboy/AlbertBankApp/internal/store"
)

type App struct {
	Registry *ledger.Registry
	Store    *store.Store
}

// NewApp initializes the database, builds the registry and loads the ledger
// (which runs catch-up interest accrual), then returns the App entity with a
// cleanup func for the database handle.
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	dbPathRaw := cfg.Database.Path

	if dbPathRaw == "" {
		appDir, _ := getAppDataDir()
		dbPathRaw = filepath.Join(appDir, "albert.db")
	}

	dbStore, err := store.NewStore(dbPathRaw, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cleanup := func() {
		if err := dbStore.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
	}

	registry := ledger.NewRegistry(dbStore)
	if err := registry.Load(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	return &App{
		Registry: registry,
		Store:    dbStore,
	}, cleanup, nil
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
