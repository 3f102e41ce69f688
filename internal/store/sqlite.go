package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
)

// snapshotName is the single logical collection the ledger lives under.
const snapshotName = "ledger"

// Store persists the whole ledger as one JSON snapshot blob in a local
// SQLite database. The schema is a plain key/value table; the store knows
// nothing about accounts beyond how to encode and decode them.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the database at dbPath and runs the
// embedded migrations.
func NewStore(dbPath string, migrationsFS fs.FS) (*Store, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("can not create database directory %s: %w", dbDir, err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("can not open database : %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("can not connect with database : %w", err)
	}
	if err := runMigrations(db, migrationsFS); err != nil {
		return nil, fmt.Errorf("failed to migrate database : %w", err)
	}

	return &Store{db: db}, nil
}

// Load reads the snapshot blob and decodes the account collection. A missing
// row is an empty ledger, not an error.
func (s *Store) Load() ([]*ledger.Account, error) {
	var data []byte
	row := s.db.QueryRow("SELECT data FROM snapshots WHERE name = ?", snapshotName)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot %q: %w", snapshotName, err)
	}

	accounts, err := decodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %q: %w", snapshotName, err)
	}
	return accounts, nil
}

// Save encodes the account collection and upserts the snapshot blob.
func (s *Store) Save(accounts []*ledger.Account) error {
	data, err := encodeSnapshot(accounts)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (name, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, snapshotName, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write snapshot %q: %w", snapshotName, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func runMigrations(db *sql.DB, migrationsFS fs.FS) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to set up migrate driver : %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver : %w", err)
	}

	m, err := migrate.NewWithInstance(
		"iofs",
		sourceDriver,
		"sqlite3",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to set up migrate instance : %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration(up) : %w", err)
	}

	return nil
}
