// Package export reads and writes the portable JSON document used to move a
// ledger between installations. Import validates every record against the
// core invariants before any account reaches the registry.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
)

const documentVersion = 1

// Document is the self-describing export format.
type Document struct {
	Meta     Meta            `json:"_meta"`
	Accounts []AccountRecord `json:"accounts"`
}

type Meta struct {
	Format    string    `json:"format"`
	Version   int       `json:"version"`
	WrittenAt time.Time `json:"written_at"`
}

type AccountRecord struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Type                string              `json:"type"`
	Currency            string              `json:"currency"`
	Balance             decimal.Decimal     `json:"balance"`
	InitialBalance      decimal.Decimal     `json:"initial_balance"`
	InterestRate        *decimal.Decimal    `json:"interest_rate,omitempty"`
	LastUpdated         time.Time           `json:"last_updated"`
	LastInterestApplied *time.Time          `json:"last_interest_applied,omitempty"`
	Transactions        []TransactionRecord `json:"transactions"`
}

type TransactionRecord struct {
	ID            string          `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID string          `json:"from_account_id,omitempty"`
	ToAccountID   string          `json:"to_account_id,omitempty"`
	Type          string          `json:"type"`
	Note          string          `json:"note,omitempty"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
}

// Write emits the collection as an indented JSON document.
func Write(accounts []*ledger.Account, w io.Writer) error {
	doc := Document{
		Meta: Meta{
			Format:    "albert_ledger",
			Version:   documentVersion,
			WrittenAt: time.Now(),
		},
		Accounts: make([]AccountRecord, 0, len(accounts)),
	}
	for _, acc := range accounts {
		doc.Accounts = append(doc.Accounts, toRecord(acc))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteFile writes the document atomically: the content goes to a temp file
// first and replaces the target with a rename, so an interrupted write never
// leaves a half-written document behind.
func WriteFile(accounts []*ledger.Account, path string) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := Write(accounts, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Read decodes and validates a document, returning accounts that already
// satisfy the core invariants. Any violation fails the whole import.
func Read(r io.Reader) ([]*ledger.Account, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}
	if doc.Meta.Format != "albert_ledger" {
		return nil, fmt.Errorf("unknown document format %q", doc.Meta.Format)
	}
	if doc.Meta.Version > documentVersion {
		return nil, fmt.Errorf("document version %d is newer than supported version %d", doc.Meta.Version, documentVersion)
	}

	accounts := make([]*ledger.Account, 0, len(doc.Accounts))
	seen := make(map[string]bool, len(doc.Accounts))
	for i, rec := range doc.Accounts {
		if err := validateAccount(rec); err != nil {
			return nil, fmt.Errorf("accounts[%d]: %w", i, err)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("accounts[%d]: duplicate account id %q", i, rec.ID)
		}
		seen[rec.ID] = true
		accounts = append(accounts, fromRecord(rec))
	}
	return accounts, nil
}

// ReadFile reads and validates the document at path.
func ReadFile(path string) ([]*ledger.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func validateAccount(rec AccountRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("account id is empty")
	}
	if rec.Name == "" {
		return fmt.Errorf("account name is empty")
	}
	switch ledger.AccountType(rec.Type) {
	case ledger.TypeChecking, ledger.TypeSavings:
	default:
		return fmt.Errorf("unknown account type %q", rec.Type)
	}
	if rec.Currency == "" {
		return fmt.Errorf("currency is empty")
	}
	if ledger.AccountType(rec.Type) == ledger.TypeChecking && rec.InterestRate != nil {
		return fmt.Errorf("checking account carries an interest rate")
	}
	if rec.InterestRate != nil && rec.InterestRate.IsNegative() {
		return fmt.Errorf("negative interest rate %s", rec.InterestRate)
	}

	computed := rec.InitialBalance
	for i, tx := range rec.Transactions {
		if err := validateTransaction(rec.ID, tx); err != nil {
			return fmt.Errorf("transactions[%d]: %w", i, err)
		}
		if tx.ToAccountID == rec.ID {
			computed = computed.Add(tx.Amount)
		}
		if tx.FromAccountID == rec.ID {
			computed = computed.Sub(tx.Amount)
		}
	}
	if !computed.Equal(rec.Balance) {
		return fmt.Errorf("recorded balance %s does not match transaction history (computed %s)", rec.Balance, computed)
	}
	return nil
}

func validateTransaction(accountID string, tx TransactionRecord) error {
	if tx.ID == "" {
		return fmt.Errorf("transaction id is empty")
	}
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("amount %s is not positive", tx.Amount)
	}
	if tx.FromAccountID != accountID && tx.ToAccountID != accountID {
		return fmt.Errorf("transaction does not reference its owning account")
	}

	switch ledger.TransactionType(tx.Type) {
	case ledger.TxDeposit, ledger.TxInterest:
		if tx.ToAccountID == "" || tx.FromAccountID != "" {
			return fmt.Errorf("%s must set only the destination account", tx.Type)
		}
	case ledger.TxWithdrawal:
		if tx.FromAccountID == "" || tx.ToAccountID != "" {
			return fmt.Errorf("withdrawal must set only the source account")
		}
	case ledger.TxTransfer:
		if tx.FromAccountID == "" || tx.ToAccountID == "" {
			return fmt.Errorf("transfer must set both accounts")
		}
		if tx.FromAccountID == tx.ToAccountID {
			return fmt.Errorf("transfer references the same account on both sides")
		}
	default:
		return fmt.Errorf("unknown transaction type %q", tx.Type)
	}
	return nil
}

func toRecord(acc *ledger.Account) AccountRecord {
	rec := AccountRecord{
		ID:             acc.ID,
		Name:           acc.Name,
		Type:           string(acc.Type),
		Currency:       acc.Currency,
		Balance:        acc.Balance,
		InitialBalance: acc.InitialBalance,
		LastUpdated:    acc.LastUpdated,
		Transactions:   make([]TransactionRecord, 0, len(acc.Transactions)),
	}
	if acc.InterestRate != nil {
		rate := *acc.InterestRate
		rec.InterestRate = &rate
	}
	if !acc.LastInterestApplied.IsZero() {
		applied := acc.LastInterestApplied
		rec.LastInterestApplied = &applied
	}
	for _, tx := range acc.Transactions {
		rec.Transactions = append(rec.Transactions, TransactionRecord{
			ID:            tx.ID,
			Timestamp:     tx.Timestamp,
			Amount:        tx.Amount,
			FromAccountID: tx.FromAccountID,
			ToAccountID:   tx.ToAccountID,
			Type:          string(tx.Type),
			Note:          tx.Note,
			BalanceBefore: tx.BalanceBefore,
			BalanceAfter:  tx.BalanceAfter,
		})
	}
	return rec
}

func fromRecord(rec AccountRecord) *ledger.Account {
	acc := &ledger.Account{
		ID:             rec.ID,
		Name:           rec.Name,
		Type:           ledger.AccountType(rec.Type),
		Currency:       rec.Currency,
		Balance:        rec.Balance,
		InitialBalance: rec.InitialBalance,
		LastUpdated:    rec.LastUpdated,
	}
	if rec.InterestRate != nil {
		rate := *rec.InterestRate
		acc.InterestRate = &rate
	}
	if rec.LastInterestApplied != nil {
		acc.LastInterestApplied = *rec.LastInterestApplied
	}
	for _, tx := range rec.Transactions {
		acc.Transactions = append(acc.Transactions, ledger.Transaction{
			ID:            tx.ID,
			Timestamp:     tx.Timestamp,
			Amount:        tx.Amount,
			FromAccountID: tx.FromAccountID,
			ToAccountID:   tx.ToAccountID,
			Type:          ledger.TransactionType(tx.Type),
			Note:          tx.Note,
			BalanceBefore: tx.BalanceBefore,
			BalanceAfter:  tx.BalanceAfter,
		})
	}
	return acc
}
