package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
)

const snapshotVersion = 1

// snapshot is the on-disk document. The _meta header identifies the storage
// kind and schema version so the format can evolve without guessing.
type snapshot struct {
	Meta     snapshotMeta     `json:"_meta"`
	Accounts []persistAccount `json:"accounts"`
}

type snapshotMeta struct {
	Storage   string    `json:"storage"`
	Version   int       `json:"version"`
	WrittenAt time.Time `json:"written_at"`
}

// persistAccount mirrors ledger.Account field for field. Decimal amounts
// serialize as strings, which keeps precision intact across round-trips.
type persistAccount struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	Type                string               `json:"type"`
	Currency            string               `json:"currency"`
	Balance             decimal.Decimal      `json:"balance"`
	InitialBalance      decimal.Decimal      `json:"initial_balance"`
	InterestRate        *decimal.Decimal     `json:"interest_rate,omitempty"`
	LastUpdated         time.Time            `json:"last_updated"`
	LastInterestApplied *time.Time           `json:"last_interest_applied,omitempty"`
	Transactions        []persistTransaction `json:"transactions"`
}

type persistTransaction struct {
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

func encodeSnapshot(accounts []*ledger.Account) ([]byte, error) {
	snap := snapshot{
		Meta: snapshotMeta{
			Storage:   "sqlite_snapshot",
			Version:   snapshotVersion,
			WrittenAt: time.Now(),
		},
		Accounts: make([]persistAccount, 0, len(accounts)),
	}
	for _, acc := range accounts {
		snap.Accounts = append(snap.Accounts, toPersistAccount(acc))
	}
	return json.Marshal(snap)
}

func decodeSnapshot(data []byte) ([]*ledger.Account, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.Meta.Version > snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", snap.Meta.Version, snapshotVersion)
	}

	accounts := make([]*ledger.Account, 0, len(snap.Accounts))
	for _, pa := range snap.Accounts {
		accounts = append(accounts, fromPersistAccount(pa))
	}
	return accounts, nil
}

func toPersistAccount(acc *ledger.Account) persistAccount {
	pa := persistAccount{
		ID:             acc.ID,
		Name:           acc.Name,
		Type:           string(acc.Type),
		Currency:       acc.Currency,
		Balance:        acc.Balance,
		InitialBalance: acc.InitialBalance,
		LastUpdated:    acc.LastUpdated,
		Transactions:   make([]persistTransaction, 0, len(acc.Transactions)),
	}
	if acc.InterestRate != nil {
		rate := *acc.InterestRate
		pa.InterestRate = &rate
	}
	if !acc.LastInterestApplied.IsZero() {
		applied := acc.LastInterestApplied
		pa.LastInterestApplied = &applied
	}
	for _, tx := range acc.Transactions {
		pa.Transactions = append(pa.Transactions, persistTransaction{
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
	return pa
}

func fromPersistAccount(pa persistAccount) *ledger.Account {
	acc := &ledger.Account{
		ID:             pa.ID,
		Name:           pa.Name,
		Type:           ledger.AccountType(pa.Type),
		Currency:       pa.Currency,
		Balance:        pa.Balance,
		InitialBalance: pa.InitialBalance,
		LastUpdated:    pa.LastUpdated,
	}
	if pa.InterestRate != nil {
		rate := *pa.InterestRate
		acc.InterestRate = &rate
	}
	if pa.LastInterestApplied != nil {
		acc.LastInterestApplied = *pa.LastInterestApplied
	}
	for _, pt := range pa.Transactions {
		acc.Transactions = append(acc.Transactions, ledger.Transaction{
			ID:            pt.ID,
			Timestamp:     pt.Timestamp,
			Amount:        pt.Amount,
			FromAccountID: pt.FromAccountID,
			ToAccountID:   pt.ToAccountID,
			Type:          ledger.TransactionType(pt.Type),
			Note:          pt.Note,
			BalanceBefore: pt.BalanceBefore,
			BalanceAfter:  pt.BalanceAfter,
		})
	}
	return acc
}
