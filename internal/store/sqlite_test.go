package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
)

// os.DirFS at the repository root lets the real migrations run in tests.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "albert.db")
	s, err := NewStore(dbPath, os.DirFS("../.."))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := newTestStore(t)

	accounts, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("fresh database returned %d accounts", len(accounts))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	rate := decimal.RequireFromString("0.05")
	savings := ledger.NewAccount("Rainy Day", ledger.TypeSavings, "USD", decimal.RequireFromString("1000.50"), &rate)
	checking := ledger.NewAccount("Everyday", ledger.TypeChecking, "EUR", decimal.Zero, nil)

	if _, err := checking.Deposit(decimal.RequireFromString("200"), "paycheck"); err != nil {
		t.Fatal(err)
	}
	if _, err := checking.TransferTo(savings, decimal.RequireFromString("150.25"), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := savings.ApplyInterest(); err != nil {
		t.Fatal(err)
	}

	if err := s.Save([]*ledger.Account{savings, checking}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d accounts, want 2", len(loaded))
	}

	got := loaded[0]
	if got.ID != savings.ID || got.Name != savings.Name || got.Type != savings.Type || got.Currency != savings.Currency {
		t.Errorf("account identity fields did not round-trip")
	}
	if !got.Balance.Equal(savings.Balance) {
		t.Errorf("balance = %s, want %s", got.Balance, savings.Balance)
	}
	if !got.InitialBalance.Equal(savings.InitialBalance) {
		t.Errorf("initial balance = %s, want %s", got.InitialBalance, savings.InitialBalance)
	}
	if got.InterestRate == nil || !got.InterestRate.Equal(rate) {
		t.Errorf("interest rate did not round-trip: %v", got.InterestRate)
	}
	if !got.LastUpdated.Equal(savings.LastUpdated) {
		t.Errorf("last updated = %s, want %s", got.LastUpdated, savings.LastUpdated)
	}
	if !got.LastInterestApplied.Equal(savings.LastInterestApplied) {
		t.Errorf("last interest applied did not round-trip")
	}

	if len(got.Transactions) != len(savings.Transactions) {
		t.Fatalf("got %d transactions, want %d", len(got.Transactions), len(savings.Transactions))
	}
	for i, tx := range got.Transactions {
		want := savings.Transactions[i]
		if tx.ID != want.ID || tx.Type != want.Type || tx.Note != want.Note {
			t.Errorf("transactions[%d] identity fields did not round-trip", i)
		}
		if !tx.Amount.Equal(want.Amount) {
			t.Errorf("transactions[%d] amount = %s, want %s", i, tx.Amount, want.Amount)
		}
		if tx.FromAccountID != want.FromAccountID || tx.ToAccountID != want.ToAccountID {
			t.Errorf("transactions[%d] references did not round-trip", i)
		}
		if !tx.Timestamp.Equal(want.Timestamp) {
			t.Errorf("transactions[%d] timestamp did not round-trip", i)
		}
		if !tx.BalanceBefore.Equal(want.BalanceBefore) || !tx.BalanceAfter.Equal(want.BalanceAfter) {
			t.Errorf("transactions[%d] balance snapshots did not round-trip", i)
		}
	}

	// The checking account must round-trip with no rate at all.
	if loaded[1].InterestRate != nil {
		t.Errorf("checking account gained a rate: %v", loaded[1].InterestRate)
	}
}

func TestSaveOverwritesSnapshot(t *testing.T) {
	s := newTestStore(t)

	a := ledger.NewAccount("A", ledger.TypeChecking, "USD", decimal.Zero, nil)
	if err := s.Save([]*ledger.Account{a}); err != nil {
		t.Fatal(err)
	}

	b := ledger.NewAccount("B", ledger.TypeChecking, "USD", decimal.Zero, nil)
	if err := s.Save([]*ledger.Account{a, b}); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Errorf("got %d accounts after overwrite, want 2", len(loaded))
	}
}
