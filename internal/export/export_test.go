package export

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Koreanbadboy/AlbertBankApp/internal/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleAccounts(t *testing.T) []*ledger.Account {
	t.Helper()

	rate := dec("0.05")
	savings := ledger.NewAccount("Rainy Day", ledger.TypeSavings, "USD", dec("500"), &rate)
	checking := ledger.NewAccount("Everyday", ledger.TypeChecking, "USD", decimal.Zero, nil)

	if _, err := checking.Deposit(dec("300"), "paycheck"); err != nil {
		t.Fatal(err)
	}
	if _, err := checking.Withdraw(dec("40.50"), "groceries"); err != nil {
		t.Fatal(err)
	}
	if _, err := checking.TransferTo(savings, dec("100"), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := savings.ApplyInterest(); err != nil {
		t.Fatal(err)
	}

	return []*ledger.Account{savings, checking}
}

func TestWriteReadRoundTrip(t *testing.T) {
	accounts := sampleAccounts(t)

	var buf bytes.Buffer
	if err := Write(accounts, &buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := Read(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(loaded) != len(accounts) {
		t.Fatalf("got %d accounts, want %d", len(loaded), len(accounts))
	}

	for i, got := range loaded {
		want := accounts[i]
		if got.ID != want.ID || got.Name != want.Name || got.Type != want.Type {
			t.Errorf("accounts[%d] identity fields did not round-trip", i)
		}
		if !got.Balance.Equal(want.Balance) {
			t.Errorf("accounts[%d] balance = %s, want %s", i, got.Balance, want.Balance)
		}
		if len(got.Transactions) != len(want.Transactions) {
			t.Errorf("accounts[%d] got %d transactions, want %d", i, len(got.Transactions), len(want.Transactions))
		}
		if !got.Balance.Equal(got.ComputedBalance()) {
			t.Errorf("accounts[%d] violates the balance invariant after import", i)
		}
	}
}

func TestWriteFileIsAtomicAndReadable(t *testing.T) {
	accounts := sampleAccounts(t)
	path := filepath.Join(t.TempDir(), "ledger.json")

	if err := WriteFile(accounts, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(loaded) != len(accounts) {
		t.Errorf("got %d accounts, want %d", len(loaded), len(accounts))
	}
}

// mutate round-trips a valid document through a caller-supplied edit, then
// feeds it back to Read.
func mutate(t *testing.T, edit func(doc *Document)) error {
	t.Helper()

	var buf bytes.Buffer
	if err := Write(sampleAccounts(t), &buf); err != nil {
		t.Fatal(err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	edit(&doc)

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Read(bytes.NewReader(raw))
	return err
}

func TestReadRejectsInvalidDocuments(t *testing.T) {
	cases := []struct {
		name    string
		edit    func(doc *Document)
		wantErr string
	}{
		{
			name:    "unknown format",
			edit:    func(doc *Document) { doc.Meta.Format = "csv" },
			wantErr: "unknown document format",
		},
		{
			name:    "newer version",
			edit:    func(doc *Document) { doc.Meta.Version = 99 },
			wantErr: "newer than supported",
		},
		{
			name:    "empty account name",
			edit:    func(doc *Document) { doc.Accounts[0].Name = "" },
			wantErr: "account name is empty",
		},
		{
			name:    "unknown account type",
			edit:    func(doc *Document) { doc.Accounts[0].Type = "retirement" },
			wantErr: "unknown account type",
		},
		{
			name: "checking with rate",
			edit: func(doc *Document) {
				rate := dec("0.05")
				doc.Accounts[1].InterestRate = &rate
			},
			wantErr: "checking account carries an interest rate",
		},
		{
			name: "negative transaction amount",
			edit: func(doc *Document) {
				doc.Accounts[1].Transactions[0].Amount = dec("-300")
			},
			wantErr: "not positive",
		},
		{
			name: "withdrawal with destination",
			edit: func(doc *Document) {
				doc.Accounts[1].Transactions[1].ToAccountID = doc.Accounts[1].ID
			},
			wantErr: "withdrawal must set only the source account",
		},
		{
			name: "balance mismatch",
			edit: func(doc *Document) {
				doc.Accounts[0].Balance = doc.Accounts[0].Balance.Add(dec("1"))
			},
			wantErr: "does not match transaction history",
		},
		{
			name: "duplicate account id",
			edit: func(doc *Document) {
				dup := doc.Accounts[0]
				dup.Transactions = nil
				dup.Balance = dup.InitialBalance
				doc.Accounts = append(doc.Accounts, dup)
			},
			wantErr: "duplicate account id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := mutate(t, tc.edit)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestReadRejectsMalformedJSON(t *testing.T) {
	_, err := Read(strings.NewReader("{not json"))
	if err == nil || !strings.Contains(err.Error(), "malformed document") {
		t.Errorf("error = %v, want malformed document", err)
	}
}
