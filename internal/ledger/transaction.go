package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxDeposit    TransactionType = "deposit"
	TxWithdrawal TransactionType = "withdrawal"
	TxTransfer   TransactionType = "transfer"
	TxInterest   TransactionType = "interest"
)

// Transaction records one balance-affecting event. Amount is always a positive
// magnitude; direction is encoded by which of the account references is set,
// never by the sign. A deposit sets ToAccountID, a withdrawal sets
// FromAccountID, a transfer sets both.
//
// Transactions are created only inside Account operations and are immutable
// afterwards. BalanceBefore/BalanceAfter snapshot the acting account's balance
// around the operation; they are audit fields, never used for recomputation.
type Transaction struct {
	ID            string
	Timestamp     time.Time
	Amount        decimal.Decimal
	FromAccountID string
	ToAccountID   string
	Type          TransactionType
	Note          string
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}

// Credits reports whether the transaction adds to the given account.
func (t Transaction) Credits(accountID string) bool {
	return t.ToAccountID == accountID
}

// Debits reports whether the transaction subtracts from the given account.
func (t Transaction) Debits(accountID string) bool {
	return t.FromAccountID == accountID
}
