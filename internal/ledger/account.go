package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	TypeChecking AccountType = "checking"
	TypeSavings  AccountType = "savings"
)

// Account is a named balance-holding aggregate with an ordered transaction
// history. The balance is never written from outside the account's own
// methods: every change pairs with exactly one appended Transaction in the
// same operation, which keeps the invariant
//
//	Balance == InitialBalance + sum(credits) - sum(debits)
//
// true at all times. RemoveTransaction is the only way a record leaves the
// history, and it recomputes the balance from scratch.
type Account struct {
	ID                  string
	Name                string
	Type                AccountType
	Currency            string
	Balance             decimal.Decimal
	InitialBalance      decimal.Decimal
	InterestRate        *decimal.Decimal
	LastUpdated         time.Time
	LastInterestApplied time.Time
	Transactions        []Transaction
}

// NewAccount creates an account with the given opening balance. InterestRate
// must already be normalized to a fraction (0.01 = 1%); the registry owns that
// normalization.
func NewAccount(name string, accType AccountType, currency string, initialBalance decimal.Decimal, rate *decimal.Decimal) *Account {
	return &Account{
		ID:             uuid.NewString(),
		Name:           name,
		Type:           accType,
		Currency:       currency,
		Balance:        initialBalance,
		InitialBalance: initialBalance,
		InterestRate:   rate,
		LastUpdated:    time.Now(),
	}
}

// InterestBearing reports whether ApplyInterest can accrue on this account.
func (a *Account) InterestBearing() bool {
	return a.Type == TypeSavings && a.InterestRate != nil && a.InterestRate.IsPositive()
}

// Deposit adds amount to the balance and appends the matching record.
func (a *Account) Deposit(amount decimal.Decimal, note string) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if note == "" {
		note = "Deposit"
	}

	before := a.Balance
	a.Balance = a.Balance.Add(amount)

	tx := Transaction{
		ID:            uuid.NewString(),
		Timestamp:     time.Now(),
		Amount:        amount,
		ToAccountID:   a.ID,
		Type:          TxDeposit,
		Note:          note,
		BalanceBefore: before,
		BalanceAfter:  a.Balance,
	}
	a.Transactions = append(a.Transactions, tx)
	a.LastUpdated = tx.Timestamp

	return &tx, nil
}

// Withdraw subtracts amount from the balance and appends the matching record.
// The balance never goes negative.
func (a *Account) Withdraw(amount decimal.Decimal, note string) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if amount.GreaterThan(a.Balance) {
		return nil, ErrInsufficientFunds
	}
	if note == "" {
		note = "Withdrawal"
	}

	before := a.Balance
	a.Balance = a.Balance.Sub(amount)

	tx := Transaction{
		ID:            uuid.NewString(),
		Timestamp:     time.Now(),
		Amount:        amount,
		FromAccountID: a.ID,
		Type:          TxWithdrawal,
		Note:          note,
		BalanceBefore: before,
		BalanceAfter:  a.Balance,
	}
	a.Transactions = append(a.Transactions, tx)
	a.LastUpdated = tx.Timestamp

	return &tx, nil
}

// TransferTo moves amount from this account to target. One transfer record is
// constructed and a copy appended to BOTH histories under the same id, so the
// two sides of a transfer always reference the identical transaction.
// Removing the record from one account never touches the twin copy.
//
// All validation happens before any mutation, so a failed transfer leaves
// both accounts untouched.
func (a *Account) TransferTo(target *Account, amount decimal.Decimal, note string) (*Transaction, error) {
	if target == nil || target.ID == a.ID {
		return nil, ErrInvalidTarget
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if amount.GreaterThan(a.Balance) {
		return nil, ErrInsufficientFunds
	}
	if note == "" {
		note = "Transfer to " + target.Name
	}

	before := a.Balance
	a.Balance = a.Balance.Sub(amount)
	target.Balance = target.Balance.Add(amount)

	tx := Transaction{
		ID:            uuid.NewString(),
		Timestamp:     time.Now(),
		Amount:        amount,
		FromAccountID: a.ID,
		ToAccountID:   target.ID,
		Type:          TxTransfer,
		Note:          note,
		BalanceBefore: before,
		BalanceAfter:  a.Balance,
	}
	a.Transactions = append(a.Transactions, tx)
	target.Transactions = append(target.Transactions, tx)
	a.LastUpdated = tx.Timestamp
	target.LastUpdated = tx.Timestamp

	return &tx, nil
}

// ApplyInterest accrues one period of simple interest on the current balance:
// round(balance * rate, 2). Successive calls compound because each one works
// on the balance left by the previous call. Returns the appended record, or
// nil when the rounded interest is not positive.
func (a *Account) ApplyInterest() (*Transaction, error) {
	if !a.InterestBearing() {
		return nil, ErrNotInterestBearing
	}

	interest := a.Balance.Mul(*a.InterestRate).Round(2)
	if !interest.IsPositive() {
		return nil, nil
	}

	before := a.Balance
	a.Balance = a.Balance.Add(interest)

	tx := Transaction{
		ID:            uuid.NewString(),
		Timestamp:     time.Now(),
		Amount:        interest,
		ToAccountID:   a.ID,
		Type:          TxInterest,
		Note:          "interest at " + a.InterestRate.Mul(decimal.NewFromInt(100)).String() + "%",
		BalanceBefore: before,
		BalanceAfter:  a.Balance,
	}
	a.Transactions = append(a.Transactions, tx)
	a.LastUpdated = tx.Timestamp
	a.LastInterestApplied = tx.Timestamp

	return &tx, nil
}

// RemoveTransaction deletes the record with the given id from the history and
// reports whether anything was removed. The balance is then recomputed from
// the initial balance over all remaining records, not by reversing the single
// removed entry: the full recompute holds the balance invariant even when
// earlier edits happened out of order, at the cost of an O(n) walk.
func (a *Account) RemoveTransaction(id string) bool {
	idx := -1
	for i := range a.Transactions {
		if a.Transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	a.Transactions = append(a.Transactions[:idx], a.Transactions[idx+1:]...)
	a.Balance = a.ComputedBalance()
	a.LastUpdated = time.Now()
	return true
}

// ComputedBalance replays the history on top of the initial balance.
func (a *Account) ComputedBalance() decimal.Decimal {
	balance := a.InitialBalance
	for _, tx := range a.Transactions {
		if tx.Credits(a.ID) {
			balance = balance.Add(tx.Amount)
		}
		if tx.Debits(a.ID) {
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

// Clone returns a deep copy safe to hand outside the registry's lock.
func (a *Account) Clone() *Account {
	cp := *a
	if a.InterestRate != nil {
		rate := *a.InterestRate
		cp.InterestRate = &rate
	}
	cp.Transactions = make([]Transaction, len(a.Transactions))
	copy(cp.Transactions, a.Transactions)
	return &cp
}
