package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshotter is the persistence contract the registry consumes. The ledger
// is stored as one opaque collection; serialization is the store's concern.
type Snapshotter interface {
	Load() ([]*Account, error)
	Save([]*Account) error
}

// RateKind says how a caller-supplied interest rate is expressed. The core
// only ever stores fractions; percent input is divided by 100 at the
// CreateAccount boundary.
type RateKind int

const (
	RateFraction RateKind = iota
	RatePercent
)

// Catch-up accrual counts whole 365-day years since the last mutation.
const daysPerYear = 365

var defaultSavingsRate = decimal.RequireFromString("0.01")

// Registry holds the in-memory account collection, enforces cross-account
// preconditions before delegating to Account methods, and persists the whole
// collection after every successful mutation. One mutex serializes all
// callers; operations are resolve -> mutate -> save under the lock.
//
// Load must be called once before any other method.
type Registry struct {
	mu       sync.Mutex
	store    Snapshotter
	accounts []*Account
	loaded   bool
}

func NewRegistry(store Snapshotter) *Registry {
	return &Registry{store: store}
}

// Load reads the collection from the store, then runs catch-up accrual: every
// savings account with a positive rate gets one discrete ApplyInterest call
// per whole year elapsed since its last mutation, so two missed years compound
// 100 -> 110 -> 121 rather than accruing once at a blended rate. Persists only
// if something accrued. Calling Load again is a no-op.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return nil
	}

	accounts, err := r.store.Load()
	if err != nil {
		return err
	}
	r.accounts = accounts
	r.loaded = true

	accrued := false
	now := time.Now()
	for _, acc := range r.accounts {
		if !acc.InterestBearing() {
			continue
		}
		years := int(now.Sub(acc.LastUpdated).Hours() / (24 * daysPerYear))
		for i := 0; i < years; i++ {
			if _, err := acc.ApplyInterest(); err != nil {
				return err
			}
			accrued = true
		}
	}

	if accrued {
		return r.store.Save(r.accounts)
	}
	return nil
}

// CreateAccount adds a new account and persists. Savings accounts default to
// a 1% rate when none is supplied; checking accounts never carry a rate.
func (r *Registry) CreateAccount(name string, accType AccountType, currency string, initialBalance decimal.Decimal, rate *decimal.Decimal, kind RateKind) (*Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: account name is empty", ErrInvalidArgument)
	}
	if accType != TypeChecking && accType != TypeSavings {
		return nil, fmt.Errorf("%w: unknown account type %q", ErrInvalidArgument, accType)
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", ErrInvalidAmount)
	}

	normalized, err := normalizeRate(accType, rate, kind)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return nil, ErrNotLoaded
	}

	acc := NewAccount(name, accType, currency, initialBalance, normalized)
	r.accounts = append(r.accounts, acc)
	if err := r.store.Save(r.accounts); err != nil {
		return nil, err
	}
	return acc.Clone(), nil
}

func normalizeRate(accType AccountType, rate *decimal.Decimal, kind RateKind) (*decimal.Decimal, error) {
	if accType == TypeChecking {
		return nil, nil
	}
	if rate == nil {
		def := defaultSavingsRate
		return &def, nil
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate cannot be negative", ErrInvalidArgument)
	}
	normalized := *rate
	if kind == RatePercent {
		normalized = normalized.Div(decimal.NewFromInt(100))
	}
	return &normalized, nil
}

// Deposit resolves the account, delegates, persists.
func (r *Registry) Deposit(accountID string, amount decimal.Decimal, note string) (*Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return nil, ErrNotLoaded
	}

	acc := r.find(accountID)
	if acc == nil {
		return nil, ErrAccountNotFound
	}
	tx, err := acc.Deposit(amount, note)
	if err != nil {
		return nil, err
	}
	if err := r.store.Save(r.accounts); err != nil {
		return nil, err
	}
	return tx, nil
}

// Withdraw resolves the account, delegates, persists.
func (r *Registry) Withdraw(accountID string, amount decimal.Decimal, note string) (*Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return nil, ErrNotLoaded
	}

	acc := r.find(accountID)
	if acc == nil {
		return nil, ErrAccountNotFound
	}
	tx, err := acc.Withdraw(amount, note)
	if err != nil {
		return nil, err
	}
	if err := r.store.Save(r.accounts); err != nil {
		return nil, err
	}
	return tx, nil
}

// Transfer validates both ids, resolves both accounts and re-checks funds
// here before anything mutates, so a cross-account failure surfaces as a
// clean error with both sides untouched. Delegates to TransferTo, persists.
func (r *Registry) Transfer(fromID, toID string, amount decimal.Decimal, note string) (*Transaction, error) {
	if fromID == "" || toID == "" {
		return nil, fmt.Errorf("%w: both account ids are required", ErrInvalidArgument)
	}
	if fromID == toID {
		return nil, fmt.Errorf("%w: source and target are the same account", ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return nil, ErrNotLoaded
	}

	from := r.find(fromID)
	to := r.find(toID)
	if from == nil || to == nil {
		return nil, ErrAccountNotFound
	}
	if amount.GreaterThan(from.Balance) {
		return nil, ErrInsufficientFunds
	}

	tx, err := from.TransferTo(to, amount, note)
	if err != nil {
		return nil, err
	}
	if err := r.store.Save(r.accounts); err != nil {
		return nil, err
	}
	return tx, nil
}

// DeleteAccount removes the account from the collection if present; absent
// ids are a silent no-op. Shared transfer records on counterpart accounts are
// deliberately left alone.
func (r *Registry) DeleteAccount(accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return ErrNotLoaded
	}

	for i, acc := range r.accounts {
		if acc.ID == accountID {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return r.store.Save(r.accounts)
		}
	}
	return nil
}

// DeleteTransaction scans accounts in order and removes the record from the
// FIRST account whose history contains the id; only that account reconciles.
// When the record is one side of a transfer, the twin copy on the counterpart
// account stays until removed independently. Cascading removal is a deliberate
// non-feature, not an oversight.
func (r *Registry) DeleteTransaction(txID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return ErrNotLoaded
	}

	for _, acc := range r.accounts {
		if acc.RemoveTransaction(txID) {
			return r.store.Save(r.accounts)
		}
	}
	return ErrTransactionNotFound
}

// ApplyAnnualInterest runs one unconditional accrual on every eligible
// savings account (the manual "apply now" action, independent of the
// elapsed-time catch-up in Load). Returns how many accounts accrued.
func (r *Registry) ApplyAnnualInterest() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return 0, ErrNotLoaded
	}

	applied := 0
	for _, acc := range r.accounts {
		if !acc.InterestBearing() {
			continue
		}
		tx, err := acc.ApplyInterest()
		if err != nil {
			return applied, err
		}
		if tx != nil {
			applied++
		}
	}

	if applied > 0 {
		if err := r.store.Save(r.accounts); err != nil {
			return applied, err
		}
	}
	return applied, nil
}

// ReplaceAll installs an imported collection wholesale and persists. Callers
// are expected to have validated the accounts first (see internal/export).
func (r *Registry) ReplaceAll(accounts []*Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts = accounts
	r.loaded = true
	return r.store.Save(r.accounts)
}

// Accounts returns deep copies of the whole collection.
func (r *Registry) Accounts() []*Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		out = append(out, acc.Clone())
	}
	return out
}

// Account returns a deep copy of the account with the given id.
func (r *Registry) Account(accountID string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc := r.find(accountID)
	if acc == nil {
		return nil, ErrAccountNotFound
	}
	return acc.Clone(), nil
}

// FindTransaction returns a copy of the first matching record together with
// a copy of the account holding it, in the same scan order DeleteTransaction
// uses.
func (r *Registry) FindTransaction(txID string) (*Transaction, *Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, acc := range r.accounts {
		for i := range acc.Transactions {
			if acc.Transactions[i].ID == txID {
				tx := acc.Transactions[i]
				return &tx, acc.Clone(), nil
			}
		}
	}
	return nil, nil, ErrTransactionNotFound
}

func (r *Registry) find(accountID string) *Account {
	for _, acc := range r.accounts {
		if acc.ID == accountID {
			return acc
		}
	}
	return nil
}
