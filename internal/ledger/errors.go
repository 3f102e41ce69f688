package ledger

import "errors"

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidTarget       = errors.New("cannot transfer to the same account")
	ErrNotLoaded           = errors.New("ledger has not been loaded")
	ErrNotInterestBearing  = errors.New("account does not accrue interest")
	ErrTransactionNotFound = errors.New("transaction not found")
)
