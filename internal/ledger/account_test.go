package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rate(s string) *decimal.Decimal {
	r := decimal.RequireFromString(s)
	return &r
}

func TestDepositAddsBalanceAndRecord(t *testing.T) {
	acc := NewAccount("Everyday", TypeChecking, "USD", decimal.Zero, nil)

	tx, err := acc.Deposit(dec("100"), "")
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	if !acc.Balance.Equal(dec("100")) {
		t.Errorf("balance = %s, want 100", acc.Balance)
	}
	if len(acc.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(acc.Transactions))
	}
	if tx.Type != TxDeposit {
		t.Errorf("type = %s, want deposit", tx.Type)
	}
	if tx.ToAccountID != acc.ID || tx.FromAccountID != "" {
		t.Errorf("deposit must set only the destination account")
	}
	if !tx.Amount.Equal(dec("100")) {
		t.Errorf("amount = %s, want 100", tx.Amount)
	}
	if !tx.BalanceBefore.Equal(decimal.Zero) || !tx.BalanceAfter.Equal(dec("100")) {
		t.Errorf("balance snapshots = %s/%s, want 0/100", tx.BalanceBefore, tx.BalanceAfter)
	}
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-5"} {
		acc := NewAccount("Everyday", TypeChecking, "USD", dec("50"), nil)

		_, err := acc.Deposit(dec(amount), "")
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Deposit(%s) error = %v, want ErrInvalidAmount", amount, err)
		}
		if !acc.Balance.Equal(dec("50")) || len(acc.Transactions) != 0 {
			t.Errorf("Deposit(%s) mutated state on failure", amount)
		}
	}
}

func TestWithdrawExactBalance(t *testing.T) {
	acc := NewAccount("Everyday", TypeChecking, "USD", dec("75.25"), nil)

	_, err := acc.Withdraw(dec("75.25"), "")
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if !acc.Balance.IsZero() {
		t.Errorf("balance = %s, want 0", acc.Balance)
	}
}

func TestWithdrawOverdraftLeavesStateUntouched(t *testing.T) {
	acc := NewAccount("Everyday", TypeChecking, "USD", dec("75.25"), nil)

	_, err := acc.Withdraw(dec("75.26"), "")
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("error = %v, want ErrInsufficientFunds", err)
	}
	if !acc.Balance.Equal(dec("75.25")) || len(acc.Transactions) != 0 {
		t.Errorf("failed withdrawal mutated state")
	}
}

func TestTransferMovesFundsAndSharesRecordID(t *testing.T) {
	a := NewAccount("A", TypeChecking, "USD", dec("100"), nil)
	b := NewAccount("B", TypeChecking, "USD", decimal.Zero, nil)

	tx, err := a.TransferTo(b, dec("50"), "")
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	if !a.Balance.Equal(dec("50")) {
		t.Errorf("A balance = %s, want 50", a.Balance)
	}
	if !b.Balance.Equal(dec("50")) {
		t.Errorf("B balance = %s, want 50", b.Balance)
	}
	if len(a.Transactions) != 1 || len(b.Transactions) != 1 {
		t.Fatalf("both accounts must record the transfer")
	}
	if a.Transactions[0].ID != b.Transactions[0].ID {
		t.Errorf("transfer ids differ: %s vs %s", a.Transactions[0].ID, b.Transactions[0].ID)
	}
	if tx.FromAccountID != a.ID || tx.ToAccountID != b.ID {
		t.Errorf("transfer must reference both accounts")
	}
}

func TestTransferToSelfRejected(t *testing.T) {
	a := NewAccount("A", TypeChecking, "USD", dec("100"), nil)

	_, err := a.TransferTo(a, dec("10"), "")
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("error = %v, want ErrInvalidTarget", err)
	}
	if !a.Balance.Equal(dec("100")) || len(a.Transactions) != 0 {
		t.Errorf("self-transfer mutated state")
	}
}

func TestTransferValidationBeforeMutation(t *testing.T) {
	a := NewAccount("A", TypeChecking, "USD", dec("30"), nil)
	b := NewAccount("B", TypeChecking, "USD", decimal.Zero, nil)

	_, err := a.TransferTo(b, dec("30.01"), "")
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("error = %v, want ErrInsufficientFunds", err)
	}
	if !a.Balance.Equal(dec("30")) || !b.Balance.IsZero() {
		t.Errorf("failed transfer mutated balances")
	}
	if len(a.Transactions) != 0 || len(b.Transactions) != 0 {
		t.Errorf("failed transfer appended records")
	}
}

func TestRemoveTransactionRecomputesBalance(t *testing.T) {
	acc := NewAccount("Everyday", TypeChecking, "USD", decimal.Zero, nil)

	if _, err := acc.Deposit(dec("100"), ""); err != nil {
		t.Fatal(err)
	}
	wd, err := acc.Withdraw(dec("30"), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := acc.Deposit(dec("10"), ""); err != nil {
		t.Fatal(err)
	}
	if !acc.Balance.Equal(dec("80")) {
		t.Fatalf("balance = %s, want 80", acc.Balance)
	}

	if !acc.RemoveTransaction(wd.ID) {
		t.Fatal("expected removal to find the record")
	}

	if !acc.Balance.Equal(dec("110")) {
		t.Errorf("balance after removal = %s, want 110", acc.Balance)
	}
	if len(acc.Transactions) != 2 {
		t.Errorf("got %d transactions, want 2", len(acc.Transactions))
	}
}

func TestRemoveTransactionMissingID(t *testing.T) {
	acc := NewAccount("Everyday", TypeChecking, "USD", dec("20"), nil)
	if _, err := acc.Deposit(dec("5"), ""); err != nil {
		t.Fatal(err)
	}

	if acc.RemoveTransaction("no-such-id") {
		t.Fatal("removal of an unknown id must be a no-op")
	}
	if !acc.Balance.Equal(dec("25")) || len(acc.Transactions) != 1 {
		t.Errorf("no-op removal mutated state")
	}
}

func TestApplyInterestCompoundsAcrossCalls(t *testing.T) {
	acc := NewAccount("Rainy Day", TypeSavings, "USD", dec("1000"), rate("0.05"))

	tx, err := acc.ApplyInterest()
	if err != nil {
		t.Fatalf("first accrual failed: %v", err)
	}
	if !tx.Amount.Equal(dec("50")) {
		t.Errorf("first interest = %s, want 50", tx.Amount)
	}
	if tx.Note != "interest at 5%" {
		t.Errorf("note = %q, want %q", tx.Note, "interest at 5%")
	}
	if !acc.Balance.Equal(dec("1050")) {
		t.Errorf("balance = %s, want 1050", acc.Balance)
	}

	if _, err := acc.ApplyInterest(); err != nil {
		t.Fatalf("second accrual failed: %v", err)
	}
	if !acc.Balance.Equal(dec("1102.50")) {
		t.Errorf("balance = %s, want 1102.50", acc.Balance)
	}
	if acc.LastInterestApplied.IsZero() {
		t.Errorf("LastInterestApplied not set")
	}
}

func TestApplyInterestRequiresBearingAccount(t *testing.T) {
	checking := NewAccount("Everyday", TypeChecking, "USD", dec("1000"), nil)
	if _, err := checking.ApplyInterest(); !errors.Is(err, ErrNotInterestBearing) {
		t.Errorf("checking error = %v, want ErrNotInterestBearing", err)
	}

	noRate := NewAccount("Idle", TypeSavings, "USD", dec("1000"), nil)
	if _, err := noRate.ApplyInterest(); !errors.Is(err, ErrNotInterestBearing) {
		t.Errorf("rate-less savings error = %v, want ErrNotInterestBearing", err)
	}
}

func TestApplyInterestSkipsZeroAccrual(t *testing.T) {
	acc := NewAccount("Rainy Day", TypeSavings, "USD", decimal.Zero, rate("0.05"))

	tx, err := acc.ApplyInterest()
	if err != nil {
		t.Fatalf("accrual failed: %v", err)
	}
	if tx != nil {
		t.Errorf("expected no record for a zero accrual")
	}
	if len(acc.Transactions) != 0 {
		t.Errorf("zero accrual appended a record")
	}
}

func TestBalanceInvariantHoldsAcrossOperations(t *testing.T) {
	a := NewAccount("A", TypeSavings, "USD", dec("250"), rate("0.02"))
	b := NewAccount("B", TypeChecking, "USD", dec("40"), nil)

	if _, err := a.Deposit(dec("60"), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Withdraw(dec("15.75"), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := a.TransferTo(b, dec("100"), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := a.ApplyInterest(); err != nil {
		t.Fatal(err)
	}

	for _, acc := range []*Account{a, b} {
		if !acc.Balance.Equal(acc.ComputedBalance()) {
			t.Errorf("%s: balance %s diverged from history (computed %s)",
				acc.Name, acc.Balance, acc.ComputedBalance())
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	acc := NewAccount("Everyday", TypeChecking, "USD", dec("10"), nil)
	if _, err := acc.Deposit(dec("5"), ""); err != nil {
		t.Fatal(err)
	}

	cp := acc.Clone()
	if _, err := acc.Deposit(dec("5"), ""); err != nil {
		t.Fatal(err)
	}

	if len(cp.Transactions) != 1 {
		t.Errorf("clone shares the transaction slice with the original")
	}
	if !cp.Balance.Equal(dec("15")) {
		t.Errorf("clone balance = %s, want 15", cp.Balance)
	}
}
