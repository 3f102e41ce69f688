// Package auth implements the PIN latch in front of the CLI. It is a UI
// gate, not a security boundary: the ledger itself is a plain local file.
package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPINMismatch = errors.New("incorrect PIN")
	ErrPINTooShort = errors.New("PIN must be at least 4 characters")
)

// HashPIN derives the bcrypt hash stored in the config file.
func HashPIN(pin string) (string, error) {
	pin = strings.TrimSpace(pin)
	if len(pin) < 4 {
		return "", ErrPINTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPIN compares user input against the stored hash.
func VerifyPIN(hash, pin string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(pin))); err != nil {
		return ErrPINMismatch
	}
	return nil
}
