// ABOUTME: Local account model for the built-in auth provider.
// ABOUTME: Only the bcrypt hash of the password is ever stored.
package models

import (
	"strings"
	"time"
)

// Account is a registered local user.
type Account struct {
	ID           string    `json:"id" yaml:"id"`
	Email        string    `json:"email" yaml:"email"`
	PasswordHash string    `json:"-" yaml:"password_hash"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// NewAccount creates an account with a normalised email.
func NewAccount(email, passwordHash string) *Account {
	return &Account{
		ID:           NewID(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
