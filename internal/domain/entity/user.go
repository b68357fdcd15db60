package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account allowed to operate the ledger.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with a normalized email.
func NewUser(email, name, passwordHash string, now time.Time) *User {
	now = now.UTC()
	return &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
