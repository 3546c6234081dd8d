package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// User is an account holder. CurrencySymbol is the display preference
// attached to the account, purely presentational.
type User struct {
	ID             uuid.UUID
	Email          string
	PasswordHash   string
	CurrencySymbol string
	CreatedAt      time.Time
}
