package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrDebtNotFound   = errors.New("debt not found")
	ErrPersonNotFound = errors.New("person not found")
)

// Person represents a counterparty the user tracks debts against.
// TotalOwed is a denormalized running sum of debt amounts, maintained by
// the create/delete operations. TotalPaid is carried in the schema but
// never written.
type Person struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	TotalOwed decimal.Decimal
	TotalPaid decimal.Decimal
	CreatedAt time.Time
}

// Debt represents a single recorded obligation of a fixed amount between
// the user and a person. The amount's sign encodes the direction.
type Debt struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	PersonID    uuid.UUID
	Amount      decimal.Decimal
	Description string
	Paid        bool
	CreatedAt   time.Time
}

// HistoryPoint is a single debt amount at its creation time, used to plot
// a person's debts over time.
type HistoryPoint struct {
	Date   time.Time
	Amount decimal.Decimal
}
