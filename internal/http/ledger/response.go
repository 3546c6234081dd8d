package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type debtResponse struct {
	ID          uuid.UUID       `json:"id"`
	PersonID    uuid.UUID       `json:"person_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Paid        bool            `json:"paid"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toDebtResponse(d *ledger.Debt) debtResponse {
	return debtResponse{
		ID:          d.ID,
		PersonID:    d.PersonID,
		Amount:      d.Amount,
		Description: d.Description,
		Paid:        d.Paid,
		CreatedAt:   d.CreatedAt,
	}
}

func toDebtResponseList(debts []*ledger.Debt) []debtResponse {
	resp := make([]debtResponse, len(debts))
	for i, d := range debts {
		resp[i] = toDebtResponse(d)
	}

	return resp
}

type personResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	TotalOwed decimal.Decimal `json:"total_owed"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	CreatedAt time.Time       `json:"created_at"`
}

func toPersonResponse(p *ledger.Person) personResponse {
	return personResponse{
		ID:        p.ID,
		Name:      p.Name,
		TotalOwed: p.TotalOwed,
		TotalPaid: p.TotalPaid,
		CreatedAt: p.CreatedAt,
	}
}

func toPersonResponseList(people []*ledger.Person) []personResponse {
	resp := make([]personResponse, len(people))
	for i, p := range people {
		resp[i] = toPersonResponse(p)
	}

	return resp
}

type historyPointResponse struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

func toHistoryResponse(points []ledger.HistoryPoint) []historyPointResponse {
	resp := make([]historyPointResponse, len(points))
	for i, p := range points {
		resp[i] = historyPointResponse{Date: p.Date, Amount: p.Amount}
	}

	return resp
}
