package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	ListDebts(ctx context.Context, userID uuid.UUID) ([]*Debt, error)
	ListDebtsForPerson(ctx context.Context, personID uuid.UUID) ([]*Debt, error)
	GetDebt(ctx context.Context, id uuid.UUID) (*Debt, error)
	CreateDebt(ctx context.Context, d *Debt) error
	SetDebtPaid(ctx context.Context, id uuid.UUID, paid bool) (*Debt, error)
	DeleteDebt(ctx context.Context, id uuid.UUID) error

	ListPeople(ctx context.Context, userID uuid.UUID) ([]*Person, error)
	GetPerson(ctx context.Context, id uuid.UUID) (*Person, error)
	CreatePerson(ctx context.Context, p *Person) error
	UpdateTotalOwed(ctx context.Context, personID uuid.UUID, total decimal.Decimal) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateDebtParams struct {
	UserID      uuid.UUID
	PersonID    uuid.UUID
	Amount      decimal.Decimal
	Description string
}

// ListDebts returns the user's debts, newest first.
func (s *Service) ListDebts(ctx context.Context, userID uuid.UUID) ([]*Debt, error) {
	return s.repo.ListDebts(ctx, userID)
}

// ListPeople returns the user's people, ordered by name ascending.
func (s *Service) ListPeople(ctx context.Context, userID uuid.UUID) ([]*Person, error) {
	return s.repo.ListPeople(ctx, userID)
}

// CreateDebt records a debt and folds its amount into the person's running
// total. The sequence is read person, insert debt, write back the new
// total. The steps are not atomic: a failure after the insert leaves a
// debt row whose amount is not yet reflected in the total, and no rollback
// is attempted.
func (s *Service) CreateDebt(ctx context.Context, params CreateDebtParams) (*Debt, error) {
	person, err := s.repo.GetPerson(ctx, params.PersonID)
	if err != nil {
		return nil, fmt.Errorf("reading person: %w", err)
	}

	d := &Debt{
		UserID:      params.UserID,
		PersonID:    params.PersonID,
		Amount:      params.Amount,
		Description: params.Description,
	}
	if err := s.repo.CreateDebt(ctx, d); err != nil {
		return nil, fmt.Errorf("inserting debt: %w", err)
	}

	if err := s.repo.UpdateTotalOwed(ctx, params.PersonID, person.TotalOwed.Add(params.Amount)); err != nil {
		return nil, fmt.Errorf("updating total owed: %w", err)
	}

	return d, nil
}

// DeleteDebt is the inverse of CreateDebt: it subtracts the debt's amount
// from the person's running total, then removes the row. As with
// CreateDebt, completed steps are not compensated on a later failure.
func (s *Service) DeleteDebt(ctx context.Context, debtID uuid.UUID) error {
	d, err := s.repo.GetDebt(ctx, debtID)
	if err != nil {
		return fmt.Errorf("reading debt: %w", err)
	}

	person, err := s.repo.GetPerson(ctx, d.PersonID)
	if err != nil {
		return fmt.Errorf("reading person: %w", err)
	}

	if err := s.repo.UpdateTotalOwed(ctx, d.PersonID, person.TotalOwed.Sub(d.Amount)); err != nil {
		return fmt.Errorf("updating total owed: %w", err)
	}

	if err := s.repo.DeleteDebt(ctx, debtID); err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}

	return nil
}

// MarkPaid flips the paid flag and returns the updated debt. The person's
// total is untouched.
func (s *Service) MarkPaid(ctx context.Context, debtID uuid.UUID) (*Debt, error) {
	return s.repo.SetDebtPaid(ctx, debtID, true)
}

func (s *Service) MarkUnpaid(ctx context.Context, debtID uuid.UUID) error {
	_, err := s.repo.SetDebtPaid(ctx, debtID, false)
	return err
}

func (s *Service) GetDebt(ctx context.Context, debtID uuid.UUID) (*Debt, error) {
	return s.repo.GetDebt(ctx, debtID)
}

func (s *Service) GetPerson(ctx context.Context, personID uuid.UUID) (*Person, error) {
	return s.repo.GetPerson(ctx, personID)
}

func (s *Service) DebtsForPerson(ctx context.Context, personID uuid.UUID) ([]*Debt, error) {
	return s.repo.ListDebtsForPerson(ctx, personID)
}

func (s *Service) AddPerson(ctx context.Context, userID uuid.UUID, name string) (*Person, error) {
	p := &Person{
		UserID: userID,
		Name:   name,
	}
	if err := s.repo.CreatePerson(ctx, p); err != nil {
		return nil, fmt.Errorf("creating person: %w", err)
	}

	return p, nil
}

// Outstanding sums the user's unpaid debt amounts. It is computed from the
// debt rows rather than the per-person totals, which count paid debts too.
func (s *Service) Outstanding(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	debts, err := s.repo.ListDebts(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("listing debts: %w", err)
	}

	total := decimal.Zero

	for _, d := range debts {
		if d.Paid {
			continue
		}

		total = total.Add(d.Amount)
	}

	return total, nil
}

// History returns the person's debt amounts as chart points, oldest first.
func (s *Service) History(ctx context.Context, personID uuid.UUID) ([]HistoryPoint, error) {
	debts, err := s.repo.ListDebtsForPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("listing debts for person: %w", err)
	}

	points := make([]HistoryPoint, 0, len(debts))

	// ListDebtsForPerson returns newest first; the chart reads left to right.
	for i := len(debts) - 1; i >= 0; i-- {
		points = append(points, HistoryPoint{
			Date:   debts[i].CreatedAt,
			Amount: debts[i].Amount,
		})
	}

	return points, nil
}
