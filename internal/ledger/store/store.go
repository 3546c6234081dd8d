package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectDebtColumns = `d.id, d.user_id, d.person_id, d.amount, d.description, d.paid, d.created_at`

// scanDebt reads a debt row from the scanner and returns a populated Debt.
// Expected column order: id, user_id, person_id, amount, description, paid, created_at
func scanDebt(s scanner) (*ledger.Debt, error) {
	var d ledger.Debt

	var desc sql.NullString

	if err := s.Scan(
		&d.ID, &d.UserID, &d.PersonID, &d.Amount, &desc, &d.Paid, &d.CreatedAt,
	); err != nil {
		return nil, err
	}

	d.Description = desc.String

	return &d, nil
}

const selectPersonColumns = `p.id, p.user_id, p.name, p.total_owed, p.total_paid, p.created_at`

func scanPerson(s scanner) (*ledger.Person, error) {
	var p ledger.Person

	if err := s.Scan(
		&p.ID, &p.UserID, &p.Name, &p.TotalOwed, &p.TotalPaid, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Store) ListDebts(ctx context.Context, userID uuid.UUID) ([]*ledger.Debt, error) {
	query := `SELECT ` + selectDebtColumns + `
		FROM debts d
		WHERE d.user_id = $1
		ORDER BY d.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer rows.Close()

	return collectDebts(rows)
}

func (s *Store) ListDebtsForPerson(ctx context.Context, personID uuid.UUID) ([]*ledger.Debt, error) {
	query := `SELECT ` + selectDebtColumns + `
		FROM debts d
		WHERE d.person_id = $1
		ORDER BY d.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("listing debts for person: %w", err)
	}
	defer rows.Close()

	return collectDebts(rows)
}

func collectDebts(rows *sql.Rows) ([]*ledger.Debt, error) {
	var debts []*ledger.Debt

	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		debts = append(debts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debt rows: %w", err)
	}

	return debts, nil
}

func (s *Store) GetDebt(ctx context.Context, id uuid.UUID) (*ledger.Debt, error) {
	query := `SELECT ` + selectDebtColumns + `
		FROM debts d
		WHERE d.id = $1`

	d, err := scanDebt(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrDebtNotFound
		}

		return nil, fmt.Errorf("getting debt: %w", err)
	}

	return d, nil
}

func (s *Store) CreateDebt(ctx context.Context, d *ledger.Debt) error {
	query := `
		INSERT INTO debts (user_id, person_id, amount, description, paid, created_at)
		VALUES ($1, $2, $3, $4, false, NOW())
		RETURNING id, paid, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		d.UserID,
		d.PersonID,
		d.Amount,
		d.Description,
	).Scan(&d.ID, &d.Paid, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating debt: %w", err)
	}

	return nil
}

func (s *Store) SetDebtPaid(ctx context.Context, id uuid.UUID, paid bool) (*ledger.Debt, error) {
	query := `
		UPDATE debts d
		SET paid = $1
		WHERE d.id = $2
		RETURNING ` + selectDebtColumns

	d, err := scanDebt(s.db.QueryRowContext(ctx, query, paid, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrDebtNotFound
		}

		return nil, fmt.Errorf("setting debt paid: %w", err)
	}

	return d, nil
}

func (s *Store) DeleteDebt(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM debts
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}

	return nil
}

func (s *Store) ListPeople(ctx context.Context, userID uuid.UUID) ([]*ledger.Person, error) {
	query := `SELECT ` + selectPersonColumns + `
		FROM people p
		WHERE p.user_id = $1
		ORDER BY p.name ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var people []*ledger.Person

	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}

		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating person rows: %w", err)
	}

	return people, nil
}

func (s *Store) GetPerson(ctx context.Context, id uuid.UUID) (*ledger.Person, error) {
	query := `SELECT ` + selectPersonColumns + `
		FROM people p
		WHERE p.id = $1`

	p, err := scanPerson(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrPersonNotFound
		}

		return nil, fmt.Errorf("getting person: %w", err)
	}

	return p, nil
}

func (s *Store) CreatePerson(ctx context.Context, p *ledger.Person) error {
	query := `
		INSERT INTO people (user_id, name, total_owed, total_paid, created_at)
		VALUES ($1, $2, 0, 0, NOW())
		RETURNING id, total_owed, total_paid, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.UserID,
		p.Name,
	).Scan(&p.ID, &p.TotalOwed, &p.TotalPaid, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating person: %w", err)
	}

	return nil
}

// UpdateTotalOwed writes an absolute total computed by the caller. Swapping
// this for an atomic `total_owed = total_owed + $1` increment is the seam
// that would close the read-modify-write gap.
func (s *Store) UpdateTotalOwed(ctx context.Context, personID uuid.UUID, total decimal.Decimal) error {
	query := `
		UPDATE people
		SET total_owed = $1
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, total, personID)
	if err != nil {
		return fmt.Errorf("updating total owed: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrPersonNotFound
	}

	return nil
}

var _ ledger.Repository = (*Store)(nil)
