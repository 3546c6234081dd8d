package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/auth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, u *auth.User) error {
	query := `
		INSERT INTO users (email, password_hash, currency_symbol, created_at)
		VALUES ($1, $2, '€', NOW())
		RETURNING id, currency_symbol, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		u.Email,
		u.PasswordHash,
	).Scan(&u.ID, &u.CurrencySymbol, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

const selectUserColumns = `id, email, password_hash, currency_symbol, created_at`

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE id = $1`

	return s.getUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE email = $1`

	return s.getUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *Store) getUser(row *sql.Row) (*auth.User, error) {
	var u auth.User

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CurrencySymbol, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &u, nil
}

func (s *Store) UpdateCurrencySymbol(ctx context.Context, id uuid.UUID, symbol string) error {
	query := `
		UPDATE users
		SET currency_symbol = $1
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, symbol, id)
	if err != nil {
		return fmt.Errorf("updating currency symbol: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return auth.ErrUserNotFound
	}

	return nil
}

var _ auth.Repository = (*Store)(nil)
