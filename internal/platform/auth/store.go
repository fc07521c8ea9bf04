package auth

import (
	"context"
	"database/sql"
	"errors"
)

// Admin mirrors the Admin table: username is the primary key, password holds
// either a bcrypt hash (new accounts) or a legacy plaintext value.
type Admin struct {
	Username string
	Password string
	Name     string
	Email    string
}

type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	Create(ctx context.Context, a *Admin) error
	List(ctx context.Context) ([]Admin, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) AdminStore {
	return &Store{db: db}
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	const q = `
SELECT username, password, name, email
FROM Admin
WHERE username = ?
LIMIT 1
`
	var a Admin
	err := s.db.QueryRowContext(ctx, q, username).Scan(
		&a.Username,
		&a.Password,
		&a.Name,
		&a.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) Create(ctx context.Context, a *Admin) error {
	const q = `
INSERT INTO Admin (username, password, name, email)
VALUES (?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q, a.Username, a.Password, a.Name, a.Email)
	return err
}

func (s *Store) List(ctx context.Context) ([]Admin, error) {
	const q = `SELECT username, password, name, email FROM Admin ORDER BY username`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Admin
	for rows.Next() {
		var a Admin
		if err := rows.Scan(&a.Username, &a.Password, &a.Name, &a.Email); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
