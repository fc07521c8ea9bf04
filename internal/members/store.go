package members

import (
	"context"
	"database/sql"
	"errors"
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// NextID resolves MAX(member_id)+1, or FirstMemberID on an empty table.
func (s *Store) NextID(ctx context.Context) (int64, error) {
	const q = `SELECT COALESCE(MAX(member_id), ?) + 1 FROM Members`
	var id int64
	if err := s.db.QueryRowContext(ctx, q, FirstMemberID-1).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) Insert(ctx context.Context, m *Member) error {
	const q = `
INSERT INTO Members (member_id, name, contact)
VALUES (?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q, m.MemberID, m.Name, m.Contact)
	return err
}

func (s *Store) GetByID(ctx context.Context, memberID int64) (*Member, error) {
	const q = `
SELECT member_id, name, contact
FROM Members
WHERE member_id = ?
LIMIT 1
`
	var m Member
	err := s.db.QueryRowContext(ctx, q, memberID).Scan(&m.MemberID, &m.Name, &m.Contact)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByLogin matches member_id and name exactly, case sensitive as stored.
func (s *Store) GetByLogin(ctx context.Context, memberID int64, name string) (*Member, error) {
	const q = `
SELECT member_id, name, contact
FROM Members
WHERE member_id = ? AND BINARY name = ?
LIMIT 1
`
	var m Member
	err := s.db.QueryRowContext(ctx, q, memberID, name).Scan(&m.MemberID, &m.Name, &m.Contact)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) List(ctx context.Context) ([]Member, error) {
	const q = `SELECT member_id, name, contact FROM Members ORDER BY member_id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.MemberID, &m.Name, &m.Contact); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
