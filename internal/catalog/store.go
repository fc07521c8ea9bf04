package catalog

import (
	"context"
	"database/sql"
	"errors"
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// ===== books =====

func (s *Store) InsertBook(ctx context.Context, b *Book) error {
	const q = `
INSERT INTO Book (book_id, title, author, librarian_id)
VALUES (?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q, b.BookID, b.Title, b.Author, b.LibrarianID)
	return err
}

func (s *Store) GetBook(ctx context.Context, bookID string) (*Book, error) {
	const q = `
SELECT book_id, title, author, librarian_id
FROM Book
WHERE book_id = ?
LIMIT 1
`
	var b Book
	err := s.db.QueryRowContext(ctx, q, bookID).Scan(&b.BookID, &b.Title, &b.Author, &b.LibrarianID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) ListBooks(ctx context.Context) ([]Book, error) {
	const q = `SELECT book_id, title, author, librarian_id FROM Book ORDER BY book_id`
	return s.queryBooks(ctx, q)
}

// SearchBooks filters on title or author with a substring LIKE match.
func (s *Store) SearchBooks(ctx context.Context, field, term string) ([]Book, error) {
	q := `SELECT book_id, title, author, librarian_id FROM Book WHERE title LIKE ? ORDER BY book_id`
	if field == SearchByAuthor {
		q = `SELECT book_id, title, author, librarian_id FROM Book WHERE author LIKE ? ORDER BY book_id`
	}
	return s.queryBooks(ctx, q, "%"+term+"%")
}

func (s *Store) UpdateBook(ctx context.Context, b *Book) (int64, error) {
	const q = `
UPDATE Book
SET title = ?, author = ?, librarian_id = ?
WHERE book_id = ?
`
	res, err := s.db.ExecContext(ctx, q, b.Title, b.Author, b.LibrarianID, b.BookID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) DeleteBook(ctx context.Context, bookID string) (int64, error) {
	const q = `DELETE FROM Book WHERE book_id = ?`
	res, err := s.db.ExecContext(ctx, q, bookID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) queryBooks(ctx context.Context, q string, args ...any) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.BookID, &b.Title, &b.Author, &b.LibrarianID); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ===== librarians =====

func (s *Store) GetLibrarian(ctx context.Context, librarianID string) (*Librarian, error) {
	const q = `
SELECT librarian_id, name, contact
FROM Librarian
WHERE librarian_id = ?
LIMIT 1
`
	var l Librarian
	err := s.db.QueryRowContext(ctx, q, librarianID).Scan(&l.LibrarianID, &l.Name, &l.Contact)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) ListLibrarians(ctx context.Context) ([]Librarian, error) {
	const q = `SELECT librarian_id, name, contact FROM Librarian ORDER BY librarian_id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Librarian
	for rows.Next() {
		var l Librarian
		if err := rows.Scan(&l.LibrarianID, &l.Name, &l.Contact); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
