package circulation

import (
	"context"
	"database/sql"
	"time"

	platformdb "LCMS-backend/internal/platform/db"
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Insert(ctx context.Context, t *Transaction) error {
	const q = `
INSERT INTO Transactions (transaction_id, book_id, member_id, librarian_id, date_issued, due_date)
VALUES (?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q,
		t.TransactionID,
		t.BookID,
		t.MemberID,
		t.LibrarianID,
		t.DateIssued.Format(DateLayout),
		t.DueDate.Format(DateLayout),
	)
	return err
}

// TakeForReturn looks up a transaction and deletes it inside one DB
// transaction, so the read and the delete cannot interleave with another
// return of the same row. Returns sql.ErrNoRows when the id is unknown.
func (s *Store) TakeForReturn(ctx context.Context, transactionID string) (*Transaction, error) {
	var t Transaction
	err := platformdb.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx platformdb.DBTX) error {
		const sel = `
SELECT transaction_id, book_id, member_id, librarian_id, date_issued, due_date
FROM Transactions
WHERE transaction_id = ?
FOR UPDATE
`
		row := tx.QueryRowContext(ctx, sel, transactionID)
		if err := scanTransaction(row, &t); err != nil {
			return err
		}

		const del = `DELETE FROM Transactions WHERE transaction_id = ?`
		_, err := tx.ExecContext(ctx, del, transactionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) ListOverdue(ctx context.Context, reference time.Time) ([]Transaction, error) {
	const q = `
SELECT transaction_id, book_id, member_id, librarian_id, date_issued, due_date
FROM Transactions
WHERE due_date < ?
ORDER BY due_date ASC, transaction_id ASC
`
	return s.queryTransactions(ctx, q, reference.Format(DateLayout))
}

func (s *Store) ListByMember(ctx context.Context, memberID int64) ([]Transaction, error) {
	const q = `
SELECT transaction_id, book_id, member_id, librarian_id, date_issued, due_date
FROM Transactions
WHERE member_id = ?
ORDER BY date_issued ASC, transaction_id ASC
`
	return s.queryTransactions(ctx, q, memberID)
}

func (s *Store) ListAll(ctx context.Context) ([]Transaction, error) {
	const q = `
SELECT transaction_id, book_id, member_id, librarian_id, date_issued, due_date
FROM Transactions
ORDER BY date_issued ASC, transaction_id ASC
`
	return s.queryTransactions(ctx, q)
}

func (s *Store) queryTransactions(ctx context.Context, q string, args ...any) ([]Transaction, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.TransactionID, &t.BookID, &t.MemberID, &t.LibrarianID, &t.DateIssued, &t.DueDate); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner, t *Transaction) error {
	return row.Scan(&t.TransactionID, &t.BookID, &t.MemberID, &t.LibrarianID, &t.DateIssued, &t.DueDate)
}
