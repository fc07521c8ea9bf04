package reports

import (
	"context"
	"database/sql"
)

const (
	// recentMonths caps the monthly trend at the most recent buckets present.
	recentMonths = 6

	// topMembers caps the member activity ranking.
	topMembers = 5
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// MostIssuedBooks counts open loans per book. Books with no open loan still
// appear with a zero count (LEFT JOIN). Ties rank by book_id.
func (s *Store) MostIssuedBooks(ctx context.Context) ([]BookIssueStat, error) {
	const q = `
SELECT b.title, b.book_id, COUNT(t.transaction_id) AS issue_count
FROM Book b
LEFT JOIN Transactions t ON b.book_id = t.book_id
GROUP BY b.book_id, b.title
ORDER BY issue_count DESC, b.book_id ASC
`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BookIssueStat, 0, 16)
	for rows.Next() {
		var r BookIssueStat
		if err := rows.Scan(&r.Title, &r.BookID, &r.IssueCount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MonthlyIssueCounts buckets open loans by issue month, newest first, capped
// at the six most recent months present in the data.
func (s *Store) MonthlyIssueCounts(ctx context.Context) ([]MonthlyStat, error) {
	const q = `
SELECT DATE_FORMAT(date_issued, '%Y-%m') AS month, COUNT(*) AS issue_count
FROM Transactions
GROUP BY DATE_FORMAT(date_issued, '%Y-%m')
ORDER BY month DESC
LIMIT ?
`
	rows, err := s.db.QueryContext(ctx, q, recentMonths)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MonthlyStat, 0, recentMonths)
	for rows.Next() {
		var r MonthlyStat
		if err := rows.Scan(&r.Month, &r.Issues); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MemberActivity counts open loans per member, top 5. Ties rank by
// member_id.
func (s *Store) MemberActivity(ctx context.Context) ([]MemberActivityStat, error) {
	const q = `
SELECT m.name, m.member_id, COUNT(t.transaction_id) AS borrow_count
FROM Members m
LEFT JOIN Transactions t ON m.member_id = t.member_id
GROUP BY m.member_id, m.name
ORDER BY borrow_count DESC, m.member_id ASC
LIMIT ?
`
	rows, err := s.db.QueryContext(ctx, q, topMembers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MemberActivityStat, 0, topMembers)
	for rows.Next() {
		var r MemberActivityStat
		if err := rows.Scan(&r.MemberName, &r.MemberID, &r.BooksBorrowed); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
