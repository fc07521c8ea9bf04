package circulation

import "time"

const DateLayout = "2006-01-02"

// Transaction is one row of the Transactions table. A row exists only while
// the book is out; returning the book deletes it.
type Transaction struct {
	TransactionID string
	BookID        string
	MemberID      int64
	LibrarianID   string
	DateIssued    time.Time
	DueDate       time.Time
}

// Loan status derived at read time, never stored.
const (
	StatusActive  = "active"
	StatusOverdue = "overdue"
)
