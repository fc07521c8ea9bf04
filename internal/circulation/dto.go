package circulation

// IssueRequest creates one loan. A missing transaction_id is filled with a
// generated ULID; issue_date defaults to today (UTC).
type IssueRequest struct {
	TransactionID string  `json:"transaction_id"`
	BookID        string  `json:"book_id" binding:"required"`
	MemberID      int64   `json:"member_id" binding:"required"`
	LibrarianID   string  `json:"librarian_id" binding:"required"`
	IssueDate     *string `json:"issue_date,omitempty"` // "YYYY-MM-DD"
}

type TransactionResponse struct {
	TransactionID string `json:"transaction_id"`
	BookID        string `json:"book_id"`
	MemberID      int64  `json:"member_id"`
	LibrarianID   string `json:"librarian_id"`
	DateIssued    string `json:"date_issued"` // "YYYY-MM-DD"
	DueDate       string `json:"due_date"`    // "YYYY-MM-DD"
}

// ReturnResponse is informational only; fines are shown to the caller and
// never persisted.
type ReturnResponse struct {
	TransactionID string `json:"transaction_id"`
	DaysOverdue   int    `json:"days_overdue"`
	Fine          int    `json:"fine"`
}

type OverdueRow struct {
	TransactionResponse
	DaysOverdue int `json:"days_overdue"`
	Fine        int `json:"fine"`
}

type OverdueReport struct {
	Items     []OverdueRow `json:"items"`
	TotalFine int          `json:"total_fine"`
}

type MemberTransactionRow struct {
	TransactionResponse
	Status string `json:"status"` // "active" or "overdue"
}

type MemberTransactionsResponse struct {
	Items        []MemberTransactionRow `json:"items"`
	ActiveCount  int                    `json:"active_count"`
	OverdueCount int                    `json:"overdue_count"`
}

func toResponse(t *Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		BookID:        t.BookID,
		MemberID:      t.MemberID,
		LibrarianID:   t.LibrarianID,
		DateIssued:    t.DateIssued.Format(DateLayout),
		DueDate:       t.DueDate.Format(DateLayout),
	}
}
