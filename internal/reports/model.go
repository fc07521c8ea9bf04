package reports

// BookIssueStat ranks one book by its open-loan count. Because returning a
// book deletes its transaction row, counts reflect books currently out, not
// cumulative history.
type BookIssueStat struct {
	Title      string `json:"title"`
	BookID     string `json:"book_id"`
	IssueCount int64  `json:"issue_count"`
}

// MonthlyStat is one "YYYY-MM" bucket of issue activity.
type MonthlyStat struct {
	Month  string `json:"month"`
	Issues int64  `json:"issues"`
}

// MemberActivityStat ranks one member by books currently borrowed.
type MemberActivityStat struct {
	MemberName    string `json:"member_name"`
	MemberID      int64  `json:"member_id"`
	BooksBorrowed int64  `json:"books_borrowed"`
}
