package circulation

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"strings"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	ulid "github.com/oklog/ulid/v2"
)

// ===== Clock & ID =====

type Clock interface{ Now() time.Time }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ NewULID(t time.Time) string }

type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// TransactionStore is what the service needs from the Transactions table;
// *Store implements it, tests substitute a fake.
type TransactionStore interface {
	Insert(ctx context.Context, t *Transaction) error
	TakeForReturn(ctx context.Context, transactionID string) (*Transaction, error)
	ListOverdue(ctx context.Context, reference time.Time) ([]Transaction, error)
	ListByMember(ctx context.Context, memberID int64) ([]Transaction, error)
	ListAll(ctx context.Context) ([]Transaction, error)
}

type Service struct {
	store TransactionStore
	clock Clock
	id    IDGen
}

func NewService(db *sql.DB) *Service {
	return &Service{
		store: NewStore(db),
		clock: realClock{},
		id:    ulidGen{},
	}
}

// IssueBook inserts one loan with due_date = issue date + 14 days. The
// primary key is the only uniqueness rule: issuing a book that is already
// out creates a second open loan for it, exactly as the legacy data model
// allows. A duplicate transaction_id surfaces as CONFLICT from the insert.
func (s *Service) IssueBook(ctx context.Context, req IssueRequest) (*TransactionResponse, error) {
	if strings.TrimSpace(req.BookID) == "" {
		return nil, ErrInvalid("book_id is required")
	}
	if req.MemberID <= 0 {
		return nil, ErrInvalid("member_id must be > 0")
	}
	if strings.TrimSpace(req.LibrarianID) == "" {
		return nil, ErrInvalid("librarian_id is required")
	}

	now := s.clock.Now()

	transactionID := strings.TrimSpace(req.TransactionID)
	if transactionID == "" {
		transactionID = s.id.NewULID(now)
	}

	issued := truncateToDay(now)
	if req.IssueDate != nil && *req.IssueDate != "" {
		parsed, err := time.ParseInLocation(DateLayout, *req.IssueDate, time.UTC)
		if err != nil {
			return nil, ErrInvalid("issue_date must be YYYY-MM-DD")
		}
		issued = parsed
	}

	t := &Transaction{
		TransactionID: transactionID,
		BookID:        strings.TrimSpace(req.BookID),
		MemberID:      req.MemberID,
		LibrarianID:   strings.TrimSpace(req.LibrarianID),
		DateIssued:    issued,
		DueDate:       issued.AddDate(0, 0, LoanPeriodDays),
	}

	if err := s.store.Insert(ctx, t); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return nil, ErrConflict("transaction_id already exists")
		}
		return nil, err
	}

	resp := toResponse(t)
	return &resp, nil
}

// ReturnBook deletes the loan and reports the fine owed at the reference
// date. The row is gone afterwards; the fine is never persisted.
func (s *Service) ReturnBook(ctx context.Context, transactionID string, reference *time.Time) (*ReturnResponse, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, ErrInvalid("transaction_id is required")
	}

	t, err := s.store.TakeForReturn(ctx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("transaction not found")
		}
		return nil, err
	}

	ref := s.clock.Now()
	if reference != nil {
		ref = *reference
	}
	days, fine := CalculateFine(t.DueDate, ref, DefaultFineRatePerDay)

	return &ReturnResponse{
		TransactionID: t.TransactionID,
		DaysOverdue:   days,
		Fine:          fine,
	}, nil
}

// ListOverdue reports every loan with due_date before the reference date,
// with the fine each would cost if returned on that date, plus the total.
func (s *Service) ListOverdue(ctx context.Context, reference *time.Time) (*OverdueReport, error) {
	ref := s.clock.Now()
	if reference != nil {
		ref = *reference
	}

	rows, err := s.store.ListOverdue(ctx, truncateToDay(ref))
	if err != nil {
		return nil, err
	}

	report := &OverdueReport{Items: make([]OverdueRow, 0, len(rows))}
	for i := range rows {
		days, fine := CalculateFine(rows[i].DueDate, ref, DefaultFineRatePerDay)
		report.Items = append(report.Items, OverdueRow{
			TransactionResponse: toResponse(&rows[i]),
			DaysOverdue:         days,
			Fine:                fine,
		})
		report.TotalFine += fine
	}
	return report, nil
}

// MemberTransactions lists a member's open loans with their derived status.
func (s *Service) MemberTransactions(ctx context.Context, memberID int64) (*MemberTransactionsResponse, error) {
	if memberID <= 0 {
		return nil, ErrInvalid("member_id must be > 0")
	}

	rows, err := s.store.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(s.clock.Now())
	resp := &MemberTransactionsResponse{Items: make([]MemberTransactionRow, 0, len(rows))}
	for i := range rows {
		status := StatusActive
		if rows[i].DueDate.Before(today) {
			status = StatusOverdue
			resp.OverdueCount++
		} else {
			resp.ActiveCount++
		}
		resp.Items = append(resp.Items, MemberTransactionRow{
			TransactionResponse: toResponse(&rows[i]),
			Status:              status,
		})
	}
	return resp, nil
}

// ListTransactions lists every open loan.
func (s *Service) ListTransactions(ctx context.Context) ([]TransactionResponse, error) {
	rows, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out, nil
}
