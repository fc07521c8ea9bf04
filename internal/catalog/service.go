package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"golang.org/x/text/unicode/norm"
)

// BookStore is what the service needs from the Book/Librarian tables;
// *Store implements it, tests substitute a fake.
type BookStore interface {
	InsertBook(ctx context.Context, b *Book) error
	GetBook(ctx context.Context, bookID string) (*Book, error)
	ListBooks(ctx context.Context) ([]Book, error)
	SearchBooks(ctx context.Context, field, term string) ([]Book, error)
	UpdateBook(ctx context.Context, b *Book) (int64, error)
	DeleteBook(ctx context.Context, bookID string) (int64, error)
	GetLibrarian(ctx context.Context, librarianID string) (*Librarian, error)
	ListLibrarians(ctx context.Context) ([]Librarian, error)
}

type Service struct {
	store BookStore
}

func NewService(db *sql.DB) *Service { return &Service{store: NewStore(db)} }

func (s *Service) CreateBook(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b := &Book{
		BookID:      strings.TrimSpace(req.BookID),
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		LibrarianID: strings.TrimSpace(req.LibrarianID),
	}
	if b.BookID == "" || b.Title == "" || b.Author == "" || b.LibrarianID == "" {
		return nil, ErrInvalid("book_id, title, author, librarian_id are required")
	}

	if err := s.store.InsertBook(ctx, b); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return nil, ErrConflict("book_id already exists")
		}
		return nil, err
	}

	resp := toBookResponse(b)
	return &resp, nil
}

func (s *Service) GetBook(ctx context.Context, bookID string) (*BookResponse, error) {
	b, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound("book not found")
	}
	resp := toBookResponse(b)
	return &resp, nil
}

func (s *Service) ListBooks(ctx context.Context) ([]BookResponse, error) {
	rows, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	return toBookResponses(rows), nil
}

// SearchBooks matches a substring of title or author. The term is NFKC
// normalized first so full-width input matches the stored ASCII.
func (s *Service) SearchBooks(ctx context.Context, field, term string) ([]BookResponse, error) {
	term = strings.TrimSpace(norm.NFKC.String(term))
	if term == "" {
		return s.ListBooks(ctx)
	}

	switch field {
	case "", SearchByTitle:
		field = SearchByTitle
	case SearchByAuthor:
	default:
		return nil, ErrInvalid("by must be title or author")
	}

	rows, err := s.store.SearchBooks(ctx, field, term)
	if err != nil {
		return nil, err
	}
	return toBookResponses(rows), nil
}

func (s *Service) UpdateBook(ctx context.Context, bookID string, req UpdateBookRequest) (*BookResponse, error) {
	b := &Book{
		BookID:      strings.TrimSpace(bookID),
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		LibrarianID: strings.TrimSpace(req.LibrarianID),
	}
	if b.BookID == "" || b.Title == "" || b.Author == "" || b.LibrarianID == "" {
		return nil, ErrInvalid("book_id, title, author, librarian_id are required")
	}

	n, err := s.store.UpdateBook(ctx, b)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound("book not found")
	}

	resp := toBookResponse(b)
	return &resp, nil
}

func (s *Service) DeleteBook(ctx context.Context, bookID string) error {
	if strings.TrimSpace(bookID) == "" {
		return ErrInvalid("book_id is required")
	}
	n, err := s.store.DeleteBook(ctx, bookID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("book not found")
	}
	return nil
}

func (s *Service) GetLibrarian(ctx context.Context, librarianID string) (*LibrarianResponse, error) {
	l, err := s.store.GetLibrarian(ctx, librarianID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrNotFound("librarian not found")
	}
	resp := toLibrarianResponse(l)
	return &resp, nil
}

func (s *Service) ListLibrarians(ctx context.Context) ([]LibrarianResponse, error) {
	rows, err := s.store.ListLibrarians(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LibrarianResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toLibrarianResponse(&rows[i]))
	}
	return out, nil
}

func toBookResponses(rows []Book) []BookResponse {
	out := make([]BookResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toBookResponse(&rows[i]))
	}
	return out
}
