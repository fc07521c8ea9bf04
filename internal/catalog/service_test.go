package catalog

import (
	"context"
	"sort"
	"strings"
	"testing"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeBookStore struct {
	books      map[string]Book
	librarians map[string]Librarian
	lastField  string
	lastTerm   string
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{
		books:      make(map[string]Book),
		librarians: make(map[string]Librarian),
	}
}

func (f *fakeBookStore) InsertBook(_ context.Context, b *Book) error {
	if _, ok := f.books[b.BookID]; ok {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	f.books[b.BookID] = *b
	return nil
}

func (f *fakeBookStore) GetBook(_ context.Context, id string) (*Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (f *fakeBookStore) ListBooks(context.Context) ([]Book, error) {
	out := make([]Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookID < out[j].BookID })
	return out, nil
}

func (f *fakeBookStore) SearchBooks(_ context.Context, field, term string) ([]Book, error) {
	f.lastField, f.lastTerm = field, term
	var out []Book
	for _, b := range f.books {
		hay := b.Title
		if field == SearchByAuthor {
			hay = b.Author
		}
		if strings.Contains(hay, term) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookID < out[j].BookID })
	return out, nil
}

func (f *fakeBookStore) UpdateBook(_ context.Context, b *Book) (int64, error) {
	if _, ok := f.books[b.BookID]; !ok {
		return 0, nil
	}
	f.books[b.BookID] = *b
	return 1, nil
}

func (f *fakeBookStore) DeleteBook(_ context.Context, id string) (int64, error) {
	if _, ok := f.books[id]; !ok {
		return 0, nil
	}
	delete(f.books, id)
	return 1, nil
}

func (f *fakeBookStore) GetLibrarian(_ context.Context, id string) (*Librarian, error) {
	l, ok := f.librarians[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (f *fakeBookStore) ListLibrarians(context.Context) ([]Librarian, error) {
	out := make([]Librarian, 0, len(f.librarians))
	for _, l := range f.librarians {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LibrarianID < out[j].LibrarianID })
	return out, nil
}

func seed(t *testing.T, svc *Service, id, title, author string) {
	t.Helper()
	_, err := svc.CreateBook(context.Background(), CreateBookRequest{
		BookID: id, Title: title, Author: author, LibrarianID: "L1",
	})
	require.NoError(t, err)
}

// ---- books ----

func TestCreateBookDuplicateID(t *testing.T) {
	svc := &Service{store: newFakeBookStore()}

	seed(t, svc, "B1", "Dune", "Frank Herbert")

	_, err := svc.CreateBook(context.Background(), CreateBookRequest{
		BookID: "B1", Title: "Other", Author: "Other", LibrarianID: "L1",
	})
	var api *APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, CodeConflict, api.Code)
}

func TestCreateBookValidation(t *testing.T) {
	svc := &Service{store: newFakeBookStore()}

	_, err := svc.CreateBook(context.Background(), CreateBookRequest{
		BookID: " ", Title: "Dune", Author: "Frank Herbert", LibrarianID: "L1",
	})
	var api *APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, CodeInvalidArgument, api.Code)
}

func TestUpdateBookNotFound(t *testing.T) {
	svc := &Service{store: newFakeBookStore()}

	_, err := svc.UpdateBook(context.Background(), "missing", UpdateBookRequest{
		Title: "Dune", Author: "Frank Herbert", LibrarianID: "L1",
	})
	var api *APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, CodeNotFound, api.Code)
}

func TestDeleteBook(t *testing.T) {
	svc := &Service{store: newFakeBookStore()}

	seed(t, svc, "B1", "Dune", "Frank Herbert")
	require.NoError(t, svc.DeleteBook(context.Background(), "B1"))

	err := svc.DeleteBook(context.Background(), "B1")
	var api *APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, CodeNotFound, api.Code)
}

// ---- search ----

func TestSearchBooksByTitleAndAuthor(t *testing.T) {
	store := newFakeBookStore()
	svc := &Service{store: store}

	seed(t, svc, "B1", "Dune", "Frank Herbert")
	seed(t, svc, "B2", "Dune Messiah", "Frank Herbert")
	seed(t, svc, "B3", "Hyperion", "Dan Simmons")

	res, err := svc.SearchBooks(context.Background(), "", "Dune")
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, SearchByTitle, store.lastField)

	res, err = svc.SearchBooks(context.Background(), SearchByAuthor, "Simmons")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Hyperion", res[0].Title)
}

func TestSearchBooksInvalidField(t *testing.T) {
	svc := &Service{store: newFakeBookStore()}

	_, err := svc.SearchBooks(context.Background(), "isbn", "term")
	var api *APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, CodeInvalidArgument, api.Code)
}

func TestSearchBooksNormalizesTerm(t *testing.T) {
	store := newFakeBookStore()
	svc := &Service{store: store}

	seed(t, svc, "B1", "Catch 22", "Joseph Heller")

	// full-width digits fold to ASCII before the LIKE match
	res, err := svc.SearchBooks(context.Background(), SearchByTitle, "２２")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "22", store.lastTerm)
}

func TestSearchBooksEmptyTermListsAll(t *testing.T) {
	svc := &Service{store: newFakeBookStore()}

	seed(t, svc, "B1", "Dune", "Frank Herbert")
	seed(t, svc, "B2", "Hyperion", "Dan Simmons")

	res, err := svc.SearchBooks(context.Background(), SearchByTitle, "   ")
	require.NoError(t, err)
	assert.Len(t, res, 2)
}
