package catalog

// Book is one row of the Book table.
type Book struct {
	BookID      string
	Title       string
	Author      string
	LibrarianID string
}

// Librarian is read-only here; rows are maintained directly in the DB.
type Librarian struct {
	LibrarianID string
	Name        string
	Contact     string
}

// Search fields accepted by SearchBooks.
const (
	SearchByTitle  = "title"
	SearchByAuthor = "author"
)
