package catalog

type CreateBookRequest struct {
	BookID      string `json:"book_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	LibrarianID string `json:"librarian_id" binding:"required"`
}

type UpdateBookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	LibrarianID string `json:"librarian_id" binding:"required"`
}

type BookResponse struct {
	BookID      string `json:"book_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	LibrarianID string `json:"librarian_id"`
}

type LibrarianResponse struct {
	LibrarianID string `json:"librarian_id"`
	Name        string `json:"name"`
	Contact     string `json:"contact"`
}

func toBookResponse(b *Book) BookResponse {
	return BookResponse{
		BookID:      b.BookID,
		Title:       b.Title,
		Author:      b.Author,
		LibrarianID: b.LibrarianID,
	}
}

func toLibrarianResponse(l *Librarian) LibrarianResponse {
	return LibrarianResponse{LibrarianID: l.LibrarianID, Name: l.Name, Contact: l.Contact}
}
