package book

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID          uuid.UUID
	Title       string
	Author      string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateBookRequest struct {
	Title       string
	Author      string
	Description string
}

type ListBooksRequest struct {
	Title         string
	SortBy        string
	SortDirection string
	Page          int
	PageSize      int
}

type PagedBooks struct {
	PageCurrent int
	PageTotal   int
	PageSize    int
	ItemsTotal  int
	Results     []Book
}
