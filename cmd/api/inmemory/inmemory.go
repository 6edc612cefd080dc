package inmemory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/book-catalog/cmd/api/book"
	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

// InMemoryStore keeps the catalog in a go-memdb table. It backs the
// `memory:` storage option and the http tests.
type InMemoryStore struct {
	db *memdb.MemDB
}

func NewInMemoryStore() (*InMemoryStore, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			"book": {
				Name: "book",
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}
	return &InMemoryStore{db: db}, nil
}

// go-memdb string indexes need a string ID field.
type adaptedBook struct {
	ID          string
	Title       string
	Author      string
	Description string
	Book        book.Book
}

func adaptBook(bookEntry book.Book) *adaptedBook {
	return &adaptedBook{
		ID:          bookEntry.ID.String(),
		Title:       bookEntry.Title,
		Author:      bookEntry.Author,
		Description: bookEntry.Description,
		Book:        bookEntry,
	}
}

func (store *InMemoryStore) CreateBook(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	txn := store.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert("book", adaptBook(bookEntry)); err != nil {
		return book.Book{}, fmt.Errorf("storing book in memory: %w", err)
	}

	txn.Commit()
	return bookEntry, nil
}

func (store *InMemoryStore) GetBookByID(ctx context.Context, id uuid.UUID) (book.Book, error) {
	txn := store.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First("book", "id", id.String())
	if err != nil {
		return book.Book{}, fmt.Errorf("searching by ID in memory: %w", err)
	}
	if raw == nil {
		return book.Book{}, fmt.Errorf("searching by ID in memory: %w", book.ErrResponseBookNotFound)
	}

	return raw.(*adaptedBook).Book, nil
}

func (store *InMemoryStore) ListBooks(ctx context.Context, title, sortBy, sortDirection string, page, pageSize int) ([]book.Book, error) {
	matches, err := store.filterBooks(title)
	if err != nil {
		return nil, err
	}

	sortBooks(matches, sortBy, sortDirection)

	offset := (page - 1) * pageSize
	if offset >= len(matches) {
		return []book.Book{}, nil
	}
	end := offset + pageSize
	if end > len(matches) {
		end = len(matches)
	}

	return matches[offset:end], nil
}

func (store *InMemoryStore) CountBooks(ctx context.Context, title string) (int, error) {
	matches, err := store.filterBooks(title)
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

func (store *InMemoryStore) filterBooks(title string) ([]book.Book, error) {
	txn := store.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get("book", "id")
	if err != nil {
		return nil, fmt.Errorf("listing books in memory: %w", err)
	}

	matches := []book.Book{}
	for raw := it.Next(); raw != nil; raw = it.Next() {
		b := raw.(*adaptedBook).Book
		if title == "" || strings.Contains(strings.ToLower(b.Title), strings.ToLower(title)) {
			matches = append(matches, b)
		}
	}
	return matches, nil
}

func sortBooks(books []book.Book, sortBy, sortDirection string) {
	less := func(i, j int) bool {
		switch sortBy {
		case "author":
			return books[i].Author < books[j].Author
		case "created_at":
			return books[i].CreatedAt.Before(books[j].CreatedAt)
		case "updated_at":
			return books[i].UpdatedAt.Before(books[j].UpdatedAt)
		default:
			return books[i].Title < books[j].Title
		}
	}

	if sortDirection == "desc" {
		sort.SliceStable(books, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(books, less)
}
