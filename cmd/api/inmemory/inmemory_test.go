package inmemory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/book-catalog/cmd/api/book"
	"github.com/book-catalog/cmd/api/inmemory"
	"github.com/google/uuid"
	"github.com/matryer/is"
)

var ctx context.Context = context.Background()

func TestInMemoryCreateAndGet(t *testing.T) {
	is := is.New(t)

	store, err := inmemory.NewInMemoryStore()
	is.NoErr(err)

	b := newTestBook("In memory book", "Tester")

	created, err := store.CreateBook(ctx, b)
	is.NoErr(err)
	is.Equal(created, b)

	fetched, err := store.GetBookByID(ctx, b.ID)
	is.NoErr(err)
	is.Equal(fetched, b)

	_, err = store.GetBookByID(ctx, uuid.New())
	is.True(errors.Is(err, book.ErrResponseBookNotFound))
}

func TestInMemoryListBooks(t *testing.T) {
	is := is.New(t)

	store, err := inmemory.NewInMemoryStore()
	is.NoErr(err)

	seeded := []book.Book{
		newTestBook("The Go Programming Language", "Donovan"),
		newTestBook("Learning Go", "Bodner"),
		newTestBook("Database Internals", "Petrov"),
	}
	for _, b := range seeded {
		_, err := store.CreateBook(ctx, b)
		is.NoErr(err)
	}

	t.Run("filters by title, case insensitive", func(t *testing.T) {
		is := is.New(t)

		count, err := store.CountBooks(ctx, "go")
		is.NoErr(err)
		is.Equal(count, 2)

		books, err := store.ListBooks(ctx, "go", "title", "asc", 1, 10)
		is.NoErr(err)
		is.Equal(len(books), 2)
		is.Equal(books[0].Title, "Learning Go")
		is.Equal(books[1].Title, "The Go Programming Language")
	})

	t.Run("sorts by author descending", func(t *testing.T) {
		is := is.New(t)

		books, err := store.ListBooks(ctx, "", "author", "desc", 1, 10)
		is.NoErr(err)
		is.Equal(len(books), 3)
		is.Equal(books[0].Author, "Petrov")
		is.Equal(books[2].Author, "Bodner")
	})

	t.Run("paginates results", func(t *testing.T) {
		is := is.New(t)

		firstPage, err := store.ListBooks(ctx, "", "title", "asc", 1, 2)
		is.NoErr(err)
		is.Equal(len(firstPage), 2)

		secondPage, err := store.ListBooks(ctx, "", "title", "asc", 2, 2)
		is.NoErr(err)
		is.Equal(len(secondPage), 1)

		beyond, err := store.ListBooks(ctx, "", "title", "asc", 3, 2)
		is.NoErr(err)
		is.Equal(len(beyond), 0)
	})
}

func newTestBook(title, author string) book.Book {
	now := time.Now().UTC().Round(time.Millisecond)
	return book.Book{
		ID:        uuid.New(),
		Title:     title,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
