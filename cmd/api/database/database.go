package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/book-catalog/cmd/api/book"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/google/uuid"

	_ "github.com/golang-migrate/migrate/v4/source/file"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultSQLitePath is the file-backed database used when no
// connection string is provided.
const DefaultSQLitePath = "./catalog.db"

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db     *sql.DB
	driver string
	exc    DBTX
}

func NewStore(db *sql.DB, driver string) *Store {
	return &Store{
		db:     db,
		driver: driver,
		exc:    db,
	}
}

/* Picks the storage backend from the connection string and opens it.
A postgres:// URL selects the server backend, anything else is treated
as a path to the local file-backed database. */
func Connect(connStr string) (*sql.DB, string, error) {
	driver := DriverSQLite
	dataSource := connStr

	switch {
	case strings.HasPrefix(connStr, "postgres://"), strings.HasPrefix(connStr, "postgresql://"):
		driver = DriverPostgres
	case connStr == "":
		dataSource = DefaultSQLitePath
	default:
		dataSource = strings.TrimPrefix(connStr, "sqlite:")
	}

	sqlDB, err := sql.Open(driver, dataSource)
	if err != nil {
		return nil, driver, fmt.Errorf("connecting to db, opening: %w", err)
	}

	err = sqlDB.Ping()
	if err != nil {
		return nil, driver, fmt.Errorf("connecting to db, pinging: %w", err)
	}

	return sqlDB, driver, nil
}

/* Applies all pending migrations found at path against the store backend. */
func MigrationUp(store *Store, path string) error {
	var driver migratedb.Driver
	var err error

	switch store.driver {
	case DriverPostgres:
		driver, err = postgres.WithInstance(store.db, &postgres.Config{})
	default:
		driver, err = sqlite.WithInstance(store.db, &sqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", path),
		store.driver, driver)
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	err = m.Up()
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}
	return nil
}

/* Stores the book into the database and returns it as persisted. */
func (store *Store) CreateBook(ctx context.Context, bookEntry book.Book) (book.Book, error) {
	sqlStatement := `
	INSERT INTO books (id, title, author, description, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, title, author, description, created_at, updated_at`
	createdRow := store.exc.QueryRowContext(ctx, sqlStatement, bookEntry.ID, bookEntry.Title, bookEntry.Author, bookEntry.Description, bookEntry.CreatedAt, bookEntry.UpdatedAt)
	var bookToReturn book.Book
	err := createdRow.Scan(&bookToReturn.ID, &bookToReturn.Title, &bookToReturn.Author, &bookToReturn.Description, &bookToReturn.CreatedAt, &bookToReturn.UpdatedAt)
	if err != nil {
		return book.Book{}, fmt.Errorf("storing book on db: %w", err)
	}

	return bookToReturn, nil
}

/* Searches a book in database based on ID and returns it if found. */
func (store *Store) GetBookByID(ctx context.Context, id uuid.UUID) (book.Book, error) {
	sqlStatement := `SELECT id, title, author, description, created_at, updated_at
	FROM books
	WHERE id=$1;`
	foundRow := store.exc.QueryRowContext(ctx, sqlStatement, id)
	var bookToReturn book.Book
	err := foundRow.Scan(&bookToReturn.ID, &bookToReturn.Title, &bookToReturn.Author, &bookToReturn.Description, &bookToReturn.CreatedAt, &bookToReturn.UpdatedAt)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return book.Book{}, fmt.Errorf("searching by ID: %w", book.ErrResponseBookNotFound)
		default:
			return book.Book{}, fmt.Errorf("searching by ID: %w", err)
		}
	}

	return bookToReturn, nil
}

/* Returns the filtered content of the books table as a list. The sort
parameters are validated by the http layer before they reach the query. */
func (store *Store) ListBooks(ctx context.Context, title, sortBy, sortDirection string, page, pageSize int) ([]book.Book, error) {
	if title != "" {
		title = fmt.Sprint("%", title, "%")
	} else {
		title = "%"
	}

	limit := pageSize
	offset := (page - 1) * pageSize

	sqlStatement := fmt.Sprint(`SELECT id, title, author, description, created_at, updated_at
	FROM books
	WHERE LOWER(title) LIKE LOWER($1)
	ORDER BY `, sortBy, ` `, sortDirection, `
	LIMIT `, limit, ` OFFSET `, offset, ` ;`)

	rows, err := store.exc.QueryContext(ctx, sqlStatement, title)
	if err != nil {
		return nil, fmt.Errorf("listing books from db: %w", err)
	}
	defer rows.Close()
	bookslist := []book.Book{}
	var bookToReturn book.Book
	for rows.Next() {
		err = rows.Scan(&bookToReturn.ID, &bookToReturn.Title, &bookToReturn.Author, &bookToReturn.Description, &bookToReturn.CreatedAt, &bookToReturn.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("listing books from db: %w", err)
		}

		bookslist = append(bookslist, bookToReturn)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("listing books from db: %w", err)
	}

	return bookslist, nil
}

/* Counts how many rows fit the title filter. */
func (store *Store) CountBooks(ctx context.Context, title string) (int, error) {
	if title != "" {
		title = fmt.Sprint("%", title, "%")
	} else {
		title = "%"
	}

	sqlStatement := `SELECT COUNT(*) FROM books
	WHERE LOWER(title) LIKE LOWER($1);`

	row := store.exc.QueryRowContext(ctx, sqlStatement, title)
	var count int
	err := row.Scan(&count)
	if err != nil {
		return count, fmt.Errorf("counting books from db: %w", err)
	}

	return count, nil
}
