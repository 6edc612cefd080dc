package book

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ServiceAPI interface {
	CreateBook(ctx context.Context, req CreateBookRequest) (Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (Book, error)
	ListBooks(ctx context.Context, req ListBooksRequest) (PagedBooks, error)
}

type Repository interface {
	CreateBook(ctx context.Context, bookEntry Book) (Book, error)
	GetBookByID(ctx context.Context, id uuid.UUID) (Book, error)
	ListBooks(ctx context.Context, title, sortBy, sortDirection string, page, pageSize int) ([]Book, error)
	CountBooks(ctx context.Context, title string) (int, error)
}

type Notifier interface {
	BookCreated(ctx context.Context, title, author string) error
}

type Service struct {
	logger               *zap.Logger
	repo                 Repository
	notifier             Notifier
	notificationsTimeout time.Duration
}

func NewService(logger *zap.Logger, repo Repository, notifier Notifier, notificationsTimeout time.Duration) *Service {
	return &Service{
		logger:               logger,
		repo:                 repo,
		notifier:             notifier,
		notificationsTimeout: notificationsTimeout,
	}
}

/* Assigns an ID and creation timestamps to the entry and stores it as a new book. */
func (s *Service) CreateBook(ctx context.Context, req CreateBookRequest) (Book, error) {
	if req.Title == "" {
		return Book{}, ErrResponseBookEntryBlankTitle
	}

	createdAt := time.Now().UTC().Round(time.Millisecond)
	newBook := Book{
		ID:          uuid.New(),
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	storedBook, err := s.repo.CreateBook(ctx, newBook)
	if err != nil {
		return Book{}, fmt.Errorf("creating book: %w", err)
	}

	go s.notifyBookCreated(storedBook)

	return storedBook, nil
}

func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (Book, error) {
	return s.repo.GetBookByID(ctx, id)
}

/* Validates the requested page against the stored total and returns one page of books. */
func (s *Service) ListBooks(ctx context.Context, req ListBooksRequest) (PagedBooks, error) {
	itemsTotal, err := s.repo.CountBooks(ctx, req.Title)
	if err != nil {
		return PagedBooks{}, fmt.Errorf("listing books: %w", err)
	}

	pageTotal := (itemsTotal + req.PageSize - 1) / req.PageSize
	if req.Page > pageTotal && itemsTotal > 0 {
		return PagedBooks{}, ErrResponseQueryPageOutOfRange
	}

	results, err := s.repo.ListBooks(ctx, req.Title, req.SortBy, req.SortDirection, req.Page, req.PageSize)
	if err != nil {
		return PagedBooks{}, fmt.Errorf("listing books: %w", err)
	}

	return PagedBooks{
		PageCurrent: req.Page,
		PageTotal:   pageTotal,
		PageSize:    req.PageSize,
		ItemsTotal:  itemsTotal,
		Results:     results,
	}, nil
}

// Notification is best effort, the created book is already stored
// and answered when this runs.
func (s *Service) notifyBookCreated(b Book) {
	ctx, cancel := context.WithTimeout(context.Background(), s.notificationsTimeout)
	defer cancel()

	if err := s.notifier.BookCreated(ctx, b.Title, b.Author); err != nil {
		s.logger.Warn("book created notification failed",
			zap.String("book.id", b.ID.String()),
			zap.Error(err))
	}
}
