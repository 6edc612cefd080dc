package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/book-catalog/cmd/api/book"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

type BookHandler struct {
	bookService book.ServiceAPI
	logger      *zap.Logger
}

func NewBookHandler(logger *zap.Logger, bookService book.ServiceAPI) *BookHandler {
	return &BookHandler{bookService: bookService, logger: logger}
}

type BookEntry struct {
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
}

/* Validates the entry, then stores it as a new book. */
func (h *BookHandler) createBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var bookEntry BookEntry
	err := json.NewDecoder(r.Body).Decode(&bookEntry)
	if err != nil {
		h.logger.Error("decoding create book entry", zap.String("request.id", RequestIDFromContext(r.Context())), zap.Error(err))
		errR := book.ErrResponse{
			Code:    book.ErrResponseEntryInvalidJSON.Code,
			Message: book.ErrResponseEntryInvalidJSON.Message + err.Error(),
		}
		h.responseJSON(w, http.StatusBadRequest, errR)
		return
	}

	if bookEntry.Title == "" {
		h.responseJSON(w, http.StatusBadRequest, book.ErrResponseBookEntryBlankTitle)
		return
	}

	reqBook := book.CreateBookRequest{
		Title:       bookEntry.Title,
		Author:      bookEntry.Author,
		Description: bookEntry.Description,
	}

	storedBook, err := h.bookService.CreateBook(r.Context(), reqBook)
	if err != nil {
		h.logger.Error("creating book", zap.String("request.id", RequestIDFromContext(r.Context())), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.responseJSON(w, http.StatusCreated, bookToResponse(storedBook))
}

/* Returns the book with that specific ID. */
func (h *BookHandler) getBookById(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := uuid.Parse(ps.ByName("id"))
	if err != nil {
		h.responseJSON(w, http.StatusBadRequest, book.ErrResponseIdInvalidFormat)
		return
	}

	returnedBook, err := h.bookService.GetBook(r.Context(), id)
	if err != nil {
		if errors.Is(err, book.ErrResponseBookNotFound) {
			h.responseJSON(w, http.StatusNotFound, book.ErrResponseBookNotFound)
			return
		}
		h.logger.Error("getting book", zap.String("request.id", RequestIDFromContext(r.Context())), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.responseJSON(w, http.StatusOK, bookToResponse(returnedBook))
}

/* Returns a list of the stored books. */
func (h *BookHandler) listBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	params, errR := extractListParams(r.URL.Query())
	if errR != nil {
		h.responseJSON(w, http.StatusBadRequest, errR)
		return
	}

	pagedBooks, err := h.bookService.ListBooks(r.Context(), params)
	if err != nil {
		if errors.Is(err, book.ErrResponseQueryPageOutOfRange) {
			h.responseJSON(w, http.StatusBadRequest, book.ErrResponseQueryPageOutOfRange)
			return
		}
		h.logger.Error("listing books", zap.String("request.id", RequestIDFromContext(r.Context())), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.responseJSON(w, http.StatusOK, pagedBooksToResponse(pagedBooks))
}

/* Validates and prepares the filter, ordering and paging parameters of the query. */
func extractListParams(query url.Values) (book.ListBooksRequest, error) {
	params := book.ListBooksRequest{Title: query.Get("title")}

	var valid bool
	params.SortBy, params.SortDirection, valid = extractOrderParams(query)
	if !valid {
		return params, book.ErrResponseQuerySortByInvalid
	}

	params.Page, params.PageSize, valid = extractPageParams(query)
	if !valid {
		return params, book.ErrResponseQueryPageInvalid
	}

	return params, nil
}

func extractOrderParams(query url.Values) (sortBy string, sortDirection string, valid bool) {
	sortDirection = query.Get("sort_direction")
	switch sortDirection {
	case "":
		sortDirection = "asc"
	case "asc", "desc":
	default:
		return sortBy, sortDirection, false
	}

	sortBy = query.Get("sort_by")
	switch sortBy {
	case "":
		sortBy = "title"
	case "title", "author", "created_at", "updated_at":
	default:
		return sortBy, sortDirection, false
	}

	return sortBy, sortDirection, true
}

func extractPageParams(query url.Values) (page, pageSize int, valid bool) {
	var err error
	pageStr := query.Get("page")
	if pageStr == "" {
		page = 1
	} else {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page <= 0 {
			return 0, 0, false
		}
	}

	pageSizeStr := query.Get("page_size")
	if pageSizeStr == "" {
		pageSize = 10
	} else {
		pageSize, err = strconv.Atoi(pageSizeStr)
		if err != nil {
			return 0, 0, false
		}
		if !(0 < pageSize && pageSize <= 100) {
			return 0, 0, false
		}
	}

	return page, pageSize, true
}

type BookResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
}

/* Copies the fields of a book object to an http layer struct with json tags. */
func bookToResponse(b book.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
	}
}

type PageOfBooksResponse struct {
	PageCurrent int            `json:"page_current"`
	PageTotal   int            `json:"page_total"`
	PageSize    int            `json:"page_size"`
	ItemsTotal  int            `json:"items_total"`
	Results     []BookResponse `json:"results"`
}

func pagedBooksToResponse(page book.PagedBooks) PageOfBooksResponse {
	results := []BookResponse{}
	for _, b := range page.Results {
		results = append(results, bookToResponse(b))
	}

	return PageOfBooksResponse{
		PageCurrent: page.PageCurrent,
		PageTotal:   page.PageTotal,
		PageSize:    page.PageSize,
		ItemsTotal:  page.ItemsTotal,
		Results:     results,
	}
}

/* Writes a JSON response into a http.ResponseWriter. */
func (h *BookHandler) responseJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encoding response", zap.Error(err))
	}
}
