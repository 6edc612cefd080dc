package http_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/book-catalog/cmd/api/book"
	"github.com/book-catalog/cmd/api/config"
	bookhttp "github.com/book-catalog/cmd/api/http"
	httpmock "github.com/book-catalog/cmd/api/http/mocks"
	"github.com/google/uuid"
	"github.com/matryer/is"
	gomock "go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*httpmock.MockServiceAPI, *http.Server) {
	ctrl := gomock.NewController(t)
	mockAPI := httpmock.NewMockServiceAPI(ctrl)
	bookHandler := bookhttp.NewBookHandler(zap.NewNop(), mockAPI)
	server := bookhttp.NewServer(config.ServerConfig{Host: "127.0.0.1", Port: "8080"}, bookHandler)
	return mockAPI, server
}

func TestCreateBook(t *testing.T) {

	t.Run("creates a book without errors", func(t *testing.T) {
		is := is.New(t)
		mockAPI, server := newTestServer(t)

		reqBook := book.CreateBookRequest{
			Title:  "HTTP tester book",
			Author: "Tester",
		}
		bookToCreate := `{
			"title": "HTTP tester book",
			"author": "Tester"
		}`
		newID := uuid.New()
		expectedReturn := book.Book{
			ID:     newID,
			Title:  reqBook.Title,
			Author: reqBook.Author,
		}
		expectedJSONresponse := fmt.Sprintf(`{"id":"%s","title":"HTTP tester book","author":"Tester"}`+"\n", newID)

		request, _ := http.NewRequest(http.MethodPost, "/book", strings.NewReader(bookToCreate))
		response := httptest.NewRecorder()

		mockAPI.EXPECT().CreateBook(gomock.Any(), reqBook).Return(expectedReturn, nil)

		server.Handler.ServeHTTP(response, request)

		body, _ := io.ReadAll(response.Result().Body)

		is.Equal(response.Result().StatusCode, http.StatusCreated)
		is.Equal(string(body), expectedJSONresponse)
	})

	t.Run("expected invalid json error", func(t *testing.T) {
		is := is.New(t)
		_, server := newTestServer(t)

		invalidBookToCreate := `{
			"title": "test with missing comma after title"
			"author": "Tester"
		}`

		request, _ := http.NewRequest(http.MethodPost, "/book", strings.NewReader(invalidBookToCreate))
		response := httptest.NewRecorder()

		server.Handler.ServeHTTP(response, request)

		body, _ := io.ReadAll(response.Result().Body)

		is.Equal(response.Result().StatusCode, http.StatusBadRequest)
		is.True(strings.Contains(string(body), `"error_code":102`))
	})

	t.Run("expected blank title error", func(t *testing.T) {
		is := is.New(t)
		_, server := newTestServer(t)

		invalidBookToCreate := `{
			"author": "test with missing title"
		}`
		expectedJSONresponse := fmt.Sprintln(`{"error_code":100,"error_message":"field 'title' must be filled."}`)

		request, _ := http.NewRequest(http.MethodPost, "/book", strings.NewReader(invalidBookToCreate))
		response := httptest.NewRecorder()

		server.Handler.ServeHTTP(response, request)

		body, _ := io.ReadAll(response.Result().Body)

		is.Equal(response.Result().StatusCode, http.StatusBadRequest)
		is.Equal(string(body), expectedJSONresponse)
	})
}

func TestGetBookById(t *testing.T) {

	t.Run("returns a stored book", func(t *testing.T) {
		is := is.New(t)
		mockAPI, server := newTestServer(t)

		id := uuid.New()
		stored := book.Book{ID: id, Title: "Stored book", Description: "On the shelf."}
		mockAPI.EXPECT().GetBook(gomock.Any(), id).Return(stored, nil)

		request, _ := http.NewRequest(http.MethodGet, "/book/"+id.String(), nil)
		response := httptest.NewRecorder()

		server.Handler.ServeHTTP(response, request)

		body, _ := io.ReadAll(response.Result().Body)

		is.Equal(response.Result().StatusCode, http.StatusOK)
		is.Equal(string(body), fmt.Sprintf(`{"id":"%s","title":"Stored book","description":"On the shelf."}`+"\n", id))
	})

	t.Run("missing book answers 404", func(t *testing.T) {
		is := is.New(t)
		mockAPI, server := newTestServer(t)

		id := uuid.New()
		mockAPI.EXPECT().GetBook(gomock.Any(), id).Return(book.Book{}, book.ErrResponseBookNotFound)

		request, _ := http.NewRequest(http.MethodGet, "/book/"+id.String(), nil)
		response := httptest.NewRecorder()

		server.Handler.ServeHTTP(response, request)

		is.Equal(response.Result().StatusCode, http.StatusNotFound)
	})

	t.Run("malformed id answers 400", func(t *testing.T) {
		is := is.New(t)
		_, server := newTestServer(t)

		request, _ := http.NewRequest(http.MethodGet, "/book/not-a-uuid", nil)
		response := httptest.NewRecorder()

		server.Handler.ServeHTTP(response, request)

		body, _ := io.ReadAll(response.Result().Body)

		is.Equal(response.Result().StatusCode, http.StatusBadRequest)
		is.True(strings.Contains(string(body), `"error_code":103`))
	})
}

func TestListBooks(t *testing.T) {

	t.Run("lists books with default params", func(t *testing.T) {
		is := is.New(t)
		mockAPI, server := newTestServer(t)

		expectedParams := book.ListBooksRequest{
			SortBy:        "title",
			SortDirection: "asc",
			Page:          1,
			PageSize:      10,
		}
		page := book.PagedBooks{
			PageCurrent: 1,
			PageTotal:   1,
			PageSize:    10,
			ItemsTotal:  1,
			Results:     []book.Book{{ID: uuid.New(), Title: "Listed book"}},
		}
		mockAPI.EXPECT().ListBooks(gomock.Any(), expectedParams).Return(page, nil)

		request, _ := http.NewRequest(http.MethodGet, "/books", nil)
		response := httptest.NewRecorder()

		server.Handler.ServeHTTP(response, request)

		body, _ := io.ReadAll(response.Result().Body)

		is.Equal(response.Result().StatusCode, http.StatusOK)
		is.True(strings.Contains(string(body), `"items_total":1`))
		is.True(strings.Contains(string(body), "Listed book"))
	})

	t.Run("invalid sort param answers 400", func(t *testing.T) {
		is := is.New(t)
		_, server := newTestServer(t)

		request, _ := http.NewRequest(http.MethodGet, "/books?sort_by=price", nil)
		response := httptest.NewRecorder()

		server.Handler.ServeHTTP(response, request)

		body, _ := io.ReadAll(response.Result().Body)

		is.Equal(response.Result().StatusCode, http.StatusBadRequest)
		is.True(strings.Contains(string(body), `"error_code":104`))
	})

	t.Run("invalid page param answers 400", func(t *testing.T) {
		is := is.New(t)
		_, server := newTestServer(t)

		request, _ := http.NewRequest(http.MethodGet, "/books?page=0", nil)
		response := httptest.NewRecorder()

		server.Handler.ServeHTTP(response, request)

		body, _ := io.ReadAll(response.Result().Body)

		is.Equal(response.Result().StatusCode, http.StatusBadRequest)
		is.True(strings.Contains(string(body), `"error_code":105`))
	})

	t.Run("page out of range answers 400", func(t *testing.T) {
		is := is.New(t)
		mockAPI, server := newTestServer(t)

		mockAPI.EXPECT().ListBooks(gomock.Any(), gomock.Any()).Return(book.PagedBooks{}, book.ErrResponseQueryPageOutOfRange)

		request, _ := http.NewRequest(http.MethodGet, "/books?page=99", nil)
		response := httptest.NewRecorder()

		server.Handler.ServeHTTP(response, request)

		body, _ := io.ReadAll(response.Result().Body)

		is.Equal(response.Result().StatusCode, http.StatusBadRequest)
		is.True(strings.Contains(string(body), `"error_code":106`))
	})
}

func TestIndexPage(t *testing.T) {

	t.Run("renders the catalog as html", func(t *testing.T) {
		is := is.New(t)
		mockAPI, server := newTestServer(t)

		page := book.PagedBooks{
			PageCurrent: 1,
			PageTotal:   1,
			PageSize:    100,
			ItemsTotal:  1,
			Results:     []book.Book{{ID: uuid.New(), Title: "Rendered book", Author: "Tester"}},
		}
		mockAPI.EXPECT().ListBooks(gomock.Any(), gomock.Any()).Return(page, nil)

		request, _ := http.NewRequest(http.MethodGet, "/", nil)
		response := httptest.NewRecorder()

		server.Handler.ServeHTTP(response, request)

		body, _ := io.ReadAll(response.Result().Body)

		is.Equal(response.Result().StatusCode, http.StatusOK)
		is.True(len(body) > 0)
		is.Equal(response.Result().Header.Get("content-type"), "text/html; charset=utf-8")
		is.True(strings.Contains(string(body), "Rendered book"))
		is.True(strings.Contains(string(body), "Tester"))
	})

	t.Run("empty catalog still renders", func(t *testing.T) {
		is := is.New(t)
		mockAPI, server := newTestServer(t)

		mockAPI.EXPECT().ListBooks(gomock.Any(), gomock.Any()).Return(book.PagedBooks{Results: []book.Book{}}, nil)

		request, _ := http.NewRequest(http.MethodGet, "/", nil)
		response := httptest.NewRecorder()

		server.Handler.ServeHTTP(response, request)

		body, _ := io.ReadAll(response.Result().Body)

		is.Equal(response.Result().StatusCode, http.StatusOK)
		is.True(strings.Contains(string(body), "No books yet"))
	})
}

func TestPing(t *testing.T) {
	is := is.New(t)
	_, server := newTestServer(t)

	request, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	response := httptest.NewRecorder()

	server.Handler.ServeHTTP(response, request)

	is.Equal(response.Result().StatusCode, http.StatusNoContent)
}
