package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/book-catalog/cmd/api/book"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// indexPageSize caps how many books the landing page shows.
const indexPageSize = 100

type indexPageData struct {
	Books      []book.Book
	ItemsTotal int
}

/* Renders the landing page with the catalog listed by title. */
func (h *BookHandler) index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pagedBooks, err := h.bookService.ListBooks(r.Context(), book.ListBooksRequest{
		SortBy:        "title",
		SortDirection: "asc",
		Page:          1,
		PageSize:      indexPageSize,
	})
	if err != nil {
		h.logger.Error("listing books for index page", zap.String("request.id", RequestIDFromContext(r.Context())), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("content-type", "text/html; charset=utf-8")
	err = indexTemplate.Execute(w, indexPageData{
		Books:      pagedBooks.Results,
		ItemsTotal: pagedBooks.ItemsTotal,
	})
	if err != nil {
		h.logger.Error("rendering index page", zap.String("request.id", RequestIDFromContext(r.Context())), zap.Error(err))
	}
}
