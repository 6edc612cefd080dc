package http

import (
	"fmt"
	"net/http"

	"github.com/book-catalog/cmd/api/config"
	"github.com/julienschmidt/httprouter"
)

func NewServer(cfg config.ServerConfig, h *BookHandler) *http.Server {
	router := httprouter.New()

	middlewares := Middlewares{
		h.PanicRecoveryMiddleware,
		RequestIDMiddleware,
		h.RequestLogMiddleware,
	}

	router.GET("/", middlewares.Chain(h.index))
	router.GET("/ping", middlewares.Chain(h.ping))
	router.POST("/book", middlewares.Chain(h.createBook))
	router.GET("/book/:id", middlewares.Chain(h.getBookById))
	router.GET("/books", middlewares.Chain(h.listBooks))

	server := http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return &server
}

/* Tests the http server connection. */
func (h *BookHandler) ping(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusNoContent)
}
