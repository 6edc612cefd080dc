package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// MiddlewareFunc wraps an httprouter handle.
type MiddlewareFunc func(httprouter.Handle) httprouter.Handle

// Middlewares is a stack of middleware functions built into a single chain.
type Middlewares []MiddlewareFunc

type contextKey string

const ContextRequestID contextKey = "request.id"

// RequestIDFromContext returns the id attached to the request, or an
// empty string outside the middleware chain.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextRequestID).(string)
	return id
}

// RequestIDMiddleware generates and adds a unique id to the request context.
func RequestIDMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), ContextRequestID, uuid.NewString())
		next(w, r.WithContext(ctx), ps)
	}
}

// RequestLogMiddleware measures each request and logs its outcome.
func (h *BookHandler) RequestLogMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := time.Now()

		next(w, r, ps)

		h.logger.Info("request",
			zap.String("request.id", RequestIDFromContext(r.Context())),
			zap.String("request.method", r.Method),
			zap.String("request.path", r.URL.Path),
			zap.Duration("request.duration", time.Since(start)),
		)
	}
}

// PanicRecoveryMiddleware catches any panic during the request
// lifecycle and answers the client with a 500.
func (h *BookHandler) PanicRecoveryMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		defer func() {
			if err := recover(); err != nil {
				h.logger.Error("panic occurred",
					zap.String("request.id", RequestIDFromContext(r.Context())),
					zap.Any("error", err))
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		next(w, r, ps)
	}
}

// Chain wraps a handle with the middleware stack, starting from the last one.
func (m *Middlewares) Chain(h httprouter.Handle) httprouter.Handle {
	if len(*m) == 0 {
		return h
	}
	lg := len(*m)
	handle := (*m)[lg-1](h)

	for i := lg - 2; i >= 0; i-- {
		handle = (*m)[i](handle)
	}

	return handle
}
