package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/book-catalog/cmd/api/book"
	"github.com/book-catalog/cmd/api/config"
	"github.com/book-catalog/cmd/api/database"
	bookhttp "github.com/book-catalog/cmd/api/http"
	"github.com/book-catalog/cmd/api/inmemory"
	"github.com/book-catalog/cmd/api/notifications"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("./config.yml")
	if err != nil {
		return err
	}

	logger, flush := SetupLogging(cfg)
	defer flush()

	repo, closeRepo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	ntfy := notifications.NewNtfy(logger, cfg.Notifications.Enabled, cfg.Notifications.BaseURL)
	bookService := book.NewService(logger, repo, ntfy, cfg.Notifications.Timeout)
	bookHandler := bookhttp.NewBookHandler(logger, bookService)
	server := bookhttp.NewServer(cfg.Server, bookHandler)

	return serve(cfg, logger, server)
}

// openRepository selects the storage backend from the connection string
// and, for the sql backends, applies pending migrations before the
// server accepts traffic.
func openRepository(cfg *config.Config, logger *zap.Logger) (book.Repository, func(), error) {
	if cfg.DatabaseURL == "memory:" {
		store, err := inmemory.NewInMemoryStore()
		if err != nil {
			return nil, nil, err
		}
		logger.Info("storage ready", zap.String("backend", "memory"))
		return store, func() {}, nil
	}

	db, driver, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	store := database.NewStore(db, driver)

	path := cfg.MigrationsPath
	if path == "" {
		path = filepath.Join("migrations", driver)
	}
	err = database.MigrationUp(store, path)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		db.Close()
		return nil, nil, err
	}

	logger.Info("storage ready", zap.String("backend", driver), zap.String("migrations", path))
	return store, func() { db.Close() }, nil
}

// serve runs the http server until a signal arrives, then shuts it
// down gracefully within the configured timeout.
func serve(cfg *config.Config, logger *zap.Logger, server *http.Server) error {
	nCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(nCtx)

	g.Go(func() error {
		logger.Info("api server starting", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		return err
	})

	g.Go(func() error {
		<-gCtx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		err := server.Shutdown(sCtx)
		switch {
		case err == nil:
			logger.Info("api server graceful shutdown succeeded")
		case errors.Is(err, context.DeadlineExceeded):
			logger.Warn("api server graceful shutdown timed out")
			server.Close()
		default:
			logger.Warn("api server graceful shutdown failed", zap.Error(err))
			server.Close()
		}
		return nil
	})

	err := g.Wait()
	logger.Info("api server stopped", zap.Error(err))
	return err
}
