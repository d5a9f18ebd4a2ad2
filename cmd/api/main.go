package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/wealthwise/internal/advisor"
	"github.com/MrJamesThe3rd/wealthwise/internal/backup"
	"github.com/MrJamesThe3rd/wealthwise/internal/config"
	wwHttp "github.com/MrJamesThe3rd/wealthwise/internal/http"
	adviceHandler "github.com/MrJamesThe3rd/wealthwise/internal/http/advice"
	backupHandler "github.com/MrJamesThe3rd/wealthwise/internal/http/backup"
	budgetHandler "github.com/MrJamesThe3rd/wealthwise/internal/http/budget"
	goalHandler "github.com/MrJamesThe3rd/wealthwise/internal/http/goal"
	quoteHandler "github.com/MrJamesThe3rd/wealthwise/internal/http/quote"
	statsHandler "github.com/MrJamesThe3rd/wealthwise/internal/http/stats"
	txHandler "github.com/MrJamesThe3rd/wealthwise/internal/http/transaction"
	"github.com/MrJamesThe3rd/wealthwise/internal/logging"
	"github.com/MrJamesThe3rd/wealthwise/internal/storage"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := logging.Setup(os.Stderr, cfg.App.LogLevel, cfg.App.LogFormat); err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closer, err := storage.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closer.Close()

	st := store.New(backend)
	if report := st.Load(ctx); !report.Clean() {
		slog.Warn("Some collections were reset to defaults", "count", len(report.Fallbacks))
	}

	client, err := advisor.NewClient(advisor.Config{
		Provider: cfg.Advisor.Provider,
		APIKey:   cfg.Advisor.APIKey,
		Model:    cfg.Advisor.Model,
		BaseURL:  cfg.Advisor.BaseURL,
		Timeout:  cfg.Advisor.Timeout,
	})
	if err != nil {
		slog.Warn("Advisor disabled", "error", err)
		client = nil
	}

	router := wwHttp.New(
		wwHttp.Options{CORSOrigins: cfg.Server.CORSOrigins, Timeout: cfg.Server.Timeout},
		wwHttp.Handlers{
			Transactions: txHandler.NewHandler(st),
			Goals:        goalHandler.NewHandler(st),
			Budgets:      budgetHandler.NewHandler(st),
			Categories:   budgetHandler.NewCategoryHandler(st),
			Stats:        statsHandler.NewHandler(st),
			Advice:       adviceHandler.NewHandler(st, advisor.NewService(client, cfg.Advisor.Provider)),
			Backup:       backupHandler.NewHandler(backup.NewService(st)),
			Quotes:       quoteHandler.NewHandler(),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "port", server.Addr, "storage", cfg.Storage.Backend)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
