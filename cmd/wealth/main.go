package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/wealthwise/internal/advisor"
	"github.com/MrJamesThe3rd/wealthwise/internal/config"
	"github.com/MrJamesThe3rd/wealthwise/internal/logging"
	"github.com/MrJamesThe3rd/wealthwise/internal/storage"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

// env is what every subcommand works against.
type env struct {
	store     *store.Store
	advisor   *advisor.Service
	exportDir string
	close     func() error
}

type opener func(ctx context.Context) (*env, error)

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "wealth",
		Short:         "WealthWise personal finance tracker",
		Long:          `Inspect balances, budgets and goals, ask the advisor, and back up your data from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(statsCmd(open))
	root.AddCommand(budgetsCmd(open))
	root.AddCommand(goalsCmd(open))
	root.AddCommand(exportCmd(open))
	root.AddCommand(importCmd(open))
	root.AddCommand(adviseCmd(open))
	root.AddCommand(quoteCmd())

	return root
}

// openFromConfig opens the configured storage and loads the store from it.
func openFromConfig(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logging.Setup(os.Stderr, cfg.App.LogLevel, cfg.App.LogFormat); err != nil {
		return nil, err
	}

	backend, closer, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	st := store.New(backend)
	st.Load(ctx)

	client, err := advisor.NewClient(advisor.Config{
		Provider: cfg.Advisor.Provider,
		APIKey:   cfg.Advisor.APIKey,
		Model:    cfg.Advisor.Model,
		BaseURL:  cfg.Advisor.BaseURL,
		Timeout:  cfg.Advisor.Timeout,
	})
	if err != nil {
		slog.Debug("Advisor disabled", "error", err)
		client = nil
	}

	return &env{
		store:     st,
		advisor:   advisor.NewService(client, cfg.Advisor.Provider),
		exportDir: filepath.Join(cfg.Storage.DataDir, "exports"),
		close:     closer.Close,
	}, nil
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(openFromConfig).ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
