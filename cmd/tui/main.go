package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/wealthwise/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/wealthwise/internal/advisor"
	"github.com/MrJamesThe3rd/wealthwise/internal/backup"
	"github.com/MrJamesThe3rd/wealthwise/internal/config"
	"github.com/MrJamesThe3rd/wealthwise/internal/logging"
	"github.com/MrJamesThe3rd/wealthwise/internal/storage"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

type model struct {
	store     *store.Store
	advisor   *advisor.Service
	backups   *backup.Service
	exportDir string
	appName   string

	currentView View
	width       int
	height      int

	dashboardView view.DashboardModel
	cashFlowView  view.TransactionsModel
	budgetsView   view.BudgetsModel
	goalsView     view.GoalsModel
	advisorView   view.AdvisorModel
	wisdomView    view.WisdomModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewCashFlow  View = 2
	ViewBudgets   View = 3
	ViewGoals     View = 4
	ViewAdvisor   View = 5
	ViewWisdom    View = 6
)

func initialModel(cfg *config.Config, st *store.Store) model {
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

	return model{
		store:       st,
		advisor:     advisor.NewService(client, cfg.Advisor.Provider),
		backups:     backup.NewService(st),
		exportDir:   filepath.Join(cfg.Storage.DataDir, "exports"),
		appName:     cfg.App.Name,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// resize sends the last known window size to a freshly created view.
func (m model) resize() tea.Cmd {
	if m.width == 0 {
		return nil
	}

	w, h := m.width, m.height

	return func() tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h} }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.store)

				return m, tea.Batch(m.dashboardView.Init(), m.resize())
			case "2":
				m.currentView = ViewCashFlow
				m.cashFlowView = view.NewTransactionsModel(m.store)

				return m, tea.Batch(m.cashFlowView.Init(), m.resize())
			case "3":
				m.currentView = ViewBudgets
				m.budgetsView = view.NewBudgetsModel(m.store)

				return m, tea.Batch(m.budgetsView.Init(), m.resize())
			case "4":
				m.currentView = ViewGoals
				m.goalsView = view.NewGoalsModel(m.store)

				return m, tea.Batch(m.goalsView.Init(), m.resize())
			case "5":
				m.currentView = ViewAdvisor
				m.advisorView = view.NewAdvisorModel(m.store, m.advisor, m.backups, m.exportDir)

				return m, tea.Batch(m.advisorView.Init(), m.resize())
			case "6":
				m.currentView = ViewWisdom
				m.wisdomView = view.NewWisdomModel()

				return m, tea.Batch(m.wisdomView.Init(), m.resize())
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewCashFlow:
		var newModel tea.Model
		newModel, cmd = m.cashFlowView.Update(msg)
		m.cashFlowView = newModel.(view.TransactionsModel)
	case ViewBudgets:
		var newModel tea.Model
		newModel, cmd = m.budgetsView.Update(msg)
		m.budgetsView = newModel.(view.BudgetsModel)
	case ViewGoals:
		var newModel tea.Model
		newModel, cmd = m.goalsView.Update(msg)
		m.goalsView = newModel.(view.GoalsModel)
	case ViewAdvisor:
		var newModel tea.Model
		newModel, cmd = m.advisorView.Update(msg)
		m.advisorView = newModel.(view.AdvisorModel)
	case ViewWisdom:
		var newModel tea.Model
		newModel, cmd = m.wisdomView.Update(msg)
		m.wisdomView = newModel.(view.WisdomModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Dashboard\n" +
				"2. Cash Flow\n" +
				"3. Budgets\n" +
				"4. Objectives\n" +
				"5. Smart Advisor\n" +
				"6. Wisdom\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		current = m.dashboardView
	case ViewCashFlow:
		current = m.cashFlowView
	case ViewBudgets:
		current = m.budgetsView
	case ViewGoals:
		current = m.goalsView
	case ViewAdvisor:
		current = m.advisorView
	case ViewWisdom:
		current = m.wisdomView
	default:
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(current.Title() + " | " + current.ShortHelp())

	return current.View() + "\n" + help
}

// openLog sends logs to a file so they do not corrupt the terminal UI.
func openLog(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(cfg.Storage.DataDir, "tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	if err := logging.Setup(f, cfg.App.LogLevel, cfg.App.LogFormat); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := openLog(cfg)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	backend, closer, err := storage.Open(cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		fmt.Fprintln(os.Stderr, "failed to open storage:", err)
		os.Exit(1)
	}
	defer closer.Close()

	st := store.New(backend)
	st.Load(context.Background())

	p := tea.NewProgram(initialModel(cfg, st), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
