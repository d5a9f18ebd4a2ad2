package view

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/wealthwise/internal/advisor"
	"github.com/MrJamesThe3rd/wealthwise/internal/backup"
	"github.com/MrJamesThe3rd/wealthwise/internal/stats"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

const adviceTimeout = 60 * time.Second

type closeBackupMsg struct{}

// AdvisorModel requests advice on the current finances and hosts the backup flow.
type AdvisorModel struct {
	CommonModel
	store   *store.Store
	advisor *advisor.Service
	backups *backup.Service

	spinner   spinner.Model
	loading   bool
	advice    advisor.Advice
	asked     bool
	exportDir string

	inBackup bool
	backup   BackupModel
}

func NewAdvisorModel(s *store.Store, a *advisor.Service, b *backup.Service, exportDir string) AdvisorModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return AdvisorModel{
		store:     s,
		advisor:   a,
		backups:   b,
		spinner:   sp,
		exportDir: exportDir,
	}
}

func (m AdvisorModel) Title() string { return "Smart Advisor" }

func (m AdvisorModel) ShortHelp() string {
	if m.inBackup {
		return m.backup.ShortHelp()
	}

	return "Esc: back | r: ask advisor | b: backup"
}

func (m AdvisorModel) Init() tea.Cmd {
	return nil
}

func (m AdvisorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case adviceMsg:
		m.loading = false
		m.asked = true
		m.advice = msg.advice

		return m, nil

	case closeBackupMsg:
		m.inBackup = false
		return m, nil
	}

	if m.inBackup {
		newModel, cmd := m.backup.Update(msg)
		m.backup = newModel.(BackupModel)

		return m, cmd
	}

	if m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "r", "enter":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.adviseCmd())
	case "b":
		m.inBackup = true
		m.backup = NewBackupModel(m.backups, m.exportDir, func() tea.Msg { return closeBackupMsg{} })

		return m, m.backup.Init()
	}

	return m, nil
}

func (m AdvisorModel) View() string {
	if m.inBackup {
		return m.backup.View()
	}

	header := titleStyle.Render("Smart Advisor")

	var body string

	switch {
	case m.loading:
		body = m.spinner.View() + " Analyzing your finances..."
	case !m.asked:
		body = faintStyle.Render("Press r to get personalized advice based on your transactions and goals.")
	case m.advice.Fallback:
		body = warnStyle.Render(m.advice.Text)
	default:
		body = m.advice.Text
	}

	width := 80
	if m.Width > 10 {
		width = min(m.Width-6, 100)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		panelStyle.Width(width).Render(body),
	))
}

type adviceMsg struct {
	advice advisor.Advice
}

func (m AdvisorModel) adviseCmd() tea.Cmd {
	svc := m.advisor
	snap := m.store.Snapshot()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adviceTimeout)
		defer cancel()

		return adviceMsg{advice: svc.Advise(ctx, stats.Global(snap.Transactions), snap.Goals)}
	}
}
