package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/wealthwise/internal/backup"
)

type backupState int

const (
	backupStateChoose backupState = iota
	backupStatePath
	backupStateWorking
	backupStateConfirm
	backupStateResult
)

const (
	backupActionExport = "export"
	backupActionImport = "import"
)

type backupFields struct {
	Action  string
	Path    string
	Confirm bool
}

// BackupModel exports all data to a JSON file and restores it from one.
// A restore is only applied after the user confirms the parsed document's summary.
type BackupModel struct {
	CommonModel
	svc  *backup.Service
	done tea.Cmd

	state   backupState
	form    *huh.Form
	fields  *backupFields
	spinner spinner.Model
	doc     backup.Document

	exportDir string
	summary   string
	err       error
}

// NewBackupModel returns a backup flow that runs done when the user leaves it.
func NewBackupModel(svc *backup.Service, exportDir string, done tea.Cmd) BackupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := BackupModel{
		svc:       svc,
		done:      done,
		spinner:   s,
		exportDir: exportDir,
	}
	m.form = m.buildChooseForm()

	return m
}

func (m BackupModel) Title() string { return "Backup" }

func (m BackupModel) ShortHelp() string {
	switch m.state {
	case backupStateResult:
		return "Esc: back"
	case backupStateWorking:
		return "Working..."
	}

	return "Esc: back | Enter: confirm"
}

func (m BackupModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case backupParsedMsg:
		if msg.err != nil {
			m.state = backupStateResult
			m.err = msg.err

			return m, nil
		}

		m.doc = msg.doc
		m.form = m.buildConfirmForm()
		m.state = backupStateConfirm

		return m, m.form.Init()

	case backupResultMsg:
		m.state = backupStateResult
		m.err = msg.err
		m.summary = msg.summary

		return m, nil
	}

	switch m.state {
	case backupStateWorking:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case backupStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, m.done
		}

		return m, nil
	}

	return m.updateForm(msg)
}

func (m BackupModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, m.done
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case backupStateChoose:
		m.form = m.buildPathForm()
		m.state = backupStatePath

		return m, m.form.Init()

	case backupStatePath:
		m.state = backupStateWorking
		m.err = nil

		if m.fields.Action == backupActionExport {
			return m, tea.Batch(m.spinner.Tick, m.exportCmd(m.fields.Path))
		}

		return m, tea.Batch(m.spinner.Tick, m.parseCmd(m.fields.Path))

	case backupStateConfirm:
		if !m.fields.Confirm {
			m.state = backupStateResult
			m.summary = "Import cancelled. Nothing was changed."

			return m, nil
		}

		m.state = backupStateWorking

		return m, tea.Batch(m.spinner.Tick, m.restoreCmd(m.doc))
	}

	return m, cmd
}

func (m *BackupModel) buildChooseForm() *huh.Form {
	m.fields = &backupFields{Action: backupActionExport, Path: m.exportDir}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Backup").
				Options(
					huh.NewOption("Export all data to a file", backupActionExport),
					huh.NewOption("Restore from a backup file", backupActionImport),
				).
				Value(&m.fields.Action),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m BackupModel) buildPathForm() *huh.Form {
	input := huh.NewInput().Key("path").Value(&m.fields.Path)

	if m.fields.Action == backupActionExport {
		input = input.
			Title("Output Directory").
			Description("Directory will be created if it doesn't exist")
	} else {
		m.fields.Path = ""
		input = input.
			Title("Backup File").
			Placeholder("wealthwise_backup_YYYY-MM-DD.json").
			Validate(validateRequired("path"))
	}

	return huh.NewForm(huh.NewGroup(input)).WithWidth(50).WithShowHelp(false)
}

func (m BackupModel) buildConfirmForm() *huh.Form {
	m.fields.Confirm = false

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Replace all current data?").
				Description(fmt.Sprintf("The backup contains %s.\nThis overwrites every transaction, goal, budget and category.", m.doc.Summary())).
				Affirmative("Replace").
				Negative("Cancel").
				Value(&m.fields.Confirm),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m BackupModel) View() string {
	switch m.state {
	case backupStateWorking:
		return lipgloss.NewStyle().Padding(1).Render(fmt.Sprintf("%s Working...", m.spinner.View()))
	case backupStateResult:
		return m.viewResult()
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

func (m BackupModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			successStyle.Bold(true).Render("Done"),
			"",
			m.summary,
		),
	)
}

type backupParsedMsg struct {
	doc backup.Document
	err error
}

type backupResultMsg struct {
	summary string
	err     error
}

const backupTimeout = 30 * time.Second

func (m BackupModel) exportCmd(dir string) tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		path, err := svc.WriteFile(strings.TrimSpace(dir))
		if err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{summary: fmt.Sprintf("Backup written to %s", path)}
	}
}

func (m BackupModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(strings.TrimSpace(path))
		if err != nil {
			return backupParsedMsg{err: err}
		}
		defer f.Close()

		doc, err := backup.Parse(f)

		return backupParsedMsg{doc: doc, err: err}
	}
}

func (m BackupModel) restoreCmd(doc backup.Document) tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
		defer cancel()

		if err := svc.Restore(ctx, doc); err != nil {
			return backupResultMsg{err: err}
		}

		return backupResultMsg{summary: fmt.Sprintf("Restored %s.", doc.Summary())}
	}
}
