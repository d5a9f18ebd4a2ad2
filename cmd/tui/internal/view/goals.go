package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/goal"
	"github.com/MrJamesThe3rd/wealthwise/internal/stats"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

type goalState int

const (
	goalStateBrowse goalState = iota
	goalStateAdd
	goalStateFund
)

var goalIcons = []string{goal.DefaultIcon, "📱", "🏠", "🚗", "✈️", "🎓", "💍", "🛡️", "🎁", "💻"}

type goalFields struct {
	Name     string
	Target   string
	Current  string
	Deadline string
	Icon     string
	Amount   string
	goalID   string
}

// GoalsModel lists savings objectives and lets the user add goals and funds.
type GoalsModel struct {
	CommonModel
	store *store.Store

	state  goalState
	goals  []goal.Goal
	cursor int
	bar    progress.Model
	form   *huh.Form
	fields *goalFields

	status string
	err    error
}

func NewGoalsModel(s *store.Store) GoalsModel {
	return GoalsModel{
		store: s,
		goals: s.Goals(),
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

func (m GoalsModel) Title() string { return "Objectives" }

func (m GoalsModel) ShortHelp() string {
	if m.state != goalStateBrowse {
		return "Esc: cancel"
	}

	return "Esc: back | ↑/↓: select | a: new goal | f: add funds"
}

func (m GoalsModel) Init() tea.Cmd {
	return nil
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storeResultMsg:
		m.state = goalStateBrowse
		m.form = nil
		m.status = msg.status
		m.err = msg.err
		m.goals = m.store.Goals()
		m.cursor = min(m.cursor, max(len(m.goals)-1, 0))

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil
	}

	if m.state != goalStateBrowse {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.goals)-1 {
			m.cursor++
		}
	case "a":
		return m.startAdd()
	case "f":
		return m.startFund()
	}

	return m, nil
}

func (m GoalsModel) startAdd() (tea.Model, tea.Cmd) {
	m.fields = &goalFields{
		Current:  "0",
		Deadline: calendar.Today().AddDays(365).String(),
		Icon:     goal.DefaultIcon,
	}
	f := m.fields

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Goal Name").Value(&f.Name).Validate(validateRequired("name")),
			huh.NewInput().Key("target").Title("Target Amount").Value(&f.Target).Validate(validateAmount),
			huh.NewInput().Key("current").Title("Already Saved").Value(&f.Current).Validate(func(s string) error {
				d, err := decimal.NewFromString(strings.TrimSpace(s))
				if err != nil || d.IsNegative() {
					return fmt.Errorf("enter zero or a positive number")
				}

				return nil
			}),
			huh.NewInput().Key("deadline").Title("Deadline").Placeholder("YYYY-MM-DD").Value(&f.Deadline).Validate(validateDate),
			huh.NewSelect[string]().Key("icon").Title("Icon").Options(huh.NewOptions(goalIcons...)...).Value(&f.Icon),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalStateAdd

	return m, m.form.Init()
}

func (m GoalsModel) startFund() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.goals) {
		return m, nil
	}

	g := m.goals[m.cursor]
	if g.Completed() {
		m.status = fmt.Sprintf("%s is already funded.", g.Name)
		return m, nil
	}

	m.fields = &goalFields{goalID: g.ID}
	f := m.fields

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title(fmt.Sprintf("Add funds to %s", g.Name)).
				Description(fmt.Sprintf("%s remaining", FormatAmount(g.Remaining()))).
				Value(&f.Amount).
				Validate(validateAmount),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalStateFund

	return m, m.form.Init()
}

func (m GoalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = goalStateBrowse
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == goalStateFund {
		return m, m.fundCmd()
	}

	return m, m.addCmd()
}

func (m GoalsModel) addCmd() tea.Cmd {
	s := m.store
	f := *m.fields

	return func() tea.Msg {
		target, err := ParseAmount(f.Target)
		if err != nil {
			return storeResultMsg{err: err}
		}

		current, err := decimal.NewFromString(strings.TrimSpace(f.Current))
		if err != nil {
			return storeResultMsg{err: err}
		}

		deadline, err := calendar.Parse(strings.TrimSpace(f.Deadline))
		if err != nil {
			return storeResultMsg{err: err}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		g, err := s.AddGoal(ctx, goal.Params{
			Name:     strings.TrimSpace(f.Name),
			Target:   target,
			Current:  current,
			Deadline: deadline,
			Icon:     f.Icon,
		})
		if err != nil {
			return storeResultMsg{err: err}
		}

		return storeResultMsg{status: fmt.Sprintf("Goal %s created.", g.Name)}
	}
}

func (m GoalsModel) fundCmd() tea.Cmd {
	s := m.store
	f := *m.fields

	return func() tea.Msg {
		amount, err := ParseAmount(f.Amount)
		if err != nil {
			return storeResultMsg{err: err}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		g, err := s.Contribute(ctx, f.goalID, amount)
		if err != nil {
			return storeResultMsg{err: err}
		}

		if g.Completed() {
			return storeResultMsg{status: fmt.Sprintf("%s is fully funded!", g.Name)}
		}

		return storeResultMsg{status: fmt.Sprintf("%s: %s saved.", g.Name, FormatAmount(g.Current))}
	}
}

func (m GoalsModel) View() string {
	if m.state != goalStateBrowse && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	summary := stats.Goals(m.goals)
	today := calendar.Today()

	var b strings.Builder

	b.WriteString(statusLine(m.status, m.err))
	b.WriteString(titleStyle.Render("Objectives") + "\n")
	fmt.Fprintf(&b, "Saved %s of %s (%d%%) | %d active, %d completed\n\n",
		FormatAmount(summary.TotalSaved), FormatAmount(summary.TotalTarget), summary.Progress,
		summary.Active, summary.Completed)

	if len(m.goals) == 0 {
		b.WriteString(faintStyle.Render("No goals yet. Press a to add one."))
	}

	for i, g := range m.goals {
		cursor := "  "
		if i == m.cursor {
			cursor = activeStyle("> ")
		}

		left := fmt.Sprintf("%d days left", g.DaysLeft(today))
		if g.Completed() {
			left = successStyle.Render("completed")
		}

		fmt.Fprintf(&b, "%s%s %s\n", cursor, g.Icon, lipgloss.NewStyle().Bold(true).Render(g.Name))
		fmt.Fprintf(&b, "   %s %3d%%\n", m.bar.ViewAs(float64(stats.GoalProgress(g))/100), stats.GoalProgress(g))
		fmt.Fprintf(&b, "   %s / %s  %s\n\n",
			FormatAmount(g.Current), FormatAmount(g.Target), faintStyle.Render(fmt.Sprintf("by %s, %s", FormatDate(g.Deadline), left)))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}
