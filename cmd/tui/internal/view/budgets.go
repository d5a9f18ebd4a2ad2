package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/wealthwise/internal/budget"
	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/stats"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

type budgetState int

const (
	budgetStateBrowse budgetState = iota
	budgetStateDefine
	budgetStateCategory
	budgetStateConfirm
)

type budgetFields struct {
	Category string
	Limit    string
	Rollover bool

	Name string
	Icon string

	Confirm bool
	target  string
	remove  func(s *store.Store, name string) error
}

// BudgetsModel shows each budget's consumption for one month and manages budgets and categories.
type BudgetsModel struct {
	CommonModel
	store *store.Store

	state  budgetState
	period calendar.Period
	table  table.Model
	stats  []stats.PeriodStat
	form   *huh.Form
	fields *budgetFields

	status string
	err    error
}

func NewBudgetsModel(s *store.Store) BudgetsModel {
	columns := []table.Column{
		{Title: "Category", Width: 18},
		{Title: "Spent", Width: 14},
		{Title: "Limit", Width: 14},
		{Title: "Rollover", Width: 12},
		{Title: "Used", Width: 6},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(ts)

	m := BudgetsModel{
		store:  s,
		period: calendar.CurrentPeriod(),
		table:  t,
	}
	m.refresh()

	return m
}

func (m BudgetsModel) Title() string { return "Budgets" }

func (m BudgetsModel) ShortHelp() string {
	if m.state != budgetStateBrowse {
		return "Esc: cancel"
	}

	return "Esc: back | ←/→: month | b: set budget | x: remove budget | c: new category | X: delete category"
}

func (m BudgetsModel) Init() tea.Cmd {
	return nil
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storeResultMsg:
		m.state = budgetStateBrowse
		m.form = nil
		m.status = msg.status
		m.err = msg.err
		m.table.Focus()
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-16, 5))

		return m, nil
	}

	if m.state != budgetStateBrowse {
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m BudgetsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.period = m.period.Prev()
			m.refresh()

			return m, nil
		case "right", "l":
			m.period = m.period.Next()
			m.refresh()

			return m, nil
		case "b":
			return m.startDefine()
		case "x":
			if s, ok := m.selected(); ok {
				return m.startConfirm(fmt.Sprintf("Remove the %s budget?", s.Budget.Category), s.Budget.Category,
					func(st *store.Store, name string) error {
						ctx, cancel := StoreCtx()
						defer cancel()

						return st.RemoveBudget(ctx, name)
					})
			}

			return m, nil
		case "c":
			return m.startCategory()
		case "X":
			return m.startDeleteCategory()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BudgetsModel) selected() (stats.PeriodStat, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.stats) {
		return stats.PeriodStat{}, false
	}

	return m.stats[idx], true
}

func (m BudgetsModel) startDefine() (tea.Model, tea.Cmd) {
	categories := budget.Names(m.store.Categories())
	if len(categories) == 0 {
		m.err = fmt.Errorf("create a category first")
		return m, nil
	}

	m.fields = &budgetFields{Category: categories[0]}
	if s, ok := m.selected(); ok {
		m.fields.Category = s.Budget.Category
		m.fields.Limit = s.Budget.Limit.String()
		m.fields.Rollover = s.Budget.Rollover
	}

	f := m.fields
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(huh.NewOptions(categories...)...).
				Value(&f.Category),

			huh.NewInput().
				Key("limit").
				Title("Monthly Limit").
				Value(&f.Limit).
				Validate(validateAmount),

			huh.NewConfirm().
				Key("rollover").
				Title("Carry unspent budget into next month?").
				Affirmative("Yes").
				Negative("No").
				Value(&f.Rollover),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = budgetStateDefine
	m.table.Blur()

	return m, m.form.Init()
}

func (m BudgetsModel) startCategory() (tea.Model, tea.Cmd) {
	m.fields = &budgetFields{Icon: budget.Icons[0]}
	f := m.fields

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Category Name").
				Value(&f.Name).
				Validate(validateRequired("name")),

			huh.NewSelect[string]().
				Key("icon").
				Title("Icon").
				Options(huh.NewOptions(budget.Icons...)...).
				Value(&f.Icon),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = budgetStateCategory
	m.table.Blur()

	return m, m.form.Init()
}

func (m BudgetsModel) startDeleteCategory() (tea.Model, tea.Cmd) {
	categories := budget.Names(m.store.Categories())
	if len(categories) == 0 {
		return m, nil
	}

	name := categories[0]
	if s, ok := m.selected(); ok {
		name = s.Budget.Category
	}

	m.fields = &budgetFields{target: name}
	f := m.fields

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Delete Category").
				Description("Its budget is removed too. Transactions are kept.").
				Options(huh.NewOptions(categories...)...).
				Value(&f.target),

			huh.NewConfirm().
				Key("confirm").
				Title("Are you sure?").
				Affirmative("Delete").
				Negative("Keep").
				Value(&f.Confirm),
		),
	).WithWidth(50).WithShowHelp(false)

	f.remove = func(st *store.Store, name string) error {
		ctx, cancel := StoreCtx()
		defer cancel()

		return st.RemoveCategory(ctx, name)
	}

	m.state = budgetStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

func (m BudgetsModel) startConfirm(title, target string, remove func(*store.Store, string) error) (tea.Model, tea.Cmd) {
	m.fields = &budgetFields{target: target, remove: remove}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(title).
				Affirmative("Remove").
				Negative("Keep").
				Value(&m.fields.Confirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = budgetStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

func (m BudgetsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = budgetStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.submitCmd()
}

func (m BudgetsModel) submitCmd() tea.Cmd {
	s := m.store
	f := *m.fields
	state := m.state

	return func() tea.Msg {
		switch state {
		case budgetStateDefine:
			limit, err := ParseAmount(f.Limit)
			if err != nil {
				return storeResultMsg{err: err}
			}

			ctx, cancel := StoreCtx()
			defer cancel()

			b, err := s.SetBudget(ctx, budget.Params{Category: f.Category, Limit: limit, Rollover: f.Rollover})
			if err != nil {
				return storeResultMsg{err: err}
			}

			return storeResultMsg{status: fmt.Sprintf("Budget for %s set to %s.", b.Category, FormatAmount(b.Limit))}

		case budgetStateCategory:
			ctx, cancel := StoreCtx()
			defer cancel()

			name := strings.TrimSpace(f.Name)
			if err := s.AddCategory(ctx, budget.Category{Name: name, Icon: f.Icon}); err != nil {
				return storeResultMsg{err: err}
			}

			return storeResultMsg{status: fmt.Sprintf("Category %s created.", name)}

		case budgetStateConfirm:
			if !f.Confirm || f.remove == nil {
				return storeResultMsg{}
			}

			if err := f.remove(s, f.target); err != nil {
				return storeResultMsg{err: err}
			}

			return storeResultMsg{status: fmt.Sprintf("%s removed.", f.target)}
		}

		return storeResultMsg{}
	}
}

func (m *BudgetsModel) refresh() {
	m.stats = stats.PeriodStats(m.store.Budgets(), m.store.Transactions(), m.period)

	rows := make([]table.Row, 0, len(m.stats))
	for _, s := range m.stats {
		state := "OK"
		switch {
		case s.Exceeded():
			state = "Exceeded"
		case s.Warning():
			state = "Warning"
		}

		rollover := "-"
		if s.Budget.Rollover {
			rollover = "+" + s.Rollover.StringFixed(2)
		}

		rows = append(rows, table.Row{
			strings.TrimSpace(s.Budget.Icon + " " + s.Budget.Category),
			FormatAmount(s.Spent),
			FormatAmount(s.TotalLimit),
			rollover,
			fmt.Sprintf("%d%%", s.Percentage),
			state,
		})
	}

	m.table.SetRows(rows)
}

func (m BudgetsModel) View() string {
	if m.state != budgetStateBrowse && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	header := fmt.Sprintf("← %s →", activeStyle(m.period.String()))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		statusLine(m.status, m.err)+lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		"",
		m.shareView(),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m BudgetsModel) shareView() string {
	if len(m.stats) == 0 {
		return faintStyle.Render("No budgets defined. Press b to add one.")
	}

	var b strings.Builder

	b.WriteString("Spending share\n")

	for _, share := range stats.SpendingShare(m.stats) {
		fmt.Fprintf(&b, "%-18s %s %3d%%\n", share.Category, bar(share.Percent, 20), share.Percent)
	}

	watch := stats.Watchlist(m.stats, 3)
	if len(watch) > 0 {
		b.WriteString("\nWatchlist\n")

		for _, s := range watch {
			line := fmt.Sprintf("%-18s %s / %s", s.Budget.Category, FormatAmount(s.Spent), FormatAmount(s.Budget.Limit))
			if s.Exceeded() {
				line = errorStyle.Render(line)
			} else if s.Warning() {
				line = warnStyle.Render(line)
			}

			b.WriteString(line + "\n")
		}
	}

	return b.String()
}
