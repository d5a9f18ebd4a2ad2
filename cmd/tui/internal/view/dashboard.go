package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/stats"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
	"github.com/MrJamesThe3rd/wealthwise/internal/wisdom"
)

// DashboardModel summarizes balances, income and expense mix, goals and the budget watchlist.
type DashboardModel struct {
	CommonModel
	store *store.Store
	quote wisdom.Quote
}

func NewDashboardModel(s *store.Store) DashboardModel {
	return DashboardModel{store: s, quote: wisdom.Random(nil)}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | q: new quote" }

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "q":
			m.quote = wisdom.Random(nil)
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	snap := m.store.Snapshot()
	summary := stats.Global(snap.Transactions)
	goals := stats.Goals(snap.Goals)
	watch := stats.Watchlist(stats.PeriodStats(snap.Budgets, snap.Transactions, calendar.CurrentPeriod()), 3)

	balance := incomeStyle.Render(FormatAmount(summary.Balance))
	if summary.Balance.IsNegative() {
		balance = expenseStyle.Render(FormatAmount(summary.Balance))
	}

	totals := panelStyle.Render(fmt.Sprintf(
		"Balance   %s\nIncome    %s\nExpenses  %s",
		balance,
		incomeStyle.Render(FormatAmount(summary.TotalIncome)),
		expenseStyle.Render(FormatAmount(summary.TotalExpenses)),
	))

	goalPanel := panelStyle.Render(fmt.Sprintf(
		"Goals     %d active, %d done\nSaved     %s\nProgress  %s %d%%",
		goals.Active, goals.Completed,
		FormatAmount(goals.TotalSaved),
		bar(goals.Progress, 12), goals.Progress,
	))

	top := lipgloss.JoinHorizontal(lipgloss.Top, totals, " ", goalPanel)

	mix := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render("Income sources\n"+breakdownView(stats.IncomeBreakdown(summary), summary.TotalIncome.IsZero())),
		" ",
		panelStyle.Render("Expense types\n"+breakdownView(stats.ExpenseBreakdown(summary), summary.TotalExpenses.IsZero())),
	)

	var wl strings.Builder

	wl.WriteString("Budget watchlist (" + calendar.CurrentPeriod().String() + ")\n")

	if len(watch) == 0 {
		wl.WriteString(faintStyle.Render("No budgets defined."))
	}

	for _, s := range watch {
		line := fmt.Sprintf("%-14s %s %3d%%", s.Budget.Category, bar(s.Percentage, 15), s.Percentage)
		switch {
		case s.Exceeded():
			line = errorStyle.Render(line)
		case s.Warning():
			line = warnStyle.Render(line)
		}

		wl.WriteString(line + "\n")
	}

	quote := faintStyle.Render(fmt.Sprintf("%q - %s", m.quote.Text, m.quote.Author))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Dashboard"),
		"",
		top,
		mix,
		panelStyle.Render(strings.TrimRight(wl.String(), "\n")),
		"",
		quote,
	))
}

func breakdownView(parts []stats.Slice, empty bool) string {
	if empty {
		return faintStyle.Render("nothing recorded")
	}

	total := decimal.Zero
	for _, s := range parts {
		total = total.Add(s.Value)
	}

	var b strings.Builder

	for _, s := range parts {
		pct := int64(0)
		if total.IsPositive() {
			pct = s.Value.Mul(decimal.NewFromInt(100)).Div(total).Round(0).IntPart()
		}

		fmt.Fprintf(&b, "%-10s %s %s\n", s.Name, bar(pct, 10), FormatAmount(s.Value))
	}

	return strings.TrimRight(b.String(), "\n")
}
