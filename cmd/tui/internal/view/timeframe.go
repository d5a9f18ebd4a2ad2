package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/wealthwise/internal/transaction"
)

// FilterChangedMsg is emitted whenever the query or timeframe changes.
type FilterChangedMsg struct {
	Filter transaction.Filter
}

// FilterBar edits a transaction filter: a free-text search plus a timeframe that cycles
// through transaction.Timeframes.
type FilterBar struct {
	search    textinput.Model
	timeframe transaction.Timeframe
}

func NewFilterBar() FilterBar {
	si := textinput.New()
	si.Placeholder = "category or note"
	si.CharLimit = 64
	si.Width = 24
	si.Prompt = "Search: "

	return FilterBar{
		search:    si,
		timeframe: transaction.TimeframeAll,
	}
}

func (m FilterBar) Filter() transaction.Filter {
	return transaction.Filter{Query: m.search.Value(), Timeframe: m.timeframe}
}

// IsSearching reports whether the search input has focus and should receive keys.
func (m FilterBar) IsSearching() bool {
	return m.search.Focused()
}

// StartSearch focuses the search input.
func (m *FilterBar) StartSearch() tea.Cmd {
	return m.search.Focus()
}

// CycleTimeframe advances to the next timeframe.
func (m *FilterBar) CycleTimeframe() tea.Cmd {
	m.timeframe = m.timeframe.Next()
	return m.changed()
}

func (m FilterBar) Update(msg tea.Msg) (FilterBar, tea.Cmd) {
	if !m.search.Focused() {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.search.Blur()
			return m, nil
		case tea.KeyEsc:
			m.search.Blur()
			m.search.SetValue("")
			return m, m.changed()
		}
	}

	before := m.search.Value()

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if m.search.Value() != before {
		return m, tea.Batch(cmd, m.changed())
	}

	return m, cmd
}

func (m FilterBar) changed() tea.Cmd {
	filter := m.Filter()
	return func() tea.Msg {
		return FilterChangedMsg{Filter: filter}
	}
}

func (m FilterBar) View() string {
	tabs := make([]string, len(transaction.Timeframes))
	for i, tf := range transaction.Timeframes {
		if tf == m.timeframe {
			tabs[i] = activeStyle(fmt.Sprintf("[%s]", tf))
			continue
		}

		tabs[i] = faintStyle.Render(string(tf))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.search.View(),
		"Timeframe: "+strings.Join(tabs, " "),
	)
}
