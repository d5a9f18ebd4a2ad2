package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/wealthwise/internal/budget"
	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
	"github.com/MrJamesThe3rd/wealthwise/internal/transaction"
)

type txState int

const (
	txStateList txState = iota
	txStateForm
	txStateConfirmDelete
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx transaction.Transaction
}

func (i txItem) Title() string {
	amount := expenseStyle.Render("-" + FormatAmount(i.tx.Amount))
	if i.tx.IsIncome() {
		amount = incomeStyle.Render("+" + FormatAmount(i.tx.Amount))
	}

	return fmt.Sprintf("%s  %s  %s", FormatDate(i.tx.Date), amount, i.tx.Category)
}

func (i txItem) Description() string {
	if i.tx.Nature != "" {
		return fmt.Sprintf("%s [%s]", i.tx.Note, i.tx.Nature)
	}

	return i.tx.Note
}

func (i txItem) FilterValue() string {
	return i.tx.Category + " " + i.tx.Note
}

// txFields are the form bindings. They live behind a pointer so the
// huh form keeps writing to the same values as the model is copied.
type txFields struct {
	Type     transaction.Type
	Category string
	Amount   string
	Date     string
	Note     string
	Nature   transaction.Nature
	Confirm  bool
}

func (f *txFields) params() (transaction.Params, error) {
	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return transaction.Params{}, err
	}

	date, err := calendar.Parse(strings.TrimSpace(f.Date))
	if err != nil {
		return transaction.Params{}, err
	}

	p := transaction.Params{
		Type:     f.Type,
		Category: f.Category,
		Amount:   amount,
		Date:     date,
		Note:     strings.TrimSpace(f.Note),
		Nature:   f.Nature,
	}

	if p.Type == transaction.TypeIncome {
		p.Nature = ""
	}

	return p, nil
}

// TransactionsModel is the cash flow screen: a filtered ledger with add, edit and delete.
type TransactionsModel struct {
	CommonModel
	store *store.Store

	state     txState
	filterBar FilterBar
	list      list.Model
	form      *huh.Form
	fields    *txFields
	editing   *transaction.Transaction

	status string
	err    error
}

func NewTransactionsModel(s *store.Store) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Cash Flow"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return TransactionsModel{
		store:     s,
		filterBar: NewFilterBar(),
		list:      l,
	}
}

func (m TransactionsModel) Title() string { return "Cash Flow" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateForm:
		return "Esc: cancel | Enter/Tab: navigate form"
	case txStateConfirmDelete:
		return "Esc: cancel"
	}

	if m.filterBar.IsSearching() {
		return "Enter: done | Esc: clear search"
	}

	return "Esc: back | /: search | t: timeframe | a: add | e: edit | d: delete"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadTxsCmd(m.filterBar.Filter())
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FilterChangedMsg:
		return m, m.loadTxsCmd(msg.Filter)

	case loadTxsMsg:
		items := make([]list.Item, len(msg.txs))
		for i, tx := range msg.txs {
			items[i] = txItem{tx: tx}
		}

		return m, m.list.SetItems(items)

	case storeResultMsg:
		m.state = txStateList
		m.form = nil
		m.status = msg.status
		m.err = msg.err

		return m, m.loadTxsCmd(m.filterBar.Filter())

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-10)

		return m, nil
	}

	switch m.state {
	case txStateForm, txStateConfirmDelete:
		return m.updateForm(msg)
	}

	return m.updateList(msg)
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.filterBar.IsSearching() {
		var cmd tea.Cmd
		m.filterBar, cmd = m.filterBar.Update(msg)

		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "/":
			return m, m.filterBar.StartSearch()
		case "t":
			return m, m.filterBar.CycleTimeframe()
		case "a":
			return m.startForm(nil)
		case "e", "enter":
			if selected, ok := m.list.SelectedItem().(txItem); ok {
				return m.startForm(&selected.tx)
			}

			return m, nil
		case "d":
			return m.startDelete()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) startForm(tx *transaction.Transaction) (tea.Model, tea.Cmd) {
	m.editing = tx
	m.fields = &txFields{
		Type:   transaction.TypeExpense,
		Date:   calendar.Today().String(),
		Nature: transaction.NatureVariable,
	}

	if tx != nil {
		m.fields.Type = tx.Type
		m.fields.Category = tx.Category
		m.fields.Amount = tx.Amount.String()
		m.fields.Date = tx.Date.String()
		m.fields.Note = tx.Note

		if tx.Nature != "" {
			m.fields.Nature = tx.Nature
		}
	}

	m.form = m.buildForm()
	m.state = txStateForm
	m.err = nil

	return m, m.form.Init()
}

func (m TransactionsModel) buildForm() *huh.Form {
	f := m.fields
	expenseCategories := budget.Names(m.store.Categories())

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
				).
				Value(&f.Type),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				OptionsFunc(func() []huh.Option[string] {
					if f.Type == transaction.TypeIncome {
						return huh.NewOptions(transaction.IncomeCategories...)
					}

					return huh.NewOptions(expenseCategories...)
				}, &f.Type).
				Value(&f.Category).
				Validate(validateRequired("category")),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&f.Amount).
				Validate(validateAmount),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.Date).
				Validate(validateDate),

			huh.NewInput().
				Key("note").
				Title("Note").
				Value(&f.Note),
		),
		huh.NewGroup(
			huh.NewSelect[transaction.Nature]().
				Key("nature").
				Title("Expense Type").
				Options(
					huh.NewOption("Variable", transaction.NatureVariable),
					huh.NewOption("Fixed", transaction.NatureFixed),
				).
				Value(&f.Nature),
		).WithHideFunc(func() bool { return f.Type == transaction.TypeIncome }),
	).WithWidth(50).WithShowHelp(false)
}

func (m TransactionsModel) startDelete() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(txItem)
	if !ok {
		return m, nil
	}

	m.editing = &selected.tx
	m.fields = &txFields{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s %s from %s?", selected.tx.Category, FormatAmount(selected.tx.Amount), FormatDate(selected.tx.Date))).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.fields.Confirm),
		),
	).WithWidth(50).WithShowHelp(false)
	m.state = txStateConfirmDelete

	return m, m.form.Init()
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = txStateList
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

	if m.state == txStateConfirmDelete {
		if !m.fields.Confirm {
			m.state = txStateList
			m.form = nil

			return m, nil
		}

		return m, m.deleteCmd(m.editing.ID)
	}

	return m, m.saveCmd()
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateForm:
		title := "New Transaction"
		if m.editing != nil {
			title = "Edit Transaction"
		}

		return lipgloss.NewStyle().Padding(1).Render(titleStyle.Render(title) + "\n\n" + m.form.View())

	case txStateConfirmDelete:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		statusLine(m.status, m.err)+m.filterBar.View(),
		"",
		m.list.View(),
	))
}

// Messages

type loadTxsMsg struct {
	txs []transaction.Transaction
}

func (m TransactionsModel) loadTxsCmd(filter transaction.Filter) tea.Cmd {
	s := m.store

	return func() tea.Msg {
		return loadTxsMsg{txs: filter.Apply(s.Transactions(), calendar.Today())}
	}
}

func (m TransactionsModel) saveCmd() tea.Cmd {
	s := m.store
	fields := *m.fields
	editing := m.editing

	return func() tea.Msg {
		params, err := fields.params()
		if err != nil {
			return storeResultMsg{err: err}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		if editing != nil {
			if err := s.UpdateTransaction(ctx, params.Apply(*editing)); err != nil {
				return storeResultMsg{err: err}
			}

			return storeResultMsg{status: "Transaction updated."}
		}

		if _, err := s.AddTransaction(ctx, params); err != nil {
			return storeResultMsg{err: err}
		}

		return storeResultMsg{status: "Transaction added."}
	}
}

func (m TransactionsModel) deleteCmd(id string) tea.Cmd {
	s := m.store

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := s.DeleteTransaction(ctx, id); err != nil {
			return storeResultMsg{err: err}
		}

		return storeResultMsg{status: "Transaction deleted."}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	desc := i.Description()
	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", faintStyle.Render(desc))
}
