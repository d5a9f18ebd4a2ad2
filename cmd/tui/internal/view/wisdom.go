package view

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/wealthwise/internal/wisdom"
)

// WisdomModel pages through the quote library.
type WisdomModel struct {
	CommonModel
	carousel wisdom.Carousel
}

func NewWisdomModel() WisdomModel {
	return WisdomModel{}
}

func (m WisdomModel) Title() string { return "Wisdom" }

func (m WisdomModel) ShortHelp() string {
	return "Esc: back | ←/→: browse | 0-9: jump"
}

func (m WisdomModel) Init() tea.Cmd {
	return nil
}

func (m WisdomModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "esc":
			return m, Back
		case "right", "l", "n":
			m.carousel.Next()
		case "left", "h", "p":
			m.carousel.Prev()
		default:
			if i, err := strconv.Atoi(key); err == nil {
				m.carousel.Select(i)
			}
		}
	}

	return m, nil
}

func (m WisdomModel) View() string {
	q := m.carousel.Current()

	author := "- " + q.Author
	if q.Book != "" {
		author += ", " + q.Book
	}

	dots := ""
	for i := range m.carousel.Len() {
		if i == m.carousel.Index() {
			dots += activeStyle("●")
			continue
		}

		dots += faintStyle.Render("·")
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Wisdom Hub"),
		"",
		panelStyle.Width(70).Render(lipgloss.NewStyle().Italic(true).Render(fmt.Sprintf("%q", q.Text))+"\n\n"+faintStyle.Render(author)),
		"",
		dots,
	))
}
