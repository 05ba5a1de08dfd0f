package header

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the header's state
type Model struct {
	width int
	zone  string
}

// New creates a new header model
func New() Model {
	return Model{
		width: 80, // Default width, will be updated
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetZone sets the operating-zone name shown beside the title
func (m *Model) SetZone(name string) {
	m.zone = name
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) View() string {
	title := "GridNav"
	if m.zone != "" {
		title += " | " + m.zone
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color("22")).
		Foreground(lipgloss.Color("255")).
		Width(m.width).
		Align(lipgloss.Center)

	return style.Render(title)
}
