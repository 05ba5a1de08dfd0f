package statusbar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	barHeight = 5 // Total height of the component (including border)
)

// Model holds the status bar's state: a short rolling message log plus
// the live input line for grid entry and commands.
type Model struct {
	width    int
	height   int
	messages []string
	prompt   string
}

// New creates a new status bar model
func New() Model {
	return Model{
		width:    80,
		height:   barHeight,
		messages: make([]string, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Push adds a message to the log, newest first.
func (m *Model) Push(line string) {
	m.messages = append([]string{line}, m.messages...)

	maxMessages := barHeight - 3 // borders plus the prompt line
	if maxMessages < 1 {
		maxMessages = 1
	}
	if len(m.messages) > maxMessages {
		m.messages = m.messages[:maxMessages]
	}
}

// SetPrompt shows the in-progress command entry, empty when idle.
func (m *Model) SetPrompt(text string) {
	m.prompt = text
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = barHeight
	}
	return m, nil
}

func (m Model) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("22")).
		Width(m.width - 2).
		Height(m.height - 2).
		Padding(0, 1)

	contentWidth := m.width - 2 - 2
	if contentWidth < 0 {
		contentWidth = 0
	}

	var b strings.Builder
	numLines := m.height - 3
	for i := 0; i < numLines; i++ {
		if i < len(m.messages) {
			msg := m.messages[len(m.messages)-1-i]
			if len(msg) > contentWidth {
				msg = msg[:contentWidth]
			}
			b.WriteString(msg)
		}
		b.WriteRune('\n')
	}

	if m.prompt != "" {
		b.WriteString("> " + m.prompt)
	} else {
		b.WriteString("g <zone> <e> <n> | r <route#> | p <zone#> | c cancel | q quit")
	}

	return style.Render(b.String())
}
