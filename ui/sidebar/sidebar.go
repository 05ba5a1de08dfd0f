package sidebar

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gridnav/geodesy"
)

// Model holds the sidebar's state: the latest fix, its grid reference,
// and the active navigation summary.
type Model struct {
	width  int
	height int

	hasFix      bool
	position    geodesy.Coordinate
	gridRef     string
	description string

	navigating bool
	targetName string
	distance   float64
	bearing    float64
	leg        int
	legs       int
	remaining  float64

	trackPoints int
}

// New creates a new sidebar model
func New() Model {
	return Model{
		width:  28, // Default
		height: 24, // Default
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetPosition records the latest fix and its formatted grid reference.
func (m *Model) SetPosition(pos geodesy.Coordinate, gridRef string) {
	m.hasFix = true
	m.position = pos
	m.gridRef = gridRef
}

// SetDescription sets the free-text description of the current area.
func (m *Model) SetDescription(text string) {
	m.description = text
}

// SetNavigation updates the active-route summary.
func (m *Model) SetNavigation(target string, distance, bearing float64, leg, legs int, remaining float64) {
	m.navigating = true
	m.targetName = target
	m.distance = distance
	m.bearing = bearing
	m.leg = leg
	m.legs = legs
	m.remaining = remaining
}

// ClearNavigation removes the route summary.
func (m *Model) ClearNavigation() {
	m.navigating = false
}

// SetTrackPoints updates the recorded-path counter.
func (m *Model) SetTrackPoints(n int) {
	m.trackPoints = n
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func formatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.2f km", meters/1000)
	}
	return fmt.Sprintf("%.0f m", meters)
}

func (m Model) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("22")).
		Width(m.width - 2).
		Height(m.height - 2).
		Padding(0, 1)

	heading := lipgloss.NewStyle().Bold(true).Underline(true)

	var b strings.Builder
	b.WriteString(heading.Render("Position"))
	b.WriteRune('\n')
	if m.hasFix {
		fmt.Fprintf(&b, "%s\n", m.position)
		fmt.Fprintf(&b, "Grid %s\n", m.gridRef)
		if m.position.HorizontalAccuracy > 0 {
			fmt.Fprintf(&b, "±%.0f m\n", m.position.HorizontalAccuracy)
		}
	} else {
		b.WriteString("waiting for fix...\n")
	}
	if m.description != "" {
		fmt.Fprintf(&b, "%s\n", m.description)
	}

	b.WriteRune('\n')
	b.WriteString(heading.Render("Navigation"))
	b.WriteRune('\n')
	if m.navigating {
		fmt.Fprintf(&b, "-> %s\n", m.targetName)
		fmt.Fprintf(&b, "%s at %03.0f deg\n", formatDistance(m.distance), m.bearing)
		fmt.Fprintf(&b, "leg %d/%d\n", m.leg+1, m.legs)
		fmt.Fprintf(&b, "%s to go\n", formatDistance(m.remaining))
	} else {
		b.WriteString("no active route\n")
	}

	if m.trackPoints > 0 {
		fmt.Fprintf(&b, "\ntrack: %d pts", m.trackPoints)
	}

	// Clip to the inner height so the box never grows.
	lines := strings.Split(b.String(), "\n")
	maxLines := m.height - 2
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	return style.Render(strings.Join(lines, "\n"))
}
