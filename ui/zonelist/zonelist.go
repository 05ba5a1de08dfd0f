package zonelist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gridnav/tile"
	"gridnav/zone"
)

// Model lists the configured zones with their offline-cache state.
type Model struct {
	width  int
	height int

	zones    []zone.Zone
	layer    tile.Layer
	registry tile.Registry
}

// New creates a zone list over the catalog and the layer whose cache
// state it reports.
func New(zones []zone.Zone, layer tile.Layer, registry tile.Registry) Model {
	return Model{
		width:    40, // Default
		height:   24, // Default
		zones:    zones,
		layer:    layer,
		registry: registry,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
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

	header := lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Render("Zones")

	var b strings.Builder
	b.WriteString(header)

	contentHeight := (m.height - 2) - 1
	if contentHeight > 0 {
		b.WriteRune('\n')
		for i, z := range m.zones {
			if i >= contentHeight {
				break
			}
			mark := " "
			if m.registry != nil && m.registry.Contains(tile.CacheKey(z, m.layer)) {
				mark = "*" // cached offline
			}
			line := fmt.Sprintf("%d %s %s (z%d-%d)", i+1, mark, z.Name, z.MinZoom, z.MaxZoom)
			if len(line) > m.width-4 && m.width > 4 {
				line = line[:m.width-4]
			}
			b.WriteString(line)
			if i < len(m.zones)-1 && i < contentHeight-1 {
				b.WriteRune('\n')
			}
		}
	}

	return style.Render(b.String())
}
