package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gridnav/applog"
	"gridnav/config"
	"gridnav/describe"
	"gridnav/device/nmea"
	"gridnav/geodesy"
	"gridnav/route"
	"gridnav/tile"
	"gridnav/ui/header"
	"gridnav/ui/sidebar"
	"gridnav/ui/statusbar"
	"gridnav/ui/zonelist"
	"gridnav/zone"
)

// PositionClient defines the interface for position sources
type PositionClient interface {
	Start(chan<- geodesy.Coordinate)
	Close()
}

// --- Constants for Layout ---
const (
	sidebarWidth    = 30
	statusbarHeight = 5
)

// Messages flowing into the Update loop
type (
	positionMsg    geodesy.Coordinate
	prefetchMsg    tile.Progress
	descriptionMsg string
	feedClosedMsg  struct{}
)

// model holds the application's state
type model struct {
	width  int
	height int
	conf   config.Config
	logger *applog.Logger

	headerModel   header.Model
	sidebarModel  sidebar.Model
	zonelistModel zonelist.Model
	statusModel   statusbar.Model

	zones  []zone.Zone
	layers []tile.Layer
	routes []route.Route

	posClient PositionClient
	posChan   chan geodesy.Coordinate
	lastFix   geodesy.Coordinate
	haveFix   bool

	machine    *route.Machine
	track      *route.Track
	prefetcher *tile.Prefetcher
	prefetchCh <-chan tile.Progress
	describer  *describe.Client

	entry    string // command being typed, empty when not entering
	entering bool

	err error
}

func initialModel(conf config.Config, logger *applog.Logger, client PositionClient,
	zones []zone.Zone, routes []route.Route, registry tile.Registry, store tile.Store) model {

	layers := conf.TileLayers()
	var firstLayer tile.Layer
	if len(layers) > 0 {
		firstLayer = layers[0]
	}

	return model{
		width:         80, // Default width
		height:        24, // Default height
		conf:          conf,
		logger:        logger,
		headerModel:   header.New(),
		sidebarModel:  sidebar.New(),
		zonelistModel: zonelist.New(zones, firstLayer, registry),
		statusModel:   statusbar.New(),
		zones:         zones,
		layers:        layers,
		routes:        routes,
		posClient:     client,
		posChan:       make(chan geodesy.Coordinate),
		machine:       route.NewMachine(),
		track:         route.NewTrack(conf.Track.MinSpacingMeters),
		prefetcher:    tile.NewPrefetcher(nil, registry, store, logger.Logger),
		describer:     describe.New(conf.Describe.URL),
	}
}

// listenForPositions waits for the next fix from the device
func (m model) listenForPositions() tea.Cmd {
	return func() tea.Msg {
		pos, ok := <-m.posChan
		if !ok {
			return feedClosedMsg{}
		}
		return positionMsg(pos)
	}
}

// listenForPrefetch waits for the next progress event of the active run
func (m model) listenForPrefetch() tea.Cmd {
	ch := m.prefetchCh
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return prefetchMsg(p)
	}
}

// describeCmd asks the location service about a coordinate
func (m model) describeCmd(c geodesy.Coordinate) tea.Cmd {
	return func() tea.Msg {
		return descriptionMsg(m.describer.Describe(context.Background(), c))
	}
}

func (m model) Init() tea.Cmd {
	go m.posClient.Start(m.posChan)
	return m.listenForPositions()
}

// handlePosition runs one fix through the track, the route machine, and
// the sidebar readouts.
func (m *model) handlePosition(pos geodesy.Coordinate) {
	if !pos.Valid() {
		return // bad fixes are dropped silently
	}
	m.lastFix = pos
	m.haveFix = true
	m.track.Add(pos)
	m.sidebarModel.SetTrackPoints(len(m.track.Points()))

	gridText := "outside grid"
	if ref, ok := geodesy.FormatGridRef(pos); ok {
		gridText = ref.String()
	}
	m.sidebarModel.SetPosition(pos, gridText)

	for _, z := range m.zones {
		if z.Bounds.Contains(pos) {
			m.headerModel.SetZone(z.Name)
			break
		}
	}

	switch m.machine.Update(pos) {
	case route.EventAdvanced:
		if wp, ok := m.machine.Target(); ok {
			m.statusModel.Push("waypoint reached, next: " + wp.Name)
		}
	case route.EventCompleted:
		m.statusModel.Push("route complete")
		m.sidebarModel.ClearNavigation()
	}

	if r, leg, ok := m.machine.Active(); ok {
		target := r.Waypoints[leg]
		m.sidebarModel.SetNavigation(
			target.Name,
			geodesy.DistanceMeters(pos, target.Coord),
			geodesy.InitialBearing(pos, target.Coord),
			leg, len(r.Waypoints),
			m.machine.Remaining(pos),
		)
	}
}

// runCommand executes a completed entry line
func (m *model) runCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "g": // g <zone> <easting> <northing>
		if len(fields) != 4 {
			m.statusModel.Push("usage: g <zone> <easting> <northing>")
			return nil
		}
		target, ok := geodesy.ParseGridRef(fields[1], fields[2], fields[3])
		if !ok {
			m.statusModel.Push("invalid grid reference")
			return nil
		}
		name := fmt.Sprintf("grid %s %s %s", fields[1], fields[2], fields[3])
		m.machine.Start(route.Direct(name, target))
		m.statusModel.Push("navigating to " + name)
		if m.haveFix {
			m.handlePosition(m.lastFix)
		}
		return m.describeCmd(target)

	case "r": // r <route#>
		if len(fields) != 2 {
			m.statusModel.Push("usage: r <route#>")
			return nil
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil || idx < 1 || idx > len(m.routes) {
			m.statusModel.Push("no such route")
			return nil
		}
		r := m.routes[idx-1]
		m.machine.Start(r)
		m.statusModel.Push(fmt.Sprintf("navigating route %s (%d legs)", r.Name, len(r.Waypoints)))
		if m.haveFix {
			m.handlePosition(m.lastFix)
		}
		return m.describeCmd(r.Waypoints[0].Coord)

	case "p": // p <zone#>
		if len(fields) != 2 {
			m.statusModel.Push("usage: p <zone#>")
			return nil
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil || idx < 1 || idx > len(m.zones) {
			m.statusModel.Push("no such zone")
			return nil
		}
		if len(m.layers) == 0 {
			m.statusModel.Push("no tile layers configured")
			return nil
		}
		z := m.zones[idx-1]
		m.prefetchCh = m.prefetcher.Fetch(context.Background(), z, m.layers[0])
		m.statusModel.Push("prefetching " + z.Name)
		return m.listenForPrefetch()

	default:
		m.statusModel.Push("unknown command: " + fields[0])
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
		return m, nil
	}

	var (
		headerCmd   tea.Cmd
		sidebarCmd  tea.Cmd
		zonelistCmd tea.Cmd
		statusCmd   tea.Cmd
		cmds        []tea.Cmd
	)

	switch msg := msg.(type) {
	case positionMsg:
		m.handlePosition(geodesy.Coordinate(msg))
		cmds = append(cmds, m.listenForPositions())

	case feedClosedMsg:
		m.err = fmt.Errorf("position feed closed")
		m.logger.Error("position feed closed")
		return m, tea.Quit

	case prefetchMsg:
		p := tile.Progress(msg)
		switch p.Outcome {
		case tile.OutcomeAlreadyCached:
			m.statusModel.Push("zone already cached")
		case tile.OutcomeDone:
			m.statusModel.Push(fmt.Sprintf("prefetch done: %d tiles, %d failed", p.Total, p.Failed))
		case tile.OutcomeFailed:
			m.statusModel.Push(fmt.Sprintf("prefetch FAILED: %d of %d tiles failed", p.Failed, p.Total))
		case tile.OutcomeCancelled:
			m.statusModel.Push("prefetch cancelled")
		default:
			m.statusModel.Push(fmt.Sprintf("prefetch %d/%d", p.Fetched, p.Total))
			cmds = append(cmds, m.listenForPrefetch())
		}

	case descriptionMsg:
		m.sidebarModel.SetDescription(string(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 1
		mainHeight := m.height - headerHeight - statusbarHeight
		zonelistWidth := m.width - sidebarWidth
		if mainHeight < 1 {
			mainHeight = 1
		}

		m.headerModel, headerCmd = m.headerModel.Update(tea.WindowSizeMsg{Width: m.width, Height: headerHeight})
		m.sidebarModel, sidebarCmd = m.sidebarModel.Update(tea.WindowSizeMsg{Width: sidebarWidth, Height: mainHeight})
		m.zonelistModel, zonelistCmd = m.zonelistModel.Update(tea.WindowSizeMsg{Width: zonelistWidth, Height: mainHeight})
		m.statusModel, statusCmd = m.statusModel.Update(tea.WindowSizeMsg{Width: m.width, Height: statusbarHeight})

		cmds = append(cmds, headerCmd, sidebarCmd, zonelistCmd, statusCmd)

	case tea.KeyMsg:
		if m.entering {
			switch msg.String() {
			case "enter":
				line := m.entry
				m.entering = false
				m.entry = ""
				m.statusModel.SetPrompt("")
				cmds = append(cmds, m.runCommand(line))
			case "esc":
				m.entering = false
				m.entry = ""
				m.statusModel.SetPrompt("")
			case "backspace":
				if len(m.entry) > 0 {
					m.entry = m.entry[:len(m.entry)-1]
				}
				m.statusModel.SetPrompt(m.entry)
			default:
				if len(msg.String()) == 1 {
					m.entry += msg.String()
					m.statusModel.SetPrompt(m.entry)
				}
			}
			return m, tea.Batch(cmds...)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "g", "p", "r":
			m.entering = true
			m.entry = msg.String() + " "
			m.statusModel.SetPrompt(m.entry)
		case "c":
			m.machine.Cancel()
			m.sidebarModel.ClearNavigation()
			m.statusModel.Push("route cancelled")
		case "x":
			m.prefetcher.Cancel()
		case "d":
			if m.haveFix {
				cmds = append(cmds, m.describeCmd(m.lastFix))
			}
		}

	default:
		m.headerModel, headerCmd = m.headerModel.Update(msg)
		m.sidebarModel, sidebarCmd = m.sidebarModel.Update(msg)
		m.zonelistModel, zonelistCmd = m.zonelistModel.Update(msg)
		m.statusModel, statusCmd = m.statusModel.Update(msg)
		cmds = append(cmds, headerCmd, sidebarCmd, zonelistCmd, statusCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.err != nil {
		errorStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Border(lipgloss.DoubleBorder(), true).
			BorderForeground(lipgloss.Color("9")).
			Padding(1).
			Align(lipgloss.Center, lipgloss.Center)
		return errorStyle.Render(
			"Error:\n\n" + m.err.Error() +
				"\n\nPress any key to quit.",
		)
	}

	middleStack := lipgloss.JoinHorizontal(lipgloss.Top,
		m.sidebarModel.View(),
		m.zonelistModel.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerModel.View(),
		middleStack,
		m.statusModel.View(),
	)
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	conf, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *configPath, err)
	}

	logger := applog.New(conf.Log.Level, conf.Log.Dir)

	zones, err := conf.ZoneCatalog()
	if err != nil {
		log.Fatalf("Failed to load zone catalog: %v", err)
	}

	routes, err := conf.RouteCatalog()
	if err != nil {
		log.Fatalf("Failed to load route catalog: %v", err)
	}

	registry, err := tile.OpenFileRegistry(conf.Registry.Path)
	if err != nil {
		log.Fatalf("Failed to open cache registry: %v", err)
	}

	store, err := tile.NewMemoryStore(4096)
	if err != nil {
		log.Fatalf("Failed to create tile store: %v", err)
	}

	posClient, err := nmea.Connect(conf.GPS)
	if err != nil {
		log.Fatalf("Failed to connect to position source: %v", err)
	}
	defer posClient.Close()

	logger.Info("starting", "zones", len(zones), "gps", conf.GPS.Type)

	p := tea.NewProgram(initialModel(conf, logger, posClient, zones, routes, registry, store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Alas, there's been an error: %v", err)
	}
}
