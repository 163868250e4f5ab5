package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/jscyril/grootman/api"
	"github.com/jscyril/grootman/internal/catalog"
	"github.com/jscyril/grootman/internal/config"
	"github.com/jscyril/grootman/internal/player"
	"github.com/jscyril/grootman/internal/ui/components"
	"github.com/jscyril/grootman/internal/ui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewHome ViewType = iota
	ViewTracks
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 5
	// rows taken by the transport bar below the content
	playerHeight = 8
)

// CatalogMsg carries a finished catalog load
type CatalogMsg catalog.Result

// AudioEventMsg carries a signal from the audio backend
type AudioEventMsg api.AudioEvent

// Deps is everything the model drives
type Deps struct {
	Controller *player.Controller
	Loader     *catalog.Loader
	Events     <-chan api.AudioEvent
	Album      string
	Featured   []config.Panel
	Keys       config.KeyMap
	Log        *log.Entry
}

// Model is the main bubbletea model
type Model struct {
	width  int
	height int

	activeView ViewType

	homeView   views.HomeView
	tracksView views.TracksView
	playerView views.PlayerView

	controller *player.Controller
	loader     *catalog.Loader
	events     <-chan api.AudioEvent
	album      string
	keys       config.KeyMap
	log        *log.Entry

	ctx    context.Context
	cancel context.CancelFunc

	tabStyle       lipgloss.Style
	activeTabStyle lipgloss.Style
}

// NewModel creates a new application model
func NewModel(deps Deps) Model {
	ctx, cancel := context.WithCancel(context.Background())

	entry := deps.Log
	if entry == nil {
		entry = log.WithField("component", "ui")
	}

	panels := make([]components.Panel, len(deps.Featured))
	for i, p := range deps.Featured {
		panels[i] = components.Panel{Title: p.Title, Body: p.Body}
	}

	m := Model{
		width:      80,
		height:     24,
		activeView: ViewTracks,
		controller: deps.Controller,
		loader:     deps.Loader,
		events:     deps.Events,
		album:      deps.Album,
		keys:       deps.Keys,
		log:        entry,
		ctx:        ctx,
		cancel:     cancel,
		tabStyle: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("240")),
		activeTabStyle: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Background(lipgloss.Color("236")),
	}

	m.homeView = views.NewHomeView(panels, m.width)
	m.tracksView = views.NewTracksView(m.width, m.height-playerHeight-1)
	m.playerView = views.NewPlayerView(m.width, playerHeight)
	m.updateViewSizes()
	m.refresh()

	return m
}

// Init starts the catalog load and the audio event listener
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCatalog(),
		m.listenForEvents(),
		m.tracksView.Spinner.Tick,
	)
}

// loadCatalog fetches and enriches the album in the background
func (m Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		res := m.loader.LoadResult(m.ctx, m.album)
		if res.Err == nil {
			res.Tracks = m.loader.Enrich(m.ctx, res.Tracks)
		}
		return CatalogMsg(res)
	}
}

// listenForEvents waits for the next audio event
func (m Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case event, ok := <-m.events:
			if !ok {
				return nil
			}
			return AudioEventMsg(event)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewSizes()

	case CatalogMsg:
		res := catalog.Result(msg)
		m.tracksView.SetResult(res)
		if res.Err == nil {
			m.controller.SetTracks(res.Tracks)
		}
		m.refresh()

	case AudioEventMsg:
		m.controller.HandleEvent(api.AudioEvent(msg))
		m.refresh()
		cmds = append(cmds, m.listenForEvents())

	case components.SelectTrackMsg:
		m.selectTrack(msg.Index)

	case tea.MouseMsg:
		if m.activeView == ViewTracks {
			var cmd tea.Cmd
			m.tracksView, cmd = m.tracksView.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if quit := m.handleKey(msg, &cmds); quit {
			m.cancel()
			m.controller.Close()
			return m, tea.Quit
		}

	default:
		var cmd tea.Cmd
		m.tracksView, cmd = m.tracksView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey applies a key press and reports whether the program should quit
func (m *Model) handleKey(msg tea.KeyMsg, cmds *[]tea.Cmd) bool {
	k := m.keys
	key := msg.String()
	if msg.Type == tea.KeySpace {
		key = " "
	}

	switch key {
	case "ctrl+c", k.Quit:
		return true

	case "1":
		m.activeView = ViewHome
	case "2":
		m.activeView = ViewTracks
	case "tab":
		m.activeView = (m.activeView + 1) % 2

	case k.PlayPause:
		m.controller.TogglePlay()
	case k.Next:
		m.controller.Next()
	case k.Previous:
		m.controller.Previous()
	case k.Shuffle:
		m.controller.ToggleShuffle()
		m.tracksView.SetTracks(m.controller.State().Tracks)
	case k.Repeat:
		m.controller.CycleRepeat()
	case k.Mute:
		m.controller.ToggleMute()
	case k.VolumeUp, "=":
		m.changeVolume(volumeStep)
	case k.VolumeDown:
		m.changeVolume(-volumeStep)
	case k.SeekForward:
		m.seekBy(seekStep)
	case k.SeekBack:
		m.seekBy(-seekStep)
	case "x", "esc":
		m.controller.DismissAlert()

	default:
		var cmd tea.Cmd
		switch m.activeView {
		case ViewHome:
			m.homeView, cmd = m.homeView.Update(msg)
		case ViewTracks:
			m.tracksView, cmd = m.tracksView.Update(msg)
		}
		*cmds = append(*cmds, cmd)
	}

	m.refresh()
	return false
}

func (m *Model) selectTrack(index int) {
	if err := m.controller.Select(index); err != nil {
		m.log.WithError(err).WithField("index", index).Warn("Could not select track")
	}
	m.refresh()
}

func (m *Model) changeVolume(delta int) {
	level := min(max(m.controller.State().Volume+delta, 0), 100)
	if err := m.controller.SetVolume(level); err != nil {
		m.log.WithError(err).Warn("Could not set volume")
	}
}

// seekBy moves the playhead relative to its position
func (m *Model) seekBy(d time.Duration) {
	s := m.controller.State()
	if s.Duration <= 0 {
		return
	}
	m.controller.Seek(float64(s.Position+d) / float64(s.Duration) * 100)
}

// refresh pushes the controller state into the views
func (m *Model) refresh() {
	m.playerView.SetState(m.controller.State())
	m.tracksView.SetPlaying(m.playerView.Indicators.Highlight)
}

// updateViewSizes updates view dimensions
func (m *Model) updateViewSizes() {
	m.playerView.SetWidth(m.width)
	m.tracksView.SetSize(m.width, m.height-playerHeight-1, 1)
	m.homeView.Slideshow.Width = m.width
}

// View renders the UI
func (m Model) View() string {
	var content string
	switch m.activeView {
	case ViewHome:
		content = m.homeView.View()
	case ViewTracks:
		content = m.tracksView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		content,
		m.playerView.View(),
	)
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	tabs := []string{"[1] Home", "[2] Songs"}

	var rendered []string
	for i, tab := range tabs {
		if ViewType(i) == m.activeView {
			rendered = append(rendered, m.activeTabStyle.Render(tab))
		} else {
			rendered = append(rendered, m.tabStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// Run starts the bubbletea program
func Run(deps Deps) error {
	p := tea.NewProgram(NewModel(deps), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
