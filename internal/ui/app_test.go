package ui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/jscyril/grootman/api"
	"github.com/jscyril/grootman/internal/catalog"
	"github.com/jscyril/grootman/internal/config"
	"github.com/jscyril/grootman/internal/player"
	"github.com/jscyril/grootman/internal/ui/components"
)

type fakeHandle struct {
	source     string
	generation uint64
	playing    bool
}

func (h *fakeHandle) Source() string           { return h.source }
func (h *fakeHandle) Play() error              { h.playing = true; return nil }
func (h *fakeHandle) Pause()                   { h.playing = false }
func (h *fakeHandle) Paused() bool             { return !h.playing }
func (h *fakeHandle) Position() time.Duration  { return 0 }
func (h *fakeHandle) Duration() time.Duration  { return time.Minute }
func (h *fakeHandle) Seek(time.Duration) error { return nil }
func (h *fakeHandle) SetVolume(int)            {}
func (h *fakeHandle) SetMuted(bool)            {}
func (h *fakeHandle) Close() error             { return nil }

type fakeBackend struct {
	opened []*fakeHandle
}

func (b *fakeBackend) Open(source string, generation uint64) api.AudioHandle {
	h := &fakeHandle{source: source, generation: generation}
	b.opened = append(b.opened, h)
	return h
}

func newTestModel(t *testing.T) (Model, *fakeBackend) {
	t.Helper()
	l := log.New()
	l.SetOutput(io.Discard)
	entry := log.NewEntry(l)

	backend := &fakeBackend{}
	cfg := config.GetDefaultConfig()
	m := NewModel(Deps{
		Controller: player.NewController(backend, player.WithLogger(entry)),
		Loader:     catalog.NewLoader(t.TempDir(), catalog.WithLogger(entry)),
		Events:     make(chan api.AudioEvent),
		Featured:   cfg.Featured,
		Keys:       cfg.KeyBindings,
		Log:        entry,
	})
	return m, backend
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

var songs = []api.Track{
	{SongName: "Alpha", FilePath: "/a.mp3", CoverPath: "/a.png", Index: 0},
	{SongName: "Beta", FilePath: "/b.mp3", CoverPath: "/b.png", Index: 1},
}

func TestCatalogFailureShowsMessage(t *testing.T) {
	m, _ := newTestModel(t)
	if !strings.Contains(m.View(), "Loading songs") {
		t.Error("Expected loading indicator before the catalog arrives")
	}

	msg := m.loadCatalog()()
	res, ok := msg.(CatalogMsg)
	if !ok || res.Err == nil {
		t.Fatalf("Expected a failed catalog load, got %#v", msg)
	}
	m, _ = update(t, m, res)

	if !strings.Contains(m.View(), catalog.ErrorMessage) {
		t.Errorf("Expected error message in view:\n%s", m.View())
	}
}

func TestSelectAndPlay(t *testing.T) {
	m, backend := newTestModel(t)
	m, _ = update(t, m, CatalogMsg{Slug: "default", Tracks: songs})

	m, _ = update(t, m, components.SelectTrackMsg{Index: 1})
	if len(backend.opened) != 1 || backend.opened[0].source != "/b.mp3" {
		t.Fatalf("Expected /b.mp3 to be opened, got %+v", backend.opened)
	}
	if !strings.Contains(m.View(), player.LoadingMessage) {
		t.Error("Expected loading message while the track loads")
	}

	h := backend.opened[0]
	m, cmd := update(t, m, AudioEventMsg{Type: api.EventMetadataReady, Generation: h.generation, Source: h.source})
	if cmd == nil {
		t.Error("Expected the event listener to be re-armed")
	}
	if !h.playing {
		t.Error("Handle should be playing")
	}
	if m.playerView.Indicators.Highlight != 1 || m.tracksView.TrackList.Playing != 1 {
		t.Errorf("Expected row 1 highlighted, got %d", m.tracksView.TrackList.Playing)
	}
	if !strings.Contains(m.View(), "Beta") {
		t.Error("Expected now playing title")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" ")})
	if h.playing {
		t.Error("Space should pause")
	}
	if m.tracksView.TrackList.Playing != -1 {
		t.Error("Paused row should not be highlighted without shuffle")
	}
}

func TestKeysDriveController(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, CatalogMsg{Slug: "default", Tracks: songs})

	keys := []struct {
		key   string
		check func(player.State) bool
	}{
		{"r", func(s player.State) bool { return s.Repeat == api.RepeatOne }},
		{"m", func(s player.State) bool { return s.Muted }},
		{"-", func(s player.State) bool { return s.Volume == player.DefaultVolume-volumeStep }},
		{"s", func(s player.State) bool { return s.Shuffle }},
	}
	for _, k := range keys {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k.key)})
		if !k.check(m.controller.State()) {
			t.Errorf("key %q had no effect: %+v", k.key, m.controller.State())
		}
	}
}

func TestTabsAndSlideshow(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeView != ViewHome {
		t.Fatalf("Expected home view, got %d", m.activeView)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if m.homeView.Slideshow.Visible() != 1 {
		t.Errorf("Expected second panel, got %d", m.homeView.Slideshow.Visible())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	if want := m.homeView.Slideshow.Len() - 1; m.homeView.Slideshow.Visible() != want {
		t.Errorf("Expected wrap to %d, got %d", want, m.homeView.Slideshow.Visible())
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}
