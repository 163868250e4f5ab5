package player

import (
	"io"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jscyril/grootman/api"
)

// mockHandle is an in-memory AudioHandle
type mockHandle struct {
	source     string
	generation uint64
	playing    bool
	position   time.Duration
	duration   time.Duration
	volume     int
	muted      bool
	closed     bool
	playErr    error
	seeks      []time.Duration
}

func (h *mockHandle) Source() string { return h.source }

func (h *mockHandle) Play() error {
	if h.playErr != nil {
		return h.playErr
	}
	h.playing = true
	return nil
}

func (h *mockHandle) Pause()                  { h.playing = false }
func (h *mockHandle) Paused() bool            { return !h.playing }
func (h *mockHandle) Position() time.Duration { return h.position }
func (h *mockHandle) Duration() time.Duration { return h.duration }

func (h *mockHandle) Seek(pos time.Duration) error {
	h.seeks = append(h.seeks, pos)
	h.position = pos
	return nil
}

func (h *mockHandle) SetVolume(level int)  { h.volume = level }
func (h *mockHandle) SetMuted(muted bool) { h.muted = muted }

func (h *mockHandle) Close() error {
	h.closed = true
	h.playing = false
	return nil
}

// mockBackend records every handle it opens
type mockBackend struct {
	handles []*mockHandle
}

func (b *mockBackend) Open(source string, generation uint64) api.AudioHandle {
	h := &mockHandle{source: source, generation: generation, duration: 3 * time.Minute}
	b.handles = append(b.handles, h)
	return h
}

func (b *mockBackend) last() *mockHandle {
	if len(b.handles) == 0 {
		return nil
	}
	return b.handles[len(b.handles)-1]
}

// ready delivers metadata-ready for the most recently opened handle
func (b *mockBackend) ready(c *Controller) *mockHandle {
	h := b.last()
	c.HandleEvent(api.AudioEvent{Type: api.EventMetadataReady, Generation: h.generation, Source: h.source})
	return h
}

func quietLogger() *log.Entry {
	l := log.New()
	l.SetOutput(io.Discard)
	return log.NewEntry(l)
}

func newTestController(tracks []api.Track) (*Controller, *mockBackend) {
	backend := &mockBackend{}
	c := NewController(backend, WithLogger(quietLogger()), WithRand(rand.New(rand.NewSource(1))))
	c.SetTracks(tracks)
	return c, backend
}

func twoTracks() []api.Track {
	return []api.Track{
		{SongName: "A", FilePath: "/a.mp3", CoverPath: "/a.png"},
		{SongName: "B", FilePath: "/b.mp3", CoverPath: "/b.png"},
	}
}

func manyTracks(n int) []api.Track {
	tracks := make([]api.Track, n)
	for i := range tracks {
		name := string(rune('A' + i))
		tracks[i] = api.Track{SongName: name, FilePath: "/" + name + ".mp3", CoverPath: "/" + name + ".png"}
	}
	return tracks
}
