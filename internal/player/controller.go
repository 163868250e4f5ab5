package player

import (
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jscyril/grootman/api"
	"github.com/jscyril/grootman/internal/playlist"
	playerrors "github.com/jscyril/grootman/pkg/errors"
)

// DefaultVolume is the volume a controller starts with
const DefaultVolume = 75

// restartThreshold is how far into a track Previous restarts it instead of
// moving to another track.
const restartThreshold = 3 * time.Second

// Controller owns the playback session: the track order, the selected track,
// the play/shuffle/repeat flags and the single live audio handle.
//
// A Controller is not safe for concurrent use. Every method, including
// HandleEvent, must be called from the goroutine that drives the UI.
type Controller struct {
	backend api.Backend
	queue   *playlist.Queue
	rng     *rand.Rand
	log     *log.Entry

	current int // index into queue, -1 when nothing is selected
	playing bool
	shuffle bool
	repeat  api.RepeatMode
	volume  int
	muted   bool

	handle     api.AudioHandle
	load       api.LoadState
	generation uint64    // bumped for every opened handle, fences stale events
	pending    api.Track // track the handle was opened for
	rollback   string    // file reference selected before the pending load
	started    bool      // a track has become ready at least once
	alert      string
}

// Option configures a Controller
type Option func(*Controller)

// WithRand sets the random source used for shuffling
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithLogger sets the log entry the controller writes to
func WithLogger(entry *log.Entry) Option {
	return func(c *Controller) { c.log = entry }
}

// WithVolume sets the initial volume (0-100). Out of range values are ignored.
func WithVolume(level int) Option {
	return func(c *Controller) {
		if level >= 0 && level <= 100 {
			c.volume = level
		}
	}
}

// NewController creates a controller that opens handles on backend
func NewController(backend api.Backend, opts ...Option) *Controller {
	c := &Controller{
		backend: backend,
		queue:   playlist.NewQueue(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     log.WithField("component", "player"),
		current: -1,
		repeat:  api.RepeatNone,
		volume:  DefaultVolume,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTracks installs a freshly loaded catalog. Any selection, pending load
// and shuffle order is discarded.
func (c *Controller) SetTracks(tracks []api.Track) {
	c.release()
	c.generation++
	c.queue.Set(tracks)
	c.current = -1
	c.shuffle = false
	c.rollback = ""
	c.log.WithField("tracks", len(tracks)).Info("Catalog installed")
}

// Select plays the track at index. Selecting the track that is already
// bound to the handle toggles play/pause instead of reloading it.
func (c *Controller) Select(index int) error {
	if c.queue.Len() == 0 {
		return playerrors.ErrEmptyCatalog
	}
	track, ok := c.queue.At(index)
	if !ok {
		return fmt.Errorf("select %d: %w", index, playerrors.ErrTrackNotFound)
	}

	if c.handle != nil && c.handle.Source() == track.FilePath {
		if c.load == api.Ready {
			c.togglePlayback()
		}
		return nil
	}

	c.open(track)
	return nil
}

// TogglePlay is the master play/pause control. With nothing selected it
// starts the first track.
func (c *Controller) TogglePlay() {
	if c.queue.Len() == 0 {
		return
	}
	switch {
	case c.load == api.Loading:
		return
	case c.handle == nil:
		index := c.current
		if index < 0 {
			index = 0
		}
		track, _ := c.queue.At(index)
		c.open(track)
	default:
		c.togglePlayback()
	}
}

// Next moves to the track after the current one according to the shuffle
// and repeat settings.
func (c *Controller) Next() {
	if c.queue.Len() == 0 {
		return
	}
	c.step(1)
}

// Previous restarts the current track when it has played for more than
// three seconds, and otherwise moves to the track before it.
func (c *Controller) Previous() {
	if c.queue.Len() == 0 {
		return
	}
	if c.load == api.Ready && c.handle.Position() > restartThreshold {
		if err := c.handle.Seek(0); err != nil {
			c.log.WithError(err).Warn("Restart failed")
		}
		return
	}
	c.step(-1)
}

func (c *Controller) step(dir int) {
	target := c.queue.Target(c.current, dir, c.repeat, c.shuffle, c.rng)
	track, ok := c.queue.At(target)
	if !ok {
		return
	}
	c.open(track)
}

// Seek jumps to percent (0-100) of the current track's duration. It does
// nothing until the track is ready.
func (c *Controller) Seek(percent float64) {
	if c.load != api.Ready {
		return
	}
	d := c.handle.Duration()
	if d <= 0 {
		return
	}
	percent = min(max(percent, 0), 100)
	pos := time.Duration(percent / 100 * float64(d))
	if err := c.handle.Seek(pos); err != nil {
		c.log.WithError(err).WithField("position", pos).Warn("Seek failed")
	}
}

// SetVolume sets the volume level (0 to 100)
func (c *Controller) SetVolume(level int) error {
	if c.queue.Len() == 0 {
		return playerrors.ErrEmptyCatalog
	}
	if level < 0 || level > 100 {
		return playerrors.ErrInvalidVolume
	}
	c.volume = level
	if c.handle != nil {
		c.handle.SetVolume(level)
	}
	return nil
}

// ToggleMute flips the mute flag. It applies to the live handle and to
// handles opened later.
func (c *Controller) ToggleMute() {
	if c.queue.Len() == 0 {
		return
	}
	c.muted = !c.muted
	if c.handle != nil {
		c.handle.SetMuted(c.muted)
	}
}

// ToggleShuffle switches between a freshly shuffled order and the original
// load order. The selected track keeps playing and is relocated by its file
// reference.
func (c *Controller) ToggleShuffle() {
	if c.queue.Len() == 0 {
		return
	}
	var selected string
	if track, ok := c.queue.At(c.current); ok {
		selected = track.FilePath
	}

	c.shuffle = !c.shuffle
	if c.shuffle {
		c.queue.Shuffle(c.rng)
	} else {
		c.queue.Restore()
	}

	if selected != "" {
		c.current = c.queue.IndexOf(selected)
	}
	c.log.WithField("shuffle", c.shuffle).Debug("Shuffle toggled")
}

// CycleRepeat advances the repeat mode none -> one -> all -> none
func (c *Controller) CycleRepeat() {
	if c.queue.Len() == 0 {
		return
	}
	c.repeat = c.repeat.Next()
	c.log.WithField("repeat", c.repeat).Debug("Repeat mode changed")
}

// DismissAlert clears the last load failure message
func (c *Controller) DismissAlert() {
	c.alert = ""
}

// HandleEvent applies a signal from an audio handle. Events from handles
// that have since been replaced are ignored.
func (c *Controller) HandleEvent(ev api.AudioEvent) {
	if c.handle == nil || ev.Generation != c.generation {
		c.log.WithFields(log.Fields{
			"event":      ev.Type,
			"generation": ev.Generation,
			"current":    c.generation,
		}).Debug("Discarding stale audio event")
		return
	}

	switch ev.Type {
	case api.EventMetadataReady:
		if c.load != api.Loading {
			return
		}
		c.ready()
	case api.EventError:
		c.fail(ev.Err)
	case api.EventEnded:
		if c.load != api.Ready {
			return
		}
		c.playing = false
		c.step(1)
	case api.EventTimeUpdate:
		// Indicators are derived on render
	}
}

// Close releases the audio handle
func (c *Controller) Close() {
	c.release()
	c.generation++
}

// open replaces the live handle with one for track and enters Loading
func (c *Controller) open(track api.Track) {
	var prev string
	if t, ok := c.queue.At(c.current); ok {
		prev = t.FilePath
	}

	c.release()
	c.generation++
	c.pending = track
	c.rollback = prev
	c.load = api.Loading
	c.alert = ""
	c.handle = c.backend.Open(track.FilePath, c.generation)

	c.log.WithFields(log.Fields{
		"track":      track.SongName,
		"source":     track.FilePath,
		"generation": c.generation,
	}).Debug("Loading track")
}

func (c *Controller) ready() {
	// The order may have been reshuffled while loading
	index := c.queue.IndexOf(c.pending.FilePath)
	if index < 0 {
		index = c.pending.Index
	}

	c.handle.SetVolume(c.volume)
	c.handle.SetMuted(c.muted)
	if err := c.handle.Play(); err != nil {
		c.fail(err)
		return
	}

	c.current = index
	c.load = api.Ready
	c.playing = true
	c.started = true
	c.log.WithFields(log.Fields{
		"track":    c.pending.SongName,
		"index":    index,
		"duration": c.handle.Duration(),
	}).Info("Playing")
}

// fail drops the handle and rolls the selection back to what it was before
// the failed load.
func (c *Controller) fail(err error) {
	if err == nil {
		err = playerrors.ErrTrackLoadFailed
	}
	wasLoading := c.load == api.Loading
	name := c.pending.SongName

	c.release()
	if wasLoading {
		c.current = -1
		if c.rollback != "" {
			c.current = c.queue.IndexOf(c.rollback)
		}
	}
	c.alert = fmt.Sprintf("Failed to load the song: %s", name)

	c.log.WithError(playerrors.NewPlayerError("load", name, err)).Warn("Track unavailable")
}

func (c *Controller) togglePlayback() {
	if c.playing {
		c.handle.Pause()
		c.playing = false
		return
	}
	if err := c.handle.Play(); err != nil {
		c.log.WithError(err).Warn("Resume failed")
		return
	}
	c.playing = true
}

// release stops and detaches the live handle, if any
func (c *Controller) release() {
	if c.handle != nil {
		if err := c.handle.Close(); err != nil {
			c.log.WithError(err).Debug("Closing audio handle")
		}
	}
	c.handle = nil
	c.load = api.Unloaded
	c.playing = false
}
