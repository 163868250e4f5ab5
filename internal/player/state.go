package player

import (
	"time"

	"github.com/jscyril/grootman/api"
)

// State is a read-only snapshot of a Controller
type State struct {
	Tracks  []api.Track
	Current int // -1 when nothing is selected
	Playing bool
	Shuffle bool
	Repeat  api.RepeatMode
	Volume  int
	Muted   bool

	Load     api.LoadState
	Pending  api.Track // track being loaded or bound to the handle
	Position time.Duration
	Duration time.Duration
	Started  bool
	Alert    string
}

// CurrentTrack returns the selected track, if any
func (s State) CurrentTrack() (api.Track, bool) {
	if s.Current < 0 || s.Current >= len(s.Tracks) {
		return api.Track{}, false
	}
	return s.Tracks[s.Current], true
}

// State returns a snapshot of the controller
func (c *Controller) State() State {
	s := State{
		Tracks:  c.queue.All(),
		Current: c.current,
		Playing: c.playing,
		Shuffle: c.shuffle,
		Repeat:  c.repeat,
		Volume:  c.volume,
		Muted:   c.muted,
		Load:    c.load,
		Pending: c.pending,
		Started: c.started,
		Alert:   c.alert,
	}
	if c.load == api.Ready {
		s.Position = c.handle.Position()
		s.Duration = c.handle.Duration()
	}
	return s
}
