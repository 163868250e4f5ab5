package audio

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"github.com/jscyril/grootman/api"
	playerrors "github.com/jscyril/grootman/pkg/errors"
)

// Ensure Handle implements AudioHandle interface at compile time
var _ api.AudioHandle = (*Handle)(nil)

// Handle is one track's stream on the speaker. Fields touched by the
// speaker goroutine (ctrl, volume, streamer position) are only changed with
// the speaker lock held.
type Handle struct {
	engine     *Engine
	source     string
	generation uint64

	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    int
	muted    bool
	closed   bool
	stop     chan struct{}
}

// load decodes the source and reports the outcome on the bus
func (h *Handle) load() {
	streamer, format, err := h.engine.decode(h.source)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		if streamer != nil {
			streamer.Close()
		}
		return
	}
	if err != nil {
		h.mu.Unlock()
		h.engine.log.WithError(err).WithField("source", h.source).Warn("Load failed")
		h.engine.publish(api.EventError, h, err)
		return
	}
	h.streamer = streamer
	h.format = format
	h.mu.Unlock()

	h.engine.publish(api.EventMetadataReady, h, nil)
}

// Source returns the reference the handle was opened for
func (h *Handle) Source() string {
	return h.source
}

// Play starts or resumes playback
func (h *Handle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed || h.streamer == nil {
		return playerrors.ErrHandleNotReady
	}

	if h.ctrl != nil {
		speaker.Lock()
		h.ctrl.Paused = false
		speaker.Unlock()
		return nil
	}

	if err := h.engine.initSpeaker(); err != nil {
		return playerrors.NewPlayerError("speaker_init", h.source, err)
	}

	resampled := beep.Resample(4, h.format.SampleRate, outputRate, h.streamer)
	h.ctrl = &beep.Ctrl{Streamer: resampled, Paused: false}
	h.volume = &effects.Volume{Streamer: h.ctrl, Base: 2}
	applyGain(h.volume, h.level, h.muted)

	speaker.Play(beep.Seq(h.volume, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker locked
		go h.ended()
	})))
	go h.trackPosition()
	return nil
}

// Pause pauses playback
func (h *Handle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ctrl != nil {
		speaker.Lock()
		h.ctrl.Paused = true
		speaker.Unlock()
	}
}

// Paused reports whether the stream is not producing sound
func (h *Handle) Paused() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ctrl == nil {
		return true
	}
	speaker.Lock()
	defer speaker.Unlock()
	return h.ctrl.Paused
}

// Position returns the current playback position
func (h *Handle) Position() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.streamer == nil {
		return 0
	}
	if h.ctrl == nil {
		return h.format.SampleRate.D(h.streamer.Position())
	}
	speaker.Lock()
	pos := h.streamer.Position()
	speaker.Unlock()
	return h.format.SampleRate.D(pos)
}

// Duration returns the total length of the stream, zero until loaded
func (h *Handle) Duration() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.streamer == nil {
		return 0
	}
	return h.format.SampleRate.D(h.streamer.Len())
}

// Seek moves to pos, clamped to the stream
func (h *Handle) Seek(pos time.Duration) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.streamer == nil {
		return playerrors.ErrHandleNotReady
	}

	n := h.format.SampleRate.N(pos)
	if last := h.streamer.Len() - 1; n > last {
		n = max(last, 0)
	}
	if n < 0 {
		n = 0
	}

	if h.ctrl != nil {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return h.streamer.Seek(n)
}

// SetVolume sets the level (0 to 100)
func (h *Handle) SetVolume(level int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.level = level
	h.updateGain()
}

// SetMuted silences the stream without losing its level
func (h *Handle) SetMuted(muted bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.muted = muted
	h.updateGain()
}

func (h *Handle) updateGain() {
	if h.volume == nil {
		return
	}
	speaker.Lock()
	applyGain(h.volume, h.level, h.muted)
	speaker.Unlock()
}

// Close detaches the stream from the speaker and stops all further events
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	close(h.stop)

	if h.ctrl != nil {
		speaker.Lock()
		// A nil streamer ends the sequence, so the mixer drops it
		h.ctrl.Streamer = nil
		speaker.Unlock()
	}
	if h.streamer != nil {
		err := h.streamer.Close()
		h.streamer = nil
		return err
	}
	return nil
}

func (h *Handle) ended() {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()

	if !closed {
		h.engine.publish(api.EventEnded, h, nil)
	}
}

// trackPosition publishes time updates while the stream plays
func (h *Handle) trackPosition() {
	ticker := time.NewTicker(h.engine.tick)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			if !h.Paused() {
				h.engine.publish(api.EventTimeUpdate, h, nil)
			}
		}
	}
}

// applyGain maps a 0-100 level onto a base-2 volume effect: 100 is unity
// gain, 50 is half amplitude, 0 is silent.
func applyGain(v *effects.Volume, level int, muted bool) {
	v.Volume, v.Silent = gain(level, muted)
}

func gain(level int, muted bool) (volume float64, silent bool) {
	if muted || level <= 0 {
		return 0, true
	}
	if level > 100 {
		level = 100
	}
	return math.Log2(float64(level) / 100), false
}
