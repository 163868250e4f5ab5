package audio

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	log "github.com/sirupsen/logrus"

	"github.com/jscyril/grootman/api"
	"github.com/jscyril/grootman/pkg/events"
	playerrors "github.com/jscyril/grootman/pkg/errors"
)

// Ensure Engine implements Backend interface at compile time
var _ api.Backend = (*Engine)(nil)

// outputRate is the rate the speaker runs at; every stream is resampled to it
const outputRate = beep.SampleRate(44100)

// Engine opens beep-backed audio handles and publishes their signals on an
// event bus.
type Engine struct {
	bus    *events.EventBus
	client *http.Client
	log    *log.Entry
	tick   time.Duration

	speakerOnce sync.Once
	speakerErr  error
}

// Option configures an Engine
type Option func(*Engine)

// WithHTTPClient sets the client used for remote audio sources
func WithHTTPClient(client *http.Client) Option {
	return func(e *Engine) { e.client = client }
}

// WithLogger sets the log entry the engine writes to
func WithLogger(entry *log.Entry) Option {
	return func(e *Engine) { e.log = entry }
}

// WithTick sets how often time updates are published while playing
func WithTick(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.tick = d
		}
	}
}

// NewEngine creates a new audio engine publishing on bus
func NewEngine(bus *events.EventBus, opts ...Option) *Engine {
	e := &Engine{
		bus:    bus,
		client: http.DefaultClient,
		log:    log.WithField("component", "audio"),
		tick:   250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open starts loading source in the background and returns its handle
// immediately. The handle publishes EventMetadataReady or EventError once
// loading finishes.
func (e *Engine) Open(source string, generation uint64) api.AudioHandle {
	h := &Handle{
		engine:     e,
		source:     source,
		generation: generation,
		level:      100,
		stop:       make(chan struct{}),
	}
	go h.load()
	return h
}

func (e *Engine) publish(t api.EventType, h *Handle, err error) {
	e.bus.Publish(api.AudioEvent{Type: t, Generation: h.generation, Source: h.source, Err: err})
}

// initSpeaker initializes the speaker once for the process
func (e *Engine) initSpeaker() error {
	e.speakerOnce.Do(func() {
		e.speakerErr = speaker.Init(outputRate, outputRate.N(time.Second/10))
		if e.speakerErr != nil {
			e.log.WithError(e.speakerErr).Error("Could not initialize speaker")
		}
	})
	return e.speakerErr
}

// openSource returns a seekable reader over a local file or a remote
// resource downloaded into memory.
func (e *Engine) openSource(source string) (io.ReadSeekCloser, error) {
	if !isURL(source) {
		return os.Open(source)
	}

	resp, err := e.client.Get(source)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: status %d", source, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return memoryFile{bytes.NewReader(data)}, nil
}

// decode opens and decodes a source
func (e *Engine) decode(source string) (beep.StreamSeekCloser, beep.Format, error) {
	if !IsSupported(source) {
		return nil, beep.Format{}, fmt.Errorf("%w: %q", playerrors.ErrInvalidFormat, Ext(source))
	}
	r, err := e.openSource(source)
	if err != nil {
		return nil, beep.Format{}, playerrors.NewPlayerError("open", source, err)
	}
	streamer, format, err := DecodeAudio(r, source)
	if err != nil {
		r.Close()
		return nil, beep.Format{}, playerrors.NewPlayerError("decode", source, err)
	}
	return streamer, format, nil
}
