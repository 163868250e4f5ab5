package api

import "time"

// Track is one entry of a collection. Index is positional and is rewritten
// whenever the track order changes, so it is not an identity; FilePath is.
type Track struct {
	SongName  string `json:"songName"`
	FilePath  string `json:"filePath"`
	CoverPath string `json:"coverPath"`
	Index     int    `json:"-"`
}

// RepeatMode controls how next/previous pick their target
type RepeatMode int

const (
	RepeatNone RepeatMode = iota
	RepeatOne
	RepeatAll
)

// Next returns the following mode in the none -> one -> all cycle
func (r RepeatMode) Next() RepeatMode {
	return (r + 1) % 3
}

func (r RepeatMode) String() string {
	switch r {
	case RepeatOne:
		return "one"
	case RepeatAll:
		return "all"
	default:
		return "none"
	}
}

// LoadState is the lifecycle of the track bound to the audio handle
type LoadState int

const (
	Unloaded LoadState = iota
	Loading
	Ready
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unloaded"
	}
}

// EventType represents audio handle signals
type EventType int

const (
	EventMetadataReady EventType = iota
	EventTimeUpdate
	EventEnded
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventMetadataReady:
		return "metadata-ready"
	case EventTimeUpdate:
		return "time-update"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// AudioEvent is a signal emitted by an audio handle. Generation identifies
// the selection the handle was opened for.
type AudioEvent struct {
	Type       EventType
	Generation uint64
	Source     string
	Err        error
}

// AudioHandle is the live binding between the controller and one track's
// audio resource.
type AudioHandle interface {
	Source() string
	Play() error
	Pause()
	Paused() bool
	Position() time.Duration
	// Duration is zero until metadata is ready.
	Duration() time.Duration
	Seek(pos time.Duration) error
	SetVolume(level int)
	SetMuted(muted bool)
	Close() error
}

// Backend opens audio handles. Open must not block on loading; the handle
// reports readiness or failure later through an AudioEvent carrying the
// given generation.
type Backend interface {
	Open(source string, generation uint64) AudioHandle
}
