package player

import (
	"fmt"
	"math"

	"github.com/jscyril/grootman/api"
)

// Icons rendered by the transport bar
const (
	IconPlay        = "▶"
	IconPause       = "⏸"
	IconVolumeMute  = "🔇"
	IconVolumeDown  = "🔉"
	IconVolumeUp    = "🔊"
	IconRepeat      = "🔁"
	IconRepeatOne   = "🔂"
	IconShuffle     = "🔀"
	LoadingMessage  = "Loading…"
	NothingSelected = "No track playing"
)

// Indicators is everything the transport bar and track rows show. It is
// derived from a State and holds no state of its own.
type Indicators struct {
	// Progress is 0-100. When ProgressValid is false the duration is not
	// known and the previous value should be kept.
	Progress      float64
	ProgressValid bool
	Elapsed       string
	Duration      string

	PlayIcon   string
	VolumeIcon string
	RepeatIcon string
	Repeat     api.RepeatMode
	Shuffle    bool

	// Highlight is the row shown as playing, -1 for none
	Highlight int

	Loading      bool
	NowPlaying   string
	Cover        string
	ShowControls bool
	Alert        string
}

// Derive computes the indicators for a controller snapshot
func Derive(s State) Indicators {
	ind := Indicators{
		PlayIcon:     IconPlay,
		VolumeIcon:   VolumeIcon(s.Volume, s.Muted),
		RepeatIcon:   RepeatIcon(s.Repeat),
		Repeat:       s.Repeat,
		Shuffle:      s.Shuffle,
		Highlight:    -1,
		Loading:      s.Load == api.Loading,
		NowPlaying:   NothingSelected,
		ShowControls: s.Started,
		Alert:        s.Alert,
	}
	if s.Playing {
		ind.PlayIcon = IconPause
	}

	if track, ok := s.CurrentTrack(); ok {
		ind.NowPlaying = track.SongName
		ind.Cover = track.CoverPath
		// Shuffle keeps the row lit while paused
		if s.Playing || s.Shuffle {
			ind.Highlight = s.Current
		}
	}

	elapsed, duration := math.NaN(), math.NaN()
	if s.Load == api.Ready {
		elapsed = s.Position.Seconds()
		duration = s.Duration.Seconds()
	}
	ind.Progress, ind.ProgressValid = Progress(elapsed, duration)
	ind.Elapsed = FormatTime(elapsed)
	ind.Duration = FormatTime(duration)
	return ind
}

// Progress returns elapsed as a percentage of duration. ok is false when
// the duration is NaN or zero.
func Progress(elapsed, duration float64) (percent float64, ok bool) {
	if math.IsNaN(duration) || duration == 0 {
		return 0, false
	}
	return elapsed / duration * 100, true
}

// FormatTime renders seconds as m:ss. Non-finite and negative input renders
// as 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}
	minutes := int(math.Floor(seconds / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// VolumeIcon picks the speaker icon for a volume level
func VolumeIcon(level int, muted bool) string {
	switch {
	case muted || level == 0:
		return IconVolumeMute
	case level < 50:
		return IconVolumeDown
	default:
		return IconVolumeUp
	}
}

// RepeatIcon picks the icon for a repeat mode
func RepeatIcon(mode api.RepeatMode) string {
	if mode == api.RepeatOne {
		return IconRepeatOne
	}
	return IconRepeat
}
