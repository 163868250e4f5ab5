package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/grootman/api"
	"github.com/jscyril/grootman/internal/player"
	"github.com/jscyril/grootman/internal/ui/components"
)

// PlayerView is the transport bar: now playing, progress and mode icons
type PlayerView struct {
	Width       int
	Height      int
	Indicators  player.Indicators
	Volume      int
	ProgressBar components.ProgressBar

	// Styles
	TitleStyle    lipgloss.Style
	CoverStyle    lipgloss.Style
	StatusStyle   lipgloss.Style
	ActiveStyle   lipgloss.Style
	InactiveStyle lipgloss.Style
	AlertStyle    lipgloss.Style
	ControlsStyle lipgloss.Style
	BorderStyle   lipgloss.Style
}

// NewPlayerView creates a new player view
func NewPlayerView(width, height int) PlayerView {
	return PlayerView{
		Width:       width,
		Height:      height,
		Indicators:  player.Derive(player.State{Current: -1}),
		ProgressBar: components.NewProgressBar(width - 8),
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		CoverStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true),
		StatusStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true),
		ActiveStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
		InactiveStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		AlertStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		ControlsStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2),
	}
}

// SetState derives and stores the indicators for a controller snapshot
func (v *PlayerView) SetState(s player.State) {
	v.Indicators = player.Derive(s)
	v.Volume = s.Volume
	v.ProgressBar.SetProgress(v.Indicators.Progress, v.Indicators.ProgressValid, v.Indicators.Elapsed, v.Indicators.Duration)
}

// SetWidth resizes the view and its progress bar
func (v *PlayerView) SetWidth(width int) {
	v.Width = width
	v.ProgressBar.Width = width - 8
}

// View renders the player view
func (v PlayerView) View() string {
	ind := v.Indicators
	var sb strings.Builder

	sb.WriteString(v.StatusStyle.Render(ind.PlayIcon + " "))
	if ind.Loading {
		sb.WriteString(v.TitleStyle.Render(player.LoadingMessage))
	} else {
		sb.WriteString(v.TitleStyle.Render(ind.NowPlaying))
	}
	if ind.Cover != "" {
		sb.WriteString("  ")
		sb.WriteString(v.CoverStyle.Render("cover: " + ind.Cover))
	}
	sb.WriteString("\n")

	if ind.ShowControls {
		sb.WriteString(v.ProgressBar.View())
		sb.WriteString("\n")

		modes := []string{
			v.toggle(ind.Shuffle, player.IconShuffle),
			v.toggle(ind.Repeat != api.RepeatNone, ind.RepeatIcon),
			fmt.Sprintf("%s %d%%", ind.VolumeIcon, v.Volume),
		}
		sb.WriteString(strings.Join(modes, "  "))
		sb.WriteString("\n")
	}

	if ind.Alert != "" {
		sb.WriteString(v.AlertStyle.Render(ind.Alert))
		sb.WriteString(v.ControlsStyle.Render("  [x] dismiss"))
		sb.WriteString("\n")
	}

	sb.WriteString(v.ControlsStyle.Render(
		"[Space] Play/Pause  [n/p] Next/Prev  [s] Shuffle  [r] Repeat  [m] Mute  [+/-] Volume  [←/→] Seek  [q] Quit",
	))

	return v.BorderStyle.Width(max(v.Width-4, 20)).Render(sb.String())
}

func (v PlayerView) toggle(active bool, icon string) string {
	if active {
		return v.ActiveStyle.Render(icon)
	}
	return v.InactiveStyle.Render(icon)
}
