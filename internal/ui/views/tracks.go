package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/grootman/api"
	"github.com/jscyril/grootman/internal/catalog"
	"github.com/jscyril/grootman/internal/ui/components"
)

// TracksView lists the loaded catalog
type TracksView struct {
	Width     int
	Height    int
	TrackList components.TrackList
	Spinner   spinner.Model
	Loading   bool
	Err       string

	BorderStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
}

// NewTracksView creates a tracks view waiting for its catalog
func NewTracksView(width, height int) TracksView {
	trackList := components.NewTrackList(height-4, width-6)
	trackList.Title = "🎵 Songs"

	return TracksView{
		Width:     width,
		Height:    height,
		TrackList: trackList,
		Spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("212"))),
		),
		Loading: true,
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2),
		ErrorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

// SetResult shows a finished catalog load
func (v *TracksView) SetResult(res catalog.Result) {
	v.Loading = false
	if res.Err != nil {
		v.Err = catalog.ErrorMessage
		v.TrackList.SetItems(nil)
		return
	}
	v.Err = ""
	v.TrackList.SetItems(res.Tracks)
}

// SetTracks replaces the rows while keeping the cursor in range
func (v *TracksView) SetTracks(tracks []api.Track) {
	selected, offset := v.TrackList.Selected, v.TrackList.Offset
	v.TrackList.SetItems(tracks)
	if selected < len(tracks) {
		v.TrackList.Selected, v.TrackList.Offset = selected, offset
	}
}

// SetPlaying marks the highlighted row, -1 for none
func (v *TracksView) SetPlaying(index int) {
	v.TrackList.Playing = index
}

// SetSize resizes the view. top is the screen row the view starts on.
func (v *TracksView) SetSize(width, height, top int) {
	v.Width = width
	v.Height = height
	v.TrackList.Width = width - 6
	v.TrackList.Height = height - 4
	// border line
	v.TrackList.Top = top + 1
}

// Update handles messages
func (v TracksView) Update(msg tea.Msg) (TracksView, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok {
		if !v.Loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.Spinner, cmd = v.Spinner.Update(msg)
		return v, cmd
	}

	if v.Loading || v.Err != "" {
		return v, nil
	}
	var cmd tea.Cmd
	v.TrackList, cmd = v.TrackList.Update(msg)
	return v, cmd
}

// View renders the tracks view
func (v TracksView) View() string {
	var sb strings.Builder

	switch {
	case v.Loading:
		sb.WriteString(v.Spinner.View())
		sb.WriteString(" Loading songs...")
	case v.Err != "":
		sb.WriteString(v.ErrorStyle.Render(v.Err))
	default:
		sb.WriteString(v.TrackList.View())
	}

	return v.BorderStyle.Width(max(v.Width-4, 20)).Render(sb.String())
}
